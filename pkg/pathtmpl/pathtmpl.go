// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pathtmpl expands app-parameterised path templates into concrete
// per-application paths.
package pathtmpl

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultPlaceholder is the token replaced by an application identifier.
const DefaultPlaceholder = "%app"

// ErrEmptyPlaceholder is returned by Parse when no placeholder token is given.
var ErrEmptyPlaceholder = errors.New("placeholder token is empty")

// segment is either a literal run of text or an application slot.
type segment struct {
	literal string
	slot    bool
}

// 🧩 Template is a parsed path template: literal segments interleaved with
// application slots. The zero value is an empty template.
type Template struct {
	raw      string
	segments []segment
}

// 🏭 Parse splits raw on every occurrence of placeholder.
func Parse(raw, placeholder string) (Template, error) {
	if placeholder == "" {
		return Template{}, ErrEmptyPlaceholder
	}

	parts := strings.Split(raw, placeholder)
	segments := make([]segment, 0, 2*len(parts)-1)
	for i, part := range parts {
		if i > 0 {
			segments = append(segments, segment{slot: true})
		}
		if part != "" {
			segments = append(segments, segment{literal: part})
		}
	}

	return Template{raw: raw, segments: segments}, nil
}

// MustParse is Parse with DefaultPlaceholder. It panics only if
// DefaultPlaceholder were empty.
func MustParse(raw string) Template {
	t, err := Parse(raw, DefaultPlaceholder)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the raw template, placeholders included.
func (t Template) String() string {
	return t.raw
}

// Slots reports how many application slots the template has.
func (t Template) Slots() int {
	n := 0
	for _, s := range t.segments {
		if s.slot {
			n++
		}
	}
	return n
}

// 🎯 Expand replaces every slot with app. An empty app means no identifier
// was supplied and the raw template is returned unchanged.
func (t Template) Expand(app string) string {
	if app == "" {
		return t.raw
	}

	var b strings.Builder
	for _, s := range t.segments {
		if s.slot {
			b.WriteString(app)
			continue
		}
		b.WriteString(s.literal)
	}
	return b.String()
}

// 📂 Directories expands the template once per app, in order. Duplicates
// are kept.
func (t Template) Directories(apps []string) []string {
	dirs := make([]string, len(apps))
	for i, app := range apps {
		dirs[i] = t.Expand(app)
	}
	return dirs
}

// Subdirectories is Directories with suffix appended to every entry.
func (t Template) Subdirectories(apps []string, suffix string) []string {
	dirs := t.Directories(apps)
	for i := range dirs {
		dirs[i] += suffix
	}
	return dirs
}

// ✂️ StripPrefix returns what follows the first occurrence of the template's
// expansion for app in candidate. When the expansion does not occur,
// candidate is returned unchanged; use CutPrefix to tell the cases apart.
func (t Template) StripPrefix(app, candidate string) string {
	rest, _ := t.CutPrefix(app, candidate)
	return rest
}

// CutPrefix is StripPrefix that also reports whether the expansion was found.
func (t Template) CutPrefix(app, candidate string) (string, bool) {
	prefix := t.Expand(app)
	idx := strings.Index(candidate, prefix)
	if idx < 0 {
		return candidate, false
	}
	return candidate[idx+len(prefix):], true
}
