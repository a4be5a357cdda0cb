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

package config

import (
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/layout"
)

// TaskKind identifies one unit of pipeline work.
type TaskKind string

const (
	TaskScripts TaskKind = "scripts"
	TaskImages  TaskKind = "images"
	TaskVendor  TaskKind = "vendor"
)

// RenameMode says how a matched source path becomes a destination path.
type RenameMode int

const (
	// RenamePreserve keeps the sub-directory structure below the source root.
	RenamePreserve RenameMode = iota
	// RenameBundle groups files by their first directory below the source
	// root and writes one <dir>/<dir><ext> file per group.
	RenameBundle
)

// Defaults carried over from the original pipeline definition.
var (
	DefaultScriptPatterns  = []string{"**/*.js"}
	DefaultImagePatterns   = []string{"**/*.{jpg,png,bmp,svg,mpeg}"}
	DefaultVendorPatterns  = []string{"**/*.*"}
	DefaultScriptSeparator = "\n"
	DefaultScriptExtension = ".js"
)

// 🧱 TaskSpec is a fully resolved task.
type TaskSpec struct {
	Kind      TaskKind
	Source    string // layout template name
	Dest      string // layout template name
	Patterns  []string
	Ignore    []string
	Rename    RenameMode
	Separator string
	Extension string
}

// 🏗️ Pipeline is the immutable, resolved form of an AssetrcConfig. It is
// passed by value; slices are never mutated after Build.
type Pipeline struct {
	Root          string
	Apps          []string
	Layout        *layout.Layout
	Tasks         []TaskSpec
	VendorSources []VendorSource
	Flags         Flags
	ConfigHash    string
}

// 🏭 Build validates cfg and resolves it into a Pipeline rooted at root. An
// empty root means the directory of the config file, or the working
// directory when the config was not loaded from disk.
func Build(cfg *AssetrcConfig, root string) (Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return Pipeline{}, errors.Errorf("validating config: %w", err)
	}

	if root == "" {
		root = "."
		if cfg.location != "" {
			root = filepath.Dir(cfg.location)
		}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Pipeline{}, errors.Errorf("resolving root: %w", err)
	}

	l, err := layout.New(cfg.Placeholder, cfg.Layout)
	if err != nil {
		return Pipeline{}, errors.Errorf("building layout: %w", err)
	}

	p := Pipeline{
		Root:       absRoot,
		Apps:       append([]string(nil), cfg.Apps...),
		Layout:     l,
		ConfigHash: cfg.Hash(),
	}
	if cfg.Flags != nil {
		p.Flags = *cfg.Flags
	}

	var tasks Tasks
	if cfg.Tasks != nil {
		tasks = *cfg.Tasks
	}

	if s := tasks.Scripts; s == nil || enabled(s.Enabled) {
		spec := TaskSpec{
			Kind:      TaskScripts,
			Source:    layout.AssetsJavascripts,
			Dest:      layout.StaticJavascripts,
			Patterns:  DefaultScriptPatterns,
			Rename:    RenameBundle,
			Separator: DefaultScriptSeparator,
			Extension: DefaultScriptExtension,
		}
		if s != nil {
			spec.Patterns = orDefault(s.Patterns, DefaultScriptPatterns)
			spec.Ignore = append([]string(nil), s.Ignore...)
			if s.Separator != nil {
				spec.Separator = *s.Separator
			}
		}
		p.Tasks = append(p.Tasks, spec)
	}

	if c := tasks.Images; c == nil || enabled(c.Enabled) {
		p.Tasks = append(p.Tasks, copySpec(TaskImages, layout.AssetsImages, layout.StaticImages, DefaultImagePatterns, c))
	}

	if c := tasks.Vendor; c == nil || enabled(c.Enabled) {
		p.Tasks = append(p.Tasks, copySpec(TaskVendor, layout.AssetsBower, layout.StaticBower, DefaultVendorPatterns, c))
	}

	// an empty ref is resolved by GitHub to the default branch
	p.VendorSources = append([]VendorSource(nil), cfg.VendorSources...)

	return p, nil
}

func copySpec(kind TaskKind, source, dest string, patterns []string, c *CopyTask) TaskSpec {
	spec := TaskSpec{
		Kind:     kind,
		Source:   source,
		Dest:     dest,
		Patterns: patterns,
		Rename:   RenamePreserve,
	}
	if c != nil {
		spec.Patterns = orDefault(c.Patterns, patterns)
		spec.Ignore = append([]string(nil), c.Ignore...)
	}
	return spec
}

func enabled(b *bool) bool {
	return b == nil || *b
}

func orDefault(list, def []string) []string {
	if len(list) == 0 {
		return def
	}
	return append([]string(nil), list...)
}

// 🎯 WithApps returns a copy restricted to apps, in the order given. Repeated
// apps are kept once. Unknown apps are an error; an empty filter returns p
// unchanged.
func (p Pipeline) WithApps(apps []string) (Pipeline, error) {
	if len(apps) == 0 {
		return p, nil
	}

	known := make(map[string]bool, len(p.Apps))
	for _, app := range p.Apps {
		known[app] = true
	}

	seen := make(map[string]bool, len(apps))
	filtered := make([]string, 0, len(apps))
	for _, app := range apps {
		if !known[app] {
			return Pipeline{}, errors.Errorf("unknown app %q", app)
		}
		if seen[app] {
			continue
		}
		seen[app] = true
		filtered = append(filtered, app)
	}

	p.Apps = filtered
	return p, nil
}

// Task returns the resolved task of the given kind, if it is enabled.
func (p Pipeline) Task(kind TaskKind) (TaskSpec, bool) {
	for _, t := range p.Tasks {
		if t.Kind == kind {
			return t, true
		}
	}
	return TaskSpec{}, false
}
