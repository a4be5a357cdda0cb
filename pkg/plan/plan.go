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

// Package plan turns a task and an application into concrete file mappings.
package plan

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/layout"
)

// 🗺️ Mapping is one output file and the sources it is built from. Paths are
// slash separated and relative to the project root.
type Mapping struct {
	Task    config.TaskKind
	App     string
	Dest    string
	Sources []string
}

// 📋 Planner walks expanded source directories below root.
type Planner struct {
	root   string
	layout *layout.Layout
}

// 🏭 New creates a planner for the project at root.
func New(root string, l *layout.Layout) *Planner {
	return &Planner{root: root, layout: l}
}

// 🎯 Plan lists the mappings task produces for app, sorted by destination.
// A missing source directory yields no mappings.
func (p *Planner) Plan(ctx context.Context, app string, task config.TaskSpec) ([]Mapping, error) {
	logger := zerolog.Ctx(ctx).With().Str("app", app).Str("task", string(task.Kind)).Logger()

	srcTmpl, err := p.layout.Dir(task.Source)
	if err != nil {
		return nil, errors.Errorf("source: %w", err)
	}
	dstTmpl, err := p.layout.Dir(task.Dest)
	if err != nil {
		return nil, errors.Errorf("destination: %w", err)
	}

	srcDir := path.Clean(srcTmpl.Expand(app))
	dstDir := path.Clean(dstTmpl.Expand(app))

	walkRoot := filepath.Join(p.root, filepath.FromSlash(srcDir))
	if _, err := os.Stat(walkRoot); os.IsNotExist(err) {
		logger.Debug().Str("dir", srcDir).Msg("source directory does not exist")
		return nil, nil
	} else if err != nil {
		return nil, errors.Errorf("checking source directory: %w", err)
	}

	var matched []source
	err = filepath.WalkDir(walkRoot, func(fpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(p.root, fpath)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", fpath, err)
		}
		rest, err := filepath.Rel(walkRoot, fpath)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", fpath, err)
		}
		rest = filepath.ToSlash(rest)

		if !matchAny(task.Patterns, rest) || matchAny(task.Ignore, rest) {
			return nil
		}
		matched = append(matched, source{path: filepath.ToSlash(rel), rest: rest})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", srcDir, err)
	}

	var mappings []Mapping
	switch task.Rename {
	case config.RenameBundle:
		mappings = bundle(app, task, dstDir, matched)
	default:
		mappings = preserve(app, task, dstDir, matched)
	}

	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Dest < mappings[j].Dest })
	logger.Debug().Int("files", len(matched)).Int("outputs", len(mappings)).Msg("planned task")
	return mappings, nil
}

// source is a matched file: its path below the project root and its path
// below the walked source directory.
type source struct {
	path string
	rest string
}

// preserve maps every source to the same relative path below dstDir.
func preserve(app string, task config.TaskSpec, dstDir string, sources []source) []Mapping {
	mappings := make([]Mapping, 0, len(sources))
	for _, src := range sources {
		mappings = append(mappings, Mapping{
			Task:    task.Kind,
			App:     app,
			Dest:    path.Join(dstDir, src.rest),
			Sources: []string{src.path},
		})
	}
	return mappings
}

// bundle groups sources by their first directory below the source root.
// Files directly in the source root are not grouped and keep their name.
func bundle(app string, task config.TaskSpec, dstDir string, sources []source) []Mapping {
	groups := make(map[string]*Mapping)
	var order []string

	for _, src := range sources {
		dest := path.Join(dstDir, src.rest)
		if dir, _, found := strings.Cut(src.rest, "/"); found {
			dest = path.Join(dstDir, dir, dir+task.Extension)
		}

		m, ok := groups[dest]
		if !ok {
			m = &Mapping{Task: task.Kind, App: app, Dest: dest}
			groups[dest] = m
			order = append(order, dest)
		}
		m.Sources = append(m.Sources, src.path)
	}

	mappings := make([]Mapping, 0, len(order))
	for _, dest := range order {
		m := groups[dest]
		sort.Strings(m.Sources)
		mappings = append(mappings, *m)
	}
	return mappings
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
