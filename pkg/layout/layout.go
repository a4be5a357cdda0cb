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

package layout

import (
	"sort"

	"github.com/walteh/assetrc/pkg/pathtmpl"
	"gitlab.com/tozd/go/errors"
)

// Template names. Sources live under assets, build output under static.
const (
	AssetsRoot        = "assets.root"
	AssetsBower       = "assets.bower"
	AssetsJavascripts = "assets.javascripts"
	AssetsTests       = "assets.tests"
	AssetsStylesheets = "assets.stylesheets"
	AssetsImages      = "assets.images"

	StaticRoot        = "static.root"
	StaticBower       = "static.bower"
	StaticApp         = "static.app"
	StaticJavascripts = "static.javascripts"
	StaticStylesheets = "static.stylesheets"
	StaticImages      = "static.images"
)

// 🗺️ defaults mirrors the directory convention every application follows.
var defaults = []struct {
	name string
	raw  string
}{
	{AssetsRoot, "%app/assets"},
	{AssetsBower, "%app/assets/bower_components"},
	{AssetsJavascripts, "%app/assets/javascripts"},
	{AssetsTests, "%app/assets/tests"},
	{AssetsStylesheets, "%app/assets/stylesheets"},
	{AssetsImages, "%app/assets/images"},

	{StaticRoot, "%app/static"},
	{StaticBower, "%app/static/bower_components"},
	{StaticApp, "%app/static/%app"},
	{StaticJavascripts, "%app/static/%app/javascripts"},
	{StaticStylesheets, "%app/static/%app/stylesheets"},
	{StaticImages, "%app/static/%app/images"},
}

// 📐 Layout is the set of named directory templates. It is immutable after New.
type Layout struct {
	placeholder string
	names       []string
	templates   map[string]pathtmpl.Template
}

// 🏭 New builds a layout from the defaults, rewritten for placeholder, with
// overrides replacing individual templates. Override names must be known.
func New(placeholder string, overrides map[string]string) (*Layout, error) {
	if placeholder == "" {
		placeholder = pathtmpl.DefaultPlaceholder
	}

	l := &Layout{
		placeholder: placeholder,
		templates:   make(map[string]pathtmpl.Template, len(defaults)),
	}

	for _, d := range defaults {
		raw := pathtmpl.MustParse(d.raw).Expand(placeholder)
		if override, ok := overrides[d.name]; ok {
			raw = override
		}
		tmpl, err := pathtmpl.Parse(raw, placeholder)
		if err != nil {
			return nil, errors.Errorf("parsing template %s: %w", d.name, err)
		}
		l.names = append(l.names, d.name)
		l.templates[d.name] = tmpl
	}

	unknown := make([]string, 0)
	for name := range overrides {
		if _, ok := l.templates[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Errorf("unknown layout template %q", unknown[0])
	}

	return l, nil
}

// Default returns the layout with no overrides and the default placeholder.
func Default() *Layout {
	l, err := New(pathtmpl.DefaultPlaceholder, nil)
	if err != nil {
		panic(err)
	}
	return l
}

// Placeholder returns the token the templates were parsed with.
func (l *Layout) Placeholder() string {
	return l.placeholder
}

// Names returns the template names in declaration order.
func (l *Layout) Names() []string {
	return append([]string(nil), l.names...)
}

// 🔍 Dir returns the template registered under name.
func (l *Layout) Dir(name string) (pathtmpl.Template, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return pathtmpl.Template{}, errors.Errorf("unknown layout template %q", name)
	}
	return tmpl, nil
}

// AssetPaths are the expanded source directories of one application.
type AssetPaths struct {
	Root        string `json:"root" yaml:"root"`
	Bower       string `json:"bower" yaml:"bower"`
	Javascripts string `json:"javascripts" yaml:"javascripts"`
	Tests       string `json:"tests" yaml:"tests"`
	Stylesheets string `json:"stylesheets" yaml:"stylesheets"`
	Images      string `json:"images" yaml:"images"`
}

// StaticPaths are the expanded output directories of one application.
type StaticPaths struct {
	Root        string `json:"root" yaml:"root"`
	Bower       string `json:"bower" yaml:"bower"`
	App         string `json:"app" yaml:"app"`
	Javascripts string `json:"javascripts" yaml:"javascripts"`
	Stylesheets string `json:"stylesheets" yaml:"stylesheets"`
	Images      string `json:"images" yaml:"images"`
}

// Paths is every layout template expanded for one application.
type Paths struct {
	App    string      `json:"app" yaml:"app"`
	Assets AssetPaths  `json:"assets" yaml:"assets"`
	Static StaticPaths `json:"static" yaml:"static"`
}

// 📦 Paths expands every template for app.
func (l *Layout) Paths(app string) Paths {
	get := func(name string) string {
		return l.templates[name].Expand(app)
	}

	return Paths{
		App: app,
		Assets: AssetPaths{
			Root:        get(AssetsRoot),
			Bower:       get(AssetsBower),
			Javascripts: get(AssetsJavascripts),
			Tests:       get(AssetsTests),
			Stylesheets: get(AssetsStylesheets),
			Images:      get(AssetsImages),
		},
		Static: StaticPaths{
			Root:        get(StaticRoot),
			Bower:       get(StaticBower),
			App:         get(StaticApp),
			Javascripts: get(StaticJavascripts),
			Stylesheets: get(StaticStylesheets),
			Images:      get(StaticImages),
		},
	}
}
