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
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/assetrc/pkg/layout"
	"github.com/walteh/assetrc/pkg/pathtmpl"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*AssetrcConfig, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📜 ScriptsTask configures page-level script concatenation
type ScriptsTask struct {
	Enabled   *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty" hcl:"enabled,optional"`
	Patterns  []string `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"patterns,optional"`
	Ignore    []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Separator *string  `json:"separator,omitempty" yaml:"separator,omitempty" hcl:"separator,optional"`
}

// 🖼️ CopyTask configures a structure-preserving copy
type CopyTask struct {
	Enabled  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty" hcl:"enabled,optional"`
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" hcl:"patterns,optional"`
	Ignore   []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
}

// 🔧 Tasks groups the per-task settings
type Tasks struct {
	Scripts *ScriptsTask `json:"scripts,omitempty" yaml:"scripts,omitempty" hcl:"scripts,block"`
	Images  *CopyTask    `json:"images,omitempty" yaml:"images,omitempty" hcl:"images,block"`
	Vendor  *CopyTask    `json:"vendor,omitempty" yaml:"vendor,omitempty" hcl:"vendor,block"`
}

// 📦 VendorSource is a vendor package fetched from GitHub into an app's bower directory
type VendorSource struct {
	App  string `json:"app" yaml:"app" hcl:"app"`
	Name string `json:"name" yaml:"name" hcl:"name"`
	Repo string `json:"repo" yaml:"repo" hcl:"repo"` // owner/name
	Ref  string `json:"ref,omitempty" yaml:"ref,omitempty" hcl:"ref,optional"`
	Path string `json:"path,omitempty" yaml:"path,omitempty" hcl:"path,optional"`
}

// 🚩 Flags are run-time switches that may also be set from the command line
type Flags struct {
	Async bool `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`
	Clean bool `json:"clean,omitempty" yaml:"clean,omitempty" hcl:"clean,optional"`
	Force bool `json:"force,omitempty" yaml:"force,omitempty" hcl:"force,optional"`
}

// 📚 AssetrcConfig is the configuration file as written by the user
type AssetrcConfig struct {
	Apps          []string          `json:"apps" yaml:"apps" hcl:"apps"`
	Placeholder   string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty" hcl:"placeholder,optional"`
	Layout        map[string]string `json:"layout,omitempty" yaml:"layout,omitempty" hcl:"layout,optional"`
	Tasks         *Tasks            `json:"tasks,omitempty" yaml:"tasks,omitempty" hcl:"tasks,block"`
	VendorSources []VendorSource    `json:"vendor_sources,omitempty" yaml:"vendor_sources,omitempty" hcl:"vendor_source,block"`
	Flags         *Flags            `json:"flags,omitempty" yaml:"flags,omitempty" hcl:"flags,block"`

	location string
}

// Location returns the path the config was loaded from, if any.
func (cfg *AssetrcConfig) Location() string {
	return cfg.location
}

// 🎯 Load reads, parses and validates the configuration at path
func Load(ctx context.Context, path string) (*AssetrcConfig, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, filepath.Base(path))
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *AssetrcConfig) Validate() error {
	if len(cfg.Apps) == 0 {
		return errors.Errorf("apps is required")
	}

	seen := make(map[string]bool, len(cfg.Apps))
	for i, app := range cfg.Apps {
		if app == "" {
			return errors.Errorf("app %d: name is required", i)
		}
		if strings.ContainsAny(app, `/\`) || app == "." || app == ".." {
			return errors.Errorf("app %q: must be a plain directory name", app)
		}
		if seen[app] {
			return errors.Errorf("app %q: listed more than once", app)
		}
		seen[app] = true
	}

	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = pathtmpl.DefaultPlaceholder
	}
	if _, err := layout.New(placeholder, cfg.Layout); err != nil {
		return errors.Errorf("layout: %w", err)
	}

	if cfg.Tasks != nil {
		if s := cfg.Tasks.Scripts; s != nil {
			if err := validatePatterns("tasks.scripts", s.Patterns, s.Ignore); err != nil {
				return err
			}
		}
		if c := cfg.Tasks.Images; c != nil {
			if err := validatePatterns("tasks.images", c.Patterns, c.Ignore); err != nil {
				return err
			}
		}
		if c := cfg.Tasks.Vendor; c != nil {
			if err := validatePatterns("tasks.vendor", c.Patterns, c.Ignore); err != nil {
				return err
			}
		}
	}

	for i, src := range cfg.VendorSources {
		switch {
		case !seen[src.App]:
			return errors.Errorf("vendor source %d: unknown app %q", i, src.App)
		case src.Name == "":
			return errors.Errorf("vendor source %d: name is required", i)
		case strings.Count(src.Repo, "/") != 1 || strings.HasPrefix(src.Repo, "/") || strings.HasSuffix(src.Repo, "/"):
			return errors.Errorf("vendor source %d: repo must be owner/name, got %q", i, src.Repo)
		}
	}

	return nil
}

func validatePatterns(task string, lists ...[]string) error {
	for _, list := range lists {
		for _, pattern := range list {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("%s: invalid pattern %q", task, pattern)
			}
		}
	}
	return nil
}

// 🔑 Hash returns a SHA-256 of the canonical JSON encoding of the config
func (cfg *AssetrcConfig) Hash() string {
	data, err := json.Marshal(cfg)
	if err != nil {
		// every field is a plain value, so this cannot happen
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// 📝 String returns a string representation of the config
func (cfg *AssetrcConfig) String() string {
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = pathtmpl.DefaultPlaceholder
	}
	return strings.Join(cfg.Apps, ",") + " (" + placeholder + ")"
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte, filename string) (*AssetrcConfig, error) {
	var cfg AssetrcConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
