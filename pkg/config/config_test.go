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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/assetrc/pkg/layout"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, cfg *AssetrcConfig)
	}{
		{
			name:     "yaml_full",
			filename: ".assetrc.yaml",
			config: `
apps: [blog, shop]
layout:
  static.images: "%app/public/img"
tasks:
  scripts:
    patterns: ["**/*.js"]
    ignore: ["**/*.min.js"]
    separator: ";\n"
  images:
    enabled: false
vendor_sources:
  - app: blog
    name: jquery
    repo: jquery/jquery
    ref: 3.7.1
    path: dist
flags:
  async: true
`,
			check: func(t *testing.T, cfg *AssetrcConfig) {
				assert.Equal(t, []string{"blog", "shop"}, cfg.Apps)
				assert.Equal(t, "%app/public/img", cfg.Layout["static.images"])
				require.NotNil(t, cfg.Tasks)
				require.NotNil(t, cfg.Tasks.Scripts)
				assert.Equal(t, []string{"**/*.min.js"}, cfg.Tasks.Scripts.Ignore)
				require.NotNil(t, cfg.Tasks.Scripts.Separator)
				assert.Equal(t, ";\n", *cfg.Tasks.Scripts.Separator)
				require.NotNil(t, cfg.Tasks.Images)
				require.NotNil(t, cfg.Tasks.Images.Enabled)
				assert.False(t, *cfg.Tasks.Images.Enabled)
				assert.Nil(t, cfg.Tasks.Vendor)
				require.Len(t, cfg.VendorSources, 1)
				assert.Equal(t, "jquery/jquery", cfg.VendorSources[0].Repo)
				require.NotNil(t, cfg.Flags)
				assert.True(t, cfg.Flags.Async)
			},
		},
		{
			name:     "hcl_with_app_variable",
			filename: ".assetrc.hcl",
			config: `
apps = ["blog", "shop"]

layout = {
  "static.images" = "${app}/public/${app}/img"
}

tasks {
  vendor {
    enabled = false
  }
}

vendor_source {
  app  = "shop"
  name = "bootstrap"
  repo = "twbs/bootstrap"
  path = "dist"
}

flags {
  force = true
}
`,
			check: func(t *testing.T, cfg *AssetrcConfig) {
				assert.Equal(t, []string{"blog", "shop"}, cfg.Apps)
				assert.Equal(t, "%app/public/%app/img", cfg.Layout["static.images"])
				require.NotNil(t, cfg.Tasks)
				assert.Nil(t, cfg.Tasks.Scripts)
				require.NotNil(t, cfg.Tasks.Vendor)
				require.NotNil(t, cfg.Tasks.Vendor.Enabled)
				assert.False(t, *cfg.Tasks.Vendor.Enabled)
				require.Len(t, cfg.VendorSources, 1)
				assert.Equal(t, "bootstrap", cfg.VendorSources[0].Name)
				assert.Equal(t, "", cfg.VendorSources[0].Ref)
				require.NotNil(t, cfg.Flags)
				assert.True(t, cfg.Flags.Force)
			},
		},
		{
			name:     "hcl_custom_placeholder",
			filename: ".assetrc.hcl",
			config: `
placeholder = "{app}"
apps        = ["main"]
layout = {
  "assets.images" = "${app}/img"
}
`,
			check: func(t *testing.T, cfg *AssetrcConfig) {
				assert.Equal(t, "{app}", cfg.Placeholder)
				assert.Equal(t, "{app}/img", cfg.Layout["assets.images"])
			},
		},
		{
			name:     "json_minimal",
			filename: "assetrc.json",
			config:   `{"apps": ["main"]}`,
			check: func(t *testing.T, cfg *AssetrcConfig) {
				assert.Equal(t, []string{"main"}, cfg.Apps)
				assert.Nil(t, cfg.Tasks)
				assert.Nil(t, cfg.Flags)
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    ".assetrc.yml",
			config:      "apps: [main]\nwatch: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "assetrc.json",
			config:      `{"apps": ["main"], "karma": {}}`,
			errContains: "parsing JSON",
		},
		{
			name:        "missing_apps",
			filename:    ".assetrc.yaml",
			config:      "placeholder: '%app'\n",
			errContains: "apps is required",
		},
		{
			name:        "duplicate_app",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog, blog]\n",
			errContains: `app "blog": listed more than once`,
		},
		{
			name:        "nested_app_name",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog/admin]\n",
			errContains: "must be a plain directory name",
		},
		{
			name:        "unknown_layout_name",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog]\nlayout:\n  static.fonts: x\n",
			errContains: `unknown layout template "static.fonts"`,
		},
		{
			name:        "bad_pattern",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog]\ntasks:\n  images:\n    patterns: ['**/*.{png']\n",
			errContains: "tasks.images: invalid pattern",
		},
		{
			name:        "vendor_source_unknown_app",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog]\nvendor_sources:\n  - {app: shop, name: x, repo: a/b}\n",
			errContains: `unknown app "shop"`,
		},
		{
			name:        "vendor_source_bad_repo",
			filename:    ".assetrc.yaml",
			config:      "apps: [blog]\nvendor_sources:\n  - {app: blog, name: x, repo: github.com/a/b}\n",
			errContains: "repo must be owner/name",
		},
		{
			name:        "unsupported_extension",
			filename:    "assetrc.toml",
			config:      "apps = []",
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.errContains != "" {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location())
			tt.check(t, cfg)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &AssetrcConfig{Apps: []string{"blog", "shop"}}
		root := t.TempDir()

		p, err := Build(cfg, root)
		require.NoError(t, err)

		assert.Equal(t, root, p.Root)
		assert.Equal(t, []string{"blog", "shop"}, p.Apps)
		assert.Equal(t, cfg.Hash(), p.ConfigHash)
		require.Len(t, p.Tasks, 3)

		scripts, ok := p.Task(TaskScripts)
		require.True(t, ok)
		assert.Equal(t, layout.AssetsJavascripts, scripts.Source)
		assert.Equal(t, layout.StaticJavascripts, scripts.Dest)
		assert.Equal(t, RenameBundle, scripts.Rename)
		assert.Equal(t, "\n", scripts.Separator)
		assert.Equal(t, ".js", scripts.Extension)

		images, ok := p.Task(TaskImages)
		require.True(t, ok)
		assert.Equal(t, RenamePreserve, images.Rename)
		assert.Equal(t, []string{"**/*.{jpg,png,bmp,svg,mpeg}"}, images.Patterns)

		vendor, ok := p.Task(TaskVendor)
		require.True(t, ok)
		assert.Equal(t, layout.AssetsBower, vendor.Source)
		assert.Equal(t, layout.StaticBower, vendor.Dest)
	})

	t.Run("disabled_task_and_empty_vendor_ref", func(t *testing.T) {
		off := false
		cfg := &AssetrcConfig{
			Apps:  []string{"blog"},
			Tasks: &Tasks{Images: &CopyTask{Enabled: &off}},
			VendorSources: []VendorSource{
				{App: "blog", Name: "jquery", Repo: "jquery/jquery"},
			},
		}

		p, err := Build(cfg, t.TempDir())
		require.NoError(t, err)

		_, ok := p.Task(TaskImages)
		assert.False(t, ok)
		require.Len(t, p.VendorSources, 1)
		assert.Equal(t, "", p.VendorSources[0].Ref, "an empty ref means the default branch")

		p.VendorSources[0].Name = "changed"
		assert.Equal(t, "jquery", cfg.VendorSources[0].Name, "config must not be shared with the pipeline")
	})

	t.Run("root_defaults_to_config_dir", func(t *testing.T) {
		dir := t.TempDir()
		cfg := &AssetrcConfig{Apps: []string{"blog"}, location: filepath.Join(dir, ".assetrc.hcl")}

		p, err := Build(cfg, "")
		require.NoError(t, err)
		assert.Equal(t, dir, p.Root)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := Build(&AssetrcConfig{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "apps is required")
	})
}

func TestWithApps(t *testing.T) {
	p, err := Build(&AssetrcConfig{Apps: []string{"blog", "shop", "main"}}, t.TempDir())
	require.NoError(t, err)

	filtered, err := p.WithApps([]string{"main", "blog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "blog"}, filtered.Apps)
	assert.Equal(t, []string{"blog", "shop", "main"}, p.Apps, "original pipeline must not change")

	deduped, err := p.WithApps([]string{"blog", "main", "blog"})
	require.NoError(t, err)
	assert.Equal(t, []string{"blog", "main"}, deduped.Apps)

	same, err := p.WithApps(nil)
	require.NoError(t, err)
	assert.Equal(t, p.Apps, same.Apps)

	_, err = p.WithApps([]string{"docs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown app "docs"`)
}

func TestHash(t *testing.T) {
	a := &AssetrcConfig{Apps: []string{"blog"}}
	b := &AssetrcConfig{Apps: []string{"blog"}}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 64)

	b.Placeholder = "{app}"
	assert.NotEqual(t, a.Hash(), b.Hash())
}
