package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/layout"
)

// 🧪 writeTree creates files (slash paths) with their content below root
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func testPipeline(t *testing.T, root string) config.Pipeline {
	t.Helper()
	p, err := config.Build(&config.AssetrcConfig{Apps: []string{"blog", "shop"}}, root)
	require.NoError(t, err)
	return p
}

func TestPlanScripts(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"blog/assets/javascripts/page0/a.js":     "a",
		"blog/assets/javascripts/page0/b.js":     "b",
		"blog/assets/javascripts/page0/sub/c.js": "c",
		"blog/assets/javascripts/page1/x.js":     "x",
		"blog/assets/javascripts/page1/notes.md": "skip",
		"blog/assets/javascripts/main.js":        "top",
		"shop/assets/javascripts/cart/cart.js":   "cart",
	})

	p := testPipeline(t, root)
	task, ok := p.Task(config.TaskScripts)
	require.True(t, ok)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	got, err := New(root, p.Layout).Plan(ctx, "blog", task)
	require.NoError(t, err)

	want := []Mapping{
		{
			Task:    config.TaskScripts,
			App:     "blog",
			Dest:    "blog/static/blog/javascripts/main.js",
			Sources: []string{"blog/assets/javascripts/main.js"},
		},
		{
			Task: config.TaskScripts,
			App:  "blog",
			Dest: "blog/static/blog/javascripts/page0/page0.js",
			Sources: []string{
				"blog/assets/javascripts/page0/a.js",
				"blog/assets/javascripts/page0/b.js",
				"blog/assets/javascripts/page0/sub/c.js",
			},
		},
		{
			Task:    config.TaskScripts,
			App:     "blog",
			Dest:    "blog/static/blog/javascripts/page1/page1.js",
			Sources: []string{"blog/assets/javascripts/page1/x.js"},
		},
	}
	assert.Equal(t, want, got)
}

func TestPlanImagesPreserveStructure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"shop/assets/images/layout/logo.png":   "png",
		"shop/assets/images/page0/hero.jpg":    "jpg",
		"shop/assets/images/page0/raw.psd":     "psd",
		"shop/assets/images/page0/icons/a.svg": "svg",
	})

	p := testPipeline(t, root)
	task, ok := p.Task(config.TaskImages)
	require.True(t, ok)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	got, err := New(root, p.Layout).Plan(ctx, "shop", task)
	require.NoError(t, err)

	dests := make([]string, 0, len(got))
	for _, m := range got {
		require.Len(t, m.Sources, 1)
		dests = append(dests, m.Dest)
	}
	assert.Equal(t, []string{
		"shop/static/shop/images/layout/logo.png",
		"shop/static/shop/images/page0/hero.jpg",
		"shop/static/shop/images/page0/icons/a.svg",
	}, dests)
}

func TestPlanIgnoreAndOverrides(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"blog/assets/bower_components/jquery/jquery.js":     "jq",
		"blog/assets/bower_components/jquery/jquery.min.js": "jqmin",
		"blog/assets/bower_components/jquery/LICENSE":       "no dot",
	})

	cfg := &config.AssetrcConfig{
		Apps:   []string{"blog"},
		Layout: map[string]string{layout.StaticBower: "public/%app/vendor"},
		Tasks: &config.Tasks{
			Vendor: &config.CopyTask{Ignore: []string{"**/*.min.js"}},
		},
	}
	p, err := config.Build(cfg, root)
	require.NoError(t, err)

	task, ok := p.Task(config.TaskVendor)
	require.True(t, ok)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	got, err := New(root, p.Layout).Plan(ctx, "blog", task)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "public/blog/vendor/jquery/jquery.js", got[0].Dest)
	assert.Equal(t, []string{"blog/assets/bower_components/jquery/jquery.js"}, got[0].Sources)
}

func TestPlanMissingSourceDir(t *testing.T) {
	root := t.TempDir()
	p := testPipeline(t, root)
	task, _ := p.Task(config.TaskImages)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	got, err := New(root, p.Layout).Plan(ctx, "blog", task)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanUnknownTemplate(t *testing.T) {
	root := t.TempDir()
	p := testPipeline(t, root)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	_, err := New(root, p.Layout).Plan(ctx, "blog", config.TaskSpec{Kind: "fonts", Source: "assets.fonts", Dest: layout.StaticRoot})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown layout template "assets.fonts"`)
}

func TestPlanUncleanOverrides(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		dest     string
		wantDest string
	}{
		{name: "plain", source: "%app/assets/images", dest: "%app/static/%app/images", wantDest: "blog/static/blog/images/icons/logo.png"},
		{name: "dot_prefix", source: "./%app/assets/images", dest: "./%app/static/%app/images", wantDest: "blog/static/blog/images/icons/logo.png"},
		{name: "double_slash", source: "%app//assets/images", dest: "%app/static//%app/images/", wantDest: "blog/static/blog/images/icons/logo.png"},
		{name: "dot_dot", source: "%app/assets/../assets/images", dest: "%app/static/%app/images", wantDest: "blog/static/blog/images/icons/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{
				"blog/assets/images/icons/logo.png": "png",
			})

			cfg := &config.AssetrcConfig{
				Apps: []string{"blog"},
				Layout: map[string]string{
					layout.AssetsImages: tt.source,
					layout.StaticImages: tt.dest,
				},
			}
			p, err := config.Build(cfg, root)
			require.NoError(t, err)

			task, ok := p.Task(config.TaskImages)
			require.True(t, ok)

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			got, err := New(root, p.Layout).Plan(ctx, "blog", task)
			require.NoError(t, err)

			require.Len(t, got, 1, "source files must be matched whatever the override spelling")
			assert.Equal(t, tt.wantDest, got[0].Dest)
			assert.Equal(t, []string{"blog/assets/images/icons/logo.png"}, got[0].Sources)
		})
	}
}

func TestPlanBundleWithDotPrefixedOverride(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"blog/assets/javascripts/page0/a.js": "a",
		"blog/assets/javascripts/page0/b.js": "b",
	})

	cfg := &config.AssetrcConfig{
		Apps:   []string{"blog"},
		Layout: map[string]string{layout.AssetsJavascripts: "./%app/assets/javascripts"},
	}
	p, err := config.Build(cfg, root)
	require.NoError(t, err)

	task, ok := p.Task(config.TaskScripts)
	require.True(t, ok)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	got, err := New(root, p.Layout).Plan(ctx, "blog", task)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "blog/static/blog/javascripts/page0/page0.js", got[0].Dest)
	assert.Equal(t, []string{
		"blog/assets/javascripts/page0/a.js",
		"blog/assets/javascripts/page0/b.js",
	}, got[0].Sources)
}
