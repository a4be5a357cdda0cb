package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	p := Default().Paths("main")

	assert.Equal(t, "main", p.App)
	assert.Equal(t, "main/assets", p.Assets.Root)
	assert.Equal(t, "main/assets/bower_components", p.Assets.Bower)
	assert.Equal(t, "main/assets/javascripts", p.Assets.Javascripts)
	assert.Equal(t, "main/assets/tests", p.Assets.Tests)
	assert.Equal(t, "main/assets/stylesheets", p.Assets.Stylesheets)
	assert.Equal(t, "main/assets/images", p.Assets.Images)

	assert.Equal(t, "main/static", p.Static.Root)
	assert.Equal(t, "main/static/bower_components", p.Static.Bower)
	assert.Equal(t, "main/static/main", p.Static.App)
	assert.Equal(t, "main/static/main/javascripts", p.Static.Javascripts)
	assert.Equal(t, "main/static/main/stylesheets", p.Static.Stylesheets)
	assert.Equal(t, "main/static/main/images", p.Static.Images)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		placeholder string
		overrides   map[string]string
		errContains string
		check       func(t *testing.T, l *Layout)
	}{
		{
			name: "override_single_template",
			overrides: map[string]string{
				StaticImages: "%app/public/img",
			},
			check: func(t *testing.T, l *Layout) {
				p := l.Paths("blog")
				assert.Equal(t, "blog/public/img", p.Static.Images)
				assert.Equal(t, "blog/static/blog/javascripts", p.Static.Javascripts, "other templates keep defaults")
			},
		},
		{
			name:        "custom_placeholder_rewrites_defaults",
			placeholder: "{app}",
			overrides: map[string]string{
				AssetsImages: "{app}/img",
			},
			check: func(t *testing.T, l *Layout) {
				assert.Equal(t, "{app}", l.Placeholder())

				tmpl, err := l.Dir(StaticApp)
				require.NoError(t, err)
				assert.Equal(t, "{app}/static/{app}", tmpl.String())

				p := l.Paths("shop")
				assert.Equal(t, "shop/img", p.Assets.Images)
				assert.Equal(t, "shop/static/shop", p.Static.App)
			},
		},
		{
			name: "unknown_override",
			overrides: map[string]string{
				"static.fonts": "%app/fonts",
			},
			errContains: `unknown layout template "static.fonts"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.placeholder, tt.overrides)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestDir(t *testing.T) {
	l := Default()

	tmpl, err := l.Dir(AssetsJavascripts)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog/assets/javascripts", "shop/assets/javascripts"}, tmpl.Directories([]string{"blog", "shop"}))

	_, err = l.Dir("assets.fonts")
	require.Error(t, err)

	names := l.Names()
	require.Len(t, names, 12)
	assert.Equal(t, AssetsRoot, names[0])
	assert.Equal(t, StaticImages, names[len(names)-1])
}
