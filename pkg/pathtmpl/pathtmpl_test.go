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

package pathtmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		app      string
		want     string
	}{
		{
			name:     "no_placeholder",
			template: "static/bower_components",
			app:      "blog",
			want:     "static/bower_components",
		},
		{
			name:     "single_placeholder",
			template: "%app/assets/javascripts",
			app:      "blog",
			want:     "blog/assets/javascripts",
		},
		{
			name:     "double_placeholder",
			template: "%app/static/%app/images",
			app:      "shop",
			want:     "shop/static/shop/images",
		},
		{
			name:     "adjacent_placeholders",
			template: "%app%app",
			app:      "ab",
			want:     "abab",
		},
		{
			name:     "no_identifier_keeps_raw",
			template: "%app/static/%app",
			app:      "",
			want:     "%app/static/%app",
		},
		{
			name:     "identifier_containing_placeholder_is_literal",
			template: "%app/assets",
			app:      "%app",
			want:     "%app/assets",
		},
		{
			name:     "empty_template",
			template: "",
			app:      "blog",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustParse(tt.template)
			assert.Equal(t, tt.want, tmpl.Expand(tt.app))
			assert.Equal(t, tmpl.Expand(tt.app), tmpl.Expand(tt.app), "expansion should be pure")
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("custom_placeholder", func(t *testing.T) {
		tmpl, err := Parse("{app}/assets/{app}", "{app}")
		require.NoError(t, err)
		assert.Equal(t, 2, tmpl.Slots())
		assert.Equal(t, "main/assets/main", tmpl.Expand("main"))
		assert.Equal(t, "{app}/assets/{app}", tmpl.String())
	})

	t.Run("empty_placeholder", func(t *testing.T) {
		_, err := Parse("%app/assets", "")
		require.ErrorIs(t, err, ErrEmptyPlaceholder)
	})

	t.Run("slot_count", func(t *testing.T) {
		assert.Equal(t, 0, MustParse("static").Slots())
		assert.Equal(t, 1, MustParse("%app/static").Slots())
		assert.Equal(t, 2, MustParse("%app/static/%app").Slots())
	})
}

func TestDirectories(t *testing.T) {
	tmpl := MustParse("%app/assets/javascripts")

	got := tmpl.Directories([]string{"blog", "shop"})
	assert.Equal(t, []string{"blog/assets/javascripts", "shop/assets/javascripts"}, got)

	ids := []string{"a1", "a2", "a3"}
	got = tmpl.Directories(ids)
	require.Len(t, got, 3)
	for i, id := range ids {
		assert.Equal(t, tmpl.Expand(id), got[i])
	}

	got = tmpl.Directories([]string{"blog", "blog"})
	assert.Equal(t, []string{"blog/assets/javascripts", "blog/assets/javascripts"}, got, "duplicates are kept")

	assert.Empty(t, tmpl.Directories(nil))
}

func TestSubdirectories(t *testing.T) {
	tmpl := MustParse("%app/static/%app/images")
	ids := []string{"blog", "shop", "main"}

	dirs := tmpl.Directories(ids)
	subs := tmpl.Subdirectories(ids, "/x")
	require.Len(t, subs, len(dirs))
	for i := range dirs {
		assert.Equal(t, dirs[i]+"/x", subs[i])
	}

	// the directory set must not be affected by the suffix
	assert.Equal(t, "blog/static/blog/images", tmpl.Directories(ids)[0])
}

func TestStripPrefix(t *testing.T) {
	tmpl := MustParse("%app/assets/images")

	tests := []struct {
		name      string
		candidate string
		want      string
		wantFound bool
	}{
		{
			name:      "match",
			candidate: tmpl.Expand("blog") + "/rest/of/path",
			want:      "/rest/of/path",
			wantFound: true,
		},
		{
			name:      "no_match",
			candidate: "unrelated/string",
			want:      "unrelated/string",
			wantFound: false,
		},
		{
			name:      "match_in_middle",
			candidate: "/srv/blog/assets/images/a.png",
			want:      "/a.png",
			wantFound: true,
		},
		{
			name:      "first_occurrence_wins",
			candidate: "blog/assets/images/blog/assets/images/b.png",
			want:      "/blog/assets/images/b.png",
			wantFound: true,
		},
		{
			name:      "exact_match",
			candidate: "blog/assets/images",
			want:      "",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tmpl.StripPrefix("blog", tt.candidate))

			rest, found := tmpl.CutPrefix("blog", tt.candidate)
			assert.Equal(t, tt.want, rest)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}
