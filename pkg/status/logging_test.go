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

package status

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestUserLogger(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	tests := []struct {
		name  string
		write func(u *UserLogger)
		want  []string
	}{
		{
			name: "new_output",
			write: func(u *UserLogger) {
				u.LogFileChange(FileInfo{Path: "blog/static/a.js", Task: "scripts", Status: StatusNew})
			},
			want: []string{"Built blog/static/a.js (scripts)"},
		},
		{
			name: "removed_output",
			write: func(u *UserLogger) {
				u.LogFileChange(FileInfo{Path: "old.png", Status: StatusDeleted})
			},
			want: []string{"Removed old.png"},
		},
		{
			name: "failed_output",
			write: func(u *UserLogger) {
				u.LogFileChange(FileInfo{Path: "x.js", Status: StatusNew, Error: errors.New("boom")})
			},
			want: []string{"Built x.js"},
		},
		{
			name: "state_change",
			write: func(u *UserLogger) {
				u.LogStateChange("3 outputs up to date")
			},
			want: []string{"3 outputs up to date"},
		},
		{
			name: "validation",
			write: func(u *UserLogger) {
				u.LogValidation(true, "config ok", nil)
				u.LogValidation(false, "config changed", nil)
				u.LogValidation(false, "lock unreadable", errors.New("bad json"))
			},
			want: []string{"config ok", "config changed", "lock unreadable: bad json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			u := NewUserLogger(testContext(t), &buf)
			tt.write(u)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}
