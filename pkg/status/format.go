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
	"fmt"
)

// FileFormatter defines how output operations and progress are rendered
type FileFormatter interface {
	// FormatFileOperation formats an output status message
	FormatFileOperation(path, task, status string, isNew, isModified, isRemoved bool) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter renders one emoji-prefixed line per output
type DefaultFileFormatter struct{}

func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

func (f *DefaultFileFormatter) FormatFileOperation(path, task, status string, isNew, isModified, isRemoved bool) string {
	switch {
	case isNew:
		return fmt.Sprintf("✨ Built %s", path)
	case isModified:
		return fmt.Sprintf("📝 Rebuilt %s", path)
	case isRemoved:
		return fmt.Sprintf("🗑️  Removed %s", path)
	case status == "error":
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	switch {
	case total > 0:
		percentage = float64(current) / float64(total) * 100
	case current > 0:
		percentage = 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

// FormatInfo renders info with f.
func FormatInfo(f FileFormatter, info FileInfo) string {
	if info.Error != nil {
		return f.FormatError(info.Error)
	}
	return f.FormatFileOperation(
		info.Path,
		info.Task,
		info.Status.String(),
		info.Status == StatusNew,
		info.Status == StatusModified,
		info.Status == StatusDeleted,
	)
}
