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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger prints user-facing feedback about outputs and mirrors every
// line to the zerolog logger in the context.
type UserLogger struct {
	out io.Writer
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a user logger writing to out (stdout when nil)
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	if out == nil {
		out = os.Stdout
	}
	return &UserLogger{
		out: out,
		log: *zerolog.Ctx(ctx),
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogFileChange prints one output with a prefix for its status
func (u *UserLogger) LogFileChange(info FileInfo) {
	var printer *pterm.PrefixPrinter
	var action string
	switch info.Status {
	case StatusNew:
		printer, action = u.printer(pterm.Success, "✨"), "Built"
	case StatusModified:
		printer, action = u.printer(pterm.Info, "🔄"), "Rebuilt"
	case StatusDeleted:
		printer, action = u.printer(pterm.Warning, "🗑️"), "Removed"
	default:
		printer, action = u.printer(pterm.Info, "⏭️"), "Unchanged"
	}

	msg := fmt.Sprintf("%s %s", action, info.Path)
	if info.Task != "" {
		msg += fmt.Sprintf(" (%s)", info.Task)
	}

	if info.Error != nil {
		u.printer(pterm.Error, "❌").Println(msg)
		u.log.Error().Err(info.Error).Msg(msg)
		return
	}
	printer.Println(msg)
	u.log.Debug().Msg(msg)
}

// 📊 LogStateChange prints a summary line
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation prints the outcome of a check
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(fmt.Sprintf("%s: %v", description, err))
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}
