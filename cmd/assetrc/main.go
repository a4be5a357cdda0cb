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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/status"
)

func main() {
	ctx := setupLogging(os.Stderr, false).WithContext(context.Background())

	rootCmd := newRootCmd(&opts.RootOpts{})
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		status.NewUserLogger(ctx, os.Stderr).LogValidation(false, "Command failed", err)
		zerolog.Ctx(ctx).Debug().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
