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
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/assetrc/cmd/assetrc/commands"
	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/log"
)

// newRootCmd creates the assetrc command tree around o
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assetrc",
		Short: "Build the static assets of one or more web applications",
		Long: `assetrc bundles scripts, copies images and vendor packages from each
application's assets directory into its static directory, following a
configurable path layout where %app stands for the application name.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			logger := setupLogging(cmd.ErrOrStderr(), o.Debug)
			ctx := logger.WithContext(cmd.Context())

			level := zerolog.Disabled
			if o.Debug {
				level = zerolog.DebugLevel
			}
			o.Logger = log.New(cmd.OutOrStdout(), level)
			ctx = log.NewContext(ctx, o.Logger)

			cmd.SetContext(ctx)
			return o.Load(ctx, cmd.OutOrStdout())
		},
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		commands.NewBuildCmd(o),
		commands.NewCleanCmd(o),
		commands.NewStatusCmd(o),
		commands.NewPathsCmd(o),
		commands.NewVendorCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".assetrc.hcl", "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringSliceVar(&o.Apps, "app", nil, "only operate on these apps (repeatable)")
}

// setupLogging creates the zerolog logger carried in the command context
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
