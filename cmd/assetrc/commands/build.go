package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/operation"
)

// NewBuildCmd creates a new build command
func NewBuildCmd(o *opts.RootOpts) *cobra.Command {
	var async, force, clean bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static output of every app",
		Long: `Build writes each app's static directory from its assets directory.
It will:
1. Optionally remove the static directories first (--clean)
2. Bundle scripts per page directory and copy images and vendor files
3. Remove outputs of an earlier build that are no longer produced
4. Record what it wrote in the lock file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p := o.Pipeline
			p.Flags.Async = p.Flags.Async || async
			p.Flags.Force = p.Flags.Force || force
			p.Flags.Clean = p.Flags.Clean || clean

			op, err := operation.New(p)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			o.Logger.Header("building assets")
			if len(o.Apps) > 0 {
				o.Logger.Infof("building %s only", strings.Join(p.Apps, ", "))
			}

			rep, err := op.Build(ctx)
			if err != nil {
				return errors.Errorf("building: %w", err)
			}

			printReport(ctx, o, p, rep)

			if rep.ConfigDrift {
				o.Logger.Warningf("configuration changed since the last build (%s)", o.ConfigFile)
			}

			created, modified, unchanged, removed := summary(rep)
			o.Logger.Successf("%d built, %d rebuilt, %d unchanged, %d removed", created, modified, unchanged, removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "build apps concurrently")
	cmd.Flags().BoolVar(&force, "force", false, "rewrite outputs even when unchanged")
	cmd.Flags().BoolVar(&clean, "clean", false, "remove static output before building")
	return cmd
}
