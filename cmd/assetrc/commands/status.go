package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/operation"
)

// ErrBuildNeeded is returned by the status command when outputs are stale.
var ErrBuildNeeded = errors.Base("build needed")

// NewStatusCmd creates a new status command
func NewStatusCmd(o *opts.RootOpts) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the static output is up to date",
		Long: `Status runs a build without writing anything and reports every output
that would be created, rewritten or removed. It fails when a build is needed,
which makes it usable as a CI check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.New(o.Pipeline)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			rep, err := op.Status(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if !quiet {
				printReport(ctx, o, o.Pipeline, rep)
			}

			if rep.ConfigDrift {
				o.UserLogger.LogValidation(false, "Configuration changed since the last build", nil)
			}

			if rep.NeedsBuild {
				created, modified, _, removed := summary(rep)
				o.Logger.Errorf("build needed: %d new, %d modified, %d removed", created, modified, removed)
				return errors.WithDetails(ErrBuildNeeded, "new", created, "modified", modified, "removed", removed)
			}

			o.UserLogger.LogValidation(true, "Static output is up to date", nil)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the verdict")
	return cmd
}
