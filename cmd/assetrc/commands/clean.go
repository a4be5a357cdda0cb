package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/operation"
)

// NewCleanCmd creates a new clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the static output of every app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.New(o.Pipeline)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if _, err := op.Clean(ctx); err != nil {
				return errors.Errorf("cleaning: %w", err)
			}

			o.Logger.Successf("removed static output of %s", strings.Join(o.Pipeline.Apps, ", "))
			return nil
		},
	}

	return cmd
}
