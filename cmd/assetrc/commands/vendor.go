package commands

import (
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/operation"
)

// NewVendorCmd creates a new vendor command
func NewVendorCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Fetch vendor packages from GitHub",
		Long: `Vendor downloads every configured vendor_source into the bower components
directory of its app. Set GITHUB_TOKEN to avoid the anonymous rate limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := operation.New(o.Pipeline)
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			o.Logger.Header("fetching vendor packages")

			rep, err := op.Vendor(ctx, o.VendorClient)
			if err != nil {
				return errors.Errorf("fetching vendor packages: %w", err)
			}

			if len(rep.Files) == 0 {
				o.UserLogger.LogStateChange("No vendor sources configured")
				return nil
			}

			for _, f := range rep.Files {
				o.UserLogger.LogFileChange(f)
			}

			created, modified, unchanged, _ := summary(rep)
			o.Logger.Successf("%d fetched, %d updated, %d unchanged", created, modified, unchanged)
			return nil
		},
	}

	return cmd
}
