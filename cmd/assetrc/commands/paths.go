package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/assetrc/cmd/assetrc/opts"
	"github.com/walteh/assetrc/pkg/layout"
)

// NewPathsCmd creates a new paths command
func NewPathsCmd(o *opts.RootOpts) *cobra.Command {
	var suffix string

	cmd := &cobra.Command{
		Use:   "paths [template]",
		Short: "Print layout directories",
		Long: `Paths prints the directories a layout template expands to, one per app.
Without a template it prints the whole expanded layout of every app as YAML.

Templates: assets.root, assets.bower, assets.javascripts, assets.tests,
assets.stylesheets, assets.images, static.root, static.bower, static.app,
static.javascripts, static.stylesheets, static.images`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := o.Pipeline

			if len(args) == 0 {
				if suffix != "" {
					return errors.New("--suffix needs a template")
				}
				all := make([]layout.Paths, 0, len(p.Apps))
				for _, app := range p.Apps {
					all = append(all, p.Layout.Paths(app))
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(all); err != nil {
					return errors.Errorf("encoding layout: %w", err)
				}
				return enc.Close()
			}

			tmpl, err := p.Layout.Dir(args[0])
			if err != nil {
				return err
			}
			for _, dir := range tmpl.Subdirectories(p.Apps, suffix) {
				if _, err := fmt.Fprintln(out, dir); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "append this to every directory (e.g. /**/*.js)")
	return cmd
}
