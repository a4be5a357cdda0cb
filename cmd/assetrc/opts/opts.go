package opts

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/log"
	"github.com/walteh/assetrc/pkg/status"
	"github.com/walteh/assetrc/pkg/vendor"
)

// RootOpts contains shared options used by all commands. The flag fields are
// bound by the root command; the rest is filled in by Load before any
// subcommand runs.
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Apps       []string

	Config       *config.AssetrcConfig
	Pipeline     config.Pipeline
	Logger       *log.Logger
	UserLogger   *status.UserLogger
	VendorClient vendor.Client
}

// Load reads the configuration, resolves the pipeline for the selected apps
// and creates the loggers writing to out.
func (o *RootOpts) Load(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	pipeline, err := config.Build(cfg, "")
	if err != nil {
		return errors.Errorf("resolving config: %w", err)
	}

	pipeline, err = pipeline.WithApps(o.Apps)
	if err != nil {
		return errors.Errorf("selecting apps: %w", err)
	}

	o.Config = cfg
	o.Pipeline = pipeline
	o.UserLogger = status.NewUserLogger(ctx, out)
	if o.VendorClient == nil {
		o.VendorClient = vendor.NewClient()
	}
	return nil
}
