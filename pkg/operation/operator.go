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

package operation

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/status"
	"github.com/walteh/assetrc/pkg/vendor"
)

// 🎯 Operator runs the pipeline commands
type Operator interface {
	// Build writes every output of the pipeline, removes orphans and updates the lock file
	Build(ctx context.Context) (*Report, error)
	// Clean removes the static output of every app
	Clean(ctx context.Context) (*Report, error)
	// Status is a dry-run build reporting whether a build is needed
	Status(ctx context.Context) (*Report, error)
	// Vendor fetches the configured vendor sources
	Vendor(ctx context.Context, client vendor.Client) (*Report, error)
}

// 📋 Report is the outcome of one Operator call
type Report struct {
	Files       []status.FileInfo
	ConfigDrift bool // the lock file was written by a different configuration
	NeedsBuild  bool // only set by Status
}

// Counts returns how many files have each status.
func (r *Report) Counts() map[status.FileStatus]int {
	counts := make(map[status.FileStatus]int)
	for _, f := range r.Files {
		counts[f.Status]++
	}
	return counts
}

// 🏭 New creates an operator for p
func New(p config.Pipeline) (Operator, error) {
	if p.Layout == nil {
		return nil, errors.New("pipeline has no layout")
	}
	if len(p.Apps) == 0 {
		return nil, errors.New("pipeline has no apps")
	}
	return &operator{pipeline: p}, nil
}

type operator struct {
	pipeline config.Pipeline
}

func (o *operator) newManager(ctx context.Context, dryRun bool) (*status.Manager, error) {
	mgr := status.New(o.pipeline.Root, status.Options{DryRun: dryRun, Force: o.pipeline.Flags.Force})
	if _, err := mgr.LoadLock(ctx); err != nil {
		return nil, errors.Errorf("loading lock file: %w", err)
	}
	return mgr, nil
}

func (o *operator) runner(ctx context.Context) *OperationRunner {
	return NewRunner(zerolog.Ctx(ctx), o.pipeline.Flags.Async)
}

func (o *operator) perApp(opts Options, newOp func(Options, string) Operation) []Operation {
	ops := make([]Operation, 0, len(o.pipeline.Apps))
	for _, app := range o.pipeline.Apps {
		ops = append(ops, newOp(opts, app))
	}
	return ops
}

// build runs the optional clean, the builds and the orphan cleanup against mgr
func (o *operator) build(ctx context.Context, mgr *status.Manager) error {
	opts := Options{Pipeline: o.pipeline, StatusMgr: mgr}

	if o.pipeline.Flags.Clean && !mgr.DryRun() {
		// clean always runs before any build starts
		if err := o.runner(ctx).Run(ctx, o.perApp(opts, NewCleanOperation)...); err != nil {
			return errors.Errorf("cleaning: %w", err)
		}
	}

	if err := o.runner(ctx).Run(ctx, o.perApp(opts, NewBuildOperation)...); err != nil {
		return errors.Errorf("building: %w", err)
	}

	for _, orphan := range mgr.Orphans(o.pipeline.Apps) {
		zerolog.Ctx(ctx).Debug().Str("path", orphan.Path).Msg("removing orphaned output")
		if err := mgr.RemoveOutput(ctx, orphan); err != nil {
			return errors.Errorf("removing orphan %s: %w", orphan.Path, err)
		}
	}
	return nil
}

func (o *operator) report(ctx context.Context, mgr *status.Manager) (*Report, error) {
	files, err := mgr.ListFiles(ctx)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}
	return &Report{
		Files:       files,
		ConfigDrift: mgr.ConfigDrift(o.pipeline.ConfigHash),
	}, nil
}

func (o *operator) Build(ctx context.Context) (*Report, error) {
	zerolog.Ctx(ctx).Debug().Strs("apps", o.pipeline.Apps).Msg("building")

	mgr, err := o.newManager(ctx, false)
	if err != nil {
		return nil, err
	}

	if err := o.build(ctx, mgr); err != nil {
		return nil, err
	}

	rep, err := o.report(ctx, mgr)
	if err != nil {
		return nil, err
	}

	if err := mgr.SaveLock(ctx, o.pipeline.ConfigHash, o.pipeline.Apps); err != nil {
		return nil, errors.Errorf("saving lock file: %w", err)
	}
	return rep, nil
}

func (o *operator) Clean(ctx context.Context) (*Report, error) {
	zerolog.Ctx(ctx).Debug().Strs("apps", o.pipeline.Apps).Msg("cleaning")

	mgr, err := o.newManager(ctx, false)
	if err != nil {
		return nil, err
	}

	opts := Options{Pipeline: o.pipeline, StatusMgr: mgr}
	if err := o.runner(ctx).Run(ctx, o.perApp(opts, NewCleanOperation)...); err != nil {
		return nil, errors.Errorf("cleaning: %w", err)
	}

	rep, err := o.report(ctx, mgr)
	if err != nil {
		return nil, err
	}

	if err := mgr.SaveLock(ctx, o.pipeline.ConfigHash, o.pipeline.Apps); err != nil {
		return nil, errors.Errorf("saving lock file: %w", err)
	}
	return rep, nil
}

func (o *operator) Status(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("checking status")

	mgr, err := o.newManager(ctx, true)
	if err != nil {
		return nil, err
	}

	if err := o.build(ctx, mgr); err != nil {
		return nil, err
	}

	rep, err := o.report(ctx, mgr)
	if err != nil {
		return nil, err
	}

	rep.NeedsBuild = mgr.Changed() || rep.ConfigDrift
	logger.Debug().Bool("needs_build", rep.NeedsBuild).Bool("config_drift", rep.ConfigDrift).Msg("status checked")
	return rep, nil
}

func (o *operator) Vendor(ctx context.Context, client vendor.Client) (*Report, error) {
	if len(o.pipeline.VendorSources) == 0 {
		zerolog.Ctx(ctx).Debug().Msg("no vendor sources configured")
		return &Report{}, nil
	}

	// fetched files are sources, not outputs, so the lock file is not touched
	mgr := status.New(o.pipeline.Root, status.Options{Force: o.pipeline.Flags.Force})
	opts := Options{Pipeline: o.pipeline, StatusMgr: mgr}

	var ops []Operation
	for _, src := range o.pipeline.VendorSources {
		if !slices.Contains(o.pipeline.Apps, src.App) {
			continue
		}
		ops = append(ops, NewVendorOperation(opts, client, src))
	}

	if err := o.runner(ctx).Run(ctx, ops...); err != nil {
		return nil, errors.Errorf("fetching vendor sources: %w", err)
	}

	files, err := mgr.ListFiles(ctx)
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}
	return &Report{Files: files}, nil
}
