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

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/plan"
	"github.com/walteh/assetrc/pkg/status"
)

// 🎯 Operation is one unit of work, usually scoped to a single application
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🔧 Options are shared by every operation of one run
type Options struct {
	Pipeline  config.Pipeline
	StatusMgr *status.Manager
}

// BaseOperation carries the shared options and the planner built from them.
type BaseOperation struct {
	Options
	Planner *plan.Planner
}

func NewBaseOperation(opts Options) BaseOperation {
	return BaseOperation{
		Options: opts,
		Planner: plan.New(opts.Pipeline.Root, opts.Pipeline.Layout),
	}
}
