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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🧹 NewCleanOperation creates the clean operation of one application
func NewCleanOperation(opts Options, app string) Operation {
	return &cleanOperation{
		BaseOperation: NewBaseOperation(opts),
		app:           app,
	}
}

type cleanOperation struct {
	BaseOperation
	app string
}

func (op *cleanOperation) Name() string {
	return "clean " + op.app
}

// 🏃 Execute removes the expanded static root of the application and forgets
// its lock entries
func (op *cleanOperation) Execute(ctx context.Context) error {
	dir := op.Pipeline.Layout.Paths(op.app).Static.Root
	logger := zerolog.Ctx(ctx).With().Str("app", op.app).Str("dir", dir).Logger()

	exists, err := op.StatusMgr.FileExists(ctx, dir)
	if err != nil {
		return errors.Errorf("cleaning %s: %w", op.app, err)
	}
	if !exists {
		logger.Debug().Msg("no static output to remove")
		op.StatusMgr.ForgetApp(op.app)
		return nil
	}

	logger.Debug().Msg("removing static output")

	if err := op.StatusMgr.RemoveDir(ctx, dir); err != nil {
		return errors.Errorf("cleaning %s: %w", op.app, err)
	}
	op.StatusMgr.ForgetApp(op.app)
	return nil
}
