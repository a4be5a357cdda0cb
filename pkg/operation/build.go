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
	"bytes"
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/plan"
	"github.com/walteh/assetrc/pkg/status"
)

// 📦 NewBuildOperation creates the build operation of one application
func NewBuildOperation(opts Options, app string) Operation {
	return &buildOperation{
		BaseOperation: NewBaseOperation(opts),
		app:           app,
	}
}

type buildOperation struct {
	BaseOperation
	app string
}

func (op *buildOperation) Name() string {
	return "build " + op.app
}

// 🏃 Execute plans every enabled task and hands each output to the status
// manager
func (op *buildOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("app", op.app).Logger()
	ctx = logger.WithContext(ctx)

	for _, task := range op.Pipeline.Tasks {
		mappings, err := op.Planner.Plan(ctx, op.app, task)
		if err != nil {
			return errors.Errorf("planning %s: %w", task.Kind, err)
		}

		op.StatusMgr.StartOperation(ctx, len(mappings))
		for _, m := range mappings {
			if err := op.processMapping(ctx, task, m); err != nil {
				return errors.Errorf("building %s: %w", m.Dest, err)
			}
			op.StatusMgr.UpdateProgress(ctx, 1)
		}
	}

	op.StatusMgr.FinishOperation(ctx)
	return nil
}

func (op *buildOperation) processMapping(ctx context.Context, task config.TaskSpec, m plan.Mapping) error {
	content, err := op.render(ctx, task, m)
	if err != nil {
		return err
	}

	_, err = op.StatusMgr.PutOutput(ctx, status.FileInfo{
		Path:    m.Dest,
		App:     m.App,
		Task:    string(m.Task),
		Sources: m.Sources,
	}, content)
	return err
}

// 🔄 render produces the output bytes of a mapping: the single source as is,
// or every source joined with the task separator.
func (op *buildOperation) render(ctx context.Context, task config.TaskSpec, m plan.Mapping) ([]byte, error) {
	if task.Rename != config.RenameBundle {
		return op.readSource(ctx, m.Sources[0])
	}

	parts := make([][]byte, 0, len(m.Sources))
	for _, src := range m.Sources {
		content, err := op.readSource(ctx, src)
		if err != nil {
			return nil, err
		}
		parts = append(parts, content)
	}

	zerolog.Ctx(ctx).Debug().Str("dest", m.Dest).Int("sources", len(parts)).Msg("bundling sources")
	return bytes.Join(parts, []byte(task.Separator)), nil
}

func (op *buildOperation) readSource(ctx context.Context, src string) ([]byte, error) {
	content, err := op.StatusMgr.ReadFile(ctx, src)
	if err != nil {
		return nil, errors.Errorf("reading source: %w", err)
	}
	return content, nil
}
