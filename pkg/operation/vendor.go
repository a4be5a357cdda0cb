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

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/config"
	"github.com/walteh/assetrc/pkg/vendor"
)

// 📥 NewVendorOperation creates an operation fetching one vendor source
func NewVendorOperation(opts Options, client vendor.Client, src config.VendorSource) Operation {
	return &vendorOperation{
		BaseOperation: NewBaseOperation(opts),
		fetcher:       vendor.NewFetcher(client, opts.Pipeline.Layout, opts.StatusMgr),
		src:           src,
	}
}

type vendorOperation struct {
	BaseOperation
	fetcher *vendor.Fetcher
	src     config.VendorSource
}

func (op *vendorOperation) Name() string {
	return "vendor " + op.src.App + "/" + op.src.Name
}

func (op *vendorOperation) Execute(ctx context.Context) error {
	if err := op.fetcher.Fetch(ctx, op.src); err != nil {
		return errors.Errorf("fetching %s into %s: %w", op.src.Repo, op.fetcher.Destination(op.src), err)
	}
	return nil
}
