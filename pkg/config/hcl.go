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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/assetrc/pkg/pathtmpl"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Templates may be written with the `app` variable instead of the raw
// placeholder token:
//
//	layout = {
//	  "static.images" = "${app}/public/${app}/img"
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

var placeholderSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "placeholder"},
	},
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*AssetrcConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	placeholder, err := readPlaceholder(hclFile.Body)
	if err != nil {
		return nil, err
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"app": cty.StringVal(placeholder),
		},
	}

	var cfg AssetrcConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &cfg, nil
}

// readPlaceholder evaluates the placeholder attribute on its own, before the
// rest of the body, so that `app` can be bound to it.
func readPlaceholder(body hcl.Body) (string, error) {
	content, _, diags := body.PartialContent(placeholderSchema)
	if diags.HasErrors() {
		return "", errors.Errorf("reading placeholder: %s", diags.Error())
	}

	attr, ok := content.Attributes["placeholder"]
	if !ok {
		return pathtmpl.DefaultPlaceholder, nil
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", errors.Errorf("evaluating placeholder: %s", diags.Error())
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", errors.Errorf("placeholder must be a string")
	}
	if val.AsString() == "" {
		return pathtmpl.DefaultPlaceholder, nil
	}
	return val.AsString(), nil
}
