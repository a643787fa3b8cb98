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
	"encoding/json"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

type hclOptions struct {
	Banner                *string        `hcl:"banner,optional"`
	SourceMap             *bool          `hcl:"source_map,optional"`
	SourceMapBaseURL      *string        `hcl:"source_map_base_url,optional"`
	BaseIdentifiersPrefix *string        `hcl:"base_identifiers_prefix,optional"`
	IdentifierNamesCache  *bool          `hcl:"identifier_names_cache,optional"`
	Engine                hcl.Expression `hcl:"engine,optional"`
}

type hclTarget struct {
	Name    string      `hcl:"name,label"`
	Src     []string    `hcl:"src,optional"`
	Dest    string      `hcl:"dest"`
	Options *hclOptions `hcl:"options,block"`
}

type hclTask struct {
	Options *hclOptions `hcl:"options,block"`
	Targets []hclTarget `hcl:"target,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the task from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Task, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclTask
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	task := &Task{}
	var err error
	if task.Options, err = raw.Options.toOptions(evalCtx); err != nil {
		return nil, errors.Errorf("task options: %w", err)
	}

	for _, t := range raw.Targets {
		target := Target{
			Name: t.Name,
			Src:  t.Src,
			Dest: t.Dest,
		}
		if target.Options, err = t.Options.toOptions(evalCtx); err != nil {
			return nil, errors.Errorf("target %q options: %w", t.Name, err)
		}
		task.Targets = append(task.Targets, target)
	}

	return task, nil
}

func (o *hclOptions) toOptions(evalCtx *hcl.EvalContext) (Options, error) {
	if o == nil {
		return Options{}, nil
	}

	opts := Options{
		Banner:                o.Banner,
		SourceMap:             o.SourceMap,
		SourceMapBaseURL:      o.SourceMapBaseURL,
		BaseIdentifiersPrefix: o.BaseIdentifiersPrefix,
		IdentifierNamesCache:  o.IdentifierNamesCache,
	}

	if o.Engine == nil {
		return opts, nil
	}

	val, diags := o.Engine.Value(evalCtx)
	if diags.HasErrors() {
		return opts, errors.Errorf("evaluating engine: %s", diags.Error())
	}
	if val.IsNull() {
		return opts, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return opts, errors.Errorf("engine must be an object, got %s", val.Type().FriendlyName())
	}

	// cty -> JSON -> plain Go values, the same shape the YAML and JSON parsers produce
	encoded, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return opts, errors.Errorf("encoding engine: %w", err)
	}
	if err := json.Unmarshal(encoded, &opts.Engine); err != nil {
		return opts, errors.Errorf("decoding engine: %w", err)
	}

	return opts, nil
}
