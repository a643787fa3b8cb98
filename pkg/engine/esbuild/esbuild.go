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

// Package esbuild implements engine.Engine on top of the esbuild transform API.
package esbuild

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
	"github.com/walteh/obfuscator/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

// VirtualSourceName is the name esbuild gives the transformed input inside a source map.
// Downstream map rewriting looks for exactly this name.
const VirtualSourceName = "sourceMap"

var _ engine.Engine = (*Engine)(nil)

// 🔧 Engine minifies and mangles JavaScript through api.Transform
type Engine struct{}

// 🏭 New creates a new esbuild engine
func New() *Engine {
	return &Engine{}
}

// 🔒 Obfuscate implements engine.Engine
func (e *Engine) Obfuscate(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
	logger := zerolog.Ctx(ctx)

	transformOpts, err := buildTransformOptions(ctx, opts)
	if err != nil {
		return nil, errors.Errorf("building transform options: %w", err)
	}

	res := api.Transform(source, transformOpts)
	for _, w := range res.Warnings {
		logger.Debug().Str("warning", formatMessage(w)).Msg("esbuild warning")
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, m := range res.Errors {
			msgs = append(msgs, formatMessage(m))
		}
		return nil, errors.Errorf("esbuild transform failed: %s", strings.Join(msgs, "; "))
	}

	result := &engine.Result{
		Code: string(res.Code),
	}

	if opts.SourceMap {
		var buf bytes.Buffer
		if err := json.Compact(&buf, res.Map); err != nil {
			return nil, errors.Errorf("compacting source map: %w", err)
		}
		result.SourceMap = buf.String()
	}

	if opts.CacheIdentifierNames {
		result.IdentifierNamesCache = res.MangleCache
		if result.IdentifierNamesCache == nil {
			result.IdentifierNamesCache = map[string]any{}
		}
	}

	return result, nil
}

func buildTransformOptions(ctx context.Context, opts engine.Options) (api.TransformOptions, error) {
	to := api.TransformOptions{
		Loader:            api.LoaderJS,
		Sourcefile:        VirtualSourceName,
		Target:            api.ESNext,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		LogLevel:          api.LogLevelSilent,
	}

	if opts.SourceMap {
		to.Sourcemap = api.SourceMapExternal
		to.SourcesContent = api.SourcesContentInclude
		if opts.SourceMapFileName != "" {
			to.Footer = "//# sourceMappingURL=" + opts.SourceMapBaseURL + path.Base(toSlash(opts.SourceMapFileName))
		}
	}

	if opts.CacheIdentifierNames {
		to.MangleCache = make(map[string]interface{}, len(opts.IdentifierNamesCache))
		for k, v := range opts.IdentifierNamesCache {
			to.MangleCache[k] = v
		}
	}

	if err := applyPassThrough(ctx, &to, opts.PassThrough); err != nil {
		return to, err
	}

	if to.Format == api.FormatIIFE && to.GlobalName == "" {
		to.GlobalName = opts.IdentifiersPrefix
	}

	return to, nil
}

func formatMessage(m api.Message) string {
	if m.Location == nil {
		return m.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, m.Text)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
