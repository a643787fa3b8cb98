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

package esbuild

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var targets = map[string]api.Target{
	"esnext": api.ESNext,
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
}

var formats = map[string]api.Format{
	"iife": api.FormatIIFE,
	"cjs":  api.FormatCommonJS,
	"esm":  api.FormatESModule,
}

var charsets = map[string]api.Charset{
	"ascii": api.CharsetASCII,
	"utf8":  api.CharsetUTF8,
}

var legalComments = map[string]api.LegalComments{
	"none":   api.LegalCommentsNone,
	"inline": api.LegalCommentsInline,
	"eof":    api.LegalCommentsEndOfFile,
}

// applyPassThrough maps the engine specific option keys onto the transform options.
// Unknown keys are ignored.
func applyPassThrough(ctx context.Context, to *api.TransformOptions, passThrough map[string]any) error {
	logger := zerolog.Ctx(ctx)

	for key, raw := range passThrough {
		var err error
		switch key {
		case "target":
			err = lookup(raw, targets, &to.Target)
		case "format":
			err = lookup(raw, formats, &to.Format)
		case "charset":
			err = lookup(raw, charsets, &to.Charset)
		case "legalComments":
			err = lookup(raw, legalComments, &to.LegalComments)
		case "minifyWhitespace":
			err = asBool(raw, &to.MinifyWhitespace)
		case "minifyIdentifiers":
			err = asBool(raw, &to.MinifyIdentifiers)
		case "minifySyntax":
			err = asBool(raw, &to.MinifySyntax)
		case "keepNames":
			err = asBool(raw, &to.KeepNames)
		case "mangleProps":
			err = asString(raw, &to.MangleProps)
		case "reserveProps":
			err = asString(raw, &to.ReserveProps)
		case "globalName":
			err = asString(raw, &to.GlobalName)
		case "drop":
			err = asDrop(raw, &to.Drop)
		default:
			logger.Debug().Str("option", key).Msg("ignoring unknown engine option")
		}
		if err != nil {
			return errors.Errorf("engine option %q: %w", key, err)
		}
	}

	return nil
}

func lookup[T any](raw any, table map[string]T, dst *T) error {
	var name string
	if err := asString(raw, &name); err != nil {
		return err
	}
	v, ok := table[strings.ToLower(name)]
	if !ok {
		return errors.Errorf("unsupported value %q", name)
	}
	*dst = v
	return nil
}

func asString(raw any, dst *string) error {
	s, ok := raw.(string)
	if !ok {
		return errors.Errorf("expected string, got %T", raw)
	}
	*dst = s
	return nil
}

func asBool(raw any, dst *bool) error {
	b, ok := raw.(bool)
	if !ok {
		return errors.Errorf("expected bool, got %T", raw)
	}
	*dst = b
	return nil
}

func asDrop(raw any, dst *api.Drop) error {
	items, ok := raw.([]any)
	if !ok {
		return errors.Errorf("expected list, got %T", raw)
	}
	for _, item := range items {
		var name string
		if err := asString(item, &name); err != nil {
			return err
		}
		switch name {
		case "console":
			*dst |= api.DropConsole
		case "debugger":
			*dst |= api.DropDebugger
		default:
			return errors.Errorf("unsupported drop value %q", name)
		}
	}
	return nil
}
