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
	"github.com/walteh/obfuscator/pkg/engine"
	"github.com/walteh/obfuscator/pkg/log"
	"github.com/walteh/obfuscator/pkg/status"
	"github.com/walteh/obfuscator/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 Write obfuscates source and persists the result at destPath, plus destPath+".map"
// when source maps are on. sources is how many input files were folded into source.
// banner must already be normalized. mapFileLabel is the target's original dest and
// names the file inside the map.
//
// Failures are logged and reported as false; they never propagate.
func (a *Assembler) Write(ctx context.Context, source string, sources int, destPath string, opts *ExecutionOptions, banner, mapFileLabel string) bool {
	logger := zerolog.Ctx(ctx).With().Str("dest", destPath).Logger()

	state := status.StatusPending
	transition := func(ok bool) {
		state = state.Next(ok)
		logger.Debug().Stringer("state", state).Msg("output state")
	}

	if opts.SourceMap {
		opts.SourceMapFileName = destPath + ".map"
	}

	transition(true)
	mapWritten, err := a.write(ctx, source, destPath, opts, banner, mapFileLabel)
	transition(err == nil)

	a.logger.LogFileOperation(ctx, log.FileOperation{
		Dest:    destPath,
		Sources: sources,
		Failed:  state == status.StatusFailed,
		HasMap:  mapWritten,
	})

	if err != nil {
		a.logger.Error(err)
		a.logger.Warnf("JavaScript obfuscation failed at %s.", destPath)
		return false
	}

	return true
}

func (a *Assembler) write(ctx context.Context, source, destPath string, opts *ExecutionOptions, banner, mapFileLabel string) (bool, error) {
	result, err := a.obfuscate(ctx, source, opts.engineOptions())
	if err != nil {
		return false, errors.Errorf("obfuscating %s: %w", destPath, err)
	}

	if err := a.fs.Write(ctx, destPath, banner+result.Code); err != nil {
		return false, errors.Errorf("writing %s: %w", destPath, err)
	}

	mapWritten := false
	if opts.SourceMap {
		rewritten := text.RewriteSourceMap(result.SourceMap, mapFileLabel, opts.SourceMapBaseURL)
		if !rewritten.WasModified {
			zerolog.Ctx(ctx).Warn().
				Str("dest", destPath).
				Str("placeholder", text.SourceMapPlaceholder).
				Msg("source map placeholder not found, writing map unchanged")
		}

		mapPath := destPath + ".map"
		if err := a.fs.Write(ctx, mapPath, rewritten.Content); err != nil {
			return false, errors.Errorf("writing %s: %w", mapPath, err)
		}
		mapWritten = true
	}

	if opts.IdentifierNamesCache.Enabled {
		opts.IdentifierNamesCache.Names = result.IdentifierNamesCache
	}

	return mapWritten, nil
}

// obfuscate is the single call site of the engine. Panics become errors.
func (a *Assembler) obfuscate(ctx context.Context, source string, opts engine.Options) (result *engine.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Errorf("engine panicked: %v", r)
		}
	}()

	result, err = a.engine.Obfuscate(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.Errorf("engine returned no result")
	}
	return result, nil
}
