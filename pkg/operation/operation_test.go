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

package operation_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/obfuscator/pkg/config"
	"github.com/walteh/obfuscator/pkg/engine"
	"github.com/walteh/obfuscator/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func TestNew(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		opts        operation.Options
		errContains string
	}{
		{name: "missing_engine", opts: operation.Options{FileSystem: env.fs, Logger: env.logger}, errContains: "engine is required"},
		{name: "missing_fs", opts: operation.Options{Engine: upperEngine(), Logger: env.logger}, errContains: "file system is required"},
		{name: "missing_logger", opts: operation.Options{Engine: upperEngine(), FileSystem: env.fs}, errContains: "logger is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := operation.New(tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestResolve(t *testing.T) {
	env := newTestEnv(t)
	env.writeSource(t, "a.js", "a")
	env.writeSource(t, "c.js", "c")
	a := env.assembler(t, upperEngine())

	got := a.Resolve(env.ctx, []string{"missing1.js", "c.js", "a.js", "missing2.js", "c.js"})

	assert.Equal(t, []string{"c.js", "a.js", "c.js"}, got, "existing paths keep input order")
	assert.Equal(t, 2, strings.Count(env.console.String(), "not found"), "one warning per missing path")
	assert.Contains(t, env.console.String(), "Source file missing1.js not found")
	assert.Contains(t, env.console.String(), "Source file missing2.js not found")
}

func TestResolveEmpty(t *testing.T) {
	env := newTestEnv(t)
	a := env.assembler(t, upperEngine())

	assert.Empty(t, a.Resolve(env.ctx, nil))
	assert.Empty(t, env.console.String())
}

func TestPlan(t *testing.T) {
	tests := []struct {
		dest         string
		wantMode     operation.Mode
		wantFilename string
	}{
		{dest: "out/bundle.js", wantMode: operation.ModeMerge, wantFilename: "bundle.js"},
		{dest: "out/", wantMode: operation.ModeFanOut},
		{dest: `out\bundle.js`, wantMode: operation.ModeMerge, wantFilename: "bundle.js"},
		{dest: `out\`, wantMode: operation.ModeFanOut},
		{dest: `a\b/c.js`, wantMode: operation.ModeMerge, wantFilename: "c.js"},
		{dest: `a/b\c.js`, wantMode: operation.ModeMerge, wantFilename: "c.js"},
		{dest: "bundle.js", wantMode: operation.ModeMerge, wantFilename: "bundle.js"},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			got := operation.Plan(tt.dest)
			assert.Equal(t, tt.wantMode, got.Mode)
			assert.Equal(t, tt.wantFilename, got.FilenameComponent)
		})
	}

	assert.Equal(t, "merge", operation.ModeMerge.String())
	assert.Equal(t, "fanout", operation.ModeFanOut.String())
}

func TestFanOutDestination(t *testing.T) {
	assert.Equal(t, "dist/src/app.js", operation.FanOutDestination("dist/", "src/app.js"))
}

func TestNewExecutionOptions(t *testing.T) {
	banner := "/*hdr*/"
	on := true
	prefix := "app"

	opts := operation.NewExecutionOptions(config.Options{Banner: &banner}, 3)
	assert.Equal(t, "/*hdr*/", opts.Banner)
	assert.Equal(t, "_3", opts.IdentifiersPrefix, "default prefix is underscore")

	opts = operation.NewExecutionOptions(config.Options{
		Banner:                &banner,
		SourceMap:             &on,
		BaseIdentifiersPrefix: &prefix,
		IdentifierNamesCache:  &on,
	}, 0)
	assert.Equal(t, "", opts.Banner, "banner is dropped when source maps are on")
	assert.True(t, opts.SourceMap)
	assert.Equal(t, "app0", opts.IdentifiersPrefix)
	assert.True(t, opts.IdentifierNamesCache.Enabled)
	assert.Nil(t, opts.IdentifierNamesCache.Names)
}

func TestWriteComposesBannerAndCode(t *testing.T) {
	env := newTestEnv(t)
	eng := &MockEngine{}
	eng.On("Obfuscate", mock.Anything, "source", mock.Anything).Return(&engine.Result{Code: "X"}, nil)
	a := env.assembler(t, eng)

	ok := a.Write(env.ctx, "source", 1, "out/app.js", &operation.ExecutionOptions{}, "/*hdr*/\n", "out/app.js")

	require.True(t, ok)
	assert.Equal(t, "/*hdr*/\nX", env.read(t, "out/app.js"))
	assert.False(t, env.exists("out/app.js.map"), "no map unless requested")
	eng.AssertExpectations(t)
}

func TestWriteSourceMap(t *testing.T) {
	env := newTestEnv(t)
	eng := &MockEngine{}
	eng.On("Obfuscate", mock.Anything, "source", mock.MatchedBy(func(o engine.Options) bool {
		return o.SourceMap && o.SourceMapFileName == "dist/src/a.js.map" && o.SourceMapBaseURL == "/maps/"
	})).Return(&engine.Result{
		Code:      "X",
		SourceMap: `{"version":3,"sources":["sourceMap"],"mappings":"AAAA"}`,
	}, nil)
	a := env.assembler(t, eng)

	opts := &operation.ExecutionOptions{SourceMap: true, SourceMapBaseURL: "/maps/"}
	ok := a.Write(env.ctx, "source", 1, "dist/src/a.js", opts, "", "dist/")

	require.True(t, ok)
	assert.Equal(t, "dist/src/a.js.map", opts.SourceMapFileName, "map file name follows the output path")
	assert.Equal(t, "X", env.read(t, "dist/src/a.js"))
	assert.Equal(t,
		`{"version":3,"file": "dist/", "sources":["/maps/dist/"],"mappings":"AAAA"}`,
		env.read(t, "dist/src/a.js.map"),
		"map is labelled with the target dest, not the fan-out path")
	eng.AssertExpectations(t)
}

func TestWriteSourceMapLabel(t *testing.T) {
	env := newTestEnv(t)
	a := env.assembler(t, upperEngine())

	ok := a.Write(env.ctx, "s", 1, "out.js", &operation.ExecutionOptions{SourceMap: true}, "", "out.js")

	require.True(t, ok)
	assert.Equal(t, `{"version":3,"file": "out.js", "sources":["out.js"],"mappings":"AAAA"}`, env.read(t, "out.js.map"))
}

func TestWriteFailure(t *testing.T) {
	tests := []struct {
		name   string
		engine engine.Engine
		errMsg string
	}{
		{
			name: "engine_error",
			engine: engine.EngineFunc(func(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
				return nil, errors.New("unexpected token")
			}),
			errMsg: "obfuscating out.js: unexpected token",
		},
		{
			name: "engine_panic",
			engine: engine.EngineFunc(func(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
				panic("kaboom")
			}),
			errMsg: "engine panicked: kaboom",
		},
		{
			name: "engine_nil_result",
			engine: engine.EngineFunc(func(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
				return nil, nil
			}),
			errMsg: "engine returned no result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			a := env.assembler(t, tt.engine)

			ok := a.Write(env.ctx, "source", 1, "out.js", &operation.ExecutionOptions{SourceMap: true}, "", "out.js")

			assert.False(t, ok)
			assert.False(t, env.exists("out.js"), "no code on failure")
			assert.False(t, env.exists("out.js.map"), "no map on failure")
			assert.Contains(t, env.console.String(), tt.errMsg)
			assert.Contains(t, env.console.String(), "JavaScript obfuscation failed at out.js.")
		})
	}
}

func TestWriteIdentifierNamesCache(t *testing.T) {
	env := newTestEnv(t)

	var seen []map[string]any
	eng := engine.EngineFunc(func(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
		seen = append(seen, opts.IdentifierNamesCache)
		return &engine.Result{
			Code:                 source,
			IdentifierNamesCache: map[string]any{"name_" + source: "a"},
		}, nil
	})
	a := env.assembler(t, eng)

	opts := &operation.ExecutionOptions{IdentifierNamesCache: operation.IdentifierNamesCache{Enabled: true}}
	require.True(t, a.Write(env.ctx, "1", 1, "one.js", opts, "", "one.js"))
	require.True(t, a.Write(env.ctx, "2", 1, "two.js", opts, "", "two.js"))

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0], "first call starts without a cache")
	assert.Equal(t, map[string]any{"name_1": "a"}, seen[1], "second call sees the cache of the first")
	assert.Equal(t, map[string]any{"name_2": "a"}, opts.IdentifierNamesCache.Names)

	disabled := &operation.ExecutionOptions{}
	require.True(t, a.Write(env.ctx, "3", 1, "three.js", disabled, "", "three.js"))
	assert.Nil(t, disabled.IdentifierNamesCache.Names, "cache untouched when not requested")
}
