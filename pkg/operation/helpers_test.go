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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/obfuscator/pkg/engine"
	"github.com/walteh/obfuscator/pkg/filesystem"
	"github.com/walteh/obfuscator/pkg/log"
	"github.com/walteh/obfuscator/pkg/operation"
)

// 🔧 MockEngine is a mock implementation of the engine.Engine interface
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Obfuscate(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
	args := m.Called(ctx, source, opts)
	res, _ := args.Get(0).(*engine.Result)
	return res, args.Error(1)
}

// upperEngine returns the source wrapped in markers so outputs are easy to assert on
func upperEngine() engine.Engine {
	return engine.EngineFunc(func(ctx context.Context, source string, opts engine.Options) (*engine.Result, error) {
		res := &engine.Result{Code: "<" + source + ">"}
		if opts.SourceMap {
			res.SourceMap = `{"version":3,"sources":["sourceMap"],"mappings":"AAAA"}`
		}
		return res, nil
	})
}

// 🧪 testEnv bundles a temp dir file system and a captured console
type testEnv struct {
	ctx     context.Context
	dir     string
	fs      *filesystem.OS
	console *bytes.Buffer
	logger  *log.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	zlog := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}
	dir := t.TempDir()

	return &testEnv{
		ctx:     zlog.WithContext(context.Background()),
		dir:     dir,
		fs:      filesystem.NewOS(dir),
		console: console,
		logger:  log.New(console, zlog),
	}
}

func (e *testEnv) writeSource(t *testing.T, path, content string) {
	t.Helper()
	full := filepath.Join(e.dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(path)))
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

func (e *testEnv) exists(path string) bool {
	_, err := os.Stat(filepath.Join(e.dir, filepath.FromSlash(path)))
	return err == nil
}

func (e *testEnv) assembler(t *testing.T, eng engine.Engine) *operation.Assembler {
	t.Helper()
	a, err := operation.New(operation.Options{
		Engine:     eng,
		FileSystem: e.fs,
		Logger:     e.logger,
	})
	require.NoError(t, err)
	return a
}

// recordingLogger keeps every file operation it is asked to log
type recordingLogger struct {
	*log.Logger
	ops []log.FileOperation
}

func (r *recordingLogger) LogFileOperation(ctx context.Context, op log.FileOperation) {
	r.ops = append(r.ops, op)
	r.Logger.LogFileOperation(ctx, op)
}
