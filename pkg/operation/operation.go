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

	"github.com/walteh/obfuscator/pkg/engine"
	"github.com/walteh/obfuscator/pkg/filesystem"
	"github.com/walteh/obfuscator/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 📢 Logger is the user facing log the pipeline reports through
type Logger interface {
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(err error)
	OK(msg string)
	LogFileOperation(ctx context.Context, op log.FileOperation)
}

var _ Logger = (*log.Logger)(nil)

// 🔧 Options contains the collaborators of an Assembler
type Options struct {
	Engine     engine.Engine
	FileSystem filesystem.FileSystem
	Logger     Logger
}

// 🎮 Assembler resolves sources, plans destinations and writes obfuscated outputs
type Assembler struct {
	engine engine.Engine
	fs     filesystem.FileSystem
	logger Logger
}

// 🏭 New creates a new assembler with the given options
func New(opts Options) (*Assembler, error) {
	if opts.Engine == nil {
		return nil, errors.Errorf("engine is required")
	}
	if opts.FileSystem == nil {
		return nil, errors.Errorf("file system is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	return &Assembler{
		engine: opts.Engine,
		fs:     opts.FileSystem,
		logger: opts.Logger,
	}, nil
}
