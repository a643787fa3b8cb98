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

// Package engine defines the obfuscation capability the output pipeline calls into.
package engine

import (
	"context"
)

// 🔌 Engine transforms source text into obfuscated code
type Engine interface {
	// Obfuscate runs one transformation. Any returned error is an obfuscation failure
	// for the file or target being processed.
	Obfuscate(ctx context.Context, source string, opts Options) (*Result, error)
}

// 📦 Options is the per-call view of the execution options handed to an engine
type Options struct {
	SourceMap            bool
	SourceMapBaseURL     string
	SourceMapFileName    string
	IdentifiersPrefix    string
	CacheIdentifierNames bool
	IdentifierNamesCache map[string]any // nil when no cache is carried yet
	PassThrough          map[string]any // engine specific keys, forwarded verbatim
}

// 📄 Result is the read-only output of a successful transformation
type Result struct {
	Code                 string
	SourceMap            string         // JSON, empty when no map was requested
	IdentifierNamesCache map[string]any // nil when the engine keeps no cache
}

// EngineFunc adapts a plain function to the Engine interface
type EngineFunc func(ctx context.Context, source string, opts Options) (*Result, error)

func (f EngineFunc) Obfuscate(ctx context.Context, source string, opts Options) (*Result, error) {
	return f(ctx, source, opts)
}
