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
	"strconv"

	"github.com/walteh/obfuscator/pkg/config"
	"github.com/walteh/obfuscator/pkg/engine"
)

// 🔤 IdentifierNamesCache carries the engine's identifier name cache between calls
type IdentifierNamesCache struct {
	Enabled bool
	Names   map[string]any // replaced after every successful write
}

// 🔧 ExecutionOptions is the merged option set used for one target
type ExecutionOptions struct {
	Banner               string
	SourceMap            bool
	SourceMapBaseURL     string
	SourceMapFileName    string // set per output when SourceMap is on
	IdentifiersPrefix    string
	IdentifierNamesCache IdentifierNamesCache
	PassThrough          map[string]any
}

// NewExecutionOptions builds the options for one target from its merged config.
// filesCreated seeds the identifiers prefix so that every target gets a distinct one.
// A banner never survives next to a source map: it would shift every mapping.
func NewExecutionOptions(opts config.Options, filesCreated int) *ExecutionOptions {
	exec := &ExecutionOptions{
		Banner:            opts.BannerValue(),
		SourceMap:         opts.SourceMapEnabled(),
		SourceMapBaseURL:  opts.SourceMapBaseURLValue(),
		IdentifiersPrefix: opts.BaseIdentifiersPrefixValue() + strconv.Itoa(filesCreated),
		IdentifierNamesCache: IdentifierNamesCache{
			Enabled: opts.IdentifierNamesCacheEnabled(),
		},
		PassThrough: opts.Engine,
	}

	if exec.SourceMap {
		exec.Banner = ""
	}

	return exec
}

func (o *ExecutionOptions) engineOptions() engine.Options {
	return engine.Options{
		SourceMap:            o.SourceMap,
		SourceMapBaseURL:     o.SourceMapBaseURL,
		SourceMapFileName:    o.SourceMapFileName,
		IdentifiersPrefix:    o.IdentifiersPrefix,
		CacheIdentifierNames: o.IdentifierNamesCache.Enabled,
		IdentifierNamesCache: o.IdentifierNamesCache.Names,
		PassThrough:          o.PassThrough,
	}
}
