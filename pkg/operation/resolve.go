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
	"github.com/walteh/obfuscator/pkg/log"
)

// 🔍 Resolve returns the paths that exist, in input order. Every missing path is
// reported as a warning and skipped.
func (a *Assembler) Resolve(ctx context.Context, paths []string) []string {
	available := make([]string, 0, len(paths))
	for _, p := range paths {
		if !a.fs.Exists(ctx, p) {
			a.logger.Warnf("Source file %s not found", log.Path(p))
			continue
		}
		available = append(available, p)
	}

	zerolog.Ctx(ctx).Debug().
		Int("requested", len(paths)).
		Int("available", len(available)).
		Msg("resolved sources")

	return available
}
