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
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔍 ExpandSources expands glob patterns in every target's src list. Patterns resolve
// relative to baseDir and matches are reported relative to it with forward slashes.
// Entries without glob metacharacters are kept verbatim, so a missing literal file
// still reaches the pipeline and is reported there. Duplicates keep their first position.
func ExpandSources(ctx context.Context, targets []Target, baseDir string) ([]Target, error) {
	expanded := make([]Target, len(targets))
	copy(expanded, targets)

	var g errgroup.Group
	for i := range expanded {
		g.Go(func() error {
			src, err := expandPatterns(ctx, baseDir, expanded[i].Src)
			if err != nil {
				return errors.Errorf("target %q: %w", expanded[i].Name, err)
			}
			expanded[i].Src = src
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return expanded, nil
}

func expandPatterns(ctx context.Context, baseDir string, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]bool)
	out := make([]string, 0, len(patterns))
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		// Joining against baseDir keeps patterns that climb out of it ("../shared/*.js")
		abs := filepath.IsAbs(pattern)
		full := pattern
		if !abs {
			full = filepath.Join(baseDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}

		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded source pattern")

		for _, m := range matches {
			if abs {
				add(m)
				continue
			}
			rel, err := filepath.Rel(baseDir, m)
			if err != nil {
				return nil, errors.Errorf("expanding %q: %w", pattern, err)
			}
			add(filepath.ToSlash(rel))
		}
	}

	return out, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
