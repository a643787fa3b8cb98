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

package filesystem

import (
	"context"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultCacheSize bounds how many source files a Cached keeps in memory
const DefaultCacheSize = 256

var _ FileSystem = (*Cached)(nil)

// 🗃️ Cached keeps recently read file contents in memory. Targets commonly share
// sources, so the same file is read once per run instead of once per target.
// Writes drop the cached entry so an output read back later as a source is fresh.
type Cached struct {
	inner FileSystem
	reads *lru.Cache[string, string]
}

// NewCached wraps inner with a read cache of at most size entries
func NewCached(inner FileSystem, size int) (*Cached, error) {
	reads, err := lru.New[string, string](size)
	if err != nil {
		return nil, errors.Errorf("creating read cache: %w", err)
	}
	return &Cached{inner: inner, reads: reads}, nil
}

func (c *Cached) Exists(ctx context.Context, path string) bool {
	return c.inner.Exists(ctx, path)
}

func (c *Cached) Read(ctx context.Context, path string) (string, error) {
	key := filepath.Clean(path)
	if content, ok := c.reads.Get(key); ok {
		zerolog.Ctx(ctx).Trace().Str("path", path).Msg("read cache hit")
		return content, nil
	}

	content, err := c.inner.Read(ctx, path)
	if err != nil {
		return "", err
	}
	c.reads.Add(key, content)
	return content, nil
}

func (c *Cached) Write(ctx context.Context, path string, content string) error {
	c.reads.Remove(filepath.Clean(path))
	return c.inner.Write(ctx, path, content)
}
