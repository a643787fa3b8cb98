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

// Package filesystem provides the file access the output pipeline reads sources from
// and writes artifacts to.
package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 💾 FileSystem handles all file system operations
type FileSystem interface {
	Exists(ctx context.Context, path string) bool
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path string, content string) error
}

var _ FileSystem = (*OS)(nil)

// 🔧 OS implements FileSystem on the local disk. Relative paths resolve against baseDir.
type OS struct {
	baseDir string
}

// 🏭 NewOS creates a file system rooted at baseDir
func NewOS(baseDir string) *OS {
	return &OS{
		baseDir: filepath.Clean(baseDir),
	}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (f *OS) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.baseDir, path)
}

// Exists reports whether path names a regular file. Directories do not count as sources.
func (f *OS) Exists(ctx context.Context, path string) bool {
	info, err := os.Stat(f.getAbsPath(path))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (f *OS) Read(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(f.getAbsPath(path))
	if err != nil {
		return "", errors.Errorf("reading file: %w", err)
	}
	return string(content), nil
}

// Write creates parent directories and replaces path atomically.
func (f *OS) Write(ctx context.Context, path string, content string) error {
	absPath := f.getAbsPath(path)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	return f.writeFileAtomic(absPath, []byte(content))
}

func (f *OS) writeFileAtomic(absPath string, content []byte) error {
	tempPath := absPath + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
