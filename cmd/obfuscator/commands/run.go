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

package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/obfuscator/cmd/obfuscator/opts"
	"github.com/walteh/obfuscator/pkg/config"
	"github.com/walteh/obfuscator/pkg/engine"
	"github.com/walteh/obfuscator/pkg/engine/esbuild"
	"github.com/walteh/obfuscator/pkg/filesystem"
	"github.com/walteh/obfuscator/pkg/log"
	"github.com/walteh/obfuscator/pkg/operation"
	"github.com/walteh/obfuscator/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [target...]",
		Short: "Obfuscate the configured targets",
		Long: `Run reads every target's sources, obfuscates them and writes the results.
It will:
1. Load the config and expand source globs
2. Skip sources that do not exist
3. Merge sources into one file, or write one file per source when dest ends in a separator
4. Write source maps next to the outputs when enabled

Only the named targets run when target names are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().
				Str("command", "run").
				Str("run_id", uuid.NewString()).
				Logger().WithContext(ctx)

			if _, err := Run(ctx, opts, esbuild.New(), args, cmd.OutOrStdout()); err != nil {
				return errors.Errorf("running obfuscator: %w", err)
			}

			return nil
		},
	}

	return cmd
}

// Run loads the config and processes the selected targets with eng. Only configuration
// problems are returned as errors; per-file failures are reported and counted.
func Run(ctx context.Context, opts *opts.RootOpts, eng engine.Engine, names []string, out io.Writer) (operation.RunCounters, error) {
	task, err := config.Load(ctx, opts.ConfigFile)
	if err != nil {
		return operation.RunCounters{}, errors.Errorf("loading config: %w", err)
	}

	targets, err := task.Select(names)
	if err != nil {
		return operation.RunCounters{}, errors.Errorf("selecting targets: %w", err)
	}

	// Paths in the config are relative to the config file
	baseDir := filepath.Dir(task.Location())

	targets, err = config.ExpandSources(ctx, targets, baseDir)
	if err != nil {
		return operation.RunCounters{}, errors.Errorf("expanding sources: %w", err)
	}

	logger := log.FromContext(ctx)
	logger.Header(fmt.Sprintf("%d %s from %s", len(targets), status.Pluralize(len(targets), "target", "targets"), opts.ConfigFile))

	fsys, err := filesystem.NewCached(filesystem.NewOS(baseDir), filesystem.DefaultCacheSize)
	if err != nil {
		return operation.RunCounters{}, errors.Errorf("creating file system: %w", err)
	}

	assembler, err := operation.New(operation.Options{
		Engine:     eng,
		FileSystem: fsys,
		Logger:     logger,
	})
	if err != nil {
		return operation.RunCounters{}, errors.Errorf("creating assembler: %w", err)
	}

	counters := assembler.Run(ctx, task.Options, targets)
	counters.Summary(len(targets)).Print(out)

	return counters, nil
}
