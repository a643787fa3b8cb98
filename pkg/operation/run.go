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
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/obfuscator/pkg/config"
	"github.com/walteh/obfuscator/pkg/status"
	"github.com/walteh/obfuscator/pkg/text"
)

// 📊 RunCounters accumulate over one invocation and only ever grow
type RunCounters struct {
	Files  int // outputs written
	Maps   int // source maps written
	Failed int // outputs that failed
}

// Summary converts the counters into the printable end-of-run report
func (c RunCounters) Summary(targets int) status.Summary {
	return status.Summary{
		Files:   c.Files,
		Maps:    c.Maps,
		Failed:  c.Failed,
		Targets: targets,
	}
}

// 🏃 Run processes every target in order and reports how many files were created.
// taskOpts are the task level options each target's own options are merged over.
func (a *Assembler) Run(ctx context.Context, taskOpts config.Options, targets []config.Target) RunCounters {
	logger := zerolog.Ctx(ctx)

	if taskOpts.SourceMapEnabled() && taskOpts.BannerValue() != "" {
		a.logger.Warn("The banner option cannot be used when the sourceMap is enabled. Removing banner option.")
	}

	var counters RunCounters
	for _, target := range targets {
		logger.Debug().Str("target", target.Name).Str("dest", target.Dest).Msg("processing target")
		a.processTarget(ctx, taskOpts.Merge(target.Options), target, &counters)
	}

	if msg, ok := counters.Summary(len(targets)).Message(); ok {
		a.logger.OK(msg)
	} else {
		a.logger.Warn(msg)
	}

	logger.Debug().
		Int("files", counters.Files).
		Int("maps", counters.Maps).
		Int("failed", counters.Failed).
		Msg("run complete")

	return counters
}

func (a *Assembler) processTarget(ctx context.Context, merged config.Options, target config.Target, counters *RunCounters) {
	logger := zerolog.Ctx(ctx).With().Str("target", target.Name).Logger()

	opts := NewExecutionOptions(merged, counters.Files)
	if merged.SourceMapEnabled() && merged.BannerValue() != "" {
		logger.Debug().Msg("source map enabled, dropping banner")
	}
	banner := text.NormalizeLF(opts.Banner)

	available := a.Resolve(ctx, target.Src)
	if len(available) == 0 {
		logger.Debug().Msg("no sources available, skipping target")
		return
	}

	plan := Plan(target.Dest)
	logger.Debug().Stringer("mode", plan.Mode).Int("sources", len(available)).Msg("planned destination")

	record := func(ok bool) {
		if !ok {
			counters.Failed++
			return
		}
		counters.Files++
		if opts.SourceMap {
			counters.Maps++
		}
	}

	switch plan.Mode {
	case ModeMerge:
		source, err := a.readAll(ctx, available)
		if err != nil {
			a.logger.Error(err)
			a.logger.Warnf("JavaScript obfuscation failed at %s.", target.Dest)
			record(false)
			return
		}
		record(a.Write(ctx, source, len(available), target.Dest, opts, banner, target.Dest))

	case ModeFanOut:
		for _, src := range available {
			destPath := FanOutDestination(target.Dest, src)

			source, err := a.fs.Read(ctx, src)
			if err != nil {
				a.logger.Error(err)
				a.logger.Warnf("JavaScript obfuscation failed at %s.", destPath)
				record(false)
				continue
			}
			record(a.Write(ctx, source, 1, destPath, opts, banner, target.Dest))
		}
	}
}

// readAll concatenates the sources in order with no separator
func (a *Assembler) readAll(ctx context.Context, paths []string) (string, error) {
	var sb strings.Builder
	for _, p := range paths {
		content, err := a.fs.Read(ctx, p)
		if err != nil {
			return "", err
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
