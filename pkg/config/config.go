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
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options is the option bag accepted at task and target level. Nil fields are unset
// so that target values can override task values one field at a time.
type Options struct {
	Banner                *string        `json:"banner,omitempty" yaml:"banner,omitempty"`
	SourceMap             *bool          `json:"source_map,omitempty" yaml:"source_map,omitempty"`
	SourceMapBaseURL      *string        `json:"source_map_base_url,omitempty" yaml:"source_map_base_url,omitempty"`
	BaseIdentifiersPrefix *string        `json:"base_identifiers_prefix,omitempty" yaml:"base_identifiers_prefix,omitempty"`
	IdentifierNamesCache  *bool          `json:"identifier_names_cache,omitempty" yaml:"identifier_names_cache,omitempty"`
	Engine                map[string]any `json:"engine,omitempty" yaml:"engine,omitempty"` // forwarded verbatim to the engine
}

// 🎯 Target is one unit of work: a set of sources and one destination path or prefix
type Target struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Src     []string `json:"src" yaml:"src"`
	Dest    string   `json:"dest" yaml:"dest"`
	Options Options  `json:"options,omitempty" yaml:"options,omitempty"`
}

// 📚 Task is the complete configuration of one obfuscation run
type Task struct {
	Options Options  `json:"options,omitempty" yaml:"options,omitempty"`
	Targets []Target `json:"targets" yaml:"targets"`

	location string
}

// Location returns the file the task was loaded from
func (t *Task) Location() string {
	return t.location
}

// 🔄 Merge returns o with every field set in override replacing the one in o.
// Engine maps are merged key by key.
func (o Options) Merge(override Options) Options {
	merged := o
	if override.Banner != nil {
		merged.Banner = override.Banner
	}
	if override.SourceMap != nil {
		merged.SourceMap = override.SourceMap
	}
	if override.SourceMapBaseURL != nil {
		merged.SourceMapBaseURL = override.SourceMapBaseURL
	}
	if override.BaseIdentifiersPrefix != nil {
		merged.BaseIdentifiersPrefix = override.BaseIdentifiersPrefix
	}
	if override.IdentifierNamesCache != nil {
		merged.IdentifierNamesCache = override.IdentifierNamesCache
	}

	if len(o.Engine) > 0 || len(override.Engine) > 0 {
		merged.Engine = make(map[string]any, len(o.Engine)+len(override.Engine))
		for k, v := range o.Engine {
			merged.Engine[k] = v
		}
		for k, v := range override.Engine {
			merged.Engine[k] = v
		}
	}

	return merged
}

// BannerValue returns the banner or "" when unset
func (o Options) BannerValue() string {
	if o.Banner == nil {
		return ""
	}
	return *o.Banner
}

// SourceMapEnabled reports whether source maps were requested
func (o Options) SourceMapEnabled() bool {
	return o.SourceMap != nil && *o.SourceMap
}

// SourceMapBaseURLValue returns the base URL or "" when unset
func (o Options) SourceMapBaseURLValue() string {
	if o.SourceMapBaseURL == nil {
		return ""
	}
	return *o.SourceMapBaseURL
}

// BaseIdentifiersPrefixValue returns the configured prefix, "_" when unset or empty
func (o Options) BaseIdentifiersPrefixValue() string {
	if o.BaseIdentifiersPrefix == nil || *o.BaseIdentifiersPrefix == "" {
		return "_"
	}
	return *o.BaseIdentifiersPrefix
}

// IdentifierNamesCacheEnabled reports whether the identifier names cache was requested
func (o Options) IdentifierNamesCacheEnabled() bool {
	return o.IdentifierNamesCache != nil && *o.IdentifierNamesCache
}

// 🔍 Validate checks the task and fills in defaults
func Validate(ctx context.Context, task *Task) error {
	if len(task.Targets) == 0 {
		return errors.Errorf("at least one target is required")
	}

	seen := make(map[string]bool, len(task.Targets))
	for i := range task.Targets {
		target := &task.Targets[i]
		if target.Name == "" {
			target.Name = fmt.Sprintf("target-%d", i)
		}
		if seen[target.Name] {
			return errors.Errorf("target %q: duplicate name", target.Name)
		}
		seen[target.Name] = true

		// dest is kept verbatim: a trailing separator selects one output per source
		if target.Dest == "" {
			return errors.Errorf("target %q: dest is required", target.Name)
		}
		if len(target.Src) == 0 {
			zerolog.Ctx(ctx).Debug().Str("target", target.Name).Msg("target has no sources")
		}
	}

	return nil
}

// 🎯 Select returns the targets with the given names in declaration order, or all
// targets when names is empty
func (t *Task) Select(names []string) ([]Target, error) {
	if len(names) == 0 {
		return t.Targets, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	selected := make([]Target, 0, len(names))
	for _, target := range t.Targets {
		if wanted[target.Name] {
			selected = append(selected, target)
			delete(wanted, target.Name)
		}
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for _, name := range names {
			if wanted[name] {
				missing = append(missing, name)
				delete(wanted, name)
			}
		}
		return nil, errors.Errorf("unknown targets: %s", strings.Join(missing, ", "))
	}

	return selected, nil
}

// 📝 String returns a string representation of the target
func (t Target) String() string {
	return fmt.Sprintf("%s: [%s] -> %s", t.Name, strings.Join(t.Src, ", "), t.Dest)
}
