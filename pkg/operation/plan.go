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
	"strings"
)

// Mode selects how a target's sources map onto destinations
type Mode int

const (
	// ModeMerge concatenates every source into one output at dest
	ModeMerge Mode = iota
	// ModeFanOut writes one output per source at dest+source
	ModeFanOut
)

func (m Mode) String() string {
	if m == ModeFanOut {
		return "fanout"
	}
	return "merge"
}

// 🗺️ DestinationPlan is the outcome of Plan
type DestinationPlan struct {
	Mode              Mode
	FilenameComponent string
}

// Plan decides between merge and fan-out from the last segment of dest. Both '/' and
// '\' count as separators.
func Plan(dest string) DestinationPlan {
	filename := dest
	if i := strings.LastIndexAny(dest, `/\`); i >= 0 {
		filename = dest[i+1:]
	}

	if filename == "" {
		return DestinationPlan{Mode: ModeFanOut}
	}
	return DestinationPlan{Mode: ModeMerge, FilenameComponent: filename}
}

// FanOutDestination is the output path of one source under a fan-out prefix. The whole
// source path is appended, not just its base name.
func FanOutDestination(prefix, source string) string {
	return prefix + source
}
