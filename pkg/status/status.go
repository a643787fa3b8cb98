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

package status

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// 📊 FileStatus is the state of one output file
type FileStatus int

const (
	StatusPending     FileStatus = iota
	StatusObfuscating            // Handed to the engine
	StatusWritten                // Code (and map, if any) persisted
	StatusFailed                 // Engine or write failed; terminal
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusObfuscating:
		return "obfuscating"
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible
func (s FileStatus) Terminal() bool {
	return s == StatusWritten || s == StatusFailed
}

// Next returns the state after an attempt ends in ok. Terminal states do not move.
func (s FileStatus) Next(ok bool) FileStatus {
	switch s {
	case StatusPending:
		return StatusObfuscating
	case StatusObfuscating:
		if ok {
			return StatusWritten
		}
		return StatusFailed
	default:
		return s
	}
}

// 📈 Summary is the end-of-run report
type Summary struct {
	Files   int
	Maps    int
	Failed  int
	Targets int
}

// Pluralize picks the singular or plural form for n
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Message returns the one-line summary and whether it is a success
func (s Summary) Message() (string, bool) {
	if s.Files == 0 {
		return "No files created.", false
	}
	return fmt.Sprintf("%d %s created", s.Files, Pluralize(s.Files, "file", "files")), true
}

// 🖨️ Print writes the breakdown of the run to w through pterm prefix printers
func (s Summary) Print(w io.Writer) {
	if _, ok := s.Message(); !ok && s.Failed == 0 {
		return
	}

	printer := pterm.Info.WithWriter(w)
	if s.Failed > 0 {
		printer = pterm.Warning.WithWriter(w)
	}
	printer.Printfln("%d %s, %d %s, %d failed across %d %s",
		s.Files, Pluralize(s.Files, "file", "files"),
		s.Maps, Pluralize(s.Maps, "source map", "source maps"),
		s.Failed,
		s.Targets, Pluralize(s.Targets, "target", "targets"))
}
