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

// Package text holds the string level rewrites applied to obfuscated output.
package text

import (
	"strings"
)

// SourceMapPlaceholder is how the obfuscation engine names its virtual input inside a
// source map. The rewrite below depends on this exact byte sequence.
const SourceMapPlaceholder = `"sources":["sourceMap"]`

// ReplacementRule replaces the first occurrence of FromText with ToText
type ReplacementRule struct {
	FromText string
	ToText   string
}

// ReplacementResult describes the outcome of applying a rule
type ReplacementResult struct {
	Content     string
	WasModified bool
}

// Apply runs the rule against content. Empty rules leave content untouched.
func (r ReplacementRule) Apply(content string) ReplacementResult {
	if r.FromText == "" || !strings.Contains(content, r.FromText) {
		return ReplacementResult{Content: content}
	}
	return ReplacementResult{
		Content:     strings.Replace(content, r.FromText, r.ToText, 1),
		WasModified: true,
	}
}

// NormalizeLF converts every \r\n to \n
func NormalizeLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// SourceMapRule builds the rule that swaps the engine's placeholder for the real file
// label, prefixing the listed source with baseURL.
func SourceMapRule(label, baseURL string) ReplacementRule {
	return ReplacementRule{
		FromText: SourceMapPlaceholder,
		ToText:   `"file": "` + label + `", "sources":["` + baseURL + label + `"]`,
	}
}

// RewriteSourceMap applies SourceMapRule to a raw source map. Maps without the
// placeholder are returned unchanged.
func RewriteSourceMap(rawMap, label, baseURL string) ReplacementResult {
	return SourceMapRule(label, baseURL).Apply(rawMap)
}
