// Copyright 2020-2025 The Roam Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package printer re-emits a filtered token sequence as compilable source
// text, optionally with a source map back to the original input.
package printer

import (
	"strings"

	"github.com/roam-lang/bitemark/internal/interval"
	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// Print renders a flattened token sequence, such as the output of
// filter.Apply, back to source text.
//
// Tokens are printed with their original text; whitespace and comments
// survive filtering as ordinary tokens, so no layout reconstruction
// happens here.
func Print(toks []token.Token) string {
	var buf strings.Builder
	for _, tok := range toks {
		buf.WriteString(tok.Text())
	}
	return buf.String()
}

// Map is like [Print], but also builds a [SourceMap] relating the printed
// output back to the input the tokens came from.
func Map(toks []token.Token) (string, *SourceMap) {
	var buf strings.Builder
	sm := new(SourceMap)
	for _, tok := range toks {
		start := buf.Len()
		buf.WriteString(tok.Text())
		sm.intervals.Insert(start, buf.Len(), tok.TextSpan())
	}
	return buf.String(), sm
}

// SourceMap maps byte offsets in printed output back to spans in the
// original input.
//
// The host compiler parses filtered output, so its diagnostics carry
// offsets into text the user never wrote; a SourceMap recovers the spans
// the user can actually see.
type SourceMap struct {
	intervals interval.Map[int, report.Span]
}

// Origin returns the input span that produced the output byte at the given
// offset.
//
// Returns the zero span for offsets that fall outside every printed token
// (which cannot happen for offsets within the printed text).
func (m *SourceMap) Origin(offset int) report.Span {
	got := m.intervals.Get(offset)
	if got.Value == nil {
		return report.Span{}
	}
	return *got.Value
}

// OriginRange returns the smallest input span covering the output byte
// range [start, end).
func (m *SourceMap) OriginRange(start, end int) report.Span {
	first := m.Origin(start)
	if end <= start {
		return first
	}
	last := m.Origin(end - 1)
	return report.Join(first, last)
}
