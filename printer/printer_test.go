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

package printer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roam-lang/bitemark/filter"
	"github.com/roam-lang/bitemark/lexer"
	"github.com/roam-lang/bitemark/printer"
	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

func filtered(t *testing.T, text string, mode filter.Mode) []token.Token {
	t.Helper()

	var errs report.Report
	stream := token.NewStream(report.NewFile("test.roam", text))
	lexer.Lex(stream, &errs)
	toks, ok := filter.Apply(stream, mode, &errs)
	require.True(t, ok, "%v", errs.Diagnostics)
	return toks
}

func TestPrintRoundTrip(t *testing.T) {
	t.Parallel()

	// Marker-free input survives a filter-and-print round trip unchanged,
	// trivia included.
	text := "fn main() {\n    print(\"hi\")\t// comment\n}\n"
	assert.Equal(t, text, printer.Print(filtered(t, text, filter.Nightly)))
}

func TestMapOffsets(t *testing.T) {
	t.Parallel()

	//                 0123456789
	text := "++[ab] (cd)"
	toks := filtered(t, text, filter.Nightly)

	out, sourceMap := printer.Map(toks)
	assert.Equal(t, "ab (cd)", out)

	// Every output byte maps into the original text, at the span of the
	// token that produced it.
	tests := []struct {
		outOffset  int
		start, end int
	}{
		{0, 3, 5},   // "ab" came from inside the payload.
		{1, 3, 5},   // Still "ab".
		{2, 6, 7},   // The space after the payload group.
		{3, 7, 8},   // "(".
		{4, 8, 10},  // "cd".
		{6, 10, 11}, // ")".
	}
	for _, tt := range tests {
		span := sourceMap.Origin(tt.outOffset)
		require.False(t, span.IsZero(), "offset %d", tt.outOffset)
		assert.Equal(t, tt.start, span.Start, "offset %d", tt.outOffset)
		assert.Equal(t, tt.end, span.End, "offset %d", tt.outOffset)
	}

	// Offsets past the end of the output map to nothing.
	assert.True(t, sourceMap.Origin(len(out)).IsZero())
	assert.True(t, sourceMap.Origin(-1).IsZero())
}

func TestMapRange(t *testing.T) {
	t.Parallel()

	text := "++[ab] (cd)"
	_, sourceMap := printer.Map(filtered(t, text, filter.Nightly))

	// "ab (cd" in the output spans from the payload contents through "cd".
	span := sourceMap.OriginRange(0, 6)
	require.False(t, span.IsZero())
	assert.Equal(t, 3, span.Start)
	assert.Equal(t, 10, span.End)

	// An empty range degenerates to a point lookup.
	point := sourceMap.OriginRange(3, 3)
	assert.Equal(t, sourceMap.Origin(3), point)
}

func TestMapDelimiterHalves(t *testing.T) {
	t.Parallel()

	// The two halves of a group map to their own single characters, not the
	// whole group.
	text := "{x}"
	out, sourceMap := printer.Map(filtered(t, text, filter.Stable))
	require.Equal(t, "{x}", out)

	open := sourceMap.Origin(0)
	closed := sourceMap.Origin(2)
	assert.Equal(t, "{", open.Text())
	assert.Equal(t, "}", closed.Text())
	assert.Equal(t, 0, open.Start)
	assert.Equal(t, 2, closed.Start)
}

func TestPrintEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", printer.Print(nil))

	out, sourceMap := printer.Map(nil)
	assert.Equal(t, "", out)
	assert.True(t, sourceMap.Origin(0).IsZero())
}

func TestPrintLarge(t *testing.T) {
	t.Parallel()

	// Exercise the source map's tree with more than a handful of tokens.
	var sb strings.Builder
	for range 1000 {
		sb.WriteString("x ")
	}
	text := sb.String()

	out, sourceMap := printer.Map(filtered(t, text, filter.Stable))
	assert.Equal(t, text, out)
	for _, offset := range []int{0, 1, 999, 1998, 1999} {
		span := sourceMap.Origin(offset)
		require.False(t, span.IsZero(), "offset %d", offset)
		assert.Equal(t, offset, span.Start)
	}
}
