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

package filter_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roam-lang/bitemark/filter"
	"github.com/roam-lang/bitemark/lexer"
	"github.com/roam-lang/bitemark/printer"
	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// lex lexes text into a stream, failing the test on lexical errors.
func lex(t *testing.T, text string) *token.Stream {
	t.Helper()

	var errs report.Report
	stream := token.NewStream(report.NewFile("test.roam", text))
	lexer.Lex(stream, &errs)

	out, _, _ := report.Renderer{Compact: true}.RenderString(&errs)
	require.False(t, errs.HasErrors(), "input failed to lex:\n%s", out)
	return stream
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		nightly string
		stable  string
	}{
		{
			name:    "empty",
			text:    "",
			nightly: "",
			stable:  "",
		},
		{
			name:    "no markers",
			text:    "fn main() {\n    print(\"hi\") // comment\n}\n",
			nightly: "fn main() {\n    print(\"hi\") // comment\n}\n",
			stable:  "fn main() {\n    print(\"hi\") // comment\n}\n",
		},
		{
			name:    "nightly marker",
			text:    "++[const] trait",
			nightly: "const trait",
			stable:  " trait",
		},
		{
			name:    "either or",
			text:    `++["nightly"] --["stable"]`,
			nightly: `"nightly" `,
			stable:  ` "stable"`,
		},
		{
			name:    "marker inside group",
			text:    "f(++[x])",
			nightly: "f(x)",
			stable:  "f()",
		},
		{
			name:    "nested markers",
			text:    "++[a --[b] c]",
			nightly: "a  c",
			stable:  "",
		},
		{
			name:    "dropped payloads are opaque",
			text:    "++[--] ok",
			nightly: "",
			stable:  " ok",
		},
		{
			name:    "multiple payload tokens",
			text:    "--[let x = 1;]\nrest",
			nightly: "\nrest",
			stable:  "let x = 1;\nrest",
		},
		{
			name:    "parens and braces as payload delimiters",
			text:    "++(a) --{b}",
			nightly: "a ",
			stable:  " b",
		},
		{
			name:    "trivia between marker and payload",
			text:    "++ /* soon */ [a] b",
			nightly: "a b",
			stable:  " b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stream := lex(t, tt.text)
			for mode, want := range map[filter.Mode]string{
				filter.Nightly: tt.nightly,
				filter.Stable:  tt.stable,
			} {
				if mode == filter.Nightly && tt.name == "dropped payloads are opaque" {
					// The dangling marker inside the payload is only an error
					// when the payload is kept; that case is exercised in
					// TestMalformed.
					continue
				}

				var errs report.Report
				toks, ok := filter.Apply(stream, mode, &errs)
				require.True(t, ok, "mode %v: %v", mode, errs.Diagnostics)
				assert.Empty(t, cmp.Diff(want, printer.Print(toks)), "mode %v", mode)
			}
		})
	}
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		// The modes in which the input is malformed; in all others it must
		// filter cleanly.
		malformedIn []filter.Mode
	}{
		{
			name:        "marker at end of input",
			text:        "a ++",
			malformedIn: []filter.Mode{filter.Nightly, filter.Stable},
		},
		{
			name:        "marker before leaf",
			text:        "++ foo",
			malformedIn: []filter.Mode{filter.Nightly, filter.Stable},
		},
		{
			name:        "marker before marker",
			text:        "-- ++[a]",
			malformedIn: []filter.Mode{filter.Nightly, filter.Stable},
		},
		{
			name:        "marker at end of group",
			text:        "(a ++)",
			malformedIn: []filter.Mode{filter.Nightly, filter.Stable},
		},
		{
			name:        "dangling marker in kept payload",
			text:        "++[--] ok",
			malformedIn: []filter.Mode{filter.Nightly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stream := lex(t, tt.text)
			for _, mode := range []filter.Mode{filter.Nightly, filter.Stable} {
				var errs report.Report
				toks, ok := filter.Apply(stream, mode, &errs)

				malformed := false
				for _, m := range tt.malformedIn {
					malformed = malformed || m == mode
				}
				if !malformed {
					assert.True(t, ok, "mode %v", mode)
					assert.False(t, errs.HasErrors(), "mode %v", mode)
					continue
				}

				assert.False(t, ok, "mode %v", mode)
				assert.Nil(t, toks, "failed filtering must not produce output")
				require.True(t, errs.HasErrors(), "mode %v", mode)
				assert.True(t, errs.Diagnostics[0].Is(filter.TagMalformedMarker))
			}
		})
	}
}

// Filtering is deterministic and does not consume its input: applying the
// same pass twice yields identical output.
func TestReapply(t *testing.T) {
	t.Parallel()

	stream := lex(t, "a ++[b --{c}] (d --[e])")
	for _, mode := range []filter.Mode{filter.Nightly, filter.Stable} {
		var errs report.Report
		first, ok := filter.Apply(stream, mode, &errs)
		require.True(t, ok)
		second, ok := filter.Apply(stream, mode, &errs)
		require.True(t, ok)

		assert.Empty(t, cmp.Diff(printer.Print(first), printer.Print(second)))
	}
}

// Output with all markers resolved is a fixed point: filtering it again, in
// either mode, changes nothing.
func TestIdempotent(t *testing.T) {
	t.Parallel()

	stream := lex(t, "x ++[y] --[z] // trailing\n")
	for _, mode := range []filter.Mode{filter.Nightly, filter.Stable} {
		var errs report.Report
		toks, ok := filter.Apply(stream, mode, &errs)
		require.True(t, ok)
		once := printer.Print(toks)

		again := lex(t, once)
		toks, ok = filter.Apply(again, mode, &errs)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(once, printer.Print(toks)))
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	stream := lex(t, "++ -- + - ident (x)")
	cur := stream.Cursor()

	assert.Equal(t, filter.KeepOnNightly, filter.Classify(cur.Next()))
	assert.Equal(t, filter.KeepOnStable, filter.Classify(cur.Next()))
	assert.Equal(t, filter.NoPolarity, filter.Classify(cur.Next()), "+")
	assert.Equal(t, filter.NoPolarity, filter.Classify(cur.Next()), "-")
	assert.Equal(t, filter.NoPolarity, filter.Classify(cur.Next()), "ident")
	assert.Equal(t, filter.NoPolarity, filter.Classify(cur.Next()), "group")
	assert.Equal(t, filter.NoPolarity, filter.Classify(token.Zero))
}

func TestPolarity(t *testing.T) {
	t.Parallel()

	assert.True(t, filter.KeepOnNightly.Keep(filter.Nightly))
	assert.False(t, filter.KeepOnNightly.Keep(filter.Stable))
	assert.True(t, filter.KeepOnStable.Keep(filter.Stable))
	assert.False(t, filter.KeepOnStable.Keep(filter.Nightly))

	assert.Equal(t, "++", filter.KeepOnNightly.Sigil())
	assert.Equal(t, "--", filter.KeepOnStable.Sigil())
	assert.Equal(t, "", filter.NoPolarity.Sigil())

	assert.Equal(t, "nightly", filter.Nightly.String())
	assert.Equal(t, "stable", filter.Stable.String())
}
