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

package token_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// run is one (length, kind) pair for building a stream by hand.
type run struct {
	len  int
	kind token.Kind
}

func stream(text string, runs ...run) *token.Stream {
	s := token.NewStream(report.NewFile("test.roam", text))
	for _, r := range runs {
		s.Push(r.len, r.kind)
	}
	return s
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text()
	}
	return out
}

func TestZero(t *testing.T) {
	t.Parallel()

	assert.True(t, token.Zero.IsZero())
	assert.False(t, token.Zero.IsLeaf())
	assert.Equal(t, token.Unrecognized, token.Zero.Kind())
	assert.Equal(t, "", token.Zero.Text())
	assert.True(t, token.Zero.Span().IsZero())
	assert.Nil(t, token.Zero.Children())
}

func TestPush(t *testing.T) {
	t.Parallel()

	s := stream("foo bar",
		run{3, token.Ident},
		run{1, token.Space},
		run{3, token.Ident},
	)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"foo", " ", "bar"}, texts(slices.Collect(s.All())))

	cur := s.Cursor()
	foo := cur.Next()
	assert.Equal(t, token.Ident, foo.Kind())
	assert.Equal(t, "foo", foo.Text())
	assert.True(t, foo.IsLeaf())
	assert.Equal(t, 0, foo.Span().Start)
	assert.Equal(t, 3, foo.Span().End)

	bar := cur.Next() // Skips the space.
	assert.Equal(t, "bar", bar.Text())
	assert.Equal(t, 4, bar.Span().Start)

	assert.True(t, cur.Next().IsZero())
}

func TestPushOverflow(t *testing.T) {
	t.Parallel()

	s := stream("ab", run{2, token.Ident})
	assert.Panics(t, func() { s.Push(1, token.Ident) })
	assert.Panics(t, func() { s.Push(-1, token.Ident) })
}

func TestFreeze(t *testing.T) {
	t.Parallel()

	s := stream("ab", run{1, token.Ident})
	s.Freeze()
	assert.Panics(t, func() { s.Push(1, token.Ident) })
}

func TestFuse(t *testing.T) {
	t.Parallel()

	s := stream("(a b)",
		run{1, token.Punct},
		run{1, token.Ident},
		run{1, token.Space},
		run{1, token.Ident},
		run{1, token.Punct},
	)

	cur := s.Cursor()
	open := cur.Next()
	_, _ = cur.Next(), cur.Next()
	closed := cur.Next()
	token.Fuse(open, closed)

	assert.False(t, open.IsLeaf())
	assert.Equal(t, "(", open.Text())
	assert.Equal(t, ")", closed.Text())

	// The group's span covers both delimiters; each half's text span covers
	// just itself.
	assert.Equal(t, 0, open.Span().Start)
	assert.Equal(t, 5, open.Span().End)
	assert.Equal(t, open.Span(), closed.Span())
	assert.Equal(t, 1, open.TextSpan().End)
	assert.Equal(t, 4, closed.TextSpan().Start)

	start, end := open.StartEnd()
	assert.Equal(t, open, start)
	assert.Equal(t, closed, end)
	start, end = closed.StartEnd()
	assert.Equal(t, open, start)
	assert.Equal(t, closed, end)

	assert.Equal(t, []string{"a", "b"}, texts(slices.Collect(open.Children().Rest())))
}

func TestFusePanics(t *testing.T) {
	t.Parallel()

	s := stream("()()",
		run{1, token.Punct},
		run{1, token.Punct},
		run{1, token.Punct},
		run{1, token.Punct},
	)
	cur := s.Cursor()
	a, b, c, d := cur.Next(), cur.Next(), cur.Next(), cur.Next()
	token.Fuse(a, b)

	assert.Panics(t, func() { token.Fuse(a, d) }, "open is not a leaf")
	assert.Panics(t, func() { token.Fuse(c, b) }, "close is not a leaf")

	other := stream(")", run{1, token.Punct})
	assert.Panics(t, func() { token.Fuse(c, other.Cursor().Next()) }, "different streams")

	s.Freeze()
	assert.Panics(t, func() { token.Fuse(c, d) }, "frozen stream")
}

func TestCursorSkipsGroupContents(t *testing.T) {
	t.Parallel()

	s := stream("a(b)c",
		run{1, token.Ident},
		run{1, token.Punct},
		run{1, token.Ident},
		run{1, token.Punct},
		run{1, token.Ident},
	)
	open := token.ID(2).In(s)
	token.Fuse(open, token.ID(4).In(s))

	cur := s.Cursor()
	assert.Equal(t, "a", cur.Next().Text())

	group := cur.Next()
	assert.Equal(t, open, group)

	// The cursor resumed after the close delimiter.
	assert.Equal(t, "c", cur.Next().Text())
	assert.True(t, cur.Done())
}

func TestCursorRewind(t *testing.T) {
	t.Parallel()

	s := stream("a b",
		run{1, token.Ident},
		run{1, token.Space},
		run{1, token.Ident},
	)

	cur := s.Cursor()
	mark := cur.Mark()
	assert.Equal(t, "a", cur.Next().Text())
	assert.Equal(t, "b", cur.Next().Text())

	cur.Rewind(mark)
	assert.Equal(t, "a", cur.Next().Text())

	other := s.Cursor()
	assert.Panics(t, func() { other.Rewind(mark) })
}

func TestCursorSkippable(t *testing.T) {
	t.Parallel()

	s := stream("a b",
		run{1, token.Ident},
		run{1, token.Space},
		run{1, token.Ident},
	)

	cur := s.Cursor()
	assert.Equal(t, "a", cur.NextSkippable().Text())
	assert.Equal(t, " ", cur.PeekSkippable().Text())
	assert.Equal(t, "b", cur.Peek().Text(), "Peek skips trivia without advancing")
	assert.Equal(t, " ", cur.NextSkippable().Text())
}

func TestNilCursor(t *testing.T) {
	t.Parallel()

	var cur *token.Cursor
	assert.True(t, cur.Peek().IsZero())
	assert.True(t, cur.PeekSkippable().IsZero())
	assert.True(t, cur.Done())
}

func TestAsString(t *testing.T) {
	t.Parallel()

	s := stream(`"abc" "a\nb"`,
		run{5, token.String},
		run{1, token.Space},
		run{6, token.String},
	)

	cur := s.Cursor()
	simple := cur.Next()
	value, ok := simple.AsString()
	require.True(t, ok)
	assert.Equal(t, "abc", value)

	escaped := cur.Next()
	token.SetValue(escaped, "a\nb")
	value, ok = escaped.AsString()
	require.True(t, ok)
	assert.Equal(t, "a\nb", value)

	notString := stream("x", run{1, token.Ident}).Cursor().Next()
	_, ok = notString.AsString()
	assert.False(t, ok)
}

func TestSetValuePanics(t *testing.T) {
	t.Parallel()

	s := stream(`"a"`, run{3, token.String})
	tok := s.Cursor().Next()

	assert.Panics(t, func() { token.SetValue(token.Zero, "") })
	assert.Panics(t, func() {
		ident := stream("x", run{1, token.Ident}).Cursor().Next()
		token.SetValue(ident, "x")
	})

	s.Freeze()
	assert.Panics(t, func() { token.SetValue(tok, "a") })
}
