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

package token

import "iter"

// Cursor is an iterator-like construct for looping over a token tree.
// Unlike a plain range func, it supports peeking.
//
// A cursor yields the tokens of a single nesting level: upon reaching a
// non-leaf token, it yields the whole token and resumes after its matching
// close delimiter. Use [Token.Children] to descend.
type Cursor struct {
	stream *Stream

	// start is inclusive, end is exclusive. start == end means the sequence
	// is empty.
	start, end ID
	// idx is the current token ID.
	idx int
}

// CursorMark is the return value of [Cursor.Mark], which marks a position
// on a Cursor for rewinding to.
type CursorMark struct {
	// This contains exactly the values needed to rewind the cursor.
	owner *Cursor
	idx   int
}

// Done returns whether or not there are still tokens left to yield.
func (c *Cursor) Done() bool {
	return c.Peek().IsZero()
}

// Mark makes a mark on this cursor to indicate a place that can be rewound
// to.
func (c *Cursor) Mark() CursorMark {
	return CursorMark{
		owner: c,
		idx:   c.idx,
	}
}

// Rewind moves this cursor back to the position described by mark.
//
// Panics if mark was not created using this cursor's Mark method.
func (c *Cursor) Rewind(mark CursorMark) {
	if c != mark.owner {
		panic("bitemark/token: rewound cursor using the wrong cursor's mark")
	}
	c.idx = mark.idx
}

// PeekSkippable returns the current token in the sequence, if there is one.
// This may return a skippable token.
//
// Returns the zero token if this cursor is at the end of the sequence.
func (c *Cursor) PeekSkippable() Token {
	if c == nil {
		return Zero
	}
	tokenID := ID(c.idx)
	if tokenID < c.start || tokenID >= c.end {
		return Zero
	}
	return tokenID.In(c.stream)
}

// NextSkippable returns the next token in the sequence, and advances the
// cursor. This may return a skippable token.
func (c *Cursor) NextSkippable() Token {
	tok := c.PeekSkippable()
	if tok.IsZero() {
		return tok
	}

	// Skip over the contents of a non-leaf token: the cursor yields the
	// open token and resumes after its matching close.
	if impl := tok.nat(); impl.IsOpen() {
		c.idx += impl.Offset()
	}
	c.idx++

	return tok
}

// Peek returns the next token in the sequence, if there is one.
// This automatically skips past skippable tokens.
//
// Returns the zero token if this cursor is at the end of the sequence.
func (c *Cursor) Peek() Token {
	if c == nil {
		return Zero
	}
	idx := c.idx
	tok := c.Next()
	c.idx = idx
	return tok
}

// Next returns the next token in the sequence, and advances the cursor.
// This automatically skips past skippable tokens.
func (c *Cursor) Next() Token {
	for {
		next := c.NextSkippable()
		if next.IsZero() || !next.Kind().IsSkippable() {
			return next
		}
	}
}

// Rest returns an iterator over the remaining tokens in the cursor,
// skipping skippable tokens.
//
// Note that breaking out of a loop over this iterator, and starting a new
// loop, will resume at the iteration that was broken at.
func (c *Cursor) Rest() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := c.Peek()
			if tok.IsZero() || !yield(tok) {
				break
			}
			_ = c.Next()
		}
	}
}

// RestSkippable is like [Cursor.Rest], but it yields skippable tokens, too.
func (c *Cursor) RestSkippable() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := c.PeekSkippable()
			if tok.IsZero() || !yield(tok) {
				break
			}
			_ = c.NextSkippable()
		}
	}
}
