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

import (
	"fmt"
	"iter"
	"math"

	"github.com/roam-lang/bitemark/report"
)

// Stream is a token stream over a single roam! invocation body.
//
// Internally, Stream uses a compressed representation for storing tokens,
// and is not precisely a [][Token].
//
// Streams may be "frozen", meaning that whatever lexing operation it was
// meant for is complete, and new tokens cannot be pushed to it. This is
// used to prevent re-use of a stream for multiple inputs, and to guarantee
// that the conditional filter sees immutable input.
type Stream struct {
	// The file this stream is over.
	file *report.File

	// Storage for tokens.
	nats []nat

	// Materialized unescaped values for string tokens that contain escapes.
	// Strings without escapes do not generate entries here; their value is
	// recovered from the source text on demand.
	literals map[ID]string

	// If true, no further mutations are permitted.
	frozen bool
}

// NewStream constructs an empty stream over the given file.
func NewStream(file *report.File) *Stream {
	return &Stream{file: file}
}

// File returns the file this stream is over.
func (s *Stream) File() *report.File {
	return s.file
}

// Path returns the path of the file this stream is over.
func (s *Stream) Path() string {
	return s.file.Path()
}

// Text returns the text of the file this stream is over.
func (s *Stream) Text() string {
	return s.file.Text()
}

// Span is a shorthand for creating a new span in this stream's file.
func (s *Stream) Span(start, end int) report.Span {
	return s.file.Span(start, end)
}

// EOF returns a span pointing to the end of this stream's file.
func (s *Stream) EOF() report.Span {
	return s.file.EOF()
}

// Len returns the number of tokens in this stream.
//
// Note that this counts the two halves of a fused delimiter pair as two
// tokens.
func (s *Stream) Len() int {
	return len(s.nats)
}

// All returns an iterator over all tokens in this stream, in order of
// creation.
func (s *Stream) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for i := range s.nats {
			if !yield(ID(i + 1).In(s)) {
				return
			}
		}
	}
}

// Cursor returns a cursor over the whole token stream.
func (s *Stream) Cursor() *Cursor {
	return &Cursor{
		stream: s,
		start:  1,
		end:    ID(len(s.nats) + 1),
		idx:    1,
	}
}

// Freeze marks this stream as frozen. This means that all mutation
// operations will panic.
//
// Freezing cannot be checked for or undone; callers must assume any token
// stream they did not create has already been frozen.
func (s *Stream) Freeze() {
	if s != nil {
		s.frozen = true
	}
}

// Push mints the next token referring to a piece of the input source.
//
// Panics if this stream is frozen.
func (s *Stream) Push(length int, kind Kind) Token {
	if s.frozen {
		panic("bitemark/token: attempted to mutate frozen stream")
	}

	if length < 0 || length > math.MaxInt32 {
		panic(fmt.Sprintf("bitemark/token: Push() called with invalid length: %d", length))
	}

	var prevEnd int
	if len(s.nats) != 0 {
		prevEnd = int(s.nats[len(s.nats)-1].end)
	}

	end := prevEnd + length
	if end > len(s.Text()) {
		panic(fmt.Sprintf("bitemark/token: Push() overflowed backing text: %d > %d", end, len(s.Text())))
	}

	s.nats = append(s.nats, nat{
		end:           uint32(end),
		kindAndOffset: int32(kind) & kindMask,
	})

	return ID(len(s.nats)).In(s)
}
