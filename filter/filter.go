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

// Package filter implements conditional inclusion for roam! invocation
// bodies.
//
// The filter recognizes two marker spellings: ++ keeps the bracketed group
// that follows it only in [Nightly] mode, and -- keeps it only in [Stable]
// mode. A kept group's delimiters are stripped and its (recursively
// filtered) contents are spliced in place of the marker; a dropped group
// vanishes wholesale, and nothing inside it is ever evaluated.
//
// The filter is a pure function of its inputs: it never mutates the stream
// it walks, and identical (stream, mode) pairs produce identical output.
package filter

import (
	"fmt"

	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// Mode selects which variant of conditionally-included code survives a
// filtering pass.
//
// Exactly one mode is active for a whole pass; there are no per-fragment
// overrides.
type Mode byte

const (
	// Stable builds keep --[...] payloads and drop ++[...] payloads.
	Stable Mode = iota
	// Nightly builds keep ++[...] payloads and drop --[...] payloads.
	Nightly
)

// String implements [fmt.Stringer].
func (m Mode) String() string {
	switch m {
	case Stable:
		return "stable"
	case Nightly:
		return "nightly"
	default:
		return fmt.Sprintf("filter.Mode(%d)", int(m))
	}
}

// Apply resolves every conditional marker in stream against mode.
//
// The result is a flattened, well-nested token sequence in original order:
// non-leaf tokens appear as their open and close halves with their
// (filtered) contents between them, so that groups whose contents changed
// need no reconstruction. [printer.Print] turns the sequence back into
// source text.
//
// On malformed input, a diagnostic is pushed onto errs and Apply returns
// nil, false; there is no partial output.
func Apply(stream *token.Stream, mode Mode, errs *report.Report) ([]token.Token, bool) {
	f := &filterer{Report: errs, mode: mode}
	f.seq(stream.Cursor())
	if f.failed {
		return nil, false
	}
	return f.out, true
}

// filterer holds the state of a single filtering pass.
//
// There is no state machine here beyond the recursion stack; a pass either
// runs to completion or fails on the first malformed marker.
type filterer struct {
	*report.Report

	mode   Mode
	out    []token.Token
	failed bool
}

// seq filters one nesting level, left to right.
func (f *filterer) seq(cur *token.Cursor) {
	for !f.failed {
		tok := cur.NextSkippable()
		if tok.IsZero() {
			return
		}

		if pol := Classify(tok); pol != NoPolarity {
			f.marker(tok, pol, cur)
			continue
		}

		if !tok.IsLeaf() {
			// An ordinary group: keep the delimiters and filter the
			// contents.
			open, close := tok.StartEnd()
			f.emit(open)
			f.seq(tok.Children())
			if f.failed {
				return
			}
			f.emit(close)
			continue
		}

		f.emit(tok)
	}
}

// marker resolves a single marker whose sigil token has already been
// consumed from cur.
func (f *filterer) marker(mark token.Token, pol Polarity, cur *token.Cursor) {
	// The payload is the next non-trivia token; trivia between a marker and
	// its payload belongs to the marker construct and is consumed with it.
	payload := cur.Next()
	if payload.IsZero() || payload.IsLeaf() {
		f.Error(ErrMalformedMarker{Marker: mark, Polarity: pol, Found: payload})
		f.failed = true
		return
	}

	if !pol.Keep(f.mode) {
		// Dropped payloads are never descended into; markers inside them
		// are never evaluated, malformed or not.
		return
	}

	// Splice: the payload's delimiters are stripped and its filtered
	// contents stand in for the whole marker construct.
	f.seq(payload.Children())
}

func (f *filterer) emit(tok token.Token) {
	f.out = append(f.out, tok)
}
