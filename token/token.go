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

	"github.com/roam-lang/bitemark/report"
)

// Zero is the zero [Token], i.e., the zero value.
var Zero Token

// Token is a lexical element of a roam! invocation body.
//
// bitemark's token stream is actually a tree of tokens. Some tokens, called
// non-leaf tokens, contain a selection of tokens "within" them: the two
// matched delimiters of a bracketed group are a single token, and all of
// the tokens between them are contained inside it.
//
// The zero value of Token is the so-called "zero token", which is used to
// denote the absence of a token.
type Token struct {
	stream *Stream
	id     ID
}

// ID returns this token's raw ID, disassociated from its stream. This is
// useful for storing tokens of some ambient stream in a compressed manner.
func (t Token) ID() ID {
	return t.id
}

// Stream returns the stream this token belongs to, which is nil for the
// zero token.
func (t Token) Stream() *Stream {
	return t.stream
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.id == 0
}

// IsLeaf returns whether this is a non-zero leaf token.
func (t Token) IsLeaf() bool {
	if t.IsZero() {
		return false
	}
	return t.nat().IsLeaf()
}

// Kind returns what kind of token this is.
//
// Returns [Unrecognized] if this token is zero.
func (t Token) Kind() Kind {
	if t.IsZero() {
		return Unrecognized
	}
	return t.nat().Kind()
}

// Text returns the text fragment referred to by this token. This does not
// return the text contained inside of non-leaf tokens; if this token refers
// to a token tree, this will return only the text of the open (or close)
// token.
//
// For example, for a matched pair of braces, this will only return the text
// of the open brace, "{".
//
// Returns empty string for the zero token.
func (t Token) Text() string {
	if t.IsZero() {
		return ""
	}

	start, end := t.offsets()
	return t.stream.Text()[start:end]
}

// Span implements [report.Spanner].
//
// The span of a non-leaf token covers everything from its open delimiter to
// its close delimiter.
func (t Token) Span() report.Span {
	if t.IsZero() {
		return report.Span{}
	}

	var a, b int
	if !t.IsLeaf() {
		start, end := t.StartEnd()
		a, _ = start.offsets()
		_, b = end.offsets()
	} else {
		a, b = t.offsets()
	}

	return t.stream.file.Span(a, b)
}

// TextSpan returns the span of just this token's text.
//
// For either half of a fused delimiter pair, this is the span of that
// delimiter alone, unlike [Token.Span], which covers the whole group.
func (t Token) TextSpan() report.Span {
	if t.IsZero() {
		return report.Span{}
	}

	start, end := t.offsets()
	return t.stream.file.Span(start, end)
}

// StartEnd returns the open and close tokens for this token.
//
// If this is a leaf token, start and end will be the same token and will
// compare as equal.
//
// Panics if this is a zero token.
func (t Token) StartEnd() (start, end Token) {
	switch impl := t.nat(); {
	case impl.IsLeaf():
		return t, t
	case impl.IsOpen():
		start = t
		end = (t.id + ID(impl.Offset())).In(t.stream)
	case impl.IsClose():
		start = (t.id + ID(impl.Offset())).In(t.stream)
		end = t
	}

	return start, end
}

// Children returns a Cursor over the children of this token.
//
// If the token is zero or is a leaf token, returns nil.
func (t Token) Children() *Cursor {
	if t.IsZero() || t.IsLeaf() {
		return nil
	}

	start, end := t.StartEnd()
	return &Cursor{
		stream: t.stream,
		start:  start.id + 1, // Skip the start!
		end:    end.id,
		idx:    int(start.id + 1),
	}
}

// AsString converts this token into a Go string if it is in fact a string
// literal token, with quotes stripped and escapes resolved.
//
// Otherwise, returns "", false.
func (t Token) AsString() (string, bool) {
	if t.Kind() != String {
		return "", false
	}

	// Check if there's an unescaped version of this string.
	if unescaped, ok := t.stream.literals[t.id]; ok {
		return unescaped, true
	}

	// If it's not in the map, this is a simple string whose quotes we can
	// just pull off of the token text.
	text := t.Text()
	if len(text) < 2 {
		// Some kind of invalid, unterminated string token.
		return "", true
	}
	return text[1 : len(text)-1], true
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("{%v %v}", t.id, t.Kind())
}

// Fuse marks a pair of tokens as their respective open and close.
//
// If open or close are not currently leaves, come from different streams,
// or are part of a frozen [Stream], this function panics.
func Fuse(open, close Token) { //nolint:predeclared // For close.
	if open.stream != close.stream {
		panic("bitemark/token: attempted to fuse tokens from different streams")
	}
	if open.stream.frozen {
		panic("bitemark/token: attempted to mutate frozen stream")
	}

	impl1 := open.nat()
	if !impl1.IsLeaf() {
		panic("bitemark/token: called Fuse() with non-leaf as the open token")
	}
	impl2 := close.nat()
	if !impl2.IsLeaf() {
		panic("bitemark/token: called Fuse() with non-leaf as the close token")
	}

	fuseImpl(int32(close.id-open.id), impl1, impl2)
}

// SetValue records the unescaped value of a string token, for strings whose
// text contains escapes that must be resolved up front.
//
// Panics if the given token is zero, not a string, or part of a frozen
// stream.
func SetValue(tok Token, unescaped string) {
	if tok.IsZero() {
		panic(fmt.Sprintf("bitemark/token: passed zero token to SetValue: %s", tok))
	}
	if tok.Kind() != String {
		panic(fmt.Sprintf("bitemark/token: passed token of invalid kind to SetValue: %s", tok))
	}
	if tok.stream.frozen {
		panic("bitemark/token: attempted to mutate frozen stream")
	}

	if tok.stream.literals == nil {
		tok.stream.literals = map[ID]string{}
	}
	tok.stream.literals[tok.id] = unescaped
}

// offsets returns the byte offsets of this token within the file it came
// from.
//
// Note that this DOES NOT include any child tokens!
func (t Token) offsets() (start, end int) {
	end = int(t.nat().end)
	// If this is the first token, the start is implicitly zero.
	if t.id == 1 {
		return 0, end
	}

	prev := (t.id - 1).In(t.stream)
	return int(prev.nat().end), end
}

func (t Token) nat() *nat {
	// Need to subtract off one, because the zeroth ID is used as a
	// "missing" sentinel.
	return &t.stream.nats[t.id-1]
}
