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

import "fmt"

// Implementation notes:
//
// Let n := int(id). If n is zero, it is the zero token. If n is positive,
// it is a token in the stream, whose index is n - 1.

// ID is the raw ID of a [Token] separated from its [Stream].
//
// The zero value is reserved as a "missing" representation. All other
// values are opaque.
type ID int32

// In associates this token ID with a stream. This allows token metadata,
// such as position, text, and kind, to be looked up.
//
// No checks are performed to validate that this ID came from this stream;
// the caller is responsible for ensuring that themselves.
func (t ID) In(s *Stream) Token {
	if t == 0 {
		return Zero
	}
	return Token{s, t}
}

// String implements [fmt.Stringer].
func (t ID) String() string {
	if t == 0 {
		return "Token(<zero>)"
	}
	return fmt.Sprintf("Token(%d)", int(t)-1)
}

// Constants for extracting the parts of nat.kindAndOffset.
const (
	kindMask    = 0b111
	offsetShift = 3
)

// nat is the data of a token stored in a [Stream].
type nat struct {
	// We store the end of the token, and the start is implicitly given by
	// the end of the previous token. We use the end, rather than the start,
	// because it makes adding tokens one by one to the stream easier: once
	// the token is pushed, its start and end are set correctly, and don't
	// depend on the next token being pushed.
	end           uint32
	kindAndOffset int32
}

// Kind extracts the token's kind.
func (t nat) Kind() Kind {
	return Kind(t.kindAndOffset & kindMask)
}

// Offset returns the offset from this token to its matching open/close, if
// any.
func (t nat) Offset() int {
	return int(t.kindAndOffset >> offsetShift)
}

// IsLeaf checks whether this is a leaf token.
func (t nat) IsLeaf() bool {
	return t.Offset() == 0
}

// IsOpen checks whether this is an open token with a matching closer.
func (t nat) IsOpen() bool {
	return t.Offset() > 0
}

// IsClose checks whether this is a closer token with a matching opener.
func (t nat) IsClose() bool {
	return t.Offset() < 0
}

//nolint:predeclared // For close.
func fuseImpl(diff int32, open, close *nat) {
	if diff <= 0 {
		panic("bitemark/token: called Fuse() with out-of-order tokens")
	}

	open.kindAndOffset |= diff << offsetShift
	close.kindAndOffset |= -diff << offsetShift
}
