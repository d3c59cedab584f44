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

package lexer

import (
	"fmt"
	"math"

	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// MaxFileSize is the maximum input size bitemark supports.
const MaxFileSize int = math.MaxInt32 // 2GB

// ErrFileTooBig diagnoses an input that is beyond bitemark's implementation
// limits.
type ErrFileTooBig struct {
	Path string
}

// Error implements [error].
func (e ErrFileTooBig) Error() string {
	return "inputs larger than 2GB are not supported"
}

// Diagnose implements [report.Diagnose].
func (e ErrFileTooBig) Diagnose(d *report.Diagnostic) {
	d.With(report.InFile(e.Path))
}

// ErrNotUTF8 diagnoses an input that contains non-UTF-8 bytes.
type ErrNotUTF8 struct {
	Path string
	At   int
	Byte byte
}

// Error implements [error].
func (e ErrNotUTF8) Error() string {
	return "input must be encoded as valid UTF-8"
}

// Diagnose implements [report.Diagnose].
func (e ErrNotUTF8) Diagnose(d *report.Diagnostic) {
	d.With(
		report.InFile(e.Path),
		report.Note("found a 0x%02x byte at offset %d", e.Byte, e.At),
	)
}

// ErrUnrecognized diagnoses the presence of an unrecognized token.
type ErrUnrecognized struct {
	Token token.Token // The offending token.
}

// Error implements [error].
func (e ErrUnrecognized) Error() string {
	return "unrecognized token"
}

// Diagnose implements [report.Diagnose].
func (e ErrUnrecognized) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.Token))
}

// ErrNonASCIIIdent diagnoses an identifier that contains non-ASCII runes.
type ErrNonASCIIIdent struct {
	Token token.Token // The offending identifier token.
}

// Error implements [error].
func (e ErrNonASCIIIdent) Error() string {
	return "non-ASCII identifiers are not allowed"
}

// Diagnose implements [report.Diagnose].
func (e ErrNonASCIIIdent) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.Token))
}

// ErrUnmatched diagnoses a delimiter for which we found one half of a
// matched pair but not the other.
type ErrUnmatched struct {
	Span report.Span // The offending delimiter.

	// If present, this indicates that we did match with another delimiter,
	// but it was of the wrong kind.
	Mismatch report.Span
}

// Error implements [error].
func (e ErrUnmatched) Error() string {
	return fmt.Sprintf("encountered unmatched `%s` delimiter", e.Span.Text())
}

// Diagnose implements [report.Diagnose].
func (e ErrUnmatched) Diagnose(d *report.Diagnostic) {
	text := e.Span.Text()
	openTok, closeTok := bracePair(text)

	if text == openTok {
		d.With(report.Snippetf(e.Span, "expected a closing `%s`", closeTok))
		if !e.Mismatch.IsZero() {
			d.With(report.Snippetf(e.Mismatch, "closed by this instead"))
		}
	} else {
		d.With(report.Snippetf(e.Span, "expected an opening `%s`", openTok))
	}
}

// ErrUnterminated diagnoses a string literal or block comment that runs off
// the end of its line or input.
type ErrUnterminated struct {
	Span report.Span // The opening quote or comment introducer.
}

// Error implements [error].
func (e ErrUnterminated) Error() string {
	if e.Span.Text() == "/*" {
		return "unterminated block comment"
	}
	return "unterminated string literal"
}

// Diagnose implements [report.Diagnose].
func (e ErrUnterminated) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippetf(e.Span, "opened here"))
}

// ErrInvalidEscape diagnoses an invalid escape sequence within a string
// literal.
type ErrInvalidEscape struct {
	Span report.Span // The string up to and including the bad escape.
}

// Error implements [error].
func (e ErrInvalidEscape) Error() string {
	return "invalid escape sequence"
}

// Diagnose implements [report.Diagnose].
func (e ErrInvalidEscape) Diagnose(d *report.Diagnostic) {
	d.With(report.Snippet(e.Span))
}

// bracePair returns the open/close pair that the given delimiter text
// belongs to.
func bracePair(text string) (openTok, closeTok string) {
	switch text {
	case "(", ")":
		return "(", ")"
	case "[", "]":
		return "[", "]"
	case "{", "}":
		return "{", "}"
	default:
		return "", ""
	}
}
