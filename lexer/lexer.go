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

// Package lexer turns the body of a roam! invocation into a token tree.
//
// The lexer is responsible for matching delimiters: the conditional filter
// downstream assumes well-nested input, so unmatched or mismatched
// delimiters are diagnosed here and fail the invocation before filtering
// begins.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// Lex performs lexical analysis on the given stream's file, and appends any
// diagnostics that result to errs.
//
// The stream is frozen once lexing completes; Lex panics if the stream
// already contains tokens.
func Lex(stream *token.Stream, errs *report.Report) {
	if stream.Len() > 0 {
		panic("bitemark/lexer: expected an empty token stream for " + stream.Path())
	}

	l := &lexer{
		Stream: stream,
		Report: errs,
	}
	l.Lex()
	stream.Freeze()
}

// lexer is a Roam macro-body lexer.
type lexer struct {
	*token.Stream // Embedded so we don't have to call Stream() everywhere.
	*report.Report

	// This is outlined so that it's easy to print in the panic handler.
	lexerState
}

type lexerState struct {
	cursor, count int
	openStack     []token.Token
}

// Lex performs lexical analysis, and places any diagnostics in the report.
func (l *lexer) Lex() {
	defer func() {
		if panicked := recover(); panicked != nil {
			panic(fmt.Sprintf("panic while lexing: %s; %#v", panicked, l.lexerState))
		}
	}()

	// Check that the input isn't too big. We give up immediately if that's
	// the case.
	if len(l.Text()) > MaxFileSize {
		l.Error(ErrFileTooBig{Path: l.Path()})
		return
	}

	// Also check that the text of the file is actually UTF-8.
	// We go rune by rune to find the first invalid offset.
	for text := l.Text(); text != ""; {
		r := decodeRune(text)
		if r == -1 {
			l.Error(ErrNotUTF8{
				Path: l.Path(),
				At:   len(l.Text()) - len(text),
				Byte: text[0],
			})
			return
		}
		text = text[utf8.RuneLen(r):]
	}

	var prevCount int
	for !l.Done() {
		start := l.cursor
		r := l.Pop()

		if prevCount > 0 && prevCount == l.count {
			panic(fmt.Sprintf("bitemark/lexer: lexer failed to make progress at offset %d; this is a bug in bitemark", l.cursor))
		}
		prevCount = l.count

		switch {
		case unicode.In(r, unicode.Pattern_White_Space):
			// Whitespace. Consume as much whitespace as possible and mint a
			// whitespace token.
			l.TakeWhile(func(r rune) bool {
				return unicode.In(r, unicode.Pattern_White_Space)
			})
			l.Push(l.cursor-start, token.Space)

		case r == '/' && l.Peek() == '/':
			l.cursor++ // Skip the second /.

			// Single-line comment. Seek to the next '\n' or the EOF.
			var text string
			if comment, ok := l.SeekInclusive("\n"); ok {
				text = comment
			} else {
				text = l.SeekEOF()
			}
			l.Push(len("//")+len(text), token.Comment)

		case r == '/' && l.Peek() == '*':
			l.cursor++ // Skip the *.

			// Block comment. Seek to the next "*/". If we encounter no "*/",
			// seek EOF and emit a diagnostic; trying to lex a partial
			// comment is hopeless.
			var text string
			if comment, ok := l.SeekInclusive("*/"); ok {
				text = comment
			} else {
				l.Error(ErrUnterminated{Span: l.SpanFrom(l.cursor - 2)})
				text = l.SeekEOF()
			}
			l.Push(len("/*")+len(text), token.Comment)

		case r == '+' && l.Peek() == '+', r == '-' && l.Peek() == '-':
			// A conditional marker sigil. The two characters must be
			// directly adjacent to form a marker, so the pairing happens
			// here rather than in the filter.
			l.cursor++
			l.Push(2, token.Punct)

		case strings.ContainsRune(";,.:=<>-+*/&|!?@#%^~", r):
			// Random punctuation that doesn't require special handling. A /
			// reaching this case is not part of a comment; those are
			// handled above.
			l.Push(utf8.RuneLen(r), token.Punct)

		case strings.ContainsRune("([{", r): // Push the opener, close it later.
			tok := l.Push(1, token.Punct)
			l.openStack = append(l.openStack, tok)
		case strings.ContainsRune(")]}", r):
			tok := l.Push(1, token.Punct)
			if len(l.openStack) == 0 {
				l.Error(ErrUnmatched{Span: tok.Span()})
			} else {
				end := len(l.openStack) - 1
				open := l.openStack[end]
				if _, expected := bracePair(open.Text()); tok.Text() != expected {
					l.Error(ErrUnmatched{Span: open.Span(), Mismatch: tok.Span()})
				}

				token.Fuse(open, tok)
				l.openStack = l.openStack[:end]
			}

		case r == '"':
			l.cursor-- // Back up to behind the quote before resuming.
			l.LexString()

		case unicode.IsDigit(r):
			// Back up behind the rune we just popped.
			l.cursor -= utf8.RuneLen(r)
			l.LexNumber()

		case r == '_' || unicode.IsLetter(r):
			// Back up behind the rune we just popped.
			l.cursor -= utf8.RuneLen(r)
			id := l.TakeWhile(func(r rune) bool {
				return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
			})

			tok := l.Push(len(id), token.Ident)

			// Legalize non-ASCII runes.
			if !isASCIIIdent(tok.Text()) {
				l.Error(ErrNonASCIIIdent{Token: tok})
			}

		default:
			// Back up behind the rune we just popped.
			l.cursor -= utf8.RuneLen(r)

			// Consume as many grapheme clusters as possible, and diagnose
			// them.
			unknown := l.TakeGraphemesWhile(func(g string) bool {
				r, _ := utf8.DecodeRuneInString(g)
				return !strings.ContainsRune(";,.:=<>-+*/&|!?@#%^~([{}])_\"", r) &&
					!unicode.IsLetter(r) && !unicode.IsDigit(r) &&
					!unicode.In(r, unicode.Pattern_White_Space)
			})
			tok := l.Push(len(unknown), token.Unrecognized)
			l.Error(ErrUnrecognized{Token: tok})
		}
	}

	// Legalize against unclosed delimiters.
	for _, open := range l.openStack {
		l.Error(ErrUnmatched{Span: open.Span()})
	}
	// In backwards order, generate empty tokens to fuse with the unclosed
	// delimiters, so that the stream remains well-nested.
	for i := len(l.openStack) - 1; i >= 0; i-- {
		empty := l.Push(0, token.Unrecognized)
		token.Fuse(l.openStack[i], empty)
	}
}

func (l *lexer) Push(length int, kind token.Kind) token.Token {
	l.count++
	return l.Stream.Push(length, kind)
}

// LexNumber lexes a number starting at the current cursor.
//
// Numbers are lexed permissively; the host compiler is the one that
// assigns them meaning, so the only job here is to take the largest
// plausible numeric chunk as a single token.
func (l *lexer) LexNumber() token.Token {
	start := l.cursor
more:
	r := l.Peek()
	if r == 'e' || r == 'E' {
		_ = l.Pop()
		r = l.Peek()
		if r == '+' || r == '-' {
			_ = l.Pop()
		}
		goto more
	}
	if r == '.' || r == '_' || unicode.IsDigit(r) || unicode.IsLetter(r) {
		_ = l.Pop()
		goto more
	}

	return l.Push(l.cursor-start, token.Number)
}

// LexString lexes a string starting at the current cursor.
//
// The cursor position should be just before the string's first quote
// character.
func (l *lexer) LexString() token.Token {
	start := l.cursor
	q := l.Pop()

	// Seek to the end of the string, unescaping as we go. We do not
	// materialize an unescaped string if this string does not require
	// escaping.
	var buf strings.Builder
	var haveEsc, terminated bool
	for !l.Done() {
		r := l.Pop()
		if r == q {
			terminated = true
			break
		}
		if r == '\n' {
			// Strings do not span lines; moor the diagnostic to the open
			// quote and resume lexing at the newline.
			l.cursor--
			break
		}

		if r != '\\' {
			if haveEsc {
				buf.WriteRune(r)
			}
			continue
		}

		if !haveEsc {
			buf.WriteString(l.Text()[start+1 : l.cursor-1])
			haveEsc = true
		}

		r = l.Pop()
		switch r {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '0':
			buf.WriteByte(0)
		case '\\', '\'', '"':
			buf.WriteRune(r)

		// Hex escapes.
		case 'x', 'u':
			esc := r
			var value uint32
			var digits, consumed int
			switch esc {
			case 'x':
				digits = 2
			case 'u':
				digits = 4
			}

		digits:
			for range digits {
				if l.Done() {
					break
				}
				r = l.Peek()

				value *= 16
				switch {
				case r >= '0' && r <= '9':
					value |= uint32(r) - '0'
				case r >= 'a' && r <= 'f':
					value |= uint32(r) - 'a' + 10
				case r >= 'A' && r <= 'F':
					value |= uint32(r) - 'A' + 10
				default:
					break digits
				}
				_ = l.Pop()

				consumed++
			}

			if consumed != digits || (esc != 'x' && !utf8.ValidRune(rune(value))) {
				l.Error(ErrInvalidEscape{Span: l.SpanFrom(start)})
			}

			if esc == 'x' {
				buf.WriteByte(byte(value))
			} else {
				buf.WriteRune(rune(value))
			}
		default:
			l.Error(ErrInvalidEscape{Span: l.SpanFrom(start)})
		}
	}

	tok := l.Push(l.cursor-start, token.String)
	if haveEsc {
		token.SetValue(tok, buf.String())
	}

	if !terminated {
		l.Error(ErrUnterminated{Span: l.Span(start, start+1)})
	}

	return tok
}

// Done returns whether or not we're done lexing runes.
func (l *lexer) Done() bool {
	return l.Rest() == ""
}

// Rest returns unlexed text.
func (l *lexer) Rest() string {
	return l.Text()[l.cursor:]
}

// Peek peeks the next character.
//
// Returns -1 if l.Done().
func (l *lexer) Peek() rune {
	return decodeRune(l.Rest())
}

// Pop consumes the next character.
//
// Returns -1 if l.Done().
func (l *lexer) Pop() rune {
	r := l.Peek()
	if r != -1 {
		l.cursor += utf8.RuneLen(r)
		return r
	}
	return -1
}

// TakeWhile consumes characters while they match the given function.
// Returns consumed characters.
func (l *lexer) TakeWhile(f func(rune) bool) string {
	start := l.cursor
	for !l.Done() {
		r := l.Peek()
		if r == -1 || !f(r) {
			break
		}
		_ = l.Pop()
	}
	return l.Text()[start:l.cursor]
}

// TakeGraphemesWhile consumes grapheme clusters while they match the given
// function. Returns consumed characters.
func (l *lexer) TakeGraphemesWhile(f func(string) bool) string {
	start := l.cursor

	for gs := uniseg.NewGraphemes(l.Rest()); gs.Next(); {
		g := gs.Str()
		if !f(g) {
			break
		}
		l.cursor += len(g)
	}
	return l.Text()[start:l.cursor]
}

// SeekInclusive seeks until the given needle is found; returns the prefix
// inclusive of that needle, and updates the cursor to point after it.
func (l *lexer) SeekInclusive(needle string) (string, bool) {
	if idx := strings.Index(l.Rest(), needle); idx != -1 {
		prefix := l.Rest()[:idx+len(needle)]
		l.cursor += idx + len(needle)
		return prefix, true
	}
	return "", false
}

// SeekEOF seeks the cursor to the end of the input and returns the
// remaining text.
func (l *lexer) SeekEOF() string {
	rest := l.Rest()
	l.cursor += len(rest)
	return rest
}

func (l *lexer) SpanFrom(start int) report.Span {
	return l.Span(start, l.cursor)
}

// decodeRune is a wrapper around utf8.DecodeRuneInString that makes it
// easier to check for failure. Instead of returning RuneError (which is a
// valid rune!), it returns -1.
func decodeRune(s string) rune {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n < 2 {
		return -1
	}
	return r
}

func isASCIIIdent(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}
	return true
}
