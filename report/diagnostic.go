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

package report

import (
	"fmt"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Indicates a constraint violation that fails the invocation.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// Tag is a diagnostic tag: a machine-readable identification for a
// diagnostic.
//
// Tags should be lowercase identifiers separated by dashes, e.g.
// my-error-tag. If a package generates diagnostics with tags, it should
// expose those tags as constants.
type Tag string

// Apply implements [DiagnosticOption].
func (t Tag) Apply(d *Diagnostic) {
	if d.tag != "" {
		panic("bitemark/report: set diagnostic tag more than once")
	}

	d.tag = t
}

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors"; some represent warnings, or perhaps
// debugging remarks.
//
// To construct a diagnostic, create one using a function like
// [Report.Error]. Then, call [Diagnostic.With] to apply options to it. You
// should at minimum apply [Message] and either [InFile] or at least one
// [Snippet].
type Diagnostic struct {
	tag     Tag
	message string

	level Level

	// The file this diagnostic occurs in, if it has no associated snippets.
	// This is used for errors like "file too big" that cannot be given a
	// snippet.
	inFile string

	// A list of annotated source code spans in the diagnostic.
	annotations []annotation
	notes, help []string
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption interface {
	Apply(*Diagnostic)
}

// Primary returns this diagnostic's primary span, if it has one.
//
// If it doesn't have one, it returns the zero span.
func (d *Diagnostic) Primary() Span {
	for _, annotation := range d.annotations {
		if annotation.primary {
			return annotation.Span
		}
	}

	return Span{}
}

// Level returns this diagnostic's level.
func (d *Diagnostic) Level() Level {
	return d.level
}

// Message returns this diagnostic's message.
func (d *Diagnostic) Message() string {
	return d.message
}

// Is checks whether this diagnostic has a particular tag.
func (d *Diagnostic) Is(tag Tag) bool {
	return d.tag == tag
}

// With applies the given options to this diagnostic.
//
// Nil values are ignored.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.Apply(d)
		}
	}
	return d
}

// Message returns a DiagnosticOption that sets the main diagnostic message.
func Message(format string, args ...any) DiagnosticOption {
	return message(fmt.Sprintf(format, args...))
}

// InFile is a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
type InFile string

// Apply implements [DiagnosticOption].
func (f InFile) Apply(d *Diagnostic) {
	if d.inFile != "" {
		panic("bitemark/report: set diagnostic path more than once")
	}

	d.inFile = string(f)
}

// Snippet returns a DiagnosticOption that adds a new snippet to a
// diagnostic.
//
// The first snippet added is the "primary" snippet, and will be rendered
// differently from the others.
//
// If at is nil or returns a zero span, this function returns nil.
func Snippet(at Spanner) DiagnosticOption {
	return Snippetf(at, "")
}

// Snippetf is like [Snippet], but attaches a message to the snippet,
// produced with [fmt.Sprintf].
func Snippetf(at Spanner, format string, args ...any) DiagnosticOption {
	if at == nil {
		return nil
	}

	span := at.Span()
	if span.IsZero() {
		return nil
	}

	return annotation{
		Span:    span,
		message: fmt.Sprintf(format, args...),
	}
}

// Note returns a DiagnosticOption that provides the user with context about
// the diagnostic, after the snippets.
func Note(format string, args ...any) DiagnosticOption {
	return note(fmt.Sprintf(format, args...))
}

// Help returns a DiagnosticOption that provides the user with a helpful
// prose suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return help(fmt.Sprintf(format, args...))
}

// annotation is an annotated source code snippet within a [Diagnostic].
//
// Snippets will render as annotated source code spans that show the context
// around the annotated region. More literally, this is e.g. a red squiggly
// line under some code.
type annotation struct {
	// The span for this annotation.
	Span

	// A message to show under this snippet.
	//
	// May be empty, in which case it will simply render as the
	// red/yellow/etc squiggly line with no note attached to it.
	message string

	// Whether this is a "primary" snippet, which is used for deciding
	// whether or not to mark the snippet with the same color as the overall
	// diagnostic.
	primary bool
}

func (a annotation) Apply(d *Diagnostic) {
	a.primary = len(d.annotations) == 0
	d.annotations = append(d.annotations, a)
}

type message string
type note string
type help string

func (m message) Apply(d *Diagnostic) {
	if d.message != "" {
		panic("bitemark/report: set diagnostic message more than once")
	}

	d.message = string(m)
}

func (n note) Apply(d *Diagnostic) { d.notes = append(d.notes, string(n)) }
func (n help) Apply(d *Diagnostic) { d.help = append(d.help, string(n)) }
