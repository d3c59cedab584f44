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
	"io"
	"slices"
	"strings"
)

// Renderer renders a [Report] for showing to a user.
type Renderer struct {
	// If set, diagnostics are rendered as single lines, suitable for
	// surfacing through a plain Go error.
	Compact bool

	// If set, Remark-level diagnostics are rendered; otherwise they are
	// skipped.
	ShowRemarks bool
}

// Render renders all diagnostics in report to out.
//
// Returns the number of errors and warnings rendered.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	var first = true
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		switch d.level {
		case Error:
			errorCount++
		case Warning:
			warningCount++
		case Remark:
			if !r.ShowRemarks {
				continue
			}
		}

		if !first && !r.Compact {
			if _, err = io.WriteString(out, "\n"); err != nil {
				return errorCount, warningCount, err
			}
		}
		first = false

		if _, err = io.WriteString(out, r.Diagnostic(d)); err != nil {
			return errorCount, warningCount, err
		}
	}

	return errorCount, warningCount, nil
}

// RenderString is like [Renderer.Render], but renders into a string.
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	errorCount, warningCount, _ = r.Render(report, &buf)
	return buf.String(), errorCount, warningCount
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	if r.Compact {
		return r.compact(d)
	}
	return r.fancy(d)
}

func (r Renderer) compact(d *Diagnostic) string {
	primary := d.Primary()
	switch {
	case !primary.IsZero():
		loc := primary.StartLoc()
		return fmt.Sprintf("%s:%d:%d: %v: %s\n", primary.Path(), loc.Line, loc.Column, d.level, d.message)
	case d.inFile != "":
		return fmt.Sprintf("%s: %v: %s\n", d.inFile, d.level, d.message)
	default:
		return fmt.Sprintf("%v: %s\n", d.level, d.message)
	}
}

func (r Renderer) fancy(d *Diagnostic) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%v: %s\n", d.level, d.message)

	// The sidebar width is dictated by the widest line number we will print.
	bar := 1
	for _, snip := range d.annotations {
		bar = max(bar, len(fmt.Sprint(snip.EndLoc().Line)))
	}

	primary := d.Primary()
	switch {
	case !primary.IsZero():
		loc := primary.StartLoc()

		padBy(&out, bar)
		fmt.Fprintf(&out, "--> %s:%d:%d\n", primary.Path(), loc.Line, loc.Column)
		padBy(&out, bar+1)
		out.WriteString("|\n")

		annotations := slices.Clone(d.annotations)
		slices.SortStableFunc(annotations, func(a, b annotation) int {
			return a.Start - b.Start
		})

		prevLine := -1
		for _, snip := range annotations {
			line := snip.StartLoc().Line
			if line != prevLine {
				if prevLine != -1 && line != prevLine+1 {
					padBy(&out, bar)
					out.WriteString("...\n")
				}
				r.sourceLine(&out, bar, snip.File, line)
			}
			prevLine = line
			r.underline(&out, bar, snip)
		}

	case d.inFile != "":
		out.WriteString("--> ")
		out.WriteString(d.inFile)
		out.WriteByte('\n')
	}

	for _, note := range d.notes {
		padBy(&out, bar+1)
		fmt.Fprintf(&out, "= note: %s\n", note)
	}
	for _, help := range d.help {
		padBy(&out, bar+1)
		fmt.Fprintf(&out, "= help: %s\n", help)
	}

	return out.String()
}

// sourceLine renders one line of the offending source file, with tabs
// expanded and unprintable runes escaped.
func (r Renderer) sourceLine(out *strings.Builder, bar int, file *File, line int) {
	lineno := fmt.Sprint(line)
	padBy(out, bar-len(lineno))
	out.WriteString(lineno)
	out.WriteString(" | ")
	stringWidth(0, strings.TrimSuffix(file.Line(line), "\n"), false, out)
	out.WriteByte('\n')
}

// underline renders the underline row for a single annotation.
//
// Spans that cross a line boundary are underlined up to the end of their
// first line.
func (r Renderer) underline(out *strings.Builder, bar int, snip annotation) {
	start, end := snip.StartLoc(), snip.EndLoc()

	lineStart, lineEnd := snip.File.LineOffsets(start.Line)
	lineEnd = min(lineEnd, lineStart+len(strings.TrimSuffix(snip.File.Line(start.Line), "\n")))

	// Clamp the span to its first line.
	to := snip.End
	if end.Line != start.Line {
		to = lineEnd
	}

	margin := stringWidth(0, snip.File.Text()[lineStart:snip.Start], false, nil)
	width := stringWidth(margin, snip.File.Text()[snip.Start:to], false, nil) - margin
	// Zero-width spans (e.g. at EOF) still get a caret to point at.
	width = max(width, 1)

	sigil := '-'
	if snip.primary {
		sigil = '^'
	}

	padBy(out, bar+1)
	out.WriteString("| ")
	padBy(out, margin)
	padByRune(out, width, sigil)
	if snip.message != "" {
		out.WriteByte(' ')
		out.WriteString(snip.message)
	}
	out.WriteByte('\n')
}
