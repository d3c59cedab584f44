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

package filter

import (
	"fmt"

	"github.com/roam-lang/bitemark/report"
	"github.com/roam-lang/bitemark/token"
)

// TagMalformedMarker tags diagnostics for conditional markers that are not
// followed by a bracketed group.
const TagMalformedMarker report.Tag = "malformed-marker"

// ErrMalformedMarker diagnoses a conditional marker whose payload group is
// missing: the marker sigil is not immediately followed by a `(`, `[`, or
// `{` delimited group.
type ErrMalformedMarker struct {
	Marker   token.Token // The marker sigil token.
	Polarity Polarity    // The marker's polarity.
	Found    token.Token // What was found instead; zero at end of input.
}

// Error implements [error].
func (e ErrMalformedMarker) Error() string {
	return fmt.Sprintf("conditional marker `%s` is missing its payload group", e.Polarity.Sigil())
}

// Diagnose implements [report.Diagnose].
func (e ErrMalformedMarker) Diagnose(d *report.Diagnostic) {
	d.With(
		TagMalformedMarker,
		report.Snippetf(e.Marker, "expected a bracketed group after this marker"),
	)
	if !e.Found.IsZero() {
		d.With(report.Snippetf(e.Found, "found this instead"))
	}

	mode := Nightly
	if e.Polarity == KeepOnStable {
		mode = Stable
	}
	d.With(report.Help(
		"write `%s[...]` around the code to include only on %v builds",
		e.Polarity.Sigil(), mode,
	))
}
