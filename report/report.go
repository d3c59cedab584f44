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
	"cmp"
	"fmt"
	"slices"
)

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set the message nor the level; those are set
	// by the diagnostics framework.
	Diagnose(*Diagnostic)
}

// Report is a collection of diagnostics.
//
// A zero Report is ready to use.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) *Diagnostic {
	d := r.push(err.Error(), Error)
	err.Diagnose(d)
	return d
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) *Diagnostic {
	d := r.push(err.Error(), Warning)
	err.Diagnose(d)
	return d
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) *Diagnostic {
	d := r.push(err.Error(), Remark)
	err.Diagnose(d)
	return d
}

// Errorf creates a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Sprintf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Sprintf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Sprintf(format, args...), Remark)
}

// HasErrors returns whether this report contains any Error-level
// diagnostics.
func (r *Report) HasErrors() bool {
	for i := range r.Diagnostics {
		if r.Diagnostics[i].level == Error {
			return true
		}
	}
	return false
}

// Sort sorts this report's diagnostics by file, then by start offset, then
// by level.
//
// Sorting is stable: diagnostics at the same location keep the order they
// were generated in.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		aSpan, bSpan := a.Primary(), b.Primary()
		if diff := cmp.Compare(aSpan.Path(), bSpan.Path()); diff != 0 {
			return diff
		}
		if diff := cmp.Compare(aSpan.Start, bSpan.Start); diff != 0 {
			return diff
		}
		return cmp.Compare(a.level, b.level)
	})
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(message string, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		message: message,
		level:   level,
	})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}
