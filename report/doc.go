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

// Package report provides source files, spans, and rich compiler
// diagnostics for bitemark.
//
// # Diagnostics
//
// A [Diagnostic] is built out of options: a message, annotated source
// snippets, and trailing notes and help. Error types that know their own
// context implement [Diagnose], and are pushed onto a [Report] with
// [Report.Error] or [Report.Warn].
//
// A [Report] accumulates every diagnostic for one invocation; whether the
// invocation failed is a property of the whole report ([Report.HasErrors]),
// not of any one push. [Renderer] turns a report into human-readable text,
// either compact (one line per diagnostic) or with annotated source
// windows.
//
// # Spans
//
// A [Span] is a pair of byte offsets into a [File]. Files compute their
// line index lazily, so constructing spans is free and resolving them to
// line/column information is logarithmic.
package report
