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

// Package bitemark is a conditional-inclusion preprocessor for roam!
// invocation bodies.
//
// Code wrapped in ++[...] is kept only when filtering for nightly builds,
// and code wrapped in --[...] is kept only when filtering for stable
// builds. Markers are resolved before the host compiler ever sees the
// code: a kept payload has its brackets stripped and its contents spliced
// in place, and a dropped payload vanishes without being looked inside of.
//
// The entry points are [Filter], which processes a single invocation body,
// and [Processor], which fans out over many bodies with bounded
// parallelism. The building blocks live in the subpackages: lexing in
// [github.com/roam-lang/bitemark/lexer], marker resolution in
// [github.com/roam-lang/bitemark/filter], re-emission in
// [github.com/roam-lang/bitemark/printer], and diagnostics in
// [github.com/roam-lang/bitemark/report].
package bitemark
