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

// Package token provides a memory-efficient representation of a token tree
// for the body of a roam! invocation.
//
// # Token Trees
//
// Tokens in bitemark are trees: a token may "contain" a range of other
// tokens. The two matched delimiters of a bracketed group are a single
// non-leaf token, and all of the tokens between them are contained inside
// it, accessible via [Token.Children]. This moves the tricky work of
// matching delimiters out of the filter and into the lexer, which is what
// lets the conditional filter assume well-nested input.
//
// A [Stream] is append-only while lexing and is frozen afterwards; the
// filter only ever consumes frozen streams, so a filtering pass can never
// mutate its input.
package token
