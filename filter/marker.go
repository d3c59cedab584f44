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

import "github.com/roam-lang/bitemark/token"

// Polarity indicates which [Mode] causes a marker's payload to be kept.
type Polarity byte

const (
	// NoPolarity marks a token that is not a conditional marker at all.
	NoPolarity Polarity = iota
	// KeepOnNightly is the polarity of ++: the payload survives only in
	// [Nightly] mode.
	KeepOnNightly
	// KeepOnStable is the polarity of --: the payload survives only in
	// [Stable] mode.
	KeepOnStable
)

// Classify returns the marker polarity of the given token, or [NoPolarity]
// if it is not a marker sigil.
//
// The lexer only produces ++ and -- tokens for directly adjacent character
// pairs, so spelling is the only thing to check here.
func Classify(tok token.Token) Polarity {
	if tok.Kind() != token.Punct || !tok.IsLeaf() {
		return NoPolarity
	}
	switch tok.Text() {
	case "++":
		return KeepOnNightly
	case "--":
		return KeepOnStable
	default:
		return NoPolarity
	}
}

// Keep reports whether a payload with this polarity survives a pass in the
// given mode.
func (p Polarity) Keep(mode Mode) bool {
	return (p == KeepOnNightly) == (mode == Nightly)
}

// Sigil returns the source spelling of this polarity.
func (p Polarity) Sigil() string {
	switch p {
	case KeepOnNightly:
		return "++"
	case KeepOnStable:
		return "--"
	default:
		return ""
	}
}

// String implements [fmt.Stringer].
func (p Polarity) String() string {
	switch p {
	case NoPolarity:
		return "NoPolarity"
	case KeepOnNightly:
		return "KeepOnNightly"
	case KeepOnStable:
		return "KeepOnStable"
	default:
		return "Polarity(?)"
	}
}
