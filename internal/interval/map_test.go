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

package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roam-lang/bitemark/internal/interval"
)

func TestGet(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(0, 2, "a")
	m.Insert(2, 5, "b")
	m.Insert(10, 11, "c")
	require.Equal(t, 3, m.Len())

	tests := []struct {
		key  int
		want string
		miss bool
	}{
		{key: -1, miss: true},
		{key: 0, want: "a"},
		{key: 1, want: "a"},
		{key: 2, want: "b"}, // Ends are exclusive, starts are inclusive.
		{key: 4, want: "b"},
		{key: 5, miss: true},
		{key: 9, miss: true},
		{key: 10, want: "c"},
		{key: 11, miss: true},
	}
	for _, tt := range tests {
		got := m.Get(tt.key)
		if tt.miss {
			assert.Nil(t, got.Value, "key %d", tt.key)
			continue
		}
		require.NotNil(t, got.Value, "key %d", tt.key)
		assert.Equal(t, tt.want, *got.Value, "key %d", tt.key)
	}
}

func TestEmptyIntervals(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(3, 3, "empty")
	m.Insert(4, 2, "inverted")
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Get(3).Value)
}

func TestIntervals(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(5, 7, "b")
	m.Insert(0, 3, "a")
	m.Insert(9, 12, "c")

	type entry struct {
		start, end int
		value      string
	}
	var got []entry
	for iv := range m.Intervals() {
		got = append(got, entry{iv.Start, iv.End, *iv.Value})
	}

	assert.Equal(t, []entry{
		{0, 3, "a"},
		{5, 7, "b"},
		{9, 12, "c"},
	}, got, "intervals come back sorted regardless of insertion order")
}

func TestZeroMap(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, int]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Get(0).Value)
	for range m.Intervals() {
		t.Fatal("iterating an empty map must not yield")
	}
}
