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

// Package interval provides an interval map keyed by half-open intervals.
package interval

import (
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map is an interval map, which maps half-open intervals [Start, End) with
// endpoints in K to values of type V.
//
// Inserted intervals must not overlap; lookups on an overlapping map are
// unspecified.
//
// A zero value is ready to use.
type Map[K constraints.Ordered, V any] struct {
	// Keys in this map are the (exclusive) ends of intervals in the map.
	tree btree.Map[K, entry[K, V]]
}

type entry[K constraints.Ordered, V any] struct {
	start K
	value V
}

// Interval is an entry returned by [Map.Get] and [Map.Intervals].
type Interval[K constraints.Ordered, V any] struct {
	// The range for this interval: Start inclusive, End exclusive.
	Start, End K

	// The value associated with it; nil for the zero Interval.
	Value *V
}

// Insert adds the interval [start, end) with the given value.
//
// Empty intervals (start >= end) are discarded.
func (m *Map[K, V]) Insert(start, end K, value V) {
	if start >= end {
		return
	}
	m.tree.Set(end, entry[K, V]{start: start, value: value})
}

// Get looks up the interval which contains key, if one exists.
//
// If no such interval exists, the Value of the returned [Interval] will be
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	iter := m.tree.Iter()

	// Seek to the first interval whose end is strictly greater than key;
	// ends are exclusive, so an interval ending exactly at key does not
	// contain it.
	found := iter.Seek(key)
	if found && iter.Key() == key {
		found = iter.Next()
	}

	if !found || key < iter.Value().start {
		// Check that the interval actually contains key. It is implicit
		// already that key < end.
		return Interval[K, V]{}
	}

	value := iter.Value()
	return Interval[K, V]{
		Start: value.start,
		End:   iter.Key(),
		Value: &value.value,
	}
}

// Intervals returns an iterator over the intervals in this map, in
// ascending order.
func (m *Map[K, V]) Intervals() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			value := iter.Value()
			if !yield(Interval[K, V]{
				Start: value.start,
				End:   iter.Key(),
				Value: &value.value,
			}) {
				return
			}
		}
	}
}

// Len returns the number of intervals in this map.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}
