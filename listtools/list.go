// Copyright 2022 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package listtools provides the compact sequence types used by the
// dependency resolver: an immutable fixed-size list and an
// insertion-ordered unique list with O(1) membership.
package listtools

// A List is an immutable sequence of T backed by a single exact-size
// allocation. Once constructed it is never modified, so a List may be
// shared freely between goroutines and returned from memoized computations
// without copying.
type List[T any] struct {
	items []T
}

// Of constructs a List from the given items.
func Of[T any](items ...T) List[T] {
	return FromSlice(items)
}

// FromSlice copies s into a new List. The caller keeps ownership of s.
func FromSlice[T any](s []T) List[T] {
	if len(s) == 0 {
		return List[T]{}
	}
	items := make([]T, len(s))
	copy(items, s)
	return List[T]{items}
}

// fromOwnedSlice wraps s without copying. Callers must give up ownership.
func fromOwnedSlice[T any](s []T) List[T] {
	return List[T]{s}
}

// Len returns the number of items.
func (l List[T]) Len() int { return len(l.items) }

// Empty reports whether the list has no items.
func (l List[T]) Empty() bool { return len(l.items) == 0 }

// At returns the item at index i.
func (l List[T]) At(i int) T { return l.items[i] }

// Slice returns the backing slice for iteration. The returned slice must
// not be modified.
func (l List[T]) Slice() []T { return l.items }

// Index returns the position of v in l, or -1.
func Index[T comparable](l List[T], v T) int {
	for i, item := range l.items {
		if item == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is an element of l.
func Contains[T comparable](l List[T], v T) bool {
	return Index(l, v) >= 0
}

// Equal reports whether two lists hold the same items in the same order.
func Equal[T comparable](a, b List[T]) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for i, item := range a.items {
		if item != b.items[i] {
			return false
		}
	}
	return true
}
