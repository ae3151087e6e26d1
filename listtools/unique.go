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

package listtools

// A UniqueList is an ordered sequence of distinct values. Appending a
// value that is already present is a no-op that does not disturb the order
// of earlier entries. Membership checks are O(1) through a hash index
// maintained alongside the sequence.
//
// The zero value is an empty list ready for use.
type UniqueList[T comparable] struct {
	items []T
	index map[T]int
}

// Append inserts v unless it is already present. It returns whether the
// value was freshly inserted along with its position in the sequence.
func (u *UniqueList[T]) Append(v T) (fresh bool, pos int) {
	if i, ok := u.index[v]; ok {
		return false, i
	}
	if u.index == nil {
		u.index = make(map[T]int)
	}
	pos = len(u.items)
	u.items = append(u.items, v)
	u.index[v] = pos
	return true, pos
}

// AppendAll appends every value of s in order.
func (u *UniqueList[T]) AppendAll(s []T) {
	for _, v := range s {
		u.Append(v)
	}
}

// AppendList appends every value of l in order.
func (u *UniqueList[T]) AppendList(l List[T]) {
	u.AppendAll(l.Slice())
}

// Contains reports whether v has been appended.
func (u *UniqueList[T]) Contains(v T) bool {
	_, ok := u.index[v]
	return ok
}

// IndexOf returns the position of v, or -1 if absent.
func (u *UniqueList[T]) IndexOf(v T) int {
	if i, ok := u.index[v]; ok {
		return i
	}
	return -1
}

// Len returns the number of distinct values appended so far.
func (u *UniqueList[T]) Len() int { return len(u.items) }

// At returns the value at position i.
func (u *UniqueList[T]) At(i int) T { return u.items[i] }

// Slice returns the current sequence in insertion order. The returned
// slice must not be modified.
func (u *UniqueList[T]) Slice() []T { return u.items }

// Release consumes the list and returns the sequence in insertion order.
// The UniqueList is reset to empty.
func (u *UniqueList[T]) Release() []T {
	items := u.items
	u.items = nil
	u.index = nil
	return items
}

// ReleaseList is like Release but wraps the result in an immutable List
// without copying.
func (u *UniqueList[T]) ReleaseList() List[T] {
	return fromOwnedSlice(u.Release())
}
