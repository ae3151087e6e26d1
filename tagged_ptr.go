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

package gn

import (
	"fmt"
	"unsafe"
)

// A TaggedPtr packs a *T and a small integer tag into one word, using the
// low bits a *T leaves free through alignment. The tagged word still
// points into T's allocation, so the garbage collector keeps the target
// alive.
//
// The graph resolver stores millions of (target, flag) pairs; halving
// their size keeps the hot lists cache-resident.
type TaggedPtr[T any] struct {
	v unsafe.Pointer
}

func tagMask[T any]() uintptr {
	return unsafe.Alignof(*new(T)) - 1
}

// MakeTaggedPtr packs ptr and tag. It panics if tag does not fit in the
// alignment bits of T; that is a programming error, not an input error.
func MakeTaggedPtr[T any](ptr *T, tag uintptr) TaggedPtr[T] {
	mask := tagMask[T]()
	if tag > mask {
		panic(fmt.Sprintf("tag %d does not fit in %d alignment bits", tag, mask))
	}
	return TaggedPtr[T]{unsafe.Add(unsafe.Pointer(ptr), int(tag))}
}

// Ptr returns the pointer with the tag bits cleared.
func (t TaggedPtr[T]) Ptr() *T {
	return (*T)(unsafe.Pointer(uintptr(t.v) &^ tagMask[T]()))
}

// Tag returns the tag bits.
func (t TaggedPtr[T]) Tag() uintptr {
	return uintptr(t.v) & tagMask[T]()
}

// WithTag returns a copy with the tag bits replaced.
func (t TaggedPtr[T]) WithTag(tag uintptr) TaggedPtr[T] {
	return MakeTaggedPtr(t.Ptr(), tag)
}
