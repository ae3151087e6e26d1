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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaggedPtr(t *testing.T) {
	target := &Target{}

	for tag := uintptr(0); tag < 2; tag++ {
		p := MakeTaggedPtr(target, tag)
		require.Same(t, target, p.Ptr())
		require.Equal(t, tag, p.Tag())
	}
}

func TestTaggedPtrWithTag(t *testing.T) {
	target := &Target{}
	p := MakeTaggedPtr(target, 0)

	p2 := p.WithTag(1)
	require.Same(t, target, p2.Ptr())
	require.Equal(t, uintptr(1), p2.Tag())

	// The original is unchanged.
	require.Equal(t, uintptr(0), p.Tag())
}

func TestTaggedPtrEquality(t *testing.T) {
	a := &Target{}
	b := &Target{}

	require.Equal(t, MakeTaggedPtr(a, 1), MakeTaggedPtr(a, 1))
	require.NotEqual(t, MakeTaggedPtr(a, 0), MakeTaggedPtr(a, 1))
	require.NotEqual(t, MakeTaggedPtr(a, 0), MakeTaggedPtr(b, 0))
}

func TestTaggedPtrRejectsOversizedTag(t *testing.T) {
	target := &Target{}
	require.Panics(t, func() {
		MakeTaggedPtr(target, 1<<16)
	})
}
