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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListBasics(t *testing.T) {
	l := Of(3, 1, 4, 1, 5)
	require.Equal(t, 5, l.Len())
	require.False(t, l.Empty())
	require.Equal(t, 3, l.At(0))
	require.Equal(t, 5, l.At(4))
	require.Equal(t, []int{3, 1, 4, 1, 5}, l.Slice())

	var empty List[int]
	require.True(t, empty.Empty())
	require.Equal(t, 0, empty.Len())
	require.Nil(t, empty.Slice())
}

func TestListIsACopy(t *testing.T) {
	src := []string{"a", "b"}
	l := FromSlice(src)
	src[0] = "mutated"
	require.Equal(t, "a", l.At(0))
}

func TestListFindContains(t *testing.T) {
	l := Of("a", "b", "c")
	require.Equal(t, 1, Index(l, "b"))
	require.Equal(t, -1, Index(l, "z"))
	require.True(t, Contains(l, "c"))
	require.False(t, Contains(l, "z"))
}

func TestListEqual(t *testing.T) {
	require.True(t, Equal(Of(1, 2), Of(1, 2)))
	require.False(t, Equal(Of(1, 2), Of(2, 1)))
	require.False(t, Equal(Of(1), Of(1, 2)))
	require.True(t, Equal(List[int]{}, List[int]{}))
}
