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

func TestUniqueListFirstOccurrenceOrder(t *testing.T) {
	var u UniqueList[string]
	u.AppendAll([]string{"c", "a", "c", "b", "a", "c"})

	require.Equal(t, []string{"c", "a", "b"}, u.Slice())
}

func TestUniqueListAppendWithIndex(t *testing.T) {
	var u UniqueList[int]

	fresh, pos := u.Append(10)
	require.True(t, fresh)
	require.Equal(t, 0, pos)

	fresh, pos = u.Append(20)
	require.True(t, fresh)
	require.Equal(t, 1, pos)

	// Duplicate appends report the original position and do not reorder.
	fresh, pos = u.Append(10)
	require.False(t, fresh)
	require.Equal(t, 0, pos)
	require.Equal(t, []int{10, 20}, u.Slice())
}

func TestUniqueListMembership(t *testing.T) {
	var u UniqueList[string]
	u.Append("x")
	u.Append("y")

	require.True(t, u.Contains("x"))
	require.False(t, u.Contains("z"))
	require.Equal(t, 1, u.IndexOf("y"))
	require.Equal(t, -1, u.IndexOf("z"))
	require.Equal(t, "x", u.At(0))
	require.Equal(t, 2, u.Len())
}

func TestUniqueListRelease(t *testing.T) {
	var u UniqueList[int]
	u.AppendAll([]int{5, 3, 5, 1})

	released := u.Release()
	require.Equal(t, []int{5, 3, 1}, released)

	// The list is reset and reusable.
	require.Equal(t, 0, u.Len())
	u.Append(7)
	require.Equal(t, []int{7}, u.Slice())
}

func TestUniqueListAppendList(t *testing.T) {
	var u UniqueList[int]
	u.Append(2)
	u.AppendList(Of(1, 2, 3))
	require.Equal(t, []int{2, 1, 3}, u.Slice())

	l := u.ReleaseList()
	require.Equal(t, []int{2, 1, 3}, l.Slice())
	require.Equal(t, 0, u.Len())
}
