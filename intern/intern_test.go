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

package intern

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyString(t *testing.T) {
	var zero Atom
	empty := Get("")

	require.Equal(t, "", zero.String())
	require.Equal(t, "", empty.String())
	require.True(t, zero.Empty())
	require.True(t, empty.Empty())
	require.Equal(t, zero, empty)
}

func TestIdentity(t *testing.T) {
	foo := Get("foo")
	require.Equal(t, "foo", foo.String())

	// Byte-equal content yields the identical handle, even when the
	// input string was built at runtime.
	foo2 := Get(string([]byte{'f', 'o', 'o'}))
	require.Equal(t, foo, foo2)
	require.True(t, foo == foo2)

	bar := Get("bar")
	require.NotEqual(t, foo, bar)
}

func TestDefaultCompare(t *testing.T) {
	foo := Get("foo")
	bar := Get("bar")
	zoo := Get("zoo")

	require.True(t, Less(bar, foo))
	require.True(t, Less(foo, zoo))
	require.True(t, Less(bar, zoo))
	require.Equal(t, 0, Compare(foo, Get("foo")))
}

func TestSortedByContent(t *testing.T) {
	atoms := []Atom{Get("zoo"), Get("foo"), Get("bar")}
	sort.Slice(atoms, func(i, j int) bool { return Less(atoms[i], atoms[j]) })

	require.Equal(t, "bar", atoms[0].String())
	require.Equal(t, "foo", atoms[1].String())
	require.Equal(t, "zoo", atoms[2].String())
}

func TestFastLessIsConsistent(t *testing.T) {
	// FastLess has no defined order across atoms, but it must be a
	// strict weak ordering consistent with identity within one process.
	a := Get("fast_a")
	b := Get("fast_b")

	require.False(t, FastLess(a, a))
	require.NotEqual(t, FastLess(a, b), FastLess(b, a))
	require.Equal(t, FastLess(a, b), FastLess(Get("fast_a"), Get("fast_b")))
}

func TestManyKeys(t *testing.T) {
	const count = 16384
	keys := make([]Atom, 0, count)
	for i := 0; i < count; i++ {
		keys = append(keys, Get(fmt.Sprintf("%d_key", i)))
	}
	for i := 0; i < count; i++ {
		require.Equal(t, fmt.Sprintf("%d_key", i), keys[i].String())
		require.Equal(t, keys[i], Get(fmt.Sprintf("%d_key", i)))
	}
}

func TestConcurrentIntern(t *testing.T) {
	const goroutines = 8
	const count = 500

	results := make([][]Atom, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			atoms := make([]Atom, 0, count)
			for i := 0; i < count; i++ {
				atoms = append(atoms, Get(fmt.Sprintf("concurrent_%d", i)))
			}
			results[g] = atoms
		}()
	}
	wg.Wait()

	// Every goroutine must have observed the same handle for the same
	// content.
	for g := 1; g < goroutines; g++ {
		for i := 0; i < count; i++ {
			require.Equal(t, results[0][i], results[g][i])
		}
	}
}
