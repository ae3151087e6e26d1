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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNinjaWriterAssign(t *testing.T) {
	var sb strings.Builder
	n := newNinjaWriter(&sb)

	n.Assign("crate_name", "foo_bar")
	n.Assign("output_dir", "")
	n.AssignList("rustflags", nil)
	n.AssignList("rustenv", []string{"A=1", "B=2"})
	n.ScopedAssign("edition", "2018")
	n.ScopedAssignList("externs", []string{"--extern a=b"})
	require.NoError(t, n.Err())

	// The value-bearing assignment keeps its trailing space when the
	// value is empty; the list form does not.
	require.Equal(t, ""+
		"crate_name = foo_bar\n"+
		"output_dir = \n"+
		"rustflags =\n"+
		"rustenv = A=1 B=2\n"+
		"  edition = 2018\n"+
		"  externs = --extern a=b\n",
		sb.String())
}

func TestNinjaWriterBuild(t *testing.T) {
	var sb strings.Builder
	n := newNinjaWriter(&sb)

	n.Build([]string{"out1", "out2"}, "rustc", []string{"main.rs"},
		[]string{"dep1", "dep2"}, []string{"order1"})
	n.Build([]string{"stamp"}, "stamp", []string{"a", "b"}, nil, nil)
	n.BlankLine()
	require.NoError(t, n.Err())

	require.Equal(t, ""+
		"build out1 out2: rustc main.rs | dep1 dep2 || order1\n"+
		"build stamp: stamp a b\n"+
		"\n",
		sb.String())
}
