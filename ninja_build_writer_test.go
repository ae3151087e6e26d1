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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func buildWriterGraph(t *testing.T) *Graph {
	t.Helper()
	tc := testToolchain(t)

	rlib := testTarget(t, tc, "//bar:mylib", OutputRustLibrary)
	addSource(rlib, "//bar/lib.rs")
	setRust(rlib, "mylib", "//bar/lib.rs", "2018")

	group := testTarget(t, tc, "//baz:group", OutputGroup)
	group.PublicDeps = append(group.PublicDeps, rlib)

	exe := testTarget(t, tc, "//foo:bar", OutputExecutable)
	addSource(exe, "//foo/main.rs")
	setRust(exe, "foo_bar", "//foo/main.rs", "2018")
	exe.PrivateDeps = append(exe.PrivateDeps, group)

	graph := NewGraph()
	// Insertion order deliberately differs from label order; the output
	// must not care.
	require.NoError(t, graph.Add(exe))
	require.NoError(t, graph.Add(group))
	require.NoError(t, graph.Add(rlib))
	return graph
}

func TestGroupTargetWriter(t *testing.T) {
	tc := testToolchain(t)

	rlib := testTarget(t, tc, "//bar:mylib", OutputRustLibrary)
	addSource(rlib, "//bar/lib.rs")
	setRust(rlib, "mylib", "//bar/lib.rs", "2018")

	data := testTarget(t, tc, "//bar:data", OutputCopyFiles)

	group := testTarget(t, tc, "//baz:group", OutputGroup)
	group.PublicDeps = append(group.PublicDeps, rlib)
	group.DataDeps = append(group.DataDeps, data)

	text, err := RenderTargetRules(group, testBuildSettings(), NewResolvedTargetData())
	require.NoError(t, err)
	require.Equal(t,
		"build obj/baz/group.stamp: stamp obj/bar/libmylib.rlib || obj/bar/data.stamp\n",
		text)
}

func TestRenderTargetRulesUnknownType(t *testing.T) {
	tc := testToolchain(t)
	target := testTarget(t, tc, "//foo:odd", OutputUnknown)
	_, err := RenderTargetRules(target, testBuildSettings(), NewResolvedTargetData())
	require.Error(t, err)

	noToolchain := testTarget(t, nil, "//foo:naked", OutputGroup)
	_, err = RenderTargetRules(noToolchain, testBuildSettings(), NewResolvedTargetData())
	require.Error(t, err)
}

func TestRenderBuildFilesDeterministic(t *testing.T) {
	settings := testBuildSettings()

	outDir1 := t.TempDir()
	require.NoError(t, RenderBuildFiles(buildWriterGraph(t), settings, outDir1, 4))
	first, err := os.ReadFile(filepath.Join(outDir1, "toolchain.ninja"))
	require.NoError(t, err)

	// A second graph built the same way renders identical bytes, with
	// any worker count.
	outDir2 := t.TempDir()
	require.NoError(t, RenderBuildFiles(buildWriterGraph(t), settings, outDir2, 1))
	second, err := os.ReadFile(filepath.Join(outDir2, "toolchain.ninja"))
	require.NoError(t, err)

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}

	// Targets appear in stable label order regardless of insertion
	// order.
	text := string(first)
	require.Contains(t, text, "# //bar:mylib\n")
	require.Less(t, indexOf(t, text, "# //bar:mylib"), indexOf(t, text, "# //baz:group"))
	require.Less(t, indexOf(t, text, "# //baz:group"), indexOf(t, text, "# //foo:bar"))

	root, err := os.ReadFile(filepath.Join(outDir1, "build.ninja"))
	require.NoError(t, err)
	require.Contains(t, string(root), "subninja toolchain.ninja\n")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "missing %q", needle)
	return idx
}

func TestRenderBuildFilesIdempotent(t *testing.T) {
	settings := testBuildSettings()
	graph := buildWriterGraph(t)
	outDir := t.TempDir()

	require.NoError(t, RenderBuildFiles(graph, settings, outDir, 2))
	path := filepath.Join(outDir, "toolchain.ninja")
	info1, err := os.Stat(path)
	require.NoError(t, err)

	// An unchanged graph must not rewrite the file.
	require.NoError(t, RenderBuildFiles(graph, settings, outDir, 2))
	info2, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestRenderBuildFilesReportsFirstError(t *testing.T) {
	tc := testToolchain(t)
	bad := testTarget(t, tc, "//foo:bad", OutputUnknown)
	good := testTarget(t, tc, "//zzz:good", OutputGroup)

	graph := NewGraph()
	require.NoError(t, graph.Add(good))
	require.NoError(t, graph.Add(bad))

	err := RenderBuildFiles(graph, testBuildSettings(), t.TempDir(), 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "//foo:bad")
}
