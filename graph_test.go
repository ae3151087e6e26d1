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

const testGraphJSON = `{
  "build_dir": "//out/Debug/",
  "root_path": "/root",
  "targets": [
    {
      "label": "//bar:mylib",
      "type": "rust_library",
      "sources": ["//bar/lib.rs"],
      "crate_name": "mylib",
      "crate_root": "//bar/lib.rs",
      "edition": "2018"
    },
    {
      "label": "//foo:bar",
      "type": "executable",
      "sources": ["//foo/main.rs"],
      "crate_name": "foo_bar",
      "crate_root": "//foo/main.rs",
      "edition": "2018",
      "private_deps": ["//bar:mylib"],
      "aliased_deps": {"//bar:mylib": "renamed"},
      "libs": ["z"],
      "metadata": {"files": ["a.txt"]}
    }
  ]
}`

func TestLoadGraph(t *testing.T) {
	graph, settings, err := LoadGraph(strings.NewReader(testGraphJSON))
	require.NoError(t, err)
	require.Equal(t, SourceDir("//out/Debug/"), settings.BuildDir)
	require.Equal(t, "/root", settings.RootPath)
	require.Len(t, graph.Targets, 2)

	rlib := graph.Targets[0]
	require.Equal(t, OutputRustLibrary, rlib.Type)
	require.True(t, rlib.KindsUsed.RustSourceUsed())
	require.NotNil(t, rlib.Toolchain)
	require.Equal(t, "mylib", rlib.Rust.CrateName)

	exe := graph.Targets[1]
	require.Equal(t, []*Target{rlib}, exe.PrivateDeps)
	require.Equal(t, "renamed", exe.Rust.AliasedDeps[rlib.Label])
	require.Equal(t, []LibFile{"z"}, exe.OwnValues.Libs)
	require.Equal(t, []Value{"a.txt"}, exe.Metadata.Contents["files"])
	require.Equal(t, SourceDir("//foo/"), exe.Metadata.SourceDir)

	found, rerr := graph.ResolveTargetFromString("//foo:bar")
	require.Nil(t, rerr)
	require.Same(t, exe, found)

	_, rerr = graph.ResolveTargetFromString("//nope:missing")
	require.NotNil(t, rerr)
}

func TestLoadGraphErrors(t *testing.T) {
	// Unknown dep.
	_, _, err := LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:a", "type": "group", "public_deps": ["//foo:missing"]}
	  ]
	}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown dep")

	// Unknown output type.
	_, _, err = LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [{"label": "//foo:a", "type": "sorcery"}]
	}`))
	require.Error(t, err)

	// Duplicate labels.
	_, _, err = LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:a", "type": "group"},
	    {"label": "//foo:a", "type": "group"}
	  ]
	}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate target")

	// Missing build_dir.
	_, _, err = LoadGraph(strings.NewReader(`{"targets": []}`))
	require.Error(t, err)
}

func TestLoadGraphGeneratedFileValidation(t *testing.T) {
	// Both contents and a single output are required fields.
	_, _, err := LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:gen", "type": "generated_file",
	     "outputs": ["gen/foo.json"]}
	  ]
	}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "contents")

	_, _, err = LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:gen", "type": "generated_file", "contents": "x"}
	  ]
	}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "outputs")

	graph, _, err := LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:gen", "type": "generated_file", "contents": "x",
	     "outputs": ["gen/foo.json"]}
	  ]
	}`))
	require.NoError(t, err)
	require.True(t, graph.Targets[0].ContentsSet)
	require.Equal(t, []OutputFile{"gen/foo.json"}, graph.Targets[0].Outputs)
}

func TestLoadGraphCompleteStaticLibInvariant(t *testing.T) {
	_, _, err := LoadGraph(strings.NewReader(`{
	  "build_dir": "//out/",
	  "targets": [
	    {"label": "//foo:a", "type": "executable", "complete_static_lib": true}
	  ]
	}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "complete_static_lib")
}
