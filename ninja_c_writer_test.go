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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func renderCTarget(t *testing.T, target *Target) string {
	t.Helper()
	var sb strings.Builder
	out := newNinjaWriter(&sb)
	w := NewNinjaCBinaryTargetWriter(target, testBuildSettings(),
		NewResolvedTargetData(), out)
	w.Run()
	require.NoError(t, out.Err())
	return sb.String()
}

func requireCRendered(t *testing.T, target *Target, expected string) {
	t.Helper()
	got := renderCTarget(t, target)
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("rendered rules mismatch (-want +got):\n%s", diff)
	}
}

func TestCSourceSet(t *testing.T) {
	tc := testToolchain(t)

	target := testTarget(t, tc, "//foo:ss", OutputSourceSet)
	addSource(target, "//foo/one.cc")
	addSource(target, "//foo/two.cc")

	requireCRendered(t, target, ""+
		"root_out_dir = .\n"+
		"target_out_dir = obj/foo\n"+
		"target_output_name = ss\n"+
		"\n"+
		"build obj/foo/ss.one.o: cxx ../../foo/one.cc\n"+
		"build obj/foo/ss.two.o: cxx ../../foo/two.cc\n"+
		"build obj/foo/ss.stamp: stamp obj/foo/ss.one.o obj/foo/ss.two.o\n")
}

func TestCExecutable(t *testing.T) {
	tc := testToolchain(t)

	staticLib := testTarget(t, tc, "//foo:static", OutputStaticLibrary)
	addSource(staticLib, "//foo/static.cc")
	staticLib.OwnValues.Libs = append(staticLib.OwnValues.Libs, "z")
	staticLib.OwnValues.LibDirs = append(staticLib.OwnValues.LibDirs,
		"//third_party/lib/")

	sourceSet := testTarget(t, tc, "//foo:ss", OutputSourceSet)
	addSource(sourceSet, "//foo/ss.cc")

	target := testTarget(t, tc, "//foo:app", OutputExecutable)
	addSource(target, "//foo/app.cc")
	addSource(target, "//foo/app.h")
	target.PrivateDeps = append(target.PrivateDeps, staticLib, sourceSet)

	// Headers compile nothing; the source set's files are folded into
	// the link as inputs, the static library is an implicit dep with its
	// libs carried as flags.
	requireCRendered(t, target, ""+
		"root_out_dir = .\n"+
		"target_out_dir = obj/foo\n"+
		"target_output_name = app\n"+
		"\n"+
		"build obj/foo/app.app.o: cxx ../../foo/app.cc\n"+
		"build ./app: link obj/foo/app.app.o ../../foo/ss.cc | "+
		"obj/foo/libstatic.a || obj/foo/ss.stamp\n"+
		"  lib_dirs = -L../../third_party/lib\n"+
		"  libs = -lz\n")
}

func TestCStaticLibDoesNotCarryLinkFlags(t *testing.T) {
	tc := testToolchain(t)

	dep := testTarget(t, tc, "//foo:dep", OutputStaticLibrary)
	dep.OwnValues.Libs = append(dep.OwnValues.Libs, "m")

	target := testTarget(t, tc, "//foo:lib", OutputStaticLibrary)
	addSource(target, "//foo/lib.cc")
	target.PrivateDeps = append(target.PrivateDeps, dep)

	text := renderCTarget(t, target)
	// The intermediate archive forwards its dep instead of linking it.
	require.Contains(t, text, "build obj/foo/liblib.a: alink obj/foo/lib.lib.o")
	require.NotContains(t, text, "libs =")
}

func TestCFrameworks(t *testing.T) {
	tc := testToolchain(t)

	target := testTarget(t, tc, "//foo:app", OutputExecutable)
	addSource(target, "//foo/app.cc")
	target.OwnValues.Frameworks = append(target.OwnValues.Frameworks,
		"Foundation.framework")
	target.OwnValues.WeakFrameworks = append(target.OwnValues.WeakFrameworks,
		"AppKit.framework")
	target.OwnValues.FrameworkDirs = append(target.OwnValues.FrameworkDirs,
		"//sdk/frameworks/")

	text := renderCTarget(t, target)
	require.Contains(t, text, "  framework_dirs = -F../../sdk/frameworks\n")
	require.Contains(t, text,
		"  frameworks = -framework Foundation -weak_framework AppKit\n")
}
