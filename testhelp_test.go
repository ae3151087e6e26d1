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

func testBuildSettings() *BuildSettings {
	return &BuildSettings{
		BuildDir: "//out/Debug/",
		RootPath: "/root",
	}
}

func testToolchain(t *testing.T) *Toolchain {
	t.Helper()
	tc, err := NewDefaultToolchain()
	require.NoError(t, err)
	return tc
}

// testTarget builds a target from a "//dir:name" label the way the
// front-end would.
func testTarget(t *testing.T, tc *Toolchain, label string, typ OutputType) *Target {
	t.Helper()
	parsed, err := ParseLabel(label, "//")
	require.Nil(t, err)
	target := NewTarget(parsed, typ)
	target.Toolchain = tc
	target.Metadata.SourceDir = parsed.Dir
	return target
}

func addSource(target *Target, path string) {
	f := SourceFile(path)
	target.Sources = append(target.Sources, f)
	target.KindsUsed.Set(f.Kind())
}

func setRust(target *Target, crateName, crateRoot, edition string) {
	target.Rust = &RustValues{
		CrateName: crateName,
		CrateRoot: SourceFile(crateRoot),
		Edition:   edition,
	}
}

// renderRustTarget runs the Rust writer over target with a fresh
// resolver and returns the emitted text.
func renderRustTarget(t *testing.T, target *Target) string {
	t.Helper()
	var sb strings.Builder
	out := newNinjaWriter(&sb)
	w := NewNinjaRustBinaryTargetWriter(target, testBuildSettings(),
		NewResolvedTargetData(), out)
	w.Run()
	require.NoError(t, out.Err())
	return sb.String()
}
