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

import "testing"

func TestKindOfSource(t *testing.T) {
	cases := []struct {
		path string
		want SourceKind
	}{
		{"//foo/bar.cc", SourceCpp},
		{"//foo/bar.cpp", SourceCpp},
		{"//foo/bar.cxx", SourceCpp},
		{"//foo/bar.h", SourceH},
		{"//foo/bar.hpp", SourceH},
		{"//foo/bar.inc", SourceH},
		{"//foo/bar.c", SourceC},
		{"//foo/bar.m", SourceM},
		{"//foo/bar.mm", SourceMM},
		{"//foo/bar.rc", SourceRc},
		{"//foo/bar.S", SourceS},
		{"//foo/bar.s", SourceS},
		{"//foo/bar.asm", SourceS},
		{"//foo/bar.o", SourceO},
		{"//foo/bar.obj", SourceO},
		{"//foo/bar.def", SourceDef},
		{"//foo/bar.rs", SourceRs},
		{"//foo/bar.go", SourceGo},
		{"//foo/bar.swift", SourceSwift},
		{"//foo/bar.txt", SourceUnknown},
		{"//foo/bar", SourceUnknown},
		// Classification is by the final extension only, and the dot
		// must be in the file part.
		{"//foo.cc/bar", SourceUnknown},
		{"//foo/bar.CC", SourceUnknown},
	}
	for _, c := range cases {
		if got := KindOfSource(c.path); got != c.want {
			t.Errorf("KindOfSource(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestSourceFileParts(t *testing.T) {
	f := SourceFile("//foo/bar/baz.rs")
	if got := f.Name(); got != "baz.rs" {
		t.Errorf("Name() = %q", got)
	}
	if got := f.Dir(); got != "//foo/bar/" {
		t.Errorf("Dir() = %q", got)
	}
}

func TestSourceKindSet(t *testing.T) {
	var s SourceKindSet

	// An empty set counts as C-family so sourceless targets use the
	// default writer.
	if !s.CSourceUsed() {
		t.Error("empty set should report C sources used")
	}
	if s.RustSourceUsed() {
		t.Error("empty set should not report Rust")
	}

	s.Set(SourceRs)
	if !s.RustSourceUsed() {
		t.Error("Rust kind not recorded")
	}
	if s.CSourceUsed() {
		t.Error("Rust-only set should not report C sources")
	}

	s.Set(SourceCpp)
	if !s.CSourceUsed() || !s.RustSourceUsed() {
		t.Error("mixed set should report both")
	}

	var goSet SourceKindSet
	goSet.Set(SourceGo)
	if !goSet.GoSourceUsed() {
		t.Error("Go kind not recorded")
	}

	var swiftSet SourceKindSet
	swiftSet.Set(SourceSwift)
	if !swiftSet.SwiftSourceUsed() {
		t.Error("Swift kind not recorded")
	}
}
