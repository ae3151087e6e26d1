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

import "strings"

// A SourceFile is a source-absolute file path ("//dir/file.cc").
type SourceFile string

// A SourceDir is a source-absolute directory path with a trailing slash
// ("//dir/").
type SourceDir string

// A LibFile is either a library name ("z") passed to the linker's -l
// switch or a path to a library file.
type LibFile string

// SourceKind classifies a source file by what tool consumes it.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceCpp
	SourceH
	SourceC
	SourceM
	SourceMM
	SourceRc
	SourceS
	SourceO
	SourceDef
	SourceRs
	SourceGo
	SourceSwift

	sourceNumKinds
)

// KindOfSource maps a path's final extension to its kind. Matching is
// case-sensitive (assembler sources distinguish ".S" from ".s", which are
// both assembly here).
func KindOfSource(path string) SourceKind {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 || dot < strings.LastIndexByte(path, '/') {
		return SourceUnknown
	}
	switch path[dot+1:] {
	case "cc", "cpp", "cxx":
		return SourceCpp
	case "h", "hpp", "hxx", "hh", "inc", "ipp", "inl":
		return SourceH
	case "c":
		return SourceC
	case "m":
		return SourceM
	case "mm":
		return SourceMM
	case "rc":
		return SourceRc
	case "S", "s", "asm":
		return SourceS
	case "o", "obj":
		return SourceO
	case "def":
		return SourceDef
	case "rs":
		return SourceRs
	case "go":
		return SourceGo
	case "swift":
		return SourceSwift
	}
	return SourceUnknown
}

// Kind classifies the file by its extension.
func (f SourceFile) Kind() SourceKind {
	return KindOfSource(string(f))
}

// Name returns the file part of the path.
func (f SourceFile) Name() string {
	s := string(f)
	return s[strings.LastIndexByte(s, '/')+1:]
}

// Dir returns the directory part of the path, with a trailing slash.
func (f SourceFile) Dir() SourceDir {
	s := string(f)
	return SourceDir(s[:strings.LastIndexByte(s, '/')+1])
}

// A SourceKindSet records which source kinds a target uses, as a bitset.
// An empty set is treated as "C-family" so that targets with no sources
// (groups, stamps) flow through the default writer.
type SourceKindSet struct {
	bits uint16
	any  bool
}

// Set marks k as used.
func (s *SourceKindSet) Set(k SourceKind) {
	s.bits |= 1 << uint(k)
	s.any = true
}

// Get reports whether k is used.
func (s *SourceKindSet) Get(k SourceKind) bool {
	return s.bits&(1<<uint(k)) != 0
}

// CSourceUsed reports whether any C-family source kind is used, or the
// set is empty.
func (s *SourceKindSet) CSourceUsed() bool {
	return !s.any || s.Get(SourceCpp) || s.Get(SourceH) || s.Get(SourceC) ||
		s.Get(SourceM) || s.Get(SourceMM) || s.Get(SourceRc) ||
		s.Get(SourceS) || s.Get(SourceO) || s.Get(SourceDef)
}

// RustSourceUsed reports whether the target has Rust sources.
func (s *SourceKindSet) RustSourceUsed() bool {
	return s.Get(SourceRs)
}

// GoSourceUsed reports whether the target has Go sources.
func (s *SourceKindSet) GoSourceUsed() bool {
	return s.Get(SourceGo)
}

// SwiftSourceUsed reports whether the target has Swift sources.
func (s *SourceKindSet) SwiftSourceUsed() bool {
	return s.Get(SourceSwift)
}
