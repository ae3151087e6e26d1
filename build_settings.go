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

	"github.com/timniederhausen/gn/pathtools"
)

// An OutputFile is a path relative to the build directory ("obj/foo/x.o").
// Build lines reference outputs by these paths verbatim.
type OutputFile string

// Dir returns the directory part without a trailing slash, or ".".
func (f OutputFile) Dir() string {
	s := string(f)
	slash := strings.LastIndexByte(s, '/')
	if slash < 0 {
		return "."
	}
	return s[:slash]
}

// BuildSettings holds the per-build paths every writer needs.
type BuildSettings struct {
	// BuildDir is the source-absolute build directory ("//out/Debug/").
	BuildDir SourceDir

	// RootPath is the absolute filesystem path of the source root, used
	// where emitted files need absolute paths (rust-project.json).
	RootPath string
}

// RebaseSourceFile returns f's path relative to the build directory.
func (s *BuildSettings) RebaseSourceFile(f SourceFile) string {
	return pathtools.Rebase(string(f), string(s.BuildDir))
}

// RebaseSourceDir returns d relative to the build directory, without a
// trailing slash.
func (s *BuildSettings) RebaseSourceDir(d SourceDir) string {
	return pathtools.RebaseDir(string(d), string(s.BuildDir))
}

// RootOutDir is the root output directory seen from the build directory.
func (s *BuildSettings) RootOutDir() string {
	return "."
}

// TargetObjDir returns the object-file directory for a target, relative
// to the build directory and without a trailing slash ("obj/foo").
func (s *BuildSettings) TargetObjDir(t *Target) string {
	dir := strings.TrimPrefix(string(t.Label.Dir), "//")
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return "obj"
	}
	return "obj/" + dir
}

// SourceFileOutput maps a source file to its build-dir-relative path for
// use on a build line.
func (s *BuildSettings) SourceFileOutput(f SourceFile) OutputFile {
	return OutputFile(s.RebaseSourceFile(f))
}

// AbsSourcePath returns the absolute filesystem path of a
// source-absolute path.
func (s *BuildSettings) AbsSourcePath(path string) string {
	trimmed := strings.TrimPrefix(path, "//")
	root := strings.TrimSuffix(s.RootPath, "/")
	if root == "" {
		return "/" + trimmed
	}
	return root + "/" + trimmed
}

// AbsBuildDir returns the absolute filesystem path of the build
// directory, with a trailing slash.
func (s *BuildSettings) AbsBuildDir() string {
	p := s.AbsSourcePath(string(s.BuildDir))
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
