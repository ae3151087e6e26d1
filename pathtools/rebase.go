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

package pathtools

import "strings"

// Paths handled here are "source-absolute": they begin with "//" and are
// relative to the source root, with directories carrying a trailing slash.
// Build files are written from the perspective of the build directory, so
// every source-absolute path must be rebased before emission.

// IsSourceAbsolute reports whether path is source-absolute.
func IsSourceAbsolute(path string) bool {
	return strings.HasPrefix(path, "//")
}

// Rebase rewrites the source-absolute path onto the source-absolute
// directory base (which must end in a slash), returning a relative path.
// Shared leading components are elided:
//
//	Rebase("//foo/main.rs", "//out/Debug/") == "../../foo/main.rs"
//	Rebase("//out/Debug/gen/a.h", "//out/Debug/") == "gen/a.h"
//
// A path that is not source-absolute is returned unchanged.
func Rebase(path, base string) string {
	if !IsSourceAbsolute(path) || !IsSourceAbsolute(base) {
		return path
	}
	p := strings.TrimPrefix(path, "//")
	b := strings.TrimPrefix(base, "//")

	// Strip components common to both.
	for {
		slash := strings.IndexByte(b, '/')
		if slash < 0 {
			break
		}
		component := b[:slash+1]
		if !strings.HasPrefix(p, component) {
			break
		}
		p = p[slash+1:]
		b = b[slash+1:]
	}

	var sb strings.Builder
	for _, c := range b {
		if c == '/' {
			sb.WriteString("../")
		}
	}
	sb.WriteString(p)
	if sb.Len() == 0 {
		return "."
	}
	return sb.String()
}

// RebaseDir is Rebase for directory paths: the result has no trailing
// slash, and rebasing a directory onto itself yields ".".
func RebaseDir(dir, base string) string {
	rebased := Rebase(dir, base)
	if rebased != "." {
		rebased = strings.TrimSuffix(rebased, "/")
	}
	if rebased == "" {
		return "."
	}
	return rebased
}
