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

// A Label names a target or toolchain. It is always absolute: the
// directory is source-absolute and the name part is non-empty. Labels are
// plain comparable values so they can key maps directly.
type Label struct {
	Dir  SourceDir
	Name string

	ToolchainDir  SourceDir
	ToolchainName string
}

// MakeLabel builds a label with an empty toolchain.
func MakeLabel(dir SourceDir, name string) Label {
	return Label{Dir: dir, Name: name}
}

// IsNull reports whether the label is unset.
func (l Label) IsNull() bool {
	return l.Dir == ""
}

// ToolchainLabel returns the label's toolchain as its own label.
func (l Label) ToolchainLabel() Label {
	return Label{Dir: l.ToolchainDir, Name: l.ToolchainName}
}

// UserVisibleName formats the label the way users write it:
// "//chrome/renderer:renderer" with an optional "(//toolchain:name)"
// suffix.
func (l Label) UserVisibleName(includeToolchain bool) string {
	var sb strings.Builder
	sb.WriteString(string(l.Dir))
	// Directories carry a trailing slash that the user-visible form drops.
	if s := sb.String(); strings.HasSuffix(s, "/") && len(s) > 2 {
		sb.Reset()
		sb.WriteString(s[:len(s)-1])
	}
	sb.WriteString(":")
	sb.WriteString(l.Name)
	if includeToolchain && l.ToolchainDir != "" {
		sb.WriteString("(")
		tc := l.ToolchainLabel()
		sb.WriteString(tc.UserVisibleName(false))
		sb.WriteString(")")
	}
	return sb.String()
}

// Compare gives the total order over labels: by directory, then name,
// then toolchain directory, then toolchain name.
func (l Label) Compare(other Label) int {
	if c := strings.Compare(string(l.Dir), string(other.Dir)); c != 0 {
		return c
	}
	if c := strings.Compare(l.Name, other.Name); c != 0 {
		return c
	}
	if c := strings.Compare(string(l.ToolchainDir), string(other.ToolchainDir)); c != 0 {
		return c
	}
	return strings.Compare(l.ToolchainName, other.ToolchainName)
}

// ParseLabel resolves a label string like "//foo:bar" or "//foo"
// (shorthand for "//foo:foo") relative to currentDir. Plain names
// ("bar" or ":bar") resolve inside currentDir.
func ParseLabel(s string, currentDir SourceDir) (Label, *Err) {
	if s == "" {
		return Label{}, errAt(Location{}, "empty label")
	}
	dir := string(currentDir)
	name := ""

	rest := s
	if strings.HasPrefix(s, "//") {
		slash := strings.LastIndexByte(s, '/')
		dir = s[:slash+1]
		rest = s[slash+1:]
	}
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		if strings.HasPrefix(s, "//") {
			dir = dir + rest[:colon]
			if !strings.HasSuffix(dir, "/") {
				dir += "/"
			}
		}
		name = rest[colon+1:]
	} else {
		if strings.HasPrefix(s, "//") {
			dir = dir + rest
			if !strings.HasSuffix(dir, "/") {
				dir += "/"
			}
			name = rest
		} else {
			name = rest
		}
	}
	if name == "" {
		return Label{}, errAt(Location{}, "label %q has an empty name part", s)
	}
	return Label{Dir: SourceDir(dir), Name: name}, nil
}
