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
	"fmt"
	"strings"
)

// A Location identifies a position in an input file, for error reporting.
// The zero Location means "no location available".
type Location struct {
	File   string
	Line   int
	Column int
}

// IsNull reports whether the location is unset.
func (l Location) IsNull() bool {
	return l == Location{}
}

func (l Location) String() string {
	if l.IsNull() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// An Err is a structured error carrying the offending source location, a
// one-line message, and an optional multi-line help text. Errors are
// values returned up the call stack; nothing in this package panics on
// malformed input.
type Err struct {
	Loc  Location
	Msg  string
	Help string
}

func errAt(loc Location, format string, args ...any) *Err {
	return &Err{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

func (e *Err) withHelp(help string) *Err {
	e.Help = help
	return e
}

// Error implements the error interface.
func (e *Err) Error() string {
	var sb strings.Builder
	if !e.Loc.IsNull() {
		sb.WriteString(e.Loc.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if e.Help != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Help)
	}
	return sb.String()
}
