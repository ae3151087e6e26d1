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

// ninjaEscaper escapes characters that are meaningful to ninja inside
// variable values ($).
var ninjaEscaper = strings.NewReplacer(
	"$", "$$")

// ninjaCommandEscaper additionally escapes spaces and colons, which
// delimit paths on ninja build lines.
var ninjaCommandEscaper = strings.NewReplacer(
	"$", "$$",
	" ", "$ ",
	":", "$:")

// NinjaEscape escapes s for use in a ninja variable value.
func NinjaEscape(s string) string {
	return ninjaEscaper.Replace(s)
}

// NinjaCommandEscape escapes s for use on a ninja build line, where
// spaces and colons separate paths.
func NinjaCommandEscape(s string) string {
	return ninjaCommandEscaper.Replace(s)
}

// NinjaEscapeList escapes every string of slice, returning a new slice.
func NinjaEscapeList(slice []string) []string {
	slice = append([]string(nil), slice...)
	for i, s := range slice {
		slice[i] = NinjaEscape(s)
	}
	return slice
}
