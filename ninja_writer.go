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

import "io"

// ninjaWriter emits the line-level ninja syntax. It threads a single
// error through all calls so rule-writing code can stay free of error
// plumbing; check Err once at the end.
//
// The output format is normative down to individual spaces: downstream
// comparisons are byte-for-byte, so no wrapping or prettying happens
// here. Lines always end in LF.
type ninjaWriter struct {
	w   io.StringWriter
	err error
}

func newNinjaWriter(w io.StringWriter) *ninjaWriter {
	return &ninjaWriter{w: w}
}

func (n *ninjaWriter) Err() error { return n.err }

func (n *ninjaWriter) writeString(s string) {
	if n.err != nil {
		return
	}
	_, n.err = n.w.WriteString(s)
}

// Assign writes "name = value" at file scope. The value may be empty, in
// which case the trailing space before the newline is preserved (the
// assignment syntax is "name = <value>").
func (n *ninjaWriter) Assign(name, value string) {
	n.writeString(name)
	n.writeString(" = ")
	n.writeString(value)
	n.writeString("\n")
}

// AssignList writes "name =" followed by one leading-space-separated
// item per element. An empty list yields "name =".
func (n *ninjaWriter) AssignList(name string, items []string) {
	n.writeString(name)
	n.writeString(" =")
	for _, item := range items {
		n.writeString(" ")
		n.writeString(item)
	}
	n.writeString("\n")
}

// ScopedAssign is Assign indented under the preceding build line.
func (n *ninjaWriter) ScopedAssign(name, value string) {
	n.writeString("  ")
	n.Assign(name, value)
}

// ScopedAssignList is AssignList indented under the preceding build line.
func (n *ninjaWriter) ScopedAssignList(name string, items []string) {
	n.writeString("  ")
	n.AssignList(name, items)
}

// BlankLine separates the variable block from the build line.
func (n *ninjaWriter) BlankLine() {
	n.writeString("\n")
}

// Build writes one build statement:
//
//	build <outputs>: <rule> <inputs> | <explicit deps> || <order-only deps>
func (n *ninjaWriter) Build(outputs []string, rule string, inputs,
	explicitDeps, orderOnlyDeps []string) {

	n.writeString("build")
	for _, out := range outputs {
		n.writeString(" ")
		n.writeString(out)
	}
	n.writeString(": ")
	n.writeString(rule)
	for _, in := range inputs {
		n.writeString(" ")
		n.writeString(in)
	}
	if len(explicitDeps) > 0 {
		n.writeString(" |")
		for _, dep := range explicitDeps {
			n.writeString(" ")
			n.writeString(dep)
		}
	}
	if len(orderOnlyDeps) > 0 {
		n.writeString(" ||")
		for _, dep := range orderOnlyDeps {
			n.writeString(" ")
			n.writeString(dep)
		}
	}
	n.writeString("\n")
}
