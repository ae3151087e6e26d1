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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/timniederhausen/gn/listtools"
)

// The rust-project.json file describes every Rust crate in the build for
// IDE tooling. Crates are listed in topological order: a dependency's
// crate_id is always lower than its consumer's.

// sysrootCrates are the crates synthesized for a tool's sysroot.
// Parsing the sysroot's own metadata is out of scope; the list tracks
// what upstream toolchains ship.
var sysrootCrates = []string{
	"std",
	"core",
	"alloc",
	"collections",
	"libc",
	"panic_unwind",
	"proc_macro",
	"rustc_unicode",
	"std_unicode",
	"test",
	"alloc_jemalloc",
	"alloc_system",
	"compiler_builtins",
	"getopts",
	"panic_abort",
	"unwind",
	"build_helper",
	"rustc_asan",
	"rustc_lsan",
	"rustc_msan",
	"rustc_tsan",
	"syntax",
}

// sysrootDeps is the internal dependency structure of the sysroot
// crates. Dependencies must be emitted before their consumers so the
// crate ids stay topological.
var sysrootDeps = map[string][]string{
	"alloc": {"core"},
	"std":   {"alloc", "core", "panic_abort", "unwind"},
}

type rustProjectWriter struct {
	settings *BuildSettings
	out      io.Writer

	count      uint32
	targetIdx  map[*Target]uint32
	sysrootIdx map[string]map[string]uint32
	firstCrate bool
	err        error
}

// RenderRustProject writes the rust-project.json content for all Rust
// targets of the graph to out.
func RenderRustProject(settings *BuildSettings, targets []*Target, out io.Writer) error {
	w := &rustProjectWriter{
		settings:   settings,
		out:        out,
		targetIdx:  map[*Target]uint32{},
		sysrootIdx: map[string]map[string]uint32{},
		firstCrate: true,
	}

	w.printf("{\n")
	w.printf("  \"roots\": [],\n")
	w.printf("  \"crates\": [\n")

	for _, target := range targets {
		if !target.IsBinary() || !target.KindsUsed.RustSourceUsed() {
			continue
		}
		w.addTarget(target)
	}

	w.printf("\n  ]\n")
	w.printf("}\n")
	return w.err
}

func (w *rustProjectWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// rustDepsOf flattens a target's Rust deps, expanding groups
// transparently. Transitive deps of a Rust library are not expanded; the
// compiler resolves those itself.
func rustDepsOf(target *Target, deps *listtools.UniqueList[*Target]) {
	for _, dep := range target.LinkedDeps() {
		if dep.KindsUsed.RustSourceUsed() {
			deps.Append(dep)
		} else if dep.Type == OutputGroup {
			rustDepsOf(dep, deps)
		}
	}
}

func (w *rustProjectWriter) rustToolSysroot(target *Target) string {
	if target.Toolchain == nil {
		return ""
	}
	tool := target.Toolchain.Tool(RustToolRustc)
	if tool == nil {
		return ""
	}
	return tool.Sysroot
}

func (w *rustProjectWriter) addTarget(target *Target) {
	if _, ok := w.targetIdx[target]; ok {
		return
	}

	// Synthesize the sysroot crates this target's tool needs before
	// anything that depends on them.
	if sysroot := w.rustToolSysroot(target); sysroot != "" {
		w.addSysroot(sysroot)
	}

	// Dependencies first, so their crate ids are lower.
	var deps listtools.UniqueList[*Target]
	rustDepsOf(target, &deps)
	for _, dep := range deps.Slice() {
		w.addTarget(dep)
	}

	w.beginCrate()
	w.targetIdx[target] = w.count
	w.printf("      \"crate_id\": %d,\n", w.count)
	w.count++

	crateRoot := ""
	if target.Rust != nil {
		crateRoot = w.settings.AbsSourcePath(string(target.Rust.CrateRoot))
	}
	w.printf("      \"root_module\": %s,\n", jsonString(crateRoot))
	w.printf("      \"label\": %s,\n", jsonString(target.Label.UserVisibleName(false)))

	w.writeDeps(target, deps.Slice())

	// The edition is declared through rustflags; absent that, the oldest
	// edition is assumed.
	edition := "2015"
	var cfgs []string
	target.VisitConfigValues(func(cv *ConfigValues) {
		for _, flag := range cv.Rustflags {
			if v, ok := strings.CutPrefix(flag, "--edition="); ok {
				edition = v
			}
			if v, ok := strings.CutPrefix(flag, "--cfg="); ok {
				cfgs = append(cfgs, v)
			}
		}
	})
	w.printf("      \"edition\": %s,\n", jsonString(edition))

	w.printf("      \"cfg\": [")
	for i, cfg := range cfgs {
		if i > 0 {
			w.printf(",")
		}
		w.printf("\n        %s", jsonString(cfg))
	}
	w.printf("\n      ]\n")
	w.printf("    }")
}

func (w *rustProjectWriter) writeDeps(target *Target, deps []*Target) {
	firstDep := true
	w.printf("      \"deps\": [")

	if sysroot := w.rustToolSysroot(target); sysroot != "" {
		if stdIdx, ok := w.sysrootIdx[sysroot]["std"]; ok {
			w.printf("\n        {\n")
			w.printf("          \"crate\": %d,\n", stdIdx)
			w.printf("          \"name\": \"std\"\n")
			w.printf("        }")
			firstDep = false
		}
	}

	for _, dep := range deps {
		if !firstDep {
			w.printf(",")
		}
		name := ""
		if dep.Rust != nil {
			name = dep.Rust.CrateName
		}
		w.printf("\n        {\n")
		w.printf("          \"crate\": %d,\n", w.targetIdx[dep])
		w.printf("          \"name\": %s\n", jsonString(name))
		w.printf("        }")
		firstDep = false
	}
	w.printf("\n      ],\n")
}

func (w *rustProjectWriter) beginCrate() {
	if !w.firstCrate {
		w.printf(",\n")
	}
	w.firstCrate = false
	w.printf("    {\n")
}

func (w *rustProjectWriter) addSysroot(sysroot string) {
	if _, ok := w.sysrootIdx[sysroot]; ok {
		return
	}
	w.sysrootIdx[sysroot] = map[string]uint32{}
	for _, crate := range sysrootCrates {
		w.addSysrootCrate(sysroot, crate)
	}
}

// addSysrootCrate emits one sysroot crate, recursively emitting its
// dependencies first so the fixed dep map stays topological regardless
// of declaration order.
func (w *rustProjectWriter) addSysrootCrate(sysroot, crate string) {
	lookup := w.sysrootIdx[sysroot]
	if _, ok := lookup[crate]; ok {
		return
	}

	deps := sysrootDeps[crate]
	for _, dep := range deps {
		w.addSysrootCrate(sysroot, dep)
	}

	w.beginCrate()
	lookup[crate] = w.count
	w.printf("      \"crate_id\": %d,\n", w.count)
	w.count++

	rootModule := w.settings.AbsBuildDir() + sysroot +
		"/lib/rustlib/src/rust/src/lib" + crate + "/lib.rs"
	w.printf("      \"root_module\": %s,\n", jsonString(rootModule))
	w.printf("      \"edition\": \"2018\",\n")

	w.printf("      \"deps\": [")
	for i, dep := range deps {
		if i > 0 {
			w.printf(",")
		}
		w.printf("\n        {\n")
		w.printf("          \"crate\": %d,\n", lookup[dep])
		w.printf("          \"name\": %s\n", jsonString(dep))
		w.printf("        }")
	}
	w.printf("\n      ],\n")
	w.printf("      \"cfg\": []\n")
	w.printf("    }")
}

// jsonString renders s as a JSON string literal, escaping per RFC 8259.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// RustProjectFileName is the file RenderRustProjectFile writes.
const RustProjectFileName = "rust-project.json"

// RenderRustProjectFile renders the project description for graph and
// writes it under outDir, skipping the write when the content is
// unchanged.
func RenderRustProjectFile(graph *Graph, settings *BuildSettings, outDir string) error {
	var sb strings.Builder
	if err := RenderRustProject(settings, graph.Targets, &sb); err != nil {
		return err
	}
	_, err := WriteFileIfChanged(outDir+"/"+RustProjectFileName, []byte(sb.String()))
	return err
}
