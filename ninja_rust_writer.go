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

import "github.com/timniederhausen/gn/listtools"

// NinjaRustBinaryTargetWriter emits the build rules for one Rust target:
// executables, rlibs, dylibs, proc macros, and Rust source sets.
type NinjaRustBinaryTargetWriter struct {
	ninjaTargetWriter
	tool *Tool
}

// NewNinjaRustBinaryTargetWriter returns a writer for target, which must
// use Rust sources and have a toolchain with a rustc tool.
func NewNinjaRustBinaryTargetWriter(target *Target, settings *BuildSettings,
	resolved *ResolvedTargetData, out *ninjaWriter) *NinjaRustBinaryTargetWriter {
	return &NinjaRustBinaryTargetWriter{
		ninjaTargetWriter: newNinjaTargetWriter(target, settings, resolved, out),
		tool:              target.Toolchain.Tool(RustToolRustc),
	}
}

// Run writes the target's rules to the writer's output.
func (w *NinjaRustBinaryTargetWriter) Run() {
	inputDep := w.writeInputsStampAndGetDep()

	// The input dependencies are order-only: ninja brings them up to date
	// before compiling, but changes to them alone don't recompile this
	// target.
	orderOnlyDeps := w.writeInputDepsStampAndGetDep(nil)

	// Rust compilation consumes whole crates, so every source of the
	// target (and of any source-set dependency) is an explicit input of
	// the single build statement.
	var deps listtools.UniqueList[OutputFile]
	w.addSourceSetFiles(w.target, &deps)

	if w.target.Type == OutputSourceSet {
		w.writeSharedVars(w.target.Toolchain.SubstitutionBits())
		w.out.BlankLine()
		w.writeSourceSetStamp(deps.Slice())
		return
	}

	w.writeCompilerVars()
	w.out.BlankLine()

	extraObjectFiles, linkableDeps, nonLinkableDeps := w.getDeps()
	for _, f := range extraObjectFiles {
		deps.Append(f)
	}

	if inputDep != "" {
		orderOnlyDeps = append(orderOnlyDeps, inputDep)
	}

	var rustDeps, nonRustDeps []OutputFile
	for _, dep := range nonLinkableDeps {
		orderOnlyDeps = append(orderOnlyDeps, dependencyOutputFile(w.settings, dep))
	}
	for _, dep := range linkableDeps {
		depFile := dependencyOutputFile(w.settings, dep)
		if dep.KindsUsed.RustSourceUsed() {
			rustDeps = append(rustDeps, depFile)
		} else {
			nonRustDeps = append(nonRustDeps, depFile)
		}
		deps.Append(depFile)
	}

	outputs := w.toolOutputs(w.tool)
	w.writeCompilerBuildLine(w.target.Rust.CrateRoot, deps.Slice(),
		orderOnlyDeps, w.tool.Name().String(), outputs)

	externDeps := append(append([]*Target(nil), linkableDeps...), nonLinkableDeps...)
	w.writeExterns(externDeps)
	w.writeRustdeps(rustDeps, nonRustDeps)
	w.writeEdition()
}

func (w *NinjaRustBinaryTargetWriter) writeCompilerVars() {
	w.writeCrateVars()

	var rustflags, rustenv []string
	w.target.VisitConfigValues(func(cv *ConfigValues) {
		rustflags = append(rustflags, cv.Rustflags...)
		rustenv = append(rustenv, cv.Rustenv...)
	})
	w.out.AssignList(SubstitutionRustFlags.NinjaName, NinjaEscapeList(rustflags))
	w.out.AssignList(SubstitutionRustEnv.NinjaName, NinjaEscapeList(rustenv))

	w.writeSharedVars(w.target.Toolchain.SubstitutionBits())
}

func (w *NinjaRustBinaryTargetWriter) writeCrateVars() {
	w.out.Assign(SubstitutionCrateName.NinjaName,
		NinjaEscape(w.target.Rust.CrateName))
	w.out.Assign(SubstitutionCrateType.NinjaName,
		w.target.CrateTypeForTarget().String())
	w.out.Assign(SubstitutionOutputDir.NinjaName,
		linkerSubstitutionValue(w.settings, w.target, w.tool, SubstitutionOutputDir))
	w.out.Assign(SubstitutionRustcOutputExtension.NinjaName,
		rustcOutputExtensionValue(w.target, w.tool))
	if w.target.Type == OutputRustLibrary || w.target.Type == OutputSharedLibrary {
		w.out.Assign(SubstitutionRustcOutputPrefix.NinjaName, "lib")
	}
}

// writeExterns emits one --extern per Rust library or proc-macro dep,
// honoring the crate's dependency aliases.
func (w *NinjaRustBinaryTargetWriter) writeExterns(deps []*Target) {
	var externs []string
	for _, dep := range deps {
		if dep.Rust == nil {
			continue
		}
		if dep.Type != OutputRustLibrary &&
			dep.CrateTypeForTarget() != CrateProcMacro {
			continue
		}
		name := dep.Rust.CrateName
		if w.target.Rust.AliasedDeps != nil {
			if alias, ok := w.target.Rust.AliasedDeps[dep.Label]; ok {
				name = alias
			}
		}
		externs = append(externs, "--extern "+name+"="+
			string(dependencyOutputFile(w.settings, dep)))
	}
	if len(externs) == 0 {
		return
	}
	w.out.ScopedAssignList(SubstitutionExterns.NinjaName, externs)
}

// writeRustdeps emits the library search paths: -Ldependency for Rust
// deps, -Lnative for everything else, each directory once.
func (w *NinjaRustBinaryTargetWriter) writeRustdeps(rustDeps, nonRustDeps []OutputFile) {
	if len(rustDeps) == 0 && len(nonRustDeps) == 0 {
		return
	}

	var items []string
	var rustDirs, nativeDirs listtools.UniqueList[string]
	for _, dep := range rustDeps {
		rustDirs.Append(dep.Dir())
	}
	for _, dep := range nonRustDeps {
		nativeDirs.Append(dep.Dir())
	}
	for _, dir := range rustDirs.Slice() {
		items = append(items, "-Ldependency="+dir)
	}
	for _, dir := range nativeDirs.Slice() {
		items = append(items, "-Lnative="+dir)
	}
	w.out.ScopedAssignList(SubstitutionRustDeps.NinjaName, items)
}

func (w *NinjaRustBinaryTargetWriter) writeEdition() {
	w.out.ScopedAssign(SubstitutionEdition.NinjaName, w.target.Rust.Edition)
}

// writeSourceSetStamp writes the stamp rule for a Rust source set: the
// sources are explicit deps, non-linkable deps are order-only.
func (w *NinjaRustBinaryTargetWriter) writeSourceSetStamp(objectFiles []OutputFile) {
	_, _, nonLinkableDeps := w.getDeps()

	var orderOnlyDeps []OutputFile
	for _, dep := range nonLinkableDeps {
		orderOnlyDeps = append(orderOnlyDeps, dependencyOutputFile(w.settings, dep))
	}
	w.writeStampForTarget(objectFiles, orderOnlyDeps)
}
