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
	"github.com/timniederhausen/gn/listtools"
)

// ninjaTargetWriter has the machinery shared by all per-target writers:
// path expansion, stamp synthesis, and dependency classification.
type ninjaTargetWriter struct {
	target   *Target
	settings *BuildSettings
	resolved *ResolvedTargetData
	out      *ninjaWriter
}

func newNinjaTargetWriter(target *Target, settings *BuildSettings,
	resolved *ResolvedTargetData, out *ninjaWriter) ninjaTargetWriter {
	return ninjaTargetWriter{
		target:   target,
		settings: settings,
		resolved: resolved,
		out:      out,
	}
}

// linkerSubstitutionValue resolves one substitution for linker-style
// pattern expansion (output names and the crate vars block).
func linkerSubstitutionValue(settings *BuildSettings, t *Target, tool *Tool,
	sub *Substitution) string {
	switch sub {
	case SubstitutionRootOutDir:
		return settings.RootOutDir()
	case SubstitutionTargetOutDir:
		return settings.TargetObjDir(t)
	case SubstitutionTargetOutputName:
		return t.EffectiveOutputName()
	case SubstitutionOutputDir:
		if t.OutputDir != "" {
			return settings.RebaseSourceDir(t.OutputDir)
		}
		return ""
	case SubstitutionOutputExtension:
		if t.OutputExtensionSet {
			if t.OutputExtension == "" {
				return ""
			}
			return "." + t.OutputExtension
		}
		return tool.DefaultOutputExtension
	case SubstitutionCrateName:
		if t.Rust != nil {
			return t.Rust.CrateName
		}
		return ""
	case SubstitutionRustcOutputPrefix:
		return rustcOutputPrefix(t)
	case SubstitutionRustcOutputExtension:
		return rustcOutputExtensionValue(t, tool)
	}
	return ""
}

// rustcOutputPrefix is "lib" for library-like crates and empty for
// executables.
func rustcOutputPrefix(t *Target) string {
	if t.Type == OutputRustLibrary || t.Type == OutputSharedLibrary {
		return "lib"
	}
	switch t.CrateTypeForTarget() {
	case CrateRlib, CrateDylib, CrateCDylib, CrateStaticlib, CrateProcMacro:
		return "lib"
	}
	return ""
}

// rustcOutputExtensionValue resolves the rustc output extension for a
// target: an explicit output_extension wins over the tool's
// (output-type, crate-type) matrix.
func rustcOutputExtensionValue(t *Target, tool *Tool) string {
	if t.OutputExtensionSet {
		if t.OutputExtension == "" {
			return ""
		}
		return "." + t.OutputExtension
	}
	crateType := CrateAuto
	if t.Rust != nil {
		crateType = t.Rust.CrateType
	}
	return tool.RustcOutputExtension(t.Type, crateType)
}

// toolOutputs expands the tool's outputs patterns for the target.
func (w *ninjaTargetWriter) toolOutputs(tool *Tool) []OutputFile {
	outputs := make([]OutputFile, 0, len(tool.Outputs.Patterns))
	for _, p := range tool.Outputs.Patterns {
		outputs = append(outputs, OutputFile(p.Apply(func(sub *Substitution) string {
			return linkerSubstitutionValue(w.settings, w.target, tool, sub)
		})))
	}
	return outputs
}

// stampFile is the synthesized stamp output for non-linkable targets.
func stampFile(settings *BuildSettings, t *Target) OutputFile {
	return OutputFile(settings.TargetObjDir(t) + "/" + t.EffectiveOutputName() + ".stamp")
}

// dependencyOutputFile is the file dependents reference to depend on t:
// the first tool output for targets producing a linkable artifact, the
// stamp for everything else.
func dependencyOutputFile(settings *BuildSettings, t *Target) OutputFile {
	switch t.Type {
	case OutputExecutable, OutputSharedLibrary, OutputLoadableModule,
		OutputStaticLibrary, OutputRustLibrary, OutputRustProcMacro:
		tool := t.Toolchain.ToolForTargetFinalOutput(t)
		if tool != nil && len(tool.Outputs.Patterns) > 0 {
			return OutputFile(tool.Outputs.Patterns[0].Apply(func(sub *Substitution) string {
				return linkerSubstitutionValue(settings, t, tool, sub)
			}))
		}
	}
	return stampFile(settings, t)
}

// writeSharedVars writes the path variables every rule references, when
// the toolchain's templates use them.
func (w *ninjaTargetWriter) writeSharedVars(bits SubstitutionBits) {
	if bits.Used(SubstitutionRootOutDir) {
		w.out.Assign("root_out_dir", w.settings.RootOutDir())
	}
	if bits.Used(SubstitutionTargetOutDir) {
		w.out.Assign("target_out_dir", w.settings.TargetObjDir(w.target))
	}
	if bits.Used(SubstitutionTargetOutputName) {
		w.out.Assign("target_output_name", w.target.EffectiveOutputName())
	}
}

// writeInputsStampAndGetDep synthesizes a stamp standing in for the
// target's config-level inputs. With no inputs it returns ""; with
// exactly one, the input itself; otherwise it writes a stamp build line
// and returns the stamp.
func (w *ninjaTargetWriter) writeInputsStampAndGetDep() OutputFile {
	var inputs listtools.UniqueList[SourceFile]
	w.target.VisitConfigValues(func(cv *ConfigValues) {
		inputs.AppendAll(cv.Inputs)
	})

	if inputs.Len() == 0 {
		return ""
	}
	if inputs.Len() == 1 {
		return w.settings.SourceFileOutput(inputs.At(0))
	}

	stamp := OutputFile(w.settings.TargetObjDir(w.target) + "/" +
		w.target.Label.Name + ".inputs.stamp")

	files := make([]string, 0, inputs.Len())
	for _, in := range inputs.Slice() {
		files = append(files, string(w.settings.SourceFileOutput(in)))
	}
	w.out.Build([]string{string(stamp)}, GeneralToolStamp, files, nil, nil)
	return stamp
}

// writeInputDepsStampAndGetDep collects the target's hard dependencies
// as order-only inputs. Zero yields nothing, one is returned directly,
// more are rolled into one stamp so each build line stays short.
func (w *ninjaTargetWriter) writeInputDepsStampAndGetDep(extraHardDeps []*Target) []OutputFile {
	var deps listtools.UniqueList[OutputFile]
	for _, dep := range w.resolved.RecursiveHardDeps(w.target).Slice() {
		deps.Append(dependencyOutputFile(w.settings, dep))
	}
	for _, dep := range extraHardDeps {
		deps.Append(dependencyOutputFile(w.settings, dep))
	}

	if deps.Len() == 0 {
		return nil
	}
	if deps.Len() == 1 {
		return []OutputFile{deps.At(0)}
	}

	stamp := OutputFile(w.settings.TargetObjDir(w.target) + "/" +
		w.target.Label.Name + ".inputdeps.stamp")
	files := make([]string, 0, deps.Len())
	for _, dep := range deps.Slice() {
		files = append(files, string(dep))
	}
	w.out.Build([]string{string(stamp)}, GeneralToolStamp, files, nil, nil)
	return []OutputFile{stamp}
}

// writeStampForTarget writes the target's own stamp rule over the given
// explicit and order-only deps.
func (w *ninjaTargetWriter) writeStampForTarget(files, orderOnly []OutputFile) {
	stamp := stampFile(w.settings, w.target)
	w.out.Build([]string{string(stamp)}, GeneralToolStamp,
		outputFileStrings(files), nil, outputFileStrings(orderOnly))
}

func outputFileStrings(files []OutputFile) []string {
	if len(files) == 0 {
		return nil
	}
	strs := make([]string, len(files))
	for i, f := range files {
		strs[i] = string(f)
	}
	return strs
}

// getDeps classifies every dependency of the target: direct linked deps
// in declaration order, then inherited libraries from the resolver, then
// data deps (always non-linkable).
func (w *ninjaTargetWriter) getDeps() (extraObjectFiles []OutputFile,
	linkableDeps, nonLinkableDeps []*Target) {

	var objectFiles listtools.UniqueList[OutputFile]
	var linkable, nonLinkable listtools.UniqueList[*Target]

	for _, dep := range w.target.LinkedDeps() {
		w.classifyDependency(dep, &objectFiles, &linkable, &nonLinkable)
	}
	for _, pair := range w.resolved.InheritedLibraries(w.target).Slice() {
		w.classifyDependency(pair.Target(), &objectFiles, &linkable, &nonLinkable)
	}
	for _, dep := range w.target.DataDeps {
		nonLinkable.Append(dep)
	}

	return objectFiles.Release(), linkable.Release(), nonLinkable.Release()
}

// classifyDependency decides how one dep flows into the target's build
// line. Only final targets link libraries; source-set children and the
// non-complete static-library children of a complete static library are
// folded in as object files instead.
func (w *ninjaTargetWriter) classifyDependency(dep *Target,
	extraObjectFiles *listtools.UniqueList[OutputFile],
	linkableDeps, nonLinkableDeps *listtools.UniqueList[*Target]) {

	canLinkLibs := w.target.IsFinal()

	switch {
	case dep.Type == OutputSourceSet ||
		(w.target.CompleteStaticLib &&
			dep.Type == OutputStaticLibrary && !dep.CompleteStaticLib):
		// A source set's object files are linked into the final
		// consumers; intermediate static libraries just forward the
		// dependency so the objects aren't linked twice. A complete
		// static library also swallows the objects of its non-complete
		// static-library children, since ar does not merge archives.
		if canLinkLibs {
			w.addSourceSetFiles(dep, extraObjectFiles)
		}
		// The dep's stamp still orders anything it depends on (such as
		// its data deps) before the current target.
		nonLinkableDeps.Append(dep)
	case w.target.Type == OutputRustLibrary && dep.IsLinkable():
		// Rust libraries aren't final, but carry the link lines of all
		// transitive deps.
		linkableDeps.Append(dep)
	case w.target.CompleteStaticLib && dep.IsFinal():
		nonLinkableDeps.Append(dep)
	case canLinkLibs && dep.IsLinkable():
		linkableDeps.Append(dep)
	default:
		nonLinkableDeps.Append(dep)
	}
}

// addSourceSetFiles adds a source set's source files, rebased onto the
// build directory, to the object-file inputs: one entry per source.
func (w *ninjaTargetWriter) addSourceSetFiles(sourceSet *Target,
	objectFiles *listtools.UniqueList[OutputFile]) {
	for _, source := range sourceSet.Sources {
		objectFiles.Append(w.settings.SourceFileOutput(source))
	}
}

// writeCompilerBuildLine writes the main build statement for a compiled
// target.
func (w *ninjaTargetWriter) writeCompilerBuildLine(source SourceFile,
	extraDeps, orderOnlyDeps []OutputFile, toolName string, outputs []OutputFile) {

	w.out.Build(outputFileStrings(outputs), toolName,
		[]string{w.settings.RebaseSourceFile(source)},
		outputFileStrings(extraDeps), outputFileStrings(orderOnlyDeps))
}
