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

	"github.com/timniederhausen/gn/listtools"
)

// NinjaCBinaryTargetWriter emits the build rules for a C-family binary
// target: one compile statement per source, then the link (or archive)
// statement carrying the resolver's transitive library answers.
type NinjaCBinaryTargetWriter struct {
	ninjaTargetWriter
}

// NewNinjaCBinaryTargetWriter returns a writer for a C-family target.
func NewNinjaCBinaryTargetWriter(target *Target, settings *BuildSettings,
	resolved *ResolvedTargetData, out *ninjaWriter) *NinjaCBinaryTargetWriter {
	return &NinjaCBinaryTargetWriter{
		ninjaTargetWriter: newNinjaTargetWriter(target, settings, resolved, out),
	}
}

// objectFileForSource maps one source to the object file its compile
// statement produces.
func (w *NinjaCBinaryTargetWriter) objectFileForSource(source SourceFile) OutputFile {
	name := source.Name()
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[:dot]
	}
	return OutputFile(w.settings.TargetObjDir(w.target) + "/" +
		w.target.EffectiveOutputName() + "." + name + ".o")
}

// Run writes the target's rules to the writer's output.
func (w *NinjaCBinaryTargetWriter) Run() {
	inputDep := w.writeInputsStampAndGetDep()
	orderOnlyDeps := w.writeInputDepsStampAndGetDep(nil)
	if inputDep != "" {
		orderOnlyDeps = append(orderOnlyDeps, inputDep)
	}

	w.writeSharedVars(w.target.Toolchain.SubstitutionBits())
	w.out.BlankLine()

	// One compile statement per compilable source.
	var objectFiles []OutputFile
	for _, source := range w.target.Sources {
		tool := w.target.Toolchain.ToolForSourceKind(source.Kind())
		if tool == nil {
			// Headers and unknown kinds produce no object file.
			continue
		}
		obj := w.objectFileForSource(source)
		w.out.Build([]string{string(obj)}, tool.Name().String(),
			[]string{w.settings.RebaseSourceFile(source)},
			nil, outputFileStrings(orderOnlyDeps))
		objectFiles = append(objectFiles, obj)
	}

	if w.target.Type == OutputSourceSet {
		w.writeSourceSetStamp(objectFiles)
		return
	}

	w.writeLink(objectFiles, orderOnlyDeps)
}

func (w *NinjaCBinaryTargetWriter) writeSourceSetStamp(objectFiles []OutputFile) {
	_, _, nonLinkableDeps := w.getDeps()
	var orderOnlyDeps []OutputFile
	for _, dep := range nonLinkableDeps {
		orderOnlyDeps = append(orderOnlyDeps, dependencyOutputFile(w.settings, dep))
	}
	w.writeStampForTarget(objectFiles, orderOnlyDeps)
}

// writeLink writes the final link or archive statement. The target's
// own object files, the rebased source files of source-set deps, and
// linkable dep outputs are explicit inputs; the
// resolver's lib/framework answers become scoped variables on the
// statement.
func (w *NinjaCBinaryTargetWriter) writeLink(objectFiles []OutputFile,
	orderOnlyDeps []OutputFile) {

	tool := w.target.Toolchain.ToolForTargetFinalOutput(w.target)

	var inputs listtools.UniqueList[OutputFile]
	for _, obj := range objectFiles {
		inputs.Append(obj)
	}

	extraObjectFiles, linkableDeps, nonLinkableDeps := w.getDeps()
	for _, obj := range extraObjectFiles {
		inputs.Append(obj)
	}

	var implicitDeps []OutputFile
	for _, dep := range linkableDeps {
		implicitDeps = append(implicitDeps, dependencyOutputFile(w.settings, dep))
	}
	for _, dep := range nonLinkableDeps {
		orderOnlyDeps = append(orderOnlyDeps, dependencyOutputFile(w.settings, dep))
	}

	outputs := w.toolOutputs(tool)
	w.out.Build(outputFileStrings(outputs), tool.Name().String(),
		outputFileStrings(inputs.Slice()),
		outputFileStrings(implicitDeps), outputFileStrings(orderOnlyDeps))

	// Only final targets carry link flags.
	if !w.target.IsFinal() {
		return
	}

	libInfo := w.resolved.GetLibInfo(w.target)
	if libInfo.AllLibDirs.Len() > 0 {
		var items []string
		for _, dir := range libInfo.AllLibDirs.Slice() {
			items = append(items, "-L"+NinjaCommandEscape(w.settings.RebaseSourceDir(dir)))
		}
		w.out.ScopedAssignList("lib_dirs", items)
	}
	if libInfo.AllLibs.Len() > 0 {
		var items []string
		for _, lib := range libInfo.AllLibs.Slice() {
			items = append(items, "-l"+NinjaCommandEscape(string(lib)))
		}
		w.out.ScopedAssignList("libs", items)
	}

	frameworkInfo := w.resolved.GetFrameworkInfo(w.target)
	if frameworkInfo.AllFrameworkDirs.Len() > 0 {
		var items []string
		for _, dir := range frameworkInfo.AllFrameworkDirs.Slice() {
			items = append(items, "-F"+NinjaCommandEscape(w.settings.RebaseSourceDir(dir)))
		}
		w.out.ScopedAssignList("framework_dirs", items)
	}
	if frameworkInfo.AllFrameworks.Len() > 0 || frameworkInfo.AllWeakFrameworks.Len() > 0 {
		var items []string
		for _, f := range frameworkInfo.AllFrameworks.Slice() {
			items = append(items, "-framework "+NinjaCommandEscape(trimFrameworkExtension(f)))
		}
		for _, f := range frameworkInfo.AllWeakFrameworks.Slice() {
			items = append(items, "-weak_framework "+NinjaCommandEscape(trimFrameworkExtension(f)))
		}
		w.out.ScopedAssignList("frameworks", items)
	}
}

func trimFrameworkExtension(f string) string {
	return strings.TrimSuffix(f, ".framework")
}
