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

// OutputType describes what a target produces.
type OutputType int

const (
	OutputUnknown OutputType = iota
	OutputGroup
	OutputExecutable
	OutputSharedLibrary
	OutputLoadableModule
	OutputStaticLibrary
	OutputSourceSet
	OutputRustLibrary
	OutputRustProcMacro
	OutputAction
	OutputActionForEach
	OutputBundle
	OutputCopyFiles
	OutputGeneratedFile
)

var outputTypeNames = map[OutputType]string{
	OutputUnknown:        "unknown",
	OutputGroup:          "group",
	OutputExecutable:     "executable",
	OutputSharedLibrary:  "shared_library",
	OutputLoadableModule: "loadable_module",
	OutputStaticLibrary:  "static_library",
	OutputSourceSet:      "source_set",
	OutputRustLibrary:    "rust_library",
	OutputRustProcMacro:  "rust_proc_macro",
	OutputAction:         "action",
	OutputActionForEach:  "action_foreach",
	OutputBundle:         "create_bundle",
	OutputCopyFiles:      "copy",
	OutputGeneratedFile:  "generated_file",
}

func (t OutputType) String() string {
	if s, ok := outputTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// CrateType is the Rust crate kind passed to the compiler.
type CrateType int

const (
	CrateAuto CrateType = iota
	CrateBin
	CrateRlib
	CrateDylib
	CrateCDylib
	CrateStaticlib
	CrateProcMacro
)

func (c CrateType) String() string {
	switch c {
	case CrateBin:
		return "bin"
	case CrateRlib:
		return "rlib"
	case CrateDylib:
		return "dylib"
	case CrateCDylib:
		return "cdylib"
	case CrateStaticlib:
		return "staticlib"
	case CrateProcMacro:
		return "proc-macro"
	}
	return "auto"
}

// RustValues holds the Rust-specific attributes of a target.
type RustValues struct {
	CrateName string
	CrateRoot SourceFile
	CrateType CrateType
	Edition   string

	// AliasedDeps maps a dependency's label to the extern name the crate
	// uses for it.
	AliasedDeps map[Label]string
}

// A Target is a node in the resolved graph. Targets are fully populated
// by the front-end before any resolver or writer reads them; everything
// in this package treats them as read-only.
type Target struct {
	Label Label
	Type  OutputType

	Sources   []SourceFile
	KindsUsed SourceKindSet

	PublicDeps  []*Target
	PrivateDeps []*Target
	DataDeps    []*Target

	OwnValues ConfigValues
	Configs   []*Config

	// HardDep marks a target whose outputs must exist before any
	// dependent starts compiling.
	HardDep bool

	// CompleteStaticLib marks a static library that links in all
	// transitive object code. Only valid for static libraries.
	CompleteStaticLib bool

	BuildsSwiftModule bool

	// AllHeadersPublic is the default; when false only PublicHeaders are
	// visible to dependents.
	AllHeadersPublic bool
	PublicHeaders    []SourceFile

	// IsFrameworkBundle is set on create_bundle targets that produce a
	// framework.
	IsFrameworkBundle bool

	Rust *RustValues

	Metadata Metadata

	Toolchain *Toolchain

	// OutputName overrides the file name stem; empty means the label
	// name.
	OutputName string

	// OutputExtensionSet records an explicit output_extension, which may
	// legitimately be empty.
	OutputExtension    string
	OutputExtensionSet bool

	// OutputDir overrides the directory the final output is written to.
	OutputDir SourceDir

	// Outputs are the declared output files of action-like targets,
	// relative to the build directory.
	Outputs []OutputFile

	// Contents is what a generated_file target writes; ContentsSet
	// distinguishes "absent" from an empty value.
	Contents    Value
	ContentsSet bool
}

// NewTarget returns a target with the defaults the front-end applies
// before resolution.
func NewTarget(label Label, typ OutputType) *Target {
	return &Target{
		Label:            label,
		Type:             typ,
		AllHeadersPublic: true,
	}
}

// LinkedDeps returns public deps followed by private deps, the traversal
// order every resolver computation uses. Data deps are not linked.
func (t *Target) LinkedDeps() []*Target {
	if len(t.PrivateDeps) == 0 {
		return t.PublicDeps
	}
	if len(t.PublicDeps) == 0 {
		return t.PrivateDeps
	}
	deps := make([]*Target, 0, len(t.PublicDeps)+len(t.PrivateDeps))
	deps = append(deps, t.PublicDeps...)
	deps = append(deps, t.PrivateDeps...)
	return deps
}

// IsFinal reports whether the target's output is itself linked or
// produced directly, rather than being forwarded up the dependency tree.
func (t *Target) IsFinal() bool {
	switch t.Type {
	case OutputExecutable, OutputSharedLibrary, OutputLoadableModule,
		OutputRustProcMacro, OutputAction, OutputActionForEach,
		OutputCopyFiles, OutputBundle, OutputGeneratedFile:
		return true
	case OutputStaticLibrary:
		return t.CompleteStaticLib
	}
	return false
}

// IsBinary reports whether the target compiles source files.
func (t *Target) IsBinary() bool {
	switch t.Type {
	case OutputExecutable, OutputSharedLibrary, OutputLoadableModule,
		OutputStaticLibrary, OutputSourceSet, OutputRustLibrary,
		OutputRustProcMacro:
		return true
	}
	return false
}

// IsLinkable reports whether dependents include this target on their
// link line.
func (t *Target) IsLinkable() bool {
	switch t.Type {
	case OutputStaticLibrary, OutputSharedLibrary, OutputRustLibrary:
		return true
	}
	return false
}

// EffectiveOutputName returns OutputName, defaulting to the label name.
func (t *Target) EffectiveOutputName() string {
	if t.OutputName != "" {
		return t.OutputName
	}
	return t.Label.Name
}

// CrateTypeForTarget normalizes an auto crate type from the output type.
// The writer relies on this to pick output extensions and the crate-type
// command line flag.
func (t *Target) CrateTypeForTarget() CrateType {
	if t.Rust != nil && t.Rust.CrateType != CrateAuto {
		return t.Rust.CrateType
	}
	switch t.Type {
	case OutputExecutable:
		return CrateBin
	case OutputStaticLibrary:
		return CrateStaticlib
	case OutputRustLibrary:
		return CrateRlib
	case OutputSharedLibrary:
		return CrateDylib
	case OutputLoadableModule:
		return CrateCDylib
	case OutputRustProcMacro:
		return CrateProcMacro
	}
	return CrateAuto
}
