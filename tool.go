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

import "github.com/timniederhausen/gn/intern"

// ToolKind selects the variant-specific behavior of a Tool.
type ToolKind int

const (
	// ToolC covers the C-family compile and link tools.
	ToolC ToolKind = iota
	// ToolRust is the rustc driver tool.
	ToolRust
	// ToolGeneral covers stamp, copy, and action tools.
	ToolGeneral
	// ToolBuiltin tools need no definition in the toolchain; the only one
	// is phony.
	ToolBuiltin
)

// Tool names, as referenced from toolchain definitions.
const (
	CToolCc           = "cc"
	CToolCxx          = "cxx"
	CToolObjC         = "objc"
	CToolObjCxx       = "objcxx"
	CToolAsm          = "asm"
	CToolAlink        = "alink"
	CToolSolink       = "solink"
	CToolSolinkModule = "solink_module"
	CToolLink         = "link"

	RustToolRustc = "rustc"

	GeneralToolStamp  = "stamp"
	GeneralToolCopy   = "copy"
	GeneralToolAction = "action"

	BuiltinToolPhony = "phony"
)

// A Tool describes how build rules for one kind of input are synthesized:
// the command template, how output file names are derived, and which
// substitutions its templates may reference.
type Tool struct {
	Kind ToolKind
	name intern.Atom

	Command         SubstitutionPattern
	CommandLauncher string
	Description     SubstitutionPattern

	Outputs        SubstitutionList
	RuntimeOutputs SubstitutionList

	// LinkOutput and DependOutput support the shared-library two-output
	// pattern: the link output participates in linking, the depend output
	// is what dependents wait on.
	LinkOutput   SubstitutionPattern
	DependOutput SubstitutionPattern

	DefaultOutputExtension string

	// Rust per-crate-type output extensions, with a leading dot when
	// non-empty.
	ExeOutputExtension       string
	RlibOutputExtension      string
	DylibOutputExtension     string
	CdylibOutputExtension    string
	StaticlibOutputExtension string
	ProcMacroOutputExtension string

	// Sysroot is the Rust sysroot the tool compiles against, if any.
	Sysroot string

	bits     SubstitutionBits
	complete bool
}

// NewTool returns an incomplete tool of the given kind. Name validity is
// checked per variant: builtin tools must be named "phony", the Rust tool
// "rustc".
func NewTool(kind ToolKind, name string) (*Tool, *Err) {
	t := &Tool{
		Kind: kind,
		name: intern.Get(name),
		bits: SubstitutionBits{},
	}
	if kind == ToolRust {
		t.RlibOutputExtension = ".rlib"
	}
	if !t.validateName(name) {
		return nil, errAt(Location{}, "unknown tool name %q", name)
	}
	return t, nil
}

// Name returns the tool's name atom.
func (t *Tool) Name() intern.Atom { return t.name }

// SubstitutionBits returns the set of substitutions the tool's templates
// reference. Only valid once the tool is complete.
func (t *Tool) SubstitutionBits() SubstitutionBits { return t.bits }

// Complete reports whether Init has succeeded.
func (t *Tool) Complete() bool { return t.complete }

func (t *Tool) validateName(name string) bool {
	switch t.Kind {
	case ToolC:
		switch name {
		case CToolCc, CToolCxx, CToolObjC, CToolObjCxx, CToolAsm,
			CToolAlink, CToolSolink, CToolSolinkModule, CToolLink:
			return true
		}
		return false
	case ToolRust:
		return name == RustToolRustc
	case ToolGeneral:
		switch name {
		case GeneralToolStamp, GeneralToolCopy, GeneralToolAction:
			return true
		}
		return false
	case ToolBuiltin:
		return name == BuiltinToolPhony
	}
	return false
}

// validateSubstitution checks that a substitution referenced from one of
// the tool's templates is in the whitelist for the tool's variant.
func (t *Tool) validateSubstitution(sub *Substitution) bool {
	switch t.Kind {
	case ToolRust:
		return IsValidRustSubstitution(sub)
	default:
		return IsValidToolSubstitution(sub) || IsValidSourceSubstitution(sub)
	}
}

func (t *Tool) readPattern(scope *Scope, name string, dst *SubstitutionPattern) *Err {
	str, loc, ok, err := scope.GetString(name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	p, err := ParseSubstitutionPattern(str, loc)
	if err != nil {
		return err
	}
	for _, sub := range p.Required() {
		if !t.validateSubstitution(sub) {
			return errAt(loc, "pattern not valid here").withHelp(
				"You used the pattern " + sub.Name + " which is not valid\nfor this variable.")
		}
		t.bits.Set(sub)
	}
	*dst = p
	return nil
}

func (t *Tool) readPatternList(scope *Scope, name string, dst *SubstitutionList) *Err {
	values, loc, ok, err := scope.GetStringList(name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	l, err := ParseSubstitutionList(values, loc)
	if err != nil {
		return err
	}
	for _, sub := range l.Required() {
		if !t.validateSubstitution(sub) {
			return errAt(loc, "pattern not valid here").withHelp(
				"You used the pattern " + sub.Name + " which is not valid\nfor this variable.")
		}
		t.bits.Set(sub)
	}
	*dst = l
	return nil
}

func (t *Tool) readOutputExtension(scope *Scope, name string, dst *string) *Err {
	str, _, ok, err := scope.GetString(name)
	if err != nil {
		return err
	}
	if !ok || str == "" {
		return nil
	}
	*dst = str
	return nil
}

// Init populates the tool from scope and validates it. On success the
// tool is marked complete and becomes immutable.
func (t *Tool) Init(scope *Scope) *Err {
	if err := t.readPattern(scope, "command", &t.Command); err != nil {
		return err
	}
	if err := t.readPattern(scope, "description", &t.Description); err != nil {
		return err
	}
	if err := t.readPattern(scope, "link_output", &t.LinkOutput); err != nil {
		return err
	}
	if err := t.readPattern(scope, "depend_output", &t.DependOutput); err != nil {
		return err
	}
	if err := t.readPatternList(scope, "outputs", &t.Outputs); err != nil {
		return err
	}
	if err := t.readPatternList(scope, "runtime_outputs", &t.RuntimeOutputs); err != nil {
		return err
	}
	if launcher, _, ok, err := scope.GetString("command_launcher"); err != nil {
		return err
	} else if ok {
		t.CommandLauncher = launcher
	}
	if ext, _, ok, err := scope.GetString("default_output_extension"); err != nil {
		return err
	} else if ok {
		t.DefaultOutputExtension = ext
	}

	if t.Kind == ToolRust {
		if err := t.initRust(scope); err != nil {
			return err
		}
	}

	// Builtin tools have no command; everything else needs one.
	if t.Kind != ToolBuiltin && t.Command.Empty() {
		return errAt(scope.Location(), "this tool's command is empty")
	}
	if t.requiresOutputs() && len(t.Outputs.Patterns) == 0 {
		return errAt(scope.Location(),
			`"outputs" must be specified for this tool`)
	}
	for _, p := range t.RuntimeOutputs.Patterns {
		if !t.Outputs.Contains(p) {
			return errAt(scope.Location(),
				"runtime output %q must be listed in the outputs", p.String())
		}
	}

	t.complete = true
	return nil
}

// requiresOutputs reports whether an empty outputs list is an error for
// this tool. Compile and link tools produce files; stamp, copy, action,
// and phony have implicit outputs.
func (t *Tool) requiresOutputs() bool {
	switch t.Kind {
	case ToolGeneral, ToolBuiltin:
		return false
	}
	return true
}
