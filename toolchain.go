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

// A Toolchain is a named bundle of tools, one per tool name, plus the
// union of the substitutions any of its tools reference.
type Toolchain struct {
	Label Label

	tools map[string]*Tool
	bits  SubstitutionBits
}

// NewToolchain returns an empty toolchain.
func NewToolchain(label Label) *Toolchain {
	return &Toolchain{
		Label: label,
		tools: map[string]*Tool{},
		bits:  SubstitutionBits{},
	}
}

// SetTool registers a complete tool under its name.
func (tc *Toolchain) SetTool(t *Tool) {
	tc.tools[t.Name().String()] = t
	tc.bits.MergeFrom(t.SubstitutionBits())
}

// Tool returns the tool with the given name, or nil.
func (tc *Toolchain) Tool(name string) *Tool {
	return tc.tools[name]
}

// SubstitutionBits returns the union of substitutions any tool uses.
func (tc *Toolchain) SubstitutionBits() SubstitutionBits { return tc.bits }

// ToolForSourceKind returns the tool that compiles the given source kind.
func (tc *Toolchain) ToolForSourceKind(k SourceKind) *Tool {
	switch k {
	case SourceC:
		return tc.Tool(CToolCc)
	case SourceCpp:
		return tc.Tool(CToolCxx)
	case SourceM:
		return tc.Tool(CToolObjC)
	case SourceMM:
		return tc.Tool(CToolObjCxx)
	case SourceS:
		return tc.Tool(CToolAsm)
	case SourceRs:
		return tc.Tool(RustToolRustc)
	}
	return nil
}

// ToolForTargetFinalOutput returns the tool that produces the target's
// final output file. Rust targets always go through rustc; targets
// without a linkable artifact fall back to the stamp tool.
func (tc *Toolchain) ToolForTargetFinalOutput(t *Target) *Tool {
	if t.KindsUsed.RustSourceUsed() {
		return tc.Tool(RustToolRustc)
	}
	switch t.Type {
	case OutputExecutable:
		return tc.Tool(CToolLink)
	case OutputSharedLibrary:
		return tc.Tool(CToolSolink)
	case OutputLoadableModule:
		return tc.Tool(CToolSolinkModule)
	case OutputStaticLibrary:
		return tc.Tool(CToolAlink)
	}
	return tc.Tool(GeneralToolStamp)
}
