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

// NewDefaultToolchain builds the toolchain the stand-in graph loader
// attaches to targets: plain host tools with conventional output
// locations. A real front-end defines toolchains in its configuration
// language instead.
func NewDefaultToolchain() (*Toolchain, error) {
	tc := NewToolchain(Label{
		Dir:  "//toolchain/",
		Name: "default",
	})

	type toolDef struct {
		kind   ToolKind
		name   string
		values map[string]any
	}
	defs := []toolDef{
		{ToolC, CToolCc, map[string]any{
			"command":     "cc -MMD -MF {{output}}.d {{source}} -c -o {{output}}",
			"description": "CC {{output}}",
			"outputs":     []string{"{{target_out_dir}}/{{target_output_name}}.{{source_name_part}}.o"},
		}},
		{ToolC, CToolCxx, map[string]any{
			"command":     "c++ -MMD -MF {{output}}.d {{source}} -c -o {{output}}",
			"description": "CXX {{output}}",
			"outputs":     []string{"{{target_out_dir}}/{{target_output_name}}.{{source_name_part}}.o"},
		}},
		{ToolC, CToolAsm, map[string]any{
			"command":     "cc {{source}} -c -o {{output}}",
			"description": "ASM {{output}}",
			"outputs":     []string{"{{target_out_dir}}/{{target_output_name}}.{{source_name_part}}.o"},
		}},
		{ToolC, CToolAlink, map[string]any{
			"command":     "ar rcs {{output}}",
			"description": "AR {{output}}",
			"outputs":     []string{"{{target_out_dir}}/lib{{target_output_name}}.a"},
		}},
		{ToolC, CToolSolink, map[string]any{
			"command":     "cc -shared -o {{output}}",
			"description": "SOLINK {{output}}",
			"outputs":     []string{"{{root_out_dir}}/lib{{target_output_name}}.so"},
		}},
		{ToolC, CToolSolinkModule, map[string]any{
			"command":     "cc -shared -o {{output}}",
			"description": "SOLINK_MODULE {{output}}",
			"outputs":     []string{"{{root_out_dir}}/lib{{target_output_name}}.so"},
		}},
		{ToolC, CToolLink, map[string]any{
			"command":     "cc -o {{output}}",
			"description": "LINK {{output}}",
			"outputs":     []string{"{{root_out_dir}}/{{target_output_name}}"},
		}},
		{ToolRust, RustToolRustc, map[string]any{
			"command": "{{rustenv}} rustc --crate-name {{crate_name}} {{source}} " +
				"--crate-type {{crate_type}} {{rustflags}} -o {{output}} " +
				"{{rustdeps}} {{externs}}",
			"description":                 "RUST {{output}}",
			"outputs":                     []string{"{{target_out_dir}}/{{rustc_output_prefix}}{{crate_name}}{{rustc_output_extension}}"},
			"dylib_output_extension":      ".so",
			"cdylib_output_extension":     ".so",
			"staticlib_output_extension":  ".a",
			"proc_macro_output_extension": ".so",
		}},
		{ToolGeneral, GeneralToolStamp, map[string]any{
			"command":     "touch {{output}}",
			"description": "STAMP {{output}}",
		}},
		{ToolGeneral, GeneralToolCopy, map[string]any{
			"command":     "cp -af {{source}} {{output}}",
			"description": "COPY {{source}} {{output}}",
		}},
		{ToolBuiltin, BuiltinToolPhony, nil},
	}

	for _, def := range defs {
		tool, err := NewTool(def.kind, def.name)
		if err != nil {
			return nil, err
		}
		scope := NewScope(Location{File: "<default toolchain>"})
		for name, val := range def.values {
			scope.Set(name, val, scope.Location())
		}
		if err := tool.Init(scope); err != nil {
			return nil, err
		}
		tc.SetTool(tool)
	}
	return tc, nil
}
