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

// initRust reads the Rust-only tool values: the per-crate-type output
// extensions and the sysroot.
func (t *Tool) initRust(scope *Scope) *Err {
	if err := t.readOutputExtension(scope, "exe_output_extension", &t.ExeOutputExtension); err != nil {
		return err
	}
	if err := t.readOutputExtension(scope, "rlib_output_extension", &t.RlibOutputExtension); err != nil {
		return err
	}
	if err := t.readOutputExtension(scope, "dylib_output_extension", &t.DylibOutputExtension); err != nil {
		return err
	}
	if err := t.readOutputExtension(scope, "cdylib_output_extension", &t.CdylibOutputExtension); err != nil {
		return err
	}
	if err := t.readOutputExtension(scope, "staticlib_output_extension", &t.StaticlibOutputExtension); err != nil {
		return err
	}
	if err := t.readOutputExtension(scope, "proc_macro_output_extension", &t.ProcMacroOutputExtension); err != nil {
		return err
	}
	if sysroot, _, ok, err := scope.GetString("sysroot"); err != nil {
		return err
	} else if ok {
		t.Sysroot = sysroot
	}
	return nil
}

// RustcOutputExtension resolves the output extension for a target of the
// given output and crate types. Auto crate types select by output type;
// explicit crate types map directly to their per-type extension. The
// result includes a leading dot when non-empty.
func (t *Tool) RustcOutputExtension(outputType OutputType, crateType CrateType) string {
	switch crateType {
	case CrateAuto:
		switch outputType {
		case OutputExecutable:
			return t.ExeOutputExtension
		case OutputStaticLibrary:
			return t.StaticlibOutputExtension
		case OutputRustLibrary:
			return t.RlibOutputExtension
		}
		return t.ExeOutputExtension
	case CrateBin:
		return t.ExeOutputExtension
	case CrateRlib:
		return t.RlibOutputExtension
	case CrateDylib:
		return t.DylibOutputExtension
	case CrateCDylib:
		return t.CdylibOutputExtension
	case CrateStaticlib:
		return t.StaticlibOutputExtension
	case CrateProcMacro:
		return t.ProcMacroOutputExtension
	}
	return t.ExeOutputExtension
}
