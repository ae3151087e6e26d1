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
)

// A Graph owns a set of resolved targets. Targets keep their insertion
// order; lookups go through the label index. Once handed to resolvers
// and writers the graph is read-only.
type Graph struct {
	Targets []*Target

	byLabel map[Label]*Target
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byLabel: map[Label]*Target{}}
}

// Add inserts a target; duplicate labels are an error.
func (g *Graph) Add(t *Target) error {
	if _, ok := g.byLabel[t.Label]; ok {
		return fmt.Errorf("duplicate target %s", t.Label.UserVisibleName(false))
	}
	g.byLabel[t.Label] = t
	g.Targets = append(g.Targets, t)
	return nil
}

// TargetByLabel returns the target with the given label, or nil.
func (g *Graph) TargetByLabel(l Label) *Target {
	return g.byLabel[l]
}

// ResolveTargetFromString parses a user-typed label (relative to the
// source root) and looks it up.
func (g *Graph) ResolveTargetFromString(s string) (*Target, *Err) {
	label, err := ParseLabel(s, "//")
	if err != nil {
		return nil, err
	}
	t := g.TargetByLabel(label)
	if t == nil {
		return nil, errAt(Location{}, "unknown target %q", s)
	}
	return t, nil
}

// jsonTarget is the on-disk target description the stand-in graph loader
// reads. The real front-end populates targets from the configuration
// language; this JSON shape exists for the CLI and for tests.
type jsonTarget struct {
	Label string `json:"label"`
	Type  string `json:"type"`

	Sources []string `json:"sources,omitempty"`

	PublicDeps  []string `json:"public_deps,omitempty"`
	PrivateDeps []string `json:"private_deps,omitempty"`
	DataDeps    []string `json:"data_deps,omitempty"`

	Libs           []string `json:"libs,omitempty"`
	LibDirs        []string `json:"lib_dirs,omitempty"`
	Frameworks     []string `json:"frameworks,omitempty"`
	WeakFrameworks []string `json:"weak_frameworks,omitempty"`
	FrameworkDirs  []string `json:"framework_dirs,omitempty"`
	Rustflags      []string `json:"rustflags,omitempty"`
	Rustenv        []string `json:"rustenv,omitempty"`
	Inputs         []string `json:"inputs,omitempty"`

	HardDep           bool  `json:"hard_dep,omitempty"`
	CompleteStaticLib bool  `json:"complete_static_lib,omitempty"`
	BuildsSwiftModule bool  `json:"builds_swift_module,omitempty"`
	AllHeadersPublic  *bool `json:"all_headers_public,omitempty"`

	CrateName   string            `json:"crate_name,omitempty"`
	CrateRoot   string            `json:"crate_root,omitempty"`
	CrateType   string            `json:"crate_type,omitempty"`
	Edition     string            `json:"edition,omitempty"`
	AliasedDeps map[string]string `json:"aliased_deps,omitempty"`

	Metadata map[string][]Value `json:"metadata,omitempty"`

	OutputName      string  `json:"output_name,omitempty"`
	OutputExtension *string `json:"output_extension,omitempty"`
	OutputDir       string  `json:"output_dir,omitempty"`

	Outputs  []string `json:"outputs,omitempty"`
	Contents *Value   `json:"contents,omitempty"`
}

type jsonGraph struct {
	BuildDir string       `json:"build_dir"`
	RootPath string       `json:"root_path,omitempty"`
	Targets  []jsonTarget `json:"targets"`
}

var outputTypesByName = func() map[string]OutputType {
	m := make(map[string]OutputType, len(outputTypeNames))
	for t, name := range outputTypeNames {
		m[name] = t
	}
	return m
}()

var crateTypesByName = map[string]CrateType{
	"":           CrateAuto,
	"auto":       CrateAuto,
	"bin":        CrateBin,
	"rlib":       CrateRlib,
	"dylib":      CrateDylib,
	"cdylib":     CrateCDylib,
	"staticlib":  CrateStaticlib,
	"proc-macro": CrateProcMacro,
}

// LoadGraph reads a JSON graph description, attaches the default
// toolchain to every target, and resolves all dependency references. It
// returns the graph and the build settings the description declares.
func LoadGraph(r io.Reader) (*Graph, *BuildSettings, error) {
	var desc jsonGraph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&desc); err != nil {
		return nil, nil, fmt.Errorf("parsing graph description: %w", err)
	}
	if desc.BuildDir == "" {
		return nil, nil, fmt.Errorf("graph description is missing build_dir")
	}

	settings := &BuildSettings{
		BuildDir: SourceDir(desc.BuildDir),
		RootPath: desc.RootPath,
	}
	toolchain, err := NewDefaultToolchain()
	if err != nil {
		return nil, nil, err
	}

	graph := NewGraph()
	for _, jt := range desc.Targets {
		t, err := targetFromJSON(&jt, toolchain)
		if err != nil {
			return nil, nil, err
		}
		if err := graph.Add(t); err != nil {
			return nil, nil, err
		}
	}

	// Second pass: resolve edges now that every target exists.
	for i, jt := range desc.Targets {
		t := graph.Targets[i]
		var resolveErr error
		resolve := func(names []string) []*Target {
			var deps []*Target
			for _, name := range names {
				label, perr := ParseLabel(name, t.Label.Dir)
				if perr != nil {
					resolveErr = perr
					return nil
				}
				dep := graph.TargetByLabel(label)
				if dep == nil {
					resolveErr = fmt.Errorf("target %s references unknown dep %q",
						t.Label.UserVisibleName(false), name)
					return nil
				}
				deps = append(deps, dep)
			}
			return deps
		}
		t.PublicDeps = resolve(jt.PublicDeps)
		t.PrivateDeps = resolve(jt.PrivateDeps)
		t.DataDeps = resolve(jt.DataDeps)
		if resolveErr != nil {
			return nil, nil, resolveErr
		}
		if t.Rust != nil && len(jt.AliasedDeps) > 0 {
			t.Rust.AliasedDeps = make(map[Label]string, len(jt.AliasedDeps))
			for name, alias := range jt.AliasedDeps {
				label, perr := ParseLabel(name, t.Label.Dir)
				if perr != nil {
					return nil, nil, perr
				}
				t.Rust.AliasedDeps[label] = alias
			}
		}
	}

	return graph, settings, nil
}

func targetFromJSON(jt *jsonTarget, toolchain *Toolchain) (*Target, error) {
	label, perr := ParseLabel(jt.Label, "//")
	if perr != nil {
		return nil, perr
	}
	typ, ok := outputTypesByName[jt.Type]
	if !ok {
		return nil, fmt.Errorf("target %s has unknown type %q", jt.Label, jt.Type)
	}

	t := NewTarget(label, typ)
	t.Toolchain = toolchain
	t.HardDep = jt.HardDep
	t.CompleteStaticLib = jt.CompleteStaticLib
	t.BuildsSwiftModule = jt.BuildsSwiftModule
	if jt.AllHeadersPublic != nil {
		t.AllHeadersPublic = *jt.AllHeadersPublic
	}
	t.OutputName = jt.OutputName
	if jt.OutputExtension != nil {
		t.OutputExtension = *jt.OutputExtension
		t.OutputExtensionSet = true
	}
	t.OutputDir = SourceDir(jt.OutputDir)

	for _, s := range jt.Sources {
		f := SourceFile(s)
		t.Sources = append(t.Sources, f)
		t.KindsUsed.Set(f.Kind())
	}

	for _, l := range jt.Libs {
		t.OwnValues.Libs = append(t.OwnValues.Libs, LibFile(l))
	}
	for _, d := range jt.LibDirs {
		t.OwnValues.LibDirs = append(t.OwnValues.LibDirs, SourceDir(d))
	}
	t.OwnValues.Frameworks = jt.Frameworks
	t.OwnValues.WeakFrameworks = jt.WeakFrameworks
	for _, d := range jt.FrameworkDirs {
		t.OwnValues.FrameworkDirs = append(t.OwnValues.FrameworkDirs, SourceDir(d))
	}
	t.OwnValues.Rustflags = jt.Rustflags
	t.OwnValues.Rustenv = jt.Rustenv
	for _, in := range jt.Inputs {
		t.OwnValues.Inputs = append(t.OwnValues.Inputs, SourceFile(in))
	}

	if jt.CrateName != "" || jt.CrateRoot != "" || jt.Edition != "" ||
		jt.CrateType != "" {
		crateType, ok := crateTypesByName[jt.CrateType]
		if !ok {
			return nil, fmt.Errorf("target %s has unknown crate_type %q",
				jt.Label, jt.CrateType)
		}
		t.Rust = &RustValues{
			CrateName: jt.CrateName,
			CrateRoot: SourceFile(jt.CrateRoot),
			CrateType: crateType,
			Edition:   jt.Edition,
		}
	}

	for _, out := range jt.Outputs {
		t.Outputs = append(t.Outputs, OutputFile(out))
	}
	if jt.Contents != nil {
		t.Contents = *jt.Contents
		t.ContentsSet = true
	}

	// Both halves of a generated_file are required fields; the errors
	// share one shape.
	if typ == OutputGeneratedFile {
		if !t.ContentsSet {
			return nil, fmt.Errorf(
				"generated_file target %s is missing the required field %q",
				jt.Label, "contents")
		}
		if len(t.Outputs) != 1 {
			return nil, fmt.Errorf(
				"generated_file target %s is missing the required field %q "+
					"(exactly one output)",
				jt.Label, "outputs")
		}
	}
	if jt.CompleteStaticLib && typ != OutputStaticLibrary {
		return nil, fmt.Errorf(
			"target %s sets complete_static_lib but is not a static library",
			jt.Label)
	}

	if len(jt.Metadata) > 0 {
		t.Metadata = Metadata{
			Contents:  jt.Metadata,
			SourceDir: label.Dir,
		}
	} else {
		t.Metadata.SourceDir = label.Dir
	}

	return t, nil
}
