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
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ninjaRequiredVersion is the oldest executor the emitted syntax needs.
const ninjaRequiredVersion = "1.7.2"

// NinjaGroupTargetWriter emits the stamp rule for group-like targets
// (groups, actions, copies, bundles, generated files): dependents wait
// on the stamp, which orders all of the target's deps.
type NinjaGroupTargetWriter struct {
	ninjaTargetWriter
}

// NewNinjaGroupTargetWriter returns a writer for a group-like target.
func NewNinjaGroupTargetWriter(target *Target, settings *BuildSettings,
	resolved *ResolvedTargetData, out *ninjaWriter) *NinjaGroupTargetWriter {
	return &NinjaGroupTargetWriter{
		ninjaTargetWriter: newNinjaTargetWriter(target, settings, resolved, out),
	}
}

// Run writes the target's stamp rule.
func (w *NinjaGroupTargetWriter) Run() {
	var deps []OutputFile
	for _, dep := range w.target.LinkedDeps() {
		deps = append(deps, dependencyOutputFile(w.settings, dep))
	}
	var orderOnlyDeps []OutputFile
	for _, dep := range w.target.DataDeps {
		orderOnlyDeps = append(orderOnlyDeps, dependencyOutputFile(w.settings, dep))
	}
	w.writeStampForTarget(deps, orderOnlyDeps)
}

// RenderTargetRules renders one target's build statements to a string.
// Given a fixed graph the result is byte-for-byte deterministic.
func RenderTargetRules(target *Target, settings *BuildSettings,
	resolved *ResolvedTargetData) (string, error) {
	if target.Toolchain == nil {
		return "", errAt(Location{}, "target %s has no toolchain",
			target.Label.UserVisibleName(false))
	}

	var sb strings.Builder
	out := newNinjaWriter(&sb)

	switch {
	case target.IsBinary():
		if target.KindsUsed.RustSourceUsed() {
			NewNinjaRustBinaryTargetWriter(target, settings, resolved, out).Run()
		} else {
			NewNinjaCBinaryTargetWriter(target, settings, resolved, out).Run()
		}
	case target.Type == OutputGroup, target.Type == OutputAction,
		target.Type == OutputActionForEach, target.Type == OutputCopyFiles,
		target.Type == OutputBundle, target.Type == OutputGeneratedFile:
		NewNinjaGroupTargetWriter(target, settings, resolved, out).Run()
	default:
		return "", errAt(Location{}, "don't know how to write rules for %s target %s",
			target.Type, target.Label.UserVisibleName(false))
	}

	if err := out.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderBuildFiles renders the whole graph's rules and writes the build
// manifest files under outDir. Unrelated targets render in parallel, one
// worker-pool task per target with its own ResolvedTargetData; a
// single-threaded pass concatenates the buffers in stable label order so
// the output does not depend on scheduling. Files whose content is
// unchanged are not rewritten.
func RenderBuildFiles(graph *Graph, settings *BuildSettings, outDir string,
	workers int) error {

	targets := append([]*Target(nil), graph.Targets...)
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Label.Compare(targets[j].Label) < 0
	})

	results := make([]string, len(targets))
	errs := make([]error, len(targets))
	var failed atomic.Bool

	pool := NewWorkerPool(workers)
	done := make(chan struct{})
	var pending atomic.Int64
	pending.Store(int64(len(targets)))
	if len(targets) == 0 {
		close(done)
	}
	for i, target := range targets {
		i, target := i, target
		pool.PostTask(func() {
			// Once any task fails, later tasks finish early; the driver
			// reports the first error in stable order.
			if !failed.Load() {
				resolved := NewResolvedTargetData()
				text, err := RenderTargetRules(target, settings, resolved)
				if err != nil {
					failed.Store(true)
					errs[i] = err
				} else {
					results[i] = text
				}
			}
			if pending.Add(-1) == 0 {
				close(done)
			}
		})
	}
	<-done
	pool.Close()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	var rules strings.Builder
	for i, text := range results {
		if i > 0 {
			rules.WriteString("\n")
		}
		fmt.Fprintf(&rules, "# %s\n", targets[i].Label.UserVisibleName(false))
		rules.WriteString(text)
	}

	var root strings.Builder
	fmt.Fprintf(&root, "ninja_required_version = %s\n\n", ninjaRequiredVersion)
	root.WriteString("subninja toolchain.ninja\n")

	// The two files are independent; write them concurrently.
	var group errgroup.Group
	group.Go(func() error {
		_, err := WriteFileIfChanged(filepath.Join(outDir, "toolchain.ninja"),
			[]byte(rules.String()))
		return err
	})
	group.Go(func() error {
		_, err := WriteFileIfChanged(filepath.Join(outDir, "build.ninja"),
			[]byte(root.String()))
		return err
	})
	return group.Wait()
}
