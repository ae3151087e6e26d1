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

	"github.com/timniederhausen/gn/pathtools"
)

// A Value is one metadata datum: a string, bool, or int64, a []Value
// list, or a map[string]Value scope.
type Value = any

// Metadata is the user-declared key -> value-list map attached to a
// target, together with the directory its declaration lives in (needed
// to resolve relative paths stored in values).
type Metadata struct {
	Contents  map[string][]Value
	SourceDir SourceDir
}

// WalkStep extracts this target's contribution to a metadata walk: the
// values stored under each data key (optionally rebased onto rebaseDir),
// and the next targets to visit. When no walk key is present, useDeps is
// true and the caller continues through direct deps and data deps.
func (m *Metadata) WalkStep(dataKeys, walkKeys []string,
	rebaseDir SourceDir) (result []Value, nextTargets []string, useDeps bool, err error) {

	// No metadata means nothing to find, and no walk keys to restrict
	// the walk.
	if len(m.Contents) == 0 {
		return nil, nil, true, nil
	}

	for _, key := range dataKeys {
		values, ok := m.Contents[key]
		if !ok {
			continue
		}
		if rebaseDir != "" {
			for _, v := range values {
				rebased, err := m.rebaseValue(rebaseDir, v)
				if err != nil {
					return nil, nil, false, err
				}
				result = append(result, rebased)
			}
		} else {
			result = append(result, values...)
		}
	}

	foundWalkKey := false
	for _, key := range walkKeys {
		values, ok := m.Contents[key]
		if !ok {
			continue
		}
		foundWalkKey = true
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				return nil, nil, false, fmt.Errorf(
					"metadata walk key %q must hold a list of strings", key)
			}
			nextTargets = append(nextTargets, s)
		}
	}

	return result, nextTargets, !foundWalkKey, nil
}

// rebaseValue rewrites string values as paths relative to rebaseDir,
// recursing through lists and scopes. Non-path value kinds pass through.
func (m *Metadata) rebaseValue(rebaseDir SourceDir, v Value) (Value, error) {
	switch val := v.(type) {
	case string:
		resolved := m.resolvePath(val)
		return pathtools.Rebase(resolved, string(rebaseDir)), nil
	case []Value:
		rebased := make([]Value, 0, len(val))
		for _, item := range val {
			r, err := m.rebaseValue(rebaseDir, item)
			if err != nil {
				return nil, err
			}
			rebased = append(rebased, r)
		}
		return rebased, nil
	case map[string]Value:
		rebased := make(map[string]Value, len(val))
		for key, item := range val {
			r, err := m.rebaseValue(rebaseDir, item)
			if err != nil {
				return nil, err
			}
			rebased[key] = r
		}
		return rebased, nil
	}
	return v, nil
}

// resolvePath makes a value's path source-absolute relative to the
// declaring directory.
func (m *Metadata) resolvePath(path string) string {
	if pathtools.IsSourceAbsolute(path) {
		return path
	}
	return string(m.SourceDir) + path
}

// WalkMetadata performs the depth-first metadata collection over the
// graph, starting from the given targets. It returns the concatenated
// values and the targets visited, both in visit order.
func WalkMetadata(graph *Graph, targets []*Target, dataKeys, walkKeys []string,
	rebaseDir SourceDir) ([]Value, []*Target, error) {

	var result []Value
	var walked []*Target
	visited := map[*Target]bool{}

	var walk func(t *Target) error
	walk = func(t *Target) error {
		if visited[t] {
			return nil
		}
		visited[t] = true
		walked = append(walked, t)

		values, nextTargets, useDeps, err := t.Metadata.WalkStep(dataKeys,
			walkKeys, rebaseDir)
		if err != nil {
			return err
		}
		result = append(result, values...)

		if useDeps {
			for _, dep := range t.LinkedDeps() {
				if err := walk(dep); err != nil {
					return err
				}
			}
			for _, dep := range t.DataDeps {
				if err := walk(dep); err != nil {
					return err
				}
			}
			return nil
		}
		for _, name := range nextTargets {
			label, perr := ParseLabel(name, t.Label.Dir)
			if perr != nil {
				return perr
			}
			next := graph.TargetByLabel(label)
			if next == nil {
				return fmt.Errorf("unknown target %q in metadata walk of %s",
					name, t.Label.UserVisibleName(false))
			}
			if err := walk(next); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range targets {
		if err := walk(t); err != nil {
			return nil, nil, err
		}
	}
	return result, walked, nil
}
