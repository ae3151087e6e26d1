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

// Package gn turns a resolved target graph into low-level build files.
//
// The package consumes a graph of targets (binaries, libraries, actions,
// groups) that an external front-end has already parsed and resolved, and
// produces the per-target data needed to emit build rules for a downstream
// executor:
//
//   - ResolvedTargetData performs the memoized graph walks that derive a
//     target's transitive link-time libraries, frameworks, hard
//     dependencies, and inherited library lists, with the public/private
//     propagation rules each edge class requires.
//
//   - Tool, Toolchain, and the substitution machinery model how command
//     lines and output file names are synthesized per target type.
//
//   - The ninja writers render deterministic, byte-stable build manifest
//     entries for linkable targets, source sets, and groups, and a
//     rust-project.json description of all Rust crates in the graph.
//
// Rendering is parallelized across unrelated targets by a fixed-size
// WorkerPool; each worker owns its own ResolvedTargetData over the shared
// read-only graph.
package gn
