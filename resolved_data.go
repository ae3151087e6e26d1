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

import "github.com/timniederhausen/gn/listtools"

// targetInfo is the per-target memoization record. Each has* flag guards
// one independently computed group of fields.
type targetInfo struct {
	target *Target

	hasLibInfo       bool
	hasFrameworkInfo bool
	hasHardDeps      bool
	hasInheritedLibs bool
	hasRustLibs      bool

	libDirs listtools.List[SourceDir]
	libs    listtools.List[LibFile]

	frameworkDirs  listtools.List[SourceDir]
	frameworks     listtools.List[string]
	weakFrameworks listtools.List[string]

	hardDeps listtools.List[*Target]

	inheritedLibs TargetPublicPairList

	rustInheritedLibs   TargetPublicPairList
	rustInheritableLibs TargetPublicPairList
}

// ResolvedTargetData computes and memoizes the transitive link-time data
// of targets in a resolved graph: library and framework lists, hard
// dependencies, and the inherited library lists with their public/private
// propagation rules.
//
// An instance must only be used from one goroutine; run one instance per
// worker over the same (read-only, post-resolution) graph to parallelize.
// Requesting info for a target outside the graph treats it as a fresh
// leaf.
type ResolvedTargetData struct {
	// A { target -> targetInfo } map with on-demand entries. A UniqueList
	// with a parallel slice of info records beats a plain map here: the
	// index doubles as a dense, stable identifier and iteration stays in
	// insertion order.
	targets listtools.UniqueList[*Target]
	infos   []*targetInfo
}

// NewResolvedTargetData returns an empty resolver.
func NewResolvedTargetData() *ResolvedTargetData {
	return &ResolvedTargetData{}
}

func (r *ResolvedTargetData) getInfo(target *Target) *targetInfo {
	fresh, pos := r.targets.Append(target)
	if !fresh {
		return r.infos[pos]
	}
	info := &targetInfo{target: target}
	r.infos = append(r.infos, info)
	return info
}

// LibInfo bundles the link-time library answers for one target.
type LibInfo struct {
	AllLibDirs listtools.List[SourceDir]
	AllLibs    listtools.List[LibFile]
}

// GetLibInfo returns the target's transitive library directories and
// libraries.
func (r *ResolvedTargetData) GetLibInfo(target *Target) LibInfo {
	info := r.libInfoFor(target)
	return LibInfo{AllLibDirs: info.libDirs, AllLibs: info.libs}
}

// AllLibDirs returns the target's transitive library search directories.
func (r *ResolvedTargetData) AllLibDirs(target *Target) listtools.List[SourceDir] {
	return r.libInfoFor(target).libDirs
}

// AllLibs returns the target's transitive link libraries.
func (r *ResolvedTargetData) AllLibs(target *Target) listtools.List[LibFile] {
	return r.libInfoFor(target).libs
}

// FrameworkInfo bundles the framework answers for one target.
type FrameworkInfo struct {
	AllFrameworkDirs  listtools.List[SourceDir]
	AllFrameworks     listtools.List[string]
	AllWeakFrameworks listtools.List[string]
}

// GetFrameworkInfo returns the target's transitive framework data.
func (r *ResolvedTargetData) GetFrameworkInfo(target *Target) FrameworkInfo {
	info := r.frameworkInfoFor(target)
	return FrameworkInfo{
		AllFrameworkDirs:  info.frameworkDirs,
		AllFrameworks:     info.frameworks,
		AllWeakFrameworks: info.weakFrameworks,
	}
}

// AllFrameworkDirs returns the target's transitive framework directories.
func (r *ResolvedTargetData) AllFrameworkDirs(target *Target) listtools.List[SourceDir] {
	return r.frameworkInfoFor(target).frameworkDirs
}

// AllFrameworks returns the target's transitive frameworks.
func (r *ResolvedTargetData) AllFrameworks(target *Target) listtools.List[string] {
	return r.frameworkInfoFor(target).frameworks
}

// AllWeakFrameworks returns the target's transitive weak frameworks.
func (r *ResolvedTargetData) AllWeakFrameworks(target *Target) listtools.List[string] {
	return r.frameworkInfoFor(target).weakFrameworks
}

// RecursiveHardDeps returns the set of targets whose outputs must exist
// before this target starts compiling, in a deterministic
// (first-discovery) order.
func (r *ResolvedTargetData) RecursiveHardDeps(target *Target) listtools.List[*Target] {
	info := r.getInfo(target)
	if !info.hasHardDeps {
		r.computeHardDeps(info)
	}
	return info.hardDeps
}

// InheritedLibraries returns the ordered (target, is_public) list of all
// link-time libraries inherited by the target.
func (r *ResolvedTargetData) InheritedLibraries(target *Target) TargetPublicPairList {
	info := r.getInfo(target)
	if !info.hasInheritedLibs {
		r.computeInheritedLibs(info)
	}
	return info.inheritedLibs
}

// RustTransitiveInheritedLibs returns the ordered (target, is_public)
// list of Rust libraries the target has direct access to.
func (r *ResolvedTargetData) RustTransitiveInheritedLibs(target *Target) TargetPublicPairList {
	info := r.getInfo(target)
	if !info.hasRustLibs {
		r.computeRustLibs(info)
	}
	return info.rustInheritedLibs
}

// RustTransitiveInheritableLibs returns the subset of the above that
// targets depending on this one can see.
func (r *ResolvedTargetData) RustTransitiveInheritableLibs(target *Target) TargetPublicPairList {
	info := r.getInfo(target)
	if !info.hasRustLibs {
		r.computeRustLibs(info)
	}
	return info.rustInheritableLibs
}

func (r *ResolvedTargetData) libInfoFor(target *Target) *targetInfo {
	info := r.getInfo(target)
	if !info.hasLibInfo {
		r.computeLibInfo(info)
	}
	return info
}

// computeLibInfo gathers lib_dirs and libs: the target's own config
// values first, then recursively those of every linked dep that is either
// not final or a static library. A shared library hides its static-lib
// children from consumers; a static library forwards them because the
// linker resolves them at the final link.
func (r *ResolvedTargetData) computeLibInfo(info *targetInfo) {
	var allLibDirs listtools.UniqueList[SourceDir]
	var allLibs listtools.UniqueList[LibFile]

	info.target.VisitConfigValues(func(cv *ConfigValues) {
		allLibDirs.AppendAll(cv.LibDirs)
		allLibs.AppendAll(cv.Libs)
	})
	for _, dep := range info.target.LinkedDeps() {
		if !dep.IsFinal() || dep.Type == OutputStaticLibrary {
			depInfo := r.libInfoFor(dep)
			allLibDirs.AppendList(depInfo.libDirs)
			allLibs.AppendList(depInfo.libs)
		}
	}

	info.libDirs = allLibDirs.ReleaseList()
	info.libs = allLibs.ReleaseList()
	info.hasLibInfo = true
}

func (r *ResolvedTargetData) frameworkInfoFor(target *Target) *targetInfo {
	info := r.getInfo(target)
	if !info.hasFrameworkInfo {
		r.computeFrameworkInfo(info)
	}
	return info
}

// computeFrameworkInfo is computeLibInfo over framework dirs, frameworks,
// and weak frameworks.
func (r *ResolvedTargetData) computeFrameworkInfo(info *targetInfo) {
	var allFrameworkDirs listtools.UniqueList[SourceDir]
	var allFrameworks listtools.UniqueList[string]
	var allWeakFrameworks listtools.UniqueList[string]

	info.target.VisitConfigValues(func(cv *ConfigValues) {
		allFrameworkDirs.AppendAll(cv.FrameworkDirs)
		allFrameworks.AppendAll(cv.Frameworks)
		allWeakFrameworks.AppendAll(cv.WeakFrameworks)
	})
	for _, dep := range info.target.LinkedDeps() {
		if !dep.IsFinal() || dep.Type == OutputStaticLibrary {
			depInfo := r.frameworkInfoFor(dep)
			allFrameworkDirs.AppendList(depInfo.frameworkDirs)
			allFrameworks.AppendList(depInfo.frameworks)
			allWeakFrameworks.AppendList(depInfo.weakFrameworks)
		}
	}

	info.frameworkDirs = allFrameworkDirs.ReleaseList()
	info.frameworks = allFrameworks.ReleaseList()
	info.weakFrameworks = allWeakFrameworks.ReleaseList()
	info.hasFrameworkInfo = true
}

func (r *ResolvedTargetData) hardDepsFor(target *Target) *targetInfo {
	info := r.getInfo(target)
	if !info.hasHardDeps {
		r.computeHardDeps(info)
	}
	return info
}

func (r *ResolvedTargetData) computeHardDeps(info *targetInfo) {
	var allHardDeps listtools.UniqueList[*Target]
	for _, dep := range info.target.LinkedDeps() {
		// Direct hard dependencies.
		if info.target.HardDep || dep.HardDep {
			allHardDeps.Append(dep)
			continue
		}
		// A binary dep with no public headers gives dependents nothing to
		// include, so its hard deps need not gate their compiles. Targets
		// that build a Swift module still do: the generated header can be
		// consumed by the current target.
		if dep.IsBinary() && !dep.AllHeadersPublic &&
			len(dep.PublicHeaders) == 0 && !dep.BuildsSwiftModule {
			continue
		}

		// Recursive hard dependencies of all dependencies.
		depInfo := r.hardDepsFor(dep)
		allHardDeps.AppendList(depInfo.hardDeps)
	}
	info.hardDeps = allHardDeps.ReleaseList()
	info.hasHardDeps = true
}

func (r *ResolvedTargetData) inheritedLibsFor(target *Target) *targetInfo {
	info := r.getInfo(target)
	if !info.hasInheritedLibs {
		r.computeInheritedLibs(info)
	}
	return info
}

func (r *ResolvedTargetData) computeInheritedLibs(info *targetInfo) {
	var inherited targetPublicPairListBuilder

	r.computeInheritedLibsFor(info.target.PublicDeps, true, &inherited)
	r.computeInheritedLibsFor(info.target.PrivateDeps, false, &inherited)

	info.hasInheritedLibs = true
	info.inheritedLibs = inherited.build()
}

func (r *ResolvedTargetData) computeInheritedLibsFor(
	deps []*Target, isPublic bool, inherited *targetPublicPairListBuilder) {
	for _, dep := range deps {
		// Direct dependent libraries.
		if dep.Type == OutputStaticLibrary ||
			dep.Type == OutputSharedLibrary ||
			dep.Type == OutputRustLibrary ||
			dep.Type == OutputSourceSet ||
			(dep.Type == OutputBundle && dep.IsFrameworkBundle) {
			inherited.append(dep, isPublic)
		}
		if dep.Type == OutputSharedLibrary {
			// Shared library dependencies are inherited across public
			// shared library boundaries: in
			//   EXE -> INTERMEDIATE_SHLIB --[public]--> FINAL_SHLIB
			// the executable must link FINAL_SHLIB too, since the public
			// edge grants it use of FINAL_SHLIB's headers. A private edge
			// grants nothing, so nothing is propagated. Static libraries
			// and source sets stop here either way: they are linked into
			// the shared library itself.
			depInfo := r.inheritedLibsFor(dep)
			for _, pair := range depInfo.inheritedLibs.Slice() {
				if pair.Target().Type == OutputSharedLibrary && pair.IsPublic() {
					inherited.append(pair.Target(), isPublic)
				}
			}
		} else if !dep.IsFinal() {
			// The dep isn't linked, so propagate linked deps and libraries
			// up the tree. Proc macros are consumed by the compiler, not
			// the linker, and never propagate as link-time deps.
			depInfo := r.inheritedLibsFor(dep)
			for _, pair := range depInfo.inheritedLibs.Slice() {
				if pair.Target().Type != OutputRustProcMacro {
					inherited.append(pair.Target(), isPublic && pair.IsPublic())
				}
			}
		} else if dep.CompleteStaticLib {
			// Complete static libraries link in their non-final children,
			// so those must not be inherited; final children are not
			// linked in and are forwarded so consumers can link them.
			depInfo := r.inheritedLibsFor(dep)
			for _, pair := range depInfo.inheritedLibs.Slice() {
				if pair.Target().IsFinal() {
					inherited.append(pair.Target(), isPublic && pair.IsPublic())
				}
			}
		}
	}
}

func (r *ResolvedTargetData) rustLibsFor(target *Target) *targetInfo {
	info := r.getInfo(target)
	if !info.hasRustLibs {
		r.computeRustLibs(info)
	}
	return info
}

func (r *ResolvedTargetData) computeRustLibs(info *targetInfo) {
	var inherited, inheritable targetPublicPairListBuilder

	r.computeRustLibsFor(info.target.PublicDeps, true, &inherited, &inheritable)
	r.computeRustLibsFor(info.target.PrivateDeps, false, &inherited, &inheritable)

	info.hasRustLibs = true
	info.rustInheritedLibs = inherited.build()
	info.rustInheritableLibs = inheritable.build()
}

func (r *ResolvedTargetData) computeRustLibsFor(
	deps []*Target, isPublic bool,
	inherited, inheritable *targetPublicPairListBuilder) {
	for _, dep := range deps {
		switch dep.Type {
		case OutputStaticLibrary, OutputSharedLibrary, OutputSourceSet,
			OutputRustLibrary, OutputGroup:
			// The current target has direct access to dep regardless of
			// the edge's visibility, so inherited records it as public.
			// Targets depending on the current one only gain access when
			// the edge is public, which is what inheritable tracks.
			inherited.append(dep, true)
			inheritable.append(dep, isPublic)

			depInfo := r.rustLibsFor(dep)
			inherited.appendInherited(depInfo.rustInheritableLibs, true)
			inheritable.appendInherited(depInfo.rustInheritableLibs, isPublic)
		case OutputRustProcMacro:
			// A proc macro is inherited, but what it depends on is not:
			// the macro is only used during compilation and is never
			// linked into the target.
			inherited.append(dep, true)
			inheritable.append(dep, isPublic)
		}
	}
}
