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

// A TargetPublicPair is a compact (target, is_public) pair: the public
// bit rides in the low alignment bit of the target pointer.
type TargetPublicPair struct {
	p TaggedPtr[Target]
}

// MakeTargetPublicPair packs target and isPublic.
func MakeTargetPublicPair(target *Target, isPublic bool) TargetPublicPair {
	tag := uintptr(0)
	if isPublic {
		tag = 1
	}
	return TargetPublicPair{MakeTaggedPtr(target, tag)}
}

// Target returns the target pointer.
func (p TargetPublicPair) Target() *Target { return p.p.Ptr() }

// IsPublic returns the public flag.
func (p TargetPublicPair) IsPublic() bool { return p.p.Tag() != 0 }

// A TargetPublicPairList is the resolver's ordered list of pairs.
type TargetPublicPairList = listtools.List[TargetPublicPair]

// targetPublicPairListBuilder accumulates (target, is_public) pairs keyed
// by target. Appending a target that is already present may promote its
// public flag from false to true, never the reverse; the keyed identity
// (the target pointer) is immutable, which is what makes this narrow
// in-place mutation safe. Callers get no other way to modify entries.
type targetPublicPairListBuilder struct {
	pairs []TargetPublicPair
	index map[*Target]int
}

// append records (target, isPublic), promoting the stored flag if the
// target is already present and isPublic is true.
func (b *targetPublicPairListBuilder) append(target *Target, isPublic bool) {
	if i, ok := b.index[target]; ok {
		if isPublic && !b.pairs[i].IsPublic() {
			b.pairs[i] = MakeTargetPublicPair(target, true)
		}
		return
	}
	if b.index == nil {
		b.index = make(map[*Target]int)
	}
	b.index[target] = len(b.pairs)
	b.pairs = append(b.pairs, MakeTargetPublicPair(target, isPublic))
}

// appendInherited appends every pair of list, masking each pair's public
// flag with isPublic.
func (b *targetPublicPairListBuilder) appendInherited(list TargetPublicPairList, isPublic bool) {
	for _, pair := range list.Slice() {
		b.append(pair.Target(), isPublic && pair.IsPublic())
	}
}

// build returns the accumulated pairs in insertion order.
func (b *targetPublicPairListBuilder) build() TargetPublicPairList {
	pairs := b.pairs
	b.pairs = nil
	b.index = nil
	return listtools.FromSlice(pairs)
}
