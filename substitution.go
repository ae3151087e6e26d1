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

import "strings"

// A Substitution is one "{{token}}" recognized inside command and output
// templates. Substitutions are singletons; identity comparison is used
// throughout.
type Substitution struct {
	// Name is the token as written, e.g. "{{source}}".
	Name string
	// NinjaName is the ninja variable the token expands through.
	NinjaName string
}

var (
	SubstitutionSource           = &Substitution{"{{source}}", "in"}
	SubstitutionSourceNamePart   = &Substitution{"{{source_name_part}}", "source_name_part"}
	SubstitutionSourceFilePart   = &Substitution{"{{source_file_part}}", "source_file_part"}
	SubstitutionOutput           = &Substitution{"{{output}}", "out"}
	SubstitutionOutputDir        = &Substitution{"{{output_dir}}", "output_dir"}
	SubstitutionOutputExtension  = &Substitution{"{{output_extension}}", "output_extension"}
	SubstitutionResponseFileName = &Substitution{"{{response_file_name}}", "rspfile"}

	SubstitutionRootOutDir       = &Substitution{"{{root_out_dir}}", "root_out_dir"}
	SubstitutionTargetOutDir     = &Substitution{"{{target_out_dir}}", "target_out_dir"}
	SubstitutionTargetOutputName = &Substitution{"{{target_output_name}}", "target_output_name"}

	SubstitutionCrateName            = &Substitution{"{{crate_name}}", "crate_name"}
	SubstitutionCrateType            = &Substitution{"{{crate_type}}", "crate_type"}
	SubstitutionEdition              = &Substitution{"{{edition}}", "edition"}
	SubstitutionExterns              = &Substitution{"{{externs}}", "externs"}
	SubstitutionRustcOutputExtension = &Substitution{"{{rustc_output_extension}}", "rustc_output_extension"}
	SubstitutionRustcOutputPrefix    = &Substitution{"{{rustc_output_prefix}}", "rustc_output_prefix"}
	SubstitutionRustDeps             = &Substitution{"{{rustdeps}}", "rustdeps"}
	SubstitutionRustFlags            = &Substitution{"{{rustflags}}", "rustflags"}
	SubstitutionRustEnv              = &Substitution{"{{rustenv}}", "rustenv"}
)

var allSubstitutions = []*Substitution{
	SubstitutionSource, SubstitutionSourceNamePart, SubstitutionSourceFilePart,
	SubstitutionOutput, SubstitutionOutputDir, SubstitutionOutputExtension,
	SubstitutionResponseFileName,
	SubstitutionRootOutDir, SubstitutionTargetOutDir, SubstitutionTargetOutputName,
	SubstitutionCrateName, SubstitutionCrateType, SubstitutionEdition,
	SubstitutionExterns, SubstitutionRustcOutputExtension,
	SubstitutionRustcOutputPrefix, SubstitutionRustDeps,
	SubstitutionRustFlags, SubstitutionRustEnv,
}

var substitutionsByName = func() map[string]*Substitution {
	m := make(map[string]*Substitution, len(allSubstitutions))
	for _, s := range allSubstitutions {
		m[s.Name] = s
	}
	return m
}()

// IsValidToolSubstitution reports whether sub may appear in any tool's
// templates (the shared whitelist every variant starts from).
func IsValidToolSubstitution(sub *Substitution) bool {
	switch sub {
	case SubstitutionOutput, SubstitutionOutputDir, SubstitutionOutputExtension,
		SubstitutionResponseFileName, SubstitutionRootOutDir,
		SubstitutionTargetOutDir, SubstitutionTargetOutputName:
		return true
	}
	return false
}

// IsValidSourceSubstitution reports whether sub expands per source file.
func IsValidSourceSubstitution(sub *Substitution) bool {
	switch sub {
	case SubstitutionSource, SubstitutionSourceNamePart, SubstitutionSourceFilePart:
		return true
	}
	return false
}

// IsValidRustSubstitution reports whether sub may appear in a Rust tool's
// templates.
func IsValidRustSubstitution(sub *Substitution) bool {
	if IsValidToolSubstitution(sub) || IsValidSourceSubstitution(sub) {
		return true
	}
	switch sub {
	case SubstitutionCrateName, SubstitutionCrateType, SubstitutionEdition,
		SubstitutionExterns, SubstitutionRustcOutputExtension,
		SubstitutionRustcOutputPrefix, SubstitutionRustDeps,
		SubstitutionRustFlags, SubstitutionRustEnv:
		return true
	}
	return false
}

// A patternSegment is either a literal or one substitution.
type patternSegment struct {
	literal string
	sub     *Substitution
}

// A SubstitutionPattern is a parsed template: a sequence of literals and
// substitution tokens.
type SubstitutionPattern struct {
	segments []patternSegment
	str      string
}

// ParseSubstitutionPattern parses a template string, rejecting unknown
// tokens.
func ParseSubstitutionPattern(s string, loc Location) (SubstitutionPattern, *Err) {
	var p SubstitutionPattern
	p.str = s
	rest := s
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			return SubstitutionPattern{}, errAt(loc,
				"unterminated substitution in %q", s)
		}
		token := rest[open : open+end+2]
		sub, ok := substitutionsByName[token]
		if !ok {
			return SubstitutionPattern{}, errAt(loc,
				"unknown substitution pattern %s", token).withHelp(
				"You used the pattern " + token + " which is not valid.")
		}
		if open > 0 {
			p.segments = append(p.segments, patternSegment{literal: rest[:open]})
		}
		p.segments = append(p.segments, patternSegment{sub: sub})
		rest = rest[open+end+2:]
	}
	if rest != "" {
		p.segments = append(p.segments, patternSegment{literal: rest})
	}
	return p, nil
}

// Empty reports whether the pattern was never set.
func (p SubstitutionPattern) Empty() bool {
	return len(p.segments) == 0 && p.str == ""
}

// String returns the original template text.
func (p SubstitutionPattern) String() string { return p.str }

// Required returns the distinct substitutions the pattern references.
func (p SubstitutionPattern) Required() []*Substitution {
	var subs []*Substitution
	for _, seg := range p.segments {
		if seg.sub == nil {
			continue
		}
		dup := false
		for _, s := range subs {
			if s == seg.sub {
				dup = true
				break
			}
		}
		if !dup {
			subs = append(subs, seg.sub)
		}
	}
	return subs
}

// Apply expands the pattern, resolving each substitution through value.
func (p SubstitutionPattern) Apply(value func(*Substitution) string) string {
	var sb strings.Builder
	for _, seg := range p.segments {
		if seg.sub != nil {
			sb.WriteString(value(seg.sub))
		} else {
			sb.WriteString(seg.literal)
		}
	}
	return sb.String()
}

// A SubstitutionList is a parsed list of patterns, as used for tool
// outputs.
type SubstitutionList struct {
	Patterns []SubstitutionPattern
}

// ParseSubstitutionList parses each element of values.
func ParseSubstitutionList(values []string, loc Location) (SubstitutionList, *Err) {
	var l SubstitutionList
	for _, v := range values {
		p, err := ParseSubstitutionPattern(v, loc)
		if err != nil {
			return SubstitutionList{}, err
		}
		l.Patterns = append(l.Patterns, p)
	}
	return l, nil
}

// Required returns the distinct substitutions used across all patterns.
func (l SubstitutionList) Required() []*Substitution {
	var subs []*Substitution
	seen := map[*Substitution]bool{}
	for _, p := range l.Patterns {
		for _, s := range p.Required() {
			if !seen[s] {
				seen[s] = true
				subs = append(subs, s)
			}
		}
	}
	return subs
}

// Contains reports whether the list has a pattern with the exact same
// template text as p.
func (l SubstitutionList) Contains(p SubstitutionPattern) bool {
	for _, q := range l.Patterns {
		if q.str == p.str {
			return true
		}
	}
	return false
}

// SubstitutionBits summarizes which substitutions a tool or toolchain
// references anywhere in its templates.
type SubstitutionBits map[*Substitution]bool

// Set marks sub as used.
func (b SubstitutionBits) Set(sub *Substitution) { b[sub] = true }

// Used reports whether sub is referenced.
func (b SubstitutionBits) Used(sub *Substitution) bool { return b[sub] }

// MergeFrom ors other into b.
func (b SubstitutionBits) MergeFrom(other SubstitutionBits) {
	for s, used := range other {
		if used {
			b[s] = true
		}
	}
}
