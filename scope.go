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

// A Scope is the bag of named values a tool definition is initialized
// from. The configuration-language evaluator (external to this package)
// produces one Scope per tool block; tests construct them directly.
type Scope struct {
	loc    Location
	values map[string]scopeValue
}

type scopeValue struct {
	loc Location
	val any
}

// NewScope returns an empty scope whose own location is loc (used for
// errors about values that are missing entirely).
func NewScope(loc Location) *Scope {
	return &Scope{loc: loc, values: map[string]scopeValue{}}
}

// Set records a value. Valid kinds are string and []string.
func (s *Scope) Set(name string, val any, loc Location) {
	s.values[name] = scopeValue{loc: loc, val: val}
}

// Location returns the scope's own location.
func (s *Scope) Location() Location { return s.loc }

// GetString returns the named string value. ok is false when the value is
// absent; a present value of the wrong type is an error.
func (s *Scope) GetString(name string) (val string, loc Location, ok bool, err *Err) {
	v, present := s.values[name]
	if !present {
		return "", Location{}, false, nil
	}
	str, isStr := v.val.(string)
	if !isStr {
		return "", v.loc, false, errAt(v.loc, "%q must be a string", name)
	}
	return str, v.loc, true, nil
}

// GetStringList returns the named list-of-strings value.
func (s *Scope) GetStringList(name string) (val []string, loc Location, ok bool, err *Err) {
	v, present := s.values[name]
	if !present {
		return nil, Location{}, false, nil
	}
	list, isList := v.val.([]string)
	if !isList {
		return nil, v.loc, false, errAt(v.loc, "%q must be a list of strings", name)
	}
	return list, v.loc, true, nil
}
