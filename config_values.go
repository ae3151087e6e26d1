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

// ConfigValues holds the flag-like settings that configs and targets
// contribute to compilation and linking.
type ConfigValues struct {
	LibDirs        []SourceDir
	Libs           []LibFile
	FrameworkDirs  []SourceDir
	Frameworks     []string
	WeakFrameworks []string
	Rustflags      []string
	Rustenv        []string
	Inputs         []SourceFile
}

// A Config is a named bundle of ConfigValues applied to targets.
type Config struct {
	Label  Label
	Values ConfigValues
}

// VisitConfigValues calls f for the target's own values and then for each
// attached config, in declaration order. This is the canonical iteration
// order for everything derived from configs, so outputs built from it are
// deterministic.
func (t *Target) VisitConfigValues(f func(*ConfigValues)) {
	f(&t.OwnValues)
	for _, c := range t.Configs {
		f(&c.Values)
	}
}
