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

// Command gn generates low-level build files from a resolved target
// graph description.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/subcommands"

	"github.com/timniederhausen/gn"
)

var application = &subcommands.DefaultApplication{
	Name:  "gn",
	Title: "Meta-build system generator.",
	// Keep in alphabetical order of their name.
	Commands: []*subcommands.Command{
		cmdGen,
		subcommands.CmdHelp,
		cmdMeta,
		cmdRustProject,
	},
}

func main() {
	os.Exit(subcommands.Run(application, nil))
}

// graphFileName is the stand-in for the configuration-language front
// end: a JSON description of the resolved graph, stored in the build
// directory.
const graphFileName = "graph.json"

// loadGraph reads the graph description from outDir.
func loadGraph(outDir string) (*gn.Graph, *gn.BuildSettings, error) {
	f, err := os.Open(filepath.Join(outDir, graphFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("opening graph description: %w", err)
	}
	defer f.Close()
	return gn.LoadGraph(f)
}

// commaListFlag accumulates comma-separated values across repeated uses
// of the same flag.
type commaListFlag struct {
	values []string
}

func (f *commaListFlag) String() string {
	return strings.Join(f.values, ",")
}

func (f *commaListFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			f.values = append(f.values, v)
		}
	}
	return nil
}
