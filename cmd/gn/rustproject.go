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

package main

import (
	"fmt"

	"github.com/maruel/subcommands"

	"github.com/timniederhausen/gn"
)

var cmdRustProject = &subcommands.Command{
	UsageLine: "rustproject <out_dir>",
	ShortDesc: "write a rust-project.json for all Rust targets",
	LongDesc: `Writes a rust-project.json file describing every crate in the graph
description found in <out_dir>, for consumption by rust-analyzer.`,
	CommandRun: func() subcommands.CommandRun {
		return &rustProjectRun{}
	},
}

type rustProjectRun struct {
	subcommands.CommandRunBase
}

func (c *rustProjectRun) Run(a subcommands.Application, args []string, _ subcommands.Env) int {
	if len(args) != 1 {
		fmt.Fprintf(a.GetErr(), "%s: usage: gn %s\n", a.GetName(), cmdRustProject.UsageLine)
		return 1
	}
	graph, settings, err := loadGraph(args[0])
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
		return 1
	}
	if err := gn.RenderRustProjectFile(graph, settings, args[0]); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
		return 1
	}
	return 0
}
