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

var cmdGen = &subcommands.Command{
	UsageLine: "gen <out_dir> [--workers=<n>]",
	ShortDesc: "generate ninja files from the resolved graph",
	LongDesc: `Renders build rules for every target in the graph description found
in <out_dir> and writes the ninja files there. Files whose content is
unchanged are not rewritten.`,
	CommandRun: func() subcommands.CommandRun {
		r := &genRun{}
		r.Flags.IntVar(&r.workers, "workers", 0,
			"number of parallel writer workers (0 = one per CPU)")
		return r
	},
}

type genRun struct {
	subcommands.CommandRunBase
	workers int
}

func (c *genRun) Run(a subcommands.Application, args []string, _ subcommands.Env) int {
	if len(args) != 1 {
		fmt.Fprintf(a.GetErr(), "%s: usage: gn %s\n", a.GetName(), cmdGen.UsageLine)
		return 1
	}
	graph, settings, err := loadGraph(args[0])
	if err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
		return 1
	}
	if err := gn.RenderBuildFiles(graph, settings, args[0], c.workers); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
		return 1
	}
	return 0
}
