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
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/subcommands"

	"github.com/timniederhausen/gn"
)

var cmdMeta = &subcommands.Command{
	UsageLine: "meta <out_dir> <target>... --data=<key>[,<key>...] [--walk=<key>[,<key>...]] [--rebase-files]",
	ShortDesc: "list target metadata collection results",
	LongDesc: `Lists collected metadata of all given targets for the given data
key(s), collecting metadata dependencies as specified by the given walk
key(s). With --rebase-files, string values are rewritten as paths
relative to the build directory.`,
	CommandRun: func() subcommands.CommandRun {
		r := &metaRun{}
		r.Flags.Var(&r.dataKeys, "data", "comma-separated list of data keys to collect")
		r.Flags.Var(&r.walkKeys, "walk", "comma-separated list of walk keys to follow")
		r.Flags.BoolVar(&r.rebaseFiles, "rebase-files", false,
			"rewrite string values as paths relative to the build directory")
		return r
	},
}

type metaRun struct {
	subcommands.CommandRunBase
	dataKeys    commaListFlag
	walkKeys    commaListFlag
	rebaseFiles bool
}

func (c *metaRun) Run(a subcommands.Application, args []string, _ subcommands.Env) int {
	if err := c.main(a, args); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), err)
		return 1
	}
	return 0
}

func (c *metaRun) main(a subcommands.Application, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: gn %s", cmdMeta.UsageLine)
	}
	if len(c.dataKeys.values) == 0 {
		return fmt.Errorf("at least one --data key is required")
	}

	graph, settings, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	var targets []*gn.Target
	for _, name := range args[1:] {
		target, terr := graph.ResolveTargetFromString(name)
		if terr != nil {
			return terr
		}
		targets = append(targets, target)
	}

	var rebaseDir gn.SourceDir
	if c.rebaseFiles {
		rebaseDir = settings.BuildDir
	}

	values, walked, werr := gn.WalkMetadata(graph, targets,
		c.dataKeys.values, c.walkKeys.values, rebaseDir)
	if werr != nil {
		return werr
	}

	out := a.GetOut()
	fmt.Fprintf(out, "Metadata values\n")
	for _, value := range values {
		fmt.Fprintf(out, "\n%s\n", formatValue(value, false))
	}

	fmt.Fprintf(out, "\nExtracted from:\n")
	for _, target := range walked {
		fmt.Fprintf(out, "%s\n", target.Label.UserVisibleName(true))
	}
	fmt.Fprintf(out, "\nusing data keys:\n%s\n", strings.Join(c.dataKeys.values, ", "))
	if len(c.walkKeys.values) > 0 {
		fmt.Fprintf(out, "\nand using walk keys:\n%s\n", strings.Join(c.walkKeys.values, ", "))
	}
	return nil
}

// formatValue renders a metadata value for display. Top-level strings
// print raw; strings nested in lists and scopes are quoted.
func formatValue(v gn.Value, quoteStrings bool) string {
	switch val := v.(type) {
	case string:
		if quoteStrings {
			return strconv.Quote(val)
		}
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatInt(int64(val), 10)
	case []gn.Value:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item, true)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]gn.Value:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("{\n")
		for _, key := range keys {
			fmt.Fprintf(&sb, "  %s = %s\n", key, formatValue(val[key], true))
		}
		sb.WriteString("}")
		return sb.String()
	}
	return fmt.Sprintf("%v", v)
}
