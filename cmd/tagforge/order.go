// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/generate"
)

type orderParams struct {
	cli.JSONOutput
	Global globalOptions
}

// orderEntry is one row of `tagforge order --json`.
type orderEntry struct {
	Position     int      `json:"position"`
	Record       string   `json:"record"`
	Document     string   `json:"document"`
	Dependencies []string `json:"dependencies"`
}

func (a *app) orderCommand(parent *globalOptions) *cli.Command {
	var params orderParams
	return &cli.Command{
		Name:    "order",
		Summary: "Print the resolved record emission order",
		Description: `Print every record in the order its sources are generated, with the
records it depends on. A record always follows its dependencies.`,
		Usage: "tagforge order [flags] <schema-doc>...",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("order", &params)
		},
		Run: func(args []string) error {
			env, err := a.configure(params.Global.over(*parent))
			if err != nil {
				return err
			}
			compilation, err := compile(env, args)
			if err != nil {
				return err
			}

			entries := make([]orderEntry, 0, len(compilation.Order.Records))
			for _, resolved := range compilation.Order.Records {
				dependencies := resolved.Dependencies
				if dependencies == nil {
					dependencies = []string{}
				}
				entries = append(entries, orderEntry{
					Position:     resolved.Position,
					Record:       resolved.Record.Name,
					Document:     resolved.Record.Document,
					Dependencies: dependencies,
				})
			}
			if done, err := params.EmitJSON(a.stdout, entries); done {
				return err
			}

			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "POSITION\tRECORD\tDOCUMENT\tDEPENDS ON")
			for _, entry := range entries {
				dependencies := strings.Join(entry.Dependencies, ", ")
				if dependencies == "" {
					dependencies = "-"
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", entry.Position, entry.Record, entry.Document, dependencies)
			}
			return writer.Flush()
		},
	}
}

// compile loads and resolves documents for an inspection command.
func compile(env *environment, documents []string) (*generate.Compilation, error) {
	if len(documents) == 0 {
		return nil, errors.New("at least one schema document is required")
	}
	return generate.Compile(documents, env.logger)
}
