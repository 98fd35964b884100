// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/emit"
	"github.com/bureau-foundation/tagforge/lib/fuzzy"
)

type showParams struct {
	Global        globalOptions
	ExtractHidden bool   `flag:"extract-hidden" desc:"include hidden fields in authoring-form output"`
	Color         string `flag:"color" desc:"highlight output: auto, always, or never" default:"auto"`
}

func (a *app) showCommand(parent *globalOptions) *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print the generated sources of one record",
		Description: `Run every generation pass for one record in memory and print its
guarded declaration block followed by its definition source. Nothing
is written to disk.`,
		Usage: "tagforge show [flags] <record> <schema-doc>...",
		Examples: []cli.Example{
			{
				Description: "Inspect the weapon parser without regenerating",
				Command:     "tagforge show Weapon definitions/*.json | less -R",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return &cli.UsageError{Usage: "tagforge show [flags] <record> <schema-doc>..."}
			}
			colored, err := a.colorEnabled(params.Color)
			if err != nil {
				return err
			}
			env, err := a.configure(params.Global.over(*parent))
			if err != nil {
				return err
			}
			compilation, err := compile(env, args[1:])
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := compilation.Order.Lookup(name); !ok {
				return unknownRecord(name, compilation.Order.Names())
			}
			output, err := compilation.Record(name, env.settings, params.ExtractHidden, nil)
			if err != nil {
				return err
			}

			declaration := emit.AggregateHeader(env.settings, []emit.Declaration{{
				Name:   name,
				Fields: output.Fields,
				Unit:   output.Unit,
			}})
			source := declaration + "\n" + emit.RecordSource(env.settings, output.Unit)
			if colored {
				return a.highlight(a.stdout, source)
			}
			_, err = io.WriteString(a.stdout, source)
			return err
		},
	}
}

// unknownRecord suggests the closest declared name: fzf's matcher
// first, which handles abbreviations, then edit distance for typos.
func unknownRecord(name string, names []string) error {
	suggestion := fuzzy.Closest(name, names)
	if suggestion == "" {
		suggestion = cli.SuggestName(name, names)
	}
	if suggestion != "" {
		return fmt.Errorf("record %q is not declared (did you mean %q?)", name, suggestion)
	}
	return fmt.Errorf("record %q is not declared", name)
}

func (a *app) colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return a.isTerminal(a.stdout), nil
	default:
		return false, fmt.Errorf("--color must be auto, always, or never, got %q", mode)
	}
}

// highlight writes C++ source to w with terminal colors matched to the
// terminal's color profile.
func (a *app) highlight(w io.Writer, source string) error {
	formatter := "terminal256"
	switch termenv.NewOutput(w).ColorProfile() {
	case termenv.TrueColor:
		formatter = "terminal16m"
	case termenv.ANSI:
		formatter = "terminal16"
	}
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, source, "cpp", formatter, "monokai"); err != nil {
		return fmt.Errorf("highlighting: %w", err)
	}
	_, err := w.Write(buffer.Bytes())
	return err
}
