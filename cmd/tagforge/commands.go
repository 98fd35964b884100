// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/generate"
	"github.com/bureau-foundation/tagforge/lib/version"
)

const generateUsage = "tagforge [flags] <declarations-out> <aggregate-declarations-out> <per-record-output-dir> <extract-hidden:on|off> <schema-doc>..."

// subcommandNote explains how the positional form and subcommands share
// the first argument.
const subcommandNote = `A first argument spelled exactly like a command name (order, show,
catalog, verify, browse, version) runs that command. To write the
declarations header to a file with one of those names, give a path
such as ./order.`

// root builds the command tree.
func (a *app) root() *cli.Command {
	var params struct {
		Global globalOptions
	}
	global := &params.Global
	return &cli.Command{
		Name:    "tagforge",
		Summary: "Compile tag definition documents into parser sources",
		Description: `Compile tag definition documents into parser sources.

The positional form loads every schema document in order, resolves the
record dependency order, and writes the shared definitions header, one
source per record, the enum and bitfield support sources, and the
aggregate parser header.

` + subcommandNote,
		Usage:  generateUsage,
		Output: a.stderr,
		Examples: []cli.Example{
			{
				Description: "Generate sources with hidden data included",
				Command:     "tagforge hek/definition.hpp parser/parser.hpp parser/sources on definitions/*.json",
			},
			{
				Description: "Generate and record a manifest for later verification",
				Command:     "tagforge --manifest out/tagforge.manifest out/definition.hpp out/parser.hpp out/sources off definitions/*.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("tagforge", &params)
		},
		Run: func(args []string) error {
			return a.generate(*global, args)
		},
		Subcommands: []*cli.Command{
			a.orderCommand(global),
			a.showCommand(global),
			a.catalogCommand(global),
			a.verifyCommand(global),
			a.browseCommand(global),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Fprintf(a.stdout, "tagforge %s\n", version.Full())
					return nil
				},
			},
		},
	}
}

// generate is the positional form. Schema documents are optional: with
// none, the shared units are written empty.
func (a *app) generate(global globalOptions, args []string) error {
	if len(args) < 4 {
		return &cli.UsageError{Usage: generateUsage + "\n\n" + subcommandNote}
	}
	env, err := a.configure(global)
	if err != nil {
		return err
	}

	options := generate.Options{
		DefinitionsPath: args[0],
		AggregatePath:   args[1],
		RecordDirectory: args[2],
		ExtractHidden:   strings.EqualFold(args[3], "on"),
		Documents:       args[4:],
		Settings:        env.settings,
		ManifestPath:    env.config.Manifest.Path,
		Compression:     env.compression,
		Logger:          env.logger,
	}
	_, err = generate.Run(options)
	return err
}
