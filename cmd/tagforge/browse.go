// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/browser"
)

type browseParams struct {
	Global globalOptions
}

func (a *app) browseCommand(parent *globalOptions) *cli.Command {
	var params browseParams
	return &cli.Command{
		Name:    "browse",
		Summary: "Explore the resolved schema interactively",
		Description: `Open a full-screen browser of every record in emission order. Press /
to fuzzy-filter record names, tab to switch between the list and the
member pane, and q to quit.`,
		Usage: "tagforge browse [flags] <schema-doc>...",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("browse", &params)
		},
		Run: func(args []string) error {
			if !a.isTerminal(a.stdout) {
				return errors.New("browse needs an interactive terminal")
			}
			env, err := a.configure(params.Global.over(*parent))
			if err != nil {
				return err
			}
			compilation, err := compile(env, args)
			if err != nil {
				return err
			}
			return browser.Run(browser.Entries(compilation.Catalog, compilation.Order, env.settings.HEKNamespace))
		},
	}
}
