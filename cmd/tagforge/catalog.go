// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/catalogdoc"
)

type catalogParams struct {
	Global globalOptions
	HTML   bool   `flag:"html" desc:"render HTML instead of Markdown"`
	Output string `flag:"output,o" desc:"write to this file instead of stdout"`
}

func (a *app) catalogCommand(parent *globalOptions) *cli.Command {
	var params catalogParams
	return &cli.Command{
		Name:    "catalog",
		Summary: "Render a reference catalog of the schema",
		Description: `Render every record (in emission order, with its flattened members),
enum, and bitfield as a Markdown reference, or as HTML with --html.`,
		Usage: "tagforge catalog [flags] <schema-doc>...",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("catalog", &params)
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

			document := []byte(catalogdoc.Markdown(compilation.Catalog, compilation.Order, env.settings.HEKNamespace))
			if params.HTML {
				document, err = catalogdoc.HTML(string(document))
				if err != nil {
					return err
				}
			}

			if params.Output == "" {
				_, err = a.stdout.Write(document)
				return err
			}
			if err := os.WriteFile(params.Output, document, 0o644); err != nil {
				return fmt.Errorf("writing catalog: %w", err)
			}
			env.logger.Info("wrote catalog", "path", params.Output, "bytes", len(document))
			return nil
		},
	}
}
