// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
	"github.com/bureau-foundation/tagforge/lib/manifest"
)

type verifyParams struct {
	cli.JSONOutput
	Global globalOptions
}

type verifyResult struct {
	Manifest   string              `json:"manifest"`
	Mismatches []manifest.Mismatch `json:"mismatches"`
}

func (a *app) verifyCommand(parent *globalOptions) *cli.Command {
	var params verifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Check generated files against a manifest",
		Description: `Re-hash every file listed in a generation manifest. Each missing or
changed file is printed and the exit code is 1.

The manifest path is the argument, or --manifest, or manifest.path
from the config file.`,
		Usage: "tagforge verify [flags] [manifest]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return &cli.UsageError{Usage: "tagforge verify [flags] [manifest]"}
			}
			env, err := a.configure(params.Global.over(*parent))
			if err != nil {
				return err
			}
			path := env.config.Manifest.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no manifest given (pass a path, --manifest, or set manifest.path)")
			}

			mismatches, err := manifest.Verify(path)
			if err != nil {
				return err
			}
			if mismatches == nil {
				mismatches = []manifest.Mismatch{}
			}
			if done, err := params.EmitJSON(a.stdout, verifyResult{Manifest: path, Mismatches: mismatches}); done {
				if err == nil && len(mismatches) > 0 {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			if len(mismatches) == 0 {
				fmt.Fprintf(a.stdout, "%s: all outputs match\n", path)
				return nil
			}
			for _, mismatch := range mismatches {
				fmt.Fprintln(a.stdout, mismatch.String())
			}
			return &cli.ExitError{Code: 1}
		},
	}
}
