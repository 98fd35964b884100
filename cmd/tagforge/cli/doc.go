// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the tagforge binary.
//
// A [Command] is a node in the command tree. A node may have both a Run
// function and subcommands: the root command runs the positional
// generator unless its first positional argument names a subcommand
// exactly. Flags are parsed with pflag; flags of a command come before
// its positional arguments.
//
// Flags can be declared on a params struct with `flag`, `desc`, and
// `default` tags and bound with [FlagsFromParams]. Embedding
// [JSONOutput] adds --json.
//
// Errors returned by Run are printed by main as "error: ..." with exit
// code 1. An [ExitError] carries a specific code without a message, for
// commands that have already written their own output.
package cli
