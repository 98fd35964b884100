// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/tagforge/cmd/tagforge/cli"
)

func main() {
	os.Exit(run(os.Args[1:], newApp(os.Stdout, os.Stderr)))
}

// run executes the command line and returns the process exit code.
func run(args []string, a *app) int {
	err := a.root().Execute(args)
	if err == nil {
		return 0
	}
	// Commands that print their own output (like verify) return an
	// ExitError with the desired exit code.
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}
	var usage *cli.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(a.stderr, usage.Error())
		return 1
	}
	fmt.Fprintf(a.stderr, "error: %v\n", err)
	return 1
}

// app holds the process streams and terminal probes so commands can be
// exercised in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// isTerminal reports whether w is an interactive terminal.
	isTerminal func(w io.Writer) bool

	// newLogger builds the run's logger at the configured level.
	newLogger func(level slog.Leveler) *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: isTerminal,
		newLogger:  cli.NewCommandLogger,
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
