// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "tagforge",
		Subcommands: []*Command{
			{Name: "version", Run: func(args []string) error { called = "version"; return nil }},
			{Name: "order", Run: func(args []string) error { called = "order"; return nil }},
		},
	}

	if err := root.Execute([]string{"order"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "order" {
		t.Errorf("dispatched to %q, want %q", called, "order")
	}
}

func TestCommand_Execute_RunFallthrough(t *testing.T) {
	var called string
	var receivedArgs []string
	var level string

	root := &Command{
		Name: "tagforge",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tagforge", pflag.ContinueOnError)
			flagSet.StringVar(&level, "log-level", "info", "")
			return flagSet
		},
		Run: func(args []string) error {
			called = "root"
			receivedArgs = args
			return nil
		},
		Subcommands: []*Command{
			{Name: "order", Run: func(args []string) error { called = "order"; return nil }},
		},
	}

	args := []string{"--log-level", "debug", "definitions.hpp", "parser.hpp", "off", "weapon.json"}
	if err := root.Execute(args); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "root" {
		t.Fatalf("dispatched to %q, want root", called)
	}
	if level != "debug" {
		t.Errorf("log-level = %q, want debug", level)
	}
	want := []string{"definitions.hpp", "parser.hpp", "off", "weapon.json"}
	if strings.Join(receivedArgs, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", receivedArgs, want)
	}
}

func TestCommand_Execute_RunFallthroughStopsAtPositional(t *testing.T) {
	var receivedArgs []string
	verbose := false

	root := &Command{
		Name: "tagforge",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tagforge", pflag.ContinueOnError)
			flagSet.BoolVar(&verbose, "verbose", false, "")
			return flagSet
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
		Subcommands: []*Command{{Name: "order"}},
	}

	// A document named like a flag after the first positional is left
	// for Run.
	if err := root.Execute([]string{"out.hpp", "--verbose"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if verbose {
		t.Error("--verbose after a positional should not be parsed")
	}
	if len(receivedArgs) != 2 || receivedArgs[1] != "--verbose" {
		t.Errorf("args = %v, want [out.hpp --verbose]", receivedArgs)
	}
}

func TestCommand_Execute_RunFallthroughDispatchesExactMatch(t *testing.T) {
	var called string
	root := &Command{
		Name: "tagforge",
		Run:  func(args []string) error { called = "root"; return nil },
		Subcommands: []*Command{
			{Name: "order", Run: func(args []string) error { called = "order"; return nil }},
		},
	}

	if err := root.Execute([]string{"order", "weapon.json"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "order" {
		t.Errorf("dispatched to %q, want order", called)
	}

	// A near miss is a positional for Run, never a suggestion.
	called = ""
	if err := root.Execute([]string{"ordr", "b", "c", "d"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "root" {
		t.Errorf("dispatched to %q, want root", called)
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "tagforge",
		Subcommands: []*Command{
			{
				Name: "catalog",
				Subcommands: []*Command{
					{Name: "html", Run: func(args []string) error { receivedArgs = args; return nil }},
				},
			},
		},
	}

	if err := root.Execute([]string{"catalog", "html", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "verify",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("verify", pflag.ContinueOnError)
			flagSet.String("manifest", "", "")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--manfest", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --manifest?") {
		t.Errorf("error = %q, want a --manifest suggestion", err)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name:        "tagforge",
		Subcommands: []*Command{{Name: "catalog"}, {Name: "verify"}},
	}

	err := root.Execute([]string{"catalgo"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "catalog"`) {
		t.Errorf("error = %q, want catalog suggestion", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:    "tagforge",
		Summary: "Tag definition compiler",
		Output:  &buffer,
		Run:     func(args []string) error { t.Fatal("Run should not be called"); return nil },
	}

	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buffer.String(), "Tag definition compiler") {
		t.Errorf("help output missing summary:\n%s", buffer.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	var buffer bytes.Buffer
	root := &Command{
		Name:        "tagforge",
		Output:      &buffer,
		Subcommands: []*Command{{Name: "order", Summary: "Print dependency order"}},
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("error = %v, want subcommand required", err)
	}
	if !strings.Contains(buffer.String(), "Print dependency order") {
		t.Errorf("help output missing subcommand listing:\n%s", buffer.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "tagforge",
		Description: "Compile tag definitions.",
		Examples: []Example{
			{Description: "Generate everything", Command: "tagforge defs.hpp parser.hpp off *.json"},
		},
		Subcommands: []*Command{
			{Name: "order", Summary: "Print dependency order"},
			{Name: "verify", Summary: "Check generated files"},
		},
	}

	var buffer bytes.Buffer
	root.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Compile tag definitions.",
		"tagforge <command> [flags]",
		"order",
		"Check generated files",
		"# Generate everything",
		"Run 'tagforge <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "tagforge"}
	catalog := &Command{Name: "catalog", parent: root}
	html := &Command{Name: "html", parent: catalog}

	if got := html.fullName(); got != "tagforge catalog html" {
		t.Errorf("fullName() = %q, want %q", got, "tagforge catalog html")
	}
}
