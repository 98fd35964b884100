// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tagforge/lib/config"
	"github.com/bureau-foundation/tagforge/lib/emit"
	"github.com/bureau-foundation/tagforge/lib/manifest"
)

// globalOptions are accepted by the root command and every subcommand.
type globalOptions struct {
	ConfigPath   string
	ManifestPath string
	LogLevel     string
}

func (g *globalOptions) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&g.ConfigPath, "config", "", "generator config file (default $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&g.ManifestPath, "manifest", "", "write a manifest of generated files to this path")
	flagSet.StringVar(&g.LogLevel, "log-level", "", "log level: debug, info, warn, or error")
}

// over returns g with empty values taken from parent. A subcommand's
// own flags win over those given before the subcommand name.
func (g globalOptions) over(parent globalOptions) globalOptions {
	if g.ConfigPath == "" {
		g.ConfigPath = parent.ConfigPath
	}
	if g.ManifestPath == "" {
		g.ManifestPath = parent.ManifestPath
	}
	if g.LogLevel == "" {
		g.LogLevel = parent.LogLevel
	}
	return g
}

// environment is the resolved configuration of one command run.
type environment struct {
	config      *config.Config
	settings    emit.Settings
	compression manifest.CompressionTag
	logger      *slog.Logger
}

// configure loads the config file and applies flag overrides.
func (a *app) configure(options globalOptions) (*environment, error) {
	var cfg *config.Config
	var err error
	if options.ConfigPath != "" {
		cfg, err = config.LoadFile(options.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if options.LogLevel != "" {
		cfg.LogLevel = options.LogLevel
	}
	if options.ManifestPath != "" {
		cfg.Manifest.Path = options.ManifestPath
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	compression, err := manifest.ParseCompressionTag(cfg.Manifest.Compression)
	if err != nil {
		return nil, err
	}

	return &environment{
		config: cfg,
		settings: emit.Settings{
			LicenseHeader: cfg.LicenseHeader,
			Namespace:     cfg.Namespace,
			HEKNamespace:  cfg.HEKNamespace,
			GuardPrefix:   cfg.GuardPrefix,
		},
		compression: compression,
		logger:      a.newLogger(level),
	}, nil
}
