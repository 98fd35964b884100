// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "TAGFORGE_CONFIG"

// Config is the generator configuration.
type Config struct {
	// LicenseHeader is written as line comments at the top of every
	// generated file.
	// Default: SPDX-License-Identifier: GPL-3.0-only
	LicenseHeader string `yaml:"license_header"`

	// Namespace holds the generated parser types.
	// Default: Invader::Parser
	Namespace string `yaml:"namespace"`

	// HEKNamespace holds the endian-templated layout types, as a
	// sibling of Namespace's last component.
	// Default: HEK
	HEKNamespace string `yaml:"hek_namespace"`

	// GuardPrefix is prepended to a record name to form the symbol
	// that opts a translation unit into its declaration.
	// Default: USE_
	GuardPrefix string `yaml:"guard_prefix"`

	// Manifest configures the generation manifest.
	Manifest ManifestConfig `yaml:"manifest"`

	// LogLevel is debug, info, warn, or error.
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// ManifestConfig configures the generation manifest.
type ManifestConfig struct {
	// Path is where the manifest is written. Empty disables it.
	Path string `yaml:"path"`

	// Compression is none, lz4, or zstd.
	// Default: none
	Compression string `yaml:"compression"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LicenseHeader: "SPDX-License-Identifier: GPL-3.0-only",
		Namespace:     "Invader::Parser",
		HEKNamespace:  "HEK",
		GuardPrefix:   "USE_",
		Manifest: ManifestConfig{
			Compression: "none",
		},
		LogLevel: "info",
	}
}

// Load loads the file named by TAGFORGE_CONFIG, or returns the defaults
// when it is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over the defaults and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file is a valid (all-default) config.
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) expandVariables() {
	c.Manifest.Path = expandVars(c.Manifest.Path)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// identifierPattern matches a C++ identifier.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Namespace == "" {
		errs = append(errs, errors.New("namespace is required"))
	}
	for _, component := range strings.Split(c.Namespace, "::") {
		if c.Namespace != "" && !identifierPattern.MatchString(component) {
			errs = append(errs, fmt.Errorf("namespace %q: %q is not an identifier", c.Namespace, component))
		}
	}
	if !identifierPattern.MatchString(c.HEKNamespace) {
		errs = append(errs, fmt.Errorf("hek_namespace %q is not an identifier", c.HEKNamespace))
	}
	if !identifierPattern.MatchString(c.GuardPrefix) {
		errs = append(errs, fmt.Errorf("guard_prefix %q is not an identifier prefix", c.GuardPrefix))
	}

	compressions := []string{"none", "lz4", "zstd"}
	if !contains(compressions, c.Manifest.Compression) {
		errs = append(errs, fmt.Errorf("manifest.compression must be one of: %v", compressions))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel parses debug, info, warn, or error (case-insensitive). The
// empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log_level %q must be one of: debug, info, warn, error", name)
	}
	return level, nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
