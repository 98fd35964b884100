// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tagforge/lib/testutil"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Namespace != "Invader::Parser" {
		t.Errorf("namespace = %q", cfg.Namespace)
	}
	if cfg.HEKNamespace != "HEK" {
		t.Errorf("hek_namespace = %q", cfg.HEKNamespace)
	}
	if cfg.GuardPrefix != "USE_" {
		t.Errorf("guard_prefix = %q", cfg.GuardPrefix)
	}
	if cfg.Manifest.Path != "" {
		t.Errorf("manifest enabled by default: %q", cfg.Manifest.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadWithoutEnvironmentReturnsDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Namespace != Default().Namespace {
		t.Errorf("namespace = %q, want default", cfg.Namespace)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "tagforge.yaml", "namespace: Forge::Parser\n")
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Namespace != "Forge::Parser" {
		t.Errorf("namespace = %q, want Forge::Parser", cfg.Namespace)
	}
	if cfg.GuardPrefix != "USE_" {
		t.Errorf("unset guard_prefix = %q, want default", cfg.GuardPrefix)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("TAGFORGE_TEST_OUT", "/tmp/run")

	path := testutil.WriteFile(t, t.TempDir(), "tagforge.yaml", `
license_header: |
  Copyright Example
  SPDX-License-Identifier: MIT
namespace: Example::Parser
hek_namespace: Layout
guard_prefix: WITH_
manifest:
  path: ${TAGFORGE_TEST_OUT}/manifest.tfm
  compression: zstd
log_level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !strings.HasPrefix(cfg.LicenseHeader, "Copyright Example\n") {
		t.Errorf("license_header = %q", cfg.LicenseHeader)
	}
	if cfg.HEKNamespace != "Layout" || cfg.GuardPrefix != "WITH_" {
		t.Errorf("hek_namespace/guard_prefix = %q/%q", cfg.HEKNamespace, cfg.GuardPrefix)
	}
	if cfg.Manifest.Path != "/tmp/run/manifest.tfm" {
		t.Errorf("manifest.path = %q, want expanded", cfg.Manifest.Path)
	}
	if cfg.Manifest.Compression != "zstd" {
		t.Errorf("manifest.compression = %q", cfg.Manifest.Compression)
	}
	level, err := cfg.Level()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("Level() = %v, %v; want debug", level, err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, t.TempDir(), "empty.yaml", "")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Namespace != Default().Namespace {
		t.Errorf("namespace = %q, want default", cfg.Namespace)
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, t.TempDir(), "typo.yaml", "namspace: Typo::Parser\n")
	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("unknown key accepted")
	}
	testutil.RequireContains(t, err.Error(), "namspace", "error names the key")
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestExpandVarsDefault(t *testing.T) {
	t.Setenv("TAGFORGE_TEST_UNSET", "")

	if got := expandVars("${TAGFORGE_TEST_UNSET:-out}/m.tfm"); got != "out/m.tfm" {
		t.Errorf("expandVars = %q, want out/m.tfm", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty namespace", func(c *Config) { c.Namespace = "" }, "namespace is required"},
		{"bad namespace", func(c *Config) { c.Namespace = "Invader::2nd" }, `"2nd" is not an identifier`},
		{"bad hek namespace", func(c *Config) { c.HEKNamespace = "H E K" }, "hek_namespace"},
		{"bad guard prefix", func(c *Config) { c.GuardPrefix = "-" }, "guard_prefix"},
		{"bad compression", func(c *Config) { c.Manifest.Compression = "gzip" }, "manifest.compression"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			test.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted the config")
			}
			testutil.RequireContains(t, err.Error(), test.want, test.name)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
