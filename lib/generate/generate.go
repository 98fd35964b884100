// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/tagforge/lib/classhierarchy"
	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
	"github.com/bureau-foundation/tagforge/lib/emit"
	"github.com/bureau-foundation/tagforge/lib/manifest"
	"github.com/bureau-foundation/tagforge/lib/tagdef"
	"github.com/bureau-foundation/tagforge/lib/version"
)

// Support unit file names, written next to the record units.
const (
	EnumSourceName     = "enum.cpp"
	BitfieldSourceName = "bitfield.cpp"
)

// Options configure a run.
type Options struct {
	// Documents are the schema documents, in load order.
	Documents []string

	// DefinitionsPath receives the shared definitions header.
	DefinitionsPath string

	// AggregatePath receives the aggregate parser header.
	AggregatePath string

	// RecordDirectory receives the per-record units and the support
	// units. It is created if missing.
	RecordDirectory string

	// ExtractHidden includes hidden fields in authoring-form output.
	ExtractHidden bool

	Settings emit.Settings

	// Passes overrides the generation passes. Nil uses
	// [emit.DefaultPasses].
	Passes []emit.Pass

	// ManifestPath is where the manifest is written. Empty skips it.
	ManifestPath string
	Compression  manifest.CompressionTag

	Logger *slog.Logger
}

// Result describes a completed run.
type Result struct {
	Order *depgraph.Order

	// Files lists every generated file in write order, manifest
	// excluded.
	Files []string

	// Manifest is the run's manifest with paths as written.
	Manifest *manifest.Manifest
}

// Compilation is a loaded and resolved set of schema documents.
type Compilation struct {
	Catalog *definition.Catalog
	Order   *depgraph.Order

	// Expanded counts the reference fields whose classes were
	// expanded.
	Expanded int

	builder *manifest.Builder
	logger  *slog.Logger
}

// Compile loads documents in order, expands reference classes, and
// resolves the emission order. The first schema error aborts.
func Compile(documents []string, logger *slog.Logger) (*Compilation, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	builder := manifest.NewBuilder(version.Info())
	catalog, err := tagdef.Load(documents, tagdef.LoadOptions{
		Logger: logger,
		Loaded: builder.AddInput,
	})
	if err != nil {
		return nil, err
	}

	expanded := classhierarchy.NewExpander(nil).ExpandCatalog(catalog)
	order := depgraph.Resolve(catalog, logger)
	logger.Debug("resolved emission order",
		"records", len(order.Records),
		"expanded_references", expanded,
	)

	return &Compilation{
		Catalog:  catalog,
		Order:    order,
		Expanded: expanded,
		builder:  builder,
		logger:   logger,
	}, nil
}

// RecordOutput is one record's generated unit and the flattened fields
// it was generated from.
type RecordOutput struct {
	Fields []decorate.Descriptor
	Unit   *emit.Unit
}

// Record runs passes for the named record. Nil passes uses
// [emit.DefaultPasses].
func (c *Compilation) Record(name string, settings emit.Settings, extractHidden bool, passes []emit.Pass) (*RecordOutput, error) {
	resolved, ok := c.Order.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("record %q is not declared", name)
	}
	settings = settings.WithDefaults()
	if passes == nil {
		passes = emit.DefaultPasses()
	}
	engine := decorate.NewEngine(c.Catalog, settings.HEKNamespace)
	return c.record(resolved, engine, extractHidden, passes), nil
}

func (c *Compilation) record(resolved *depgraph.Resolved, engine *decorate.Engine, extractHidden bool, passes []emit.Pass) *RecordOutput {
	fields := engine.Flatten(resolved.Record)
	unit := emit.NewUnit(resolved.Record.Name)
	emit.Run(passes, &emit.Context{
		Record:        resolved.Record,
		Fields:        fields,
		Catalog:       c.Catalog,
		Order:         c.Order,
		Engine:        engine,
		ExtractHidden: extractHidden,
	}, unit)
	return &RecordOutput{Fields: fields, Unit: unit}
}

// Run performs a complete generation.
func Run(options Options) (*Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	compilation, err := Compile(options.Documents, logger)
	if err != nil {
		return nil, err
	}
	return compilation.Write(options)
}

// Write generates every file of the compilation. options.Documents and
// options.Logger are ignored. Call it at most once per compilation: the
// manifest accumulates every write.
func (c *Compilation) Write(options Options) (*Result, error) {
	settings := options.Settings.WithDefaults()
	passes := options.Passes
	if passes == nil {
		passes = emit.DefaultPasses()
	}
	if err := os.MkdirAll(options.RecordDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("creating record directory: %w", err)
	}

	w := &writer{builder: c.builder, logger: c.logger}

	if err := w.write(options.DefinitionsPath, emit.DefinitionsHeader(settings, c.Catalog, c.Order)); err != nil {
		return nil, err
	}
	if err := w.write(filepath.Join(options.RecordDirectory, EnumSourceName), emit.EnumSource(settings, c.Catalog)); err != nil {
		return nil, err
	}
	if err := w.write(filepath.Join(options.RecordDirectory, BitfieldSourceName), emit.BitfieldSource(settings, c.Catalog)); err != nil {
		return nil, err
	}

	engine := decorate.NewEngine(c.Catalog, settings.HEKNamespace)
	declarations := make([]emit.Declaration, 0, len(c.Order.Records))
	for _, resolved := range c.Order.Records {
		output := c.record(resolved, engine, options.ExtractHidden, passes)
		path := filepath.Join(options.RecordDirectory, resolved.Record.Name+".cpp")
		if err := w.write(path, emit.RecordSource(settings, output.Unit)); err != nil {
			return nil, err
		}
		declarations = append(declarations, emit.Declaration{
			Name:   resolved.Record.Name,
			Fields: output.Fields,
			Unit:   output.Unit,
		})
	}

	if err := w.write(options.AggregatePath, emit.AggregateHeader(settings, declarations)); err != nil {
		return nil, err
	}

	result := &Result{Order: c.Order, Files: w.files, Manifest: c.builder.Manifest()}
	if options.ManifestPath != "" {
		if err := manifest.Write(options.ManifestPath, result.Manifest, options.Compression); err != nil {
			return nil, err
		}
		c.logger.Debug("wrote manifest",
			"path", options.ManifestPath,
			"outputs", len(result.Manifest.Outputs),
			"compression", options.Compression.String(),
		)
	}
	c.logger.Info("generation complete",
		"records", len(c.Order.Records),
		"files", len(w.files),
	)
	return result, nil
}

// writer writes generated files and records them in the manifest.
type writer struct {
	builder *manifest.Builder
	logger  *slog.Logger
	files   []string
}

func (w *writer) write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	data := []byte(content)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.builder.AddOutput(path, data)
	w.files = append(w.files, path)
	w.logger.Debug("wrote generated file", "path", path, "bytes", len(data))
	return nil
}
