// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalogdoc renders a resolved schema as a reference document:
// Markdown for reading in a repository, or HTML through goldmark.
package catalogdoc

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
)

// Markdown renders the catalog: records in resolved order with their
// flattened members, then enums, then bitfields.
func Markdown(catalog *definition.Catalog, order *depgraph.Order, namespace string) string {
	engine := decorate.NewEngine(catalog, namespace)

	var b strings.Builder
	b.WriteString("# Tag definitions\n\n")
	if len(catalog.Documents) > 0 {
		fmt.Fprintf(&b, "Documents: %s.\n\n", strings.Join(codeSpans(catalog.Documents), ", "))
	}

	b.WriteString("## Records\n\n")
	if len(order.Records) == 0 {
		b.WriteString("No records.\n\n")
	}
	for _, resolved := range order.Records {
		writeRecord(&b, engine, resolved)
	}

	if len(catalog.Enums) > 0 {
		b.WriteString("## Enums\n\n")
		for _, enum := range catalog.Enums {
			fmt.Fprintf(&b, "### %s\n\n", enum.Name)
			writeComment(&b, enum.Comment)
			b.WriteString("| Value | Label | Constant |\n|---:|---|---|\n")
			for index, option := range enum.Options {
				fmt.Fprintf(&b, "| %d | %s | `%s` |\n", index, cell(option), cell(enum.Name+"_"+enum.FormattedOptions[index]))
			}
			b.WriteString("\n")
		}
	}

	if len(catalog.Bitfields) > 0 {
		b.WriteString("## Bitfields\n\n")
		for _, bitfield := range catalog.Bitfields {
			fmt.Fprintf(&b, "### %s\n\n", bitfield.Name)
			writeComment(&b, bitfield.Comment)
			fmt.Fprintf(&b, "Storage: `std::uint%d_t`.\n\n", bitfield.StorageWidth())
			b.WriteString("| Bit | Label | Constant |\n|---:|---|---|\n")
			for bit, label := range bitfield.Fields {
				fmt.Fprintf(&b, "| %d | %s | `%s` |\n", bit, cell(label), cell(bitfield.Name+"_"+bitfield.FormattedFields[bit]))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeRecord(b *strings.Builder, engine *decorate.Engine, resolved *depgraph.Resolved) {
	record := resolved.Record
	fmt.Fprintf(b, "### %s\n\n", record.Name)

	var facts []string
	facts = append(facts, fmt.Sprintf("position %d", resolved.Position))
	if record.Inherits != "" {
		facts = append(facts, fmt.Sprintf("inherits `%s`", record.Inherits))
	}
	if record.Size > 0 {
		facts = append(facts, fmt.Sprintf("size 0x%X", record.Size))
	}
	if record.Document != "" {
		facts = append(facts, fmt.Sprintf("declared in `%s`", record.Document))
	}
	fmt.Fprintf(b, "%s.\n\n", capitalize(strings.Join(facts, ", ")))

	if len(resolved.Dependencies) > 0 {
		fmt.Fprintf(b, "Depends on: %s.\n\n", strings.Join(codeSpans(resolved.Dependencies), ", "))
	}
	if hooks := hooks(record.Capabilities); len(hooks) > 0 {
		fmt.Fprintf(b, "Hooks: %s.\n\n", strings.Join(codeSpans(hooks), ", "))
	}

	fields := engine.Flatten(record)
	if len(fields) == 0 {
		b.WriteString("No members.\n\n")
		return
	}
	b.WriteString("| Member | Type | Declared by | Notes |\n|---|---|---|---|\n")
	for index := range fields {
		descriptor := &fields[index]
		fmt.Fprintf(b, "| `%s` | `%s` | %s | %s |\n",
			descriptor.Member(),
			cell(declaredType(descriptor)),
			descriptor.Owner,
			cell(strings.Join(notes(descriptor), "; ")),
		)
	}
	b.WriteString("\n")
}

func declaredType(descriptor *decorate.Descriptor) string {
	if descriptor.IsArray() {
		return fmt.Sprintf("%s[%d]", descriptor.ElementType, descriptor.Count)
	}
	return descriptor.ElementType
}

func notes(descriptor *decorate.Descriptor) []string {
	field := descriptor.Field
	var notes []string
	if len(descriptor.Classes) > 0 {
		notes = append(notes, "classes: "+strings.Join(descriptor.Classes, ", "))
	}
	if field.NonNull {
		notes = append(notes, "non-null")
	}
	if field.Reflexive != "" {
		notes = append(notes, "indexes "+field.Reflexive)
	}
	if field.Minimum != nil {
		notes = append(notes, fmt.Sprintf("min %g", *field.Minimum))
	}
	if field.Maximum != nil {
		notes = append(notes, fmt.Sprintf("max %g", *field.Maximum))
	}
	if field.HasDefault() {
		notes = append(notes, "default "+string(bytes.TrimSpace(field.Default)))
	}
	if field.Unit != "" {
		notes = append(notes, "unit: "+field.Unit)
	}
	if field.CacheOnly {
		notes = append(notes, "cache only")
	}
	if field.Hidden {
		notes = append(notes, "hidden")
	}
	if field.ReadOnly {
		notes = append(notes, "read-only")
	}
	if field.Comment != "" {
		notes = append(notes, field.Comment)
	}
	return notes
}

func hooks(capabilities definition.Capabilities) []string {
	var names []string
	for _, hook := range []struct {
		enabled bool
		name    string
	}{
		{capabilities.PostCacheDeformat, "post_cache_deformat"},
		{capabilities.PostCacheParse, "post_cache_parse"},
		{capabilities.PreCompile, "pre_compile"},
		{capabilities.PostCompile, "post_compile"},
		{capabilities.PostprocessHEKData, "postprocess_hek_data"},
		{capabilities.ReadOnly, "read_only"},
	} {
		if hook.enabled {
			names = append(names, hook.name)
		}
	}
	return names
}

func writeComment(b *strings.Builder, comment string) {
	if comment != "" {
		fmt.Fprintf(b, "%s\n\n", comment)
	}
}

func codeSpans(names []string) []string {
	spans := make([]string, len(names))
	for index, name := range names {
		spans[index] = "`" + name + "`"
	}
	return spans
}

// cell escapes text for a table cell.
func cell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", " ")
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithXHTML()),
		)
	})
	return markdownInstance
}

// HTML renders Markdown output as a standalone HTML page.
func HTML(markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := getMarkdown().Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("rendering catalog: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Tag definitions</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
