// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagdef

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/identifier"
)

// LoadOptions configures Load.
type LoadOptions struct {
	Logger *slog.Logger

	// Loaded, when set, receives each document's name and raw bytes
	// after the document parses.
	Loaded func(document string, data []byte)
}

// Load reads each path in order into a new catalog. The first error
// aborts the load.
func Load(paths []string, options LoadOptions) (*definition.Catalog, error) {
	catalog := definition.NewCatalog()
	for _, path := range paths {
		data, err := ReadFile(path, catalog)
		if err != nil {
			return nil, err
		}
		if options.Loaded != nil {
			options.Loaded(DocumentName(path), data)
		}
		if options.Logger != nil {
			options.Logger.Debug("loaded definition document",
				"path", path,
				"enums", len(catalog.Enums),
				"bitfields", len(catalog.Bitfields),
				"records", len(catalog.Records),
			)
		}
	}
	return catalog, nil
}

// ReadFile reads a JSONC document from disk, appends its declarations
// to catalog, and returns the document's bytes. The document is named
// after the file's base name up to the first dot.
func ReadFile(path string, catalog *definition.Catalog) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := Parse(DocumentName(path), data, catalog); err != nil {
		return nil, err
	}
	return data, nil
}

// DocumentName extracts a document name from a file path by stripping the
// directory and everything from the first dot. For example,
// "definitions/weapon.json" returns "weapon".
func DocumentName(path string) string {
	base := filepath.Base(path)
	if index := strings.IndexByte(base, '.'); index >= 0 {
		return base[:index]
	}
	return base
}

// Parse strips JSONC comments and trailing commas from data and appends
// each declaration to catalog, in order.
func Parse(document string, data []byte, catalog *definition.Catalog) error {
	stripped := jsonc.ToJSON(data)

	var declarations []json.RawMessage
	if err := json.Unmarshal(stripped, &declarations); err != nil {
		return &SchemaViolation{Document: document, Reason: fmt.Sprintf("parsing document: %v", err)}
	}

	catalog.Documents = append(catalog.Documents, document)
	for index, raw := range declarations {
		var header struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return &SchemaViolation{Document: document, Reason: fmt.Sprintf("declaration %d: %v", index, err)}
		}

		switch header.Type {
		case definition.KindEnum:
			enum, err := parseEnum(document, raw)
			if err != nil {
				return err
			}
			catalog.AddEnum(enum)
		case definition.KindBitfield:
			bitfield, err := parseBitfield(document, raw)
			if err != nil {
				return err
			}
			catalog.AddBitfield(bitfield)
		case definition.KindStruct:
			record, err := parseRecord(document, raw)
			if err != nil {
				return err
			}
			catalog.AddRecord(record)
		default:
			return &SchemaViolation{Document: document, Reason: fmt.Sprintf("unknown object type %q", header.Type)}
		}
	}
	return nil
}

func parseEnum(document string, raw json.RawMessage) (*definition.Enum, error) {
	var enum definition.Enum
	if err := json.Unmarshal(raw, &enum); err != nil {
		return nil, &SchemaViolation{Document: document, Reason: fmt.Sprintf("parsing enum: %v", err)}
	}
	if enum.Name == "" {
		return nil, &SchemaViolation{Document: document, Reason: "enum without a name"}
	}
	enum.Document = document
	enum.FormattedOptions = make([]string, len(enum.Options))
	for index, option := range enum.Options {
		enum.FormattedOptions[index] = identifier.EnumOption(option)
	}
	return &enum, nil
}

func parseBitfield(document string, raw json.RawMessage) (*definition.Bitfield, error) {
	var bitfield definition.Bitfield
	if err := json.Unmarshal(raw, &bitfield); err != nil {
		return nil, &SchemaViolation{Document: document, Reason: fmt.Sprintf("parsing bitfield: %v", err)}
	}
	if bitfield.Name == "" {
		return nil, &SchemaViolation{Document: document, Reason: "bitfield without a name"}
	}
	switch bitfield.Width {
	case 0, 8, 16, 32:
	default:
		return nil, &SchemaViolation{Document: document, Record: bitfield.Name,
			Reason: fmt.Sprintf("bitfield width must be 8, 16, or 32, got %d", bitfield.Width)}
	}
	if len(bitfield.Fields) > bitfield.StorageWidth() {
		return nil, &SchemaViolation{Document: document, Record: bitfield.Name,
			Reason: fmt.Sprintf("%d fields do not fit in %d bits", len(bitfield.Fields), bitfield.StorageWidth())}
	}
	bitfield.Document = document
	bitfield.FormattedFields = make([]string, len(bitfield.Fields))
	for index, label := range bitfield.Fields {
		bitfield.FormattedFields[index] = identifier.Member(label)
	}
	return &bitfield, nil
}

func parseRecord(document string, raw json.RawMessage) (*definition.Record, error) {
	var record definition.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &SchemaViolation{Document: document, Reason: fmt.Sprintf("parsing struct: %v", err)}
	}
	if record.Name == "" {
		return nil, &SchemaViolation{Document: document, Reason: "struct without a name"}
	}
	record.Document = document

	for index := range record.Fields {
		field := &record.Fields[index]
		if field.Type == "" {
			return nil, &SchemaViolation{Document: document, Record: record.Name, Field: field.Name,
				Reason: "field has no type"}
		}
		if field.CacheOnly && field.HasDefault() {
			return nil, &SchemaViolation{Document: document, Record: record.Name, Field: field.Name,
				Reason: "default AND cache_only cannot be used together in a field since they may be unexpectedly modified"}
		}
		if _, err := field.DefaultValues(); err != nil {
			return nil, &SchemaViolation{Document: document, Record: record.Name, Field: field.Name,
				Reason: err.Error()}
		}
		if field.Kind() == definition.FieldPadding {
			continue
		}
		if field.Name == "" {
			return nil, &SchemaViolation{Document: document, Record: record.Name,
				Reason: fmt.Sprintf("field %d has no name", index)}
		}
		field.MemberName = identifier.Member(field.Name)
	}
	return &record, nil
}
