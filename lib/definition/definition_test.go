// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import (
	"encoding/json"
	"testing"
)

func TestFieldKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  FieldKind
	}{
		{"int8", FieldInteger},
		{"uint64", FieldInteger},
		{"float", FieldFloat},
		{"TagDependency", FieldReference},
		{"TagReflexive", FieldSequence},
		{"TagDataOffset", FieldRawBuffer},
		{"Index", FieldIndex},
		{"pad", FieldPadding},
		{"Point3D", FieldValue},
		{"int128", FieldValue},
	}
	for _, test := range tests {
		field := Field{Name: "x", Type: test.token}
		if got := field.Kind(); got != test.want {
			t.Errorf("Kind(%q) = %v, want %v", test.token, got, test.want)
		}
	}
}

func TestFieldDefaultPresence(t *testing.T) {
	t.Parallel()

	var withNull, without Field
	if err := json.Unmarshal([]byte(`{"name":"a","type":"float","default":null}`), &withNull); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"name":"a","type":"float"}`), &without); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !withNull.HasDefault() {
		t.Error("a null default key should still count as present")
	}
	if without.HasDefault() {
		t.Error("absent default key reported as present")
	}
}

func TestFieldDefaultValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{`1.5`, []string{"1.5"}, false},
		{`[1, 2.25]`, []string{"1", "2.25"}, false},
		{`null`, nil, false},
		{`"fast"`, nil, true},
		{`[1, "x"]`, nil, true},
	}
	for _, test := range tests {
		field := Field{Name: "speed", Type: "float", Default: json.RawMessage(test.raw)}
		values, err := field.DefaultValues()
		if test.wantErr {
			if err == nil {
				t.Errorf("DefaultValues(%s): expected error", test.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("DefaultValues(%s): %v", test.raw, err)
			continue
		}
		if len(values) != len(test.want) {
			t.Errorf("DefaultValues(%s) = %v, want %v", test.raw, values, test.want)
			continue
		}
		for i := range values {
			if values[i].String() != test.want[i] {
				t.Errorf("DefaultValues(%s)[%d] = %s, want %s", test.raw, i, values[i], test.want[i])
			}
		}
	}
}

func TestRecordCapabilitiesInline(t *testing.T) {
	t.Parallel()

	var record Record
	data := `{"name":"weapon","inherits":"item","pre_compile":true,"read_only":true,"fields":[]}`
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !record.PreCompile || !record.ReadOnly || record.PostCompile {
		t.Errorf("capabilities = %+v", record.Capabilities)
	}
	if record.Inherits != "item" {
		t.Errorf("Inherits = %q", record.Inherits)
	}
}

func TestCatalogFirstDeclarationWins(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	first := &Record{Name: "Dup", Title: "first"}
	catalog.AddRecord(first)
	catalog.AddRecord(&Record{Name: "Dup", Title: "second"})

	got, ok := catalog.Record("Dup")
	if !ok || got != first {
		t.Fatalf("Record(Dup) = %+v, want the first declaration", got)
	}
	if len(catalog.Records) != 2 {
		t.Errorf("Records has %d entries, want 2", len(catalog.Records))
	}
}

func TestCatalogAncestors(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog()
	object := &Record{Name: "object"}
	unit := &Record{Name: "unit", Inherits: "object"}
	biped := &Record{Name: "biped", Inherits: "unit"}
	orphan := &Record{Name: "orphan", Inherits: "missing"}
	for _, record := range []*Record{object, unit, biped, orphan} {
		catalog.AddRecord(record)
	}

	chain := catalog.Ancestors(biped)
	if len(chain) != 2 || chain[0] != object || chain[1] != unit {
		t.Errorf("Ancestors(biped) = %v, want [object unit]", names(chain))
	}
	if chain := catalog.Ancestors(orphan); len(chain) != 0 {
		t.Errorf("Ancestors(orphan) = %v, want empty", names(chain))
	}
}

func names(records []*Record) []string {
	result := make([]string, len(records))
	for i, record := range records {
		result[i] = record.Name
	}
	return result
}
