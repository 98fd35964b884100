// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"fmt"

	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
)

// Entry is one record as the browser shows it.
type Entry struct {
	Name         string
	Position     int
	Inherits     string
	Document     string
	Dependencies []string
	Members      []Member
}

// Member is one flattened member of a record.
type Member struct {
	Name  string
	Type  string
	Owner string
	Kind  definition.FieldKind
}

// Entries builds the browser entries for every record in order.
func Entries(catalog *definition.Catalog, order *depgraph.Order, namespace string) []Entry {
	engine := decorate.NewEngine(catalog, namespace)
	entries := make([]Entry, 0, len(order.Records))
	for _, resolved := range order.Records {
		record := resolved.Record
		entry := Entry{
			Name:         record.Name,
			Position:     resolved.Position,
			Inherits:     record.Inherits,
			Document:     record.Document,
			Dependencies: resolved.Dependencies,
		}
		fields := engine.Flatten(record)
		for index := range fields {
			descriptor := &fields[index]
			typeName := descriptor.ElementType
			if descriptor.IsArray() {
				typeName = fmt.Sprintf("%s[%d]", typeName, descriptor.Count)
			}
			entry.Members = append(entry.Members, Member{
				Name:  descriptor.Member(),
				Type:  typeName,
				Owner: descriptor.Owner,
				Kind:  descriptor.Kind,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
