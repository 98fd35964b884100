// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"log/slog"

	"github.com/bureau-foundation/tagforge/lib/definition"
)

// Resolved is a record at its place in the emission order.
type Resolved struct {
	Record *definition.Record

	// Dependencies lists the records this one depends on that exist
	// in the order, deduplicated, in discovery order.
	Dependencies []string

	// Position is the zero-based index in the emission order.
	Position int
}

// Order is the resolved emission order.
type Order struct {
	Records []*Resolved

	byName map[string]*Resolved
}

// Lookup returns the resolved entry for a record name.
func (o *Order) Lookup(name string) (*Resolved, bool) {
	resolved, ok := o.byName[name]
	return resolved, ok
}

// Names returns the record names in emission order.
func (o *Order) Names() []string {
	names := make([]string, len(o.Records))
	for index, resolved := range o.Records {
		names[index] = resolved.Record.Name
	}
	return names
}

// node is one record in the graph. Edges are the raw dependency names
// discovered from the record's own declaration.
type node struct {
	record *definition.Record
	edges  []string
}

// Graph holds the records of a catalog as nodes and accumulates the
// emission order while resolving.
type Graph struct {
	nodes      map[string]*node
	inProgress map[string]bool
	order      *Order
	logger     *slog.Logger
}

// NewGraph builds one node per record name. When two records share a
// name the first declared wins.
func NewGraph(catalog *definition.Catalog, logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	graph := &Graph{
		nodes:      make(map[string]*node, len(catalog.Records)),
		inProgress: make(map[string]bool),
		order:      &Order{byName: make(map[string]*Resolved, len(catalog.Records))},
		logger:     logger,
	}
	for _, record := range catalog.Records {
		if _, exists := graph.nodes[record.Name]; exists {
			continue
		}
		graph.nodes[record.Name] = &node{record: record, edges: Dependencies(record)}
	}
	return graph
}

// Resolve orders every record in catalog. See the package documentation.
func Resolve(catalog *definition.Catalog, logger *slog.Logger) *Order {
	graph := NewGraph(catalog, logger)
	for _, record := range catalog.Records {
		graph.Add(record.Name)
	}
	return graph.Order()
}

// Add resolves name and its dependencies into the order. Returns false
// when name has no declaration.
func (g *Graph) Add(name string) bool {
	return g.add(name, "")
}

func (g *Graph) add(name, referencedBy string) bool {
	if _, placed := g.order.byName[name]; placed {
		return true
	}

	current, ok := g.nodes[name]
	if !ok {
		if name != definition.PredictedResource {
			g.logger.Warn("unknown record", "record", name, "referenced_by", referencedBy)
		}
		return false
	}

	g.inProgress[name] = true
	resolved := make([]string, 0, len(current.edges))
	for _, dependency := range current.edges {
		if g.add(dependency, current.record.Name) {
			resolved = append(resolved, dependency)
		}
	}
	delete(g.inProgress, name)

	entry := &Resolved{
		Record:       current.record,
		Dependencies: resolved,
		Position:     len(g.order.Records),
	}
	g.order.Records = append(g.order.Records, entry)
	g.order.byName[name] = entry
	return true
}

// InProgress reports whether name is on the current resolution path.
func (g *Graph) InProgress(name string) bool {
	return g.inProgress[name]
}

// Order returns the emission order accumulated so far.
func (g *Graph) Order() *Order {
	return g.order
}

// Dependencies returns the dependency names declared by record itself:
// the inherits parent, then TagReflexive targets, then Index targets,
// deduplicated in that order.
func Dependencies(record *definition.Record) []string {
	var dependencies []string
	seen := make(map[string]bool)
	appendOnce := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		dependencies = append(dependencies, name)
	}

	appendOnce(record.Inherits)
	for index := range record.Fields {
		if field := &record.Fields[index]; field.Kind() == definition.FieldSequence {
			appendOnce(field.Struct)
		}
	}
	for index := range record.Fields {
		if field := &record.Fields[index]; field.Kind() == definition.FieldIndex {
			appendOnce(field.Struct)
		}
	}
	return dependencies
}
