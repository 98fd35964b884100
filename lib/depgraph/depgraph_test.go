// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package depgraph

import (
	"slices"
	"testing"

	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/testutil"
)

func sequence(name, target string) definition.Field {
	return definition.Field{Name: name, Type: definition.TypeSequence, Struct: target}
}

func index(name, target string) definition.Field {
	return definition.Field{Name: name, Type: definition.TypeIndex, Struct: target}
}

func catalogOf(records ...*definition.Record) *definition.Catalog {
	catalog := definition.NewCatalog()
	for _, record := range records {
		catalog.AddRecord(record)
	}
	return catalog
}

func position(t *testing.T, order *Order, name string) int {
	t.Helper()
	resolved, ok := order.Lookup(name)
	if !ok {
		t.Fatalf("%s missing from order %v", name, order.Names())
	}
	return resolved.Position
}

func TestResolveOrdersDependenciesFirst(t *testing.T) {
	t.Parallel()

	catalog := catalogOf(
		&definition.Record{Name: "Weapon", Inherits: "Item", Fields: []definition.Field{
			sequence("triggers", "WeaponTrigger"),
			index("trigger", "WeaponTrigger"),
		}},
		&definition.Record{Name: "WeaponTrigger", Fields: []definition.Field{
			sequence("firing effects", "FiringEffect"),
		}},
		&definition.Record{Name: "FiringEffect"},
		&definition.Record{Name: "Item", Inherits: "Object"},
		&definition.Record{Name: "Object"},
	)

	order := Resolve(catalog, nil)

	want := []string{"Object", "Item", "FiringEffect", "WeaponTrigger", "Weapon"}
	if !slices.Equal(order.Names(), want) {
		t.Errorf("order = %v, want %v", order.Names(), want)
	}
	for _, resolved := range order.Records {
		if resolved.Record.Inherits != "" &&
			position(t, order, resolved.Record.Inherits) >= resolved.Position {
			t.Errorf("%s precedes its parent", resolved.Record.Name)
		}
		for _, dependency := range resolved.Dependencies {
			if position(t, order, dependency) >= resolved.Position {
				t.Errorf("%s precedes its dependency %s", resolved.Record.Name, dependency)
			}
		}
	}

	weapon, _ := order.Lookup("Weapon")
	if !slices.Equal(weapon.Dependencies, []string{"Item", "WeaponTrigger"}) {
		t.Errorf("Weapon dependencies = %v", weapon.Dependencies)
	}
}

func TestResolveScansTheRecordBeingResolved(t *testing.T) {
	t.Parallel()

	// Outer is loaded first and pulls Middle in recursively. Middle's
	// own fields (not Outer's) must be scanned, so Inner lands before
	// Middle and Middle lists only Inner.
	catalog := catalogOf(
		&definition.Record{Name: "Outer", Fields: []definition.Field{sequence("middles", "Middle")}},
		&definition.Record{Name: "Middle", Fields: []definition.Field{sequence("inners", "Inner")}},
		&definition.Record{Name: "Inner"},
	)

	order := Resolve(catalog, nil)

	if !slices.Equal(order.Names(), []string{"Inner", "Middle", "Outer"}) {
		t.Errorf("order = %v", order.Names())
	}
	middle, _ := order.Lookup("Middle")
	if !slices.Equal(middle.Dependencies, []string{"Inner"}) {
		t.Errorf("Middle dependencies = %v, want [Inner]", middle.Dependencies)
	}
}

func TestResolveIndexTargetsAreResolvedRecursively(t *testing.T) {
	t.Parallel()

	catalog := catalogOf(
		&definition.Record{Name: "Scenario", Fields: []definition.Field{index("spawn", "SpawnPoint")}},
		&definition.Record{Name: "SpawnPoint", Inherits: "Point"},
		&definition.Record{Name: "Point"},
	)

	order := Resolve(catalog, nil)
	if !slices.Equal(order.Names(), []string{"Point", "SpawnPoint", "Scenario"}) {
		t.Errorf("order = %v", order.Names())
	}
}

func TestResolveDeduplicatesDependencies(t *testing.T) {
	t.Parallel()

	catalog := catalogOf(
		&definition.Record{Name: "Model", Inherits: "Region", Fields: []definition.Field{
			sequence("regions", "Region"),
			sequence("more regions", "Region"),
			index("region", "Region"),
		}},
		&definition.Record{Name: "Region"},
	)

	order := Resolve(catalog, nil)
	model, _ := order.Lookup("Model")
	if !slices.Equal(model.Dependencies, []string{"Region"}) {
		t.Errorf("dependencies = %v, want [Region]", model.Dependencies)
	}
	if len(order.Records) != 2 {
		t.Errorf("order has %d records, want 2", len(order.Records))
	}
}

func TestResolveWarnsOnDanglingDependency(t *testing.T) {
	t.Parallel()

	logger, capture := testutil.CaptureLogger()
	catalog := catalogOf(
		&definition.Record{Name: "Scenery", Fields: []definition.Field{sequence("ghosts", "Ghost")}},
	)

	order := Resolve(catalog, logger)

	scenery, ok := order.Lookup("Scenery")
	if !ok {
		t.Fatal("Scenery was not resolved")
	}
	if len(scenery.Dependencies) != 0 {
		t.Errorf("dangling dependency kept: %v", scenery.Dependencies)
	}
	warnings := capture.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %+v", len(warnings), warnings)
	}
	if warnings[0].Attributes["record"] != "Ghost" || warnings[0].Attributes["referenced_by"] != "Scenery" {
		t.Errorf("warning attributes = %v", warnings[0].Attributes)
	}
}

func TestResolveToleratesSentinel(t *testing.T) {
	t.Parallel()

	logger, capture := testutil.CaptureLogger()
	catalog := catalogOf(
		&definition.Record{Name: "Biped", Fields: []definition.Field{
			sequence("predicted resources", definition.PredictedResource),
		}},
	)

	order := Resolve(catalog, logger)

	if warnings := capture.Warnings(); len(warnings) != 0 {
		t.Errorf("sentinel produced warnings: %+v", warnings)
	}
	biped, _ := order.Lookup("Biped")
	if len(biped.Dependencies) != 0 {
		t.Errorf("sentinel kept as dependency: %v", biped.Dependencies)
	}
}

func TestResolveFollowsLoadOrderForIndependentRecords(t *testing.T) {
	t.Parallel()

	catalog := catalogOf(
		&definition.Record{Name: "Zeta"},
		&definition.Record{Name: "Alpha"},
		&definition.Record{Name: "Mid"},
	)
	order := Resolve(catalog, nil)
	if !slices.Equal(order.Names(), []string{"Zeta", "Alpha", "Mid"}) {
		t.Errorf("order = %v", order.Names())
	}
}

func TestGraphInProgressClearedAfterResolution(t *testing.T) {
	t.Parallel()

	catalog := catalogOf(
		&definition.Record{Name: "Child", Inherits: "Parent"},
		&definition.Record{Name: "Parent"},
	)
	graph := NewGraph(catalog, nil)
	if !graph.Add("Child") {
		t.Fatal("Add(Child) = false")
	}
	if graph.InProgress("Child") || graph.InProgress("Parent") {
		t.Error("in-progress markers left behind")
	}
	if graph.Add("Missing") {
		t.Error("Add(Missing) = true")
	}
}

func TestDependenciesOrder(t *testing.T) {
	t.Parallel()

	record := &definition.Record{
		Name:     "Vehicle",
		Inherits: "Unit",
		Fields: []definition.Field{
			index("seat", "Seat"),
			sequence("seats", "Seat"),
			sequence("suspension", "Suspension"),
			{Name: "index without target", Type: definition.TypeIndex},
			{Type: definition.TypePadding, Size: 4},
		},
	}
	got := Dependencies(record)
	if !slices.Equal(got, []string{"Unit", "Seat", "Suspension"}) {
		t.Errorf("Dependencies = %v", got)
	}
}
