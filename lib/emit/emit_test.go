// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strings"
	"testing"

	"github.com/bureau-foundation/tagforge/lib/classhierarchy"
	"github.com/bureau-foundation/tagforge/lib/decorate"
	"github.com/bureau-foundation/tagforge/lib/definition"
	"github.com/bureau-foundation/tagforge/lib/depgraph"
	"github.com/bureau-foundation/tagforge/lib/tagdef"
	"github.com/bureau-foundation/tagforge/lib/testutil"
)

const weaponDocument = `[
	{"type": "enum", "name": "WeaponType", "options": ["none", "2 handed", "plasma rifle"]},
	{"type": "bitfield", "name": "WeaponFlags", "width": 16, "fields": ["must be readied", "1st person"]},
	{"type": "struct", "name": "Item", "fields": [
		{"name": "flags", "type": "WeaponFlags"},
		{"name": "pickup radius", "type": "float", "minimum": 0, "default": 1.5},
		{"type": "pad", "size": 4}
	], "size": 12},
	{"type": "struct", "name": "WeaponTrigger", "fields": [
		{"name": "rounds per second", "type": "float", "bounds": true},
		{"name": "projectile", "type": "TagDependency", "classes": ["object"], "non_null": true},
		{"name": "cache value", "type": "uint32", "cache_only": true}
	]},
	{"type": "struct", "name": "Weapon", "inherits": "Item", "title": "label",
		"post_cache_parse": true, "pre_compile": true, "postprocess_hek_data": true,
		"fields": [
		{"name": "label", "type": "TagString"},
		{"name": "type", "type": "WeaponType"},
		{"name": "triggers", "type": "TagReflexive", "struct": "WeaponTrigger"},
		{"name": "primary trigger", "type": "Index", "struct": "WeaponTrigger"},
		{"name": "predicted resources", "type": "TagReflexive", "struct": "PredictedResource"},
		{"name": "debug data", "type": "TagDataOffset", "hidden": true},
		{"name": "counts", "type": "int16", "count": 4, "maximum": 10}
	]}
]`

type fixture struct {
	catalog *definition.Catalog
	order   *depgraph.Order
	engine  *decorate.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newDocumentFixture(t, weaponDocument)
}

func newDocumentFixture(t *testing.T, document string) *fixture {
	t.Helper()
	catalog := definition.NewCatalog()
	if err := tagdef.Parse("weapon", []byte(document), catalog); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	classhierarchy.NewExpander(nil).ExpandCatalog(catalog)
	return &fixture{
		catalog: catalog,
		order:   depgraph.Resolve(catalog, nil),
		engine:  decorate.NewEngine(catalog, ""),
	}
}

func (f *fixture) context(t *testing.T, name string, extractHidden bool) *Context {
	t.Helper()
	record, ok := f.catalog.Record(name)
	if !ok {
		t.Fatalf("record %s not in catalog", name)
	}
	return &Context{
		Record:        record,
		Fields:        f.engine.Flatten(record),
		Catalog:       f.catalog,
		Order:         f.order,
		Engine:        f.engine,
		ExtractHidden: extractHidden,
	}
}

func (f *fixture) run(t *testing.T, name string, extractHidden bool, passes ...Pass) *Unit {
	t.Helper()
	if len(passes) == 0 {
		passes = DefaultPasses()
	}
	unit := NewUnit(name)
	Run(passes, f.context(t, name, extractHidden), unit)
	return unit
}

func TestStreamIndentation(t *testing.T) {
	t.Parallel()

	s := NewStream(0)
	s.Block("if(x)")
	s.Line("y = %d;", 1)
	s.Block("")
	s.Line("z;")
	s.EndBlock()
	s.EndBlockSuffix(";")

	want := "if(x) {\n    y = 1;\n    {\n        z;\n    }\n};\n"
	if got := s.String(); got != want {
		t.Errorf("stream = %q, want %q", got, want)
	}
}

func TestStreamLiteralPercent(t *testing.T) {
	t.Parallel()

	s := NewStream(1)
	s.Line("%s", `printf("%d");`)
	s.Line("x = %d %% 4;", 10)
	if got, want := s.String(), "    printf(\"%d\");\n    x = 10 % 4;\n"; got != want {
		t.Errorf("stream = %q, want %q", got, want)
	}
}

func TestDefaultPassOrder(t *testing.T) {
	t.Parallel()

	want := []string{
		"cache_deformat",
		"cache_format",
		"parse_cache_file_data",
		"generate_hek_tag_data",
		"parse_hek_tag_file",
		"parse_hek_tag_data",
		"refactor_reference",
		"parser_struct",
		"check_for_broken_enums",
		"check_for_invalid_references",
		"check_for_invalid_indices",
		"check_for_invalid_ranges",
	}
	passes := DefaultPasses()
	if len(passes) != len(want) {
		t.Fatalf("got %d passes, want %d", len(passes), len(want))
	}
	for index, pass := range passes {
		if pass.Name() != want[index] {
			t.Errorf("pass %d = %s, want %s", index, pass.Name(), want[index])
		}
	}
}

func TestPassesAppendInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false)
	source := unit.Definition.String()

	markers := []string{
		"void Weapon::cache_deformat()",
		"void Weapon::compile(",
		"Weapon Weapon::parse_cache_file_data(",
		"std::vector<std::byte> Weapon::generate_hek_tag_data(",
		"Weapon Weapon::parse_hek_tag_file(",
		"Weapon Weapon::parse_hek_tag_data(",
		"std::size_t Weapon::refactor_reference(",
		"std::vector<ParserStructValue> Weapon::get_values()",
		"bool Weapon::check_for_broken_enums(",
		"bool Weapon::check_for_invalid_references(",
		"bool Weapon::check_for_invalid_indices(",
		"bool Weapon::check_for_invalid_ranges(",
	}
	last := -1
	for _, marker := range markers {
		position := strings.Index(source, marker)
		if position < 0 {
			t.Fatalf("definition is missing %q", marker)
		}
		if position < last {
			t.Errorf("%q appears out of order", marker)
		}
		last = position
	}
}

func TestCapabilityHooks(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	weapon := f.run(t, "Weapon", false)
	declaration := weapon.Declaration.String()
	testutil.RequireContains(t, declaration, "void post_cache_parse(const Invader::Tag &, std::optional<HEK::Pointer>);", "post_cache_parse")
	testutil.RequireContains(t, declaration, "void pre_compile(", "pre_compile")
	testutil.RequireContains(t, declaration, "void postprocess_hek_data();", "postprocess_hek_data")
	testutil.RequireNotContains(t, declaration, "void post_compile(", "post_compile not requested")
	testutil.RequireNotContains(t, declaration, "void post_cache_deformat();", "post_cache_deformat not requested")
	testutil.RequireContains(t, weapon.Definition.String(), "this->pre_compile(workload, tag_index, struct_index, offset);", "pre_compile call")

	trigger := f.run(t, "WeaponTrigger", false)
	testutil.RequireNotContains(t, trigger.Declaration.String(), "pre_compile", "trigger has no hooks")
}

func TestInheritedFieldsReachPasses(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false, CacheFormat{})
	testutil.RequireContains(t, unit.Definition.String(), "output->pickup_radius = this->pickup_radius;", "inherited member")
	testutil.RequireNotContains(t, unit.Definition.String(), "predicted_resources", "host-managed sequence")
}

func TestHiddenFieldsFollowExtractHidden(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	hidden := f.run(t, "Weapon", false, GenerateHEKTagData{}, ParserStruct{})
	testutil.RequireNotContains(t, hidden.Definition.String(), "debug_data", "hidden field without extraction")

	extracted := f.run(t, "Weapon", true, GenerateHEKTagData{}, ParserStruct{})
	testutil.RequireContains(t, extracted.Definition.String(), "b->debug_data.size", "hidden field saved")
	testutil.RequireContains(t, extracted.Definition.String(), `.member_name = "debug_data",`, "hidden field reflected")
}

func TestCacheOnlyFieldsAreZeroedOnSave(t *testing.T) {
	t.Parallel()

	f := newDocumentFixture(t, `[
		{"type": "struct", "name": "Sensor", "fields": [
			{"name": "reading", "type": "uint32"},
			{"name": "cache value", "type": "uint32", "cache_only": true},
			{"name": "slots", "type": "uint16", "count": 4, "cache_only": true}
		]}
	]`)
	source := f.run(t, "Sensor", false, GenerateHEKTagData{}).Definition.String()
	testutil.RequireContains(t, source, "std::memset(b, 0, sizeof(*b));", "buffer zeroed")
	testutil.RequireContains(t, source, "b->reading = this->reading;", "regular member saved")
	testutil.RequireNotContains(t, source, "b->cache_value", "cache_only scalar written")
	testutil.RequireNotContains(t, source, "b->slots", "cache_only array written")
}

func TestDefaultsApplied(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false, ParseHEKTagData{})
	source := unit.Definition.String()
	testutil.RequireContains(t, source, "if(r.pickup_radius == 0) {", "default guard")
	testutil.RequireContains(t, source, "r.pickup_radius = 1.5f;", "default value")
	testutil.RequireContains(t, source, "r.postprocess_hek_data();", "postprocess hook")
}

func TestParserStructTitleAndOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false, ParserStruct{})
	source := unit.Definition.String()
	testutil.RequireContains(t, source, "return ParserStruct::title_of(this->label);", "title")
	testutil.RequireContains(t, source, "return true;", "has_title")
	testutil.RequireContains(t, source, ".options = HEK::WeaponType_names(),", "enum options")
	testutil.RequireContains(t, source, ".options = HEK::WeaponFlags_names(),", "bitfield names")
	testutil.RequireContains(t, source, ".type = ParserStructValue::VALUE_TYPE_ENUM,", "enum type")
	testutil.RequireContains(t, source, ".count = 4,", "array count")
}

func TestCheckBrokenEnums(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false, CheckBrokenEnums{})
	source := unit.Definition.String()
	testutil.RequireContains(t, source, "static_cast<std::size_t>(this->type) >= HEK::WeaponType_ENUM_COUNT", "enum bound")
	testutil.RequireContains(t, source, "found = i.check_for_broken_enums(fix) || found;", "recursion into triggers")
}

func TestCheckInvalidReferences(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "WeaponTrigger", false, CheckInvalidReferences{})
	source := unit.Definition.String()
	testutil.RequireContains(t, source, "if(this->projectile.path.empty())", "non_null")
	testutil.RequireContains(t, source, "this->projectile.tag_fourcc != TagFourCC::TAG_FOURCC_BIPED", "expanded classes")
}

func TestCheckInvalidIndices(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Weapon", false, CheckInvalidIndices{})
	testutil.RequireContains(t, unit.Definition.String(),
		"this->primary_trigger != 0xFFFF && this->primary_trigger >= this->triggers.size()", "index bound")
}

func TestIndexedSequenceResolution(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	c := f.context(t, "Weapon", false)
	index, ok := c.member("primary_trigger")
	if !ok {
		t.Fatal("primary_trigger not flattened")
	}
	sequence, ok := c.indexedSequence(index)
	if !ok || sequence.Member() != "triggers" {
		t.Errorf("indexedSequence = %v, %v; want triggers", sequence, ok)
	}

	index.Field.Reflexive = "missing"
	if _, ok := c.indexedSequence(index); ok {
		t.Error("a reflexive naming no member should not resolve")
	}
}

func TestCheckInvalidRanges(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	weapon := f.run(t, "Weapon", false, CheckInvalidRanges{})
	source := weapon.Definition.String()
	testutil.RequireContains(t, source, "if(this->pickup_radius < 0.0f)", "float minimum")
	testutil.RequireContains(t, source, "for(std::size_t a = 0; a < 4; a++)", "array loop")
	testutil.RequireContains(t, source, "if(this->counts[a] > 10)", "integer maximum")

	trigger := f.run(t, "WeaponTrigger", false, CheckInvalidRanges{})
	testutil.RequireContains(t, trigger.Definition.String(),
		"if(this->rounds_per_second.from > this->rounds_per_second.to)", "inverted bounds")
}

func TestAggregateHeader(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var declarations []Declaration
	for _, resolved := range f.order.Records {
		c := f.context(t, resolved.Record.Name, false)
		unit := NewUnit(resolved.Record.Name)
		Run(DefaultPasses(), c, unit)
		declarations = append(declarations, Declaration{Name: unit.Name, Fields: c.Fields, Unit: unit})
	}

	header := AggregateHeader(Settings{}, declarations)
	testutil.RequireContains(t, header, "// SPDX-License-Identifier: GPL-3.0-only", "license")
	testutil.RequireContains(t, header, "#ifndef INVADER__TAG__PARSER__PARSER_HPP", "include guard")
	testutil.RequireContains(t, header, "    #ifdef USE_Weapon\n    struct Weapon : public ParserStruct {", "guarded record")
	testutil.RequireContains(t, header, "        using struct_big = HEK::Weapon<HEK::BigEndian>;", "endian alias")
	testutil.RequireContains(t, header, "        std::vector<WeaponTrigger> triggers;", "sequence member")
	testutil.RequireContains(t, header, "        HEK::Bounds<float> rounds_per_second;", "bounds member")
	testutil.RequireContains(t, header, "        std::int16_t counts[4];", "array member")
	testutil.RequireContains(t, header, "        void cache_deformat() override;", "pass declaration")

	// Guards follow resolved order.
	if strings.Index(header, "#ifdef USE_Item") > strings.Index(header, "#ifdef USE_Weapon") {
		t.Error("Item declared after Weapon")
	}
	if strings.Index(header, "#ifdef USE_WeaponTrigger") > strings.Index(header, "#ifdef USE_Weapon\n") {
		t.Error("WeaponTrigger declared after Weapon")
	}
}

func TestCustomSettings(t *testing.T) {
	t.Parallel()

	settings := Settings{
		LicenseHeader: "Copyright Example\n\nAll rights reserved.",
		Namespace:     "Forge::Parser",
		HEKNamespace:  "Layout",
		GuardPrefix:   "WITH_",
	}
	unit := NewUnit("Widget")
	source := RecordSource(settings, unit)
	testutil.RequireContains(t, source, "// Copyright Example\n//\n// All rights reserved.\n", "license lines")
	testutil.RequireContains(t, source, "#define WITH_Widget\n", "guard")
	testutil.RequireContains(t, source, "namespace Forge::Parser {", "namespace")

	if got := settings.WithDefaults().qualifiedHEK(); got != "Forge::Layout" {
		t.Errorf("qualifiedHEK = %q, want Forge::Layout", got)
	}
	if got := (Settings{Namespace: "Flat"}).WithDefaults().qualifiedHEK(); got != "HEK" {
		t.Errorf("qualifiedHEK for a single-component namespace = %q, want HEK", got)
	}
}

func TestRecordSourcePreamble(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	unit := f.run(t, "Item", false)
	source := RecordSource(Settings{}, unit)

	for _, line := range []string{
		"#define INVADER_DO_NOT_USE_EVERYTHING\n#define USE_Item\n",
		"#include <invader/tag/parser/parser.hpp>",
		"namespace Invader::Parser {\n    void Item::cache_deformat() {",
	} {
		testutil.RequireContains(t, source, line, "preamble")
	}
	if !strings.HasSuffix(source, "}\n") {
		t.Error("record source does not close its namespace")
	}
}

func TestDefinitionsHeader(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	header := DefinitionsHeader(Settings{}, f.catalog, f.order)

	testutil.RequireContains(t, header, "namespace Invader::HEK {", "layout namespace")
	testutil.RequireContains(t, header, "enum WeaponType : std::uint16_t {\n        WeaponType_none,\n        WeaponType_2_handed,", "enum keeps leading digits")
	testutil.RequireContains(t, header, "WeaponType_ENUM_COUNT\n    };", "enum count")
	testutil.RequireContains(t, header, "using WeaponFlags = std::uint16_t;", "bitfield width")
	testutil.RequireContains(t, header, "WeaponFlags__1st_person = static_cast<std::uint16_t>(1) << 1,", "bitfield bit")
	testutil.RequireContains(t, header, "struct Weapon : Item<EndianType> {", "inheritance")
	testutil.RequireContains(t, header, "PAD(0x4);", "padding")
	testutil.RequireContains(t, header, "static_assert(sizeof(Item<NativeEndian>) == 0xC);", "size assertion")
	testutil.RequireContains(t, header, "TagReflexive<EndianType, WeaponTrigger> triggers;", "sequence layout")
	testutil.RequireContains(t, header, "TagReflexive<EndianType, PredictedResource> predicted_resources;", "layout keeps host-managed sequence")
	testutil.RequireContains(t, header, "Bounds<EndianType<float>> rounds_per_second;", "bounds layout")
	testutil.RequireContains(t, header, "EndianType<std::int16_t> counts[4];", "array layout")

	if strings.Index(header, "struct WeaponTrigger") > strings.Index(header, "struct Weapon :") {
		t.Error("layouts are not in resolved order")
	}
}

func TestSupportSources(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	enums := EnumSource(Settings{}, f.catalog)
	testutil.RequireContains(t, enums, "static const char *const WeaponType_NAMES[] = {\n        \"none\",\n        \"2_handed\",\n        \"plasma_rifle\",\n    };", "enum names")
	testutil.RequireContains(t, enums, "std::optional<WeaponType> WeaponType_from_string(const char *value) {", "from_string")

	bitfields := BitfieldSource(Settings{}, f.catalog)
	testutil.RequireContains(t, bitfields, "\"_1st_person\",", "bitfield names")
	testutil.RequireContains(t, bitfields, "return std::vector<const char *>(WeaponFlags_NAMES, WeaponFlags_NAMES + 2);", "bitfield count")
}

func TestCString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"bell\a", `"bell\007"`},
	}
	for _, test := range tests {
		if got := cString(test.input); got != test.want {
			t.Errorf("cString(%q) = %s, want %s", test.input, got, test.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		float bool
		want  string
	}{
		{"3", false, "3"},
		{"3", true, "3.0f"},
		{"0.25", true, "0.25f"},
		{"1e5", true, "1e5f"},
		{"-2", true, "-2.0f"},
	}
	for _, test := range tests {
		if got := literal(test.value, test.float); got != test.want {
			t.Errorf("literal(%q, %t) = %q, want %q", test.value, test.float, got, test.want)
		}
	}
}
