// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identifier

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		label                string
		preserveLeadingDigit bool
		want                 string
	}{
		{"enum option keeps leading digit", "2 Player", true, "2_Player"},
		{"bitfield label prefixes leading digit", "2 Player", false, "_2_Player"},
		{"apostrophe dropped", "player's choice", false, "players_choice"},
		{"hyphen becomes underscore", "non-flammable", false, "non_flammable"},
		{"parentheses dropped", "speed (world units)", false, "speed_world_units"},
		{"plain label untouched", "health", false, "health"},
		{"empty label", "", false, ""},
		{"digit after replacement only", "-1 offset", false, "_1_offset"},
		{"leading underscore is not a digit", "_reserved", false, "_reserved"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(test.label, test.preserveLeadingDigit)
			if got != test.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q",
					test.label, test.preserveLeadingDigit, got, test.want)
			}
		})
	}
}

func TestEnumOptionAndMember(t *testing.T) {
	t.Parallel()

	if got := EnumOption("2 Player"); got != "2_Player" {
		t.Errorf("EnumOption = %q, want 2_Player", got)
	}
	if got := Member("2 Player"); got != "_2_Player" {
		t.Errorf("Member = %q, want _2_Player", got)
	}
}
