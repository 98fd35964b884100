// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagdef

import "fmt"

// SchemaViolation is a fatal schema error. Record and Field are set when
// the violation is attributable to a single field.
type SchemaViolation struct {
	Document string
	Record   string
	Field    string
	Reason   string
}

func (v *SchemaViolation) Error() string {
	switch {
	case v.Record != "" && v.Field != "":
		return fmt.Sprintf("%s: %s::%s - %s", v.Document, v.Record, v.Field, v.Reason)
	case v.Record != "":
		return fmt.Sprintf("%s: %s - %s", v.Document, v.Record, v.Reason)
	default:
		return fmt.Sprintf("%s: %s", v.Document, v.Reason)
	}
}
