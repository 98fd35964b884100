// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{}
	done, err := output.EmitJSON(&buffer, []string{"a"})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json: done=%v err=%v output=%q", done, err, buffer.String())
	}

	output.OutputJSON = true
	var records []string
	done, err = output.EmitJSON(&buffer, records)
	if !done || err != nil {
		t.Fatalf("EmitJSON: done=%v err=%v", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	if err.ExitCode() != 3 || err.Error() != "exit code 3" {
		t.Errorf("ExitError = %v (code %d)", err, err.ExitCode())
	}
	usage := &UsageError{Usage: "tagforge <a>"}
	if usage.Error() != "Usage: tagforge <a>" {
		t.Errorf("UsageError = %q", usage.Error())
	}
}
