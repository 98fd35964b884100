// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"
)

// RequireContains fails the test unless text contains substring.
//
//	testutil.RequireContains(t, source, "#ifdef USE_weapon", "aggregate header")
func RequireContains(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, text, substring string, msgAndArgs ...any) {
	t.Helper()
	if !strings.Contains(text, substring) {
		t.Fatalf("%s: expected to find %q in:\n%s", formatMessage(msgAndArgs), substring, text)
	}
}

// RequireNotContains fails the test if text contains substring.
func RequireNotContains(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, text, substring string, msgAndArgs ...any) {
	t.Helper()
	if strings.Contains(text, substring) {
		t.Fatalf("%s: did not expect %q in:\n%s", formatMessage(msgAndArgs), substring, text)
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
