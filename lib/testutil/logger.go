// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is one captured log entry with its attributes flattened to
// strings.
type LogRecord struct {
	Level      slog.Level
	Message    string
	Attributes map[string]string
}

// LogCapture is an slog.Handler that keeps every record in memory.
type LogCapture struct {
	mu      sync.Mutex
	records []LogRecord
	attrs   []slog.Attr
	parent  *LogCapture
}

// CaptureLogger returns a debug-level logger and the capture that
// receives its records.
func CaptureLogger() (*slog.Logger, *LogCapture) {
	capture := &LogCapture{}
	return slog.New(capture), capture
}

// Enabled accepts every level.
func (c *LogCapture) Enabled(context.Context, slog.Level) bool { return true }

// Handle stores the record.
func (c *LogCapture) Handle(_ context.Context, record slog.Record) error {
	entry := LogRecord{
		Level:      record.Level,
		Message:    record.Message,
		Attributes: make(map[string]string),
	}
	for _, attr := range c.attrs {
		entry.Attributes[attr.Key] = attr.Value.String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		entry.Attributes[attr.Key] = attr.Value.String()
		return true
	})
	root := c.root()
	root.mu.Lock()
	root.records = append(root.records, entry)
	root.mu.Unlock()
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := append(append([]slog.Attr(nil), c.attrs...), attrs...)
	return &LogCapture{attrs: combined, parent: c.root()}
}

// WithGroup is not needed by any caller; groups are flattened.
func (c *LogCapture) WithGroup(string) slog.Handler { return c }

// Records returns a copy of the captured records.
func (c *LogCapture) Records() []LogRecord {
	root := c.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return append([]LogRecord(nil), root.records...)
}

// Warnings returns the captured records at warn level.
func (c *LogCapture) Warnings() []LogRecord {
	var warnings []LogRecord
	for _, record := range c.Records() {
		if record.Level == slog.LevelWarn {
			warnings = append(warnings, record)
		}
	}
	return warnings
}

func (c *LogCapture) root() *LogCapture {
	if c.parent != nil {
		return c.parent
	}
	return c
}
