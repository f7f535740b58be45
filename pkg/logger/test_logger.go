package logger

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger captures log entries so tests can assert on them
type TestLogger struct {
	mu      sync.Mutex
	entries []Entry
	nop     zerolog.Logger
}

// Entry is one captured log call
type Entry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
	Err     error
}

// NewTestLogger creates a capturing logger
func NewTestLogger() *TestLogger {
	return &TestLogger{nop: zerolog.Nop()}
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Message: msg, Fields: fields, Err: err})
}

// Entries returns a copy of everything captured so far
func (l *TestLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// CountLevel returns how many entries were captured at the given level
func (l *TestLogger) CountLevel(level string) int {
	count := 0
	for _, e := range l.Entries() {
		if e.Level == level {
			count++
		}
	}
	return count
}

// HasMessageContaining reports whether any entry's message contains text
func (l *TestLogger) HasMessageContaining(text string) bool {
	for _, e := range l.Entries() {
		if strings.Contains(e.Message, text) {
			return true
		}
	}
	return false
}

// Clear drops all captured entries
func (l *TestLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg, nil, nil) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg, nil, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg, nil, nil) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg, nil, nil) }
func (l *TestLogger) Fatal(msg string) { l.record("FATAL", msg, nil, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields, nil)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields, nil)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields, nil)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields, nil)
}

func (l *TestLogger) FatalWithFields(msg string, fields map[string]interface{}) {
	l.record("FATAL", msg, fields, nil)
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return &testLoggerChild{parent: l, fields: map[string]interface{}{key: value}}
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return &testLoggerChild{parent: l, fields: fields}
}

func (l *TestLogger) WithError(err error) Logger {
	return &testLoggerChild{parent: l, err: err}
}

func (l *TestLogger) WithContext(ctx context.Context) Logger { return l }

func (l *TestLogger) GetZerolog() *zerolog.Logger { return &l.nop }

// testLoggerChild carries accumulated fields and an optional error back
// to the parent's capture buffer
type testLoggerChild struct {
	parent *TestLogger
	fields map[string]interface{}
	err    error
}

func (c *testLoggerChild) merged(extra map[string]interface{}) map[string]interface{} {
	if len(c.fields) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]interface{}, len(c.fields)+len(extra))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func (c *testLoggerChild) Debug(msg string) { c.parent.record("DEBUG", msg, c.merged(nil), c.err) }
func (c *testLoggerChild) Info(msg string)  { c.parent.record("INFO", msg, c.merged(nil), c.err) }
func (c *testLoggerChild) Warn(msg string)  { c.parent.record("WARN", msg, c.merged(nil), c.err) }
func (c *testLoggerChild) Error(msg string) { c.parent.record("ERROR", msg, c.merged(nil), c.err) }
func (c *testLoggerChild) Fatal(msg string) { c.parent.record("FATAL", msg, c.merged(nil), c.err) }

func (c *testLoggerChild) DebugWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("DEBUG", msg, c.merged(fields), c.err)
}

func (c *testLoggerChild) InfoWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("INFO", msg, c.merged(fields), c.err)
}

func (c *testLoggerChild) WarnWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("WARN", msg, c.merged(fields), c.err)
}

func (c *testLoggerChild) ErrorWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("ERROR", msg, c.merged(fields), c.err)
}

func (c *testLoggerChild) FatalWithFields(msg string, fields map[string]interface{}) {
	c.parent.record("FATAL", msg, c.merged(fields), c.err)
}

func (c *testLoggerChild) WithField(key string, value interface{}) Logger {
	return &testLoggerChild{
		parent: c.parent,
		fields: c.merged(map[string]interface{}{key: value}),
		err:    c.err,
	}
}

func (c *testLoggerChild) WithFields(fields map[string]interface{}) Logger {
	return &testLoggerChild{parent: c.parent, fields: c.merged(fields), err: c.err}
}

func (c *testLoggerChild) WithError(err error) Logger {
	return &testLoggerChild{parent: c.parent, fields: c.fields, err: err}
}

func (c *testLoggerChild) WithContext(ctx context.Context) Logger { return c }

func (c *testLoggerChild) GetZerolog() *zerolog.Logger { return &c.parent.nop }
