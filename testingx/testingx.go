// Package testingx provides test doubles and assertions for the lime toolkit.
//
// Overview:
//   - Responsibility: Mocks and helpers shared by package tests and consumers
//   - Key Types: MockLogger, MockTerminator, error-code assertions
//   - Concurrency Model: Mocks are safe for concurrent use
//   - Error Semantics: Failures report through testing.T
//   - Performance Notes: Optimized for test readability, not throughput
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	entity.ConfigureWith(entity, cfg, nil, []objectx.Option{objectx.WithLogger(logger)})
//	logger.AssertLogged("WARN", "deprecated filter surface used")
package testingx

import (
	"reflect"
	"sync"
	"testing"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/core/log"
	"github.com/limekit/lime/objectx"
)

// LogEntry is one captured log record.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// MockLogger captures log records for assertions.
type MockLogger struct {
	t       *testing.T
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger creates a MockLogger.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{t: t}
}

// With returns the logger itself; field scoping is not simulated.
func (m *MockLogger) With(kv ...any) log.Logger { return m }

// Debug captures a debug record.
func (m *MockLogger) Debug(msg string, kv ...any) { m.capture("DEBUG", msg, nil, kv) }

// Info captures an info record.
func (m *MockLogger) Info(msg string, kv ...any) { m.capture("INFO", msg, nil, kv) }

// Warn captures a warning record.
func (m *MockLogger) Warn(msg string, kv ...any) { m.capture("WARN", msg, nil, kv) }

// Error captures an error record.
func (m *MockLogger) Error(err error, msg string, kv ...any) { m.capture("ERROR", msg, err, kv) }

func (m *MockLogger) capture(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, LogEntry{Level: level, Message: msg, Fields: kv, Error: err})
}

// Entries returns a copy of the captured records.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// AssertLogged fails the test unless a record with the level and
// message was captured.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.entries {
		if entry.Level == level && entry.Message == msg {
			return
		}
	}
	m.t.Errorf("expected log record level=%s msg=%q, not captured", level, msg)
}

// Clear discards captured records.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

// MockTerminator records process-termination requests instead of
// exiting, so halting an entity is observable in tests.
type MockTerminator struct {
	mu       sync.Mutex
	statuses []int
}

// NewMockTerminator creates a MockTerminator.
func NewMockTerminator() *MockTerminator {
	return &MockTerminator{}
}

// Terminate records the status.
func (m *MockTerminator) Terminate(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

// Statuses returns the recorded statuses in order.
func (m *MockTerminator) Statuses() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.statuses))
	copy(out, m.statuses)
	return out
}

// AssertCode fails the test unless err carries the expected code.
func AssertCode(t *testing.T, err error, expected errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", expected)
	}
	if code := errors.CodeOf(err); code != expected {
		t.Errorf("expected error code %s, got %s (%v)", expected, code, err)
	}
}

// AssertNoError fails the test when err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

// CountingAncestry wraps an ancestor-chain lookup and counts how many
// times it actually computes, so tests can assert memoization.
type CountingAncestry struct {
	mu    sync.Mutex
	calls int
	fn    func(reflect.Type) []reflect.Type
}

// NewCountingAncestry creates a CountingAncestry delegating to fn.
// A nil fn yields empty chains.
func NewCountingAncestry(fn func(reflect.Type) []reflect.Type) *CountingAncestry {
	return &CountingAncestry{fn: fn}
}

// Lookup counts the call and delegates. Pass it to
// inspectx.WithLookup.
func (c *CountingAncestry) Lookup(t reflect.Type) []reflect.Type {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.fn == nil {
		return nil
	}
	return c.fn(t)
}

// Calls returns how many times Lookup ran.
func (c *CountingAncestry) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// TestEntity bundles a configured entity with its recording doubles.
type TestEntity struct {
	Entity     *objectx.Entity
	Logger     *MockLogger
	Terminator *MockTerminator
}

// NewTestEntity configures a bare entity wired to a MockLogger and a
// MockTerminator so halting or deprecation warnings stay observable.
func NewTestEntity(t *testing.T, cfg objectx.Config, directives ...objectx.Directive) *TestEntity {
	t.Helper()
	logger := NewMockLogger(t)
	term := NewMockTerminator()
	e := &objectx.Entity{}
	err := e.ConfigureWith(e, cfg, directives, []objectx.Option{
		objectx.WithLogger(logger),
		objectx.WithTerminator(term.Terminate),
	})
	if err != nil {
		t.Fatalf("configure test entity: %v", err)
	}
	return &TestEntity{Entity: e, Logger: logger, Terminator: term}
}
