// Package testingx provides tests for the test doubles.
package testingx

import (
	"reflect"
	"testing"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/inspectx"
	"github.com/limekit/lime/objectx"
)

func TestMockLoggerCaptures(t *testing.T) {
	logger := NewMockLogger(t)

	logger.Info("first", "k", "v")
	logger.Error(errors.New(errors.CodeInternal, "boom"), "second")

	entries := logger.Entries()
	if len(entries) != 2 {
		t.Fatalf("captured %d entries, want 2", len(entries))
	}
	if entries[0].Level != "INFO" || entries[0].Message != "first" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Error == nil {
		t.Error("error record lost its error")
	}

	logger.AssertLogged("INFO", "first")

	logger.Clear()
	if len(logger.Entries()) != 0 {
		t.Error("Clear() left entries behind")
	}
}

func TestMockTerminatorRecords(t *testing.T) {
	term := NewMockTerminator()
	term.Terminate(0)
	term.Terminate(2)

	statuses := term.Statuses()
	if len(statuses) != 2 || statuses[0] != 0 || statuses[1] != 2 {
		t.Errorf("Statuses() = %v, want [0 2]", statuses)
	}
}

func TestAssertCode(t *testing.T) {
	AssertCode(t, errors.New(errors.CodeNotFound, "gone"), errors.CodeNotFound)
	AssertNoError(t, nil)
}

func TestCountingAncestryMemoization(t *testing.T) {
	counter := NewCountingAncestry(func(reflect.Type) []reflect.Type {
		return []reflect.Type{reflect.TypeOf(struct{}{})}
	})
	ancestry := inspectx.NewAncestry(inspectx.WithLookup(counter.Lookup))

	type subject struct{}
	first := ancestry.Parents(subject{})
	second := ancestry.Parents(subject{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Parents() differ: %v vs %v", first, second)
	}
	if counter.Calls() != 1 {
		t.Errorf("lookup ran %d times, want 1", counter.Calls())
	}
}

func TestNewTestEntity(t *testing.T) {
	fixture := NewTestEntity(t, objectx.Config{"mode": "fast"})

	if got := fixture.Entity.Config()["mode"]; got != "fast" {
		t.Errorf("config mode = %v, want fast", got)
	}

	fixture.Entity.Halt(3)
	if statuses := fixture.Terminator.Statuses(); len(statuses) != 1 || statuses[0] != 3 {
		t.Errorf("Statuses() = %v, want [3]", statuses)
	}
}
