// Package objectx provides tests for the configurable base entity.
package objectx

import (
	"reflect"
	"testing"
	"time"

	"github.com/limekit/lime/core/errors"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	original := newAdapter(t, Config{
		"timeout": 9 * time.Second,
		"variant": "batch",
		"tags":    map[string]any{"a": 10},
	})

	fields, err := Snapshot(original)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	restored := &adapter{}
	if err := Restore(restored, fields); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	if restored.timeout != original.timeout {
		t.Errorf("timeout = %v, want %v", restored.timeout, original.timeout)
	}
	if restored.mode != original.mode {
		t.Errorf("mode = %q, want %q", restored.mode, original.mode)
	}
	if !reflect.DeepEqual(restored.tags, original.tags) {
		t.Errorf("tags = %v, want %v", restored.tags, original.tags)
	}
}

func TestSnapshotSkipsBaseAndFuncFields(t *testing.T) {
	type withFunc struct {
		Entity
		Name string
		hook func()
	}
	v := &withFunc{Name: "n", hook: func() {}}

	fields, err := Snapshot(v)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if _, ok := fields["Entity"]; ok {
		t.Error("snapshot captured the embedded base")
	}
	if _, ok := fields["hook"]; ok {
		t.Error("snapshot captured a func field")
	}
	if fields["Name"] != "n" {
		t.Errorf("fields[Name] = %v, want n", fields["Name"])
	}
}

func TestSnapshotOfNonStruct(t *testing.T) {
	_, err := Snapshot(42)
	if errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("Snapshot() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestRestoreUnknownField(t *testing.T) {
	err := Restore(&adapter{}, map[string]any{"nope": 1})
	if errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("Restore() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestRestoreNonPointerTarget(t *testing.T) {
	err := Restore(adapter{}, map[string]any{})
	if errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("Restore() error = %v, want INVALID_ARGUMENT", err)
	}
}
