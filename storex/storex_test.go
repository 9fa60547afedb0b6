// Package storex provides tests for the storage collaborator.
package storex

import (
	"testing"

	"github.com/limekit/lime/core/errors"
)

func TestOpenValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing driver", Options{DSN: "file:test.db"}},
		{"missing dsn", Options{Driver: "sqlite"}},
		{"unsupported driver", Options{Driver: "cockroach", DSN: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.opts)
			if errors.CodeOf(err) != errors.CodeInvalidArgument {
				t.Errorf("Open() error = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}
