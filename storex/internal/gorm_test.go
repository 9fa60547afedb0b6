// Package internal provides tests for the GORM adapter.
package internal

import (
	"testing"

	"github.com/limekit/lime/core/errors"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{"sqlite", false},
		{"mysql", false},
		{"postgres", false},
		{"mongodb", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			_, err := dialectorFor(tt.driver, "dsn")
			if (err != nil) != tt.wantErr {
				t.Errorf("dialectorFor(%q) error = %v, wantErr %t", tt.driver, err, tt.wantErr)
			}
			if tt.wantErr && errors.CodeOf(err) != errors.CodeInvalidArgument {
				t.Errorf("dialectorFor(%q) code = %v, want INVALID_ARGUMENT", tt.driver, errors.CodeOf(err))
			}
		})
	}
}
