// Package internal provides tests for struct binding.
package internal

import (
	"testing"
	"time"
)

type kinds struct {
	S  string        `conf:"S"`
	I  int           `conf:"I"`
	U  uint          `conf:"U"`
	F  float64       `conf:"F"`
	B  bool          `conf:"B"`
	D  time.Duration `conf:"D"`
	NT string
}

func TestBindStructKinds(t *testing.T) {
	snapshot := map[string]string{
		"S": "text",
		"I": "-5",
		"U": "7",
		"F": "2.5",
		"B": "true",
		"D": "1m30s",
	}

	var target kinds
	if err := BindStruct(snapshot, &target); err != nil {
		t.Fatalf("BindStruct() error = %v", err)
	}

	if target.S != "text" || target.I != -5 || target.U != 7 || target.F != 2.5 || !target.B {
		t.Errorf("bound values = %+v", target)
	}
	if target.D != 90*time.Second {
		t.Errorf("D = %v, want 1m30s", target.D)
	}
	if target.NT != "" {
		t.Errorf("untagged field was bound: %q", target.NT)
	}
}

func TestBindStructBadValue(t *testing.T) {
	var target kinds
	if err := BindStruct(map[string]string{"I": "not-a-number"}, &target); err == nil {
		t.Error("BindStruct() accepted a malformed integer")
	}
}

func TestBindStructUnexportedFieldsSkipped(t *testing.T) {
	type hidden struct {
		visible string `conf:"V"`
	}
	var target hidden
	if err := BindStruct(map[string]string{"V": "x"}, &target); err != nil {
		t.Fatalf("BindStruct() error = %v", err)
	}
	if target.visible != "" {
		t.Error("unexported field was set")
	}
}
