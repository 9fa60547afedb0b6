// Package configx provides tests for configuration loading and binding.
package configx

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/limekit/lime/core/errors"
)

func TestEnvSource(t *testing.T) {
	t.Setenv("LIME_TEST_ALPHA", "one")
	t.Setenv("LIME_TEST_BETA", "two")

	tests := []struct {
		name     string
		opts     EnvOptions
		key      string
		expected string
	}{
		{"no prefix", EnvOptions{}, "LIME_TEST_ALPHA", "one"},
		{"with prefix", EnvOptions{Prefix: "LIME_TEST_"}, "BETA", "two"},
		{"lowercase", EnvOptions{Prefix: "LIME_TEST_", Lowercase: true}, "alpha", "one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := NewEnvSource(tt.opts).Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if values[tt.key] != tt.expected {
				t.Errorf("values[%q] = %q, want %q", tt.key, values[tt.key], tt.expected)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "name: adapter\nstore:\n  driver: sqlite\n  max_open: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	values, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if values["name"] != "adapter" {
		t.Errorf("name = %q, want adapter", values["name"])
	}
	if values["store.driver"] != "sqlite" {
		t.Errorf("store.driver = %q, want sqlite", values["store.driver"])
	}
	if values["store.max_open"] != "4" {
		t.Errorf("store.max_open = %q, want 4", values["store.max_open"])
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.yaml")).Load(context.Background())
	if errors.CodeOf(err) != errors.CodeNotFound {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func TestManagerMergePrecedence(t *testing.T) {
	mgr, err := New(context.Background(), Options{
		Sources: []Source{
			NewStaticSource(map[string]string{"a": "low", "b": "keep"}),
			NewStaticSource(map[string]string{"a": "high", "c": ""}),
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if v, _ := mgr.Value("a"); v != "high" {
		t.Errorf("a = %q, want high (later source wins)", v)
	}
	if v, _ := mgr.Value("b"); v != "keep" {
		t.Errorf("b = %q, want keep", v)
	}
	if _, ok := mgr.Value("c"); ok {
		t.Error("empty value overrode absence")
	}
}

func TestManagerRequiresSources(t *testing.T) {
	_, err := New(context.Background(), Options{})
	if errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("New() error = %v, want INVALID_ARGUMENT", err)
	}
}

type bindTarget struct {
	Name    string        `conf:"NAME" default:"adapter"`
	Retries int           `conf:"RETRIES" default:"3"`
	Wait    time.Duration `conf:"WAIT" default:"250ms"`
	Nested  struct {
		Driver string `conf:"DB_DRIVER" default:"sqlite"`
	}
}

func TestManagerBind(t *testing.T) {
	mgr, err := New(context.Background(), Options{
		Sources: []Source{NewStaticSource(map[string]string{
			"NAME": "custom",
			"WAIT": "2s",
		})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var target bindTarget
	if err := mgr.Bind(&target); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	if target.Name != "custom" {
		t.Errorf("Name = %q, want custom", target.Name)
	}
	if target.Retries != 3 {
		t.Errorf("Retries = %d, want default 3", target.Retries)
	}
	if target.Wait != 2*time.Second {
		t.Errorf("Wait = %v, want 2s", target.Wait)
	}
	if target.Nested.Driver != "sqlite" {
		t.Errorf("Nested.Driver = %q, want default sqlite", target.Nested.Driver)
	}
}

type validatedTarget struct {
	Port int `conf:"PORT" default:"0" validate:"required,min=1"`
}

func TestManagerBindValidates(t *testing.T) {
	mgr, err := New(context.Background(), Options{
		Sources: []Source{NewStaticSource(map[string]string{})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var target validatedTarget
	err = mgr.Bind(&target)
	if errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("Bind() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestBindRejectsNonPointer(t *testing.T) {
	mgr, err := New(context.Background(), Options{
		Sources: []Source{NewStaticSource(map[string]string{"k": "v"})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var target bindTarget
	if err := mgr.Bind(target); errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("Bind() error = %v, want INVALID_ARGUMENT", err)
	}
}
