// Package internal implements configx sources, merging, and binding.
package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/limekit/lime/core/errors"
)

// Loader is the internal view of a configuration source.
type Loader interface {
	Load(ctx context.Context) (map[string]string, error)
}

// EnvSource loads the process environment.
type EnvSource struct {
	prefix    string
	lowercase bool
}

// NewEnvSource creates an EnvSource.
func NewEnvSource(prefix string, lowercase bool) *EnvSource {
	return &EnvSource{prefix: prefix, lowercase: lowercase}
}

// Load reads matching environment variables.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	values := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}
		if s.lowercase {
			key = strings.ToLower(key)
		}
		values[key] = value
	}
	return values, nil
}

// StaticSource serves a fixed map.
type StaticSource struct {
	values map[string]string
}

// NewStaticSource creates a StaticSource over a copy of values.
func NewStaticSource(values map[string]string) *StaticSource {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticSource{values: copied}
}

// Load returns a copy of the static values.
func (s *StaticSource) Load(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

// FileSource loads a flat YAML mapping of scalars.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load parses the file. Nested mappings flatten with dot-joined keys.
func (s *FileSource) Load(ctx context.Context) (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeNotFound, "configx.FileSource", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.CodeInvalidArgument, "configx.FileSource", err)
	}

	values := make(map[string]string)
	flatten("", doc, values)
	return values, nil
}

func flatten(prefix string, doc map[string]any, into map[string]string) {
	for key, value := range doc {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(full, nested, into)
			continue
		}
		into[full] = fmt.Sprintf("%v", value)
	}
}
