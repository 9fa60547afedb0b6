// Package internal contains the record encoder backing logx.
package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Options configures the handler.
type Options struct {
	JSON       bool       // Encode records as JSON instead of logfmt
	Level      slog.Level // Minimum level
	Writer     io.Writer  // Output writer
	Timestamps bool       // Include a time field
}

// Handler encodes records and serializes writes.
type Handler struct {
	opts Options
	mu   sync.Mutex
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	return &Handler{opts: opts}
}

// Emit encodes and writes one record. Records below the minimum level
// are dropped.
func (h *Handler) Emit(level slog.Level, msg string, attrs []slog.Attr) {
	if level < h.opts.Level {
		return
	}

	sorted := make([]slog.Attr, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	var line []byte
	if h.opts.JSON {
		line = h.encodeJSON(level, msg, sorted)
	} else {
		line = h.encodeLogfmt(level, msg, sorted)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.opts.Writer.Write(line)
}

func (h *Handler) encodeLogfmt(level slog.Level, msg string, attrs []slog.Attr) []byte {
	var buf strings.Builder

	if h.opts.Timestamps {
		buf.WriteString("time=")
		buf.WriteString(time.Now().Format(time.RFC3339))
		buf.WriteString(" ")
	}

	buf.WriteString("level=")
	buf.WriteString(levelString(level))
	buf.WriteString(" msg=")
	buf.WriteString(fmt.Sprintf("%q", msg))

	for _, attr := range attrs {
		buf.WriteString(" ")
		buf.WriteString(attr.Key)
		buf.WriteString("=")
		buf.WriteString(formatValue(attr.Value))
	}

	buf.WriteString("\n")
	return []byte(buf.String())
}

func (h *Handler) encodeJSON(level slog.Level, msg string, attrs []slog.Attr) []byte {
	record := make(map[string]any, len(attrs)+3)
	if h.opts.Timestamps {
		record["time"] = time.Now().Format(time.RFC3339)
	}
	record["level"] = levelString(level)
	record["msg"] = msg
	for _, attr := range attrs {
		record[attr.Key] = jsonValue(attr.Value)
	}

	line, err := json.Marshal(record)
	if err != nil {
		return []byte(fmt.Sprintf(`{"level":"error","msg":"log encoding failed: %v"}`+"\n", err))
	}
	return append(line, '\n')
}

// PairsToAttrs converts key-value arguments to slog attributes. It
// accepts both flat "key", value sequences and the two-element pairs
// produced by the core/log helpers.
func PairsToAttrs(kv []any) []slog.Attr {
	flat := make([]any, 0, len(kv)*2)
	for _, item := range kv {
		if pair, ok := item.([]any); ok && len(pair) == 2 {
			flat = append(flat, pair[0], pair[1])
			continue
		}
		flat = append(flat, item)
	}

	attrs := make([]slog.Attr, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		attrs = append(attrs, slog.Any(fmt.Sprintf("%v", flat[i]), flat[i+1]))
	}
	return attrs
}

func levelString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return fmt.Sprintf("%q", v.String())
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case slog.KindFloat64:
		return fmt.Sprintf("%g", v.Float64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", v.Any()))
	}
}

func jsonValue(v slog.Value) any {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	default:
		a := v.Any()
		if err, ok := a.(error); ok {
			return err.Error()
		}
		return a
	}
}
