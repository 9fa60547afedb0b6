// Package registryx provides the locator entities resolve collaborators through.
package registryx

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/limekit/lime/core/errors"
	"github.com/limekit/lime/logx"
	"github.com/limekit/lime/objectx"
	"github.com/limekit/lime/storex"
)

// RegisterBuiltins installs the toolkit's standard factories:
//
//	"logger" — a logx logger; options: "format", "level"
//	"store"  — a storex database handle; options: "driver", "dsn",
//	           "max_idle", "max_open", "conn_max_lifetime"
func RegisterBuiltins(l *Locator) error {
	if err := l.Register("logger", LoggerFactory); err != nil {
		return err
	}
	return l.Register("store", StoreFactory)
}

// LoggerFactory constructs a logx logger from a config.
func LoggerFactory(cfg objectx.Config) (any, error) {
	var opts []logx.Option
	if format, ok := stringOption(cfg, "format"); ok {
		opts = append(opts, logx.WithFormat(logx.Format(format)))
	}
	if level, ok := stringOption(cfg, "level"); ok {
		parsed, err := parseLevel(level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logx.WithLevel(parsed))
	}
	return logx.New(opts...), nil
}

// StoreFactory constructs a storex store from a config.
func StoreFactory(cfg objectx.Config) (any, error) {
	driver, _ := stringOption(cfg, "driver")
	dsn, _ := stringOption(cfg, "dsn")

	opts := storex.Options{Driver: driver, DSN: dsn}
	if n, ok, err := intOption(cfg, "max_idle"); err != nil {
		return nil, err
	} else if ok {
		opts.MaxIdleConns = n
	}
	if n, ok, err := intOption(cfg, "max_open"); err != nil {
		return nil, err
	} else if ok {
		opts.MaxOpenConns = n
	}
	if d, ok, err := durationOption(cfg, "conn_max_lifetime"); err != nil {
		return nil, err
	} else if ok {
		opts.ConnMaxLifetime = d
	}

	return storex.Open(opts)
}

// stringOption reads a string-valued option.
func stringOption(cfg objectx.Config, key string) (string, bool) {
	v, ok := cfg[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intOption reads an integer option, accepting numeric strings so
// configs built from configx snapshots decode transparently.
func intOption(cfg objectx.Config, key string) (int, bool, error) {
	v, ok := cfg[key]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0, false, errors.Newf(errors.CodeInvalidArgument, "option %q is not an integer: %v", key, err)
		}
		return parsed, true, nil
	default:
		return 0, false, errors.Newf(errors.CodeInvalidArgument, "option %q has unsupported type %T", key, v)
	}
}

// durationOption reads a duration option, accepting duration strings.
func durationOption(cfg objectx.Config, key string) (time.Duration, bool, error) {
	v, ok := cfg[key]
	if !ok {
		return 0, false, nil
	}
	switch d := v.(type) {
	case time.Duration:
		return d, true, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, false, errors.Newf(errors.CodeInvalidArgument, "option %q is not a duration: %v", key, err)
		}
		return parsed, true, nil
	default:
		return 0, false, errors.Newf(errors.CodeInvalidArgument, "option %q has unsupported type %T", key, v)
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Newf(errors.CodeInvalidArgument, "unknown log level %q", level)
	}
}
