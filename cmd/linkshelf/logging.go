package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sagarc03/linkshelf/config"
)

// setupLogging installs the configured handler as the slog default and routes
// the standard logger through it. Logs go to stderr so that sign and verify
// output on stdout stays machine readable.
func setupLogging(cfg config.LogConfig) {
	slog.SetDefault(slog.New(newLogHandler(os.Stderr, cfg)))

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo).Writer())
}

func newLogHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)
	debug := level <= slog.LevelDebug

	if cfg.Format == "json" {
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: debug,
		})
		return h.WithAttrs([]slog.Attr{
			slog.String("app", "linkshelf"),
			slog.String("version", version),
		})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  debug,
		TimeFormat: time.TimeOnly,
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
