package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pokebinder/pokebinder-backend/internal/config"
)

// NewLogger builds a *slog.Logger from LogConfig and installs it as the
// process default via slog.SetDefault.
//
// Format "json" produces structured output for production; "text" is the
// development format and adds source locations. Level is one of debug,
// info, warn, error (case-insensitive) and defaults to info. Output goes
// to os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
