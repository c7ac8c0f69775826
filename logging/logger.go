package logging

import (
	"io"
	"log/slog"
	"os"

	"galaxygenerator/config"
)

// Init installs the default slog logger described by settings
func Init(settings config.LoggingSettings) {
	slog.SetDefault(New(os.Stdout, settings))

	slog.With("component", "logger").Debug("Logger initialized",
		"level", settings.Level,
		"json_format", settings.JSON,
	)
}

// New builds a logger writing to w
func New(w io.Writer, settings config.LoggingSettings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(settings.Level)}

	var handler slog.Handler
	if settings.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
