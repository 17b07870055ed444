package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log defaults to slog's default logger so packages can log before Init runs (tests).
var Log = slog.Default()

// Init installs a JSON handler for production-ready logging.
// Accepts levels: debug, info, warn, error. Unknown input falls back to info.
func Init(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
