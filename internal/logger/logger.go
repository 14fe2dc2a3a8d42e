package logger

import (
	"log/slog"
	"os"

	"github.com/HannesFeil/multiway-powersort-experiments/config"
)

func getLogLevel() slog.Level {
	switch config.Config.LogLevel {
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

// New returns the process-wide logger. Install it with
// slog.SetDefault before the sweep starts.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: getLogLevel(),
	}))
}
