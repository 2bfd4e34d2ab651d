package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jmylchreest/slog-logfilter"
)

// Setup configures the logger with the given level and format.
// Formats: "json" (default, recommended for production), "text" (logfmt style)
func Setup(logLevel string, format string) *slog.Logger {
	level := parseLevel(logLevel)

	opts := []logfilter.Option{
		logfilter.WithLevel(level),
		logfilter.WithOutput(os.Stdout),
	}

	if format == "text" {
		opts = append(opts, logfilter.WithFormat("text"))
	} else {
		opts = append(opts, logfilter.WithFormat("json"))
	}

	logger := logfilter.New(opts...)
	slog.SetDefault(logger)
	return logger
}

func SetLevel(level slog.Level) {
	logfilter.SetLevel(level)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
