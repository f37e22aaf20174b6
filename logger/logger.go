package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ParseLevel maps a LOG_LEVEL string to a slog level. ok is false when the
// value is not recognised and the info level was substituted.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// New builds a JSON logger writing to w.
func New(w io.Writer, levelStr string) *slog.Logger {
	level, _ := ParseLevel(levelStr)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Init installs a stdout JSON logger as the slog default. Call once at
// startup, after loading config.
func Init(levelStr string) *slog.Logger {
	l := New(os.Stdout, levelStr)
	slog.SetDefault(l)

	if _, ok := ParseLevel(levelStr); !ok {
		l.Warn("invalid LOG_LEVEL, defaulting to info", "configuredLevel", levelStr)
	}
	return l
}
