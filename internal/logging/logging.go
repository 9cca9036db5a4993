// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a slog.Logger that remembers where it writes
type Logger struct {
	*slog.Logger
	LogFile string
}

// New creates a JSON logger writing to a rotating file in dir. An empty dir
// logs to stderr.
func New(level string, dir string) *Logger {
	var w io.Writer = os.Stderr
	var file string
	if dir != "" {
		lj := &lumberjack.Logger{
			Filename:   filepath.Join(dir, "mapframe.slog"),
			MaxSize:    16, // MB
			MaxBackups: 2,
			MaxAge:     14,
		}
		w, file = lj, lj.Filename
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{
		Logger:  slog.New(h),
		LogFile: file,
	}
}

// ParseLevel maps a settings string to a slog level; unknown strings are info
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "", "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var warned sync.Map

// WarnOnce logs msg at warn level the first time it is seen in this process
func WarnOnce(lg *slog.Logger, msg string, args ...any) {
	if _, seen := warned.LoadOrStore(msg, struct{}{}); seen {
		return
	}
	if lg == nil {
		lg = slog.Default()
	}
	lg.Warn(msg, args...)
}
