package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/deeklead/midori/internal/state"
)

// LogFile is the name of the log file inside the state directory.
const LogFile = "midori.log"

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s))))
	return level, err
}

// OpenLog returns a JSON logger appending to the log file in the state
// directory, and a func that closes it. If the file cannot be opened the
// logger discards everything; logging never fails a command.
func OpenLog(level string) (*slog.Logger, func()) {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}

	path := filepath.Join(state.StateDir(), LogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return discardLogger(), func() {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // G304: path is constructed internally
	if err != nil {
		return discardLogger(), func() {}
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = f.Close() }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
