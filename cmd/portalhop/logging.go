package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/portalhop/internal/storage"
)

var logFile *os.File

// newLogger creates a timestamped logger with the given prefix.
func newLogger(w io.Writer, prefix string, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	l.SetLevel(level)
	return l
}

// setupLogger configures the package logger from the global flags.
func setupLogger(levelName, file string) error {
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", levelName, err)
	}

	var w io.Writer = os.Stderr
	if file != "" {
		f, err := openLogFile(file)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}
	logger = newLogger(w, "portalhop", level)
	return nil
}

// tuiLogger returns the logger to use while the alternate screen is up.
// Without --log-file nothing may reach the terminal.
func tuiLogger(prefix string) *log.Logger {
	if logFile == nil {
		return log.New(io.Discard)
	}
	return logger.WithPrefix(prefix)
}

func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
