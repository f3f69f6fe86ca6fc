// Package logger builds the process wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing text records to stderr, or appending to the
// file at path when one is given. The closer releases the file.
func New(path string, debug bool) (*slog.Logger, io.Closer, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	if len(path) == 0 {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file '%s': %w", path, err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}
