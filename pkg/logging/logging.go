// Package logging holds the logger used by the certgen packages.
//
// Nothing is logged until a logger is installed with SetLogger; the command
// line tool installs one writing to stderr.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger installs sl as the package logger. Nil restores the discard logger.
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		sl = discard()
	}
	logger.Store(sl)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = discard()
		logger.Store(l)
	}
	return l
}

// NewText returns a text logger writing to w, at debug level when verbose.
func NewText(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
