// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing JSON in production and text elsewhere.
// An unknown level falls back to info.
func New(level string, production bool) *log.Logger {
	return newWithOutput(os.Stdout, level, production)
}

func newWithOutput(w io.Writer, level string, production bool) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	if production {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		l.WithField("level", level).Warn("unknown log level, using info")
	}
	l.SetLevel(lvl)
	return l
}

// Discard is a logger for tests and tools that should stay quiet.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}
