// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout.  Production gets JSON lines;
// everything else gets the human-readable text formatter.  Unknown levels
// fall back to info.
func New(prod bool, level string) *logrus.Logger {
	return NewWithWriter(os.Stdout, prod, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, prod bool, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if prod {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
