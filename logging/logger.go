// Package logging builds the logrus logger shared by every component.
//
// Usage:
//
//	log := logging.New("catalog", cfg.Debug)
//	log.WithField("url", u).Debug("loading page")
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON logger tagged with the service name. Debug raises the
// level so every trace from the catalog is visible without further setup.
func New(service string, debug bool) *logrus.Entry {
	return NewWithOutput(service, debug, os.Stderr)
}

// NewWithOutput is New writing to w.
func NewWithOutput(service string, debug bool, w io.Writer) *logrus.Entry {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	log.SetOutput(w)

	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return log.WithField("service", service)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
