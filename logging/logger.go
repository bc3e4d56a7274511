// Package logging builds the logrus loggers shared by the CLI and the API server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Format selects the log encoding
type Format string

const (
	// FormatText is a human-readable line per entry, used by the CLI
	FormatText Format = "text"
	// FormatJSON is one JSON object per entry, used by the server
	FormatJSON Format = "json"
)

// New creates a logger writing to out at the given level ("debug", "info",
// "warn", "error"; anything else means info).
func New(level string, format Format, out io.Writer) *logrus.Logger {
	log := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)
	log.SetLevel(ParseLevel(level))

	switch format {
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.TimeOnly,
		})
	}
	return log
}

// ParseLevel maps a level name to a logrus level, defaulting to info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Service returns an entry tagged with the service name
func Service(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("service", name)
}

// Discard returns a logger that drops everything, for tests and library defaults
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
