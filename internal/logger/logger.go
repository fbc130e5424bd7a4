// Package logger builds the logrus logger shared by the server.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Writer io.Writer
	Level  string
	Format string
}

// New returns a logger writing JSON (the default) or text lines.
func New(cfg Config) *logrus.Logger {
	log := logrus.New()

	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	log.Out = cfg.Writer

	if strings.EqualFold(cfg.Format, "text") {
		log.Formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		}
	} else {
		log.Formatter = &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		}
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
