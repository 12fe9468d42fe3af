package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the server logger.
type Options struct {
	// Level is a logrus level name; empty or unknown means info.
	Level string
	// File enables rotation into the given path instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Text switches from JSON to logfmt-like text output.
	Text bool
}

// New builds a logrus logger from opts. The returned closer releases the
// rotated file, if any.
func New(opts Options) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(opts.Level))

	if opts.Text {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	if opts.File == "" {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 5),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
		Compress:   true,
	}
	logger.SetOutput(rotator)
	return logger, rotator
}

// ParseLevel maps a level name to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
