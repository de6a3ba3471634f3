// Package logging configures the application logger. The decision
// functions in rules, pipeline, and alert stay pure; logging happens at
// the edges (persistence, polling, session orchestration).
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	// Path is the log file location; empty logs to stderr only.
	Path string

	// Debug lowers the level from Info to Debug.
	Debug bool

	// Console mirrors file output to stderr.
	Console bool
}

// New builds a logrus logger with size-based rotation on the file sink.
func New(opts Options) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if opts.Debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	if opts.Path == "" {
		log.SetOutput(os.Stderr)
		return log
	}

	rotated := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	if opts.Console {
		log.SetOutput(io.MultiWriter(rotated, os.Stderr))
	} else {
		log.SetOutput(rotated)
	}

	return log
}

// Discard returns a logger that drops everything, for tests and callers
// that have no log sink.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
