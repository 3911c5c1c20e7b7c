// Copyright 2016 Michael Carlberg & contributors (polybar)

// Package plog is the structured logger shared by every component,
// grounded on logging/id.go's per-object tagging convention, backed by
// logrus instead of the teacher's build-tag-gated bespoke backend.
package plog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level mirrors the three verbosities accepted by -l/--log.
type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
	LevelTrace Level = "trace"
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelTrace:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger wraps *logrus.Logger, adding Component as the standard way every
// package tags its entries, mirroring logging/id.go's ID()/Attach()
// hierarchy collapsed into a single string field.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger at the given level, writing to stderr and,
// optionally, a rotated file at path (rotation via lumberjack, matching
// NaveLIL-erez-monitor/logger/logger.go).
func New(level Level, path string) *Logger {
	l := logrus.New()
	l.SetLevel(level.logrusLevel())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(os.Stderr)

	if path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		l.SetOutput(io.MultiWriter(os.Stderr, rotated))
	}

	return &Logger{Logger: l}
}

// Component returns an entry tagged with the emitting package/subsystem,
// e.g. plog.New(...).Component("tray").Warn("...").
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Nop returns a Logger that discards everything, for tests and library
// callers that don't want bar output polluting theirs.
func Nop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}
