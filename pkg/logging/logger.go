// Package logging provides a leveled logger abstraction so the
// implementation can be swapped without touching call sites.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level controls which messages a logger emits.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps a config string to a Level; unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is the logging interface used throughout the service.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type levelLogger struct {
	level Level
	err   *log.Logger
	warn  *log.Logger
	info  *log.Logger
	debug *log.Logger
}

// New creates a logger that writes to stderr/stdout, filtered by level.
func New(level Level) Logger {
	return newWithWriters(level, os.Stderr, os.Stdout)
}

func newWithWriters(level Level, errOut, out io.Writer) Logger {
	return &levelLogger{
		level: level,
		err:   log.New(errOut, "[ERROR] ", log.LstdFlags),
		warn:  log.New(errOut, "[WARN] ", log.LstdFlags),
		info:  log.New(out, "[INFO] ", log.LstdFlags),
		debug: log.New(out, "[DEBUG] ", log.LstdFlags),
	}
}

func (l *levelLogger) Errorf(format string, args ...interface{}) {
	l.err.Output(2, fmt.Sprintf(format, args...))
}

func (l *levelLogger) Warnf(format string, args ...interface{}) {
	if l.level >= LevelWarn {
		l.warn.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *levelLogger) Infof(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.info.Output(2, fmt.Sprintf(format, args...))
	}
}

func (l *levelLogger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.debug.Output(2, fmt.Sprintf(format, args...))
	}
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Debugf(string, ...interface{}) {}
