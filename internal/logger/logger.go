// Package logger is the leveled diagnostic output shared by mosdef's
// packages. Command output never goes through it; it only carries what
// --verbose and MOSDEF_DEBUG reveal, plus warnings.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// DebugEnv turns on debug output when set to any value.
const DebugEnv = "MOSDEF_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Level names a message severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// writerLogger prefixes each line with its tag and level.
type writerLogger struct {
	out   *log.Logger
	debug bool
}

// New returns a logger writing to w. Debug lines are kept when verbose is
// set or DebugEnv is present in the environment.
func New(w io.Writer, prefix string, verbose bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	if prefix != "" {
		prefix += " "
	}
	return &writerLogger{
		out:   log.New(w, prefix, 0),
		debug: verbose || os.Getenv(DebugEnv) != "",
	}
}

func (l *writerLogger) emit(level Level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if level != LevelInfo && level != LevelDebug {
		msg = fmt.Sprintf("%s: %s", level, msg)
	}
	l.out.Print(msg)
}

func (l *writerLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.emit(LevelDebug, format, args...)
	}
}

func (l *writerLogger) Info(format string, args ...interface{}) {
	l.emit(LevelInfo, format, args...)
}

func (l *writerLogger) Warn(format string, args ...interface{}) {
	l.emit(LevelWarn, format, args...)
}

func (l *writerLogger) Error(format string, args ...interface{}) {
	l.emit(LevelError, format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Entry is one captured message.
type Entry struct {
	Level   Level
	Message string
}

// BufferLogger records every message, debug included, for tests.
type BufferLogger struct {
	Messages []Entry
}

// NewBufferLogger creates an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) record(level Level, format string, args []interface{}) {
	l.Messages = append(l.Messages, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.record(LevelDebug, format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.record(LevelInfo, format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.record(LevelWarn, format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.record(LevelError, format, args) }

// HasLevel reports whether anything was logged at level.
func (l *BufferLogger) HasLevel(level Level) bool {
	return len(l.At(level)) > 0
}

// At returns the messages logged at level, in order.
func (l *BufferLogger) At(level Level) []string {
	var out []string
	for _, m := range l.Messages {
		if m.Level == level {
			out = append(out, m.Message)
		}
	}
	return out
}

// Reset drops every captured message.
func (l *BufferLogger) Reset() {
	l.Messages = nil
}
