// Package logger is the leveled logging seam used by springbar hosts and
// the bar group. Engine code never logs unless a Logger is injected.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// DebugEnv turns on debug output for loggers built by FromEnv.
const DebugEnv = "SPRINGBAR_DEBUG"

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type stdLogger struct {
	out   *log.Logger
	debug bool
}

// New writes to w with the given prefix. Debug messages are dropped unless
// debug is set.
func New(w io.Writer, prefix string, debug bool) Logger {
	if prefix != "" {
		prefix += " "
	}
	return &stdLogger{out: log.New(w, prefix, log.LstdFlags|log.Lmsgprefix), debug: debug}
}

// FromEnv writes to stderr and enables debug output when SPRINGBAR_DEBUG
// is non-empty.
func FromEnv(prefix string) Logger {
	return New(os.Stderr, prefix, os.Getenv(DebugEnv) != "")
}

func (l *stdLogger) Debug(format string, args ...any) {
	if l.debug {
		l.out.Printf("DEBUG: "+format, args...)
	}
}

func (l *stdLogger) Info(format string, args ...any) {
	l.out.Printf(format, args...)
}

func (l *stdLogger) Warn(format string, args ...any) {
	l.out.Printf("WARN: "+format, args...)
}

func (l *stdLogger) Error(format string, args ...any) {
	l.out.Printf("ERROR: "+format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Entry is a captured log message.
type Entry struct {
	Level   string
	Message string
}

// BufferLogger captures messages for test assertions.
type BufferLogger struct {
	Entries []Entry
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) Debug(format string, args ...any) { l.add("debug", format, args) }
func (l *BufferLogger) Info(format string, args ...any)  { l.add("info", format, args) }
func (l *BufferLogger) Warn(format string, args ...any)  { l.add("warn", format, args) }
func (l *BufferLogger) Error(format string, args ...any) { l.add("error", format, args) }

func (l *BufferLogger) add(level, format string, args []any) {
	l.Entries = append(l.Entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Count returns how many messages were logged at level.
func (l *BufferLogger) Count(level string) int {
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// HasLevel reports whether anything was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	return l.Count(level) > 0
}

func (l *BufferLogger) Clear() {
	l.Entries = l.Entries[:0]
}
