// Package logger provides a small printf-style logging interface so the
// store, importers and front ends can log without choosing a backend.
//
// Subsystems tag their messages with Component, so a single import reads as
//
//	[insiderwatch] [import] read 1200 payloads from agent.jsonl (3 excluded)
//	[insiderwatch] [store] WARN: inserted 0 clipboard records
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

const (
	// DebugEnv enables debug output when set to any non-empty value.
	DebugEnv = "INSIDERWATCH_DEBUG"
	// LevelEnv sets the lowest level printed ("debug", "info", "warn", "error").
	LevelEnv = "INSIDERWATCH_LOG_LEVEL"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel reads a level name. Unknown names are reported as not ok.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// envLevel is the lowest level printed by an envLogger. INSIDERWATCH_DEBUG
// wins over INSIDERWATCH_LOG_LEVEL.
func envLevel() Level {
	if os.Getenv(DebugEnv) != "" {
		return LevelDebug
	}
	if lvl, ok := ParseLevel(os.Getenv(LevelEnv)); ok {
		return lvl
	}
	return LevelInfo
}

// envLogger logs through the standard log package, filtered by the level
// read from the environment on each call.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects INSIDERWATCH_DEBUG and
// INSIDERWATCH_LOG_LEVEL. The prefix is prepended to all log messages.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...interface{}) { l.print(LevelDebug, format, args) }
func (l *envLogger) Info(format string, args ...interface{})  { l.print(LevelInfo, format, args) }
func (l *envLogger) Warn(format string, args ...interface{})  { l.print(LevelWarn, format, args) }
func (l *envLogger) Error(format string, args ...interface{}) { l.print(LevelError, format, args) }

func (l *envLogger) print(lvl Level, format string, args []interface{}) {
	if lvl < envLevel() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch lvl {
	case LevelWarn:
		log.Printf("%s WARN: %s", l.prefix, msg)
	case LevelError:
		log.Printf("%s ERROR: %s", l.prefix, msg)
	default:
		log.Printf("%s %s", l.prefix, msg)
	}
}

// componentLogger tags every message with a subsystem name.
type componentLogger struct {
	next Logger
	tag  string
}

// Component returns a logger that prefixes messages with "[name] " before
// handing them to l. Nesting stacks the tags.
func Component(l Logger, name string) Logger {
	if l == nil {
		l = Noop()
	}
	return &componentLogger{next: l, tag: "[" + name + "] "}
}

func (c *componentLogger) Debug(format string, args ...interface{}) {
	c.next.Debug(c.tag+format, args...)
}

func (c *componentLogger) Info(format string, args ...interface{}) {
	c.next.Info(c.tag+format, args...)
}

func (c *componentLogger) Warn(format string, args ...interface{}) {
	c.next.Warn(c.tag+format, args...)
}

func (c *componentLogger) Error(format string, args ...interface{}) {
	c.next.Error(c.tag+format, args...)
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

// LogMessage is one captured message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for test assertions.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add(LevelDebug, format, args) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add(LevelInfo, format, args) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add(LevelWarn, format, args) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add(LevelError, format, args) }

func (l *BufferLogger) add(lvl Level, format string, args []interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: lvl.String(), Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains reports whether a message at level includes substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	for _, m := range l.Messages {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

var defaultLogger = NewEnvLogger("[insiderwatch]")

// Default returns the package-level logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	defaultLogger = l
}
