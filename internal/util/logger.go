// BYZRA ⸻ internal/util/logger.go
// console diagnostics with a severity threshold

package util

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// severity of log entries
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// parses debug|info|warning|error
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// one line per message, no timestamps
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  LogLevel
	styled bool
}

// styled renders lines with the palette; plain text otherwise
func NewLogger(out io.Writer, level LogLevel, styled bool) *Logger {
	return &Logger{out: out, level: level, styled: styled}
}

// drops everything
func Discard() *Logger {
	return NewLogger(io.Discard, LevelError+1, false)
}

func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// writes a message when level reaches the threshold
func (l *Logger) Log(level LogLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	line := message
	if l.styled {
		line = render(level, message)
	}
	fmt.Fprintln(l.out, line)
}

func render(level LogLevel, message string) string {
	switch level {
	case LevelDebug:
		return SUB.Render(message)
	case LevelWarning:
		return SEC.Render(message)
	case LevelError:
		return BRH.Render(message)
	default:
		return NSH.Render(message)
	}
}

func (l *Logger) Debug(message string) {
	l.Log(LevelDebug, message)
}

func (l *Logger) Info(message string) {
	l.Log(LevelInfo, message)
}

func (l *Logger) Warning(message string) {
	l.Log(LevelWarning, message)
}

func (l *Logger) Error(message string) {
	l.Log(LevelError, message)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...any) {
	l.Log(LevelWarning, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Log(LevelError, fmt.Sprintf(format, args...))
}
