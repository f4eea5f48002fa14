// Package logger provides leveled console logging for buildgate.
//
// All output is prefixed with [HH:MM:SS] timestamps. Writes are
// mutex-guarded; color is enabled automatically when the writer is a
// terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs progress to a writer with timestamps and thread safety.
// It supports log level filtering to control message verbosity.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded. Valid levels:
// trace, debug, info, warn, error (case-insensitive); empty or invalid levels
// default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// Tracef logs a trace-level message (most verbose).
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.logf("trace", "TRACE", format, args...)
}

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf("debug", "DEBUG", format, args...)
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf("info", "INFO", format, args...)
}

// Warnf logs a warning-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf("warn", "WARN", format, args...)
}

// Errorf logs an error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf("error", "ERROR", format, args...)
}

// logf formats and writes one log line: "[HH:MM:SS] [LEVEL] <message>".
func (cl *ConsoleLogger) logf(level, tag, format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")
	line := fmt.Sprintf("[%s] [%s] %s\n", timestamp, cl.colorize(level, tag), message)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprint(cl.writer, line)
}

// colorize wraps the level tag in color when writing to a terminal.
func (cl *ConsoleLogger) colorize(level, tag string) string {
	if !cl.colorOutput {
		return tag
	}
	switch level {
	case "warn":
		return color.New(color.FgYellow).Sprint(tag)
	case "error":
		return color.New(color.FgRed).Sprint(tag)
	default:
		return tag
	}
}
