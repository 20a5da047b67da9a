package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// LogLevel represents logging verbosity
type LogLevel int

const (
	LogLevelError LogLevel = iota // Always shown
	LogLevelWarn                  // Always shown
	LogLevelInfo                  // Normal mode
	LogLevelDebug                 // Verbose mode only
)

// Logger provides structured, leveled logging with color support
type Logger struct {
	level     LogLevel
	useColors bool
	errorLog  *log.Logger
	warnLog   *log.Logger
	infoLog   *log.Logger
	debugLog  *log.Logger
}

// NewLogger creates a logger with specified level
func NewLogger(verbose bool) *Logger {
	level := LogLevelInfo
	if verbose {
		level = LogLevelDebug
	}

	return &Logger{
		level:     level,
		useColors: isTerminal(),
		errorLog:  log.New(os.Stderr, "", 0),
		warnLog:   log.New(os.Stdout, "", 0),
		infoLog:   log.New(os.Stdout, "", 0),
		debugLog:  log.New(os.Stdout, "", 0),
	}
}

// SetOutput sets the output for all loggers
func (l *Logger) SetOutput(w io.Writer) {
	l.errorLog.SetOutput(w)
	l.warnLog.SetOutput(w)
	l.infoLog.SetOutput(w)
	l.debugLog.SetOutput(w)
}

// colorize applies color formatting if colors are enabled
func (l *Logger) colorize(color, text string) string {
	if !l.useColors {
		return text
	}
	return color + text + colorReset
}

// Info logs informational messages (always visible in normal mode)
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		msg := fmt.Sprintf(format, args...)
		l.infoLog.Println(msg)
	}
}

// InfoSuccess logs success with green checkmark
func (l *Logger) InfoSuccess(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		icon := l.colorize(colorGreen, "✓")
		msg := fmt.Sprintf(format, args...)
		l.infoLog.Printf("%s %s", icon, msg)
	}
}

// Warn logs warnings (always visible)
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		icon := l.colorize(colorYellow, "⚠")
		msg := fmt.Sprintf(format, args...)
		l.warnLog.Printf("%s %s", icon, msg)
	}
}

// Error logs errors (always visible)
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		icon := l.colorize(colorRed, "✗")
		msg := fmt.Sprintf(format, args...)
		l.errorLog.Printf("%s %s", icon, msg)
	}
}

// Debug logs debug information (verbose mode only)
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		msg := fmt.Sprintf(format, args...)
		l.debugLog.Printf("[DEBUG] %s", msg)
	}
}

// DebugHTTP logs HTTP requests and responses (verbose mode only)
func (l *Logger) DebugHTTP(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		msg := fmt.Sprintf(format, args...)
		l.debugLog.Printf("[HTTP] %s", msg)
	}
}

// Stage logs a high-level stage (e.g., "Searching...")
func (l *Logger) Stage(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		msg := fmt.Sprintf(format, args...)
		colored := l.colorize(colorBold+colorCyan, msg)
		l.infoLog.Println(colored)
	}
}

// isTerminal checks if output is a terminal (for color support)
func isTerminal() bool {
	// Simple check - if stdout is a terminal
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

type loggerContextKey struct{}

// WithContext returns a context carrying this logger.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// LoggerFromContext returns the logger stored in ctx, or nil if absent.
func LoggerFromContext(ctx context.Context) *Logger {
	l, _ := ctx.Value(loggerContextKey{}).(*Logger)
	return l
}

// defaultLogger is used when no logger was placed in the context.
var defaultLogger = NewLogger(false)

func logFromContext(ctx context.Context) *Logger {
	if l := LoggerFromContext(ctx); l != nil {
		return l
	}
	return defaultLogger
}

// Package-level helpers so call sites don't need to thread *Logger explicitly.

func LogInfo(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).Info(format, args...)
}

func LogInfoSuccess(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).InfoSuccess(format, args...)
}

func LogWarn(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).Warn(format, args...)
}

func LogError(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).Error(format, args...)
}

func LogDebug(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).Debug(format, args...)
}

func LogDebugHTTP(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).DebugHTTP(format, args...)
}

func LogStage(ctx context.Context, format string, args ...interface{}) {
	logFromContext(ctx).Stage(format, args...)
}
