package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Level is the logging severity.
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
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Logger writes to the console and a log file. The console stays clean
// (no prefixes on INFO); the file always carries timestamps and levels.
type Logger struct {
	console  *log.Logger
	file     *log.Logger
	logFile  *os.File
	minLevel Level
}

var global *Logger

// Init sets up the global logger. With verbose, DEBUG messages reach the
// console as well; they always reach the file.
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	global = &Logger{
		console:  log.New(consoleOutput, "", 0),
		file:     log.New(logFile, "", log.LstdFlags),
		logFile:  logFile,
		minLevel: minLevel,
	}
	return nil
}

// Close closes the log file.
func Close() {
	if global != nil && global.logFile != nil {
		global.logFile.Close()
	}
}

// Debug logs a debug message (file always, console only when verbose).
func Debug(format string, args ...interface{}) {
	if global == nil {
		return
	}
	global.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file).
func Info(format string, args ...interface{}) {
	if global == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	global.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file).
func Warn(format string, args ...interface{}) {
	if global == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	global.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file).
func Error(format string, args ...interface{}) {
	if global == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	global.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	l.file.Printf("[%s] %s", level, message)

	if level < l.minLevel {
		return
	}
	switch level {
	case LevelDebug:
		l.console.Printf("[DEBUG] %s", message)
	case LevelInfo:
		l.console.Printf("%s", message)
	case LevelWarn:
		l.console.Printf("⚠️  %s", message)
	case LevelError:
		l.console.Printf("❌ %s", message)
	}
}

// LogParseError records a per-file extraction failure in the log file
// only. Extraction failures are expected on messy trees and must not
// clutter the console.
func LogParseError(filePath string, err error, context string) {
	if global == nil {
		return
	}
	global.file.Printf("[PARSE_ERROR] file=%s context=%s error=%v", filePath, context, err)
	Debug("parse error in %s: %v", filePath, err)
}

// LogFilePath returns the path of the current log file.
func LogFilePath() string {
	if global != nil && global.logFile != nil {
		return global.logFile.Name()
	}
	return ""
}
