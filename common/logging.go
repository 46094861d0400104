/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Adapted from unidoc/unipdf's common/logging.go: same capability-interface
 * shape (Logger, DummyLogger, package-level Log var set via SetLogger), with
 * a LogrusLogger adapter added for the CLI (§6) and a page filter used by
 * the pipeline's per-stage logging (--log-page-filter).
 */

package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Logger is the interface used for logging throughout pdftotextplus-go.
type Logger interface {
	Error(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Notice(format string, args ...interface{})
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	IsLogLevel(level LogLevel) bool
}

// DummyLogger does nothing. It is the default so library consumers don't pay
// for logging unless they opt in.
type DummyLogger struct{}

func (DummyLogger) Error(format string, args ...interface{})   {}
func (DummyLogger) Warning(format string, args ...interface{}) {}
func (DummyLogger) Notice(format string, args ...interface{})  {}
func (DummyLogger) Info(format string, args ...interface{})    {}
func (DummyLogger) Debug(format string, args ...interface{})   {}
func (DummyLogger) Trace(format string, args ...interface{})   {}

// IsLogLevel always returns true for DummyLogger, so callers that gate
// expensive formatting on it don't accidentally suppress real loggers.
func (DummyLogger) IsLogLevel(level LogLevel) bool { return true }

// LogLevel is the verbosity level for logging.
type LogLevel int

// Log level enum, most important logs have the lowest values.
const (
	LogLevelTrace   LogLevel = 5
	LogLevelDebug   LogLevel = 4
	LogLevelInfo    LogLevel = 3
	LogLevelNotice  LogLevel = 2
	LogLevelWarning LogLevel = 1
	LogLevelError   LogLevel = 0
)

// ParseLogLevel parses the --log-level CLI flag values.
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "error":
		return LogLevelError, nil
	case "warning", "warn":
		return LogLevelWarning, nil
	case "notice":
		return LogLevelNotice, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	case "trace":
		return LogLevelTrace, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ConsoleLogger is a logger that writes to os.Stdout.
type ConsoleLogger struct {
	LogLevel LogLevel
}

// NewConsoleLogger creates a new console logger.
func NewConsoleLogger(logLevel LogLevel) *ConsoleLogger {
	return &ConsoleLogger{LogLevel: logLevel}
}

func (l ConsoleLogger) IsLogLevel(level LogLevel) bool { return l.LogLevel >= level }

func (l ConsoleLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		logToWriter(os.Stdout, "[ERROR] ", format, args...)
	}
}

func (l ConsoleLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		logToWriter(os.Stdout, "[WARNING] ", format, args...)
	}
}

func (l ConsoleLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		logToWriter(os.Stdout, "[NOTICE] ", format, args...)
	}
}

func (l ConsoleLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		logToWriter(os.Stdout, "[INFO] ", format, args...)
	}
}

func (l ConsoleLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug {
		logToWriter(os.Stdout, "[DEBUG] ", format, args...)
	}
}

func (l ConsoleLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace {
		logToWriter(os.Stdout, "[TRACE] ", format, args...)
	}
}

// WriterLogger is a logger that writes to an arbitrary io.Writer (e.g. a log
// file opened by the CLI).
type WriterLogger struct {
	LogLevel LogLevel
	Output   io.Writer
}

// NewWriterLogger creates a new writer logger.
func NewWriterLogger(logLevel LogLevel, writer io.Writer) *WriterLogger {
	return &WriterLogger{Output: writer, LogLevel: logLevel}
}

func (l WriterLogger) IsLogLevel(level LogLevel) bool { return l.LogLevel >= level }

func (l WriterLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		logToWriter(l.Output, "[ERROR] ", format, args...)
	}
}

func (l WriterLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		logToWriter(l.Output, "[WARNING] ", format, args...)
	}
}

func (l WriterLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		logToWriter(l.Output, "[NOTICE] ", format, args...)
	}
}

func (l WriterLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		logToWriter(l.Output, "[INFO] ", format, args...)
	}
}

func (l WriterLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug {
		logToWriter(l.Output, "[DEBUG] ", format, args...)
	}
}

func (l WriterLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace {
		logToWriter(l.Output, "[TRACE] ", format, args...)
	}
}

func logToWriter(f io.Writer, prefix string, format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	src := fmt.Sprintf("%s%s:%d ", prefix, file, line) + format + "\n"
	fmt.Fprintf(f, src, args...)
}

// LogrusLogger adapts a *logrus.Logger to the Logger interface so the CLI
// can emit structured fields (page, stage) alongside the usual messages.
// PageFilter, when non-zero, suppresses Debug/Trace output for pages other
// than PageFilter (--log-page-filter), carried over from the original
// implementation's per-page verbose logging.
type LogrusLogger struct {
	Entry      *logrus.Entry
	LogLevel   LogLevel
	PageFilter int
}

// NewLogrusLogger builds a LogrusLogger writing JSON lines to `w`.
func NewLogrusLogger(logLevel LogLevel, w io.Writer, pageFilter int) *LogrusLogger {
	base := logrus.New()
	base.SetOutput(w)
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(toLogrusLevel(logLevel))
	return &LogrusLogger{Entry: logrus.NewEntry(base), LogLevel: logLevel, PageFilter: pageFilter}
}

// WithPage returns a LogrusLogger scoped to `page`, for stages that log
// per-page progress.
func (l *LogrusLogger) WithPage(page int) *LogrusLogger {
	return &LogrusLogger{Entry: l.Entry.WithField("page", page), LogLevel: l.LogLevel, PageFilter: l.PageFilter}
}

// WithStage returns a LogrusLogger scoped to `stage`.
func (l *LogrusLogger) WithStage(stage string) *LogrusLogger {
	return &LogrusLogger{Entry: l.Entry.WithField("stage", stage), LogLevel: l.LogLevel, PageFilter: l.PageFilter}
}

func (l *LogrusLogger) IsLogLevel(level LogLevel) bool { return l.LogLevel >= level }

func (l *LogrusLogger) Error(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelError {
		l.Entry.Errorf(format, args...)
	}
}

func (l *LogrusLogger) Warning(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelWarning {
		l.Entry.Warnf(format, args...)
	}
}

func (l *LogrusLogger) Notice(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelNotice {
		l.Entry.Infof(format, args...)
	}
}

func (l *LogrusLogger) Info(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelInfo {
		l.Entry.Infof(format, args...)
	}
}

func (l *LogrusLogger) Debug(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelDebug && l.pageAllowed() {
		l.Entry.Debugf(format, args...)
	}
}

func (l *LogrusLogger) Trace(format string, args ...interface{}) {
	if l.LogLevel >= LogLevelTrace && l.pageAllowed() {
		l.Entry.Tracef(format, args...)
	}
}

func (l *LogrusLogger) pageAllowed() bool {
	if l.PageFilter <= 0 {
		return true
	}
	page, ok := l.Entry.Data["page"]
	if !ok {
		return true
	}
	p, ok := page.(int)
	return !ok || p == l.PageFilter
}

func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelWarning:
		return logrus.WarnLevel
	case LogLevelNotice, LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelTrace:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// Log is the package-level logger used by every stage. Defaults to a no-op
// so importing this module doesn't force console output.
var Log Logger = DummyLogger{}

// SetLogger installs `logger` as the package-level logger.
func SetLogger(logger Logger) {
	Log = logger
}
