package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/marcus/arkscan/internal/models"
)

// RotationConfig controls size-based rotation of the scan log destination.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultRotation is used when the config file leaves the log section out.
var DefaultRotation = RotationConfig{
	MaxSizeMB:  20,
	MaxBackups: 3,
	MaxAgeDays: 30,
}

// FileLogger appends timestamped scan events to the log destination.
// Rotation is handled by lumberjack so a long scan campaign cannot grow
// the log without bound. It is thread-safe and supports level filtering.
type FileLogger struct {
	out      *lumberjack.Logger
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger opens a FileLogger writing to path with the given minimum
// level and rotation settings. Zero-valued rotation fields fall back to
// DefaultRotation.
func NewFileLogger(path string, logLevel string, rotation RotationConfig) *FileLogger {
	if rotation.MaxSizeMB <= 0 {
		rotation.MaxSizeMB = DefaultRotation.MaxSizeMB
	}
	if rotation.MaxBackups <= 0 {
		rotation.MaxBackups = DefaultRotation.MaxBackups
	}
	if rotation.MaxAgeDays <= 0 {
		rotation.MaxAgeDays = DefaultRotation.MaxAgeDays
	}

	return &FileLogger{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
		},
		logLevel: normalizeLogLevel(logLevel),
	}
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// LogScanStart writes the run header.
func (fl *FileLogger) LogScanStart(runID, keyword string) {
	fl.write(fmt.Sprintf("=== Scan run %s started at %s (keyword %q) ===\n",
		runID, time.Now().Format(time.RFC3339), keyword))
}

// LogDirectory logs entry into a directory root.
func (fl *FileLogger) LogDirectory(dir string) {
	fl.logWithLevel("INFO", fmt.Sprintf("scanning directory %s", dir))
}

// LogFile logs per-file processing. File logs keep per-file lines at INFO
// because the file is the audit trail of what was attempted.
func (fl *FileLogger) LogFile(path string) {
	fl.logWithLevel("INFO", fmt.Sprintf("processing %s", path))
}

// LogSkip logs a ledger skip.
func (fl *FileLogger) LogSkip(path string) {
	fl.logWithLevel("INFO", fmt.Sprintf("skipping %s (already done)", path))
}

// LogOutcome logs the terminal state of a path.
func (fl *FileLogger) LogOutcome(path string, code models.OutcomeCode) {
	level := "INFO"
	if code == models.OutcomeMissing || code == models.OutcomeFailed {
		level = "WARN"
	}
	fl.logWithLevel(level, fmt.Sprintf("%s: %s", code, path))
}

// LogSummary writes the end-of-run summary block.
func (fl *FileLogger) LogSummary(summary models.RunSummary) {
	var b strings.Builder
	ts := timestamp()
	b.WriteByte('\n')
	for _, line := range summaryLines(summary) {
		fmt.Fprintf(&b, "[%s] %s\n", ts, line)
	}
	fmt.Fprintf(&b, "[%s] Completed at: %s\n", ts, time.Now().Format(time.RFC3339))
	fl.write(b.String())
}

// Close closes the underlying rotating writer.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.out.Close()
}

// logWithLevel writes a message at the specified level if filtering
// allows it.
func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// write is a thread-safe helper that appends to the rotating log.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.out.Write([]byte(message))
}
