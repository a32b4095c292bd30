// Package logger provides the event loggers used during a scan run.
//
// Two implementations share one interface: ConsoleLogger writes leveled,
// optionally colored lines to a terminal, FileLogger appends the same
// lines to the rotating scan log destination. MultiLogger fans out to
// both. All implementations are safe for use from a single driver plus
// incidental goroutines.
package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/marcus/arkscan/internal/models"
)

// Log level constants for filtering.
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// EventLogger receives scan lifecycle events and leveled messages.
// The scan driver holds exactly one EventLogger.
type EventLogger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)

	// LogScanStart is emitted once, before the first path is considered.
	LogScanStart(runID, keyword string)

	// LogDirectory is emitted when traversal enters a directory root.
	LogDirectory(dir string)

	// LogFile is emitted before a file is classified and listed.
	LogFile(path string)

	// LogSkip is emitted when the ledger already contains the path.
	LogSkip(path string)

	// LogOutcome is emitted at the terminal transition of a path.
	LogOutcome(path string, code models.OutcomeCode)

	// LogSummary is emitted once, after the last path is recorded.
	LogSummary(summary models.RunSummary)
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it. Returns "info" for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
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

// timestamp returns the wall clock formatted for log lines.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// summaryLines renders the end-of-run summary as log lines.
func summaryLines(s models.RunSummary) []string {
	status := "COMPLETE"
	if s.Failed > 0 || s.Missing > 0 {
		status = "COMPLETE WITH ERRORS"
	}

	return []string{
		"=== SCAN SUMMARY ===",
		fmt.Sprintf("Run:       %s", s.RunID),
		fmt.Sprintf("Keyword:   %q", s.Keyword),
		fmt.Sprintf("Processed: %d", s.Processed),
		fmt.Sprintf("Matched:   %d", s.Matched),
		fmt.Sprintf("Skipped:   %d", s.Skipped),
		fmt.Sprintf("Missing:   %d", s.Missing),
		fmt.Sprintf("Failed:    %d", s.Failed),
		fmt.Sprintf("Duration:  %.1fs", s.Duration().Seconds()),
		fmt.Sprintf("Status:    %s", status),
	}
}

// MultiLogger forwards every event to each wrapped logger.
type MultiLogger struct {
	loggers []EventLogger
}

// NewMultiLogger wraps the given loggers. Nil entries are dropped.
func NewMultiLogger(loggers ...EventLogger) *MultiLogger {
	kept := make([]EventLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			kept = append(kept, l)
		}
	}
	return &MultiLogger{loggers: kept}
}

func (ml *MultiLogger) LogTrace(message string) { ml.each(func(l EventLogger) { l.LogTrace(message) }) }
func (ml *MultiLogger) LogDebug(message string) { ml.each(func(l EventLogger) { l.LogDebug(message) }) }
func (ml *MultiLogger) LogInfo(message string)  { ml.each(func(l EventLogger) { l.LogInfo(message) }) }
func (ml *MultiLogger) LogWarn(message string)  { ml.each(func(l EventLogger) { l.LogWarn(message) }) }
func (ml *MultiLogger) LogError(message string) { ml.each(func(l EventLogger) { l.LogError(message) }) }

func (ml *MultiLogger) LogScanStart(runID, keyword string) {
	ml.each(func(l EventLogger) { l.LogScanStart(runID, keyword) })
}

func (ml *MultiLogger) LogDirectory(dir string) {
	ml.each(func(l EventLogger) { l.LogDirectory(dir) })
}

func (ml *MultiLogger) LogFile(path string) {
	ml.each(func(l EventLogger) { l.LogFile(path) })
}

func (ml *MultiLogger) LogSkip(path string) {
	ml.each(func(l EventLogger) { l.LogSkip(path) })
}

func (ml *MultiLogger) LogOutcome(path string, code models.OutcomeCode) {
	ml.each(func(l EventLogger) { l.LogOutcome(path, code) })
}

func (ml *MultiLogger) LogSummary(summary models.RunSummary) {
	ml.each(func(l EventLogger) { l.LogSummary(summary) })
}

func (ml *MultiLogger) each(fn func(EventLogger)) {
	for _, l := range ml.loggers {
		fn(l)
	}
}
