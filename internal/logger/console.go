package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/marcus/arkscan/internal/models"
)

// ConsoleLogger logs scan progress to a writer with timestamps and thread
// safety. All output is prefixed with [HH:MM:SS] timestamps. It supports
// log level filtering, and color output is enabled automatically when the
// writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded. logLevel
// determines the minimum level for messages to be output; empty or invalid
// levels default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs and the
// color library has not been globally disabled (NO_COLOR).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// LogScanStart logs the run header at INFO level.
func (cl *ConsoleLogger) LogScanStart(runID, keyword string) {
	cl.logWithLevel("INFO", fmt.Sprintf("scan started (run %s, keyword %q)", runID, keyword))
}

// LogDirectory logs entry into a directory root at INFO level.
func (cl *ConsoleLogger) LogDirectory(dir string) {
	cl.logWithLevel("INFO", fmt.Sprintf("scanning directory %s", dir))
}

// LogFile logs per-file processing at DEBUG level to keep large scans
// readable at the default level.
func (cl *ConsoleLogger) LogFile(path string) {
	cl.logWithLevel("DEBUG", fmt.Sprintf("processing %s", path))
}

// LogSkip logs a ledger skip at DEBUG level.
func (cl *ConsoleLogger) LogSkip(path string) {
	cl.logWithLevel("DEBUG", fmt.Sprintf("skipping %s (already done)", path))
}

// LogOutcome logs the terminal state of a path. Matches are INFO,
// missing/failed are WARN, clean completions are DEBUG.
func (cl *ConsoleLogger) LogOutcome(path string, code models.OutcomeCode) {
	switch code {
	case models.OutcomeMatched:
		cl.logWithLevel("INFO", fmt.Sprintf("match in %s", path))
	case models.OutcomeMissing, models.OutcomeFailed:
		cl.logWithLevel("WARN", fmt.Sprintf("%s: %s", code, path))
	default:
		cl.logWithLevel("DEBUG", fmt.Sprintf("%s: %s", code, path))
	}
}

// LogSummary logs the end-of-run summary at INFO level.
func (cl *ConsoleLogger) LogSummary(summary models.RunSummary) {
	for _, line := range summaryLines(summary) {
		cl.logWithLevel("INFO", line)
	}
}

// logWithLevel writes a message at the specified level if filtering
// allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// coloredLevel renders a level tag with its ANSI color.
func coloredLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}
