// Package report persists scan outcomes: match blocks to the results
// destination and missing/failed paths to the missing destination. Both
// destinations are append-only; prior entries are never rewritten.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// separator frames each match block in the results destination.
const separator = "----------------------------------------"

// Reporter records per-path outcomes. Every write is durable before the
// corresponding ledger entry is committed, so a crash between the two at
// worst re-reports on resume and never silently loses a report.
type Reporter interface {
	RecordMatch(path string, lines []string) error
	RecordMissing(path string) error
	Close() error
}

// FileReporter appends to two files on disk. Writes are synced before
// returning.
type FileReporter struct {
	results *os.File
	missing *os.File
}

// Open creates (or appends to) the results and missing destinations.
func Open(resultsPath, missingPath string) (*FileReporter, error) {
	results, err := openAppend(resultsPath)
	if err != nil {
		return nil, err
	}
	missing, err := openAppend(missingPath)
	if err != nil {
		results.Close()
		return nil, err
	}
	return &FileReporter{results: results, missing: missing}, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open report destination %s: %w", path, err)
	}
	return file, nil
}

// RecordMatch appends one block: separator, "File: <path>", each matching
// line, separator.
func (fr *FileReporter) RecordMatch(path string, lines []string) error {
	var b strings.Builder
	b.WriteString(separator)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "File: %s\n", path)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(separator)
	b.WriteByte('\n')

	if _, err := fr.results.WriteString(b.String()); err != nil {
		return fmt.Errorf("write match record: %w", err)
	}
	if err := fr.results.Sync(); err != nil {
		return fmt.Errorf("sync results: %w", err)
	}
	return nil
}

// RecordMissing appends path to the missing destination, one per line.
func (fr *FileReporter) RecordMissing(path string) error {
	if _, err := fmt.Fprintln(fr.missing, path); err != nil {
		return fmt.Errorf("write missing record: %w", err)
	}
	if err := fr.missing.Sync(); err != nil {
		return fmt.Errorf("sync missing: %w", err)
	}
	return nil
}

// Close closes both destinations, returning the first error.
func (fr *FileReporter) Close() error {
	var firstErr error
	if fr.results != nil {
		if err := fr.results.Close(); err != nil {
			firstErr = err
		}
		fr.results = nil
	}
	if fr.missing != nil {
		if err := fr.missing.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		fr.missing = nil
	}
	return firstErr
}

// MemReporter collects records in memory for tests.
type MemReporter struct {
	Matches []MatchEntry
	Missing []string
}

// MatchEntry is one recorded match.
type MatchEntry struct {
	Path  string
	Lines []string
}

// RecordMatch stores the match in memory.
func (mr *MemReporter) RecordMatch(path string, lines []string) error {
	mr.Matches = append(mr.Matches, MatchEntry{Path: path, Lines: lines})
	return nil
}

// RecordMissing stores the path in memory.
func (mr *MemReporter) RecordMissing(path string) error {
	mr.Missing = append(mr.Missing, path)
	return nil
}

// Close is a no-op.
func (mr *MemReporter) Close() error { return nil }
