// Package ledger implements the resumability log: an append-only file of
// completed path names, one per line, read back as a set on open. A path
// present in the ledger is never reprocessed by any later run.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Ledger records terminal per-path outcomes and answers membership tests.
type Ledger interface {
	// Seen reports whether path has already been fully handled.
	// Matching is exact whole-line equality, never prefix or substring.
	Seen(path string) bool

	// MarkDone durably appends path. It is called exactly once per
	// terminal outcome and must not be called for a seen path.
	MarkDone(path string) error

	Close() error
}

// FileLedger is the durable Ledger used in production. Existing entries
// are loaded into memory on open; appends go straight to disk and are
// synced before MarkDone returns, so an interrupted run loses at most the
// in-flight file's work.
type FileLedger struct {
	file *os.File
	done map[string]struct{}
}

// Open loads (or creates) the ledger file at path.
func Open(path string) (*FileLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}

	done := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		done[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		file.Close()
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	return &FileLedger{file: file, done: done}, nil
}

// Seen reports whether path is recorded, by exact whole-line match.
func (fl *FileLedger) Seen(path string) bool {
	_, ok := fl.done[path]
	return ok
}

// MarkDone appends path and syncs. The in-memory set is updated only
// after the write succeeds, so a failed append can be retried.
func (fl *FileLedger) MarkDone(path string) error {
	if _, err := fmt.Fprintln(fl.file, path); err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	if err := fl.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	fl.done[path] = struct{}{}
	return nil
}

// Close closes the underlying file.
func (fl *FileLedger) Close() error {
	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}

// MemLedger is an in-memory Ledger for tests.
type MemLedger struct {
	done map[string]struct{}
	// Appended preserves MarkDone call order for assertions.
	Appended []string
}

// NewMemLedger returns an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{done: make(map[string]struct{})}
}

// Seen reports membership.
func (ml *MemLedger) Seen(path string) bool {
	_, ok := ml.done[path]
	return ok
}

// MarkDone records path in memory.
func (ml *MemLedger) MarkDone(path string) error {
	ml.done[path] = struct{}{}
	ml.Appended = append(ml.Appended, path)
	return nil
}

// Close is a no-op.
func (ml *MemLedger) Close() error { return nil }
