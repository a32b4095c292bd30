// Package scanner contains the scan driver: the per-path state machine
// that classifies, lists, searches, reports, and finally commits each path
// to the progress ledger. Ledger commit is always the last step, so an
// interrupted run loses at most the in-flight file's work and a resumed
// run never duplicates a report.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcus/arkscan/internal/classify"
	"github.com/marcus/arkscan/internal/ledger"
	"github.com/marcus/arkscan/internal/lister"
	"github.com/marcus/arkscan/internal/logger"
	"github.com/marcus/arkscan/internal/models"
	"github.com/marcus/arkscan/internal/report"
)

// DefaultKeyword is searched when no keyword is configured.
const DefaultKeyword = "swagger"

// DefaultDelay is the pause after each terminal transition. It bounds
// log and I/O pressure on large scans; zero disables it.
const DefaultDelay = 100 * time.Millisecond

// Options configures a Driver.
type Options struct {
	// Keyword is the literal substring searched per line.
	Keyword string

	// CaseInsensitive folds both keyword and content before matching.
	CaseInsensitive bool

	// Delay is the pause after each terminal transition.
	Delay time.Duration
}

// Driver carries one path at a time through the full state machine.
// Processing is strictly sequential; only one path is in flight.
type Driver struct {
	ledger   ledger.Ledger
	reporter report.Reporter
	lister   lister.Lister
	log      logger.EventLogger
	opts     Options

	summary models.RunSummary
}

// NewDriver constructs a Driver. All collaborators are required except the
// logger, which may be nil for silent operation.
func NewDriver(ldg ledger.Ledger, rep report.Reporter, lst lister.Lister, log logger.EventLogger, opts Options) *Driver {
	if opts.Keyword == "" {
		opts.Keyword = DefaultKeyword
	}
	if log == nil {
		log = logger.NewMultiLogger()
	}
	return &Driver{
		ledger:   ldg,
		reporter: rep,
		lister:   lst,
		log:      log,
		opts:     opts,
	}
}

// Run processes every directory root and every direct file input, in
// order, and returns the run summary. Per-path errors are recovered
// locally; only ledger/report write failures and context cancellation
// abort the run. The returned summary is valid either way.
func (d *Driver) Run(ctx context.Context, dirs, files []string) (models.RunSummary, error) {
	d.summary = models.RunSummary{
		RunID:     uuid.New().String(),
		Keyword:   d.opts.Keyword,
		StartedAt: time.Now(),
	}
	d.log.LogScanStart(d.summary.RunID, d.opts.Keyword)

	err := d.run(ctx, dirs, files)

	d.summary.FinishedAt = time.Now()
	d.log.LogSummary(d.summary)
	return d.summary, err
}

func (d *Driver) run(ctx context.Context, dirs, files []string) error {
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.ScanDirectory(ctx, dir); err != nil {
			return err
		}
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.ProcessFile(ctx, file); err != nil {
			return err
		}
	}

	return nil
}

// ScanDirectory walks one directory root depth-first and carries every
// regular file through the state machine, regardless of extension. A root
// that is missing or not a directory is recorded missing and ledgered so
// it is never retried; it does not abort the run.
func (d *Driver) ScanDirectory(ctx context.Context, dir string) error {
	if d.ledger.Seen(dir) {
		d.log.LogSkip(dir)
		d.summary.Skipped++
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return d.recordMissing(ctx, dir, models.OutcomeMissing)
	}

	d.log.LogDirectory(dir)

	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			d.log.LogWarn(fmt.Sprintf("cannot access %s: %v", path, walkErr))
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		return d.processPath(ctx, path, false)
	})
}

// ProcessFile carries one direct file input through the state machine.
// Unlike directory-sourced files, a missing direct file is recorded
// missing rather than attempted.
func (d *Driver) ProcessFile(ctx context.Context, path string) error {
	return d.processPath(ctx, path, true)
}

// processPath is the per-path state machine. Terminal transitions are
// reached exactly once per path: either a ledger skip, or report-then-
// ledger commit followed by the inter-file delay.
func (d *Driver) processPath(ctx context.Context, path string, direct bool) error {
	if d.ledger.Seen(path) {
		d.log.LogSkip(path)
		d.summary.Skipped++
		return nil
	}

	d.log.LogFile(path)

	if direct {
		if _, err := os.Stat(path); err != nil {
			return d.recordMissing(ctx, path, models.OutcomeMissing)
		}
	}

	kind := classify.Path(path)
	d.log.LogDebug(fmt.Sprintf("classified %s as %s", path, kind))

	text, err := d.lister.List(ctx, path, kind)
	if err != nil {
		d.log.LogWarn(fmt.Sprintf("listing %s: %v", path, err))
		return d.recordMissing(ctx, path, models.OutcomeFailed)
	}

	matched := d.searchLines(text)
	if len(matched) > 0 {
		if err := d.reporter.RecordMatch(path, matched); err != nil {
			return fmt.Errorf("record match for %s: %w", path, err)
		}
		d.summary.Matched++
		d.log.LogOutcome(path, models.OutcomeMatched)
	} else {
		d.log.LogOutcome(path, models.OutcomeClean)
	}
	d.summary.Processed++

	return d.record(ctx, path)
}

// recordMissing reports a path to the missing destination, commits it to
// the ledger, and applies the inter-file delay.
func (d *Driver) recordMissing(ctx context.Context, path string, code models.OutcomeCode) error {
	if err := d.reporter.RecordMissing(path); err != nil {
		return fmt.Errorf("record missing for %s: %w", path, err)
	}
	switch code {
	case models.OutcomeFailed:
		d.summary.Failed++
	default:
		d.summary.Missing++
	}
	d.summary.Processed++
	d.log.LogOutcome(path, code)
	return d.record(ctx, path)
}

// record commits the terminal transition: ledger append last, then the
// configured delay. A ledger write failure is fatal because resumability
// can no longer be guaranteed.
func (d *Driver) record(ctx context.Context, path string) error {
	if err := d.ledger.MarkDone(path); err != nil {
		return fmt.Errorf("mark %s done: %w", path, err)
	}
	return d.pause(ctx)
}

// pause sleeps for the configured inter-file delay, waking early on
// cancellation.
func (d *Driver) pause(ctx context.Context) error {
	if d.opts.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(d.opts.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// searchLines returns every line of text containing the keyword.
func (d *Driver) searchLines(text string) []string {
	keyword := d.opts.Keyword
	if d.opts.CaseInsensitive {
		keyword = strings.ToLower(keyword)
	}

	var matched []string
	for _, line := range strings.Split(text, "\n") {
		haystack := line
		if d.opts.CaseInsensitive {
			haystack = strings.ToLower(line)
		}
		if strings.Contains(haystack, keyword) {
			matched = append(matched, strings.TrimRight(line, "\r"))
		}
	}
	return matched
}
