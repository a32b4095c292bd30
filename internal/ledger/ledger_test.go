package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenCreatesLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fl.Close()

	if fl.Seen("/anything") {
		t.Error("fresh ledger should contain nothing")
	}
}

func TestMarkDoneAndSeen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fl.Close()

	if err := fl.MarkDone("/data/a.zip"); err != nil {
		t.Fatalf("MarkDone failed: %v", err)
	}

	if !fl.Seen("/data/a.zip") {
		t.Error("marked path should be seen")
	}
}

func TestSeenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	fl.MarkDone("/data/a.zip")
	fl.MarkDone("/data/b.txt")
	fl.Close()

	fl, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer fl.Close()

	if !fl.Seen("/data/a.zip") || !fl.Seen("/data/b.txt") {
		t.Error("entries should survive reopen")
	}
	if fl.Seen("/data/c.rar") {
		t.Error("unmarked path should not be seen")
	}
}

func TestSeenIsWholeLineExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fl.Close()

	fl.MarkDone("/a/b.zip")

	// Neither an extension of a recorded path nor a prefix of one may
	// count as seen.
	if fl.Seen("/a/b.zip.bak") {
		t.Error("/a/b.zip.bak should not match /a/b.zip")
	}
	if fl.Seen("/a/b.zi") {
		t.Error("/a/b.zi should not match /a/b.zip")
	}
	if fl.Seen("/a/b") {
		t.Error("/a/b should not match /a/b.zip")
	}
}

func TestLedgerFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	fl.MarkDone("/data/a.zip")
	fl.MarkDone("/data/b.txt")
	fl.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "/data/a.zip\n/data/b.txt\n"
	if string(data) != want {
		t.Errorf("ledger file = %q, want %q", string(data), want)
	}
}

func TestAppendOnlyAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.log")

	fl, _ := Open(path)
	fl.MarkDone("/first")
	fl.Close()

	fl, _ = Open(path)
	fl.MarkDone("/second")
	fl.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != "/first" || lines[1] != "/second" {
		t.Errorf("unexpected ledger contents: %q", string(data))
	}
}

func TestMemLedger(t *testing.T) {
	ml := NewMemLedger()

	if ml.Seen("/x") {
		t.Error("empty MemLedger should see nothing")
	}
	ml.MarkDone("/x")
	if !ml.Seen("/x") {
		t.Error("MemLedger should see marked path")
	}
	if len(ml.Appended) != 1 || ml.Appended[0] != "/x" {
		t.Errorf("unexpected append order: %v", ml.Appended)
	}
}
