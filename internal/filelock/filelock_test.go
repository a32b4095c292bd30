package filelock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTryLockExcludesSecondHolder(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "scan.lock")

	first := New(lockPath)
	acquired, err := first.TryLock()
	if err != nil {
		t.Fatalf("first TryLock failed: %v", err)
	}
	if !acquired {
		t.Fatal("first TryLock should acquire")
	}

	second := New(lockPath)
	acquired, err = second.TryLock()
	if err != nil {
		t.Fatalf("second TryLock failed: %v", err)
	}
	if acquired {
		t.Error("second TryLock should be refused while first holds the lock")
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	acquired, err = second.TryLock()
	if err != nil {
		t.Fatalf("TryLock after release failed: %v", err)
	}
	if !acquired {
		t.Error("lock should be acquirable after release")
	}
	second.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.yaml")

	if err := AtomicWrite(path, []byte("keyword: swagger\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keyword: swagger\n" {
		t.Errorf("unexpected content: %q", string(data))
	}
}

func TestAtomicWriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("old"), 0644)

	if err := AtomicWrite(path, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", string(data))
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
