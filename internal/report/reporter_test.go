package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordMatchBlockFormat(t *testing.T) {
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "results.log")

	fr, err := Open(resultsPath, filepath.Join(dir, "missing.log"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fr.Close()

	if err := fr.RecordMatch("/data/b.txt", []string{"hello swagger world"}); err != nil {
		t.Fatalf("RecordMatch failed: %v", err)
	}

	data, err := os.ReadFile(resultsPath)
	if err != nil {
		t.Fatal(err)
	}

	want := separator + "\n" +
		"File: /data/b.txt\n" +
		"hello swagger world\n" +
		separator + "\n"
	if string(data) != want {
		t.Errorf("results block = %q, want %q", string(data), want)
	}
}

func TestRecordMatchMultipleLines(t *testing.T) {
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "results.log")

	fr, err := Open(resultsPath, filepath.Join(dir, "missing.log"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fr.Close()

	lines := []string{"swagger-ui.html", "docs/swagger.json"}
	if err := fr.RecordMatch("/data/a.zip", lines); err != nil {
		t.Fatalf("RecordMatch failed: %v", err)
	}

	data, _ := os.ReadFile(resultsPath)
	for _, line := range lines {
		if !strings.Contains(string(data), line+"\n") {
			t.Errorf("results missing line %q", line)
		}
	}
}

func TestRecordMissingOnePerLine(t *testing.T) {
	dir := t.TempDir()
	missingPath := filepath.Join(dir, "missing.log")

	fr, err := Open(filepath.Join(dir, "results.log"), missingPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer fr.Close()

	fr.RecordMissing("/gone/x.rar")
	fr.RecordMissing("/gone/y.tar")

	data, _ := os.ReadFile(missingPath)
	if string(data) != "/gone/x.rar\n/gone/y.tar\n" {
		t.Errorf("unexpected missing contents: %q", string(data))
	}
}

func TestReporterAppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	resultsPath := filepath.Join(dir, "results.log")
	missingPath := filepath.Join(dir, "missing.log")

	fr, _ := Open(resultsPath, missingPath)
	fr.RecordMatch("/one.txt", []string{"swagger here"})
	fr.Close()

	fr, _ = Open(resultsPath, missingPath)
	fr.RecordMatch("/two.txt", []string{"more swagger"})
	fr.Close()

	data, _ := os.ReadFile(resultsPath)
	if !strings.Contains(string(data), "File: /one.txt") ||
		!strings.Contains(string(data), "File: /two.txt") {
		t.Errorf("reopen should append, not truncate: %q", string(data))
	}
}

func TestMemReporter(t *testing.T) {
	mr := &MemReporter{}

	mr.RecordMatch("/a", []string{"line"})
	mr.RecordMissing("/b")

	if len(mr.Matches) != 1 || mr.Matches[0].Path != "/a" {
		t.Errorf("unexpected matches: %+v", mr.Matches)
	}
	if len(mr.Missing) != 1 || mr.Missing[0] != "/b" {
		t.Errorf("unexpected missing: %+v", mr.Missing)
	}
}
