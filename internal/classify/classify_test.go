package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathExtensionTable(t *testing.T) {
	cases := []struct {
		name string
		want Kind
	}{
		{"app.jar", ZipLike},
		{"app.war", ZipLike},
		{"bundle.zip", ZipLike},
		{"dump.tar", Tar},
		{"dump.tar.gz", TarGz},
		{"dump.tgz", TarGz},
		{"legacy.tar.wz", TarWz},
		{"movies.rar", Rar},
		{"data.json", PlainText},
		{"notes.txt", PlainText},
		// Extension comparison is case-insensitive on the lower-cased name.
		{"report.TAR.GZ", TarGz},
		{"ARCHIVE.ZIP", ZipLike},
		{"old.TAR.WZ", TarWz},
	}

	for _, tc := range cases {
		// Paths with known extensions never touch the filesystem, so a
		// nonexistent path is fine here.
		got := Path(filepath.Join("/nonexistent", tc.name))
		if got != tc.want {
			t.Errorf("Path(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestPathSniffZipMagic(t *testing.T) {
	path := writeFile(t, "noext", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00})

	if got := Path(path); got != ZipLike {
		t.Errorf("Path = %v, want %v", got, ZipLike)
	}
}

func TestPathSniffGzipMagic(t *testing.T) {
	path := writeFile(t, "blob", []byte{0x1F, 0x8B, 0x08, 0x00})

	if got := Path(path); got != TarGz {
		t.Errorf("Path = %v, want %v", got, TarGz)
	}
}

func TestPathSniffUstarMarker(t *testing.T) {
	// Real tar puts "ustar" at offset 257; the sniffer accepts it anywhere
	// in the first kilobyte.
	buf := make([]byte, 512)
	copy(buf[257:], "ustar")
	path := writeFile(t, "tarball", buf)

	if got := Path(path); got != Tar {
		t.Errorf("Path = %v, want %v", got, Tar)
	}
}

func TestPathSniffUnrecognized(t *testing.T) {
	path := writeFile(t, "mystery", []byte("just some text, nothing special"))

	if got := Path(path); got != Unknown {
		t.Errorf("Path = %v, want %v", got, Unknown)
	}
}

func TestPathUnknownExtensionFallsThroughToSniff(t *testing.T) {
	// ".bak" is not in the table but the content is a zip.
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.bak")
	if err := os.WriteFile(path, []byte{0x50, 0x4B, 0x03, 0x04}, 0644); err != nil {
		t.Fatal(err)
	}

	if got := Path(path); got != ZipLike {
		t.Errorf("Path = %v, want %v", got, ZipLike)
	}
}

func TestSniffMissingFile(t *testing.T) {
	if got := Sniff("/nonexistent/file"); got != Unknown {
		t.Errorf("Sniff = %v, want %v", got, Unknown)
	}
}

func TestSniffEmptyFile(t *testing.T) {
	path := writeFile(t, "empty", nil)

	if got := Sniff(path); got != Unknown {
		t.Errorf("Sniff = %v, want %v", got, Unknown)
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
