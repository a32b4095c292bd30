// Package classify determines how a file's contents should be obtained:
// from its extension when the extension is known, otherwise by sniffing a
// short content prefix for archive signatures.
package classify

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the closed set of content classifications. Each kind maps to
// exactly one listing strategy in the lister package.
type Kind string

const (
	// ZipLike covers zip containers and zip-based packaging (jar, war).
	ZipLike Kind = "zip"

	// Tar is an uncompressed tar archive.
	Tar Kind = "tar"

	// TarGz is a gzip-compressed tar archive.
	TarGz Kind = "targz"

	// TarWz carries the legacy ".tar.wz" suffix. No standard tool knows
	// this format; it has always been listed as plain uncompressed tar,
	// and that mapping is preserved here.
	TarWz Kind = "tarwz"

	// Rar is a rar archive.
	Rar Kind = "rar"

	// PlainText is read directly, no listing tool involved.
	PlainText Kind = "text"

	// Unknown is anything unrecognized. It is read as plain text on a
	// best-effort basis, never treated as an error by itself.
	Unknown Kind = "unknown"
)

// extKinds maps a lower-cased final extension (without the dot) to a Kind.
var extKinds = map[string]Kind{
	"jar":  ZipLike,
	"war":  ZipLike,
	"zip":  ZipLike,
	"tar":  Tar,
	"gz":   TarGz,
	"tgz":  TarGz,
	"rar":  Rar,
	"json": PlainText,
	"txt":  PlainText,
}

// sniffLimit bounds how much of a file the signature fallback reads.
const sniffLimit = 1024

var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	gzipMagic = []byte{0x1F, 0x8B}
	tarMarker = []byte("ustar")
)

// Path classifies a file. Extension lookup wins; signature sniffing is the
// fallback when the extension is absent or unrecognized. A file that cannot
// be sniffed (unreadable, empty, no known signature) is Unknown.
func Path(path string) Kind {
	name := strings.ToLower(filepath.Base(path))

	// The two-part suffix is checked before the single-extension table so
	// "x.tar.wz" does not fall through to the sniffer via unknown "wz".
	if strings.HasSuffix(name, ".tar.wz") {
		return TarWz
	}

	if ext := extension(name); ext != "" {
		if kind, ok := extKinds[ext]; ok {
			return kind
		}
	}

	return Sniff(path)
}

// Sniff inspects up to the first 1024 bytes of a file for known archive
// signatures: the zip local-file header, the gzip magic, or the ustar
// marker anywhere in the prefix (tar stores it at offset 257, but padded
// or prefixed archives are accepted too).
func Sniff(path string) Kind {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	buf := make([]byte, sniffLimit)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown
	}
	buf = buf[:n]

	if bytes.HasPrefix(buf, zipMagic) {
		return ZipLike
	}
	if bytes.HasPrefix(buf, gzipMagic) {
		return TarGz
	}
	if bytes.Contains(buf, tarMarker) {
		return Tar
	}

	return Unknown
}

// extension returns the lower-cased final dot suffix of name without the
// dot, or "" when name has no dot.
func extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return name[idx+1:]
}
