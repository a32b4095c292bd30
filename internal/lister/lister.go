// Package lister produces the searchable text for a classified file: the
// table of contents for archives, or the raw bytes for plain text. Archive
// listings come from external tools; nothing is ever extracted to disk.
package lister

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/marcus/arkscan/internal/classify"
)

// ErrListingFailed wraps every listing failure: tool not found, non-zero
// exit, timeout, or an unreadable plain file. Callers distinguish listing
// failures from programming errors with errors.Is.
var ErrListingFailed = errors.New("listing failed")

// DefaultTimeout bounds a single external tool invocation. Archive tools
// can hang on corrupt input, so expiry is surfaced as a listing failure
// rather than allowed to stall the scan.
const DefaultTimeout = 30 * time.Second

// Lister yields the flat text to be searched for a path of a known kind.
type Lister interface {
	List(ctx context.Context, path string, kind classify.Kind) (string, error)
}

// toolCommand describes one external listing invocation. Arguments are
// data; the target path is appended as the final argument, never spliced
// into a command string.
type toolCommand struct {
	name string
	args []string
}

// toolFor maps each archive kind to its listing tool. TarWz uses the
// plain tar listing, same as Tar.
var toolFor = map[classify.Kind]toolCommand{
	classify.ZipLike: {name: "unzip", args: []string{"-l"}},
	classify.Tar:     {name: "tar", args: []string{"-tf"}},
	classify.TarWz:   {name: "tar", args: []string{"-tf"}},
	classify.TarGz:   {name: "tar", args: []string{"-tzf"}},
	classify.Rar:     {name: "unrar", args: []string{"l"}},
}

// ExecLister lists archives by shelling out to the host's archive tools.
// It follows the http.Client pattern: create once, use for every path.
type ExecLister struct {
	// Timeout bounds each tool invocation. Zero means DefaultTimeout.
	Timeout time.Duration

	// lookPath allows tests to stub tool resolution.
	lookPath func(string) (string, error)
}

// NewExecLister returns an ExecLister with the default tool timeout.
func NewExecLister(timeout time.Duration) *ExecLister {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecLister{Timeout: timeout, lookPath: exec.LookPath}
}

// List returns archive table-of-contents text for archive kinds and raw
// file content for PlainText and Unknown. All failures wrap
// ErrListingFailed.
func (el *ExecLister) List(ctx context.Context, path string, kind classify.Kind) (string, error) {
	tool, ok := toolFor[kind]
	if !ok {
		// PlainText and Unknown: best-effort raw read.
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: read %s: %v", ErrListingFailed, path, err)
		}
		return string(data), nil
	}

	lookPath := el.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	toolPath, err := lookPath(tool.name)
	if err != nil {
		return "", fmt.Errorf("%w: %s not available: %v", ErrListingFailed, tool.name, err)
	}

	timeout := el.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, tool.args...), path)
	cmd := exec.CommandContext(ctx, toolPath, args...)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %s timed out after %s on %s", ErrListingFailed, tool.name, timeout, path)
		}
		return "", fmt.Errorf("%w: %s exited with error on %s: %v", ErrListingFailed, tool.name, path, err)
	}

	return string(output), nil
}
