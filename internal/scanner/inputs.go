package scanner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadPathList reads a newline-delimited list of paths. Blank lines and
// surrounding whitespace are dropped. A missing or unreadable list file is
// a configuration error and aborts the run; an empty list is not.
func ReadPathList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input list %s: %w", path, err)
	}
	defer file.Close()

	var paths []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input list %s: %w", path, err)
	}

	return paths, nil
}
