package xcstrings

import (
	"os"
	"path/filepath"
	"strings"
)

// Scan returns the catalog files directly inside dir, in directory listing
// order. Subdirectories are not descended into.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryUnreadableError{Path: dir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), Ext) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
