package tools

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

func FileExists(path string) bool {
	_, err := os.Stat(path)

	return !errors.Is(err, fs.ErrNotExist)
}

// MissingFiles returns the names not present in dir, keeping their order.
func MissingFiles(dir string, names []string) []string {
	res := make([]string, 0)

	for _, name := range names {
		if !FileExists(filepath.Join(dir, name)) {
			res = append(res, name)
		}
	}

	return res
}
