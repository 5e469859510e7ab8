package gallery

import (
	"path/filepath"
	"strings"
)

// WebPath rewrites a filesystem path with forward slashes only. Backslashes
// are replaced on every platform.
func WebPath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// RelWebPath returns target relative to base as a web path.
func RelWebPath(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return WebPath(rel), nil
}
