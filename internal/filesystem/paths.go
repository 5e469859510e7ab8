package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// Within reports whether path is dir or lies below it once symlinks are
// resolved. path need not exist yet; its nearest existing ancestor is
// resolved instead.
func Within(path, dir string) (bool, error) {
	d, err := resolveExisting(dir)
	if err != nil {
		return false, err
	}
	p, err := resolveExisting(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(d, p)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// resolveExisting makes p absolute and resolves symlinks in its longest
// existing prefix, re-appending the missing tail.
func resolveExisting(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	var tail []string
	cur := abs
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		tail = append([]string{filepath.Base(cur)}, tail...)
		cur = parent
	}
}
