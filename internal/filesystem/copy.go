package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSameFile is returned by CopyFile when src and dst are the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// CopyFile streams src to dst, creating dst's parent directories and
// truncating any existing dst. Copying a file onto itself, directly or through
// a link, fails with ErrSameFile and leaves it untouched. The source's permission bits and modification
// time are carried over; failing to set the time is not an error.
func CopyFile(src, dst string) (int64, error) {
	retry := DefaultRetryConfig()
	retry.Label = "source"
	in, err := OpenWithRetry(src, retry)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return 0, fmt.Errorf("copy %s to %s: %w", src, dst, ErrSameFile)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	defer out.Close()

	written, err := io.Copy(out, in)
	if err != nil {
		return written, err
	}
	if err := out.Close(); err != nil {
		return written, err
	}

	// O_TRUNC keeps an existing file's mode.
	_ = os.Chmod(dst, info.Mode().Perm())
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return written, nil
}
