package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/metrics"
)

// ErrSourceNotFound is returned when the import source directory is missing.
// When the path does not exist at all the error also matches fs.ErrNotExist.
var ErrSourceNotFound = errors.New("source folder does not exist")

// ErrDestinationInSource is returned when the staging tree is the source
// folder or lies inside it.
var ErrDestinationInSource = errors.New("destination folder is inside the source folder")

// Result summarizes one import.
type Result struct {
	Files int
	Bytes int64
}

// Import copies every eligible image under sourceRoot to the same relative
// path under destRoot and returns the number of files copied. Existing
// destination files are overwritten; nothing is ever deleted.
func Import(sourceRoot, destRoot string) (int, error) {
	res, err := ImportTree(sourceRoot, destRoot)
	if err != nil {
		return 0, err
	}
	return res.Files, nil
}

// ImportTree is Import with byte totals.
func ImportTree(sourceRoot, destRoot string) (*Result, error) {
	retry := filesystem.DefaultRetryConfig()
	retry.Label = "source"

	info, err := filesystem.StatWithRetry(sourceRoot, retry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, sourceRoot, err)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, sourceRoot)
	}

	inside, err := filesystem.Within(destRoot, sourceRoot)
	if err != nil {
		return nil, err
	}
	if inside {
		return nil, fmt.Errorf("%w: %s is inside %s", ErrDestinationInSource, destRoot, sourceRoot)
	}

	logging.Info("Importing photos from %s into %s", sourceRoot, destRoot)

	res := &Result{}
	for img, err := range filesystem.ImageFiles(sourceRoot) {
		if err != nil {
			return nil, err
		}

		dest := filepath.Join(destRoot, img.RelPath)
		n, err := filesystem.CopyFile(img.Path, dest)
		if err != nil {
			return nil, err
		}
		logging.Debug("Copied %s -> %s (%d bytes)", img.Path, dest, n)

		res.Files++
		res.Bytes += n
		metrics.ImportedFilesTotal.Inc()
		metrics.ImportedBytesTotal.Add(float64(n))
	}

	logging.Info("Imported %d photos (%d bytes)", res.Files, res.Bytes)
	return res, nil
}
