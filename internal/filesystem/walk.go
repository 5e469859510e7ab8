package filesystem

import (
	"io/fs"
	"iter"
	"path/filepath"

	"gallery-builder/internal/mediatypes"
)

// ImageFile describes one eligible image found under a root.
type ImageFile struct {
	// Path is the file's path, rooted the same way as the walk root.
	Path string
	// RelPath is Path relative to the walk root, using OS separators.
	RelPath string
}

// ImageFiles yields every eligible image under root at any depth, hidden
// directories included. Directories are visited in lexical order, which orders
// paths component by component. A symlinked root is followed; symlinked
// directories below it are not descended. Path stays under root as given.
//
// A walk error is yielded once with a zero ImageFile and ends the sequence.
func ImageFiles(root string) iter.Seq2[ImageFile, error] {
	return func(yield func(ImageFile, error) bool) {
		walkRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			yield(ImageFile{}, err)
			return
		}

		stopped := false
		err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !mediatypes.IsImage(path) {
				return nil
			}

			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return err
			}
			if !yield(ImageFile{Path: filepath.Join(root, rel), RelPath: rel}, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield(ImageFile{}, err)
		}
	}
}
