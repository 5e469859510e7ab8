package mediatypes

import (
	"os"
	"path/filepath"
	"strings"
)

// FileType represents the classification of a filesystem entry.
type FileType string

const (
	// FileTypeImage is an eligible image.
	FileTypeImage FileType = "image"
	// FileTypeOther is anything the gallery ignores.
	FileTypeOther FileType = "other"
)

// ThumbnailExt is the extension every generated thumbnail carries.
const ThumbnailExt = ".jpg"

// ImageExtensions maps lowercase extensions to whether they are eligible images.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// IsImageExt reports whether ext (with its leading dot, any case) is on the
// allow-list.
func IsImageExt(ext string) bool {
	return ImageExtensions[strings.ToLower(ext)]
}

// Ext returns the extension of the final path element. Unlike filepath.Ext, a
// name made only of a leading dot and a word (".jpg") has no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

// GetFileType classifies a name by extension only.
func GetFileType(name string) FileType {
	if IsImageExt(Ext(name)) {
		return FileTypeImage
	}
	return FileTypeOther
}

// IsImage reports whether path names an existing regular file with an eligible
// extension. Symlinks are followed.
func IsImage(path string) bool {
	if GetFileType(path) != FileTypeImage {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ThumbnailName replaces path's extension with ThumbnailExt, appending it when
// path has none.
func ThumbnailName(path string) string {
	return strings.TrimSuffix(path, Ext(path)) + ThumbnailExt
}
