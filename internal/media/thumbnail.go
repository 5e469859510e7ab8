package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/mediatypes"
	"gallery-builder/internal/metrics"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// DefaultMaxDimension bounds both sides of a thumbnail.
	DefaultMaxDimension = 1400
	// DefaultJPEGQuality is the thumbnail encoder quality.
	DefaultJPEGQuality = 82
)

// Thumbnailer produces size-capped JPEG thumbnails.
type Thumbnailer struct {
	maxDimension int
	quality      int
}

// Thumbnail describes a generated thumbnail.
type Thumbnail struct {
	Path         string
	SourceWidth  int
	SourceHeight int
	Width        int
	Height       int
	Orientation  int
	Bytes        int64
}

// NewThumbnailer creates a Thumbnailer. Non-positive arguments select the
// defaults.
func NewThumbnailer(maxDimension, quality int) *Thumbnailer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Thumbnailer{maxDimension: maxDimension, quality: quality}
}

// MaxDimension returns the bounding box side length.
func (t *Thumbnailer) MaxDimension() int {
	return t.maxDimension
}

// MakeThumbnail writes a thumbnail of srcPath. dstPath's extension is replaced
// with .jpg and missing parent directories are created. The returned
// Thumbnail.Path is the file actually written.
func (t *Thumbnailer) MakeThumbnail(srcPath, dstPath string) (*Thumbnail, error) {
	start := time.Now()
	dstPath = mediatypes.ThumbnailName(dstPath)

	img, orientation, err := decodeOriented(srcPath)
	if err != nil {
		var decErr *DecodeError
		if errors.As(err, &decErr) {
			metrics.ThumbnailsTotal.WithLabelValues("error_decode").Inc()
		}
		return nil, err
	}

	src := img.Bounds()
	// Alpha goes before resampling, otherwise Lanczos weights transparent
	// pixels to black.
	thumb := imaging.Fit(flattenRGB(imaging.Clone(img)), t.maxDimension, t.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(t.quality)); err != nil {
		metrics.ThumbnailsTotal.WithLabelValues("error_write").Inc()
		return nil, fmt.Errorf("encode thumbnail for %s: %w", srcPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		metrics.ThumbnailsTotal.WithLabelValues("error_write").Inc()
		return nil, err
	}
	if err := filesystem.WriteFileAtomic(dstPath, buf.Bytes(), 0o644); err != nil {
		metrics.ThumbnailsTotal.WithLabelValues("error_write").Inc()
		return nil, err
	}

	metrics.ThumbnailsTotal.WithLabelValues("success").Inc()
	metrics.ThumbnailDuration.Observe(time.Since(start).Seconds())
	if orientation != OrientationNormal {
		metrics.ThumbnailsReorientedTotal.Inc()
	}

	b := thumb.Bounds()
	logging.Debug("Thumbnail %s: %dx%d -> %dx%d (orientation %d, %d bytes) in %v",
		srcPath, src.Dx(), src.Dy(), b.Dx(), b.Dy(), orientation, buf.Len(), time.Since(start))

	return &Thumbnail{
		Path:         dstPath,
		SourceWidth:  src.Dx(),
		SourceHeight: src.Dy(),
		Width:        b.Dx(),
		Height:       b.Dy(),
		Orientation:  orientation,
		Bytes:        int64(buf.Len()),
	}, nil
}

// decodeOriented decodes path and applies its EXIF orientation. The returned
// image's bounds are the upright dimensions.
func decodeOriented(path string) (image.Image, int, error) {
	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	orientation := ReadOrientation(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, 0, &DecodeError{Path: path, Err: err}
	}
	return Orient(img, orientation), orientation, nil
}

// flattenRGB drops the alpha channel in place, keeping the color values as
// they are.
func flattenRGB(img *image.NRGBA) *image.NRGBA {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
