package gallery

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/mediatypes"
	"gallery-builder/internal/metrics"
)

// Defaults for the fixed manifest strings.
const (
	DefaultBrand        = "Kram Studios"
	DefaultServiceArea  = "Located in VA — shoots anywhere in the US"
	DefaultAltText      = "Kram Studios"
	DefaultCategoryName = "Featured"
)

// Thumbnailer generates one thumbnail. *media.Thumbnailer satisfies it.
type Thumbnailer interface {
	MakeThumbnail(srcPath, dstPath string) (*media.Thumbnail, error)
}

// Options holds the manifest's fixed strings. Empty fields take the defaults.
type Options struct {
	Brand        string
	ServiceArea  string
	AltText      string
	CategoryName string
	CategorySlug string
}

func (o Options) withDefaults() Options {
	if o.Brand == "" {
		o.Brand = DefaultBrand
	}
	if o.ServiceArea == "" {
		o.ServiceArea = DefaultServiceArea
	}
	if o.AltText == "" {
		o.AltText = DefaultAltText
	}
	if o.CategoryName == "" {
		o.CategoryName = DefaultCategoryName
	}
	if o.CategorySlug == "" {
		o.CategorySlug = Slugify(o.CategoryName)
	}
	return o
}

// Builder assembles manifests.
type Builder struct {
	opts  Options
	thumb Thumbnailer
}

// Report describes a finished build.
type Report struct {
	Manifest   *Manifest
	Thumbnails []*media.Thumbnail
	// Collisions counts originals whose thumbnail path was already produced
	// earlier in the same run (a.jpg and a.png both map to a.jpg).
	Collisions int
	Duration   time.Duration
}

// Photos returns the number of manifest entries.
func (r *Report) Photos() int {
	n := 0
	for _, c := range r.Manifest.Categories {
		n += len(c.Photos)
	}
	return n
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, thumb Thumbnailer) *Builder {
	return &Builder{opts: opts.withDefaults(), thumb: thumb}
}

// Build regenerates thumbnails for every image under fullDir into thumbDir and
// writes the manifest to manifestPath. It returns the number of photos listed.
func (b *Builder) Build(fullDir, thumbDir, manifestPath string) (int, error) {
	report, err := b.BuildReport(fullDir, thumbDir, manifestPath)
	if err != nil {
		return 0, err
	}
	return report.Photos(), nil
}

// BuildReport is Build with per-thumbnail details.
func (b *Builder) BuildReport(fullDir, thumbDir, manifestPath string) (*Report, error) {
	start := time.Now()

	fullDir, err := filepath.Abs(fullDir)
	if err != nil {
		return nil, err
	}
	thumbDir, err = filepath.Abs(thumbDir)
	if err != nil {
		return nil, err
	}
	manifestPath, err = filepath.Abs(manifestPath)
	if err != nil {
		return nil, err
	}
	manifestDir := filepath.Dir(manifestPath)

	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return nil, err
	}

	logging.Info("Building manifest from %s", fullDir)

	report := &Report{}
	photos := make([]Photo, 0)
	seen := make(map[string]string)

	for img, err := range filesystem.ImageFiles(fullDir) {
		if err != nil {
			return nil, err
		}

		src, err := RelWebPath(manifestDir, img.Path)
		if err != nil {
			return nil, err
		}

		thumbPath := mediatypes.ThumbnailName(filepath.Join(thumbDir, img.RelPath))
		thumbRel, err := filepath.Rel(manifestDir, thumbPath)
		if err != nil {
			return nil, err
		}

		if prev, ok := seen[thumbPath]; ok {
			logging.Warn("Thumbnail %s is shared by %s and %s; the later one wins", thumbRel, prev, img.RelPath)
			report.Collisions++
		}
		seen[thumbPath] = img.RelPath

		t, err := b.thumb.MakeThumbnail(img.Path, filepath.Join(manifestDir, thumbRel))
		if err != nil {
			logging.Error("Thumbnail failed for %s: %v", img.Path, err)
			return nil, err
		}
		report.Thumbnails = append(report.Thumbnails, t)

		photos = append(photos, Photo{
			Src:      src,
			Thumb:    WebPath(thumbRel),
			Alt:      b.opts.AltText,
			Category: b.opts.CategoryName,
		})
	}

	manifest := &Manifest{
		Brand:       b.opts.Brand,
		ServiceArea: b.opts.ServiceArea,
		Categories: []Category{
			{Name: b.opts.CategoryName, Slug: b.opts.CategorySlug, Photos: photos},
		},
	}

	data, err := Marshal(manifest)
	if err != nil {
		return nil, err
	}
	if err := filesystem.WriteFileAtomic(manifestPath, data, 0o644); err != nil {
		return nil, err
	}

	report.Manifest = manifest
	report.Duration = time.Since(start)

	metrics.ManifestPhotos.Set(float64(len(photos)))
	metrics.LastSuccessTimestamp.SetToCurrentTime()

	logging.Info("Wrote %s with %d photos in %v", manifestPath, len(photos), report.Duration)
	return report, nil
}

// Marshal renders a manifest as UTF-8 JSON indented by two spaces, with a
// trailing newline. Non-ASCII text and HTML characters are written literally.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads a manifest written by Marshal.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
