package gallery

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gallery-builder/internal/media"
)

type stagingTree struct {
	root     string
	full     string
	thumb    string
	manifest string
}

func newStagingTree(t *testing.T) stagingTree {
	t.Helper()
	root := t.TempDir()
	return stagingTree{
		root:     root,
		full:     filepath.Join(root, "assets", "gallery", "full"),
		thumb:    filepath.Join(root, "assets", "gallery", "thumb"),
		manifest: filepath.Join(root, "gallery.json"),
	}
}

func (s stagingTree) addImage(t *testing.T, rel string, w, h int) {
	t.Helper()
	path := filepath.Join(s.full, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	if strings.HasSuffix(strings.ToLower(rel), ".png") {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (s stagingTree) addFile(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(s.full, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (s stagingTree) build(t *testing.T) (int, error) {
	t.Helper()
	b := NewBuilder(Options{}, media.NewThumbnailer(media.DefaultMaxDimension, media.DefaultJPEGQuality))
	return b.Build(s.full, s.thumb, s.manifest)
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if format != "jpeg" {
		t.Errorf("%s is %s, want jpeg", path, format)
	}
	return cfg.Width, cfg.Height
}

func TestBuild_TwoImages(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "a.jpg", 2000, 1000)
	s.addImage(t, "sub/b.png", 500, 500)
	s.addFile(t, "sub/notes.txt", "not a photo")

	n, err := s.build(t)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n != 2 {
		t.Errorf("Build returned %d, want 2", n)
	}

	if w, h := imageSize(t, filepath.Join(s.thumb, "a.jpg")); w > 1400 || h > 700 {
		t.Errorf("thumb/a.jpg = %dx%d, want at most 1400x700", w, h)
	}
	if w, h := imageSize(t, filepath.Join(s.thumb, "sub", "b.jpg")); w != 500 || h != 500 {
		t.Errorf("thumb/sub/b.jpg = %dx%d, want 500x500", w, h)
	}

	m, err := Load(s.manifest)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Manifest{
		Brand:       DefaultBrand,
		ServiceArea: DefaultServiceArea,
		Categories: []Category{{
			Name: "Featured",
			Slug: "featured",
			Photos: []Photo{
				{Src: "assets/gallery/full/a.jpg", Thumb: "assets/gallery/thumb/a.jpg", Alt: "Kram Studios", Category: "Featured"},
				{Src: "assets/gallery/full/sub/b.png", Thumb: "assets/gallery/thumb/sub/b.jpg", Alt: "Kram Studios", Category: "Featured"},
			},
		}},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("manifest = %+v\nwant %+v", m, want)
	}
}

func TestBuild_EmptyGallery(t *testing.T) {
	s := newStagingTree(t)

	n, err := s.build(t)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n != 0 {
		t.Errorf("Build returned %d, want 0", n)
	}

	for _, dir := range []string{s.full, s.thumb} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s should have been created", dir)
		}
	}

	data, err := os.ReadFile(s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "brand": "Kram Studios",
  "service_area": "Located in VA — shoots anywhere in the US",
  "categories": [
    {
      "name": "Featured",
      "slug": "featured",
      "photos": []
    }
  ]
}
`
	if string(data) != want {
		t.Errorf("manifest =\n%s\nwant\n%s", data, want)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "z.jpg", 40, 30)
	s.addImage(t, "a/b.png", 30, 40)
	s.addImage(t, "a-b/c.jpeg", 10, 10)

	if _, err := s.build(t); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(s.manifest)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.build(t); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(s.manifest)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("manifests differ between runs:\n%s\n---\n%s", first, second)
	}

	m, err := Load(s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	var srcs []string
	for _, p := range m.Categories[0].Photos {
		srcs = append(srcs, strings.TrimPrefix(p.Src, "assets/gallery/full/"))
	}
	wantOrder := []string{"a/b.png", "a-b/c.jpeg", "z.jpg"}
	if !reflect.DeepEqual(srcs, wantOrder) {
		t.Errorf("order = %v, want %v", srcs, wantOrder)
	}
}

func TestBuild_EveryPathResolves(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "one.jpg", 20, 20)
	s.addImage(t, "deep/er/two.PNG", 20, 10)
	s.addImage(t, ".hidden/three.jpeg", 10, 20)

	if _, err := s.build(t); err != nil {
		t.Fatal(err)
	}
	m, err := Load(s.manifest)
	if err != nil {
		t.Fatal(err)
	}

	photos := m.Categories[0].Photos
	if len(photos) != 3 {
		t.Fatalf("got %d photos, want 3", len(photos))
	}
	base := filepath.Dir(s.manifest)
	for _, p := range photos {
		for _, rel := range []string{p.Src, p.Thumb} {
			if strings.Contains(rel, `\`) {
				t.Errorf("%q is not a web path", rel)
			}
			if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(rel))); err != nil {
				t.Errorf("%s does not resolve: %v", rel, err)
			}
		}
		if !strings.HasSuffix(p.Thumb, ".jpg") {
			t.Errorf("thumb %q should end in .jpg", p.Thumb)
		}
	}
}

func TestBuild_DecodeFailureKeepsPreviousManifest(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "1.jpg", 10, 10)
	s.addImage(t, "2.jpg", 10, 10)
	s.addFile(t, "3.jpg", "corrupt")
	s.addImage(t, "4.jpg", 10, 10)
	s.addImage(t, "5.jpg", 10, 10)

	if err := os.MkdirAll(filepath.Dir(s.manifest), 0o755); err != nil {
		t.Fatal(err)
	}
	previous := []byte(`{"brand":"previous"}`)
	if err := os.WriteFile(s.manifest, previous, 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := s.build(t)
	var decErr *media.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v, want *media.DecodeError", err)
	}
	if n != 0 {
		t.Errorf("Build returned %d on failure", n)
	}

	got, err := os.ReadFile(s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, previous) {
		t.Errorf("manifest was modified on failure: %s", got)
	}

	// Processing stops at the bad file; later images are never reached.
	if _, err := os.Stat(filepath.Join(s.thumb, "4.jpg")); !os.IsNotExist(err) {
		t.Error("thumbnails after the failing file should not exist")
	}
}

func TestBuild_ThumbnailCollision(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "a.jpg", 10, 10)
	s.addImage(t, "a.png", 20, 20)

	b := NewBuilder(Options{}, media.NewThumbnailer(0, 0))
	report, err := b.BuildReport(s.full, s.thumb, s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	if report.Collisions != 1 {
		t.Errorf("Collisions = %d, want 1", report.Collisions)
	}
	photos := report.Manifest.Categories[0].Photos
	if len(photos) != 2 || photos[0].Thumb != photos[1].Thumb {
		t.Errorf("both entries should point at the same thumbnail: %+v", photos)
	}
	if w, _ := imageSize(t, filepath.Join(s.thumb, "a.jpg")); w != 20 {
		t.Errorf("thumbnail width = %d, want the later (png) original", w)
	}
}

func TestBuild_CustomOptions(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "x.jpg", 10, 10)

	b := NewBuilder(Options{
		Brand:        "Studio Ö",
		ServiceArea:  "Anywhere",
		AltText:      "Portrait",
		CategoryName: "Weddings & Events",
	}, media.NewThumbnailer(0, 0))
	report, err := b.BuildReport(s.full, s.thumb, s.manifest)
	if err != nil {
		t.Fatal(err)
	}

	c := report.Manifest.Categories[0]
	if c.Name != "Weddings & Events" || c.Slug != "weddings-events" {
		t.Errorf("category = %q / %q", c.Name, c.Slug)
	}
	if c.Photos[0].Alt != "Portrait" || c.Photos[0].Category != "Weddings & Events" {
		t.Errorf("photo = %+v", c.Photos[0])
	}

	data, err := os.ReadFile(s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"brand": "Studio Ö"`) || !strings.Contains(string(data), "Weddings & Events") {
		t.Errorf("manifest should keep non-ASCII and HTML characters literal:\n%s", data)
	}
	if report.Photos() != 1 || len(report.Thumbnails) != 1 {
		t.Errorf("report = %d photos, %d thumbnails", report.Photos(), len(report.Thumbnails))
	}
}

type failingThumbnailer struct{ err error }

func (f failingThumbnailer) MakeThumbnail(string, string) (*media.Thumbnail, error) {
	return nil, f.err
}

func TestBuild_PropagatesThumbnailerError(t *testing.T) {
	s := newStagingTree(t)
	s.addImage(t, "x.jpg", 10, 10)

	want := os.ErrPermission
	_, err := NewBuilder(Options{}, failingThumbnailer{err: want}).Build(s.full, s.thumb, s.manifest)
	if err != want {
		t.Fatalf("err = %v, want the thumbnailer's error unchanged", err)
	}
	if _, err := os.Stat(s.manifest); !os.IsNotExist(err) {
		t.Error("no manifest should be written")
	}
}

func TestBuild_SymlinkedFullDir(t *testing.T) {
	s := newStagingTree(t)
	external := t.TempDir()
	if err := os.MkdirAll(filepath.Dir(s.full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(external, s.full); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	s.addImage(t, "a.jpg", 40, 20)

	n, err := s.build(t)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n != 1 {
		t.Fatalf("Build returned %d, want 1", n)
	}

	m, err := Load(s.manifest)
	if err != nil {
		t.Fatal(err)
	}
	photo := m.Categories[0].Photos[0]
	if photo.Src != "assets/gallery/full/a.jpg" || photo.Thumb != "assets/gallery/thumb/a.jpg" {
		t.Errorf("photo = %+v, want paths under the configured full and thumb dirs", photo)
	}
	if _, err := os.Stat(filepath.Join(s.thumb, "a.jpg")); err != nil {
		t.Errorf("thumbnail missing: %v", err)
	}
}
