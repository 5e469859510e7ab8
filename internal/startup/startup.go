package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gallery-builder/internal/gallery"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"

	"github.com/pelletier/go-toml/v2"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
	OS        string
	Arch      string
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)", b.Version, b.Commit, b.BuildTime, b.GoVersion, b.OS, b.Arch)
}

// Defaults
const (
	DefaultSource       = "~/Desktop/full_Photos"
	DefaultFullDir      = "assets/gallery/full"
	DefaultThumbDir     = "assets/gallery/thumb"
	DefaultManifest     = "gallery.json"
	DefaultConfigFile   = "gallery.toml"
	DefaultLockFile     = ".gallery-builder.lock"
	EnvRoot             = "GALLERY_ROOT"
	EnvSource           = "GALLERY_SOURCE"
	EnvLogLevel         = "LOG_LEVEL"
	maxJPEGQuality      = 100
)

// Config holds all application configuration
type Config struct {
	ProjectRoot  string
	FullDir      string
	ThumbDir     string
	ManifestPath string
	// SourceDir is empty when no import should run.
	SourceDir string

	Brand        string
	ServiceArea  string
	AltText      string
	CategoryName string
	CategorySlug string

	ThumbMaxDimension int
	JPEGQuality       int

	LogLevel        logging.LogLevel
	MetricsTextfile string
	LockPath        string
	ConfigFile      string
}

// GalleryOptions returns the manifest strings for gallery.NewBuilder.
func (c *Config) GalleryOptions() gallery.Options {
	return gallery.Options{
		Brand:        c.Brand,
		ServiceArea:  c.ServiceArea,
		AltText:      c.AltText,
		CategoryName: c.CategoryName,
		CategorySlug: c.CategorySlug,
	}
}

// Overrides carries command-line values. Nil pointers mean "flag not given".
type Overrides struct {
	Root        string
	ConfigFile  string
	Source      *string
	MetricsFile *string
	LogLevel    string
}

type fileConfig struct {
	Brand        string  `toml:"brand"`
	ServiceArea  string  `toml:"service_area"`
	AltText      string  `toml:"alt_text"`
	Category     string  `toml:"category"`
	CategorySlug string  `toml:"category_slug"`
	Source       *string `toml:"source"`

	Paths struct {
		FullDir  string `toml:"full_dir"`
		ThumbDir string `toml:"thumb_dir"`
		Manifest string `toml:"manifest"`
	} `toml:"paths"`

	Thumbnails struct {
		MaxDimension int `toml:"max_dimension"`
		JPEGQuality  int `toml:"jpeg_quality"`
	} `toml:"thumbnails"`

	Logging struct {
		Level string `toml:"level"`
	} `toml:"logging"`

	Metrics struct {
		Textfile string `toml:"textfile"`
	} `toml:"metrics"`
}

// LoadConfig resolves the configuration from defaults, the config file, the
// environment and o, then validates it.
func LoadConfig(o Overrides) (*Config, error) {
	root, err := resolveRoot(o.Root)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectRoot:       root,
		Brand:             gallery.DefaultBrand,
		ServiceArea:       gallery.DefaultServiceArea,
		AltText:           gallery.DefaultAltText,
		CategoryName:      gallery.DefaultCategoryName,
		ThumbMaxDimension: media.DefaultMaxDimension,
		JPEGQuality:       media.DefaultJPEGQuality,
		LogLevel:          logging.GetLevel(),
		LockPath:          filepath.Join(root, DefaultLockFile),
	}
	fullDir, thumbDir, manifest := DefaultFullDir, DefaultThumbDir, DefaultManifest
	source := DefaultSource

	fc, path, err := readConfigFile(root, o.ConfigFile)
	if err != nil {
		return nil, err
	}
	if fc != nil {
		cfg.ConfigFile = path
		setIf(&cfg.Brand, fc.Brand)
		setIf(&cfg.ServiceArea, fc.ServiceArea)
		setIf(&cfg.AltText, fc.AltText)
		setIf(&cfg.CategoryName, fc.Category)
		setIf(&cfg.CategorySlug, fc.CategorySlug)
		setIf(&fullDir, fc.Paths.FullDir)
		setIf(&thumbDir, fc.Paths.ThumbDir)
		setIf(&manifest, fc.Paths.Manifest)
		setIf(&cfg.MetricsTextfile, fc.Metrics.Textfile)
		if fc.Source != nil {
			source = *fc.Source
		}
		if fc.Thumbnails.MaxDimension != 0 {
			cfg.ThumbMaxDimension = fc.Thumbnails.MaxDimension
		}
		if fc.Thumbnails.JPEGQuality != 0 {
			cfg.JPEGQuality = fc.Thumbnails.JPEGQuality
		}
		if fc.Logging.Level != "" {
			level, ok := logging.ParseLevel(fc.Logging.Level)
			if !ok {
				return nil, fmt.Errorf("%s: unknown log level %q", path, fc.Logging.Level)
			}
			cfg.LogLevel = level
		}
	}

	if v, ok := os.LookupEnv(EnvSource); ok {
		source = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		if level, ok := logging.ParseLevel(v); ok {
			cfg.LogLevel = level
		} else {
			logging.Warn("Invalid %s %q, keeping %s", EnvLogLevel, v, cfg.LogLevel)
		}
	}

	if o.Source != nil {
		source = *o.Source
	}
	if o.MetricsFile != nil {
		cfg.MetricsTextfile = *o.MetricsFile
	}
	if o.LogLevel != "" {
		level, ok := logging.ParseLevel(o.LogLevel)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", o.LogLevel)
		}
		cfg.LogLevel = level
	}

	cfg.FullDir = underRoot(root, fullDir)
	cfg.ThumbDir = underRoot(root, thumbDir)
	cfg.ManifestPath = underRoot(root, manifest)

	if strings.TrimSpace(source) != "" {
		cfg.SourceDir, err = ResolvePath(source)
		if err != nil {
			return nil, fmt.Errorf("resolve source folder: %w", err)
		}
	}
	if cfg.MetricsTextfile != "" {
		cfg.MetricsTextfile, err = ResolvePath(cfg.MetricsTextfile)
		if err != nil {
			return nil, fmt.Errorf("resolve metrics textfile: %w", err)
		}
	}
	if cfg.CategorySlug == "" {
		cfg.CategorySlug = gallery.Slugify(cfg.CategoryName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Brand) == "" {
		errs = append(errs, errors.New("brand must not be empty"))
	}
	if strings.TrimSpace(c.CategoryName) == "" {
		errs = append(errs, errors.New("category must not be empty"))
	}
	if c.CategorySlug == "" {
		errs = append(errs, fmt.Errorf("category %q has an empty slug", c.CategoryName))
	}
	if c.ThumbMaxDimension <= 0 {
		errs = append(errs, fmt.Errorf("thumbnails.max_dimension must be positive, got %d", c.ThumbMaxDimension))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > maxJPEGQuality {
		errs = append(errs, fmt.Errorf("thumbnails.jpeg_quality must be between 1 and %d, got %d", maxJPEGQuality, c.JPEGQuality))
	}
	if c.FullDir == c.ThumbDir {
		errs = append(errs, fmt.Errorf("full and thumb directories must differ (%s)", c.FullDir))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LogConfig writes the resolved configuration at debug level.
func LogConfig(c *Config) {
	logging.Debug("------------------------------------------------------------")
	logging.Debug("gallery-builder %s", GetBuildInfo())
	logging.Debug("------------------------------------------------------------")
	if c.ConfigFile != "" {
		logging.Debug("  Config file:    %s", c.ConfigFile)
	}
	logging.Debug("  Project root:   %s", c.ProjectRoot)
	logging.Debug("  Full dir:       %s", c.FullDir)
	logging.Debug("  Thumb dir:      %s", c.ThumbDir)
	logging.Debug("  Manifest:       %s", c.ManifestPath)
	if c.SourceDir != "" {
		logging.Debug("  Import source:  %s", c.SourceDir)
	} else {
		logging.Debug("  Import source:  DISABLED")
	}
	logging.Debug("  Thumbnails:     %dpx, quality %d", c.ThumbMaxDimension, c.JPEGQuality)
	logging.Debug("  Category:       %s (%s)", c.CategoryName, c.CategorySlug)
	logging.Debug("  Log level:      %s", c.LogLevel)
	if c.MetricsTextfile != "" {
		logging.Debug("  Metrics file:   %s", c.MetricsTextfile)
	}
}

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}

// ResolvePath expands ~ and makes p absolute.
func ResolvePath(p string) (string, error) {
	expanded, err := ExpandHome(strings.TrimSpace(p))
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

func resolveRoot(flagRoot string) (string, error) {
	root := flagRoot
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root != "" {
		return ResolvePath(root)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// readConfigFile loads explicit, or root/gallery.toml when explicit is empty
// and the file exists. It returns nil when there is nothing to read.
func readConfigFile(root, explicit string) (*fileConfig, string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(root, DefaultConfigFile)
	} else {
		var err error
		if path, err = ResolvePath(path); err != nil {
			return nil, "", err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, "", fmt.Errorf("%s: unknown keys:\n%s", path, strict.String())
		}
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return &fc, path, nil
}

func underRoot(root, p string) string {
	if expanded, err := ExpandHome(p); err == nil {
		p = expanded
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
