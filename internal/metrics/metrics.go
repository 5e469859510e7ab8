package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every collector in this package.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Import metrics
var (
	ImportedFilesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_builder_imported_files_total",
			Help: "Total number of original images copied into the staging tree",
		},
	)

	ImportedBytesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_builder_imported_bytes_total",
			Help: "Total bytes copied into the staging tree",
		},
	)
)

// Thumbnail metrics
var (
	ThumbnailsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_builder_thumbnails_total",
			Help: "Total number of thumbnail generations by status",
		},
		[]string{"status"},
	)

	ThumbnailDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gallery_builder_thumbnail_duration_seconds",
			Help:    "Time to decode, resize and encode one thumbnail",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ThumbnailsReorientedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_builder_thumbnails_reoriented_total",
			Help: "Total number of images rotated or flipped according to EXIF orientation",
		},
	)
)

// Manifest metrics
var (
	ManifestPhotos = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_builder_manifest_photos",
			Help: "Number of photo entries in the last written manifest",
		},
	)

	LastSuccessTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_builder_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful build",
		},
	)

	RunDuration = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_builder_run_duration_seconds",
			Help: "Wall time of the last run",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_builder_filesystem_retry_attempts_total",
			Help: "Total retry attempts after NFS stale file handle errors",
		},
		[]string{"operation", "label"},
	)

	FilesystemRetrySuccess = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_builder_filesystem_retry_success_total",
			Help: "Total operations that succeeded after at least one retry",
		},
		[]string{"operation", "label"},
	)

	FilesystemRetryFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_builder_filesystem_retry_failures_total",
			Help: "Total operations that failed after exhausting retries",
		},
		[]string{"operation", "label"},
	)

	FilesystemStaleErrors = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_builder_filesystem_stale_errors_total",
			Help: "Total NFS stale file handle errors seen",
		},
		[]string{"operation", "label"},
	)
)
