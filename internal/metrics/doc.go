// Package metrics provides Prometheus instrumentation for gallery builder runs.
//
// The builder is a batch job, so nothing is scraped. Collectors live on a
// private Registry and, when a textfile path is configured, are written once at
// the end of a run with WriteTextfile for node_exporter's textfile collector.
// All metrics are prefixed with "gallery_builder_".
//
// # Metric Categories
//
// ## Import
//   - ImportedFilesTotal: Counter of originals copied into the staging tree
//   - ImportedBytesTotal: Counter of bytes copied
//
// ## Thumbnails
//   - ThumbnailsTotal: Counter by status (success, error_decode, error_write)
//   - ThumbnailDuration: Histogram of per-image decode+resize+encode time
//   - ThumbnailsReorientedTotal: Counter of images rotated or flipped from EXIF
//
// ## Manifest
//   - ManifestPhotos: Gauge of entries in the last written manifest
//   - LastSuccessTimestamp: Gauge, unix seconds of the last successful build
//   - RunDuration: Gauge of the last run's wall time
//
// ## Filesystem
//   - FilesystemRetryAttempts, FilesystemRetrySuccess, FilesystemRetryFailures,
//     FilesystemStaleErrors: NFS retry counters by operation and label
package metrics
