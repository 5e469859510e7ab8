package metrics

import "github.com/prometheus/client_golang/prometheus"

// InitializeMetrics pre-populates label combinations so every series appears
// in the textfile even when its value is zero.
func InitializeMetrics() {
	for _, status := range []string{"success", "error_decode", "error_write"} {
		ThumbnailsTotal.WithLabelValues(status)
	}

	for _, op := range []string{"stat", "open"} {
		for _, label := range []string{"source", "staging"} {
			FilesystemRetryAttempts.WithLabelValues(op, label)
			FilesystemRetrySuccess.WithLabelValues(op, label)
			FilesystemRetryFailures.WithLabelValues(op, label)
			FilesystemStaleErrors.WithLabelValues(op, label)
		}
	}
}

// WriteTextfile writes the registry in the Prometheus text format. The file is
// written to a temp name and renamed so the textfile collector never reads a
// partial file.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
