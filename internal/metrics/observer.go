package metrics

import "gallery-builder/internal/filesystem"

// filesystemObserver implements filesystem.Observer using the Prometheus
// counters declared in metrics.go.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records filesystem retry
// metrics.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveRetryAttempt(op, label string) {
	FilesystemRetryAttempts.WithLabelValues(op, label).Inc()
}

func (o *filesystemObserver) ObserveRetrySuccess(op, label string) {
	FilesystemRetrySuccess.WithLabelValues(op, label).Inc()
}

func (o *filesystemObserver) ObserveRetryFailure(op, label string) {
	FilesystemRetryFailures.WithLabelValues(op, label).Inc()
}

func (o *filesystemObserver) ObserveStaleError(op, label string) {
	FilesystemStaleErrors.WithLabelValues(op, label).Inc()
}
