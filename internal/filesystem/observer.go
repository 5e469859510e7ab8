package filesystem

// Observer records filesystem retry metrics. Implementations are provided by
// the metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// ObserveRetryAttempt is called before each backoff sleep.
	// op is "stat" or "open"; label is RetryConfig.Label.
	ObserveRetryAttempt(op, label string)
	ObserveRetrySuccess(op, label string)
	ObserveRetryFailure(op, label string)
	ObserveStaleError(op, label string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

type nopObserver struct{}

func (nopObserver) ObserveRetryAttempt(string, string) {}
func (nopObserver) ObserveRetrySuccess(string, string) {}
func (nopObserver) ObserveRetryFailure(string, string) {}
func (nopObserver) ObserveStaleError(string, string)   {}

// observe is a nil-safe helper for the package-level observer.
func observe() Observer {
	if defaultObserver == nil {
		return nopObserver{}
	}
	return defaultObserver
}
