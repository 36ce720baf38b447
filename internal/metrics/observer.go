package metrics

import "mime-registry/internal/filesystem"

var retryEvents = []filesystem.RetryEvent{
	filesystem.EventStale,
	filesystem.EventRetry,
	filesystem.EventRecovered,
	filesystem.EventExhausted,
}

type filesystemObserver struct{}

// NewFilesystemObserver returns a filesystem.Observer backed by the
// filesystem metrics in this package.
func NewFilesystemObserver() filesystem.Observer {
	return filesystemObserver{}
}

func (filesystemObserver) ObserveOperation(op filesystem.Operation) {
	seconds := op.Duration.Seconds()
	FilesystemOperationDuration.WithLabelValues(op.Volume, op.Name).Observe(seconds)
	if op.Err != nil {
		FilesystemOperationErrors.WithLabelValues(op.Volume, op.Name).Inc()
	}
	if op.Attempts > 1 {
		FilesystemRetryDuration.WithLabelValues(op.Name, op.Volume).Observe(seconds)
	}
}

func (filesystemObserver) ObserveRetry(event filesystem.RetryEvent, name, volume string) {
	FilesystemRetryEvents.WithLabelValues(name, volume, event.String()).Inc()
}
