package filesystem

import "time"

// RetryEvent is a step in the retry loop of a filesystem operation.
type RetryEvent int

const (
	// EventStale is an attempt that failed with a stale file handle.
	EventStale RetryEvent = iota
	// EventRetry is a retry scheduled after a stale handle.
	EventRetry
	// EventRecovered is a success after at least one retry.
	EventRecovered
	// EventExhausted is a failure after every retry was spent.
	EventExhausted
)

func (e RetryEvent) String() string {
	switch e {
	case EventStale:
		return "stale"
	case EventRetry:
		return "retry"
	case EventRecovered:
		return "recovered"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Operation describes one completed filesystem operation, retries included.
type Operation struct {
	Name     string // OpStat or OpOpen
	Volume   string // "config" for the mime map, "static" for served files
	Duration time.Duration
	Attempts int
	Err      error
}

// Observer records filesystem metrics. The metrics package provides the
// implementation, which keeps this package free of Prometheus imports.
type Observer interface {
	ObserveOperation(op Operation)
	ObserveRetry(event RetryEvent, name, volume string)
}

// nil means no metrics are recorded
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
func SetObserver(o Observer) {
	defaultObserver = o
}
