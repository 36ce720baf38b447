package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"mime-registry/internal/logging"
)

// Retry operation labels.
const (
	OpStat = "stat"
	OpOpen = "open"
)

// VolumeResolver maps file paths to known volume names for metric labeling.
// It uses longest-prefix matching on absolute paths.
type VolumeResolver struct {
	// sorted by path length, longest first
	mounts []volumeMount
}

type volumeMount struct {
	path string // absolute, with trailing slash
	name string
}

// NewVolumeResolver creates a resolver from a map of volume name to path:
//
//	NewVolumeResolver(map[string]string{
//	    "config": "/etc/mime-registry",
//	    "static": "/srv/www",
//	})
func NewVolumeResolver(volumes map[string]string) *VolumeResolver {
	mounts := make([]volumeMount, 0, len(volumes))
	for name, path := range volumes {
		if path == "" {
			continue
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}
		if !strings.HasSuffix(absPath, "/") {
			absPath += "/"
		}
		mounts = append(mounts, volumeMount{path: absPath, name: name})
	}

	sort.Slice(mounts, func(i, j int) bool {
		return len(mounts[i].path) > len(mounts[j].path)
	})

	return &VolumeResolver{mounts: mounts}
}

// Resolve returns the volume name for path, or "unknown".
func (vr *VolumeResolver) Resolve(path string) string {
	if vr == nil {
		return "unknown"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "unknown"
	}

	for _, mount := range vr.mounts {
		if strings.HasPrefix(absPath+"/", mount.path) {
			return mount.name
		}
	}

	return "unknown"
}

var defaultResolver *VolumeResolver

// SetDefaultVolumeResolver sets the package-level volume resolver.
// Call this once at startup after loading configuration.
func SetDefaultVolumeResolver(vr *VolumeResolver) {
	defaultResolver = vr
}

// RetryConfig configures retry behavior for filesystem operations
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// VolumeResolver overrides the package-level resolver.
	VolumeResolver *VolumeResolver
}

// DefaultRetryConfig returns the defaults used for the mime map and static
// files: 3 retries, backing off from 50ms up to 500ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

func (c *RetryConfig) resolveVolume(path string) string {
	if c.VolumeResolver != nil {
		return c.VolumeResolver.Resolve(path)
	}
	return defaultResolver.Resolve(path)
}

// isNFSStaleError reports whether err is ESTALE (stale file handle).
func isNFSStaleError(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}
	return false
}

// retryRun tracks a single withRetry call for logging and metrics.
type retryRun struct {
	name, volume string
	start        time.Time
	obs          Observer
}

func (r *retryRun) event(e RetryEvent) {
	if r.obs != nil {
		r.obs.ObserveRetry(e, r.name, r.volume)
	}
}

func (r *retryRun) done(attempts int, err error) {
	if r.obs == nil {
		return
	}
	r.obs.ObserveOperation(Operation{
		Name:     r.name,
		Volume:   r.volume,
		Duration: time.Since(r.start),
		Attempts: attempts,
		Err:      err,
	})
}

// nextBackoff doubles d, capped at max.
func nextBackoff(d, max time.Duration) time.Duration {
	d *= 2
	if d > max {
		return max
	}
	return d
}

// withRetry runs fn until it succeeds, fails with anything other than
// ESTALE, or runs out of retries.
func withRetry[T any](name, path string, config RetryConfig, fn func(string) (T, error)) (T, error) {
	run := &retryRun{
		name:   name,
		volume: config.resolveVolume(path),
		start:  time.Now(),
		obs:    defaultObserver,
	}
	backoff := config.InitialBackoff

	var (
		v   T
		err error
	)
	for attempt := 1; ; attempt++ {
		v, err = fn(path)
		switch {
		case err == nil:
			if attempt > 1 {
				logging.Info("%s on %s recovered after %d attempts", name, path, attempt)
				run.event(EventRecovered)
			}
			run.done(attempt, nil)
			return v, nil
		case !isNFSStaleError(err):
			run.done(attempt, err)
			return v, err
		}

		run.event(EventStale)
		if attempt > config.MaxRetries {
			logging.Warn("%s on %s still stale after %d retries: %v", name, path, config.MaxRetries, err)
			run.event(EventExhausted)
			run.done(attempt, err)
			return v, err
		}

		run.event(EventRetry)
		logging.Debug("%s on %s hit a stale file handle, retry %d/%d in %v",
			name, path, attempt, config.MaxRetries, backoff)
		time.Sleep(backoff)
		backoff = nextBackoff(backoff, config.MaxBackoff)
	}
}

// StatWithRetry performs os.Stat, retrying on stale file handles.
func StatWithRetry(path string, config RetryConfig) (os.FileInfo, error) {
	return withRetry(OpStat, path, config, os.Stat)
}

// OpenWithRetry performs os.Open, retrying on stale file handles.
func OpenWithRetry(path string, config RetryConfig) (*os.File, error) {
	return withRetry(OpOpen, path, config, os.Open)
}
