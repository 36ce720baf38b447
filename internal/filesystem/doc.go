/*
Package filesystem opens and stats files with retries on NFS stale file
handle errors (ESTALE).

Both the mime map and the static files served by the HTTP server may live on
network mounts, so the loader and the file handler go through this package
instead of calling os.Open and os.Stat directly:

	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
	    return err
	}
	defer f.Close()

Only ESTALE triggers a retry; every other error is returned at once. The
default configuration retries 3 times with exponential backoff from 50ms,
capped at 500ms.

Metrics are recorded through an Observer installed with SetObserver and are
labeled by volume, as resolved by the VolumeResolver installed with
SetDefaultVolumeResolver.
*/
package filesystem
