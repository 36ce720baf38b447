// Package registry builds and queries the MIME type registry.
//
// A Registry is built once from an ordered list of records and is
// read-only afterwards, so it can be shared between goroutines without
// locking:
//
//	reg, err := registry.Load(registry.LoadConfig{
//	    Path:   loader.ResolvePath(os.Getenv(loader.EnvMapPath)),
//	    Policy: registry.PolicyLenient,
//	})
//	if err != nil {
//	    // only possible with PolicyStrict
//	}
//
//	reg.ContentType("JPG")         // "image/jpeg"
//	reg.Category("")               // mimetypes.CategoryFolder
//	reg.ByContentType("text/html") // *mimetypes.Record
//
// # Conflicts
//
// When several records claim the same extension or content type:
//
//   - two non-primary records: the first one loaded wins
//   - a primary and a non-primary record: the primary one wins
//   - two primary records: the last one loaded wins
//
// # Fallbacks
//
// Unless Options.DisableFallback is set, Build adds built-in records for
// jpeg, gif, png, javascript, css, xml, rss and html when the source does
// not provide them. Built-ins only claim keys that are still free.
//
// # Process-wide access
//
// Default lazily loads a shared registry exactly once. Programs that build
// their own registry at startup can install it with SetDefault before any
// call to Default.
package registry
