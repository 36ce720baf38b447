package registry

import (
	"sort"

	"mime-registry/internal/loader"
	"mime-registry/internal/mimetypes"
)

// Registry maps file extensions and content types to MIME type records.
// It is immutable once built and safe for concurrent readers.
type Registry struct {
	byExtension   map[string]*mimetypes.Record
	byContentType map[string]*mimetypes.Record
	records       []*mimetypes.Record
	report        Report
}

// Options controls how a Registry is built.
type Options struct {
	// DisableFallback skips synthesizing the built-in records for
	// extensions the source did not provide.
	DisableFallback bool
}

// Report summarizes a registry build.
type Report struct {
	Source       string        `json:"source,omitempty"`
	Records      int           `json:"records"`
	Extensions   int           `json:"extensions"`
	ContentTypes int           `json:"contentTypes"`
	Skipped      []loader.Skip `json:"skipped,omitempty"`
	Fallbacks    []string      `json:"fallbacks,omitempty"`
	SourceError  string        `json:"sourceError,omitempty"`

	sourceErr error
}

// Err returns the error that prevented the source from loading, if any.
func (r Report) Err() error {
	return r.sourceErr
}

// Build indexes records in order.
//
// Among non-primary records the first claimant of a key wins. A primary
// record always takes the key, so of several primary claimants the last one
// wins. Entries that are malformed or normalize to an empty key are skipped
// individually and listed in the report; the rest of their record is still
// indexed. Unless disabled, built-in records are then added for the common
// web types whose keys are still free.
func Build(records []*mimetypes.Record, opts Options) (*Registry, Report) {
	r := &Registry{
		byExtension:   make(map[string]*mimetypes.Record, len(records)),
		byContentType: make(map[string]*mimetypes.Record, len(records)),
		records:       make([]*mimetypes.Record, 0, len(records)),
	}

	for i, rec := range records {
		if rec == nil {
			continue
		}
		r.records = append(r.records, rec)
		r.index(i, rec)
	}

	if !opts.DisableFallback {
		r.addFallbacks()
	}

	sort.SliceStable(r.records, func(i, j int) bool {
		return r.records[i].Less(r.records[j])
	})

	r.report.Records = len(r.records)
	r.report.Extensions = len(r.byExtension)
	r.report.ContentTypes = len(r.byContentType)

	return r, r.Report()
}

func (r *Registry) index(i int, rec *mimetypes.Record) {
	for _, ext := range rec.FileExts {
		if err := mimetypes.ValidateFileExt(ext); err != nil {
			r.skip(i, rec, mimetypes.FieldFileExt, ext, err.Error())
			continue
		}
		key := mimetypes.NormalizeExt(ext)
		if key == "" {
			r.skip(i, rec, mimetypes.FieldFileExt, ext, "empty extension")
			continue
		}
		if rec.Primary || r.byExtension[key] == nil {
			r.byExtension[key] = rec
		}
	}

	for _, ct := range rec.ContentTypes {
		if err := mimetypes.ValidateContentType(ct); err != nil {
			r.skip(i, rec, mimetypes.FieldContentType, ct, err.Error())
			continue
		}
		key := mimetypes.NormalizeContentType(ct)
		if rec.Primary || r.byContentType[key] == nil {
			r.byContentType[key] = rec
		}
	}
}

func (r *Registry) skip(i int, rec *mimetypes.Record, field, value, reason string) {
	r.report.Skipped = append(r.report.Skipped, loader.Skip{
		Index:  i,
		Name:   rec.Name,
		Field:  field,
		Value:  value,
		Reason: reason,
	})
}

// ByExtension returns the record for ext, or mimetypes.Empty. The
// extension is matched case-insensitively with or without leading dots.
func (r *Registry) ByExtension(ext string) *mimetypes.Record {
	if r == nil || ext == "" {
		return mimetypes.Empty
	}
	key := mimetypes.NormalizeExt(ext)
	if key == "" {
		return mimetypes.Empty
	}
	if rec, ok := r.byExtension[key]; ok {
		return rec
	}
	return mimetypes.Empty
}

// ByContentType returns the record for contentType, or mimetypes.Empty.
// The content type is matched case-insensitively.
func (r *Registry) ByContentType(contentType string) *mimetypes.Record {
	if r == nil || contentType == "" {
		return mimetypes.Empty
	}
	if rec, ok := r.byContentType[mimetypes.NormalizeContentType(contentType)]; ok {
		return rec
	}
	return mimetypes.Empty
}

// ContentType returns the dominant content type for ext, or "".
func (r *Registry) ContentType(ext string) string {
	return r.ByExtension(ext).ContentType()
}

// Category returns the category for ext. An empty extension is treated as
// a folder; an unknown one as CategoryUnknown.
func (r *Registry) Category(ext string) mimetypes.Category {
	if ext == "" {
		return mimetypes.CategoryFolder
	}
	rec := r.ByExtension(ext)
	if rec == mimetypes.Empty {
		return mimetypes.CategoryUnknown
	}
	return rec.Category
}

// Records returns every indexed record sorted by dominant extension.
// The returned slice is a copy; the records themselves must not be modified.
func (r *Registry) Records() []*mimetypes.Record {
	if r == nil {
		return nil
	}
	out := make([]*mimetypes.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Extensions returns the indexed extension keys in sorted order.
func (r *Registry) Extensions() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, 0, len(r.byExtension))
	for k := range r.byExtension {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Report returns the build report.
func (r *Registry) Report() Report {
	if r == nil {
		return Report{}
	}
	rep := r.report
	rep.Skipped = append([]loader.Skip(nil), r.report.Skipped...)
	rep.Fallbacks = append([]string(nil), r.report.Fallbacks...)
	return rep
}
