package mimetypes

import (
	"fmt"
	"strings"
)

// Record represents one MIME type entry.
//
// Records are treated as immutable once they have been handed to a
// registry; callers must not modify the slices.
type Record struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	FileExts     []string `json:"fileExts" yaml:"fileExts"`
	ContentTypes []string `json:"contentTypes" yaml:"contentTypes"`
	Category     Category `json:"category"`
	Primary      bool     `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// Empty is returned by lookups that find nothing.
var Empty = &Record{
	FileExts:     []string{},
	ContentTypes: []string{},
	Category:     CategoryUnknown,
}

// FormatError reports an extension or content type that does not have the
// required separator.
type FormatError struct {
	Field string // "FileExt" or "ContentType"
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s is not correct format: %q", e.Field, e.Value)
}

// Field names used in FormatError.
const (
	FieldFileExt     = "FileExt"
	FieldContentType = "ContentType"
)

// NewRecord validates and builds a Record. Nil slices become empty slices.
// Every extension must contain a '.' and every content type a '/';
// otherwise a *FormatError is returned for the first offending entry.
func NewRecord(name, description string, fileExts, contentTypes []string, category Category, primary bool) (*Record, error) {
	if fileExts == nil {
		fileExts = []string{}
	}
	if contentTypes == nil {
		contentTypes = []string{}
	}

	for _, ext := range fileExts {
		if err := ValidateFileExt(ext); err != nil {
			return nil, err
		}
	}
	for _, ct := range contentTypes {
		if err := ValidateContentType(ct); err != nil {
			return nil, err
		}
	}

	if !category.IsValid() {
		category = CategoryUnknown
	}

	return &Record{
		Name:         name,
		Description:  description,
		FileExts:     fileExts,
		ContentTypes: contentTypes,
		Category:     category,
		Primary:      primary,
	}, nil
}

// ValidateFileExt checks that ext contains a leading or embedded '.'.
func ValidateFileExt(ext string) error {
	if !strings.Contains(ext, ".") {
		return &FormatError{Field: FieldFileExt, Value: ext}
	}
	return nil
}

// ValidateContentType checks that ct contains a '/'.
func ValidateContentType(ct string) error {
	if !strings.Contains(ct, "/") {
		return &FormatError{Field: FieldContentType, Value: ct}
	}
	return nil
}

// FileExt returns the dominant file extension, or "" if there is none.
func (r *Record) FileExt() string {
	if r == nil || len(r.FileExts) == 0 {
		return ""
	}
	return r.FileExts[0]
}

// ContentType returns the dominant content type, or "" if there is none.
func (r *Record) ContentType() string {
	if r == nil || len(r.ContentTypes) == 0 {
		return ""
	}
	return r.ContentTypes[0]
}

// IsEmpty reports whether r is the Empty sentinel or carries no
// extensions and no content types.
func (r *Record) IsEmpty() bool {
	return r == nil || r == Empty || (len(r.FileExts) == 0 && len(r.ContentTypes) == 0)
}

// Less orders records by dominant extension, falling back to name when
// the extensions are equal.
func (r *Record) Less(other *Record) bool {
	a, b := r.FileExt(), other.FileExt()
	if a != b {
		return a < b
	}
	return r.Name < other.Name
}

// NormalizeExt lower-cases ext and ensures exactly one leading dot.
// It returns "" when nothing remains after stripping dots.
func NormalizeExt(ext string) string {
	ext = strings.TrimLeft(strings.ToLower(ext), ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// NormalizeContentType lower-cases ct.
func NormalizeContentType(ct string) string {
	return strings.ToLower(ct)
}
