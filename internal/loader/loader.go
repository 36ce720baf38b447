package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"mime-registry/internal/filesystem"
	"mime-registry/internal/logging"
	"mime-registry/internal/mimetypes"
)

// ErrSourceUnavailable is returned when the mime map file is not configured
// or does not exist.
var ErrSourceUnavailable = errors.New("mime map source unavailable")

// mimeMap mirrors the mime map XML document:
// an <ArrayOfMimeType> root containing <MimeType> elements.
type mimeMap struct {
	XMLName xml.Name
	Types   []mimeTypeElement `xml:"MimeType"`
}

type mimeTypeElement struct {
	Primary      string   `xml:"primary,attr,omitempty"`
	Name         string   `xml:"Name,omitempty"`
	Description  string   `xml:"Description,omitempty"`
	FileExts     []string `xml:"FileExt"`
	ContentTypes []string `xml:"ContentType"`
	Category     string   `xml:"Category,omitempty"`
}

// Skip describes one entry that was dropped while loading.
type Skip struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (s Skip) String() string {
	return fmt.Sprintf("record %d (%s): %s %q skipped: %s", s.Index, s.Name, s.Field, s.Value, s.Reason)
}

// Result is the outcome of decoding one <MimeType> element. Record is
// always set; Skipped lists the entries that were dropped from it.
type Result struct {
	Index   int
	Record  *mimetypes.Record
	Skipped []Skip
}

// Decode reads a mime map document and returns one Result per record, in
// document order. Malformed extensions and content types are removed from
// their record and reported instead of failing the whole document.
//
// UTF-16 documents must start with a byte order mark. Other encodings are
// honored from the XML declaration, e.g. encoding="windows-1252".
func Decode(r io.Reader) ([]Result, error) {
	dec := xml.NewDecoder(utf8Reader(r))
	dec.CharsetReader = charsetReader

	var doc mimeMap
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode mime map: %w", err)
	}

	results := make([]Result, 0, len(doc.Types))
	for i, el := range doc.Types {
		results = append(results, decodeRecord(i, el))
	}
	return results, nil
}

func decodeRecord(index int, el mimeTypeElement) Result {
	res := Result{Index: index}
	skip := func(field, value string, reason string) {
		res.Skipped = append(res.Skipped, Skip{
			Index:  index,
			Name:   el.Name,
			Field:  field,
			Value:  value,
			Reason: reason,
		})
	}

	fileExts := make([]string, 0, len(el.FileExts))
	for _, ext := range el.FileExts {
		ext = strings.TrimSpace(ext)
		if err := mimetypes.ValidateFileExt(ext); err != nil {
			skip(mimetypes.FieldFileExt, ext, err.Error())
			continue
		}
		fileExts = append(fileExts, ext)
	}

	contentTypes := make([]string, 0, len(el.ContentTypes))
	for _, ct := range el.ContentTypes {
		ct = strings.TrimSpace(ct)
		if err := mimetypes.ValidateContentType(ct); err != nil {
			skip(mimetypes.FieldContentType, ct, err.Error())
			continue
		}
		contentTypes = append(contentTypes, ct)
	}

	category, ok := mimetypes.ParseCategory(el.Category)
	if !ok {
		skip("Category", el.Category, "unknown category, using Unknown")
	}

	primary := false
	if el.Primary != "" {
		p, err := strconv.ParseBool(strings.TrimSpace(el.Primary))
		if err != nil {
			skip("primary", el.Primary, "not a boolean, using false")
		}
		primary = p
	}

	// Entries were validated above, so construction cannot fail.
	rec, err := mimetypes.NewRecord(el.Name, el.Description, fileExts, contentTypes, category, primary)
	if err != nil {
		logging.Error("unexpected record construction failure at index %d: %v", index, err)
		rec = &mimetypes.Record{FileExts: []string{}, ContentTypes: []string{}, Category: mimetypes.CategoryUnknown}
	}
	res.Record = rec
	return res
}

// ReadFile opens path (retrying on NFS stale handles) and decodes it.
// A missing file or empty path yields an error wrapping ErrSourceUnavailable.
func ReadFile(path string) ([]Result, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path configured", ErrSourceUnavailable)
	}

	f, err := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, path)
		}
		return nil, fmt.Errorf("failed to open mime map %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close mime map %s: %v", path, err)
		}
	}()

	return Decode(f)
}

// Records extracts the records from results, preserving order.
func Records(results []Result) []*mimetypes.Record {
	records := make([]*mimetypes.Record, 0, len(results))
	for _, res := range results {
		if res.Record != nil {
			records = append(records, res.Record)
		}
	}
	return records
}

// Skips flattens the skipped entries of all results.
func Skips(results []Result) []Skip {
	var skips []Skip
	for _, res := range results {
		skips = append(skips, res.Skipped...)
	}
	return skips
}
