package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"mime-registry/internal/mimetypes"
)

// Encode writes records in the mime map XML format, sorted by dominant
// extension. The output can be read back with Decode.
func Encode(w io.Writer, records []*mimetypes.Record) error {
	sorted := make([]*mimetypes.Record, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			sorted = append(sorted, rec)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Less(sorted[j])
	})

	doc := mimeMap{
		XMLName: xml.Name{Local: "ArrayOfMimeType"},
		Types:   make([]mimeTypeElement, 0, len(sorted)),
	}
	for _, rec := range sorted {
		el := mimeTypeElement{
			Name:         rec.Name,
			Description:  rec.Description,
			FileExts:     rec.FileExts,
			ContentTypes: rec.ContentTypes,
		}
		if rec.Primary {
			el.Primary = strconv.FormatBool(true)
		}
		if rec.Category != mimetypes.CategoryUnknown {
			el.Category = rec.Category.ConfigName()
		}
		doc.Types = append(doc.Types, el)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write xml header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode mime map: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write trailing newline: %w", err)
	}
	return nil
}
