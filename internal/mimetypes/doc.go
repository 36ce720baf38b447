// Package mimetypes provides the record and category types shared by the
// registry, the XML loader and the HTTP handlers.
//
// This package is dependency-free so it can be imported anywhere without
// creating import cycles.
//
// # Records
//
// A Record describes one MIME type: its display name, the file extensions
// and content types it covers, a coarse Category and whether it is the
// primary claimant when two records share an extension or content type.
// Records are built with NewRecord, which validates entry formats:
//
//	rec, err := mimetypes.NewRecord("JPEG Image", "", []string{".jpg", ".jpeg"},
//	    []string{"image/jpeg"}, mimetypes.CategoryImage, true)
//	if err != nil {
//	    var fe *mimetypes.FormatError
//	    errors.As(err, &fe) // fe.Field, fe.Value
//	}
//
// The first extension and first content type are the dominant ones:
//
//	rec.FileExt()     // ".jpg"
//	rec.ContentType() // "image/jpeg"
//
// # Categories
//
// Category is a closed enumeration. ParseCategory accepts the names used in
// configuration files case-insensitively, including the "Directory" alias
// for CategoryFolder.
//
// # Empty
//
// Lookups never fail. A miss returns the Empty sentinel, which reports
// CategoryUnknown and empty dominant values:
//
//	if rec.IsEmpty() {
//	    // unknown extension
//	}
package mimetypes
