package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"

	"mime-registry/internal/mimetypes"
)

func TestReadFile(t *testing.T) {
	results, err := ReadFile(filepath.Join("testdata", "MimeMap.xml"))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}

	if len(results) != 5 {
		t.Fatalf("len(results) = %d, want 5", len(results))
	}

	jpeg := results[0].Record
	if jpeg.Name != "JPEG Image" {
		t.Errorf("Name = %q, want %q", jpeg.Name, "JPEG Image")
	}
	if !jpeg.Primary {
		t.Error("expected JPEG record to be primary")
	}
	if !reflect.DeepEqual(jpeg.FileExts, []string{".jpg", ".jpeg"}) {
		t.Errorf("FileExts = %v", jpeg.FileExts)
	}
	if jpeg.ContentType() != "image/jpeg" {
		t.Errorf("ContentType() = %q, want image/jpeg", jpeg.ContentType())
	}
	if jpeg.Category != mimetypes.CategoryImage {
		t.Errorf("Category = %v, want image", jpeg.Category)
	}
	if len(results[0].Skipped) != 0 {
		t.Errorf("unexpected skips: %v", results[0].Skipped)
	}

	text := results[1].Record
	if text.Description != "Unformatted text" {
		t.Errorf("Description = %q", text.Description)
	}
	if text.Primary {
		t.Error("expected text record to be non-primary")
	}
	if text.Category != mimetypes.CategoryText {
		t.Errorf("Category = %v, want text", text.Category)
	}

	folder := results[4].Record
	if folder.Category != mimetypes.CategoryFolder {
		t.Errorf("Directory category = %v, want folder", folder.Category)
	}
	if folder.FileExts == nil || folder.ContentTypes == nil {
		t.Error("record without entries should have empty, non-nil slices")
	}
}

func TestDecodeMalformedEntriesAreIsolated(t *testing.T) {
	results, err := ReadFile(filepath.Join("testdata", "MimeMap.xml"))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}

	broken := results[2]
	if !reflect.DeepEqual(broken.Record.FileExts, []string{".svg"}) {
		t.Errorf("FileExts = %v, want [.svg]", broken.Record.FileExts)
	}
	if !reflect.DeepEqual(broken.Record.ContentTypes, []string{"image/svg+xml"}) {
		t.Errorf("ContentTypes = %v, want [image/svg+xml]", broken.Record.ContentTypes)
	}
	if len(broken.Skipped) != 2 {
		t.Fatalf("len(Skipped) = %d, want 2", len(broken.Skipped))
	}
	if broken.Skipped[0].Field != mimetypes.FieldFileExt || broken.Skipped[0].Value != "svg" {
		t.Errorf("Skipped[0] = %+v", broken.Skipped[0])
	}
	if broken.Skipped[1].Field != mimetypes.FieldContentType || broken.Skipped[1].Value != "image-svg" {
		t.Errorf("Skipped[1] = %+v", broken.Skipped[1])
	}
	if broken.Skipped[0].Index != 2 || broken.Skipped[0].Name != "Broken" {
		t.Errorf("Skip should identify its record, got %+v", broken.Skipped[0])
	}
}

func TestDecodeLenientFlags(t *testing.T) {
	results, err := ReadFile(filepath.Join("testdata", "MimeMap.xml"))
	if err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}

	odd := results[3]
	if odd.Record.Primary {
		t.Error("invalid primary attribute should default to false")
	}
	if odd.Record.Category != mimetypes.CategoryUnknown {
		t.Errorf("Category = %v, want unknown", odd.Record.Category)
	}
	if len(odd.Skipped) != 2 {
		t.Fatalf("len(Skipped) = %d, want 2: %v", len(odd.Skipped), odd.Skipped)
	}
	if odd.Record.FileExt() != ".odd" {
		t.Errorf("record should still carry its extensions, got %v", odd.Record.FileExts)
	}
}

func TestDecodeEmptyEntry(t *testing.T) {
	doc := `<ArrayOfMimeType><MimeType><FileExt></FileExt><FileExt>.md</FileExt><ContentType>text/markdown</ContentType></MimeType></ArrayOfMimeType>`

	results, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !reflect.DeepEqual(results[0].Record.FileExts, []string{".md"}) {
		t.Errorf("FileExts = %v, want [.md]", results[0].Record.FileExts)
	}
	if len(results[0].Skipped) != 1 {
		t.Errorf("len(Skipped) = %d, want 1", len(results[0].Skipped))
	}
}

func TestDecodeMalformedDocument(t *testing.T) {
	_, err := Decode(strings.NewReader("<ArrayOfMimeType><MimeType>"))
	if err == nil {
		t.Fatal("Decode() expected error for truncated document")
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	results, err := Decode(strings.NewReader("<ArrayOfMimeType/>"))
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestDecodeEncodings(t *testing.T) {
	const body = "<ArrayOfMimeType><MimeType><Name>Caf\u00e9 Menu</Name><FileExt>.menu</FileExt>" +
		"<ContentType>text/x-menu</ContentType><Category>Text</Category></MimeType></ArrayOfMimeType>"

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(
		`<?xml version="1.0" encoding="utf-16"?>` + body)
	if err != nil {
		t.Fatalf("encoding UTF-16 fixture: %v", err)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"UTF-8", `<?xml version="1.0" encoding="utf-8"?>` + body},
		{"UTF-8 BOM", "\xef\xbb\xbf" + body},
		{"UTF-16LE BOM", utf16},
		{"Windows-1252", `<?xml version="1.0" encoding="Windows-1252"?>` + strings.Replace(body, "\u00e9", "\xe9", 1)},
		{"ISO-8859-1", `<?xml version="1.0" encoding="ISO-8859-1"?>` + strings.Replace(body, "\u00e9", "\xe9", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Decode(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("len(results) = %d, want 1", len(results))
			}
			if got := results[0].Record.Name; got != "Caf\u00e9 Menu" {
				t.Errorf("Name = %q, want %q", got, "Caf\u00e9 Menu")
			}
			if got := results[0].Record.FileExt(); got != ".menu" {
				t.Errorf("FileExt() = %q, want .menu", got)
			}
		})
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	_, err := Decode(strings.NewReader(`<?xml version="1.0" encoding="x-no-such-charset"?><ArrayOfMimeType/>`))
	if err == nil {
		t.Fatal("Decode() expected error for an unknown encoding")
	}
}

func TestReadFileMissing(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"Empty path", ""},
		{"Missing file", filepath.Join(t.TempDir(), "nope.xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path)
			if !errors.Is(err, ErrSourceUnavailable) {
				t.Errorf("ReadFile(%q) error = %v, want ErrSourceUnavailable", tt.path, err)
			}
		})
	}
}

func TestRecordsAndSkips(t *testing.T) {
	results := []Result{
		{Index: 0, Record: &mimetypes.Record{Name: "a"}},
		{Index: 1, Record: nil},
		{Index: 2, Record: &mimetypes.Record{Name: "c"}, Skipped: []Skip{{Index: 2, Field: "FileExt"}}},
	}

	records := Records(results)
	if len(records) != 2 || records[0].Name != "a" || records[1].Name != "c" {
		t.Errorf("Records() = %v", records)
	}

	skips := Skips(results)
	if len(skips) != 1 || skips[0].Index != 2 {
		t.Errorf("Skips() = %v", skips)
	}
}

func TestSkipString(t *testing.T) {
	s := Skip{Index: 3, Name: "Broken", Field: "FileExt", Value: "svg", Reason: "bad"}
	want := `record 3 (Broken): FileExt "svg" skipped: bad`
	if s.String() != want {
		t.Errorf("String() = %q, want %q", s.String(), want)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	records := []*mimetypes.Record{
		{Name: "PNG Image", FileExts: []string{".png"}, ContentTypes: []string{"image/png"}, Category: mimetypes.CategoryImage, Primary: true},
		{Name: "CSS", Description: "Cascading StyleSheet", FileExts: []string{".css"}, ContentTypes: []string{"text/css"}, Category: mimetypes.CategoryWeb},
		{Name: "Anything", FileExts: []string{}, ContentTypes: []string{"application/octet-stream"}, Category: mimetypes.CategoryUnknown},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") {
		t.Errorf("output missing xml header: %q", out[:20])
	}
	if !strings.Contains(out, `<MimeType primary="true">`) {
		t.Error("output missing primary attribute")
	}
	if !strings.Contains(out, "<Category>Web</Category>") {
		t.Error("output missing config category name")
	}

	results, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	// Sorted by dominant extension: "", ".css", ".png"
	wantOrder := []string{"Anything", "CSS", "PNG Image"}
	for i, name := range wantOrder {
		if results[i].Record.Name != name {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Record.Name, name)
		}
		if len(results[i].Skipped) != 0 {
			t.Errorf("round trip produced skips: %v", results[i].Skipped)
		}
	}

	png := results[2].Record
	if !png.Primary || png.Category != mimetypes.CategoryImage || png.ContentType() != "image/png" {
		t.Errorf("PNG record did not survive round trip: %+v", png)
	}
	css := results[1].Record
	if css.Description != "Cascading StyleSheet" || css.Primary {
		t.Errorf("CSS record did not survive round trip: %+v", css)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "map.xml")
	if err := os.WriteFile(file, []byte("<ArrayOfMimeType/>"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	t.Run("Absolute path is unchanged", func(t *testing.T) {
		if got := ResolvePath(file); got != file {
			t.Errorf("ResolvePath() = %q, want %q", got, file)
		}
	})

	t.Run("Relative path resolves against working directory", func(t *testing.T) {
		got := ResolvePath(filepath.Join("testdata", "MimeMap.xml"))
		if !filepath.IsAbs(got) {
			t.Errorf("ResolvePath() = %q, want absolute path", got)
		}
		if _, err := os.Stat(got); err != nil {
			t.Errorf("resolved path does not exist: %v", err)
		}
	})

	t.Run("Unresolvable relative path is returned as-is", func(t *testing.T) {
		if got := ResolvePath("does/not/exist.xml"); got != "does/not/exist.xml" {
			t.Errorf("ResolvePath() = %q", got)
		}
	})

	t.Run("Empty path uses default filename", func(t *testing.T) {
		if got := ResolvePath(""); filepath.Base(got) != DefaultMapFilename {
			t.Errorf("ResolvePath(\"\") = %q, want basename %q", got, DefaultMapFilename)
		}
	})
}
