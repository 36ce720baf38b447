package mimetypes

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   Category
		wantOK bool
	}{
		{"Image", "Image", CategoryImage, true},
		{"Lower case", "video", CategoryVideo, true},
		{"Upper case", "XML", CategoryXML, true},
		{"Whitespace", "  Code \n", CategoryCode, true},
		{"Folder", "Folder", CategoryFolder, true},
		{"Directory alias", "Directory", CategoryFolder, true},
		{"Text", "Text", CategoryText, true},
		{"Empty", "", CategoryUnknown, true},
		{"Unrecognized", "Spreadsheet", CategoryUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategoryConfigNameRoundTrip(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(c.ConfigName())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, true)", c.ConfigName(), got, ok, c)
		}
	}
}

func TestCategoryConfigNameUnknown(t *testing.T) {
	if got := Category("bogus").ConfigName(); got != "Unknown" {
		t.Errorf("ConfigName() = %q, want %q", got, "Unknown")
	}
}

func TestCategoryConstants(t *testing.T) {
	// Values are part of the JSON API
	if CategoryFolder != "folder" {
		t.Errorf("CategoryFolder = %v, want 'folder'", CategoryFolder)
	}
	if CategoryUnknown != "unknown" {
		t.Errorf("CategoryUnknown = %v, want 'unknown'", CategoryUnknown)
	}
	if len(Categories) != 12 {
		t.Errorf("len(Categories) = %d, want 12", len(Categories))
	}
}
