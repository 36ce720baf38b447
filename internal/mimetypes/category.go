package mimetypes

import "strings"

// Category is a coarse classification of a MIME type.
type Category string

const (
	// CategoryUnknown represents an unrecognized type.
	CategoryUnknown Category = "unknown"
	// CategoryFolder represents a directory (no extension).
	CategoryFolder Category = "folder"
	// CategoryDocument represents office and print documents.
	CategoryDocument Category = "document"
	// CategoryImage represents raster and vector images.
	CategoryImage Category = "image"
	// CategoryAudio represents audio files.
	CategoryAudio Category = "audio"
	// CategoryVideo represents video files.
	CategoryVideo Category = "video"
	// CategoryXML represents XML documents and feeds.
	CategoryXML Category = "xml"
	// CategoryWeb represents markup and stylesheets served to browsers.
	CategoryWeb Category = "web"
	// CategoryCode represents source code and scripts.
	CategoryCode Category = "code"
	// CategoryBinary represents executables and opaque binary data.
	CategoryBinary Category = "binary"
	// CategoryCompressed represents archives and compressed streams.
	CategoryCompressed Category = "compressed"
	// CategoryText represents plain text.
	CategoryText Category = "text"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryUnknown,
	CategoryFolder,
	CategoryDocument,
	CategoryImage,
	CategoryAudio,
	CategoryVideo,
	CategoryXML,
	CategoryWeb,
	CategoryCode,
	CategoryBinary,
	CategoryCompressed,
	CategoryText,
}

// configNames holds the spelling used by configuration files.
var configNames = map[Category]string{
	CategoryUnknown:    "Unknown",
	CategoryFolder:     "Folder",
	CategoryDocument:   "Document",
	CategoryImage:      "Image",
	CategoryAudio:      "Audio",
	CategoryVideo:      "Video",
	CategoryXML:        "Xml",
	CategoryWeb:        "Web",
	CategoryCode:       "Code",
	CategoryBinary:     "Binary",
	CategoryCompressed: "Compressed",
	CategoryText:       "Text",
}

// ParseCategory converts a configuration name to a Category.
// Matching is case-insensitive and surrounding whitespace is ignored.
// An empty name is CategoryUnknown. The second return value is false
// when the name is not part of the enumeration.
func ParseCategory(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CategoryUnknown, true
	}
	if name == "directory" {
		return CategoryFolder, true
	}
	for _, c := range Categories {
		if string(c) == name {
			return c, true
		}
	}
	return CategoryUnknown, false
}

// ConfigName returns the spelling used in configuration files (e.g. "Image").
func (c Category) ConfigName() string {
	if name, ok := configNames[c]; ok {
		return name
	}
	return configNames[CategoryUnknown]
}

// IsValid reports whether c is part of the enumeration.
func (c Category) IsValid() bool {
	_, ok := configNames[c]
	return ok
}
