package registry

import (
	"mime-registry/internal/mimetypes"
)

// Content types the static server depends on even without a mime map.
const (
	JavaScriptContentType    = "application/javascript"
	CSSStyleSheetContentType = "text/css"
)

// builtins are synthesized when the source does not cover their dominant
// extension.
var builtins = []mimetypes.Record{
	{
		Name:         "JPEG Image",
		FileExts:     []string{".jpg", ".jpeg"},
		ContentTypes: []string{"image/jpeg", "image/pjpeg"},
		Category:     mimetypes.CategoryImage,
		Primary:      true,
	},
	{
		Name:         "GIF Image",
		FileExts:     []string{".gif"},
		ContentTypes: []string{"image/gif"},
		Category:     mimetypes.CategoryImage,
		Primary:      true,
	},
	{
		Name:         "PNG Image",
		FileExts:     []string{".png"},
		ContentTypes: []string{"image/png"},
		Category:     mimetypes.CategoryImage,
		Primary:      true,
	},
	{
		Name:         "JavaScript",
		FileExts:     []string{".js"},
		ContentTypes: []string{JavaScriptContentType, "application/ecmascript", "text/javascript", "text/ecmascript"},
		Category:     mimetypes.CategoryCode,
		Primary:      true,
	},
	{
		Name:         "Cascading StyleSheet",
		FileExts:     []string{".css"},
		ContentTypes: []string{CSSStyleSheetContentType},
		Category:     mimetypes.CategoryWeb,
		Primary:      true,
	},
	{
		Name:         "XML",
		FileExts:     []string{".xml"},
		ContentTypes: []string{"application/xml", "text/xml"},
		Category:     mimetypes.CategoryXML,
		Primary:      true,
	},
	{
		Name:         "RSS",
		FileExts:     []string{".rss"},
		ContentTypes: []string{"application/rss+xml"},
		Category:     mimetypes.CategoryXML,
		Primary:      true,
	},
	{
		Name:         "HTML",
		FileExts:     []string{".htm", ".html", ".xhtm", ".xhtml"},
		ContentTypes: []string{"text/html", "application/xhtml+xml"},
		Category:     mimetypes.CategoryWeb,
		Primary:      true,
	},
}

// Builtins returns copies of the fallback records.
func Builtins() []*mimetypes.Record {
	out := make([]*mimetypes.Record, 0, len(builtins))
	for i := range builtins {
		out = append(out, cloneRecord(&builtins[i]))
	}
	return out
}

// addFallbacks registers each built-in whose dominant extension is not
// indexed yet. Its keys are only claimed where they are still free, so a
// loaded mapping is never overwritten.
func (r *Registry) addFallbacks() {
	for _, b := range Builtins() {
		if _, ok := r.byExtension[mimetypes.NormalizeExt(b.FileExt())]; ok {
			continue
		}

		for _, ext := range b.FileExts {
			key := mimetypes.NormalizeExt(ext)
			if _, taken := r.byExtension[key]; !taken {
				r.byExtension[key] = b
			}
		}
		for _, ct := range b.ContentTypes {
			key := mimetypes.NormalizeContentType(ct)
			if _, taken := r.byContentType[key]; !taken {
				r.byContentType[key] = b
			}
		}

		r.records = append(r.records, b)
		r.report.Fallbacks = append(r.report.Fallbacks, b.Name)
	}
}

func cloneRecord(rec *mimetypes.Record) *mimetypes.Record {
	c := *rec
	c.FileExts = append([]string{}, rec.FileExts...)
	c.ContentTypes = append([]string{}, rec.ContentTypes...)
	return &c
}
