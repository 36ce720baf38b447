package registry

import (
	"github.com/disintegration/imaging"
)

// ImageFormat returns the encoder format for an image extension.
//
// The extension is first standardized through the registry, so any alias
// of a known record (".jpe" for a JPEG record, say) maps to the format of
// its dominant extension. Only formats imaging can encode are reported:
// bmp, gif, jpeg, png and tiff.
func (r *Registry) ImageFormat(ext string) (imaging.Format, bool) {
	if ext == "" {
		return 0, false
	}

	if rec := r.ByExtension(ext); rec.FileExt() != "" {
		ext = rec.FileExt()
	}

	f, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, false
	}
	return f, true
}
