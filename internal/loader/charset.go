package loader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8Reader transcodes UTF-16 input that starts with a byte order mark
// to UTF-8 and strips a UTF-8 BOM. Input without a BOM passes through.
func utf8Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// charsetReader is the xml.Decoder CharsetReader. Unicode labels pass the
// input through since utf8Reader has already produced UTF-8; any other
// label is looked up in the WHATWG encoding index.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "utf") {
		return input, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported mime map encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
