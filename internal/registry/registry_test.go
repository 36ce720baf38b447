package registry

import (
	"sync"
	"testing"

	"mime-registry/internal/mimetypes"
)

func mustRecord(t *testing.T, name string, exts, cts []string, cat mimetypes.Category, primary bool) *mimetypes.Record {
	t.Helper()
	rec, err := mimetypes.NewRecord(name, "", exts, cts, cat, primary)
	if err != nil {
		t.Fatalf("NewRecord(%s) unexpected error: %v", name, err)
	}
	return rec
}

func TestByExtensionDominantContentType(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "Text", []string{".txt", ".text"}, []string{"text/plain"}, mimetypes.CategoryText, false),
		mustRecord(t, "Zip", []string{".zip"}, []string{"application/zip", "application/x-zip-compressed"}, mimetypes.CategoryCompressed, false),
	}
	reg, _ := Build(records, Options{DisableFallback: true})

	tests := []struct {
		ext  string
		want string
	}{
		{".txt", "text/plain"},
		{".text", "text/plain"},
		{".zip", "application/zip"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := reg.ByExtension(tt.ext).ContentType(); got != tt.want {
				t.Errorf("ByExtension(%q).ContentType() = %q, want %q", tt.ext, got, tt.want)
			}
			if got := reg.ContentType(tt.ext); got != tt.want {
				t.Errorf("ContentType(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestByExtensionCaseInsensitive(t *testing.T) {
	jpeg := mustRecord(t, "JPEG", []string{".JPG", ".jpeg"}, []string{"image/jpeg"}, mimetypes.CategoryImage, false)
	reg, _ := Build([]*mimetypes.Record{jpeg}, Options{DisableFallback: true})

	for _, ext := range []string{"JPG", ".jpg", "jpg", ".JpG", "..jpg", "JPEG"} {
		if got := reg.ByExtension(ext); got != jpeg {
			t.Errorf("ByExtension(%q) = %+v, want JPEG record", ext, got)
		}
	}
}

func TestByContentTypeCaseInsensitive(t *testing.T) {
	css := mustRecord(t, "CSS", []string{".css"}, []string{"Text/CSS"}, mimetypes.CategoryWeb, false)
	reg, _ := Build([]*mimetypes.Record{css}, Options{DisableFallback: true})

	for _, ct := range []string{"text/css", "TEXT/CSS", "Text/Css"} {
		if got := reg.ByContentType(ct); got != css {
			t.Errorf("ByContentType(%q) = %+v, want CSS record", ct, got)
		}
	}

	// Content types are not dot-normalized
	if got := reg.ByContentType(".text/css"); got != mimetypes.Empty {
		t.Errorf("ByContentType(.text/css) = %+v, want Empty", got)
	}
}

func TestTieBreaks(t *testing.T) {
	tests := []struct {
		name     string
		primary  [2]bool
		wantName string
	}{
		{"Two non-primary: first wins", [2]bool{false, false}, "first"},
		{"Second primary wins", [2]bool{false, true}, "second"},
		{"First primary wins over later non-primary", [2]bool{true, false}, "first"},
		{"Two primary: last wins", [2]bool{true, true}, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := mustRecord(t, "first", []string{".foo"}, []string{"application/x-foo"}, mimetypes.CategoryBinary, tt.primary[0])
			second := mustRecord(t, "second", []string{".foo"}, []string{"application/x-foo"}, mimetypes.CategoryCode, tt.primary[1])
			reg, _ := Build([]*mimetypes.Record{first, second}, Options{DisableFallback: true})

			if got := reg.ByExtension(".foo").Name; got != tt.wantName {
				t.Errorf("ByExtension(.foo).Name = %q, want %q", got, tt.wantName)
			}
			if got := reg.ByContentType("application/x-foo").Name; got != tt.wantName {
				t.Errorf("ByContentType(application/x-foo).Name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestPrimaryAmongThree(t *testing.T) {
	a := mustRecord(t, "a", []string{".foo"}, nil, mimetypes.CategoryUnknown, true)
	b := mustRecord(t, "b", []string{".foo"}, nil, mimetypes.CategoryUnknown, false)
	c := mustRecord(t, "c", []string{".foo"}, nil, mimetypes.CategoryUnknown, true)
	d := mustRecord(t, "d", []string{".foo"}, nil, mimetypes.CategoryUnknown, false)

	reg, _ := Build([]*mimetypes.Record{a, b, c, d}, Options{DisableFallback: true})
	if got := reg.ByExtension("foo"); got != c {
		t.Errorf("ByExtension(foo) = %q, want c", got.Name)
	}
}

func TestUnknownLookupsReturnEmpty(t *testing.T) {
	reg, _ := Build(nil, Options{})

	if got := reg.ByExtension(".zzzqqq"); got != mimetypes.Empty {
		t.Errorf("ByExtension(.zzzqqq) = %+v, want Empty", got)
	}
	if got := reg.ByExtension(""); got != mimetypes.Empty {
		t.Errorf("ByExtension(\"\") = %+v, want Empty", got)
	}
	if got := reg.ByExtension("..."); got != mimetypes.Empty {
		t.Errorf("ByExtension(...) = %+v, want Empty", got)
	}
	if got := reg.ByContentType("application/x-zzzqqq"); got != mimetypes.Empty {
		t.Errorf("ByContentType() = %+v, want Empty", got)
	}
	if got := reg.ByContentType(""); got != mimetypes.Empty {
		t.Errorf("ByContentType(\"\") = %+v, want Empty", got)
	}
	if got := reg.ContentType(".zzzqqq"); got != "" {
		t.Errorf("ContentType(.zzzqqq) = %q, want empty", got)
	}
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry

	if got := reg.ByExtension(".jpg"); got != mimetypes.Empty {
		t.Errorf("nil ByExtension() = %+v, want Empty", got)
	}
	if got := reg.ByContentType("image/jpeg"); got != mimetypes.Empty {
		t.Errorf("nil ByContentType() = %+v, want Empty", got)
	}
	if got := reg.Category(".jpg"); got != mimetypes.CategoryUnknown {
		t.Errorf("nil Category() = %v, want unknown", got)
	}
	if reg.Records() != nil {
		t.Error("nil Records() should be nil")
	}
}

func TestCategory(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "Go", []string{".go"}, []string{"text/x-go"}, mimetypes.CategoryCode, false),
	}
	reg, _ := Build(records, Options{DisableFallback: true})

	tests := []struct {
		name string
		ext  string
		want mimetypes.Category
	}{
		{"Empty extension is a folder", "", mimetypes.CategoryFolder},
		{"Known extension", ".go", mimetypes.CategoryCode},
		{"Known extension without dot", "GO", mimetypes.CategoryCode},
		{"Unknown extension", ".zzzqqq", mimetypes.CategoryUnknown},
		{"Dots only", ".", mimetypes.CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Category(tt.ext); got != tt.want {
				t.Errorf("Category(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestFallbackWithEmptySource(t *testing.T) {
	reg, report := Build(nil, Options{})

	tests := []struct {
		ext  string
		want string
		cat  mimetypes.Category
	}{
		{".jpg", "image/jpeg", mimetypes.CategoryImage},
		{".jpeg", "image/jpeg", mimetypes.CategoryImage},
		{".gif", "image/gif", mimetypes.CategoryImage},
		{".png", "image/png", mimetypes.CategoryImage},
		{".js", "application/javascript", mimetypes.CategoryCode},
		{".css", "text/css", mimetypes.CategoryWeb},
		{".xml", "application/xml", mimetypes.CategoryXML},
		{".rss", "application/rss+xml", mimetypes.CategoryXML},
		{".htm", "text/html", mimetypes.CategoryWeb},
		{".html", "text/html", mimetypes.CategoryWeb},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			rec := reg.ByExtension(tt.ext)
			if rec.ContentType() != tt.want {
				t.Errorf("ByExtension(%q).ContentType() = %q, want %q", tt.ext, rec.ContentType(), tt.want)
			}
			if rec.Category != tt.cat {
				t.Errorf("ByExtension(%q).Category = %v, want %v", tt.ext, rec.Category, tt.cat)
			}
		})
	}

	if got := reg.ByContentType("text/javascript").FileExt(); got != ".js" {
		t.Errorf("ByContentType(text/javascript).FileExt() = %q, want .js", got)
	}

	if len(report.Fallbacks) != len(builtins) {
		t.Errorf("len(Fallbacks) = %d, want %d", len(report.Fallbacks), len(builtins))
	}
	if report.Records != len(builtins) {
		t.Errorf("Records = %d, want %d", report.Records, len(builtins))
	}
}

func TestFallbackDisabled(t *testing.T) {
	reg, report := Build(nil, Options{DisableFallback: true})

	if got := reg.ByExtension(".jpg"); got != mimetypes.Empty {
		t.Errorf("ByExtension(.jpg) = %+v, want Empty", got)
	}
	if len(report.Fallbacks) != 0 || report.Records != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestFallbackNeverOverwrites(t *testing.T) {
	// A non-primary loaded record claims .jpeg and text/html but not the
	// dominant keys of the JPEG and HTML built-ins.
	custom := mustRecord(t, "Custom JPEG", []string{".jpeg"}, []string{"image/x-custom-jpeg", "text/html"}, mimetypes.CategoryImage, false)
	js := mustRecord(t, "Loaded JS", []string{".js"}, []string{"text/javascript"}, mimetypes.CategoryCode, false)

	reg, report := Build([]*mimetypes.Record{custom, js}, Options{})

	if got := reg.ByExtension(".jpeg"); got != custom {
		t.Errorf("ByExtension(.jpeg) = %q, want loaded record", got.Name)
	}
	if got := reg.ByExtension(".jpg").Name; got != "JPEG Image" {
		t.Errorf("ByExtension(.jpg).Name = %q, want fallback", got)
	}
	if got := reg.ByContentType("text/html"); got != custom {
		t.Errorf("ByContentType(text/html) = %q, want loaded record", got.Name)
	}

	// Loaded .js suppresses the JavaScript built-in entirely
	if got := reg.ByExtension(".js"); got != js {
		t.Errorf("ByExtension(.js) = %q, want loaded record", got.Name)
	}
	if got := reg.ByContentType("application/javascript"); got != mimetypes.Empty {
		t.Errorf("ByContentType(application/javascript) = %q, want Empty", got.Name)
	}
	for _, name := range report.Fallbacks {
		if name == "JavaScript" {
			t.Error("JavaScript fallback should not be synthesized")
		}
	}
}

func TestRoundTrip(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "PDF", []string{".pdf"}, []string{"application/pdf"}, mimetypes.CategoryDocument, false),
		mustRecord(t, "MP3", []string{".mp3", ".mpga"}, []string{"audio/mpeg"}, mimetypes.CategoryAudio, false),
		mustRecord(t, "MP4", []string{".mp4", ".m4v"}, []string{"video/mp4"}, mimetypes.CategoryVideo, false),
		mustRecord(t, "Overridden", []string{".m4v"}, []string{"video/x-m4v"}, mimetypes.CategoryVideo, false),
	}
	reg, _ := Build(records, Options{DisableFallback: true})

	for _, rec := range records[:3] {
		for _, ext := range rec.FileExts {
			if got := reg.ByExtension(ext); got != rec {
				t.Errorf("ByExtension(%q) = %q, want %q", ext, got.Name, rec.Name)
			}
		}
		for _, ct := range rec.ContentTypes {
			if got := reg.ByContentType(ct); got != rec {
				t.Errorf("ByContentType(%q) = %q, want %q", ct, got.Name, rec.Name)
			}
		}
	}
}

func TestMalformedEntryIsolation(t *testing.T) {
	// Records built without NewRecord can still carry bad entries.
	bad := &mimetypes.Record{
		Name:         "Bad",
		FileExts:     []string{"noext", ".ok", "."},
		ContentTypes: []string{"nocontenttype", "application/x-ok"},
		Category:     mimetypes.CategoryBinary,
	}
	good := mustRecord(t, "Good", []string{".good"}, []string{"application/x-good"}, mimetypes.CategoryBinary, false)

	reg, report := Build([]*mimetypes.Record{bad, nil, good}, Options{DisableFallback: true})

	if got := reg.ByExtension(".good"); got != good {
		t.Errorf("ByExtension(.good) = %q, want Good", got.Name)
	}
	if got := reg.ByExtension(".ok"); got != bad {
		t.Errorf("ByExtension(.ok) = %q, want Bad", got.Name)
	}
	if got := reg.ByContentType("application/x-ok"); got != bad {
		t.Errorf("ByContentType(application/x-ok) = %q, want Bad", got.Name)
	}
	if got := reg.ByExtension("noext"); got != mimetypes.Empty {
		t.Errorf("ByExtension(noext) = %q, want Empty", got.Name)
	}

	if len(report.Skipped) != 3 {
		t.Fatalf("len(Skipped) = %d, want 3: %v", len(report.Skipped), report.Skipped)
	}
	for _, s := range report.Skipped {
		if s.Index != 0 || s.Name != "Bad" {
			t.Errorf("skip attributed to wrong record: %+v", s)
		}
	}
	if report.Records != 2 {
		t.Errorf("Records = %d, want 2", report.Records)
	}
}

func TestRecordsSortedAndCopied(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "Z", []string{".zzz"}, nil, mimetypes.CategoryUnknown, false),
		mustRecord(t, "A", []string{".aaa"}, nil, mimetypes.CategoryUnknown, false),
		mustRecord(t, "M", []string{".mmm"}, nil, mimetypes.CategoryUnknown, false),
	}
	reg, _ := Build(records, Options{DisableFallback: true})

	got := reg.Records()
	want := []string{"A", "M", "Z"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Records()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
	}

	got[0] = nil
	if reg.Records()[0] == nil {
		t.Error("Records() should return a copy")
	}

	if exts := reg.Extensions(); len(exts) != 3 || exts[0] != ".aaa" {
		t.Errorf("Extensions() = %v", exts)
	}
}

func TestExtensions(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "Text", []string{".TXT", ".text"}, []string{"text/plain"}, mimetypes.CategoryText, false),
		mustRecord(t, "Other Text", []string{".txt"}, []string{"text/x-other"}, mimetypes.CategoryText, false),
		mustRecord(t, "Gzip", []string{".tar.gz", ".gz"}, []string{"application/gzip"}, mimetypes.CategoryCompressed, false),
	}
	reg, _ := Build(records, Options{DisableFallback: true})

	got := reg.Extensions()
	want := []string{".gz", ".tar.gz", ".text", ".txt"}
	if len(got) != len(want) {
		t.Fatalf("Extensions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extensions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	var nilReg *Registry
	if keys := nilReg.Extensions(); keys != nil {
		t.Errorf("nil Extensions() = %v, want nil", keys)
	}
}

func TestReportCounts(t *testing.T) {
	records := []*mimetypes.Record{
		mustRecord(t, "HTML", []string{".htm", ".html"}, []string{"text/html"}, mimetypes.CategoryWeb, false),
	}
	_, report := Build(records, Options{DisableFallback: true})

	if report.Records != 1 || report.Extensions != 2 || report.ContentTypes != 1 {
		t.Errorf("report = %+v", report)
	}
	if report.Err() != nil {
		t.Errorf("Err() = %v, want nil", report.Err())
	}
}

func TestConcurrentLookups(t *testing.T) {
	reg, _ := Build(nil, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if reg.ContentType("png") != "image/png" {
					t.Error("concurrent lookup returned wrong content type")
					return
				}
				_ = reg.Category("css")
				_ = reg.ByContentType("text/html")
			}
		}()
	}
	wg.Wait()
}
