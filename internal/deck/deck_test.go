package deck

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"deckgen/internal/outline"
)

func testPresentation(slides []outline.Slide) *outline.Presentation {
	return &outline.Presentation{
		ID:          "test-id",
		Slides:      slides,
		Theme:       "modern",
		CreatedAt:   time.Now().UTC(),
		DownloadURL: "/test-id/download",
	}
}

// readArchive opens a rendered blob as a zip and returns part contents
// keyed by name.
func readArchive(t *testing.T, blob []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatalf("rendered blob is not a valid zip: %v", err)
	}
	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open part %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read part %s: %v", f.Name, err)
		}
		parts[f.Name] = data
	}
	return parts
}

func TestRender(t *testing.T) {
	r := NewRenderer()
	p := testPresentation([]outline.Slide{
		{Title: "Q1 Results", Content: []string{"revenue up", "costs down"}},
		{Title: "Outlook", Content: []string{}},
	})

	blob, err := r.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parts := readArchive(t, blob)

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("archive is missing part %s", name)
		}
	}

	slide1 := string(parts["ppt/slides/slide1.xml"])
	if !strings.Contains(slide1, "Q1 Results") {
		t.Error("slide 1 should contain the title text")
	}
	if !strings.Contains(slide1, "revenue up") {
		t.Error("slide 1 should contain the bullet text")
	}
	// modern theme: primary color on the title, Arial faces.
	if !strings.Contains(slide1, `val="0EA5E9"`) {
		t.Error("slide 1 title should use the modern primary color")
	}
	if !strings.Contains(slide1, `typeface="Arial"`) {
		t.Error("slide 1 should use the modern fonts")
	}

	// A slide without bullets gets no content text box.
	slide2 := string(parts["ppt/slides/slide2.xml"])
	if strings.Contains(slide2, `name="Content"`) {
		t.Error("slide 2 has no bullets and should have no content box")
	}

	// 16:9 slide size.
	if !strings.Contains(string(parts["ppt/presentation.xml"]), `cx="12192000" cy="6858000"`) {
		t.Error("presentation should use the widescreen slide size")
	}
}

func TestRenderEmptyDeck(t *testing.T) {
	r := NewRenderer()

	blob, err := r.Render(testPresentation(nil))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(blob) == 0 {
		t.Fatal("empty deck should still be a non-empty blob")
	}

	parts := readArchive(t, blob)
	pres := string(parts["ppt/presentation.xml"])
	if strings.Contains(pres, "<p:sldIdLst>") {
		t.Error("empty deck should carry no slide list")
	}
}

func TestRenderEscapesText(t *testing.T) {
	r := NewRenderer()
	p := testPresentation([]outline.Slide{
		{Title: `Tom & Jerry <"quotes">`, Content: []string{"a < b"}},
	})

	blob, err := r.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parts := readArchive(t, blob)

	slide1 := string(parts["ppt/slides/slide1.xml"])
	if !strings.Contains(slide1, "Tom &amp; Jerry") {
		t.Error("ampersand should be escaped")
	}
	if strings.Contains(slide1, `<"quotes">`) {
		t.Error("angle brackets should be escaped")
	}
}

// tinyPNG is a 1x1 transparent PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestRenderEmbedsImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(tinyPNG)
	}))
	defer srv.Close()

	r := NewRenderer()
	p := testPresentation([]outline.Slide{
		{Title: "With image", Content: []string{"a"}, ImageURL: srv.URL + "/chart.png"},
	})

	blob, err := r.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parts := readArchive(t, blob)

	img, ok := parts["ppt/media/image1.png"]
	if !ok {
		t.Fatal("archive should contain the embedded image")
	}
	if !bytes.Equal(img, tinyPNG) {
		t.Error("embedded image bytes should match the fetched bytes")
	}

	slide1 := string(parts["ppt/slides/slide1.xml"])
	if !strings.Contains(slide1, `r:embed="rId2"`) {
		t.Error("slide should reference the image relationship")
	}
	rels := string(parts["ppt/slides/_rels/slide1.xml.rels"])
	if !strings.Contains(rels, "../media/image1.png") {
		t.Error("slide rels should target the media part")
	}
}

func TestRenderImageFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewRenderer()
	p := testPresentation([]outline.Slide{
		{Title: "Broken image", ImageURL: srv.URL + "/missing.png"},
	})

	if _, err := r.Render(p); err == nil {
		t.Fatal("expected render failure for unfetchable image")
	}
}

func TestImageExt(t *testing.T) {
	cases := []struct {
		ref, contentType, want string
	}{
		{"http://x/img.png", "image/png", ".png"},
		{"http://x/img", "image/jpeg", ".jpeg"},
		{"http://x/photo.JPG", "", ".jpeg"},
		{"http://x/anim.gif", "", ".gif"},
		{"http://x/unknown", "", ".png"},
	}
	for _, c := range cases {
		if got := imageExt(c.ref, c.contentType); got != c.want {
			t.Errorf("imageExt(%q, %q): got %q, want %q", c.ref, c.contentType, got, c.want)
		}
	}
}
