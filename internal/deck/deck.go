// Package deck renders a presentation outline into a PowerPoint (.pptx)
// file. A .pptx is a zip of OOXML parts; the parts are small enough that
// they are built directly here instead of through a third-party library.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"deckgen/internal/outline"
	"deckgen/internal/theme"
)

// ContentType is the MIME type of a rendered deck.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Layout constants, in EMU (914400 per inch). The 16:9 slide is
// 13.333 x 7.5 inches. Positions and sizes are fixed regardless of
// content length; long text overflows the content box.
const (
	emuPerInch = 914400

	slideWidth  = 12192000
	slideHeight = 6858000

	titleX = emuPerInch / 2  // 0.5"
	titleY = emuPerInch / 2  // 0.5"
	titleW = 12 * emuPerInch // ~90% of slide width
	titleH = emuPerInch      // 1"

	bodyX = emuPerInch / 2     // 0.5"
	bodyY = emuPerInch * 3 / 2 // 1.5"
	bodyW = 12 * emuPerInch    // ~90% of slide width
	bodyH = 5 * emuPerInch     // 5"

	imageX = 5 * emuPerInch     // 5"
	imageY = emuPerInch * 5 / 2 // 2.5"
	imageW = 4 * emuPerInch     // 4"
	imageH = 3 * emuPerInch     // 3"

	titleFontSize = 3600 // 36pt in hundredths
	bodyFontSize  = 1800 // 18pt in hundredths
)

// Renderer turns outlines into .pptx blobs. Image references are fetched
// over HTTP (or read from disk for plain paths) and embedded; there is no
// aspect-ratio preservation and no pre-validation of the reference.
type Renderer struct {
	client *http.Client
}

// NewRenderer creates a deck renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// embeddedImage is an image resolved during rendering, destined for the
// ppt/media/ part of the archive.
type embeddedImage struct {
	name string // file name under ppt/media/
	data []byte
}

// Render serializes the presentation into a complete .pptx archive.
// A presentation with zero slides still renders to a valid, openable deck.
func (r *Renderer) Render(p *outline.Presentation) ([]byte, error) {
	style := theme.Resolve(p.Theme)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	slideXMLs := make([]string, len(p.Slides))
	slideRels := make([]string, len(p.Slides))
	var media []embeddedImage

	for i, slide := range p.Slides {
		var img *embeddedImage
		if slide.ImageURL != "" {
			data, ext, err := r.fetchImage(slide.ImageURL)
			if err != nil {
				return nil, fmt.Errorf("deck: slide %d image %q: %w", i+1, slide.ImageURL, err)
			}
			img = &embeddedImage{
				name: fmt.Sprintf("image%d%s", len(media)+1, ext),
				data: data,
			}
			media = append(media, *img)
		}
		slideXMLs[i] = slideXML(slide, style, img != nil)
		slideRels[i] = slideRelsXML(img)
	}

	parts := map[string]string{
		"[Content_Types].xml":                          contentTypesXML(len(p.Slides)),
		"_rels/.rels":                                  rootRelsXML,
		"docProps/core.xml":                            corePropsXML(p.CreatedAt),
		"docProps/app.xml":                             appPropsXML(len(p.Slides)),
		"ppt/presentation.xml":                         presentationXML(len(p.Slides)),
		"ppt/_rels/presentation.xml.rels":              presentationRelsXML(len(p.Slides)),
		"ppt/slideMasters/slideMaster1.xml":            slideMasterXML,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML,
		"ppt/slideLayouts/slideLayout1.xml":            slideLayoutXML,
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML,
		"ppt/theme/theme1.xml":                         themeXML,
	}
	for i := range p.Slides {
		parts[fmt.Sprintf("ppt/slides/slide%d.xml", i+1)] = slideXMLs[i]
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)] = slideRels[i]
	}

	for name, content := range parts {
		if err := writePart(zw, name, []byte(content)); err != nil {
			return nil, err
		}
	}
	for _, img := range media {
		if err := writePart(zw, "ppt/media/"+img.name, img.data); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deck: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("deck: create part %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("deck: write part %s: %w", name, err)
	}
	return nil
}

// fetchImage resolves an image reference to raw bytes and a file
// extension. HTTP(S) references are fetched; anything else is treated as
// a local path.
func (r *Renderer) fetchImage(ref string) ([]byte, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		resp, err := r.client.Get(ref)
		if err != nil {
			return nil, "", fmt.Errorf("fetch: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("fetch: status %d", resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("fetch read: %w", err)
		}
		return data, imageExt(ref, resp.Header.Get("Content-Type")), nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, "", fmt.Errorf("read: %w", err)
	}
	return data, imageExt(ref, ""), nil
}

// imageExt picks a media file extension from the reference or an HTTP
// content type, defaulting to .png.
func imageExt(ref, contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpeg"
	case "image/gif":
		return ".gif"
	case "image/png":
		return ".png"
	}
	lower := strings.ToLower(ref)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return ".jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return ".gif"
	}
	return ".png"
}
