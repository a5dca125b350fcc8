package thumbnail

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// DefaultWidth is used when the configured width is not positive.
const DefaultWidth = 320

// Generator produces bounded-width previews for uploaded images.
type Generator struct {
	width int
}

// New returns a generator that scales images down to width pixels.
func New(width int) *Generator {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Generator{width: width}
}

// Supports reports whether the MIME type can be decoded into a thumbnail.
func (g *Generator) Supports(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/bmp", "image/tiff":
		return true
	}
	return false
}

// Generate decodes r and returns the encoded thumbnail with its file extension.
// PNG sources stay PNG to keep transparency; everything else becomes JPEG.
func (g *Generator) Generate(r io.Reader, mime string) ([]byte, string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Dx() > g.width {
		img = imaging.Resize(img, g.width, 0, imaging.Lanczos)
	}

	format, ext := imaging.JPEG, ".jpg"
	if mime == "image/png" {
		format, ext = imaging.PNG, ".png"
	}

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, format, imaging.JPEGQuality(80)); err != nil {
		return nil, "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), ext, nil
}
