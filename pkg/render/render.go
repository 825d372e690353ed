// Package render draws a quick local preview of a certificate: the
// template image with the sample name placed at the marker. It is an
// approximation of the server render and never replaces it.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pluqqy/certadmin/pkg/placement"
)

// ErrPDFTemplate is returned for templates that need a PDF rasteriser.
var ErrPDFTemplate = errors.New("PDF templates cannot be previewed locally")

// Options controls how the name is drawn.
type Options struct {
	Point         placement.Point
	FontSize      float64
	LetterSpacing float64
	Color         string
	FacePath      string
}

// IsPDF reports whether data starts with the PDF magic.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// Decode decodes a raster template.
func Decode(data []byte) (image.Image, error) {
	if IsPDF(data) {
		return nil, ErrPDFTemplate
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return img, nil
}

// NativeSize returns the template's pixel size without decoding it fully.
func NativeSize(path string) (int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	if IsPDF(data) {
		return 0, 0, ErrPDFTemplate
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode template config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Compose draws name onto the template at path.
func Compose(path, name string, opts Options) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return ComposeImageFrom(data, name, opts)
}

// ComposeImageFrom decodes template data and draws name onto it.
func ComposeImageFrom(data []byte, name string, opts Options) (image.Image, error) {
	bg, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ComposeImage(bg, name, opts)
}

// ComposeImage draws name onto bg.
func ComposeImage(bg image.Image, name string, opts Options) (image.Image, error) {
	b := bg.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(bg, 0, 0)

	if opts.FacePath != "" {
		size := opts.FontSize
		if size <= 0 {
			size = 48
		}
		if err := dc.LoadFontFace(opts.FacePath, size); err != nil {
			return nil, fmt.Errorf("load font face: %w", err)
		}
	}

	color := opts.Color
	if color == "" {
		color = "#000000"
	}
	dc.SetHexColor(color)

	p := placement.Point{X: placement.Clamp01(opts.Point.X), Y: placement.Clamp01(opts.Point.Y)}
	x := p.X * float64(b.Dx())
	y := p.Y * float64(b.Dy())

	if opts.LetterSpacing == 0 {
		dc.DrawStringAnchored(name, x, y, 0.5, 0.5)
		return dc.Image(), nil
	}
	drawSpaced(dc, name, x, y, opts.LetterSpacing)
	return dc.Image(), nil
}

// drawSpaced lays the glyphs out one by one, centred on (x, y).
func drawSpaced(dc *gg.Context, text string, x, y, spacing float64) {
	runes := []rune(text)
	if len(runes) == 0 {
		return
	}
	widths := make([]float64, len(runes))
	total := spacing * float64(len(runes)-1)
	for i, r := range runes {
		w, _ := dc.MeasureString(string(r))
		widths[i] = w
		total += w
	}
	cx := x - total/2
	for i, r := range runes {
		dc.DrawStringAnchored(string(r), cx, y, 0, 0.5)
		cx += widths[i] + spacing
	}
}

// Fit scales img down so its width is at most maxWidth.
func Fit(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes img as PNG to path.
func WritePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
