package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/certadmin/pkg/placement"
)

func writeTemplate(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(t.TempDir(), "template.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func hasDarkPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && bl < 0x8000 {
				return true
			}
		}
	}
	return false
}

func TestNativeSize(t *testing.T) {
	path := writeTemplate(t, 320, 200)
	w, h, err := NativeSize(path)
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)
}

func TestNativeSizeRejectsPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cert.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0644))
	_, _, err := NativeSize(path)
	assert.ErrorIs(t, err, ErrPDFTemplate)

	_, err = Compose(path, "Ann", Options{})
	assert.ErrorIs(t, err, ErrPDFTemplate)
}

func TestComposeDrawsName(t *testing.T) {
	path := writeTemplate(t, 200, 100)
	img, err := Compose(path, "Somchai Jaidee", Options{Point: placement.Center, Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	assert.True(t, hasDarkPixel(img))
}

func TestComposeWithLetterSpacing(t *testing.T) {
	path := writeTemplate(t, 200, 100)
	img, err := Compose(path, "ABC", Options{Point: placement.Center, LetterSpacing: 4})
	require.NoError(t, err)
	assert.True(t, hasDarkPixel(img))
}

func TestComposeMissingFace(t *testing.T) {
	path := writeTemplate(t, 50, 50)
	_, err := Compose(path, "x", Options{FacePath: filepath.Join(t.TempDir(), "nope.ttf")})
	assert.Error(t, err)
}

func TestFitAndWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	small := Fit(img, 100)
	assert.Equal(t, 100, small.Bounds().Dx())
	assert.Equal(t, 50, small.Bounds().Dy())
	assert.Same(t, img, Fit(img, 1000))

	out := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(out, small))
	w, h, err := NativeSize(out)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, []int{w, h})
}
