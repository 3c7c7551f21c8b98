// Package asset loads sprite sheets, fonts and tile maps for p8.
package asset

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/nf/p8port/p8"
)

// Palette is p8.DefaultColors as a color.Palette, for indexed images.
var Palette = func() color.Palette {
	p := make(color.Palette, len(p8.DefaultColors))
	for i, c := range p8.DefaultColors {
		p[i] = c
	}
	return p
}()

// NewSheet returns a blank w×h indexed image using Palette.
func NewSheet(w, h int) *image.Paletted {
	return image.NewPaletted(image.Rect(0, 0, w, h), Palette)
}

// LoadSheet reads a PNG or BMP sprite or font sheet from file.
func LoadSheet(file string) (*image.Paletted, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := DecodeSheet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

// DecodeSheet decodes an image as a sheet. Indexed images keep their
// indices, which must all be below 16. Other images are mapped to the
// nearest Palette color.
func DecodeSheet(r io.Reader) (*image.Paletted, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	out := NewSheet(b.Dx(), b.Dy())
	if pm, ok := m.(*image.Paletted); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := pm.ColorIndexAt(x, y)
				if i > 15 {
					return nil, fmt.Errorf("pixel (%d, %d) has color index %d, want at most 15", x, y, i)
				}
				out.SetColorIndex(x-b.Min.X, y-b.Min.Y, i)
			}
		}
		return out, nil
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetColorIndex(x-b.Min.X, y-b.Min.Y, uint8(Palette.Index(m.At(x, y))))
		}
	}
	return out, nil
}
