package p8

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Surface is an indexed-color image usable as a blit source.
// *image.Paletted satisfies it.
type Surface interface {
	Bounds() image.Rectangle
	ColorIndexAt(x, y int) uint8
}

// ErrSurfaceSize is returned when a scaled surface cannot be built.
var ErrSurfaceSize = errors.New("invalid surface size")

// maxSurfacePixels bounds Resize allocations.
const maxSurfacePixels = 1 << 22

// Resize returns a w×h nearest-neighbour copy of src, keeping its
// palette when it has one. No image is returned on failure.
func Resize(src Surface, w, h int) (*image.Paletted, error) {
	sb := src.Bounds()
	switch {
	case sb.Empty():
		return nil, fmt.Errorf("resize: empty source: %w", ErrSurfaceSize)
	case w <= 0 || h <= 0 || w > maxSurfacePixels/h:
		return nil, fmt.Errorf("resize to %dx%d: %w", w, h, ErrSurfaceSize)
	}
	var pal color.Palette
	if p, ok := src.(*image.Paletted); ok {
		pal = p.Palette
	}
	var (
		m      = image.NewPaletted(image.Rect(0, 0, w, h), pal)
		sw, sh = sb.Dx(), sb.Dy()
	)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		sy := sb.Min.Y + y*sh/h
		for x := range row {
			row[x] = src.ColorIndexAt(sb.Min.X+x*sw/w, sy)
		}
	}
	return m, nil
}

// Double is Resize to twice the source size.
func Double(src Surface) (*image.Paletted, error) {
	sz := src.Bounds().Size()
	return Resize(src, sz.X*2, sz.Y*2)
}

// surfacePair holds the 1× and 2× variants of one asset.
type surfacePair [2]Surface

func newSurfacePair(s Surface) (surfacePair, error) {
	if s == nil {
		return surfacePair{}, fmt.Errorf("missing surface: %w", ErrSurfaceSize)
	}
	d, err := Double(s)
	if err != nil {
		return surfacePair{}, err
	}
	return surfacePair{s, d}, nil
}

func (p surfacePair) at(scale int) Surface { return p[scale-1] }
