package p8

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/draw"
)

var (
	testImageDir    = flag.String("test_image_dir", "", "If set will generate images from tests to this directory")
	testImageScaler = flag.Int("test_image_scaler", 2, "The amount to rescale the output PNGs")
)

// Test sheet sprites.
const (
	sprSolid  = 1 // every pixel opaque, index 1 + (x+8y)%15
	sprCorner = 2 // only (0, 0) opaque, index 8
	sprEmpty  = 3
)

// testSheet returns a sheet where tiles 16 and up are filled solid with
// their own tile number mod 16, so map draws can be identified by color.
func testSheet() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, 128, 128), nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetColorIndex(8*sprSolid+x, y, uint8(1+(x+8*y)%15))
		}
	}
	m.SetColorIndex(8*sprCorner, 0, 8)
	for n := 16; n < 256; n++ {
		c := uint8(n % 16)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				m.SetColorIndex(n%16*8+x, n/16*8+y, c)
			}
		}
	}
	return m
}

// testFont has a single pixel glyph at the top left of cell 'A'.
func testFont() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, 128, 128), nil)
	m.SetColorIndex('A'%16*8, 'A'/16*8, 7)
	return m
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(image.Pt(DeviceWidth, DeviceHeight), Assets{
		Gfx:  testSheet(),
		Font: testFont(),
		Map:  &TileMap{},
	})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

// painted returns the logical cells holding a non-black pixel, sampling
// the top-left device pixel of each cell.
func painted(r *Renderer) map[image.Point]uint16 {
	cells := make(map[image.Point]uint16)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := r.vp.ToDevice(image.Pt(x, y))
			if c := r.fb.Pixel(p.X, p.Y); c != 0 {
				cells[image.Pt(x, y)] = c
			}
		}
	}
	return cells
}

// changed returns the device pixels that differ between a and b.
func changed(a, b *Framebuffer) []image.Point {
	var ps []image.Point
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			if a.Pix[y*a.W+x] != b.Pix[y*b.W+x] {
				ps = append(ps, image.Pt(x, y))
			}
		}
	}
	return ps
}

func writeTestImage(t *testing.T, name string, fb *Framebuffer) {
	t.Helper()
	if *testImageDir == "" {
		return
	}
	b := fb.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx()**testImageScaler, b.Dy()**testImageScaler))
	draw.NearestNeighbor.Scale(m, m.Bounds(), fb, b, draw.Src, nil)
	f, err := os.Create(filepath.Join(*testImageDir, fmt.Sprintf("%s.png", name)))
	if err != nil {
		t.Fatalf("Can't create output image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, m); err != nil {
		t.Fatalf("Can't encode PNG: %v", err)
	}
}
