package p8

import (
	"image"
	"image/color"
)

// Framebuffer is the device's RGB565 pixel array.
// It implements image.Image so presenters and tests can read it back.
type Framebuffer struct {
	Pix  []uint16
	W, H int
}

func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{Pix: make([]uint16, w*h), W: w, H: h}
}

func (f *Framebuffer) ColorModel() color.Model { return color.RGBAModel }
func (f *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, f.W, f.H) }

func (f *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	return RGBA(f.Pix[y*f.W+x])
}

// Pixel returns the raw RGB565 value at (x, y), or 0 outside the buffer.
func (f *Framebuffer) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return 0
	}
	return f.Pix[y*f.W+x]
}

func (f *Framebuffer) Clear(c uint16) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

// Fill paints r, which must already lie within the buffer.
func (f *Framebuffer) Fill(r image.Rectangle, c uint16) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.Pix[y*f.W+r.Min.X : y*f.W+r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// CopyTo expands the buffer into m, which must have the same size.
func (f *Framebuffer) CopyTo(m *image.RGBA) {
	for y := 0; y < f.H; y++ {
		b := m.Pix[y*m.Stride:]
		for _, p := range f.Pix[y*f.W : (y+1)*f.W] {
			c := RGBA(p)
			b[0] = c.R
			b[1] = c.G
			b[2] = c.B
			b[3] = c.A
			b = b[4:]
		}
	}
}

// Clone returns an independent copy.
func (f *Framebuffer) Clone() *Framebuffer {
	c := NewFramebuffer(f.W, f.H)
	copy(c.Pix, f.Pix)
	return c
}
