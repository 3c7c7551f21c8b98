package p8

import "image/color"

// DefaultColors is the fixed 16 color table that Reset restores.
var DefaultColors = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x1d, 0x2b, 0x53, 0xff},
	{0x7e, 0x25, 0x53, 0xff},
	{0x00, 0x87, 0x51, 0xff},
	{0xab, 0x52, 0x36, 0xff},
	{0x5f, 0x57, 0x4f, 0xff},
	{0xc2, 0xc3, 0xc7, 0xff},
	{0xff, 0xf1, 0xe8, 0xff},
	{0xff, 0x00, 0x4d, 0xff},
	{0xff, 0xa3, 0x00, 0xff},
	{0xff, 0xec, 0x27, 0xff},
	{0x00, 0xe4, 0x36, 0xff},
	{0x29, 0xad, 0xff, 0xff},
	{0x83, 0x76, 0x9c, 0xff},
	{0xff, 0x77, 0xa8, 0xff},
	{0xff, 0xcc, 0xaa, 0xff},
}

// defaultNative holds DefaultColors converted to the display format.
var defaultNative = func() (p [16]uint16) {
	for i, c := range DefaultColors {
		p[i] = RGB565(c)
	}
	return
}()

// Palette maps a 4-bit color index to an RGB565 display color.
type Palette [16]uint16

// Reset restores the default table.
func (p *Palette) Reset() { *p = defaultNative }

// Remap makes slot a display the default color of slot b.
// Indices outside [0,16) are ignored.
func (p *Palette) Remap(a, b int) {
	if a < 0 || a >= len(p) || b < 0 || b >= len(p) {
		return
	}
	p[a] = defaultNative[b]
}

func (p *Palette) Lookup(i int) uint16 { return p[i&0xf] }

// RGB565 converts c to rrrrrggggggbbbbb.
func RGB565(c color.Color) uint16 {
	r, g, b := rgb8(c)
	return uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b&0xf8)>>3
}

func rgb8(c color.Color) (r, g, b uint8) {
	if c, ok := c.(color.RGBA); ok {
		return c.R, c.G, c.B
	}
	r32, g32, b32, _ := c.RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}

// RGBA expands an RGB565 value back to 8 bits per channel.
func RGBA(p uint16) color.RGBA {
	var (
		r = (p >> 11) & 0x1f
		g = (p >> 5) & 0x3f
		b = p & 0x1f
	)
	return color.RGBA{
		R: uint8(r * 255 / 31),
		G: uint8(g * 255 / 63),
		B: uint8(b * 255 / 31),
		A: 0xff,
	}
}
