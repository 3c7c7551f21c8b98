// Package p8 draws a 128×128 PICO-8 style canvas onto a larger RGB565
// display and runs carts against it.
package p8

import (
	"fmt"
	"image"
)

// Default device size, in pixels.
const (
	DeviceWidth  = 396
	DeviceHeight = 224
)

// Assets are the inputs a Renderer draws from.
type Assets struct {
	Gfx  Surface // sprite sheet, 16 columns of 8×8 cells
	Font Surface // font sheet, 16 columns of 8×8 glyphs
	Map  *TileMap
}

// Renderer holds all rendering state: palette, viewport, camera and
// the framebuffer. Only one goroutine may use a Renderer at a time.
type Renderer struct {
	fb  *Framebuffer
	pal Palette
	vp  Viewport

	camera image.Point
	shake  bool // honor camera commands

	gfx, font surfacePair
	spr, fnt  Surface // members of gfx and font for the current scale
	tiles     *TileMap
	closed    bool // 2× surfaces released

	buttons uint8
	counts  [numKinds]int // commands dispatched, by kind
}

// NewRenderer builds a renderer for a device of the given size,
// including the 2× variants of the asset surfaces.
func NewRenderer(device image.Point, a Assets) (*Renderer, error) {
	if device.X <= 0 || device.Y <= 0 {
		return nil, fmt.Errorf("invalid device size %v", device)
	}
	gfx, err := newSurfacePair(a.Gfx)
	if err != nil {
		return nil, fmt.Errorf("sprite sheet: %w", err)
	}
	font, err := newSurfacePair(a.Font)
	if err != nil {
		return nil, fmt.Errorf("font sheet: %w", err)
	}
	tiles := a.Map
	if tiles == nil {
		tiles = &TileMap{}
	}
	r := &Renderer{
		fb:    NewFramebuffer(device.X, device.Y),
		vp:    NewViewport(device),
		shake: true,
		gfx:   gfx,
		font:  font,
		tiles: tiles,
	}
	r.pal.Reset()
	r.SetScale(1, AnchorCenter)
	return r, nil
}

// SetScale moves the canvas and selects the matching surface pair.
// After Close the renderer stays at 1×.
func (r *Renderer) SetScale(s int, a Anchor) {
	if s != 1 && r.closed {
		return
	}
	r.vp.SetScale(s, a)
	r.spr = r.gfx.at(r.vp.Scale)
	r.fnt = r.font.at(r.vp.Scale)
}

// Close drops the generated 2× surfaces and returns the canvas to 1×.
// The renderer remains usable.
func (r *Renderer) Close() {
	r.closed = true
	r.SetScale(1, AnchorCenter)
	r.gfx[1] = nil
	r.font[1] = nil
}

func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }
func (r *Renderer) Palette() *Palette         { return &r.pal }
func (r *Renderer) Viewport() Viewport        { return r.vp }
func (r *Renderer) Camera() image.Point       { return r.camera }
func (r *Renderer) TileMap() *TileMap         { return r.tiles }
func (r *Renderer) Shake() bool               { return r.shake }

// SetShake enables or disables the motion effect. While disabled the
// camera stays at the origin.
func (r *Renderer) SetShake(on bool) {
	r.shake = on
	if !on {
		r.camera = image.Point{}
	}
}

// SetButtons sets the state of buttons 0-5, one bit each.
func (r *Renderer) SetButtons(b uint8) { r.buttons = b & 0x3f }

// Clear blanks the whole device, including the area around the canvas.
func (r *Renderer) Clear() { r.fb.Clear(0) }

// Counts reports how many commands of each kind were dispatched.
func (r *Renderer) Counts() map[string]int {
	m := make(map[string]int)
	for k, n := range r.counts {
		if n > 0 {
			m[kind(k).String()] = n
		}
	}
	return m
}
