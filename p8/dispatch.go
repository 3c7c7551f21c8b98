package p8

import (
	"fmt"
	"image"
)

// Do executes c and returns its result. Only Btn, MGet and FGet have a
// result; every other command returns 0. Arguments out of range are
// ignored rather than reported, and a nil command does nothing.
func (r *Renderer) Do(c Command) int {
	if c == nil {
		return 0
	}
	if !r.shake {
		r.camera = image.Point{}
	}
	r.counts[c.kind()]++

	switch c := c.(type) {
	case Music, Sfx:
		// Sound is not emulated.
	case Spr:
		if checkContracts && (c.Cols != 1 || c.Rows != 1) {
			panic(fmt.Sprintf("p8: %v: multi-cell sprites are not supported", c))
		}
		if c.N >= 0 {
			var flip Flip
			if c.FlipX {
				flip |= FlipX
			}
			if c.FlipY {
				flip |= FlipY
			}
			r.Spr(c.N, c.X-r.camera.X, c.Y-r.camera.Y, flip)
		}
	case Btn:
		if c.B >= 0 && c.B <= 5 && r.buttons&(1<<c.B) != 0 {
			return 1
		}
	case Pal:
		r.pal.Remap(c.A, c.B)
	case PalReset:
		r.pal.Reset()
	case CircFill:
		r.CircFill(c.X-r.camera.X, c.Y-r.camera.Y, c.R, c.Col)
	case Print:
		r.Print(c.S, c.X-r.camera.X, c.Y-r.camera.Y, c.Col%16)
	case RectFill:
		r.RectFill(c.X0-r.camera.X, c.Y0-r.camera.Y, c.X1-r.camera.X, c.Y1-r.camera.Y, c.Col)
	case Line:
		r.Line(c.X0-r.camera.X, c.Y0-r.camera.Y, c.X1-r.camera.X, c.Y1-r.camera.Y, c.Col)
	case MGet:
		return r.tiles.Get(c.X, c.Y)
	case Camera:
		if r.shake {
			r.camera = image.Pt(c.X, c.Y)
		}
	case FGet:
		if r.tiles.Flag(c.Tile, c.Flag) {
			return 1
		}
	case Map:
		r.Map(c.MX, c.MY, c.TX-r.camera.X, c.TY-r.camera.Y, c.MW, c.MH, c.Mask)
	default:
		panic(fmt.Sprintf("p8: unhandled command %T", c))
	}
	return 0
}

// Spr draws 8×8 sprite n at logical (x, y).
func (r *Renderer) Spr(n, x, y int, flip Flip) {
	var (
		s  = r.vp.Scale
		sr = spriteRect(n, s)
		dp = image.Pt(x, y).Mul(s)
	)
	r.blit(r.spr, &sr, &dp, noColor, flip)
}
