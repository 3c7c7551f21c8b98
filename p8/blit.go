package p8

import "image"

// Flip selects mirroring of sampled pixels.
type Flip uint8

const (
	FlipX Flip = 1 << iota
	FlipY
)

// noColor tells blit to paint each sample with its own palette color.
const noColor = -1

// blit copies sr from src to dp in device space, confined to the
// visible viewport. A nil sr means the whole surface; a nil dp means the
// top-left of the visible viewport, otherwise dp is in canvas pixels and
// gets the viewport offset added. Index 0 is transparent. When col is
// not noColor every opaque sample is painted with palette color col.
func (r *Renderer) blit(src Surface, sr *image.Rectangle, dp *image.Point, col int, flip Flip) {
	var (
		vis = r.vp.Visible()
		d   image.Point
		s   image.Rectangle
	)
	if dp == nil {
		d = vis.Min
	} else {
		d = dp.Add(r.vp.Offset)
	}

	bounds := src.Bounds()
	if sr == nil {
		s = bounds
	} else {
		s = *sr
		// Dropping a negative origin keeps Max, so the size shrinks with it.
		if s.Min.X < 0 {
			d.X -= s.Min.X
			s.Min.X = 0
		}
		if s.Min.Y < 0 {
			d.Y -= s.Min.Y
			s.Min.Y = 0
		}
		s = s.Intersect(bounds)
	}
	if s.Empty() {
		return
	}

	dr := image.Rectangle{d, d.Add(s.Size())}
	clipped := dr.Intersect(vis)
	if clipped.Empty() {
		return
	}
	s.Min = s.Min.Add(clipped.Min.Sub(dr.Min))
	s.Max = s.Min.Add(clipped.Size())

	var (
		w, h = s.Dx(), s.Dy()
		fb   = r.fb
	)
	for y := 0; y < h; y++ {
		sy := s.Min.Y + y
		if flip&FlipY != 0 {
			sy = s.Min.Y + h - 1 - y
		}
		row := fb.Pix[(clipped.Min.Y+y)*fb.W+clipped.Min.X:]
		for x := 0; x < w; x++ {
			sx := s.Min.X + x
			if flip&FlipX != 0 {
				sx = s.Min.X + w - 1 - x
			}
			p := src.ColorIndexAt(sx, sy)
			if p == 0 {
				continue
			}
			if col != noColor {
				row[x] = r.pal.Lookup(col)
			} else {
				row[x] = r.pal.Lookup(int(p))
			}
		}
	}
}
