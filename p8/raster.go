package p8

import (
	"image"
	"math"
)

// fillRect fills the inclusive rectangle (x1,y1)-(x2,y2), given in
// scaled canvas pixels, after clamping it to the canvas.
func (r *Renderer) fillRect(x1, y1, x2, y2 int, c uint16) {
	var (
		w = Width * r.vp.Scale
		h = Height * r.vp.Scale
	)
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 >= w {
		x2 = w - 1
	}
	if y2 >= h {
		y2 = h - 1
	}
	if x1 > x2 || y1 > y2 {
		return
	}
	dr := image.Rect(x1, y1, x2+1, y2+1).Add(r.vp.Offset)
	// The canvas may hang off the device at 2×.
	dr = dr.Intersect(r.fb.Bounds())
	if dr.Empty() {
		return
	}
	r.fb.Fill(dr, c)
}

// cell fills the logical rectangle (x1,y1)-(x2,y2), inclusive.
func (r *Renderer) cell(x1, y1, x2, y2 int, c uint16) {
	s := r.vp.Scale
	r.fillRect(x1*s, y1*s, (x2+1)*s-1, (y2+1)*s-1, c)
}

// RectFill fills the logical rectangle (x0,y0)-(x1,y1), inclusive.
// Inverted corners draw nothing.
func (r *Renderer) RectFill(x0, y0, x1, y1, col int) {
	var (
		s = r.vp.Scale
		w = (x1 - x0 + 1) * s
		h = (y1 - y0 + 1) * s
	)
	if w > 0 && h > 0 {
		r.fillRect(x0*s, y0*s, x0*s+w-1, y0*s+h-1, r.pal.Lookup(col))
	}
}

// Line draws a Bresenham line between two logical points, both
// inclusive. Endpoints are first clamped to the device size.
func (r *Renderer) Line(x0, y0, x1, y1, col int) {
	x0 = clamp(x0, r.fb.W)
	y0 = clamp(y0, r.fb.H)
	x1 = clamp(x1, r.fb.W)
	y1 = clamp(y1, r.fb.H)

	var (
		c      = r.pal.Lookup(col)
		dx     = abs(x1 - x0)
		dy     = abs(y1 - y0)
		sx, sy = 1, 1
	)
	if dx == 0 && dy == 0 {
		return
	}
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	switch {
	case dx == 0:
		for ; y0 != y1; y0 += sy {
			r.cell(x0, y0, x0, y0, c)
		}
	case dy == 0:
		for ; x0 != x1; x0 += sx {
			r.cell(x0, y0, x0, y0, c)
		}
	}
	err := dx - dy
	for {
		r.cell(x0, y0, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// CircFill draws a filled disc. Radii up to 3 use fixed shapes.
func (r *Renderer) CircFill(cx, cy, rad, col int) {
	c := r.pal.Lookup(col)
	switch {
	case rad <= 1:
		r.cell(cx-1, cy, cx+1, cy, c)
		r.cell(cx, cy-1, cx, cy+1, c)
	case rad == 2:
		r.cell(cx-2, cy-1, cx+2, cy+1, c)
		r.cell(cx-1, cy-2, cx+1, cy+2, c)
	case rad == 3:
		r.cell(cx-3, cy-1, cx+3, cy+1, c)
		r.cell(cx-1, cy-3, cx+1, cy+3, c)
		r.cell(cx-2, cy-2, cx+2, cy+2, c)
	default:
		r.bigCircFill(cx, cy, rad, col)
	}
}

// span is a horizontal line clamped the way Line clamps it.
type span struct{ x0, x1, y int }

// bigCircFill is the midpoint disc for radii above 3. A span that
// clamps to the same pixels as the previous span of its mirror is
// skipped, and a disc that covers the whole drawable area is filled in
// one step.
func (r *Renderer) bigCircFill(cx, cy, rad, col int) {
	area := image.Rect(0, 0, min(Width, r.fb.W), min(Height, r.fb.H))
	if covers(cx, cy, rad-2, area) {
		r.RectFill(area.Min.X, area.Min.Y, area.Max.X-1, area.Max.Y-1, col)
		return
	}
	var (
		f    = 1 - rad
		ddFx = 1
		ddFy = -2 * rad
		x    = 0
		y    = rad
		last [4]span
	)
	for i := range last {
		last[i] = span{-1, -1, -1}
	}
	line := func(i, x0, x1, row int) {
		s := span{clamp(x0, r.fb.W), clamp(x1, r.fb.W), clamp(row, r.fb.H)}
		if s == last[i] {
			return
		}
		last[i] = s
		r.Line(x0, row, x1, row, col)
	}
	// The spans below never cover the two diameters.
	r.Line(cx, cy-y, cx, cy+rad, col)
	r.Line(cx+rad, cy, cx-rad, cy, col)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}
		x++
		ddFx += 2
		f += ddFx

		line(0, cx+x, cx-x, cy+y)
		line(1, cx+x, cx-x, cy-y)
		line(2, cx+y, cx-y, cy+x)
		line(3, cx+y, cx-y, cy-x)
	}
}

// covers reports whether every pixel of area lies within distance d
// of (cx, cy).
func covers(cx, cy, d int, area image.Rectangle) bool {
	if d <= 0 || area.Empty() {
		return false
	}
	for _, p := range [...]image.Point{
		area.Min,
		{area.Max.X - 1, area.Min.Y},
		{area.Min.X, area.Max.Y - 1},
		area.Max.Sub(image.Pt(1, 1)),
	} {
		if math.Hypot(float64(p.X-cx), float64(p.Y-cy)) > float64(d) {
			return false
		}
	}
	return true
}

// clamp limits v to [0, n).
func clamp(v, n int) int {
	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
