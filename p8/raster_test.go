package p8

import (
	"fmt"
	"image"
	"sort"
	"testing"

	"github.com/go-test/deep"
)

func points(cells map[image.Point]uint16) []image.Point {
	ps := make([]image.Point, 0, len(cells))
	for p := range cells {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
	return ps
}

func TestLine(t *testing.T) {
	for _, c := range []struct {
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{5, 5, 5, 5, nil},
		{0, 0, 3, 0, []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{3, 0, 0, 0, []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{2, 1, 2, 4, []image.Point{{2, 1}, {2, 2}, {2, 3}, {2, 4}}},
		{0, 0, 3, 3, []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{0, 0, 4, 2, []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}},
		{-5, 0, 1, 0, []image.Point{{0, 0}, {1, 0}}},
	} {
		t.Run(fmt.Sprintf("%d,%d-%d,%d", c.x0, c.y0, c.x1, c.y1), func(t *testing.T) {
			r := newTestRenderer(t)
			r.Line(c.x0, c.y0, c.x1, c.y1, 7)
			got := points(painted(r))
			if len(got) == 0 {
				got = nil
			}
			if diff := deep.Equal(got, c.want); diff != nil {
				t.Errorf("Line painted %v\ndiff: %v", got, diff)
			}
		})
	}
}

func TestLineScaled(t *testing.T) {
	r := newTestRenderer(t)
	r.SetScale(2, AnchorTop)
	before := r.fb.Clone()
	r.Line(0, 0, 3, 0, 7)
	// Four 2×2 cells.
	if g := len(changed(before, r.fb)); g != 16 {
		t.Errorf("scaled line changed %d pixels, want 16", g)
	}
	writeTestImage(t, "line_scaled", r.fb)
}

func TestRectFill(t *testing.T) {
	for _, c := range []struct {
		x0, y0, x1, y1 int
		want           int // cells painted
	}{
		{0, 0, 0, 0, 1},
		{0, 0, 127, 127, 128 * 128},
		{10, 10, 12, 11, 6},
		{12, 10, 10, 11, 0},
		{-10, -10, 1, 1, 4},
		{120, 120, 200, 200, 64},
		{200, 0, 300, 10, 0},
	} {
		t.Run(fmt.Sprintf("%d,%d-%d,%d", c.x0, c.y0, c.x1, c.y1), func(t *testing.T) {
			r := newTestRenderer(t)
			before := r.fb.Clone()
			r.RectFill(c.x0, c.y0, c.x1, c.y1, 9)
			if g := len(painted(r)); g != c.want {
				t.Errorf("RectFill painted %d cells, want %d", g, c.want)
			}
			canvas := r.vp.Canvas()
			for _, p := range changed(before, r.fb) {
				if !p.In(canvas) {
					t.Fatalf("RectFill wrote %v outside the canvas %v", p, canvas)
				}
			}
		})
	}
}

func TestRectFillScaledClip(t *testing.T) {
	// At 2× centered the canvas overhangs the device top and bottom.
	r := newTestRenderer(t)
	r.SetScale(2, AnchorCenter)
	r.RectFill(0, 0, 127, 127, 8)
	want := r.vp.Visible()
	for y := 0; y < r.fb.H; y++ {
		for x := 0; x < r.fb.W; x++ {
			in := image.Pt(x, y).In(want)
			if painted := r.fb.Pixel(x, y) != 0; painted != in {
				t.Fatalf("pixel (%d, %d) painted %v, want %v", x, y, painted, in)
			}
		}
	}
	writeTestImage(t, "rectfill_2x_center", r.fb)
}

func rotate(cells map[image.Point]uint16, c image.Point) map[image.Point]uint16 {
	out := make(map[image.Point]uint16)
	for p, v := range cells {
		d := p.Sub(c)
		out[c.Add(image.Pt(-d.Y, d.X))] = v
	}
	return out
}

func TestCircFill(t *testing.T) {
	center := image.Pt(64, 64)
	for _, c := range []struct {
		r    int
		want int // cells painted; 0 means don't check
	}{
		{0, 5},
		{1, 5},
		{2, 21},
		{3, 37},
		{4, 0},
		{7, 0},
		{20, 0},
	} {
		t.Run(fmt.Sprint(c.r), func(t *testing.T) {
			r := newTestRenderer(t)
			r.CircFill(center.X, center.Y, c.r, 11)
			cells := painted(r)
			if c.want > 0 && len(cells) != c.want {
				t.Errorf("CircFill painted %d cells, want %d", len(cells), c.want)
			}
			if diff := deep.Equal(points(rotate(cells, center)), points(cells)); diff != nil {
				t.Errorf("CircFill(r=%d) is not symmetric under rotation: %v", c.r, diff)
			}
			for p := range cells {
				if d := p.Sub(center); d.X*d.X+d.Y*d.Y > (c.r+1)*(c.r+1) {
					t.Errorf("cell %v is outside radius %d", p, c.r)
				}
			}
			writeTestImage(t, fmt.Sprintf("circfill_%d", c.r), r.fb)
		})
	}
}

func TestCircFillLargeIsFilled(t *testing.T) {
	r := newTestRenderer(t)
	r.CircFill(64, 64, 10, 11)
	cells := painted(r)
	for y := -7; y <= 7; y++ {
		for x := -7; x <= 7; x++ {
			if x*x+y*y > 49 {
				continue
			}
			if _, ok := cells[image.Pt(64+x, 64+y)]; !ok {
				t.Errorf("cell (%d, %d) inside the disc not painted", 64+x, 64+y)
			}
		}
	}
}

// midpointCircFill draws every span of the midpoint disc, with no
// shortcuts.
func midpointCircFill(r *Renderer, cx, cy, rad, col int) {
	var (
		f    = 1 - rad
		ddFx = 1
		ddFy = -2 * rad
		x    = 0
		y    = rad
	)
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
		r.Line(cx+x, cy+y, cx-x, cy+y, col)
		r.Line(cx+x, cy-y, cx-x, cy-y, col)
		r.Line(cx+y, cy+x, cx-y, cy+x, col)
		r.Line(cx+y, cy-x, cx-y, cy-x, col)
	}
}

func TestBigCircFillMatchesMidpoint(t *testing.T) {
	for _, scale := range []int{1, 2} {
		for _, c := range []struct{ x, y, r int }{
			{64, 64, 4},
			{64, 64, 10},
			{64, 64, 90},
			{64, 64, 92},
			{64, 64, 93},
			{64, 64, 400},
			{-50, 300, 320},
			{200, -40, 150},
			{500, 64, 440},
			{64, 64, 1000},
		} {
			t.Run(fmt.Sprintf("%dx/%d,%d,r%d", scale, c.x, c.y, c.r), func(t *testing.T) {
				got, want := newTestRenderer(t), newTestRenderer(t)
				got.SetScale(scale, AnchorCenter)
				want.SetScale(scale, AnchorCenter)
				got.CircFill(c.x, c.y, c.r, 12)
				midpointCircFill(want, c.x, c.y, c.r, 12)
				if d := changed(got.fb, want.fb); len(d) != 0 {
					t.Errorf("%d pixels differ from the plain midpoint disc, first at %v", len(d), d[0])
					writeTestImage(t, fmt.Sprintf("circfill_%d_%d_%d_%d", scale, c.x, c.y, c.r), got.fb)
				}
			})
		}
	}
}

func TestCircFillHuge(t *testing.T) {
	r := newTestRenderer(t)
	r.CircFill(64, 64, 1<<30, 7)
	cells := painted(r)
	if len(cells) != Width*Height {
		t.Fatalf("painted %d cells, want the whole canvas", len(cells))
	}
	for p, c := range cells {
		if w := r.pal.Lookup(7); c != w {
			t.Fatalf("cell %v == %.4x, want %.4x", p, c, w)
		}
	}
}
