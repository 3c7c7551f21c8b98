// Package demo is a small platformer that uses every p8 command.
package demo

import (
	"encoding/json"
	"fmt"

	"github.com/nf/p8port/asset"
	"github.com/nf/p8port/p8"
)

type particle struct {
	X, Y, DX, DY, R, Col int
}

type state struct {
	Frame    int
	X, Y     int // player position, in pixels
	VY       int
	Left     bool // facing left
	Grounded bool
	Dash     int // frames of dash left
	Shake    int // frames of camera shake left
	Hurt     int // frames of hurt flash left
	Deaths   int
	Seed     uint32
	Snow     []particle
}

// Cart is the demo cart. The zero value is ready to Init.
type Cart struct {
	h p8.Host
	s state
}

func New() *Cart { return &Cart{} }

const (
	startX, startY = 8, 96
	numSnow        = 16
	gravity        = 1
	maxFall        = 4
	jumpSpeed      = -6
)

func (c *Cart) Init(h p8.Host) {
	c.h = h
	c.s = state{X: startX, Y: startY, Seed: 1}
	for i := 0; i < numSnow; i++ {
		c.s.Snow = append(c.s.Snow, particle{
			X:   c.rnd(128),
			Y:   c.rnd(128),
			DX:  1 + c.rnd(2),
			DY:  1,
			R:   c.rnd(4),
			Col: 6 + c.rnd(2),
		})
	}
	h.Do(p8.Music{N: 0, Fade: 0, Mask: 7})
}

// rnd returns a pseudo-random number in [0, n).
func (c *Cart) rnd(n int) int {
	c.s.Seed = c.s.Seed*1664525 + 1013904223
	return int(c.s.Seed>>16) % n
}

func (c *Cart) btn(b int) bool { return c.h.Do(p8.Btn{B: b}) != 0 }

// solid reports whether the pixel (x, y) lies in a solid tile.
func (c *Cart) solid(x, y int) bool {
	t := c.h.Do(p8.MGet{X: floorDiv(x, 8), Y: floorDiv(y, 8)})
	return c.h.Do(p8.FGet{Tile: t, Flag: 0}) != 0
}

func (c *Cart) hazard(x, y int) bool {
	t := c.h.Do(p8.MGet{X: floorDiv(x, 8), Y: floorDiv(y, 8)})
	return c.h.Do(p8.FGet{Tile: t, Flag: 1}) != 0
}

func (c *Cart) Update() {
	s := &c.s
	s.Frame++

	dx := 0
	if c.btn(p8.ButtonLeft) {
		dx--
		s.Left = true
	}
	if c.btn(p8.ButtonRight) {
		dx++
		s.Left = false
	}
	if c.btn(p8.ButtonJump) && s.Grounded {
		s.VY = jumpSpeed
		c.h.Do(p8.Sfx{N: 1})
	}
	if c.btn(p8.ButtonDash) && s.Dash == 0 {
		s.Dash = 6
		s.Shake = 6
		c.h.Do(p8.Sfx{N: 3})
	}
	if s.Dash > 0 {
		s.Dash--
		dx *= 3
	}

	for i := abs(dx); i > 0; i-- {
		nx := s.X + sign(dx)
		if nx < 0 || nx > 120 || c.solid(nx, s.Y) || c.solid(nx+7, s.Y) || c.solid(nx, s.Y+7) || c.solid(nx+7, s.Y+7) {
			break
		}
		s.X = nx
	}

	if s.VY += gravity; s.VY > maxFall {
		s.VY = maxFall
	}
	s.Grounded = false
	for i := abs(s.VY); i > 0; i-- {
		ny := s.Y + sign(s.VY)
		edge := ny
		if s.VY > 0 {
			edge = ny + 7
		}
		if c.solid(s.X, edge) || c.solid(s.X+7, edge) {
			if s.VY > 0 {
				s.Grounded = true
			}
			s.VY = 0
			break
		}
		s.Y = ny
	}

	if s.Y > 128 || c.hazard(s.X+4, s.Y+7) {
		s.Deaths++
		s.Hurt = 10
		s.Shake = 10
		s.X, s.Y, s.VY = startX, startY, 0
		c.h.Do(p8.Sfx{N: 0})
	}
	if s.Hurt > 0 {
		s.Hurt--
	}

	for i := range s.Snow {
		p := &s.Snow[i]
		p.X = (p.X + p.DX) % 128
		p.Y = (p.Y + p.DY) % 128
	}
}

func (c *Cart) Draw() {
	var (
		s = &c.s
		h = c.h
	)
	if s.Shake > 0 {
		s.Shake--
		h.Do(p8.Camera{X: c.rnd(5) - 2, Y: c.rnd(5) - 2})
	} else {
		h.Do(p8.Camera{})
	}

	h.Do(p8.PalReset{})
	h.Do(p8.RectFill{X0: 0, Y0: 0, X1: 127, Y1: 127, Col: 1})
	h.Do(p8.CircFill{X: 100, Y: 24, R: 12, Col: 9})
	h.Do(p8.Line{X0: 0, Y0: 40, X1: 127, Y1: 48, Col: 13})

	h.Do(p8.Map{MX: 0, MY: 0, TX: 0, TY: 0, MW: 16, MH: 16, Mask: 1})
	h.Do(p8.Map{MX: 0, MY: 0, TX: 0, TY: 0, MW: 16, MH: 16, Mask: 2})
	if s.Hurt > 0 && s.Hurt%2 == 0 {
		h.Do(p8.Pal{A: 8, B: 2})
		h.Do(p8.Pal{A: 15, B: 14})
	}
	h.Do(p8.Spr{N: asset.TilePlayer, X: s.X, Y: s.Y, Cols: 1, Rows: 1, FlipX: s.Left})
	h.Do(p8.PalReset{})
	h.Do(p8.Map{MX: 0, MY: 0, TX: 0, TY: 0, MW: 16, MH: 16, Mask: 4})

	for _, p := range s.Snow {
		h.Do(p8.CircFill{X: p.X, Y: p.Y, R: p.R, Col: p.Col})
	}

	h.Do(p8.Camera{})
	h.Do(p8.Print{S: fmt.Sprintf("deaths %d", s.Deaths), X: 1, Y: 1, Col: 7})
}

func (c *Cart) Snapshot() []byte {
	b, err := json.Marshal(c.s)
	if err != nil {
		panic(err) // state has no unencodable fields
	}
	return b
}

func (c *Cart) Restore(b []byte) error {
	var s state
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	c.s = s
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
