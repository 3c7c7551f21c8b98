package demo

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/nf/p8port/asset"
	"github.com/nf/p8port/p8"
)

func newMachine(t *testing.T) (*p8.Machine, *Cart) {
	t.Helper()
	c := New()
	m, err := p8.NewMachine(p8.Config{Shake: true}, asset.Builtin().Assets(), c)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m, c
}

func TestLands(t *testing.T) {
	m, c := newMachine(t)
	for i := 0; i < 10; i++ {
		m.Step()
	}
	if !c.s.Grounded || c.s.Y != startY {
		t.Errorf("player at y %d, grounded %v, want %d, true", c.s.Y, c.s.Grounded, startY)
	}
	counts := m.Renderer().Counts()
	for _, k := range []string{"map", "spr", "print", "circfill", "rectfill", "line", "camera", "btn", "mget", "fget", "pal()", "music"} {
		if counts[k] == 0 {
			t.Errorf("no %s calls after 10 frames: %v", k, counts)
		}
	}
}

func TestSpikes(t *testing.T) {
	m, c := newMachine(t)
	m.Input([]p8.KeyEvent{{Key: p8.KeyRight, Down: true}})
	for i := 0; i < 120 && c.s.Deaths == 0; i++ {
		m.Step()
	}
	if c.s.Deaths == 0 {
		t.Fatalf("player at (%d, %d) never hit the spikes", c.s.X, c.s.Y)
	}
	if c.s.Hurt == 0 {
		t.Error("no hurt flash after death")
	}
}

func TestSnapshot(t *testing.T) {
	m, c := newMachine(t)
	for i := 0; i < 5; i++ {
		m.Step()
	}
	b := c.Snapshot()
	want := c.s
	want.Snow = append([]particle(nil), c.s.Snow...)
	m.Input([]p8.KeyEvent{{Key: p8.KeyLeft, Down: true}})
	for i := 0; i < 5; i++ {
		m.Step()
	}
	if err := c.Restore(b); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if diff := deep.Equal(c.s, want); diff != nil {
		t.Errorf("restored state differs: %v", diff)
	}
	if err := c.Restore([]byte("{")); err == nil {
		t.Error("Restore accepted a truncated snapshot")
	}
}

func TestFloorDiv(t *testing.T) {
	for _, c := range []struct{ a, b, want int }{
		{7, 8, 0},
		{8, 8, 1},
		{-1, 8, -1},
		{-8, 8, -1},
		{-9, 8, -2},
	} {
		if g := floorDiv(c.a, c.b); g != c.want {
			t.Errorf("floorDiv(%d, %d) == %d, want %d", c.a, c.b, g, c.want)
		}
	}
}
