package p8

import (
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenGUI presents frames through ebiten.
type ebitenGUI struct {
	l    *link
	exit <-chan bool

	keys    []ebiten.Key
	pending []KeyEvent

	width, height int
	img           *image.RGBA
	fb            *ebiten.Image
}

func newEbitenGUI(l *link) *ebitenGUI {
	return &ebitenGUI{l: l, width: DeviceWidth, height: DeviceHeight}
}

func (g *ebitenGUI) Run(exit <-chan bool) error {
	g.exit = exit
	ebiten.SetWindowTitle("p8port")
	ebiten.SetWindowSize(g.width*2, g.height*2)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

func (g *ebitenGUI) Update() error {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if kk, ok := ebitenKey(k); ok {
			g.pending = append(g.pending, KeyEvent{kk, true})
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if kk, ok := ebitenKey(k); ok {
			g.pending = append(g.pending, KeyEvent{kk, false})
		}
	}

	select {
	case <-g.exit:
		return ebiten.Termination
	case m := <-g.l.update:
		// This is the only safe time to access machine state;
		// at all other times it may be mutated by the frame loop.
		g.update(m)
		g.l.done <- true
	default:
	}
	return nil
}

func (g *ebitenGUI) update(m *Machine) {
	m.Input(g.pending)
	g.pending = g.pending[:0]

	fb := m.Renderer().Framebuffer()
	if g.img == nil || g.width != fb.W || g.height != fb.H {
		g.width, g.height = fb.W, fb.H
		g.img = image.NewRGBA(fb.Bounds())
		if g.fb != nil {
			g.fb.Deallocate()
		}
		g.fb = ebiten.NewImage(fb.W, fb.H)
	}
	fb.CopyTo(g.img)
	g.fb.WritePixels(g.img.Pix)
}

func (g *ebitenGUI) Draw(screen *ebiten.Image) {
	if g.fb != nil {
		screen.DrawImage(g.fb, nil)
	}
}

func (g *ebitenGUI) Layout(outerWidth, outerHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func ebitenKey(k ebiten.Key) (Key, bool) {
	switch k {
	case ebiten.KeyArrowLeft:
		return KeyLeft, true
	case ebiten.KeyArrowRight:
		return KeyRight, true
	case ebiten.KeyArrowUp:
		return KeyUp, true
	case ebiten.KeyArrowDown:
		return KeyDown, true
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return KeyEnter, true
	case ebiten.KeyEscape:
		return KeyEscape, true
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return KeyShift, true
	case ebiten.KeyF1:
		return KeyF1, true
	case ebiten.KeyF2:
		return KeyF2, true
	case ebiten.KeyF6:
		return KeyF6, true
	}
	// Letters are named "A" to "Z", digits "Digit0" to "Digit9".
	s := strings.TrimPrefix(k.String(), "Digit")
	if len(s) != 1 {
		return "", false
	}
	return Key(strings.ToLower(s)), true
}
