package p8

import (
	"image"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses but not releases, so a key counts as
// held for this many frames after its last press or repeat.
const termHoldFrames = 4

// termGUI presents the canvas in a terminal, two pixels per cell.
type termGUI struct {
	l      *link
	screen tcell.Screen

	held map[Key]int // frames left
}

func newTermGUI(l *link) *termGUI {
	return &termGUI{l: l, held: make(map[Key]int)}
}

func (g *termGUI) Run(exit <-chan bool) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	g.screen = s

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var pending []KeyEvent
	for {
		select {
		case <-exit:
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					pending = append(pending, KeyEvent{KeyEscape, true})
					break
				}
				if k, ok := tcellKey(ev); ok {
					if g.held[k] == 0 {
						pending = append(pending, KeyEvent{k, true})
					}
					g.held[k] = termHoldFrames
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case m := <-g.l.update:
			for k, n := range g.held {
				if n--; n > 0 {
					g.held[k] = n
					continue
				}
				delete(g.held, k)
				pending = append(pending, KeyEvent{k, false})
			}
			m.Input(pending)
			pending = pending[:0]
			g.draw(m.Renderer())
			g.l.done <- true
			s.Show()
		}
	}
}

// draw samples the visible canvas at one point per logical pixel and
// packs vertical pairs into half-block cells.
func (g *termGUI) draw(r *Renderer) {
	var (
		fb   = r.Framebuffer()
		vp   = r.Viewport()
		vis  = vp.Visible()
		step = vp.Scale
	)
	w, h := g.screen.Size()
	g.screen.Clear()
	for cy := 0; cy < h; cy++ {
		y := vis.Min.Y + cy*2*step
		if y >= vis.Max.Y {
			break
		}
		for cx := 0; cx < w; cx++ {
			x := vis.Min.X + cx*step
			if x >= vis.Max.X {
				break
			}
			var (
				top = RGBA(fb.Pixel(x, y))
				bot = RGBA(fb.Pixel(x, y+step))
			)
			if !(image.Point{x, y + step}.In(vis)) {
				bot = top
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			g.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}

func tcellKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyEnter:
		return KeyEnter, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyF1:
		return KeyF1, true
	case tcell.KeyF2:
		return KeyF2, true
	case tcell.KeyF6:
		return KeyF6, true
	case tcell.KeyRune:
		if r := unicode.ToLower(ev.Rune()); r > ' ' && r < unicode.MaxASCII {
			return Key(string(r)), true
		}
	}
	return "", false
}
