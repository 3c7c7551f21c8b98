package p8

import (
	"image"
	"image/draw"
	"log"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// shinyGUI presents frames in a native window.
type shinyGUI struct {
	l *link

	pending []KeyEvent

	size  image.Point
	buf   screen.Buffer
	tex   screen.Texture
	dirty bool
}

func newShinyGUI(l *link) *shinyGUI {
	return &shinyGUI{l: l}
}

func (g *shinyGUI) Run(exit <-chan bool) error {
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "p8port",
			Width:  DeviceWidth * 2,
			Height: DeviceHeight * 2,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 60)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					w.Send(update{})
					return
				}
			}
		}()

		defer g.release()

		var sz size.Event
		for {
			e := w.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}
				g.dirty = true

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case key.Event:
				if k, ok := shinyKey(e); ok && e.Direction != key.DirNone {
					g.pending = append(g.pending, KeyEvent{k, e.Direction == key.DirPress})
				}

			case paint.Event:
				g.dirty = true

			case update:
				select {
				case m := <-g.l.update:
					if err := g.update(s, m); err != nil {
						log.Fatalf("update: %v", err)
					}
					g.l.done <- true
				default:
					// frame loop is busy
				}
				if g.dirty && g.tex != nil {
					g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
					w.Scale(sz.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
					w.Publish()
					g.dirty = false
				}

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}

// update copies the frame out of m and hands it the pending input.
// It is the only place the window touches machine state.
func (g *shinyGUI) update(s screen.Screen, m *Machine) (err error) {
	m.Input(g.pending)
	g.pending = g.pending[:0]

	fb := m.Renderer().Framebuffer()
	if sz := fb.Bounds().Size(); g.tex == nil || g.size != sz {
		g.release()
		g.size = sz
		if g.buf, err = s.NewBuffer(sz); err != nil {
			return
		}
		if g.tex, err = s.NewTexture(sz); err != nil {
			return
		}
	}
	fb.CopyTo(g.buf.RGBA())
	g.dirty = true
	return
}

func (g *shinyGUI) release() {
	if g.tex != nil {
		g.tex.Release()
		g.tex = nil
	}
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}

func shinyKey(e key.Event) (Key, bool) {
	switch e.Code {
	case key.CodeLeftArrow:
		return KeyLeft, true
	case key.CodeRightArrow:
		return KeyRight, true
	case key.CodeUpArrow:
		return KeyUp, true
	case key.CodeDownArrow:
		return KeyDown, true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		return KeyEnter, true
	case key.CodeEscape:
		return KeyEscape, true
	case key.CodeLeftShift, key.CodeRightShift:
		return KeyShift, true
	case key.CodeF1:
		return KeyF1, true
	case key.CodeF2:
		return KeyF2, true
	case key.CodeF6:
		return KeyF6, true
	}
	if r := unicode.ToLower(e.Rune); r > ' ' && r < unicode.MaxASCII {
		return Key(string(r)), true
	}
	return "", false
}
