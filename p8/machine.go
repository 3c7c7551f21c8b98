package p8

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"

	"github.com/google/shlex"
)

// Cart is a game simulation. It draws by issuing commands to its Host
// from within Draw, and may query the Host from Update.
type Cart interface {
	Init(h Host)
	Update()
	Draw()
}

// Host executes cart commands. *Renderer implements it.
type Host interface {
	Do(c Command) int
}

// Snapshotter is implemented by carts that can save and restore their
// whole state.
type Snapshotter interface {
	Snapshot() []byte
	Restore(b []byte) error
}

// ErrNoSnapshot is returned when a cart cannot save its state.
var ErrNoSnapshot = errors.New("cart does not support snapshots")

// Config is the host-side configuration of a Machine.
type Config struct {
	Device   image.Point // display size; zero means DeviceWidth×DeviceHeight
	Scale    int
	Anchor   Anchor
	Shake    bool
	Controls int    // control scheme, 0 to NumControlSchemes-1
	SaveFile string // snapshot file; empty disables persistence
}

// Frames a hotkey must be held, and frames an OSD message is shown.
const (
	resetHoldFrames = 30
	osdFrames       = 30
)

// Machine runs a cart against a Renderer and provides the host shell:
// buttons, pause, snapshots, hotkeys and on-screen messages.
// All of its methods except Halt must be called from one goroutine.
type Machine struct {
	cfg  Config
	r    *Renderer
	cart Cart

	held    map[Key]bool
	presses []Key

	paused    bool
	exit      bool
	resetHold int
	scaleStep int // 0: 1×, 1-3: 2× top, center, bottom
	controls  int
	frame     uint64

	initial, saved []byte

	osd      string
	osdTimer int

	halt  chan bool
	debug chan string
}

// NewMachine builds the renderer for a and initializes cart.
func NewMachine(cfg Config, a Assets, cart Cart) (*Machine, error) {
	if cfg.Device == (image.Point{}) {
		cfg.Device = image.Pt(DeviceWidth, DeviceHeight)
	}
	if cfg.Controls < 0 || cfg.Controls >= NumControlSchemes {
		return nil, fmt.Errorf("invalid control scheme %d", cfg.Controls)
	}
	r, err := NewRenderer(cfg.Device, a)
	if err != nil {
		return nil, err
	}
	m := &Machine{
		cfg:      cfg,
		r:        r,
		cart:     cart,
		held:     make(map[Key]bool),
		controls: cfg.Controls,
		halt:     make(chan bool),
		debug:    make(chan string, 8),
	}
	switch cfg.Scale {
	case 0, 1:
	case 2:
		if cfg.Anchor < AnchorTop || cfg.Anchor > AnchorBottom {
			return nil, fmt.Errorf("invalid anchor %v", cfg.Anchor)
		}
		m.scaleStep = 1 + int(cfg.Anchor)
		r.SetScale(2, cfg.Anchor)
	default:
		return nil, fmt.Errorf("invalid scale %d (want 1 or 2)", cfg.Scale)
	}
	r.SetShake(cfg.Shake)
	r.Clear()

	cart.Init(r)
	if s, ok := cart.(Snapshotter); ok {
		m.initial = s.Snapshot()
		if b := m.readSave(); b != nil {
			m.initial, m.saved = b, b
			m.restore(b)
		}
	}
	return m, nil
}

func (m *Machine) Renderer() *Renderer { return m.r }
func (m *Machine) Frame() uint64       { return m.frame }
func (m *Machine) Paused() bool        { return m.paused }

// Halt stops Exec. It may be called from any goroutine, once.
func (m *Machine) Halt() { close(m.halt) }

// Close releases the renderer's 2× surfaces. The machine must not be
// running; its framebuffer stays readable.
func (m *Machine) Close() { m.r.Close() }

// Input records key events from a presenter.
func (m *Machine) Input(evs []KeyEvent) {
	for _, ev := range evs {
		if ev.Down && !m.held[ev.Key] {
			m.presses = append(m.presses, ev.Key)
		}
		m.held[ev.Key] = ev.Down
	}
}

// Step runs one frame.
func (m *Machine) Step() {
	m.frame++

	if m.initial != nil && m.held[keyReset] {
		m.resetHold++
		if m.resetHold >= resetHoldFrames {
			m.resetHold = 0
			m.setOSD("reset")
			m.paused = false
			m.cart.Init(m.r)
			m.restore(m.initial)
		}
	} else {
		m.resetHold = 0
	}

	m.handlePresses()
	m.r.SetButtons(m.buttons())

	if m.paused {
		const x0, y0 = Width/2 - 3*4, 8
		m.r.RectFill(x0-1, y0-1, 6*4+x0+1, 6+y0+1, 6)
		m.r.RectFill(x0, y0, 6*4+x0, 6+y0, 0)
		m.r.Print("paused", x0+1, y0+1, 7)
	} else {
		m.cart.Update()
		m.cart.Draw()
	}
	m.drawOSD()
}

// handlePresses acts on hotkeys pressed since the last frame. Pause,
// exit, save and load end the batch; later presses wait a frame.
func (m *Machine) handlePresses() {
	scheme := controlSchemes[m.controls]
	for i, k := range m.presses {
		stop := true
		switch k {
		case scheme.pause:
			m.paused = !m.paused
		case keyExit:
			m.exit = true
		case keySave:
			m.save()
		case keyLoad:
			m.load()
		default:
			stop = false
			m.hotkey(k)
		}
		if stop {
			m.presses = append(m.presses[:0], m.presses[i+1:]...)
			return
		}
	}
	m.presses = m.presses[:0]
}

func (m *Machine) hotkey(k Key) {
	switch k {
	case keyShake:
		m.r.SetShake(!m.r.Shake())
		m.setOSD("screenshake: %s", onOff(m.r.Shake()))
	case keyScale:
		m.scaleStep = (m.scaleStep + 1) % 4
		m.applyScale()
	case keyControls:
		m.controls = (m.controls + 1) % NumControlSchemes
		m.setOSD("controls: %d/%d", m.controls+1, NumControlSchemes)
	}
}

func (m *Machine) applyScale() {
	if m.scaleStep == 0 {
		m.r.SetScale(1, AnchorCenter)
	} else {
		m.r.SetScale(2, Anchor(m.scaleStep-1))
	}
	m.r.Clear()
}

func (m *Machine) buttons() (b uint8) {
	for i, k := range controlSchemes[m.controls].buttons {
		if m.held[k] {
			b |= 1 << i
		}
	}
	return b
}

func (m *Machine) save() {
	s, ok := m.cart.(Snapshotter)
	if !ok {
		m.setOSD("save state: %v", ErrNoSnapshot)
		return
	}
	m.setOSD("save state")
	m.saved = s.Snapshot()
	m.writeSave(m.saved)
}

func (m *Machine) load() {
	if m.saved == nil {
		return
	}
	m.setOSD("load state")
	m.paused = false
	m.restore(m.saved)
}

func (m *Machine) restore(b []byte) {
	s, ok := m.cart.(Snapshotter)
	if !ok {
		return
	}
	if err := s.Restore(b); err != nil {
		log.Printf("restore snapshot: %v", err)
	}
}

func (m *Machine) readSave() []byte {
	if m.cfg.SaveFile == "" {
		return nil
	}
	b, err := os.ReadFile(m.cfg.SaveFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("reading save file: %v", err)
		}
		return nil
	}
	return b
}

func (m *Machine) writeSave(b []byte) {
	if m.cfg.SaveFile == "" {
		return
	}
	if err := os.WriteFile(m.cfg.SaveFile, b, 0o644); err != nil {
		log.Printf("writing save file: %v", err)
	}
}

func (m *Machine) setOSD(format string, args ...any) {
	m.osd = fmt.Sprintf(format, args...)
	m.osdTimer = osdFrames
	log.Print(m.osd)
}

// drawOSD draws the current message near the bottom of the canvas. In
// its last 10 frames the message slides off the bottom edge.
func (m *Machine) drawOSD() {
	if m.osdTimer <= 0 {
		return
	}
	m.osdTimer--
	const x = 4
	y := 120
	if m.osdTimer < 10 {
		y += 10 - m.osdTimer
	}
	w := TextWidth(m.osd)
	m.r.RectFill(x-2, y-2, x+w, y+6, 6)
	m.r.RectFill(x-1, y-1, x+w-1, y+5, 0)
	m.r.Print(m.osd, x, y, 7)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Status is a copy of the machine state for display elsewhere.
type Status struct {
	Frame    uint64
	Paused   bool
	Viewport Viewport
	Camera   image.Point
	Shake    bool
	Controls int
	Palette  Palette
	Counts   map[string]int
	OSD      string
}

func (m *Machine) Status() Status {
	s := Status{
		Frame:    m.frame,
		Paused:   m.paused,
		Viewport: m.r.Viewport(),
		Camera:   m.r.Camera(),
		Shake:    m.r.Shake(),
		Controls: m.controls,
		Palette:  *m.r.Palette(),
		Counts:   m.r.Counts(),
	}
	if m.osdTimer > 0 {
		s.OSD = m.osd
	}
	return s
}

// Debug queues a debugger command to run before the next frame.
func (m *Machine) Debug(cmd string) {
	select {
	case m.debug <- cmd:
	default:
		log.Printf("debug: dropped %q, machine busy", cmd)
	}
}

// runDebug executes a debugger command on the frame goroutine.
func (m *Machine) runDebug(cmd string) {
	f, err := shlex.Split(cmd)
	if err != nil {
		log.Printf("debug: %v", err)
		return
	}
	if len(f) == 0 {
		return
	}
	switch f[0] {
	case "scale":
		s := 0
		if len(f) > 1 {
			s, _ = strconv.Atoi(f[1])
		}
		switch s {
		case 1:
			m.scaleStep = 0
		case 2:
			a := AnchorCenter
			if len(f) > 2 {
				if a, err = ParseAnchor(f[2]); err != nil {
					log.Print(err)
					return
				}
			}
			m.scaleStep = 1 + int(a)
		default:
			log.Printf("usage: scale <1|2> [top|center|bottom]")
			return
		}
		m.applyScale()
		log.Printf("viewport %v", m.r.Viewport())
	case "shake":
		m.hotkey(keyShake)
	case "pause":
		m.paused = !m.paused
		log.Printf("paused: %v", m.paused)
	case "pal":
		m.r.Palette().Reset()
		log.Print("palette reset")
	case "save":
		m.save()
	case "load":
		m.load()
	default:
		log.Printf("unknown command %q", cmd)
	}
}
