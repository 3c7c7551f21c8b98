package p8

import (
	"fmt"
	"log"
	"time"
)

// StateFunc receives the machine status after each frame.
type StateFunc func(Status)

// link is the frame handshake between a Machine and its presenter.
// The presenter receives the machine on update, may read the
// framebuffer and call Input, then sends on done.
type link struct {
	update chan *Machine
	done   chan bool
}

func newLink() *link {
	return &link{
		update: make(chan *Machine),
		done:   make(chan bool),
	}
}

// presenter shows frames and collects input until exit is closed.
type presenter interface {
	Run(exit <-chan bool) error
}

// Drivers accepted by NewRunner.
var Drivers = []string{"shiny", "ebiten", "term", "headless"}

type Runner struct {
	driver string
	dev    bool
	state  StateFunc
	fps    int
	frames int

	swap     chan *Machine
	swapDone chan bool
	debug    chan string
}

// NewRunner returns a Runner for the named driver. The machine runs at
// fps frames per second, or as fast as possible when fps is 0, and stops
// after frames frames when frames is positive.
func NewRunner(driver string, devMode bool, state StateFunc, fps, frames int) (*Runner, error) {
	switch driver {
	case "shiny", "ebiten", "term", "headless":
	default:
		return nil, fmt.Errorf("unknown driver %q (want one of %v)", driver, Drivers)
	}
	if fps < 0 {
		return nil, fmt.Errorf("invalid frame rate %d", fps)
	}
	return &Runner{
		driver:   driver,
		dev:      devMode,
		state:    state,
		fps:      fps,
		frames:   frames,
		swap:     make(chan *Machine),
		swapDone: make(chan bool),
		debug:    make(chan string),
	}, nil
}

// Swap replaces the running machine. It is only valid in dev mode.
func (r *Runner) Swap(m *Machine) {
	if !r.dev {
		panic("Swap called while not running in dev mode")
	}
	r.swap <- m
	<-r.swapDone
}

// Debug passes a debugger command to the running machine.
// The command "exit" stops the Runner.
func (r *Runner) Debug(cmd string) { r.debug <- cmd }

func (r *Runner) newPresenter(l *link) presenter {
	switch r.driver {
	case "shiny":
		return newShinyGUI(l)
	case "ebiten":
		return newEbitenGUI(l)
	case "term":
		return newTermGUI(l)
	}
	return nil
}

// Run executes m until it exits, or until the presenter window closes.
// Machines that stop, or are swapped out, are closed.
func (r *Runner) Run(m *Machine) error {
	var (
		l    = newLink()
		p    = r.newPresenter(l)
		exit = make(chan bool)
	)
	if p == nil {
		l = nil
	}
	go func() {
		var (
			execErr = make(chan error)
			running = true
		)
		go func() { execErr <- r.exec(m, l) }()
		for {
			select {
			case newM := <-r.swap:
				if running {
					m.Halt()
					<-execErr
				}
				m.Close()
				m = newM
				running = true
				go func() { execErr <- r.exec(m, l) }()
				r.swapDone <- true
			case cmd := <-r.debug:
				if cmd != "exit" {
					if running {
						m.Debug(cmd)
					}
					break
				}
				if running {
					m.Halt()
					<-execErr
				}
				m.Close()
				close(exit)
				return
			case err := <-execErr:
				if err != nil {
					log.Printf("machine: %v", err)
				}
				if r.dev {
					running = false
				} else {
					m.Close()
					close(exit)
					return
				}
			}
		}
	}()
	if p != nil {
		// The presenter drives the display until exit is closed.
		if err := p.Run(exit); err != nil {
			return fmt.Errorf("%s: %w", r.driver, err)
		}
	} else {
		<-exit
	}
	return nil
}

// exec runs m, turning a cart panic into an error in dev mode so that
// a broken cart can be fixed and swapped in.
func (r *Runner) exec(m *Machine, l *link) (err error) {
	if r.dev {
		defer func() {
			if e := recover(); e != nil {
				err = fmt.Errorf("panic: %v", e)
			}
		}()
	}
	var tick <-chan time.Time
	if r.fps > 0 {
		t := time.NewTicker(time.Second / time.Duration(r.fps))
		defer t.Stop()
		tick = t.C
	}
	return m.Exec(l, tick, r.frames, r.state)
}

// Exec runs frames until the cart exits, Halt is called, or limit
// frames have run. A limit of 0 means no limit. Each frame waits for
// tick, if not nil, and is then handed to the presenter on l.
func (m *Machine) Exec(l *link, tick <-chan time.Time, limit int, state StateFunc) error {
	for n := 0; limit <= 0 || n < limit; n++ {
		for wait := tick != nil; wait; {
			select {
			case cmd := <-m.debug:
				m.runDebug(cmd)
			case <-tick:
				wait = false
			case <-m.halt:
				return nil
			}
		}
		select {
		case cmd := <-m.debug:
			m.runDebug(cmd)
		case <-m.halt:
			return nil
		default:
		}

		m.Step()
		if state != nil {
			state(m.Status())
		}
		if m.exit {
			return nil
		}
		if l != nil {
			select {
			case l.update <- m:
				<-l.done
			case <-m.halt:
				return nil
			}
		}
	}
	return nil
}
