// Package trace replays recorded command traces.
//
// A trace is a text file with one command per line, in the form read
// by p8.ParseCommand. A line reading "flip" ends a frame. Blank lines
// and lines starting with '#' are ignored.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nf/p8port/p8"
)

// Cart replays its frames in a loop.
type Cart struct {
	h      p8.Host
	frames [][]p8.Command
	next   int

	// Results holds the values returned by the last frame's commands.
	Results []int
}

func Load(file string) (*Cart, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return c, nil
}

func Parse(r io.Reader) (*Cart, error) {
	var (
		c     = &Cart{}
		s     = bufio.NewScanner(r)
		frame []p8.Command
		n     int
	)
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == "flip":
			c.frames = append(c.frames, frame)
			frame = nil
			continue
		}
		cmd, err := p8.ParseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		frame = append(frame, cmd)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(frame) > 0 {
		c.frames = append(c.frames, frame)
	}
	if len(c.frames) == 0 {
		return nil, fmt.Errorf("trace has no frames")
	}
	return c, nil
}

func (c *Cart) Frames() int { return len(c.frames) }

func (c *Cart) Init(h p8.Host) {
	c.h = h
	c.next = 0
}

func (c *Cart) Update() {}

func (c *Cart) Draw() {
	c.Results = c.Results[:0]
	for _, cmd := range c.frames[c.next] {
		c.Results = append(c.Results, c.h.Do(cmd))
	}
	c.next = (c.next + 1) % len(c.frames)
}

// Snapshot records the position in the trace.
func (c *Cart) Snapshot() []byte { return []byte(fmt.Sprint(c.next)) }

func (c *Cart) Restore(b []byte) error {
	var n int
	if _, err := fmt.Sscan(string(b), &n); err != nil {
		return fmt.Errorf("trace: bad snapshot %q: %w", b, err)
	}
	if n < 0 || n >= len(c.frames) {
		return fmt.Errorf("trace: snapshot frame %d out of range", n)
	}
	c.next = n
	return nil
}
