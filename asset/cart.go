package asset

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/nf/p8port/p8"
)

// Sheet dimensions, in pixels.
const (
	SheetWidth  = 128
	SheetHeight = 128
)

// Cart is the graphics data of a .p8 cartridge.
type Cart struct {
	Gfx *image.Paletted
	Map *p8.TileMap
}

// Assets returns the renderer inputs for c, with the built-in font.
func (c *Cart) Assets() p8.Assets {
	return p8.Assets{Gfx: c.Gfx, Font: Font(), Map: c.Map}
}

// LoadCart reads a PICO-8 .p8 text cartridge.
func LoadCart(file string) (*Cart, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ParseCart(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return c, nil
}

// ParseCart parses the __gfx__, __gff__ and __map__ sections of a .p8
// cartridge. Other sections are skipped. As in PICO-8, map rows 32 to
// 63 are the bottom half of the sprite sheet.
func ParseCart(r io.Reader) (*Cart, error) {
	var (
		c = &Cart{
			Gfx: NewSheet(SheetWidth, SheetHeight),
			Map: &p8.TileMap{},
		}
		s       = bufio.NewScanner(r)
		section string
		row     int // within section
		n       int // line number
	)
	s.Buffer(nil, 1<<20)
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if len(line) > 4 && strings.HasPrefix(line, "__") && strings.HasSuffix(line, "__") {
			section = line
			row = 0
			continue
		}
		if line == "" {
			continue
		}
		var err error
		switch section {
		case "__gfx__":
			err = c.gfxRow(row, line)
		case "__gff__":
			err = c.flagRow(row, line)
		case "__map__":
			err = c.mapRow(row, line)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n, section, err)
		}
		row++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	c.shareMap()
	return c, nil
}

func (c *Cart) gfxRow(y int, line string) error {
	if y >= SheetHeight {
		return fmt.Errorf("more than %d rows", SheetHeight)
	}
	if len(line) > SheetWidth {
		return fmt.Errorf("row %d has %d pixels, want at most %d", y, len(line), SheetWidth)
	}
	for x := 0; x < len(line); x++ {
		v, ok := unhex(line[x])
		if !ok {
			return fmt.Errorf("invalid hex digit %q", line[x])
		}
		c.Gfx.SetColorIndex(x, y, v)
	}
	return nil
}

func (c *Cart) flagRow(row int, line string) error {
	b, err := hex.DecodeString(line)
	if err != nil {
		return err
	}
	off := row * 128
	if off+len(b) > len(c.Map.Flags) {
		return fmt.Errorf("more than %d flags", len(c.Map.Flags))
	}
	copy(c.Map.Flags[off:], b)
	return nil
}

func (c *Cart) mapRow(ty int, line string) error {
	if ty >= p8.MapHeight/2 {
		return fmt.Errorf("more than %d rows", p8.MapHeight/2)
	}
	b, err := hex.DecodeString(line)
	if err != nil {
		return err
	}
	if len(b) > p8.MapWidth {
		return fmt.Errorf("row %d has %d tiles, want at most %d", ty, len(b), p8.MapWidth)
	}
	for tx, t := range b {
		c.Map.Set(tx, ty, int(t))
	}
	return nil
}

// shareMap fills the lower map half from sheet rows 64 to 127. Each map
// byte holds two pixels, low nibble first.
func (c *Cart) shareMap() {
	const base = SheetHeight / 2
	for i := 0; i < p8.MapWidth*p8.MapHeight/2; i++ {
		var (
			y  = base + i/64
			x  = i % 64 * 2
			lo = c.Gfx.ColorIndexAt(x, y)
			hi = c.Gfx.ColorIndexAt(x+1, y)
		)
		c.Map.Set(i%p8.MapWidth, p8.MapHeight/2+i/p8.MapWidth, int(lo|hi<<4))
	}
}

func unhex(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
