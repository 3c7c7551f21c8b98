package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/nf/p8port/p8"
)

func TestDecodeSheetIndexed(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 8, 8), append(Palette[:len(Palette):len(Palette)], color.White))
	m.SetColorIndex(3, 4, 9)
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	s, err := DecodeSheet(&buf)
	if err != nil {
		t.Fatalf("DecodeSheet: %v", err)
	}
	if g := s.ColorIndexAt(3, 4); g != 9 {
		t.Errorf("ColorIndexAt(3, 4) == %d, want 9", g)
	}

	m.SetColorIndex(0, 0, 16)
	buf.Reset()
	if err := png.Encode(&buf, m); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeSheet(&buf); err == nil {
		t.Error("DecodeSheet accepted color index 16")
	}
}

func TestDecodeSheetQuantize(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(m.Pix); i += 4 {
		m.Pix[i] = 0xff
	}
	m.Set(1, 2, p8.DefaultColors[8])
	m.Set(2, 2, color.RGBA{0xfe, 0x01, 0x4e, 0xff})
	for _, c := range []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return png.Encode(b, m) }},
		{"bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, m) }},
	} {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := c.encode(&buf); err != nil {
				t.Fatal(err)
			}
			s, err := DecodeSheet(&buf)
			if err != nil {
				t.Fatalf("DecodeSheet: %v", err)
			}
			if g := s.Bounds(); g != image.Rect(0, 0, 4, 4) {
				t.Errorf("bounds == %v", g)
			}
			for _, p := range []struct {
				x, y int
				want uint8
			}{{1, 2, 8}, {2, 2, 8}, {0, 0, 0}} {
				if g := s.ColorIndexAt(p.x, p.y); g != p.want {
					t.Errorf("ColorIndexAt(%d, %d) == %d, want %d", p.x, p.y, g, p.want)
				}
			}
		})
	}
}

func TestDecodeSheetGarbage(t *testing.T) {
	if _, err := DecodeSheet(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("DecodeSheet accepted garbage")
	}
}

func TestFont(t *testing.T) {
	f := Font()
	glyph := func(c byte) (rows [5]string) {
		x0, y0 := int(c)%16*8, int(c)/16*8
		for y := range rows {
			for x := 0; x < 3; x++ {
				if f.ColorIndexAt(x0+x, y0+y) == fontColor {
					rows[y] += "#"
				} else {
					rows[y] += "."
				}
			}
		}
		return
	}
	want := [5]string{
		"###",
		"#.#",
		"###",
		"#.#",
		"#.#",
	}
	if g := glyph('A'); g != want {
		t.Errorf("glyph 'A' ==\n%v\nwant\n%v", g, want)
	}
	if g := glyph('a'); g != want {
		t.Errorf("glyph 'a' differs from 'A': %v", g)
	}
	if g := glyph(' '); g != ([5]string{"...", "...", "...", "...", "..."}) {
		t.Errorf("glyph ' ' == %v, want blank", g)
	}
	if Font() != f {
		t.Error("Font returned a new sheet")
	}
}
