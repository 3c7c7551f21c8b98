package p8

import "image"

// GlyphAdvance is the horizontal distance between characters.
const GlyphAdvance = 4

// Print draws s at logical (x, y) in palette color col. Characters are
// masked to 7 bits and looked up in a 16 column grid on the font sheet.
func (r *Renderer) Print(s string, x, y, col int) {
	sc := r.vp.Scale
	for i := 0; i < len(s); i++ {
		var (
			c  = int(s[i] & 0x7f)
			sr = spriteRect(c, sc)
			dp = image.Pt(x, y).Mul(sc)
		)
		r.blit(r.fnt, &sr, &dp, col&0xf, 0)
		x += GlyphAdvance
	}
}

// TextWidth is the logical width Print uses for s.
func TextWidth(s string) int { return len(s) * GlyphAdvance }
