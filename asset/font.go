package asset

import (
	"image"
	"sync"
)

// glyphs holds the 3×5 font. Each glyph is five octal digits, one per
// row from the top; bit 2 is the leftmost pixel. Lower case letters use
// the upper case shapes.
var glyphs = map[byte]string{
	'!': "22202", '"': "55000", '#': "57575", '$': "76737", '%': "51245",
	'&': "66757", '\'': "24000", '(': "24442", ')': "21112", '*': "52725",
	'+': "02720", ',': "00024", '-': "00700", '.': "00002", '/': "12224",
	'0': "75557", '1': "26227", '2': "71747", '3': "71317", '4': "55711",
	'5': "74717", '6': "44757", '7': "71111", '8': "75757", '9': "75711",
	':': "02020", ';': "02024", '<': "12421", '=': "07070", '>': "42124",
	'?': "71302", '@': "25543",
	'A': "75755", 'B': "65657", 'C': "34443", 'D': "65556", 'E': "74647",
	'F': "74644", 'G': "34557", 'H': "55755", 'I': "72227", 'J': "72226",
	'K': "55655", 'L': "44447", 'M': "77555", 'N': "65555", 'O': "35556",
	'P': "75744", 'Q': "25563", 'R': "75655", 'S': "34716", 'T': "72222",
	'U': "55553", 'V': "55572", 'W': "55577", 'X': "55255", 'Y': "55717",
	'Z': "71247",
	'[': "64446", '\\': "42221", ']': "31113", '^': "25000", '_': "00007",
	'`': "21000", '{': "32623", '|': "22222", '}': "62326", '~': "01740",
}

// fontColor is the index glyph pixels are drawn with. Print replaces
// it with the requested color.
const fontColor = 7

var (
	fontOnce  sync.Once
	fontSheet *image.Paletted
)

// Font returns the built-in font sheet: 128×128, with the glyph for
// character c in 8×8 cell c. The sheet is shared and must not be
// modified.
func Font() *image.Paletted {
	fontOnce.Do(func() {
		fontSheet = NewSheet(SheetWidth, SheetHeight)
		for c := 0; c < 128; c++ {
			g, ok := glyphs[byte(c)]
			if !ok && 'a' <= c && c <= 'z' {
				g, ok = glyphs[byte(c-'a'+'A')]
			}
			if !ok {
				continue
			}
			drawGlyph(fontSheet, c%16*8, c/16*8, g)
		}
	})
	return fontSheet
}

func drawGlyph(m *image.Paletted, x0, y0 int, g string) {
	for y := 0; y < len(g); y++ {
		bits := g[y] - '0'
		for x := 0; x < 3; x++ {
			if bits&(4>>x) != 0 {
				m.SetColorIndex(x0+x, y0+y, fontColor)
			}
		}
	}
}
