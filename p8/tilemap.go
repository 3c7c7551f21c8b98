package p8

import "image"

// Tile map dimensions, in tiles.
const (
	MapWidth  = 128
	MapHeight = 64
	TileSize  = 8
)

// TileMap is the fixed background grid and the per-tile flag table.
type TileMap struct {
	Tiles [MapWidth * MapHeight]uint8
	Flags [256]uint8
}

// Get returns the tile at (tx, ty), or 0 outside the grid.
func (m *TileMap) Get(tx, ty int) int {
	if tx < 0 || ty < 0 || tx >= MapWidth || ty >= MapHeight {
		return 0
	}
	return int(m.Tiles[tx+ty*MapWidth])
}

func (m *TileMap) Set(tx, ty, tile int) {
	if tx < 0 || ty < 0 || tx >= MapWidth || ty >= MapHeight {
		return
	}
	m.Tiles[tx+ty*MapWidth] = uint8(tile)
}

// Flag reports whether bit flag is set for tile.
func (m *TileMap) Flag(tile, flag int) bool {
	if tile < 0 || tile >= len(m.Flags) || flag < 0 || flag > 7 {
		return false
	}
	return m.Flags[tile]&(1<<flag) != 0
}

// masked reports whether tile passes the map draw mask.
// Mask 4 is special: it selects tiles whose flags are exactly 4.
func (m *TileMap) masked(tile, mask int) bool {
	switch mask {
	case 0:
		return true
	case 4:
		return tile >= 0 && tile < len(m.Flags) && m.Flags[tile] == 4
	}
	return m.Flag(tile, mask-1)
}

// spriteRect is the source rectangle of 8×8 cell n on a sheet at scale s.
func spriteRect(n, s int) image.Rectangle {
	p := image.Pt(TileSize*(n%16), TileSize*(n/16)).Mul(s)
	return image.Rectangle{p, p.Add(image.Pt(TileSize*s, TileSize*s))}
}

// Map draws the mw×mh tiles starting at map cell (mx, my) with their
// top-left at logical (x, y). The camera must already be applied.
func (r *Renderer) Map(mx, my, x, y, mw, mh, mask int) {
	var (
		s    = r.vp.Scale
		c0   = max(0, -mx)
		r0   = max(0, -my)
		cols = min(mw, MapWidth-mx)
		rows = min(mh, MapHeight-my)
	)
	for col := c0; col < cols; col++ {
		for row := r0; row < rows; row++ {
			tx, ty := mx+col, my+row
			tile := r.tiles.Get(tx, ty)
			if !r.tiles.masked(tile, mask) {
				continue
			}
			var (
				sr = spriteRect(tile, s)
				dp = image.Pt(x+col*TileSize, y+row*TileSize).Mul(s)
			)
			r.blit(r.spr, &sr, &dp, noColor, 0)
		}
	}
}
