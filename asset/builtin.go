package asset

import (
	"github.com/nf/p8port/p8"
)

// Tiles of the built-in sheet.
const (
	TilePlayer = 1
	TileGround = 2
	TileBrick  = 3
	TileGrass  = 4
	TileSpike  = 5
	TileFlower = 6
	TileCloud  = 7
)

// Tile flags of the built-in sheet.
const (
	FlagSolid  = 1 << 0
	FlagHazard = 1 << 1
	FlagFront  = 1 << 2 // drawn over the player
)

var builtinSprites = map[int][8]string{
	TilePlayer: {
		"00888800",
		"08888880",
		"88ffff80",
		"8f1ff1f0",
		"0ffffff0",
		"00333300",
		"00700700",
		"00000000",
	},
	TileGround: {
		"33333333",
		"b3b33b3b",
		"44444444",
		"44544444",
		"44444454",
		"45444444",
		"44444544",
		"44444444",
	},
	TileBrick: {
		"66666665",
		"65555555",
		"65555555",
		"55555555",
		"66656666",
		"55556555",
		"55556555",
		"55555555",
	},
	TileGrass: {
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"0b0000b0",
		"0b0b00b0",
		"b3b30b3b",
		"33333333",
	},
	TileSpike: {
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"07000700",
		"07000700",
		"67606760",
		"66606660",
	},
	TileFlower: {
		"00000000",
		"00000000",
		"000e0000",
		"00eae000",
		"000e0000",
		"000b0000",
		"00bb0000",
		"000b0000",
	},
	TileCloud: {
		"00000000",
		"00777000",
		"07777770",
		"77777777",
		"67777776",
		"06666660",
		"00000000",
		"00000000",
	},
}

var builtinFlags = map[int]uint8{
	TileGround: FlagSolid,
	TileBrick:  FlagSolid,
	TileGrass:  FlagFront,
	TileSpike:  FlagHazard,
}

// builtinRoom is the first 16×16 screen of the built-in map.
// Each character is one tile.
var builtinRoom = [16]string{
	"................",
	"..7.......7.....",
	"................",
	"......7.........",
	"................",
	"..........333...",
	"................",
	"...333..........",
	"................",
	"...........6....",
	"........33333...",
	"................",
	"..6.4......5.4..",
	"2222222..2222222",
	"2222222552222222",
	"2222222222222222",
}

// Builtin returns a generated sprite sheet and map, so that p8port
// runs without any files.
func Builtin() *Cart {
	c := &Cart{
		Gfx: NewSheet(SheetWidth, SheetHeight),
		Map: &p8.TileMap{},
	}
	for n, rows := range builtinSprites {
		x0, y0 := n%16*8, n/16*8
		for y, row := range rows {
			for x := 0; x < len(row); x++ {
				v, _ := unhex(row[x])
				c.Gfx.SetColorIndex(x0+x, y0+y, v)
			}
		}
	}
	for n, f := range builtinFlags {
		c.Map.Flags[n] = f
	}
	for ty, row := range builtinRoom {
		for tx := 0; tx < len(row); tx++ {
			if row[tx] != '.' {
				c.Map.Set(tx, ty, int(row[tx]-'0'))
			}
		}
	}
	return c
}
