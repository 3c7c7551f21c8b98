package p8

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is one drawing or query call from a cart. The set of commands
// is closed; Renderer.Do handles every variant.
type Command interface {
	kind() kind
	String() string
}

type kind int

const (
	kindMusic kind = iota
	kindSfx
	kindSpr
	kindBtn
	kindPal
	kindPalReset
	kindCircFill
	kindPrint
	kindRectFill
	kindLine
	kindMGet
	kindCamera
	kindFGet
	kindMap
	numKinds
)

var kindNames = [numKinds]string{
	kindMusic:    "music",
	kindSfx:      "sfx",
	kindSpr:      "spr",
	kindBtn:      "btn",
	kindPal:      "pal",
	kindPalReset: "pal",
	kindCircFill: "circfill",
	kindPrint:    "print",
	kindRectFill: "rectfill",
	kindLine:     "line",
	kindMGet:     "mget",
	kindCamera:   "camera",
	kindFGet:     "fget",
	kindMap:      "map",
}

func (k kind) String() string {
	if k == kindPalReset {
		return "pal()"
	}
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type (
	Music    struct{ N, Fade, Mask int }
	Sfx      struct{ N int }
	Spr      struct{ N, X, Y, Cols, Rows int; FlipX, FlipY bool }
	Btn      struct{ B int }
	Pal      struct{ A, B int }
	PalReset struct{}
	CircFill struct{ X, Y, R, Col int }
	Print    struct {
		S         string
		X, Y, Col int
	}
	RectFill struct{ X0, Y0, X1, Y1, Col int }
	Line     struct{ X0, Y0, X1, Y1, Col int }
	MGet     struct{ X, Y int }
	Camera   struct{ X, Y int }
	FGet     struct{ Tile, Flag int }
	Map      struct{ MX, MY, TX, TY, MW, MH, Mask int }
)

func (Music) kind() kind    { return kindMusic }
func (Sfx) kind() kind      { return kindSfx }
func (Spr) kind() kind      { return kindSpr }
func (Btn) kind() kind      { return kindBtn }
func (Pal) kind() kind      { return kindPal }
func (PalReset) kind() kind { return kindPalReset }
func (CircFill) kind() kind { return kindCircFill }
func (Print) kind() kind    { return kindPrint }
func (RectFill) kind() kind { return kindRectFill }
func (Line) kind() kind     { return kindLine }
func (MGet) kind() kind     { return kindMGet }
func (Camera) kind() kind   { return kindCamera }
func (FGet) kind() kind     { return kindFGet }
func (Map) kind() kind      { return kindMap }

func (c Music) String() string { return fmt.Sprintf("music %d %d %d", c.N, c.Fade, c.Mask) }
func (c Sfx) String() string   { return fmt.Sprintf("sfx %d", c.N) }
func (c Spr) String() string {
	return fmt.Sprintf("spr %d %d %d %d %d %d %d", c.N, c.X, c.Y, c.Cols, c.Rows, b2i(c.FlipX), b2i(c.FlipY))
}
func (c Btn) String() string      { return fmt.Sprintf("btn %d", c.B) }
func (c Pal) String() string      { return fmt.Sprintf("pal %d %d", c.A, c.B) }
func (PalReset) String() string   { return "pal" }
func (c CircFill) String() string { return fmt.Sprintf("circfill %d %d %d %d", c.X, c.Y, c.R, c.Col) }
func (c Print) String() string    { return fmt.Sprintf("print %q %d %d %d", c.S, c.X, c.Y, c.Col) }
func (c RectFill) String() string {
	return fmt.Sprintf("rectfill %d %d %d %d %d", c.X0, c.Y0, c.X1, c.Y1, c.Col)
}
func (c Line) String() string   { return fmt.Sprintf("line %d %d %d %d %d", c.X0, c.Y0, c.X1, c.Y1, c.Col) }
func (c MGet) String() string   { return fmt.Sprintf("mget %d %d", c.X, c.Y) }
func (c Camera) String() string { return fmt.Sprintf("camera %d %d", c.X, c.Y) }
func (c FGet) String() string   { return fmt.Sprintf("fget %d %d", c.Tile, c.Flag) }
func (c Map) String() string {
	return fmt.Sprintf("map %d %d %d %d %d %d %d", c.MX, c.MY, c.TX, c.TY, c.MW, c.MH, c.Mask)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ErrBadCommand is returned by ParseCommand for malformed lines.
var ErrBadCommand = errors.New("bad command")

// ParseCommand parses the text form of a command, as produced by its
// String method. Trailing optional arguments may be omitted:
// spr takes 3 to 7, camera 0 or 2, map 6 or 7 and pal 0 or 2.
func ParseCommand(line string) (Command, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	var str string
	if name == "print" {
		rest = strings.TrimSpace(rest)
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: print: missing quoted string in %q", ErrBadCommand, line)
		}
		if str, err = strconv.Unquote(q); err != nil {
			return nil, fmt.Errorf("%w: print: %v", ErrBadCommand, err)
		}
		rest = rest[len(q):]
	}
	var args []int
	for _, f := range strings.Fields(rest) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: argument %q is not an integer", ErrBadCommand, name, f)
		}
		args = append(args, n)
	}
	arity := func(ns ...int) error {
		for _, n := range ns {
			if len(args) == n {
				return nil
			}
		}
		return fmt.Errorf("%w: %s: got %d arguments, want %v", ErrBadCommand, name, len(args), ns)
	}
	// pad extends args with defaults for omitted trailing arguments.
	pad := func(defaults ...int) {
		for len(args) < len(defaults) {
			args = append(args, defaults[len(args)])
		}
	}

	switch name {
	case "music":
		if err := arity(1, 3); err != nil {
			return nil, err
		}
		pad(0, 0, 0)
		return Music{args[0], args[1], args[2]}, nil
	case "sfx":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Sfx{args[0]}, nil
	case "spr":
		if err := arity(3, 4, 5, 6, 7); err != nil {
			return nil, err
		}
		pad(0, 0, 0, 1, 1, 0, 0)
		return Spr{args[0], args[1], args[2], args[3], args[4], args[5] != 0, args[6] != 0}, nil
	case "btn":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Btn{args[0]}, nil
	case "pal":
		if err := arity(0, 2); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return PalReset{}, nil
		}
		return Pal{args[0], args[1]}, nil
	case "circfill":
		if err := arity(4); err != nil {
			return nil, err
		}
		return CircFill{args[0], args[1], args[2], args[3]}, nil
	case "print":
		if err := arity(3); err != nil {
			return nil, err
		}
		return Print{str, args[0], args[1], args[2]}, nil
	case "rectfill":
		if err := arity(5); err != nil {
			return nil, err
		}
		return RectFill{args[0], args[1], args[2], args[3], args[4]}, nil
	case "line":
		if err := arity(5); err != nil {
			return nil, err
		}
		return Line{args[0], args[1], args[2], args[3], args[4]}, nil
	case "mget":
		if err := arity(2); err != nil {
			return nil, err
		}
		return MGet{args[0], args[1]}, nil
	case "camera":
		if err := arity(0, 2); err != nil {
			return nil, err
		}
		pad(0, 0)
		return Camera{args[0], args[1]}, nil
	case "fget":
		if err := arity(2); err != nil {
			return nil, err
		}
		return FGet{args[0], args[1]}, nil
	case "map":
		if err := arity(6, 7); err != nil {
			return nil, err
		}
		pad(0, 0, 0, 0, 0, 0, 0)
		return Map{args[0], args[1], args[2], args[3], args[4], args[5], args[6]}, nil
	}
	return nil, fmt.Errorf("%w: unknown command %q", ErrBadCommand, name)
}
