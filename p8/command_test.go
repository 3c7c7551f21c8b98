package p8

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestCommandText(t *testing.T) {
	for _, c := range []Command{
		Music{1, 500, 7},
		Sfx{3},
		Spr{N: 1, X: -4, Y: 20, Cols: 1, Rows: 1, FlipX: true},
		Spr{N: 2, X: 0, Y: 0, Cols: 1, Rows: 1, FlipY: true},
		Btn{5},
		Pal{8, 2},
		PalReset{},
		CircFill{64, 64, 3, 7},
		Print{S: "hello \"world\"", X: 1, Y: 2, Col: 7},
		Print{S: "", X: 0, Y: 0, Col: 0},
		RectFill{0, 0, 127, 127, 1},
		Line{0, 0, 3, 0, 7},
		MGet{3, 4},
		Camera{-2, 2},
		FGet{17, 1},
		Map{0, 0, 0, 0, 16, 16, 4},
	} {
		t.Run(c.String(), func(t *testing.T) {
			g, err := ParseCommand(c.String())
			if err != nil {
				t.Fatalf("ParseCommand(%q): %v", c.String(), err)
			}
			if diff := deep.Equal(g, c); diff != nil {
				t.Errorf("ParseCommand(%q) returned %#v\ndiff: %v", c.String(), g, diff)
			}
		})
	}
}

func TestParseCommandDefaults(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Command
	}{
		{"spr 1 2 3", Spr{N: 1, X: 2, Y: 3, Cols: 1, Rows: 1}},
		{"spr 1 2 3 1 1 1", Spr{N: 1, X: 2, Y: 3, Cols: 1, Rows: 1, FlipX: true}},
		{"camera", Camera{}},
		{"pal", PalReset{}},
		{"map 1 2 3 4 5 6", Map{1, 2, 3, 4, 5, 6, 0}},
		{"music 4", Music{4, 0, 0}},
		{"  print \"a b\"  1 2 3 ", Print{S: "a b", X: 1, Y: 2, Col: 3}},
	} {
		t.Run(c.in, func(t *testing.T) {
			g, err := ParseCommand(c.in)
			if err != nil {
				t.Fatalf("ParseCommand(%q): %v", c.in, err)
			}
			if diff := deep.Equal(g, c.want); diff != nil {
				t.Errorf("ParseCommand(%q) returned %#v\ndiff: %v", c.in, g, diff)
			}
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"flip",
		"sfx",
		"sfx 1 2",
		"spr 1 2",
		"pal 1",
		"camera 1",
		"btn x",
		"print hello 1 2 3",
		"print \"hello\" 1 2",
		"map 1 2 3 4 5",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCommand(in)
			if !errors.Is(err, ErrBadCommand) {
				t.Errorf("ParseCommand(%q) returned error %v, want ErrBadCommand", in, err)
			}
		})
	}
}

func TestCommandKinds(t *testing.T) {
	seen := make(map[kind]bool)
	for _, c := range []Command{
		Music{}, Sfx{}, Spr{}, Btn{}, Pal{}, PalReset{}, CircFill{},
		Print{}, RectFill{}, Line{}, MGet{}, Camera{}, FGet{}, Map{},
	} {
		k := c.kind()
		if seen[k] {
			t.Errorf("%T: duplicate kind %v", c, k)
		}
		seen[k] = true
	}
	if len(seen) != int(numKinds) {
		t.Errorf("%d kinds in use, want %d", len(seen), numKinds)
	}
}
