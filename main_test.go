package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nf/p8port/p8"
)

func TestWatchContent(t *testing.T) {
	var s p8.Status
	s.Palette.Reset()
	s.Counts = map[string]int{"spr": 3, "btn": 12}
	got := watchContent(s)
	for _, want := range []string{"pal  0 0000\n", "pal  7 ff9d\n", "\nbtn 12\nspr 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("watch pane lacks %q:\n%s", want, got)
		}
	}
}

func TestStateMsg(t *testing.T) {
	s := p8.Status{Frame: 42, Paused: true, Controls: 1, OSD: "save state"}
	got := stateMsg(s)
	for _, want := range []string{"frame 42", "[pause]", "controls 2", "save state"} {
		if !strings.Contains(got, want) {
			t.Errorf("state line lacks %q: %q", want, got)
		}
	}
}

func TestWatched(t *testing.T) {
	files := []string{cleanPath("carts/a.p8"), cleanPath("")}
	for _, c := range []struct {
		name string
		want bool
	}{
		{"carts/a.p8", true},
		{"carts/./a.p8", true},
		{"carts/b.p8", false},
	} {
		if g := watched(files, c.name); g != c.want {
			t.Errorf("watched(%q) == %v, want %v", c.name, g, c.want)
		}
	}
}

func TestWriteShot(t *testing.T) {
	fb := p8.NewFramebuffer(4, 2)
	fb.Fill(image.Rect(1, 0, 2, 1), 0xffff)
	file := filepath.Join(t.TempDir(), "shot.png")
	if err := writeShot(file, fb, 3); err != nil {
		t.Fatalf("writeShot: %v", err)
	}
	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding shot: %v", err)
	}
	if g, w := m.Bounds(), image.Rect(0, 0, 12, 6); g != w {
		t.Errorf("shot bounds == %v, want %v", g, w)
	}
	if r, _, _, _ := m.At(4, 1).RGBA(); r != 0xffff {
		t.Errorf("scaled pixel (4, 1) has red %#x, want 0xffff", r)
	}
	if err := writeShot(file, fb, 0); err == nil {
		t.Error("writeShot accepted scale 0")
	}
}
