package main

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/p8port/p8"
)

type debugger struct {
	run *p8.Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application
}

var debugCommands = []string{
	"scale 1",
	"scale 2 top",
	"scale 2 center",
	"scale 2 bottom",
	"shake",
	"pause",
	"pal",
	"save",
	"load",
	"exit",
}

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if t == "" {
			return
		}
		for _, c := range debugCommands {
			if strings.HasPrefix(c, t) {
				entries = append(entries, c)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		if cmd == "" {
			return
		}
		d.input.SetText("")
		log.Printf("> %s", cmd)
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		d.run.Debug(cmd)
	})
	return d
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(s p8.Status) {
	var (
		watch = watchContent(s)
		state = stateMsg(s)
	)
	d.app.QueueUpdateDraw(func() {
		switch {
		case s.Paused:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case s.OSD != "":
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		default:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		}
		d.watch.SetText(watch)
		d.state.SetText(state)
	})
}

func stateMsg(s p8.Status) string {
	kind := "       "
	if s.Paused {
		kind = "[pause]"
	}
	return fmt.Sprintf("frame %-8d %s viewport %v\ncamera %v shake %v controls %d\n%s\n",
		s.Frame, kind, s.Viewport, s.Camera, s.Shake, s.Controls+1, s.OSD)
}

// watchContent lists the palette and how many commands of each kind
// have run.
func watchContent(s p8.Status) string {
	var b strings.Builder
	for i, c := range s.Palette {
		fmt.Fprintf(&b, "pal %2d %.4x\n", i, c)
	}
	names := make([]string, 0, len(s.Counts))
	for n := range s.Counts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "\n%s %d", n, s.Counts[n])
	}
	return b.String()
}
