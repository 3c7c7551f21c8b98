package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/p8port/p8"
)

func devMode(src *source, driver string, debug bool, fps int) error {
	if debug && driver == "term" {
		return fmt.Errorf("the debugger needs the terminal; use another driver")
	}
	src.cartFile = cleanPath(src.cartFile)
	src.fontFile = cleanPath(src.fontFile)
	src.traceFile = cleanPath(src.traceFile)
	files := src.files()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	dirs := map[string]bool{}
	for _, f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := watcher.Watch(dir); err != nil {
			return err
		}
	}

	var (
		d     *debugger
		state p8.StateFunc
	)
	if debug {
		d = newDebugger()
		state = d.StateFunc
	}
	runner, err := p8.NewRunner(driver, true, state, fps, 0)
	if err != nil {
		return err
	}
	if d != nil {
		d.run = runner
		log.SetPrefix("")
		log.SetOutput(d.log)
		go func() {
			if err := d.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("p8port: ")
			runner.Debug("exit")
		}()
	}

	machineCh := make(chan *p8.Machine)
	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				log.Printf("dev: load %v", files)
				m, err := src.machine()
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				if !started {
					log.Printf("dev: start")
					machineCh <- m
					started = true
				} else {
					log.Printf("dev: reset")
					runner.Swap(m)
				}
			case ev := <-watcher.Event:
				if watched(files, ev.Name) && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			}
		}
	}()
	return runner.Run(<-machineCh)
}

func cleanPath(f string) string {
	if f == "" {
		return ""
	}
	return filepath.Clean(f)
}

func watched(files []string, name string) bool {
	name = filepath.Clean(name)
	for _, f := range files {
		if f == name {
			return true
		}
	}
	return false
}
