// Command p8port runs PICO-8 style carts on a 128×128 canvas.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"golang.org/x/image/draw"

	"github.com/nf/p8port/asset"
	"github.com/nf/p8port/cart/demo"
	"github.com/nf/p8port/cart/trace"
	"github.com/nf/p8port/p8"
)

func main() {
	log.SetPrefix("p8port: ")
	log.SetFlags(0)

	var (
		driverFlag = flag.String("driver", "shiny", "display `driver`: shiny, ebiten, term or headless")
		devFlag    = flag.Bool("dev", false, "enable developer mode (reload the cart and trace when they change)")
		debugFlag  = flag.Bool("debug", false, "enable debugger (implies -dev)")

		scaleFlag    = flag.Int("scale", 1, "canvas scale, 1 or 2")
		anchorFlag   = flag.String("anchor", "center", "vertical position of a 2x canvas: top, center or bottom")
		shakeFlag    = flag.Bool("shake", true, "enable screenshake")
		controlsFlag = flag.Int("controls", 1, "control scheme, 1 to 3")
		widthFlag    = flag.Int("width", p8.DeviceWidth, "display width in pixels")
		heightFlag   = flag.Int("height", p8.DeviceHeight, "display height in pixels")
		saveFlag     = flag.String("save", "", "save state `file`")
		fontFlag     = flag.String("font", "", "font sheet `file` (PNG or BMP)")
		traceFlag    = flag.String("trace", "", "replay the command trace in `file` instead of the demo cart")

		fpsFlag       = flag.Int("fps", 30, "frames per second (0 for unlimited)")
		framesFlag    = flag.Int("frames", 0, "stop after `n` frames (0 for no limit)")
		shotFlag      = flag.String("shot", "", "run headless and write the last frame to `file` as PNG")
		shotScaleFlag = flag.Int("shot_scale", 1, "scale factor for -shot")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [cart.p8]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s <-dev | -debug> [flags] [cart.p8]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
	}

	anchor, err := p8.ParseAnchor(*anchorFlag)
	if err != nil {
		log.Fatal(err)
	}
	src := &source{
		cartFile:  flag.Arg(0),
		fontFile:  *fontFlag,
		traceFile: *traceFlag,
		cfg: p8.Config{
			Device:   image.Pt(*widthFlag, *heightFlag),
			Scale:    *scaleFlag,
			Anchor:   anchor,
			Shake:    *shakeFlag,
			Controls: *controlsFlag - 1,
			SaveFile: *saveFlag,
		},
	}

	if *devFlag || *debugFlag {
		if err := devMode(src, *driverFlag, *debugFlag, *fpsFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	driver, fps, frames := *driverFlag, *fpsFlag, *framesFlag
	if *shotFlag != "" {
		driver, fps = "headless", 0
		if frames <= 0 {
			frames = 1
		}
	}
	err = run(src, driver, fps, frames, *shotFlag, *shotScaleFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(src *source, driver string, fps, frames int, shotFile string, shotScale int) error {
	m, err := src.machine()
	if err != nil {
		return err
	}
	r, err := p8.NewRunner(driver, false, nil, fps, frames)
	if err != nil {
		return err
	}
	if err := r.Run(m); err != nil {
		return err
	}
	if shotFile != "" {
		return writeShot(shotFile, m.Renderer().Framebuffer(), shotScale)
	}
	return nil
}

// source describes where a machine's assets and cart come from.
type source struct {
	cartFile  string // .p8 cart; empty for the built-in sheet
	fontFile  string // font sheet; empty for the built-in font
	traceFile string // command trace; empty for the demo cart
	cfg       p8.Config
}

// machine loads all inputs afresh and builds a new machine.
func (s *source) machine() (*p8.Machine, error) {
	c := asset.Builtin()
	if s.cartFile != "" {
		var err error
		if c, err = asset.LoadCart(s.cartFile); err != nil {
			return nil, err
		}
	}
	a := c.Assets()
	if s.fontFile != "" {
		f, err := asset.LoadSheet(s.fontFile)
		if err != nil {
			return nil, err
		}
		a.Font = f
	}
	var cart p8.Cart = demo.New()
	if s.traceFile != "" {
		t, err := trace.Load(s.traceFile)
		if err != nil {
			return nil, err
		}
		cart = t
	}
	return p8.NewMachine(s.cfg, a, cart)
}

// files lists the input files that dev mode watches.
func (s *source) files() (fs []string) {
	for _, f := range []string{s.cartFile, s.fontFile, s.traceFile} {
		if f != "" {
			fs = append(fs, f)
		}
	}
	return
}

// writeShot writes fb to file as a PNG, scaled up by scale.
func writeShot(file string, fb *p8.Framebuffer, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid shot scale %d", scale)
	}
	b := fb.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(m, m.Bounds(), fb, b, draw.Src, nil)
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
