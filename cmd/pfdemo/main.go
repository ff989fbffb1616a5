// Command pfdemo draws animated demos on a pixelflow display.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"

	"github.com/juju/errors"
	logging "github.com/op/go-logging"
	"github.com/specht/pixelflow-canvas/canvas"
)

var log = logging.MustGetLogger("pfdemo")

var (
	configPath = flag.String("config", "", "path to a YAML canvas config")
	addr       = flag.String("addr", "", "server address, host:port or ws:// URL (overrides the config)")
	demo       = flag.String("demo", "fire", "demo to run: pixel, gradient, fire or shapes")
	frames     = flag.Int("frames", 0, "stop after this many frames (0 runs until interrupted)")
	fps        = flag.Float64("fps", 30, "frame rate cap when the config sets none")
	heat       = flag.Int("heat", 48, "fire demo: palette index fed into the bottom rows (0-63)")
)

type demoFunc func(ctx context.Context, c *canvas.Canvas, frames int) error

var demos = map[string]struct {
	setup func(cfg *canvas.Config)
	run   demoFunc
}{
	"pixel":    {setupPixel, runPixel},
	"gradient": {setupGradient, runGradient},
	"fire":     {setupFire, runFire},
	"shapes":   {setupShapes, runShapes},
}

func main() {
	flag.Parse()
	canvas.ConfigureLogging()

	d, ok := demos[*demo]
	if !ok {
		flag.Usage()
		fmt.Fprintf(os.Stderr, "\nunknown demo %q\n", *demo)
		os.Exit(1)
	}

	cfg := canvas.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = canvas.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("%+v", err)
		}
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if cfg.MaxFPS == 0 {
		cfg.MaxFPS = *fps
	}
	d.setup(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := canvas.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer c.Close()

	err = d.run(ctx, c, *frames)
	if err != nil && errors.Cause(err) != context.Canceled {
		log.Errorf("demo %s failed: %+v", *demo, err)
		c.Close()
		os.Exit(1)
	}
	log.Infof("demo %s done after %d frames sent", *demo, c.FramesSent())
}

// loop calls frame until frames have been drawn, ctx is done or frame
// fails. frames <= 0 means forever. Demos draw in direct mode, so every
// pixel reaches the server as it is written and Flip sends nothing.
func loop(ctx context.Context, c *canvas.Canvas, frames int, frame func(n int) error) error {
	for n := 0; frames <= 0 || n < frames; n++ {
		if err := c.Pace(ctx); err != nil {
			return err
		}
		if err := frame(n); err != nil {
			return err
		}
		if err := c.Flip(); err != nil {
			return err
		}
	}
	return nil
}

func setupPixel(cfg *canvas.Config) {
	cfg.Width, cfg.Height = 64, 64
	cfg.ColorMode = "rgb"
	cfg.DrawMode = "direct"
}

// runPixel is the smallest possible session: one red pixel in the corner.
func runPixel(ctx context.Context, c *canvas.Canvas, frames int) error {
	return c.SetPixelRGB(0, 0, 255, 0, 0)
}

func setupGradient(cfg *canvas.Config) {
	cfg.ColorMode = "rgb"
	cfg.DrawMode = "direct"
}

// runGradient scrolls an RGB gradient, writing every pixel row by row so
// the cursor never has to be moved explicitly.
func runGradient(ctx context.Context, c *canvas.Canvas, frames int) error {
	w, h := c.Size()
	return loop(ctx, c, frames, func(n int) error {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r := uint8((x + n) * 255 / w)
				g := uint8(y * 255 / h)
				b := uint8(n * 4)
				if err := c.SetPixelRGB(x, y, r, g, b); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func setupFire(cfg *canvas.Config) {
	cfg.Width, cfg.Height = 256, 128
	cfg.ColorMode = "palette"
	cfg.DrawMode = "direct"
}

// runFire is the classic palette fire: the bottom rows are fed with heat
// and every pixel takes a noisy average of its neighbors below.
func runFire(ctx context.Context, c *canvas.Canvas, frames int) error {
	for i := 0; i < 16; i++ {
		entries := [][4]int{
			{i, i * 2, 0, 0},
			{i + 16, (i + 16) * 2, 0, 0},
			{i + 32, 63, i * 4, 0},
			{i + 48, 63, 63, i * 4},
		}
		// Entries are 6-bit VGA values.
		for _, e := range entries {
			if err := c.SetPalette(uint8(e[0]), uint8(e[1]<<2), uint8(e[2]<<2), uint8(e[3]<<2)); err != nil {
				return err
			}
		}
	}

	fuel := *heat
	if fuel < 0 {
		fuel = 0
	} else if fuel > 63 {
		fuel = 63
	}

	w, h := c.Size()
	return loop(ctx, c, frames, func(int) error {
		for y := h - 2; y < h; y++ {
			if err := c.FillRect(10, y, w-10, y, canvas.Index(uint8(fuel))); err != nil {
				return err
			}
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				v := int(c.Pixel(x, y+1)) << 1
				v += int(c.Pixel(x-1, y))
				v += int(c.Pixel(x+1, y))
				v >>= 2
				if v > 0 {
					v += rand.Intn(7) - 3
				}
				if v < 0 {
					v = 0
				} else if v > 63 {
					v = 63
				}
				if err := c.SetPixel(x, y, uint8(v)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func setupShapes(cfg *canvas.Config) {
	cfg.ColorMode = "rgb"
	cfg.DrawMode = "direct"
}

// runShapes bounces a filled circle inside an outlined frame.
func runShapes(ctx context.Context, c *canvas.Canvas, frames int) error {
	w, h := c.Size()
	radius := h / 8
	if radius < 1 {
		radius = 1
	}
	black := canvas.RGB(0, 0, 0)
	return loop(ctx, c, frames, func(n int) error {
		if err := c.FillRect(0, 0, w-1, h-1, black); err != nil {
			return err
		}
		if err := c.Rect(0, 0, w-1, h-1, canvas.RGB(255, 255, 255)); err != nil {
			return err
		}
		if err := c.CubicBezier(0, h-1, w/3, 0, 2*w/3, h-1, w-1, 0, 0, canvas.RGB(0, 96, 255)); err != nil {
			return err
		}

		phase := float64(n) / 20
		cx := w/2 + int(float64(w/2-radius-1)*math.Sin(phase))
		cy := h/2 + int(float64(h/2-radius-1)*math.Cos(phase*1.3))
		if err := c.FillCircle(cx, cy, radius, canvas.RGB(255, uint8(n*3), 0)); err != nil {
			return err
		}
		return c.Ellipse(cx, cy, radius+3, radius/2+2, canvas.RGB(255, 255, 0))
	})
}
