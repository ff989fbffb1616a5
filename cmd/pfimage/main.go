// Command pfimage shows a JPEG, PNG or GIF image on a pixelflow display.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/juju/errors"
	logging "github.com/op/go-logging"
	"github.com/pixiv/go-libjpeg/jpeg"
	"github.com/specht/pixelflow-canvas/canvas"
)

var log = logging.MustGetLogger("pfimage")

var (
	in         = flag.String("in", "", "path to the image")
	configPath = flag.String("config", "", "path to a YAML canvas config")
	addr       = flag.String("addr", "", "server address, host:port or ws:// URL (overrides the config)")
	keepSize   = flag.Bool("keep-size", false, "draw into the configured canvas size instead of resizing to the image")
)

// picture is a decoded image reduced to what the canvas needs.
type picture struct {
	width, height int
	at            func(x, y int) (r, g, b uint8)
}

func decodeJPEG(r io.Reader) (*picture, error) {
	img, err := jpeg.DecodeIntoRGB(r, &jpeg.DecoderOptions{})
	if err != nil {
		return nil, errors.Annotate(err, "could not decode jpeg")
	} else if img == nil {
		return nil, errors.New("jpeg decoding returned nil")
	}
	return &picture{
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
		at: func(x, y int) (uint8, uint8, uint8) {
			o := y*img.Stride + x*3
			return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
		},
	}, nil
}

func decodeImage(r io.Reader) (*picture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Annotate(err, "could not decode image")
	}
	log.Debugf("decoded %s image", format)
	bounds := img.Bounds()
	return &picture{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		at: func(x, y int) (uint8, uint8, uint8) {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
		},
	}, nil
}

func load(path string) (*picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return decodeJPEG(f)
	default:
		return decodeImage(f)
	}
}

func main() {
	flag.Parse()
	if *in == "" {
		flag.Usage()
		fmt.Println("\n--in is required")
		os.Exit(1)
	}
	canvas.ConfigureLogging()

	pic, err := load(*in)
	check(err)

	cfg := canvas.DefaultConfig()
	if *configPath != "" {
		cfg, err = canvas.LoadConfig(*configPath)
		check(err)
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	cfg = imageConfig(cfg, pic, *keepSize)

	c, err := canvas.Open(context.Background(), cfg)
	check(err)
	defer c.Close()

	w, h := c.Size()
	if pic.width < w {
		w = pic.width
	}
	if pic.height < h {
		h = pic.height
	}
	log.Infof("drawing %s (%dx%d) as %dx%d", *in, pic.width, pic.height, w, h)

	bar := pb.StartNew(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := pic.at(x, y)
			check(c.SetPixelRGB(x, y, r, g, b))
		}
		bar.Increment()
	}
	bar.FinishPrint(fmt.Sprintf("%d frames sent", c.FramesSent()))
}

// imageConfig sizes cfg to pic unless keepSize is set. Pixels are drawn
// direct, row by row, so the server shows the image as it arrives.
func imageConfig(cfg canvas.Config, pic *picture, keepSize bool) canvas.Config {
	if !keepSize {
		cfg.Width, cfg.Height = clamp(pic.width), clamp(pic.height)
	}
	cfg.ColorMode = "rgb"
	cfg.AdvanceMode = "right"
	cfg.DrawMode = "direct"
	return cfg
}

func clamp(n int) int {
	if n > canvas.MaxSize {
		return canvas.MaxSize
	}
	return n
}

func check(err error) {
	if err != nil {
		log.Fatalf("%+v", err)
	}
}
