package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/specht/pixelflow-canvas/canvas"
)

func TestImageConfig(t *testing.T) {
	pic := &picture{width: 70000, height: 12}
	base := canvas.DefaultConfig()
	base.DrawMode = "buffered"
	base.ColorMode = "palette"
	base.AdvanceMode = "down"

	cases := []struct {
		keepSize      bool
		width, height int
	}{
		{false, canvas.MaxSize, 12},
		{true, base.Width, base.Height},
	}
	for _, tt := range cases {
		cfg := imageConfig(base, pic, tt.keepSize)
		if cfg.Width != tt.width || cfg.Height != tt.height {
			t.Errorf("keepSize=%v: size = %dx%d, want %dx%d", tt.keepSize, cfg.Width, cfg.Height, tt.width, tt.height)
		}
		if cfg.DrawMode != "direct" || cfg.ColorMode != "rgb" || cfg.AdvanceMode != "right" {
			t.Errorf("keepSize=%v: modes = %s %s %s, want direct rgb right", tt.keepSize, cfg.DrawMode, cfg.ColorMode, cfg.AdvanceMode)
		}
	}
}

func TestDecodeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	pic, err := decodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if pic.width != 3 || pic.height != 2 {
		t.Errorf("size = %dx%d, want 3x2", pic.width, pic.height)
	}
	if r, g, b := pic.at(2, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("at(2, 1) = %d,%d,%d, want 10,20,30", r, g, b)
	}
}
