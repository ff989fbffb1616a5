package main

import (
	"testing"

	"github.com/specht/pixelflow-canvas/canvas"
)

func TestDemosDrawDirect(t *testing.T) {
	for name, d := range demos {
		cfg := canvas.DefaultConfig()
		cfg.DrawMode = "buffered"
		d.setup(&cfg)
		if cfg.DrawMode != "direct" {
			t.Errorf("demo %s draws in %s mode, want direct", name, cfg.DrawMode)
		}
	}
}
