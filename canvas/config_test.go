package canvas

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/specht/pixelflow-canvas/pfclient"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
address: display.local:19223
width: 128
color_mode: palette
draw_mode: buffered
max_fps: 30
dial_timeout: 2s
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Address:     "display.local:19223",
		Width:       128,
		Height:      pfclient.DefaultHeight,
		ColorMode:   "palette",
		AdvanceMode: "right",
		DrawMode:    "buffered",
		MaxFPS:      30,
		DialTimeout: 2 * time.Second,
	}
	if cfg != want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file: no error")
	}
	if _, err := LoadConfig(writeConfig(t, "width: [1, 2")); err == nil {
		t.Errorf("malformed yaml: no error")
	}

	invalid := []string{
		"width: 70000",
		"height: -4",
		"color_mode: cmyk",
		"advance_mode: diagonal",
		"draw_mode: triple",
	}
	for _, body := range invalid {
		if _, err := LoadConfig(writeConfig(t, body)); !errors.IsNotValid(err) {
			t.Errorf("%q: err = %v, want not valid", body, err)
		}
	}
}

func TestNormalizeClamps(t *testing.T) {
	cfg, err := Config{MaxFPS: -3, DialTimeout: -time.Second}.normalize()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxFPS != 0 {
		t.Errorf("MaxFPS = %g, want 0", cfg.MaxFPS)
	}
	if cfg.DialTimeout != DefaultConfig().DialTimeout {
		t.Errorf("DialTimeout = %s, want %s", cfg.DialTimeout, DefaultConfig().DialTimeout)
	}
	if cfg.Address != pfclient.DefaultAddress || cfg.Width != 320 || cfg.Height != 180 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestParseDrawMode(t *testing.T) {
	for in, want := range map[string]DrawMode{"direct": DrawDirect, " Buffered ": DrawBuffered} {
		got, err := ParseDrawMode(in)
		if err != nil || got != want {
			t.Errorf("ParseDrawMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDrawMode("flip"); !errors.IsNotValid(err) {
		t.Errorf("ParseDrawMode(flip): err = %v, want not valid", err)
	}
}

func TestEnsureMaxFPS(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4, pfclient.ColorModeRGB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := c.EnsureMaxFPS(ctx, 0); err != nil {
			t.Fatalf("unpaced call %d: %v", i, err)
		}
	}

	start := time.Now()
	if err := c.EnsureMaxFPS(ctx, 1); err != nil {
		t.Fatalf("first paced call: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("first paced call blocked for %s", elapsed)
	}

	// The next frame is a second away, past this deadline.
	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := c.EnsureMaxFPS(short, 1); err == nil {
		t.Errorf("second call inside one frame returned without error")
	}

	cancelled, cancel2 := context.WithCancel(ctx)
	cancel2()
	if err := c.EnsureMaxFPS(cancelled, 1000); err == nil {
		t.Errorf("cancelled context: no error")
	}
}

func TestPaceUsesConfiguredFPS(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4, pfclient.ColorModeRGB)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Pace(cancelled); err != nil {
		t.Errorf("Pace without MaxFPS: %v", err)
	}
	c.maxFPS = 10
	if err := c.Pace(cancelled); err == nil {
		t.Errorf("Pace with MaxFPS on a cancelled context: no error")
	}
}
