package canvas

import (
	"testing"

	"github.com/specht/pixelflow-canvas/pfclient"
)

func setPixels(c *Canvas) map[[2]int]bool {
	set := map[[2]int]bool{}
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.Pixel(x, y) != 0 {
				set[[2]int{x, y}] = true
			}
		}
	}
	return set
}

func TestLine(t *testing.T) {
	cases := []struct {
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{0, 0, 4, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{4, 0, 0, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{2, 1, 2, 3, [][2]int{{2, 1}, {2, 2}, {2, 3}}},
		{0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{5, 5, 5, 5, [][2]int{{5, 5}}},
	}
	for _, tt := range cases {
		c, _ := newTestCanvas(t, 8, 8, pfclient.ColorModePalette)
		if err := c.Line(tt.x0, tt.y0, tt.x1, tt.y1, Index(1)); err != nil {
			t.Fatal(err)
		}
		got := setPixels(c)
		if len(got) != len(tt.want) {
			t.Errorf("Line(%d, %d, %d, %d) set %d pixels, want %d", tt.x0, tt.y0, tt.x1, tt.y1, len(got), len(tt.want))
		}
		for _, p := range tt.want {
			if !got[p] {
				t.Errorf("Line(%d, %d, %d, %d) missed %v", tt.x0, tt.y0, tt.x1, tt.y1, p)
			}
		}
	}
}

func TestHorizontalLineNeedsNoMoves(t *testing.T) {
	c, mt := newTestCanvas(t, 16, 4, pfclient.ColorModeRGB)
	if err := c.Line(0, 0, 15, 0, RGB(9, 9, 9)); err != nil {
		t.Fatal(err)
	}
	if n := countOps(decode(t, mt), pfclient.OpMoveTo); n != 0 {
		t.Errorf("sent %d MoveTo frames, want 0", n)
	}
}

func TestRect(t *testing.T) {
	c, _ := newTestCanvas(t, 8, 8, pfclient.ColorModePalette)
	if err := c.Rect(4, 4, 1, 1, Index(2)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	if len(got) != 12 {
		t.Errorf("Rect outlined %d pixels, want 12", len(got))
	}
	for _, p := range [][2]int{{1, 1}, {4, 1}, {1, 4}, {4, 4}, {2, 1}, {1, 3}} {
		if !got[p] {
			t.Errorf("Rect missed %v", p)
		}
	}
	if got[[2]int{2, 2}] {
		t.Errorf("Rect filled its inside")
	}
}

func TestFillRectMovesOncePerRow(t *testing.T) {
	c, mt := newTestCanvas(t, 8, 8, pfclient.ColorModeRGB)
	if err := c.FillRect(1, 1, 3, 2, RGB(1, 2, 3)); err != nil {
		t.Fatal(err)
	}
	msgs := decode(t, mt)
	if n := countOps(msgs, pfclient.OpMoveTo); n != 2 {
		t.Errorf("sent %d MoveTo frames, want 2", n)
	}
	if n := countOps(msgs, pfclient.OpSetPixel); n != 6 {
		t.Errorf("sent %d SetPixel frames, want 6", n)
	}
	if c.PixelRGB(3, 2) != 0x010203 || c.PixelRGB(4, 2) != 0 {
		t.Errorf("mirror = %v", c.Mirror().Data)
	}
}

func TestShapesClipAtEdges(t *testing.T) {
	c, _ := newTestCanvas(t, 4, 4, pfclient.ColorModePalette)
	if err := c.FillRect(-2, -2, 1, 1, Index(3)); err != nil {
		t.Fatal(err)
	}
	if err := c.Circle(3, 3, 5, Index(3)); err != nil {
		t.Fatal(err)
	}
	if got := len(setPixels(c)); got != 4 {
		t.Errorf("clipped shapes set %d pixels, want 4", got)
	}
}

func TestCircle(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	if err := c.Circle(8, 8, 3, Index(1)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	for _, p := range [][2]int{{11, 8}, {5, 8}, {8, 11}, {8, 5}, {10, 10}, {6, 6}} {
		if !got[p] {
			t.Errorf("Circle missed %v", p)
		}
	}
	if got[[2]int{8, 8}] {
		t.Errorf("Circle filled its center")
	}

	c, _ = newTestCanvas(t, 4, 4, pfclient.ColorModePalette)
	c.Circle(1, 1, 0, Index(1))
	c.Circle(1, 1, -1, Index(1))
	if got := setPixels(c); len(got) != 1 || !got[[2]int{1, 1}] {
		t.Errorf("zero radius circle set %v, want the center only", got)
	}
}

func TestFillCircle(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	if err := c.FillCircle(8, 8, 2, Index(4)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	for _, p := range [][2]int{{8, 8}, {10, 8}, {6, 8}, {8, 10}, {8, 6}, {9, 9}} {
		if !got[p] {
			t.Errorf("FillCircle missed %v", p)
		}
	}
	if got[[2]int{10, 10}] {
		t.Errorf("FillCircle painted corner (10,10)")
	}
}

func TestEllipse(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	if err := c.Ellipse(8, 8, 4, 2, Index(1)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	for _, p := range [][2]int{{12, 8}, {4, 8}, {8, 10}, {8, 6}} {
		if !got[p] {
			t.Errorf("Ellipse missed %v", p)
		}
	}
	if got[[2]int{8, 8}] {
		t.Errorf("Ellipse filled its center")
	}

	// Degenerate ellipses collapse to lines instead of looping.
	c, _ = newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	c.Ellipse(8, 8, 3, 0, Index(1))
	if got := len(setPixels(c)); got != 7 {
		t.Errorf("flat ellipse set %d pixels, want 7", got)
	}
	c, _ = newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	c.FillEllipse(8, 8, 0, 2, Index(1))
	if got := len(setPixels(c)); got != 5 {
		t.Errorf("thin filled ellipse set %d pixels, want 5", got)
	}
}

func TestFillEllipse(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	if err := c.FillEllipse(8, 8, 3, 2, Index(5)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	for x := 5; x <= 11; x++ {
		if !got[[2]int{x, 8}] {
			t.Errorf("FillEllipse missed (%d,8) on the center row", x)
		}
	}
	if !got[[2]int{8, 10}] || !got[[2]int{8, 6}] {
		t.Errorf("FillEllipse missed the vertical extremes")
	}
	if got[[2]int{11, 10}] {
		t.Errorf("FillEllipse painted corner (11,10)")
	}
}

func TestBezier(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 4, pfclient.ColorModePalette)
	if err := c.QuadraticBezier(0, 1, 5, 1, 10, 1, 0, Index(1)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	if len(got) != 11 {
		t.Errorf("straight quadratic curve set %d pixels, want 11", len(got))
	}

	c, _ = newTestCanvas(t, 16, 16, pfclient.ColorModePalette)
	if err := c.CubicBezier(0, 0, 0, 15, 15, 15, 15, 0, 8, Index(1)); err != nil {
		t.Fatal(err)
	}
	got = setPixels(c)
	if !got[[2]int{0, 0}] || !got[[2]int{15, 0}] {
		t.Errorf("cubic curve missed an end point")
	}
}

func TestTriangle(t *testing.T) {
	c, _ := newTestCanvas(t, 8, 8, pfclient.ColorModePalette)
	if err := c.Triangle(0, 0, 6, 0, 0, 6, Index(1)); err != nil {
		t.Fatal(err)
	}
	got := setPixels(c)
	for _, p := range [][2]int{{0, 0}, {6, 0}, {0, 6}, {3, 3}, {3, 0}, {0, 3}} {
		if !got[p] {
			t.Errorf("Triangle missed %v", p)
		}
	}
}

func TestShapesStopOnFailure(t *testing.T) {
	c, _ := newTestCanvas(t, 8, 8, pfclient.ColorModePalette)
	c.Close()
	shapes := map[string]func() error{
		"Line":       func() error { return c.Line(0, 0, 3, 3, Index(1)) },
		"FillRect":   func() error { return c.FillRect(0, 0, 3, 3, Index(1)) },
		"Circle":     func() error { return c.Circle(4, 4, 2, Index(1)) },
		"FillCircle": func() error { return c.FillCircle(4, 4, 2, Index(1)) },
		"Ellipse":    func() error { return c.Ellipse(4, 4, 3, 2, Index(1)) },
		"Triangle":   func() error { return c.Triangle(0, 0, 3, 0, 0, 3, Index(1)) },
	}
	for name, draw := range shapes {
		if err := draw(); err != ErrClosed {
			t.Errorf("%s on a closed canvas: err = %v, want ErrClosed", name, err)
		}
	}
}
