package canvas

import "math"

// A Brush paints single pixels. A brush made for one color mode paints
// nothing while the canvas is in the other, like SetPixel and SetPixelRGB.
type Brush interface {
	Paint(c *Canvas, x, y int) error
}

type rgbBrush struct{ r, g, b uint8 }

func (b rgbBrush) Paint(c *Canvas, x, y int) error {
	return c.SetPixelRGB(x, y, b.r, b.g, b.b)
}

type indexBrush uint8

func (b indexBrush) Paint(c *Canvas, x, y int) error {
	return c.SetPixel(x, y, uint8(b))
}

// RGB returns a brush for RGB mode.
func RGB(r, g, b uint8) Brush { return rgbBrush{r, g, b} }

// Index returns a brush for palette mode.
func Index(i uint8) Brush { return indexBrush(i) }

// DefaultBezierSteps is the number of line segments a curve is split into
// when the caller passes steps <= 0.
const DefaultBezierSteps = 100

// Line draws a one pixel wide line from (x0,y0) to (x1,y1), both ends
// included.
func (c *Canvas) Line(x0, y0, x1, y1 int, brush Brush) error {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx - dy
	for {
		if err := brush.Paint(c, x0, y0); err != nil {
			return err
		}
		if x0 == x1 && y0 == y1 {
			return nil
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// Rect outlines the rectangle with corners (x0,y0) and (x1,y1).
func (c *Canvas) Rect(x0, y0, x1, y1 int, brush Brush) error {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	for x := x0; x <= x1; x++ {
		if err := brush.Paint(c, x, y0); err != nil {
			return err
		}
	}
	if y1 == y0 {
		return nil
	}
	for x := x0; x <= x1; x++ {
		if err := brush.Paint(c, x, y1); err != nil {
			return err
		}
	}
	for y := y0 + 1; y < y1; y++ {
		if err := brush.Paint(c, x0, y); err != nil {
			return err
		}
		if x1 != x0 {
			if err := brush.Paint(c, x1, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// FillRect fills the rectangle with corners (x0,y0) and (x1,y1) row by
// row, so with the right advance mode only one MoveTo per row is sent.
func (c *Canvas) FillRect(x0, y0, x1, y1 int, brush Brush) error {
	x0, x1 = order(x0, x1)
	y0, y1 = order(y0, y1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if err := brush.Paint(c, x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// Circle outlines a circle using the midpoint algorithm.
func (c *Canvas) Circle(cx, cy, radius int, brush Brush) error {
	if radius < 0 {
		return nil
	}
	p := plotter{c: c, brush: brush}
	p.plot(cx, cy+radius)
	p.plot(cx, cy-radius)
	p.plot(cx+radius, cy)
	p.plot(cx-radius, cy)

	f := 1 - radius
	ddx, ddy := 1, -2*radius
	x, y := 0, radius
	for x < y && p.err == nil {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		p.plot(cx+x, cy+y)
		p.plot(cx-x, cy+y)
		p.plot(cx+x, cy-y)
		p.plot(cx-x, cy-y)
		p.plot(cx+y, cy+x)
		p.plot(cx-y, cy+x)
		p.plot(cx+y, cy-x)
		p.plot(cx-y, cy-x)
	}
	return p.err
}

// FillCircle fills a circle with vertical spans.
func (c *Canvas) FillCircle(cx, cy, radius int, brush Brush) error {
	if radius < 0 {
		return nil
	}
	p := plotter{c: c, brush: brush}
	p.vspan(cx, cy-radius, cy+radius)

	f := 1 - radius
	ddx, ddy := 1, -2*radius
	x, y := 0, radius
	for x < y && p.err == nil {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		p.vspan(cx+x, cy-y, cy+y)
		p.vspan(cx-x, cy-y, cy+y)
		p.vspan(cx+y, cy-x, cy+x)
		p.vspan(cx-y, cy-x, cy+x)
	}
	return p.err
}

// Ellipse outlines an axis-aligned ellipse with semi-axes a (horizontal)
// and b (vertical).
func (c *Canvas) Ellipse(cx, cy, a, b int, brush Brush) error {
	p := plotter{c: c, brush: brush}
	quad := func(x, y int) {
		p.plot(cx+x, cy+y)
		p.plot(cx-x, cy+y)
		p.plot(cx+x, cy-y)
		p.plot(cx-x, cy-y)
	}
	walkEllipse(a, b, quad, func() bool { return p.err == nil })
	return p.err
}

// FillEllipse fills an axis-aligned ellipse with horizontal spans.
func (c *Canvas) FillEllipse(cx, cy, a, b int, brush Brush) error {
	p := plotter{c: c, brush: brush}
	spans := func(x, y int) {
		p.hspan(cx-x, cx+x, cy+y)
		p.hspan(cx-x, cx+x, cy-y)
	}
	walkEllipse(a, b, spans, func() bool { return p.err == nil })
	return p.err
}

// walkEllipse calls visit with the first-quadrant offsets of the
// ellipse outline, region by region, while ok holds.
func walkEllipse(a, b int, visit func(x, y int), ok func() bool) {
	switch {
	case a < 0 || b < 0:
		return
	case a == 0:
		for y := 0; y <= b && ok(); y++ {
			visit(0, y)
		}
		return
	case b == 0:
		for x := 0; x <= a && ok(); x++ {
			visit(x, 0)
		}
		return
	}

	a2, b2 := a*a, b*b
	fa2, fb2 := 4*a2, 4*b2

	x, y := 0, b
	sigma := 2*b2 + a2*(1-2*b)
	for b2*x <= a2*y && ok() {
		visit(x, y)
		if sigma >= 0 {
			sigma += fa2 * (1 - y)
			y--
		}
		sigma += b2 * (4*x + 6)
		x++
	}

	x, y = a, 0
	sigma = 2*a2 + b2*(1-2*a)
	for a2*y <= b2*x && ok() {
		visit(x, y)
		if sigma >= 0 {
			sigma += fb2 * (1 - x)
			x--
		}
		sigma += a2 * (4*y + 6)
		y++
	}
}

// QuadraticBezier draws the curve through control points p0, p1, p2 as
// steps straight segments.
func (c *Canvas) QuadraticBezier(x0, y0, x1, y1, x2, y2 int, steps int, brush Brush) error {
	return c.curve(steps, brush, func(t float64) (float64, float64) {
		u := 1 - t
		x := u*u*float64(x0) + 2*u*t*float64(x1) + t*t*float64(x2)
		y := u*u*float64(y0) + 2*u*t*float64(y1) + t*t*float64(y2)
		return x, y
	})
}

// CubicBezier draws the curve through control points p0..p3 as steps
// straight segments.
func (c *Canvas) CubicBezier(x0, y0, x1, y1, x2, y2, x3, y3 int, steps int, brush Brush) error {
	return c.curve(steps, brush, func(t float64) (float64, float64) {
		u := 1 - t
		x := u*u*u*float64(x0) + 3*u*u*t*float64(x1) + 3*u*t*t*float64(x2) + t*t*t*float64(x3)
		y := u*u*u*float64(y0) + 3*u*u*t*float64(y1) + 3*u*t*t*float64(y2) + t*t*t*float64(y3)
		return x, y
	})
}

func (c *Canvas) curve(steps int, brush Brush, at func(t float64) (float64, float64)) error {
	if steps <= 0 {
		steps = DefaultBezierSteps
	}
	px, py := at(0)
	for i := 1; i <= steps; i++ {
		x, y := at(float64(i) / float64(steps))
		if err := c.Line(trunc(px), trunc(py), trunc(x), trunc(y), brush); err != nil {
			return err
		}
		px, py = x, y
	}
	return nil
}

// Triangle outlines the triangle with the given corners.
func (c *Canvas) Triangle(x0, y0, x1, y1, x2, y2 int, brush Brush) error {
	if err := c.Line(x0, y0, x1, y1, brush); err != nil {
		return err
	}
	if err := c.Line(x1, y1, x2, y2, brush); err != nil {
		return err
	}
	return c.Line(x2, y2, x0, y0, brush)
}

// plotter remembers the first error so the shape loops can stay flat.
type plotter struct {
	c     *Canvas
	brush Brush
	err   error
}

func (p *plotter) plot(x, y int) {
	if p.err == nil {
		p.err = p.brush.Paint(p.c, x, y)
	}
}

func (p *plotter) vspan(x, y0, y1 int) {
	for y := y0; y <= y1 && p.err == nil; y++ {
		p.plot(x, y)
	}
}

func (p *plotter) hspan(x0, x1, y int) {
	for x := x0; x <= x1 && p.err == nil; x++ {
		p.plot(x, y)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func trunc(f float64) int {
	return int(math.Trunc(f))
}
