// Package canvas drives a remote pixelflow display. A Canvas keeps a local
// mirror of the framebuffer and an implicit cursor, and only sends the
// frames needed to bring the server in line: coordinates are omitted when
// the server cursor is already in place, and pixels are held back in
// buffered draw mode until Flip.
package canvas

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"
	logging "github.com/op/go-logging"
	"github.com/specht/pixelflow-canvas/pfclient"
)

var log = logging.MustGetLogger("canvas")

// ErrClosed is returned by operations on a Canvas after Close.
var ErrClosed = errors.New("canvas is closed")

// MaxSize is the largest width or height a Resize frame can carry.
const MaxSize = 0xFFFF

// DrawMode decides whether pixel writes are sent as they happen or only
// land in the mirror until the next Flip. It is never transmitted.
type DrawMode uint8

const (
	DrawDirect   DrawMode = 0
	DrawBuffered DrawMode = 1
)

func (m DrawMode) Valid() bool {
	return m == DrawDirect || m == DrawBuffered
}

func (m DrawMode) String() string {
	switch m {
	case DrawDirect:
		return "direct"
	case DrawBuffered:
		return "buffered"
	}
	return fmt.Sprintf("DrawMode(%d)", uint8(m))
}

// ParseDrawMode accepts "direct" or "buffered", case-insensitively.
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return DrawDirect, nil
	case "buffered":
		return DrawBuffered, nil
	}
	return 0, errors.NotValidf("draw mode %q", s)
}

// Canvas is one remote canvas and the connection that feeds it. It is
// owned by a single goroutine; nothing in it is locked.
type Canvas struct {
	label string
	conn  *pfclient.ClientConn

	width, height int
	x, y          int

	colorMode   pfclient.ColorMode
	advanceMode pfclient.AdvanceMode
	drawMode    DrawMode

	palette [256]pfclient.Color
	mirror  *Mirror
	pacer   *pacer
	maxFPS  float64

	// First transport failure. The server's view of the canvas is
	// unknown from then on, so every later send returns it.
	err    error
	closed bool
}

// New initializes a canvas on an already open transport: the cursor is
// put at (0,0), and a Resize frame and a SetColorMode frame are sent. The
// advance mode starts as right and the draw mode as direct; neither is
// transmitted, as the server starts with the same defaults.
//
// The Canvas owns t from here on: when New fails, for an invalid argument
// or a transport failure, t has been closed.
func New(t pfclient.Transport, width, height int, mode pfclient.ColorMode) (*Canvas, error) {
	return newCanvas(shortID(), t, width, height, mode)
}

// Open dials cfg.Address and initializes a canvas as described by cfg.
// An advance mode other than right is sent right after initialization;
// the draw mode is applied locally.
func Open(ctx context.Context, cfg Config) (*Canvas, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, errors.Trace(err)
	}
	colorMode, advanceMode, drawMode, err := cfg.modes()
	if err != nil {
		return nil, errors.Trace(err)
	}

	label := fmt.Sprintf("%s:%s", shortID(), cfg.Address)
	log.Infof("[%s] opening connection to pixelflow server", label)

	t, err := pfclient.Dial(ctx, cfg.Address, cfg.DialTimeout)
	if err != nil {
		return nil, errors.Annotate(err, "could not open canvas")
	}
	if cfg.Record != "" {
		f, err := os.Create(cfg.Record)
		if err != nil {
			t.Close()
			return nil, errors.Annotatef(err, "could not create recording %s", cfg.Record)
		}
		log.Infof("[%s] recording frames to %s", label, cfg.Record)
		t = pfclient.Tee(t, pfclient.NewRecorder(f))
	}

	c, err := newCanvas(label, t, cfg.Width, cfg.Height, colorMode)
	if err != nil {
		return nil, err
	}
	if advanceMode != pfclient.AdvanceRight {
		if err := c.SetAdvanceMode(advanceMode); err != nil {
			c.Close()
			return nil, err
		}
	}
	c.drawMode = drawMode
	c.maxFPS = cfg.MaxFPS
	return c, nil
}

func newCanvas(label string, t pfclient.Transport, width, height int, mode pfclient.ColorMode) (*Canvas, error) {
	if err := validateSize(width, height); err != nil {
		t.Close()
		return nil, err
	}
	if !mode.Valid() {
		t.Close()
		return nil, errors.NotValidf("color mode %d", uint8(mode))
	}

	c := &Canvas{
		label:       label,
		conn:        pfclient.Client(t),
		advanceMode: pfclient.AdvanceRight,
		drawMode:    DrawDirect,
	}
	if err := c.SetSize(width, height); err != nil {
		c.Close()
		return nil, errors.Annotatef(err, "could not initialize canvas %s", label)
	}
	if err := c.SetColorMode(mode); err != nil {
		c.Close()
		return nil, errors.Annotatef(err, "could not initialize canvas %s", label)
	}
	log.Infof("[%s] canvas ready: %dx%d %v", label, width, height, mode)
	return c, nil
}

func shortID() string {
	return uuid.New().String()[:8]
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return errors.NotValidf("canvas size %dx%d", width, height)
	}
	return nil
}

// Close releases the mirror and closes the transport. Further calls do
// nothing.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.mirror = nil
	log.Infof("[%s] closing canvas after %d frames", c.label, c.conn.FramesSent)
	return c.conn.Close()
}

// Err returns the transport failure that broke the canvas, if any.
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) usable() error {
	if c.closed {
		return ErrClosed
	}
	return c.err
}

// send runs a transport operation and latches its failure.
func (c *Canvas) send(op func() error) error {
	if err := op(); err != nil {
		c.err = errors.Annotatef(err, "[%s] transport failed", c.label)
		log.Errorf("%v", c.err)
		return c.err
	}
	return nil
}

// SetSize resizes the canvas. The cursor goes back to (0,0) and the mirror
// is reallocated, zero-filled, for the new size.
func (c *Canvas) SetSize(width, height int) error {
	if err := c.usable(); err != nil {
		return err
	}
	if err := validateSize(width, height); err != nil {
		return err
	}

	c.x, c.y = 0, 0
	c.width, c.height = width, height
	c.mirror = NewMirror(width, height, c.colorMode)
	log.Debugf("[%s] resize to %dx%d", c.label, width, height)
	return c.send(func() error {
		return c.conn.Resize(uint16(width), uint16(height))
	})
}

// SetColorMode switches between RGB and palette pixels. The mirror is
// reallocated, zero-filled, for the new mode. The palette is kept.
func (c *Canvas) SetColorMode(mode pfclient.ColorMode) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !mode.Valid() {
		return errors.NotValidf("color mode %d", uint8(mode))
	}

	c.colorMode = mode
	c.mirror = NewMirror(c.width, c.height, mode)
	log.Debugf("[%s] color mode %v", c.label, mode)
	return c.send(func() error {
		return c.conn.SetColorMode(mode)
	})
}

func (c *Canvas) SetAdvanceMode(mode pfclient.AdvanceMode) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !mode.Valid() {
		return errors.NotValidf("advance mode %d", uint8(mode))
	}

	c.advanceMode = mode
	log.Debugf("[%s] advance mode %v", c.label, mode)
	return c.send(func() error {
		return c.conn.SetAdvanceMode(mode)
	})
}

// SetDrawMode only changes local behavior; no frame is sent.
func (c *Canvas) SetDrawMode(mode DrawMode) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !mode.Valid() {
		return errors.NotValidf("draw mode %d", uint8(mode))
	}
	c.drawMode = mode
	return nil
}

// SetPalette stores an entry in the palette and sends it. It is accepted
// in either color mode.
func (c *Canvas) SetPalette(index uint8, r, g, b uint8) error {
	if err := c.usable(); err != nil {
		return err
	}
	color := pfclient.Color{R: r, G: g, B: b}
	c.palette[index] = color
	return c.send(func() error {
		return c.conn.SetPaletteEntry(index, color)
	})
}

// MoveTo places the cursor. Out of bounds coordinates are ignored.
func (c *Canvas) MoveTo(x, y int) error {
	if err := c.usable(); err != nil {
		return err
	}
	if !c.mirror.Contains(x, y) {
		return nil
	}

	c.x, c.y = x, y
	return c.send(func() error {
		return c.conn.MoveTo(uint16(x), uint16(y), c.width, c.height)
	})
}

// SetPixelRGB draws one pixel in RGB mode. Out of bounds coordinates and
// calls made in palette mode are ignored.
func (c *Canvas) SetPixelRGB(x, y int, r, g, b uint8) error {
	if err := c.usable(); err != nil {
		return err
	}
	if c.colorMode != pfclient.ColorModeRGB || !c.mirror.Contains(x, y) {
		return nil
	}
	if err := c.seek(x, y); err != nil {
		return err
	}

	color := pfclient.Color{R: r, G: g, B: b}
	c.mirror.SetRGB(x, y, color)
	if c.drawMode == DrawDirect {
		if err := c.send(func() error { return c.conn.SetPixelRGB(color) }); err != nil {
			return err
		}
	}
	c.advance()
	return nil
}

// SetPixel draws one palette-indexed pixel. Out of bounds coordinates and
// calls made in RGB mode are ignored.
func (c *Canvas) SetPixel(x, y int, index uint8) error {
	if err := c.usable(); err != nil {
		return err
	}
	if c.colorMode != pfclient.ColorModePalette || !c.mirror.Contains(x, y) {
		return nil
	}
	if err := c.seek(x, y); err != nil {
		return err
	}

	c.mirror.SetIndex(x, y, index)
	if c.drawMode == DrawDirect {
		if err := c.send(func() error { return c.conn.SetPixelIndex(index) }); err != nil {
			return err
		}
	}
	c.advance()
	return nil
}

// seek moves the cursor only when it is not already at (x, y).
func (c *Canvas) seek(x, y int) error {
	if x == c.x && y == c.y {
		return nil
	}
	return c.MoveTo(x, y)
}

// advance steps the cursor the way the server does after a pixel,
// wrapping at the end of a row (or column) and at the end of the canvas.
func (c *Canvas) advance() {
	if c.advanceMode == pfclient.AdvanceDown {
		c.y++
		if c.y >= c.height {
			c.y = 0
			c.x = (c.x + 1) % c.width
		}
		return
	}
	c.x++
	if c.x >= c.width {
		c.x = 0
		c.y = (c.y + 1) % c.height
	}
}

// PixelRGB returns the mirrored pixel at (x, y) as 0xRRGGBB. It returns 0
// outside the canvas, in palette mode and after Close.
func (c *Canvas) PixelRGB(x, y int) uint32 {
	if c.mirror == nil || c.colorMode != pfclient.ColorModeRGB || !c.mirror.Contains(x, y) {
		return 0
	}
	return c.mirror.RGB(x, y).Packed()
}

// Pixel returns the mirrored palette index at (x, y). It returns 0
// outside the canvas, in RGB mode and after Close.
func (c *Canvas) Pixel(x, y int) uint8 {
	if c.mirror == nil || c.colorMode != pfclient.ColorModePalette || !c.mirror.Contains(x, y) {
		return 0
	}
	return c.mirror.Index(x, y)
}

// Flip sends a Flush frame in buffered draw mode so the server redraws.
// In direct mode it does nothing.
func (c *Canvas) Flip() error {
	if err := c.usable(); err != nil {
		return err
	}
	if c.drawMode != DrawBuffered {
		return nil
	}
	return c.send(c.conn.Flush)
}

func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Cursor is where the next pixel lands when no coordinates change.
func (c *Canvas) Cursor() (x, y int) {
	return c.x, c.y
}

func (c *Canvas) ColorMode() pfclient.ColorMode {
	return c.colorMode
}

func (c *Canvas) AdvanceMode() pfclient.AdvanceMode {
	return c.advanceMode
}

func (c *Canvas) DrawMode() DrawMode {
	return c.drawMode
}

func (c *Canvas) Palette(index uint8) pfclient.Color {
	return c.palette[index]
}

// Mirror returns the local framebuffer, or nil after Close. Callers must
// not modify it.
func (c *Canvas) Mirror() *Mirror {
	return c.mirror
}

// FramesSent counts frames written to the transport so far.
func (c *Canvas) FramesSent() uint64 {
	return c.conn.FramesSent
}
