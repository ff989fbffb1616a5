package canvas

import "github.com/specht/pixelflow-canvas/pfclient"

// Mirror is the local copy of everything drawn on the canvas. Pixels are
// stored row-major, three bytes each in RGB mode and one palette index
// each in palette mode.
type Mirror struct {
	Data   []byte
	Width  int
	Height int
	Mode   pfclient.ColorMode
}

// NewMirror returns a zero-filled mirror.
func NewMirror(width, height int, mode pfclient.ColorMode) *Mirror {
	return &Mirror{
		Data:   make([]byte, width*height*mode.BytesPerPixel()),
		Width:  width,
		Height: height,
		Mode:   mode,
	}
}

func (m *Mirror) Contains(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func (m *Mirror) offset(x, y int) int {
	return (y*m.Width + x) * m.Mode.BytesPerPixel()
}

// SetRGB and the other accessors assume (x, y) is in bounds and the mode
// matches; the Canvas checks both first.
func (m *Mirror) SetRGB(x, y int, c pfclient.Color) {
	o := m.offset(x, y)
	m.Data[o] = c.R
	m.Data[o+1] = c.G
	m.Data[o+2] = c.B
}

func (m *Mirror) RGB(x, y int) pfclient.Color {
	o := m.offset(x, y)
	return pfclient.Color{R: m.Data[o], G: m.Data[o+1], B: m.Data[o+2]}
}

func (m *Mirror) SetIndex(x, y int, index uint8) {
	m.Data[m.offset(x, y)] = index
}

func (m *Mirror) Index(x, y int) uint8 {
	return m.Data[m.offset(x, y)]
}

// Bytes returns a copy of the pixel data.
func (m *Mirror) Bytes() []byte {
	return append([]byte(nil), m.Data...)
}
