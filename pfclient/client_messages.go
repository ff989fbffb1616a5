package pfclient

import (
	"encoding/binary"
	"io"

	"github.com/juju/errors"
)

// Opcodes. Every frame starts with one of these bytes.
const (
	OpResize          uint8 = 1
	OpSetColorMode    uint8 = 2
	OpSetPaletteEntry uint8 = 3
	OpSetAdvanceMode  uint8 = 4
	OpMoveTo          uint8 = 5
	OpSetPixel        uint8 = 6
	OpFlush           uint8 = 7
)

// A ClientMessage is a single frame sent from the client to the display
// server.
type ClientMessage interface {
	// The opcode that starts the frame on the wire.
	Type() uint8

	// Write appends the payload to b. The opcode has already been
	// written by the caller.
	Write(b *QuickBuf)

	// Read reads the payload from r. At the point this is called the
	// opcode has already been consumed. Payloads whose layout depends on
	// canvas state (MoveTo, SetPixel) take it from fr.
	Read(fr *FrameReader, r io.Reader) (ClientMessage, error)
}

// Encode returns the complete frame for msg, opcode included.
func Encode(msg ClientMessage) []byte {
	b := NewQuickBuf(8)
	b.WriteByte(msg.Type())
	msg.Write(b)
	return b.Bytes()
}

// WideCoord reports whether coordinates along a dimension of the given
// size travel as two bytes. Sizes up to 256 fit every coordinate
// (0..255) in a single byte.
func WideCoord(size int) bool {
	return size > 256
}

// ResizeMessage sets the canvas size. Both fields are always sent as
// 16-bit big-endian values.
type ResizeMessage struct {
	Width  uint16
	Height uint16
}

func (*ResizeMessage) Type() uint8 {
	return OpResize
}

func (m *ResizeMessage) Write(b *QuickBuf) {
	b.WriteUint16(m.Width)
	b.WriteUint16(m.Height)
}

func (*ResizeMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	var result ResizeMessage
	data := []interface{}{
		&result.Width,
		&result.Height,
	}
	for _, val := range data {
		if err := binary.Read(r, binary.BigEndian, val); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// SetColorModeMessage switches the server between RGB and palette pixels.
type SetColorModeMessage struct {
	Mode ColorMode
}

func (*SetColorModeMessage) Type() uint8 {
	return OpSetColorMode
}

func (m *SetColorModeMessage) Write(b *QuickBuf) {
	b.WriteByte(uint8(m.Mode))
}

func (*SetColorModeMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	mode, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if !ColorMode(mode).Valid() {
		return nil, errors.NotValidf("color mode %d", mode)
	}
	return &SetColorModeMessage{Mode: ColorMode(mode)}, nil
}

// SetPaletteEntryMessage stores an RGB triple in one palette slot.
type SetPaletteEntryMessage struct {
	Index uint8
	Color Color
}

func (*SetPaletteEntryMessage) Type() uint8 {
	return OpSetPaletteEntry
}

func (m *SetPaletteEntryMessage) Write(b *QuickBuf) {
	b.WriteByte(m.Index)
	b.WriteColor(m.Color)
}

func (*SetPaletteEntryMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	var raw [4]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, err
	}
	return &SetPaletteEntryMessage{
		Index: raw[0],
		Color: Color{R: raw[1], G: raw[2], B: raw[3]},
	}, nil
}

// SetAdvanceModeMessage changes the direction the cursor moves after a
// pixel is written.
type SetAdvanceModeMessage struct {
	Mode AdvanceMode
}

func (*SetAdvanceModeMessage) Type() uint8 {
	return OpSetAdvanceMode
}

func (m *SetAdvanceModeMessage) Write(b *QuickBuf) {
	b.WriteByte(uint8(m.Mode))
}

func (*SetAdvanceModeMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	mode, err := readByte(r)
	if err != nil {
		return nil, err
	}
	if !AdvanceMode(mode).Valid() {
		return nil, errors.NotValidf("advance mode %d", mode)
	}
	return &SetAdvanceModeMessage{Mode: AdvanceMode(mode)}, nil
}

// MoveToMessage positions the server cursor. Each coordinate is one byte
// unless the matching canvas dimension exceeds 256, in which case it is
// two bytes big-endian.
type MoveToMessage struct {
	X, Y         uint16
	WideX, WideY bool
}

func (*MoveToMessage) Type() uint8 {
	return OpMoveTo
}

func (m *MoveToMessage) Write(b *QuickBuf) {
	b.WriteCoord(m.X, m.WideX)
	b.WriteCoord(m.Y, m.WideY)
}

func (*MoveToMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	result := MoveToMessage{
		WideX: WideCoord(fr.Width),
		WideY: WideCoord(fr.Height),
	}
	var err error
	if result.X, err = readCoord(r, result.WideX); err != nil {
		return nil, err
	}
	if result.Y, err = readCoord(r, result.WideY); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetPixelMessage writes one pixel at the server cursor. In RGB mode the
// payload is the three color bytes; in palette mode it is the index.
type SetPixelMessage struct {
	Mode  ColorMode
	Color Color
	Index uint8
}

func (*SetPixelMessage) Type() uint8 {
	return OpSetPixel
}

func (m *SetPixelMessage) Write(b *QuickBuf) {
	if m.Mode == ColorModePalette {
		b.WriteByte(m.Index)
		return
	}
	b.WriteColor(m.Color)
}

func (*SetPixelMessage) Read(fr *FrameReader, r io.Reader) (ClientMessage, error) {
	result := SetPixelMessage{Mode: fr.ColorMode}
	if result.Mode == ColorModePalette {
		index, err := readByte(r)
		if err != nil {
			return nil, err
		}
		result.Index = index
		return &result, nil
	}
	var raw [3]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, err
	}
	result.Color = Color{R: raw[0], G: raw[1], B: raw[2]}
	return &result, nil
}

// FlushMessage asks the server to redraw from whatever it has buffered.
// It has no payload.
type FlushMessage struct{}

func (*FlushMessage) Type() uint8 {
	return OpFlush
}

func (*FlushMessage) Write(*QuickBuf) {}

func (*FlushMessage) Read(*FrameReader, io.Reader) (ClientMessage, error) {
	return new(FlushMessage), nil
}

func readByte(r io.Reader) (uint8, error) {
	var raw [1]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return 0, err
	}
	return raw[0], nil
}

func readCoord(r io.Reader, wide bool) (uint16, error) {
	if !wide {
		v, err := readByte(r)
		return uint16(v), err
	}
	var v uint16
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}
