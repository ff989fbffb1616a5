package pfclient

import (
	"io"

	"github.com/juju/errors"
)

// The server's canvas before it has seen a Resize or SetColorMode frame.
const (
	DefaultWidth     = 320
	DefaultHeight    = 180
	DefaultColorMode = ColorModeRGB
)

// FrameReader decodes a stream of client frames, such as a recording made
// with a Recorder. Some payloads have no fixed length, so the reader
// follows the stream the way the server would: Resize frames update
// Width and Height, SetColorMode frames update ColorMode.
type FrameReader struct {
	Width     int
	Height    int
	ColorMode ColorMode

	r    io.Reader
	msgs map[uint8]ClientMessage
}

func NewFrameReader(r io.Reader) *FrameReader {
	fr := &FrameReader{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		ColorMode: DefaultColorMode,
		r:         r,
		msgs:      map[uint8]ClientMessage{},
	}
	for _, msg := range []ClientMessage{
		new(ResizeMessage),
		new(SetColorModeMessage),
		new(SetPaletteEntryMessage),
		new(SetAdvanceModeMessage),
		new(MoveToMessage),
		new(SetPixelMessage),
		new(FlushMessage),
	} {
		fr.msgs[msg.Type()] = msg
	}
	return fr
}

// Next returns the next frame. It returns io.EOF only at a frame
// boundary; a frame cut short yields io.ErrUnexpectedEOF.
func (fr *FrameReader) Next() (ClientMessage, error) {
	op, err := readByte(fr.r)
	if err != nil {
		return nil, err
	}

	proto, ok := fr.msgs[op]
	if !ok {
		return nil, errors.Errorf("unsupported opcode: %d", op)
	}

	msg, err := proto.Read(fr, fr.r)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, errors.Annotatef(err, "could not read %T payload", proto)
	}

	switch msg := msg.(type) {
	case *ResizeMessage:
		fr.Width = int(msg.Width)
		fr.Height = int(msg.Height)
	case *SetColorModeMessage:
		fr.ColorMode = msg.Mode
	}
	return msg, nil
}
