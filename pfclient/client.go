// Package pfclient implements the client side of the pixelflow display
// protocol: a one-way stream of opcode-prefixed frames.
package pfclient

import (
	"github.com/juju/errors"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("pfclient")

// Transport is the byte stream frames are written to. Flush must force
// everything written so far onto the wire before returning.
type Transport interface {
	Write(p []byte) (int, error)
	Flush() error
	Close() error
}

// ClientConn writes frames to a Transport. Every frame goes out as one
// contiguous write followed by a flush, so nothing is batched across
// frames. A ClientConn is not safe for concurrent use.
type ClientConn struct {
	t   Transport
	buf QuickBuf

	// FramesSent counts frames fully handed to the transport.
	FramesSent uint64

	closed bool
}

// Client wraps t. The ClientConn owns t from here on and closes it in
// Close.
func Client(t Transport) *ClientConn {
	return &ClientConn{t: t, buf: QuickBuf{buf: make([]byte, 0, 8)}}
}

// Send encodes msg and writes it to the transport.
func (c *ClientConn) Send(msg ClientMessage) error {
	if c.closed {
		return errors.Errorf("cannot send %T: connection closed", msg)
	}

	c.buf.Reset()
	c.buf.WriteByte(msg.Type())
	msg.Write(&c.buf)

	n, err := c.t.Write(c.buf.Bytes())
	if err != nil {
		return errors.Annotatef(err, "could not write %T", msg)
	}
	if n != c.buf.Len() {
		return errors.Errorf("short write of %T: %d of %d bytes", msg, n, c.buf.Len())
	}
	if err := c.t.Flush(); err != nil {
		return errors.Annotatef(err, "could not flush %T", msg)
	}
	c.FramesSent++
	return nil
}

func (c *ClientConn) Resize(width, height uint16) error {
	return c.Send(&ResizeMessage{Width: width, Height: height})
}

func (c *ClientConn) SetColorMode(mode ColorMode) error {
	return c.Send(&SetColorModeMessage{Mode: mode})
}

func (c *ClientConn) SetPaletteEntry(index uint8, color Color) error {
	return c.Send(&SetPaletteEntryMessage{Index: index, Color: color})
}

func (c *ClientConn) SetAdvanceMode(mode AdvanceMode) error {
	return c.Send(&SetAdvanceModeMessage{Mode: mode})
}

// MoveTo moves the server cursor to (x, y) on a canvas of the given size.
// The size only picks the width of each coordinate on the wire.
func (c *ClientConn) MoveTo(x, y uint16, width, height int) error {
	return c.Send(&MoveToMessage{
		X:     x,
		Y:     y,
		WideX: WideCoord(width),
		WideY: WideCoord(height),
	})
}

func (c *ClientConn) SetPixelRGB(color Color) error {
	return c.Send(&SetPixelMessage{Mode: ColorModeRGB, Color: color})
}

func (c *ClientConn) SetPixelIndex(index uint8) error {
	return c.Send(&SetPixelMessage{Mode: ColorModePalette, Index: index})
}

// Flush sends a Flush frame, asking the server to redraw from its
// buffer. It is unrelated to Transport.Flush.
func (c *ClientConn) Flush() error {
	return c.Send(new(FlushMessage))
}

// Close closes the underlying transport. Calling it more than once is
// harmless.
func (c *ClientConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	log.Debugf("closing transport after %d frames", c.FramesSent)
	return errors.Trace(c.t.Close())
}
