package pfclient

import (
	"bufio"
	"context"
	"net"
	"strings"
	"time"

	"github.com/juju/errors"
	"nhooyr.io/websocket"
)

// DefaultAddress is where the pixelflow server listens unless told
// otherwise.
const DefaultAddress = "127.0.0.1:19223"

// netTransport sends frames over a net.Conn. Frames are staged in a
// bufio.Writer so that Flush hands each one to the socket in a single
// write.
type netTransport struct {
	conn net.Conn
	w    *bufio.Writer
}

// NewNetTransport adapts conn to a Transport.
func NewNetTransport(conn net.Conn) Transport {
	return &netTransport{conn: conn, w: bufio.NewWriter(conn)}
}

func (t *netTransport) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

func (t *netTransport) Flush() error {
	return t.w.Flush()
}

func (t *netTransport) Close() error {
	return t.conn.Close()
}

// Dial connects to a pixelflow server. A plain host:port address is
// dialed over TCP; ws:// and wss:// URLs open a WebSocket, with each frame
// carried as one binary message. A zero timeout means no limit beyond ctx.
func Dial(ctx context.Context, address string, timeout time.Duration) (Transport, error) {
	if address == "" {
		address = DefaultAddress
	}
	if strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://") {
		return dialWebSocket(ctx, address, timeout)
	}

	log.Debugf("dialing tcp %s", address)
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Annotatef(err, "could not connect to %s", address)
	}
	return NewNetTransport(conn), nil
}

func dialWebSocket(ctx context.Context, address string, timeout time.Duration) (Transport, error) {
	log.Debugf("dialing websocket %s", address)
	dialCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c, _, err := websocket.Dial(dialCtx, address, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "could not open websocket to %s", address)
	}
	// The NetConn context outlives the dial; it must not carry the timeout.
	return NewNetTransport(websocket.NetConn(context.Background(), c, websocket.MessageBinary)), nil
}
