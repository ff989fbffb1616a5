package pfclient

// QuickBuf accumulates one frame so it can be handed to the transport in
// a single write. The zero value is ready to use.
type QuickBuf struct {
	buf []byte
}

func (b *QuickBuf) Len() int { return len(b.buf) }

func (b *QuickBuf) Bytes() []byte { return b.buf }

// Reset empties the buffer but keeps its storage for the next frame.
func (b *QuickBuf) Reset() { b.buf = b.buf[:0] }

func (b *QuickBuf) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// WriteUint16 appends v big-endian, high byte first.
func (b *QuickBuf) WriteUint16(v uint16) {
	b.buf = append(b.buf, byte(v>>8), byte(v))
}

func (b *QuickBuf) WriteColor(c Color) {
	b.buf = append(b.buf, c.R, c.G, c.B)
}

// WriteCoord appends a single coordinate: two bytes when wide, else one.
func (b *QuickBuf) WriteCoord(v uint16, wide bool) {
	if wide {
		b.WriteUint16(v)
		return
	}
	b.buf = append(b.buf, byte(v))
}

func NewQuickBuf(size int) *QuickBuf { return &QuickBuf{buf: make([]byte, 0, size)} }
