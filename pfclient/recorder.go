package pfclient

import (
	"io"

	"github.com/juju/errors"
)

// Recorder is a Transport that appends every frame to an io.Writer. The
// result can be decoded with a FrameReader or replayed to a server.
type Recorder struct {
	w io.Writer
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

func (r *Recorder) Write(p []byte) (int, error) {
	return r.w.Write(p)
}

// Flush flushes the underlying writer when it buffers.
func (r *Recorder) Flush() error {
	if f, ok := r.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes, then closes the underlying writer if it is an io.Closer.
func (r *Recorder) Close() error {
	if err := r.Flush(); err != nil {
		return err
	}
	if c, ok := r.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type teeTransport struct {
	primary, secondary Transport
}

// Tee returns a Transport that performs every operation on primary and
// then on secondary. Errors from secondary are reported too, so a broken
// recording is not silently truncated.
func Tee(primary, secondary Transport) Transport {
	return &teeTransport{primary: primary, secondary: secondary}
}

func (t *teeTransport) Write(p []byte) (int, error) {
	n, err := t.primary.Write(p)
	if err != nil {
		return n, err
	}
	if _, err := t.secondary.Write(p); err != nil {
		return n, errors.Annotate(err, "tee")
	}
	return n, nil
}

func (t *teeTransport) Flush() error {
	if err := t.primary.Flush(); err != nil {
		return err
	}
	return errors.Annotate(t.secondary.Flush(), "tee")
}

func (t *teeTransport) Close() error {
	err := t.primary.Close()
	if err2 := t.secondary.Close(); err == nil && err2 != nil {
		err = errors.Annotate(err2, "tee")
	}
	return err
}
