package canvas

import "github.com/juju/errors"

// An Event is one step of a batch run by Canvas.Step.
type Event interface {
	Execute(c *Canvas) error
}

type PixelEvent struct {
	X, Y  int
	Brush Brush
}

func (e PixelEvent) Execute(c *Canvas) error {
	return e.Brush.Paint(c, e.X, e.Y)
}

type MoveEvent struct {
	X, Y int
}

func (e MoveEvent) Execute(c *Canvas) error {
	return c.MoveTo(e.X, e.Y)
}

type FlipEvent struct{}

func (FlipEvent) Execute(c *Canvas) error {
	return c.Flip()
}

// Step executes events in order and stops at the first failure.
func (c *Canvas) Step(events []Event) error {
	for _, event := range events {
		if err := event.Execute(c); err != nil {
			return errors.Annotatef(err, "could not step %s", c.label)
		}
	}
	return nil
}
