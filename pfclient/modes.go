package pfclient

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// ColorMode selects how pixels are described on the wire: a full RGB
// triple or a single palette index.
type ColorMode uint8

const (
	ColorModeRGB     ColorMode = 0
	ColorModePalette ColorMode = 1
)

func (m ColorMode) Valid() bool {
	return m == ColorModeRGB || m == ColorModePalette
}

// BytesPerPixel is the size of one pixel in a framebuffer of this mode.
func (m ColorMode) BytesPerPixel() int {
	if m == ColorModePalette {
		return 1
	}
	return 3
}

func (m ColorMode) String() string {
	switch m {
	case ColorModeRGB:
		return "rgb"
	case ColorModePalette:
		return "palette"
	}
	return "ColorMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseColorMode accepts "rgb" or "palette", case-insensitively.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb":
		return ColorModeRGB, nil
	case "palette":
		return ColorModePalette, nil
	}
	return 0, errors.NotValidf("color mode %q", s)
}

// AdvanceMode is the direction the server moves its cursor after each
// SetPixel frame.
type AdvanceMode uint8

const (
	AdvanceRight AdvanceMode = 0
	AdvanceDown  AdvanceMode = 1
)

func (m AdvanceMode) Valid() bool {
	return m == AdvanceRight || m == AdvanceDown
}

func (m AdvanceMode) String() string {
	switch m {
	case AdvanceRight:
		return "right"
	case AdvanceDown:
		return "down"
	}
	return "AdvanceMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseAdvanceMode accepts "right" or "down", case-insensitively.
func ParseAdvanceMode(s string) (AdvanceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return AdvanceRight, nil
	case "down":
		return AdvanceDown, nil
	}
	return 0, errors.NotValidf("advance mode %q", s)
}
