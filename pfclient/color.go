package pfclient

// Color is a 24-bit RGB triple, one byte per channel, as carried by
// SetPixel and SetPaletteEntry frames.
type Color struct {
	R, G, B uint8
}

// Packed returns the color as 0xRRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
