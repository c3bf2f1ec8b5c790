// Package printer frames 1-bit images into the raster protocol and
// owns the connection to the device.
package printer

// The protocol's per-command row-count field is one byte.
const maxRowsPerFrame = 255

// Profile is the fixed geometry of a connected device. WidthDots and
// the derived bytes-per-line never change after discovery.
type Profile struct {
	DotsPerInch int
	WidthDots   int
}

// BytesPerLine is the packed width of one scanline.
func (p Profile) BytesPerLine() int {
	return (p.WidthDots + 7) / 8
}

// ProfileForWidth derives the dot geometry from a physical paper width
// in millimetres.
func ProfileForWidth(widthMM float64, dpi int) Profile {
	return Profile{
		DotsPerInch: dpi,
		WidthDots:   int(widthMM * float64(dpi) / 25.4),
	}
}
