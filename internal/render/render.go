// Package render composes text sections into the 1-bit image sent to
// the printer.
package render

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"tickertape/internal/bitmap"
	"tickertape/internal/layout"
)

// ErrDegenerate is returned when the device geometry or a font leaves
// no usable drawing area. This is a configuration error, not a per-job
// condition.
var ErrDegenerate = errors.New("degenerate layout geometry")

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Section is a typographically distinct block of wrapped lines with
// its own face, alignment and spacing.
type Section struct {
	Lines       []layout.Line
	Face        font.Face
	Align       Alignment
	LineSpacing int // dots added below each line
	Gap         int // dots added after the section
}

// Renderer turns sections into a thresholded 1-bit bitmap of the
// device's printable width.
type Renderer struct {
	Width     int // printable width in dots
	Margin    int
	Threshold uint8 // darkness cutoff: gray below this prints black
	Invert    bool
}

// MaxLineWidth is the width budget wrapped lines must fit.
func (r *Renderer) MaxLineWidth() int {
	return r.Width - 2*r.Margin
}

// Render draws every section in order and thresholds the result. The
// image is exactly as tall as the content, never padded with trailing
// blank rows.
func (r *Renderer) Render(sections []Section) (*bitmap.PixelBitmap, error) {
	if r.MaxLineWidth() <= 0 {
		return nil, ErrDegenerate
	}

	height := 0
	for _, s := range sections {
		lineHeight := s.Face.Metrics().Height.Ceil()
		if lineHeight <= 0 {
			return nil, ErrDegenerate
		}
		height += len(s.Lines)*(lineHeight+s.LineSpacing) + s.Gap
	}
	if height < 1 {
		height = 1
	}

	img := image.NewGray(image.Rect(0, 0, r.Width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	y := 0
	for _, s := range sections {
		metrics := s.Face.Metrics()
		lineHeight := metrics.Height.Ceil()
		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(color.Black),
			Face: s.Face,
		}
		for _, line := range s.Lines {
			if line.Text != "" {
				drawer.Dot = fixed.Point26_6{
					X: fixed.I(r.lineX(line.Width, s.Align)),
					Y: fixed.I(y) + metrics.Ascent,
				}
				drawer.DrawString(line.Text)
			}
			y += lineHeight + s.LineSpacing
		}
		y += s.Gap
	}

	return r.threshold(img), nil
}

func (r *Renderer) lineX(lineWidth int, align Alignment) int {
	switch align {
	case AlignCenter:
		return (r.Width - lineWidth) / 2
	case AlignRight:
		return r.Width - lineWidth - r.Margin
	default:
		return r.Margin
	}
}

// threshold applies the hard darkness cutoff, flipping polarity first
// when inversion is enabled. No dithering: text edges stay crisp.
func (r *Renderer) threshold(img *image.Gray) *bitmap.PixelBitmap {
	bounds := img.Bounds()
	out := bitmap.NewPixelBitmap(bounds.Dx(), bounds.Dy())
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			v := img.GrayAt(x, y).Y
			if r.Invert {
				v = 0xFF - v
			}
			if v < r.Threshold {
				out.SetBit(x, y, 1)
			}
		}
	}
	return out
}
