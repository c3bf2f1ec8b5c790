// This file implements packing of bitmap pixel data into the scanline
// byte structure accepted by the printer: each row occupies
// ceil(width/8) bytes, with the leftmost pixel of each 8-pixel group in
// the most significant bit. Bits beyond the image width in the final
// byte of a row are always clear (white).

package bitmap

import "fmt"

const bitsPerWord = 8

// PackedBitmap is a bitmap packed into row-major scanline bytes.
type PackedBitmap struct {
	data   []byte
	width  int
	height int
	stride int
}

func (b *PackedBitmap) Width() int {
	return b.width
}

func (b *PackedBitmap) Height() int {
	return b.height
}

// Stride is the number of bytes per scanline.
func (b *PackedBitmap) Stride() int {
	return b.stride
}

func (b *PackedBitmap) Data() []byte {
	return b.data
}

// GetBit returns the bit at the (x, y) coordinate, either 0 or 1.
func (b *PackedBitmap) GetBit(x int, y int) byte {
	index := y*b.stride + x/bitsPerWord
	return (b.data[index] >> (bitsPerWord - 1 - x%bitsPerWord)) & 1
}

func (b *PackedBitmap) String() string {
	return fmt.Sprintf("PackedBitmap(%d,%d)", b.width, b.height)
}

// Chunk takes a horizontal slice of the packed bitmap starting at the
// given row. The slice aliases the source data.
func (b *PackedBitmap) Chunk(start int, height int) *PackedBitmap {
	return &PackedBitmap{
		data:   b.data[b.stride*start : b.stride*(start+height)],
		width:  b.width,
		height: height,
		stride: b.stride,
	}
}

// Pack maps a generic bitmap into the packed scanline structure.
func Pack(b Bitmap) *PackedBitmap {
	width, height := b.Width(), b.Height()
	stride := (width + bitsPerWord - 1) / bitsPerWord
	data := make([]byte, stride*height)

	for y := range height {
		row := data[y*stride : (y+1)*stride]
		for x := range width {
			if b.GetBit(x, y)&1 == 1 {
				row[x/bitsPerWord] |= 1 << (bitsPerWord - 1 - x%bitsPerWord)
			}
		}
	}

	return &PackedBitmap{data, width, height, stride}
}
