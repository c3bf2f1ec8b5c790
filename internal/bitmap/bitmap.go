package bitmap

import "fmt"

// Bitmap is a 1-bit image. GetBit returns 1 for a printed (black) pixel
// and 0 for an unprinted (white) one.
type Bitmap interface {
	Width() int
	Height() int
	GetBit(x int, y int) byte
}

// PixelBitmap stores one byte per pixel. It is the draw target of the
// rasterizer before packing.
type PixelBitmap struct {
	pixels [][]byte
	width  int
	height int
}

func NewPixelBitmap(width, height int) *PixelBitmap {
	pixels := make([][]byte, height)
	for y := range height {
		pixels[y] = make([]byte, width)
	}
	return &PixelBitmap{pixels, width, height}
}

func FromPixels(pixels [][]byte, width, height int) *PixelBitmap {
	return &PixelBitmap{pixels, width, height}
}

func (b *PixelBitmap) Width() int {
	return b.width
}

func (b *PixelBitmap) Height() int {
	return b.height
}

func (b *PixelBitmap) GetBit(x int, y int) byte {
	return b.pixels[y][x]
}

func (b *PixelBitmap) SetBit(x int, y int, bit byte) {
	b.pixels[y][x] = bit & 1
}

func (b *PixelBitmap) String() string {
	return fmt.Sprintf("PixelBitmap(%d,%d)", b.width, b.height)
}
