package bitmap

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func aRandomBitmap() *PixelBitmap {
	width, height := 1+rand.IntN(400), 1+rand.IntN(400)
	pixels := make([][]byte, height)
	for y := range height {
		row := make([]byte, width)
		for x := range width {
			row[x] = byte(rand.IntN(2))
		}
		pixels[y] = row
	}

	return &PixelBitmap{pixels, width, height}
}

func assertBitmapsIdentical(t *testing.T, b1 Bitmap, b2 Bitmap) {
	t.Helper()
	if b1.Width() != b2.Width() {
		t.Errorf("Bitmaps not of equal width: %v %v", b1, b2)
	}
	if b1.Height() != b2.Height() {
		t.Errorf("Bitmaps not of equal height: %v %v", b1, b2)
	}
	width, height := b1.Width(), b1.Height()

	for y := range height {
		for x := range width {
			bit1, bit2 := b1.GetBit(x, y), b2.GetBit(x, y)
			if bit1 != bit2 {
				t.Errorf("Bit at (%v, %v) doesn't match: %v vs %v", x, y, bit1, bit2)
			}
		}
	}
}

func TestPack(t *testing.T) {
	test := &PixelBitmap{
		pixels: [][]byte{
			{1, 0},
			{0, 1},
		},
		width: 2, height: 2,
	}

	copied := Pack(test)
	assertBitmapsIdentical(t, test, copied)
}

// The leftmost pixel must land in the most significant bit, and the
// unused low bits of the last byte in a row must stay clear.
func TestPackBitOrder(t *testing.T) {
	test := &PixelBitmap{
		pixels: [][]byte{
			{1, 0, 1},
		},
		width: 3, height: 1,
	}

	packed := Pack(test)
	if packed.Stride() != 1 {
		t.Fatalf("Expected stride 1, got %v", packed.Stride())
	}
	if got := packed.Data()[0]; got != 0b10100000 {
		t.Errorf("Expected packed byte 0b10100000, got %08b", got)
	}
}

func TestPackStride(t *testing.T) {
	for _, width := range []int{1, 7, 8, 9, 16, 383, 384} {
		b := NewPixelBitmap(width, 2)
		packed := Pack(b)
		want := (width + 7) / 8
		if packed.Stride() != want {
			t.Errorf("Width %v: expected stride %v, got %v", width, want, packed.Stride())
		}
	}
}

func TestPackMany(t *testing.T) {
	const testCaseCount = 30

	for i := range testCaseCount {
		testBitmap := aRandomBitmap()
		t.Run(fmt.Sprintf("test %v: %s", i, testBitmap.String()), func(t *testing.T) {
			copiedBitmap := Pack(testBitmap)
			assertBitmapsIdentical(t, testBitmap, copiedBitmap)
			copiedAgainBitmap := Pack(copiedBitmap)
			assertBitmapsIdentical(t, copiedBitmap, copiedAgainBitmap)
		})
	}
}

func TestChunk(t *testing.T) {
	b := aRandomBitmap()
	packed := Pack(b)

	chunk := packed.Chunk(0, b.Height())
	assertBitmapsIdentical(t, packed, chunk)

	if b.Height() > 1 {
		half := b.Height() / 2
		top, bottom := packed.Chunk(0, half), packed.Chunk(half, b.Height()-half)
		if top.Height()+bottom.Height() != b.Height() {
			t.Errorf("Chunk heights don't sum to bitmap height")
		}
		for x := range b.Width() {
			if bottom.GetBit(x, 0) != packed.GetBit(x, half) {
				t.Errorf("Chunk row 0 doesn't match source row %v at x=%v", half, x)
			}
		}
	}
}
