package printer

import (
	"fmt"

	"tickertape/internal/bitmap"
)

// Frame is one raster command unit: at most maxRowsPerFrame packed
// scanlines. Frames are transmitted strictly top to bottom; the device
// has no row addressing, only sequential append.
type Frame struct {
	BytesPerLine int
	Rows         int
	Payload      []byte
}

// Encode serializes the frame as the raster opcode, the two
// little-endian size fields, then the payload in row-major order.
func (f *Frame) Encode() []byte {
	data := rasterHeader(f.BytesPerLine, f.Rows)
	return append(data, f.Payload...)
}

// BuildFrames packs a bitmap and splits it into protocol frames. Frame
// boundaries never split a row, and only the final frame may be short.
func BuildFrames(b bitmap.Bitmap, p Profile) ([]Frame, error) {
	packed := bitmap.Pack(b)
	if packed.Stride() > p.BytesPerLine() {
		return nil, fmt.Errorf("Bitmap too wide for printer: %v bytes per line, device takes %v", packed.Stride(), p.BytesPerLine())
	}

	var frames []Frame
	for start := 0; start < packed.Height(); start += maxRowsPerFrame {
		end := start + maxRowsPerFrame
		if end > packed.Height() {
			end = packed.Height()
		}

		chunk := packed.Chunk(start, end-start)
		frames = append(frames, Frame{
			BytesPerLine: chunk.Stride(),
			Rows:         chunk.Height(),
			Payload:      chunk.Data(),
		})
	}

	return frames, nil
}
