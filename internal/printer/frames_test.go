package printer

import (
	"bytes"
	"testing"

	"tickertape/internal/bitmap"
)

func aBitmap(width, height int) *bitmap.PixelBitmap {
	b := bitmap.NewPixelBitmap(width, height)
	for y := range height {
		for x := range width {
			if (x+y)%3 == 0 {
				b.SetBit(x, y, 1)
			}
		}
	}
	return b
}

func TestBuildFramesSingle(t *testing.T) {
	p := Profile{DotsPerInch: 203, WidthDots: 384}
	if p.BytesPerLine() != 48 {
		t.Fatalf("Expected 48 bytes per line, got %v", p.BytesPerLine())
	}

	frames, err := BuildFrames(aBitmap(384, 100), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %v", len(frames))
	}
	if frames[0].Rows != 100 || frames[0].BytesPerLine != 48 {
		t.Errorf("Unexpected frame shape: %+v", frames[0])
	}
	if len(frames[0].Payload) != 100*48 {
		t.Errorf("Expected %v payload bytes, got %v", 100*48, len(frames[0].Payload))
	}
}

func TestBuildFramesSplitsAt255(t *testing.T) {
	p := Profile{DotsPerInch: 203, WidthDots: 384}
	frames, err := BuildFrames(aBitmap(384, 600), p)
	if err != nil {
		t.Fatal(err)
	}

	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames for 600 rows, got %v", len(frames))
	}
	wantRows := []int{255, 255, 90}
	total := 0
	for i, frame := range frames {
		if frame.Rows != wantRows[i] {
			t.Errorf("Frame %v: expected %v rows, got %v", i, wantRows[i], frame.Rows)
		}
		if frame.Rows > 255 {
			t.Errorf("Frame %v exceeds the row budget: %v", i, frame.Rows)
		}
		total += frame.Rows
	}
	if total != 600 {
		t.Errorf("Row counts sum to %v, expected 600", total)
	}
}

func TestBuildFramesPreservesRowOrder(t *testing.T) {
	p := Profile{DotsPerInch: 203, WidthDots: 16}
	b := bitmap.NewPixelBitmap(16, 300)
	// One marker pixel per row, walking right one dot every 16 rows.
	for y := range 300 {
		b.SetBit((y/16)%16, y, 1)
	}

	frames, err := BuildFrames(b, p)
	if err != nil {
		t.Fatal(err)
	}

	row := 0
	for _, frame := range frames {
		for r := range frame.Rows {
			payloadRow := frame.Payload[r*frame.BytesPerLine : (r+1)*frame.BytesPerLine]
			wantX := (row / 16) % 16
			wantByte := wantX / 8
			wantBit := byte(1) << (7 - wantX%8)
			for i, got := range payloadRow {
				want := byte(0)
				if i == wantByte {
					want = wantBit
				}
				if got != want {
					t.Fatalf("Row %v byte %v: got %08b, want %08b", row, i, got, want)
				}
			}
			row++
		}
	}
	if row != 300 {
		t.Errorf("Frames carry %v rows, expected 300", row)
	}
}

func TestBuildFramesTooWide(t *testing.T) {
	p := Profile{DotsPerInch: 203, WidthDots: 64}
	if _, err := BuildFrames(aBitmap(128, 10), p); err == nil {
		t.Error("Expected an error for a bitmap wider than the device")
	}
}

func TestFrameEncode(t *testing.T) {
	frame := Frame{
		BytesPerLine: 48,
		Rows:         255,
		Payload:      bytes.Repeat([]byte{0xAA}, 48*255),
	}
	data := frame.Encode()

	header := []byte{0x1D, 0x76, 0x30, 0x00, 48, 0x00, 255, 0x00}
	if !bytes.Equal(data[:8], header) {
		t.Errorf("Unexpected header: % x", data[:8])
	}
	if len(data) != 8+48*255 {
		t.Errorf("Expected %v bytes, got %v", 8+48*255, len(data))
	}
}

func TestFrameEncodeLittleEndianWidth(t *testing.T) {
	// 1678-dot devices have 210 bytes per line; still one byte here,
	// but a 300-byte line must spill into the high byte.
	frame := Frame{BytesPerLine: 300, Rows: 1, Payload: make([]byte, 300)}
	data := frame.Encode()
	if data[4] != 0x2C || data[5] != 0x01 {
		t.Errorf("Expected little-endian 300 (2c 01), got %02x %02x", data[4], data[5])
	}
}

func TestCommandClamping(t *testing.T) {
	if got := setDensity(12); got[2] != 7 {
		t.Errorf("Density not clamped: %v", got[2])
	}
	if got := setDensity(-1); got[2] != 0 {
		t.Errorf("Density not clamped: %v", got[2])
	}
	if got := setSpeed(0); got[2] != 1 {
		t.Errorf("Speed not clamped: %v", got[2])
	}
	if got := setSpeed(9); got[2] != 5 {
		t.Errorf("Speed not clamped: %v", got[2])
	}
	if got := feedLines(1000); got[2] != 255 {
		t.Errorf("Feed lines not clamped: %v", got[2])
	}
}

func TestProfileForWidth(t *testing.T) {
	p := ProfileForWidth(190, 203)
	if p.WidthDots != 1518 {
		t.Errorf("Expected 1518 dots, got %v", p.WidthDots)
	}
	if p.BytesPerLine() != 190 {
		t.Errorf("Expected 190 bytes per line, got %v", p.BytesPerLine())
	}
}
