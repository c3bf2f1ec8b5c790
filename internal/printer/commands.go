package printer

const (
	esc = 0x1B
	gs  = 0x1D
)

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// ESC @ : reset the printer to its power-on state.
func initPrinter() []byte {
	return []byte{esc, 0x40}
}

// ESC 7 n : set print density, 0-7.
func setDensity(density int) []byte {
	return []byte{esc, 0x37, byte(clamp(density, 0, 7))}
}

// ESC 3 n : set line spacing in dots.
func setLineSpacing(dots int) []byte {
	return []byte{esc, 0x33, byte(clamp(dots, 0, 255))}
}

// ESC s n : set print speed, 1 (slow) to 5 (fast).
func setSpeed(speed int) []byte {
	return []byte{esc, 0x73, byte(clamp(speed, 1, 5))}
}

// GS v 0 : raster bit image header. Width and row count are 2-byte
// little-endian fields; the packed payload follows.
func rasterHeader(bytesPerLine int, rows int) []byte {
	return []byte{
		gs, 0x76, 0x30, 0x00,
		byte(bytesPerLine & 0xFF), byte(bytesPerLine >> 8),
		byte(rows & 0xFF), byte(rows >> 8),
	}
}

// ESC d n : feed n lines of paper.
func feedLines(lines int) []byte {
	return []byte{esc, 0x64, byte(clamp(lines, 0, 255))}
}

// Settings are the device parameters applied once per connection.
type Settings struct {
	Density     int // 0-7
	LineSpacing int // dots
	Speed       int // 1-5
}

// Initialize sends the connect-time command sequence: reset, density,
// line spacing, speed. Each command is its own write so the device
// gets its settling time in between.
func Initialize(c Connection, s Settings) error {
	commands := [][]byte{
		initPrinter(),
		setDensity(s.Density),
		setLineSpacing(s.LineSpacing),
		setSpeed(s.Speed),
	}
	for _, command := range commands {
		if err := c.Write(command); err != nil {
			return err
		}
	}
	return nil
}
