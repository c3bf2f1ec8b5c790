package printer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialOptions identify and configure the USB serial device.
type SerialOptions struct {
	VendorID    string // 4 hex digits
	ProductID   string // 4 hex digits
	BaudRate    int
	ReadTimeout time.Duration
	// Settle is the mandatory pause after every write. The hardware
	// needs time between command buffers; skipping it drops bytes on
	// the receiving side.
	Settle time.Duration
}

// SerialConnection owns an open serial port. Write applies the settle
// delay before returning, so callers never have to think about it.
type SerialConnection struct {
	port   serial.Port
	name   string
	settle time.Duration
}

// DiscoverSerial enumerates serial-capable devices and opens the first
// one matching the configured vendor/product pair at 9600-style 8N1
// settings.
func DiscoverSerial(opts SerialOptions) (*SerialConnection, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("Couldn't enumerate serial ports:\n%w", err)
	}

	name, ok := matchPort(ports, opts.VendorID, opts.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w (vid=%s pid=%s)", ErrDeviceNotFound, opts.VendorID, opts.ProductID)
	}
	slog.Info("Found printer device",
		"port", name,
		"vid", opts.VendorID,
		"pid", opts.ProductID,
	)

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open serial port %s:\n%w", name, err)
	}
	if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("Couldn't set read timeout on %s:\n%w", name, err)
	}

	return &SerialConnection{
		port:   port,
		name:   name,
		settle: opts.Settle,
	}, nil
}

// matchPort picks the first enumerated port whose USB identifiers
// match. If several devices match, first wins; the chosen port is
// logged so the ambiguity is at least visible.
func matchPort(ports []*enumerator.PortDetails, vendorID, productID string) (string, bool) {
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if strings.EqualFold(port.VID, vendorID) && strings.EqualFold(port.PID, productID) {
			return port.Name, true
		}
	}
	return "", false
}

func (c *SerialConnection) Write(data []byte) error {
	if _, err := c.port.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrTransportIO, err)
	}
	time.Sleep(c.settle)
	return nil
}

func (c *SerialConnection) Close() error {
	return c.port.Close()
}

func (c *SerialConnection) String() string {
	return fmt.Sprintf("SerialConnection(%s)", c.name)
}
