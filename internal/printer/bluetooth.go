// BLE transport for battery units that expose the same raster dialect
// over the vendor GATT service instead of a USB serial port. Built
// with the assumption that the process talks to a single device at a
// time.
package printer

import (
	"fmt"
	"log/slog"
	"time"

	"tinygo.org/x/bluetooth"
)

type characteristicKind byte

const (
	serviceKind characteristicKind = 0x00
	writerKind  characteristicKind = 0x02
)

func gattUUID(t characteristicKind) bluetooth.UUID {
	return bluetooth.NewUUID([16]byte{
		0x00, 0x00, 0xff, byte(t), 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0x80, 0x5f, 0x9b, 0x34, 0xfb,
	})
}

type BluetoothConnection struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	writer  bluetooth.DeviceCharacteristic
	settle  time.Duration
}

// DiscoverBluetooth scans for a device advertising the given local
// name, connects, and resolves the writer characteristic. Scanning
// stops after scanTimeout with ErrDeviceNotFound.
func DiscoverBluetooth(name string, scanTimeout time.Duration, settle time.Duration) (*BluetoothConnection, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("Couldn't enable bluetooth:\n%w", err)
	}

	devices := make(chan bluetooth.ScanResult, 1)
	go func() {
		err := adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.LocalName() == name {
				slog.Info("Found device:",
					"deviceName", result.LocalName(),
				)
				devices <- result
				adapter.StopScan()
			}
		})
		if err != nil {
			slog.Error("Failed to scan for devices:",
				"err", err,
			)
			close(devices)
		}
	}()

	var found bluetooth.ScanResult
	select {
	case dev, ok := <-devices:
		if !ok {
			return nil, fmt.Errorf("%w (name=%s)", ErrDeviceNotFound, name)
		}
		found = dev
	case <-time.After(scanTimeout):
		adapter.StopScan()
		return nil, fmt.Errorf("%w (name=%s, scan timed out)", ErrDeviceNotFound, name)
	}

	slog.Debug("Connecting to device...")
	device, err := adapter.Connect(found.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, fmt.Errorf("Couldn't connect to device:\n%w", err)
	}

	slog.Debug("Discovering service...")
	services, err := device.DiscoverServices([]bluetooth.UUID{gattUUID(serviceKind)})
	if err != nil {
		device.Disconnect()
		return nil, fmt.Errorf("Couldn't discover service:\n%w", err)
	}

	slog.Debug("Discovering characteristics...")
	characteristics, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{gattUUID(writerKind)})
	if err != nil {
		device.Disconnect()
		return nil, fmt.Errorf("Couldn't discover characteristics:\n%w", err)
	}

	return &BluetoothConnection{
		adapter: adapter,
		device:  device,
		writer:  characteristics[0],
		settle:  settle,
	}, nil
}

func (c *BluetoothConnection) Write(data []byte) error {
	if _, err := c.writer.WriteWithoutResponse(data); err != nil {
		return fmt.Errorf("%w: %v", ErrTransportIO, err)
	}
	time.Sleep(c.settle)
	return nil
}

func (c *BluetoothConnection) Close() error {
	return c.device.Disconnect()
}
