// Package serialport opens the byte-stream source the monitor reads from.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.bug.st/serial"
)

// ErrNoDevice is returned when enumeration finds no serial ports.
var ErrNoDevice = errors.New("no serial device found")

const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 1000 * time.Millisecond
)

// Settings is the fixed configuration a port is opened with.
type Settings struct {
	BaudRate    int
	ReadTimeout time.Duration
}

// DefaultSettings returns 115200 baud with a one second read timeout.
func DefaultSettings() Settings {
	return Settings{BaudRate: DefaultBaudRate, ReadTimeout: DefaultReadTimeout}
}

// listPorts is swapped in tests.
var listPorts = serial.GetPortsList

// List returns the names of all serial ports on the system.
func List() ([]string, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}
	return ports, nil
}

// Discover returns the first port reported by enumeration.
func Discover() (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", ErrNoDevice
	}
	return ports[0], nil
}

// Open opens name with settings. Reads block for at most ReadTimeout and
// return zero bytes with a nil error when nothing arrived.
func Open(name string, settings Settings) (io.ReadCloser, error) {
	if settings.BaudRate <= 0 {
		settings.BaudRate = DefaultBaudRate
	}
	if settings.ReadTimeout <= 0 {
		settings.ReadTimeout = DefaultReadTimeout
	}
	port, err := serial.Open(name, &serial.Mode{BaudRate: settings.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(settings.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	return port, nil
}

// OpenReplay opens a captured log file as a source. The stream ends at EOF.
func OpenReplay(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	return file, nil
}
