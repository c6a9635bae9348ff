package gpio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Default IIO channels for a two-channel ADC. The Y axis is wired to
// channel 0.
const (
	DefaultIIOX = "/sys/bus/iio/devices/iio:device0/in_voltage1_raw"
	DefaultIIOY = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"
)

// IIOAxisReader reads joystick axes from Linux IIO ADC sysfs attributes.
type IIOAxisReader struct {
	xPath string
	yPath string
}

// NewIIOAxisReader creates a reader for the given raw-value attributes and
// checks that both are readable.
func NewIIOAxisReader(xPath, yPath string) (*IIOAxisReader, error) {
	r := &IIOAxisReader{xPath: xPath, yPath: yPath}
	if _, _, err := r.Read(); err != nil {
		return nil, err
	}
	return r, nil
}

// Read returns the raw X and Y values.
func (r *IIOAxisReader) Read() (int, int, error) {
	x, err := readRaw(r.xPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read X axis: %w", err)
	}
	y, err := readRaw(r.yPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read Y axis: %w", err)
	}
	return x, y, nil
}

// Close is a no-op; each Read opens and closes the attributes.
func (r *IIOAxisReader) Close() error {
	return nil
}

func readRaw(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
