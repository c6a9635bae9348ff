//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/enviro-sensor/internal/input"
	"github.com/sweeney/enviro-sensor/internal/logic"
)

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(chipName string, pins map[logic.InputID]int, sink input.Sink, now func() time.Time) (*RealButtons, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}

// RealActuators is not available on non-Linux platforms.
type RealActuators struct{}

// NewRealActuators returns an error on non-Linux platforms.
func NewRealActuators(chipName string, pins map[Channel]int) (*RealActuators, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// SetPWMLevel is not implemented on non-Linux platforms.
func (a *RealActuators) SetPWMLevel(ch Channel, level uint16) error {
	return errors.New("gpio: not supported")
}

// SetDigital is not implemented on non-Linux platforms.
func (a *RealActuators) SetDigital(ch Channel, on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (a *RealActuators) Close() error {
	return nil
}
