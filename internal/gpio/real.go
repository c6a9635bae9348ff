//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/sweeney/enviro-sensor/internal/input"
	"github.com/sweeney/enviro-sensor/internal/logic"
	"github.com/warthog618/go-gpiocdev"
)

// RealButtons watches push buttons for falling edges using the Linux GPIO
// character device. Edges are pushed to a Sink from the gpiocdev event
// goroutine; nothing else is touched from there.
type RealButtons struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// NewRealButtons requests each pin as a pulled-up input with falling-edge
// detection and forwards edges to sink, timestamped with now.
func NewRealButtons(chipName string, pins map[logic.InputID]int, sink input.Sink, now func() time.Time) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip}
	for id, pin := range pins {
		handler := func(evt gpiocdev.LineEvent) {
			if evt.Type != gpiocdev.LineEventFallingEdge {
				return
			}
			sink.Push(logic.InputEvent{Source: id, Time: now()})
		}
		// Buttons pull the line low when pressed.
		line, err := chip.RequestLine(pin,
			gpiocdev.WithPullUp,
			gpiocdev.WithFallingEdge,
			gpiocdev.WithEventHandler(handler))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", id, pin, err)
		}
		b.lines = append(b.lines, line)
	}

	return b, nil
}

// Close stops edge detection and releases the lines.
func (b *RealButtons) Close() error {
	var errs []error
	for _, line := range b.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", line.Offset(), err))
		}
	}
	b.lines = nil
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		b.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealActuators drives output lines through the GPIO character device.
// The character device has no PWM, so PWM channels are driven fully on for
// any non-zero level.
type RealActuators struct {
	chip  *gpiocdev.Chip
	lines map[Channel]*gpiocdev.Line
}

// NewRealActuators requests each pin as an output, initially low.
func NewRealActuators(chipName string, pins map[Channel]int) (*RealActuators, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	a := &RealActuators{chip: chip, lines: make(map[Channel]*gpiocdev.Line)}
	for ch, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", ch, pin, err)
		}
		a.lines[ch] = line
	}

	return a, nil
}

// SetPWMLevel drives ch high for any non-zero level.
func (a *RealActuators) SetPWMLevel(ch Channel, level uint16) error {
	return a.SetDigital(ch, level > 0)
}

// SetDigital drives ch high or low.
func (a *RealActuators) SetDigital(ch Channel, on bool) error {
	line, ok := a.lines[ch]
	if !ok {
		return fmt.Errorf("channel %s not configured", ch)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", ch, err)
	}
	return nil
}

// Close switches every output off, then reconfigures the pins as inputs with
// pull-down (matching Pi boot defaults) before releasing them.
func (a *RealActuators) Close() error {
	var errs []error

	for ch, line := range a.lines {
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("switch off %s: %w", ch, err))
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s: %w", ch, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", ch, err))
		}
	}
	a.lines = nil
	if a.chip != nil {
		if err := a.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		a.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
