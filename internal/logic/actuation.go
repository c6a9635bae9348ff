package logic

import "fmt"

// PWMMax is the full-scale PWM level.
const PWMMax = 65535

// Buzzer levels.
const (
	BuzzerNormal   uint16 = 1024
	BuzzerCritical uint16 = 32768
)

// Indicator bands.
const (
	TemperatureHot  = 38 // red above this
	TemperatureWarm = 34 // green from here up to TemperatureHot
	AirQualityPoor  = 50 // red and buzzer below this, blue otherwise
)

// MatrixSize is the number of LEDs in the 5x5 indicator matrix.
const MatrixSize = 25

// DangerPattern is the "X" shown on the matrix during a critical alert.
// Row-major.
var DangerPattern = [MatrixSize]bool{
	true, false, false, false, true,
	false, true, false, true, false,
	false, false, true, false, false,
	false, true, false, true, false,
	true, false, false, false, true,
}

// RGB holds PWM levels for the tri-color indicator.
type RGB struct {
	R uint16
	G uint16
	B uint16
}

// Red is the full-scale red color.
var Red = RGB{R: PWMMax}

// Rect is a rectangle in display pixels.
type Rect struct {
	X, Y, W, H int
}

// Locks records which quantities are locked.
type Locks struct {
	Temperature bool
	AirQuality  bool
	Entities    bool
}

// Any reports whether any quantity is locked.
func (l Locks) Any() bool {
	return l.Temperature || l.AirQuality || l.Entities
}

// Frame is everything the actuators should show for one cycle.
type Frame struct {
	Color  RGB
	Buzzer uint16 // 0 is off
	Lines  []string

	// MatrixBlink asks for the danger pattern to blink; MatrixOn is the
	// current phase.
	MatrixBlink bool
	MatrixOn    bool

	Border int
	Cursor Rect
}

// Compose derives the frame for the given values and alert state. Buzzer
// and MatrixBlink are requests; the engine turns them into timed pulses.
// A critical alert suppresses the per-quantity bands.
func Compose(s Snapshot, locks Locks, alert AlertState) Frame {
	f := Frame{Border: 1}
	if locks.Any() {
		f.Border = 3
	}

	values := []string{
		fmt.Sprintf("Temp: %d C%s", s.Temperature, lockSuffix(locks.Temperature)),
		fmt.Sprintf("Air: %d%s", s.AirQuality, lockSuffix(locks.AirQuality)),
		fmt.Sprintf("Ents: %d%s", s.Entities, lockSuffix(locks.Entities)),
	}

	if alert.Critical {
		f.Color = Red
		f.Buzzer = BuzzerCritical
		f.MatrixBlink = true
		f.Lines = append([]string{"CRITICAL ALERT"}, values...)
		return f
	}

	switch {
	case s.Temperature > TemperatureHot:
		f.Color.R = PWMMax
	case s.Temperature >= TemperatureWarm:
		f.Color.G = PWMMax
	}

	if s.AirQuality < AirQualityPoor {
		f.Color.R = PWMMax
		f.Buzzer = BuzzerNormal
	} else {
		f.Color.B = PWMMax
	}

	f.Lines = values
	if alert.Active {
		f.Lines = append(f.Lines, "ALERT")
	}
	return f
}

func lockSuffix(locked bool) string {
	if locked {
		return " [L]"
	}
	return ""
}
