package logic

import "fmt"

// Joystick defaults for a 12-bit ADC.
const (
	DefaultRawMax   = 4095
	DefaultCenterX  = 1939
	DefaultCenterY  = 2180
	DefaultDeadzone = 40
)

// Direction is the movement implied by an axis deflection.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionIncrease
	DirectionDecrease
)

func (d Direction) String() string {
	switch d {
	case DirectionIncrease:
		return "increase"
	case DirectionDecrease:
		return "decrease"
	default:
		return "none"
	}
}

// AxisMapper converts a raw axis reading into [0, outMax].
// The raw range is asymmetric around its rest position, so offsets below and
// above center are scaled separately.
type AxisMapper struct {
	center int
	rawMax int
	outMax int
}

// NewAxisMapper validates the mapping parameters. A zero-width range on either
// side of center is rejected here so Map never divides by zero.
func NewAxisMapper(center, rawMax, outMax int) (AxisMapper, error) {
	if center <= 0 {
		return AxisMapper{}, fmt.Errorf("axis center %d: must be > 0", center)
	}
	if center >= rawMax {
		return AxisMapper{}, fmt.Errorf("axis center %d: must be < raw max %d", center, rawMax)
	}
	if outMax <= 0 {
		return AxisMapper{}, fmt.Errorf("axis output max %d: must be > 0", outMax)
	}
	return AxisMapper{center: center, rawMax: rawMax, outMax: outMax}, nil
}

// Map returns raw mapped into [0, outMax]. The center maps to outMax/2.
func (m AxisMapper) Map(raw int) int {
	half := m.outMax / 2
	offset := raw - m.center

	var mapped int
	if offset < 0 {
		mapped = offset*half/m.center + half
	} else {
		mapped = offset*half/(m.rawMax-m.center) + half
	}

	if mapped < 0 {
		return 0
	}
	if mapped > m.outMax {
		return m.outMax
	}
	return mapped
}

// Classify returns the direction of a deflection and whether it is outside
// the deadzone.
func Classify(raw, center, deadzone int) (Direction, bool) {
	offset := raw - center
	switch {
	case offset > deadzone:
		return DirectionIncrease, true
	case offset < -deadzone:
		return DirectionDecrease, true
	default:
		return DirectionNone, false
	}
}
