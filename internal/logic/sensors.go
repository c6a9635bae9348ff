package logic

import "math/rand/v2"

// Randomize draws entity counts from [RandomMin, RandomMin+RandomSpan].
const (
	RandomMin  = 10
	RandomSpan = 170
)

// SensorValue is a bounded integer quantity.
// Invariant: Min <= Value <= Max.
type SensorValue struct {
	Value  int
	Min    int
	Max    int
	Step   int
	Locked bool
}

// move applies one step in dir unless the value is locked.
func (v *SensorValue) move(dir Direction) {
	if v.Locked {
		return
	}
	switch dir {
	case DirectionIncrease:
		v.Value += v.Step
	case DirectionDecrease:
		v.Value -= v.Step
	}
	v.clamp()
}

// set overwrites the value regardless of the lock.
func (v *SensorValue) set(value int) {
	v.Value = value
	v.clamp()
}

func (v *SensorValue) clamp() {
	if v.Value < v.Min {
		v.Value = v.Min
	}
	if v.Value > v.Max {
		v.Value = v.Max
	}
}

// Randomizer is the source of randomness for Randomize.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Model holds the three simulated sensor values.
type Model struct {
	Temperature SensorValue
	AirQuality  SensorValue
	Entities    SensorValue

	// armed latches once any deflection exceeds the deadzone, so drift at
	// startup never moves a value.
	armed bool
	rng   Randomizer
}

// NewModel creates a Model at its startup values. A nil rng uses the
// process-wide generator.
func NewModel(rng Randomizer) *Model {
	if rng == nil {
		rng = globalRand{}
	}
	return &Model{
		Temperature: SensorValue{Value: 20, Min: 0, Max: 50, Step: 1},
		AirQuality:  SensorValue{Value: 80, Min: 0, Max: 100, Step: 10},
		Entities:    SensorValue{Value: 0, Min: 0, Max: 200, Step: 1},
		rng:         rng,
	}
}

func (m *Model) value(q Quantity) *SensorValue {
	switch q {
	case QuantityTemperature:
		return &m.Temperature
	case QuantityAirQuality:
		return &m.AirQuality
	case QuantityEntities:
		return &m.Entities
	}
	return nil
}

// Update moves q by one step in dir. Nothing moves until some update has
// reported a deflection beyond the deadzone. The latch is shared by all
// quantities. Classify reports DirectionNone inside the deadzone, so under
// Engine.Step the latch only gates callers that pass their own direction.
func (m *Model) Update(q Quantity, dir Direction, deadzoneExceeded bool) {
	if deadzoneExceeded {
		m.armed = true
	}
	if !m.armed {
		return
	}
	if v := m.value(q); v != nil {
		v.move(dir)
	}
}

// Armed reports whether deliberate movement has been seen since startup.
func (m *Model) Armed() bool {
	return m.armed
}

// Randomize sets the entity count to a uniform value in
// [RandomMin, RandomMin+RandomSpan] and returns it. Locks do not apply.
func (m *Model) Randomize() int {
	m.Entities.set(RandomMin + m.rng.IntN(RandomSpan+1))
	return m.Entities.Value
}

// ToggleLock flips the lock on q and returns the new state.
func (m *Model) ToggleLock(q Quantity) bool {
	v := m.value(q)
	if v == nil {
		return false
	}
	v.Locked = !v.Locked
	return v.Locked
}

// Locked reports whether q is locked.
func (m *Model) Locked(q Quantity) bool {
	if v := m.value(q); v != nil {
		return v.Locked
	}
	return false
}

// ResetTo sets q to value, clamped to its range. Locks do not apply.
func (m *Model) ResetTo(q Quantity, value int) {
	if v := m.value(q); v != nil {
		v.set(value)
	}
}

// Snapshot returns the current values.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Temperature: m.Temperature.Value,
		AirQuality:  m.AirQuality.Value,
		Entities:    m.Entities.Value,
	}
}
