// Package logic contains the pure environmental alert engine.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// InputID identifies a digital push-button input.
type InputID string

const (
	InputButtonA   InputID = "BUTTON_A"
	InputButtonB   InputID = "BUTTON_B"
	InputButtonJoy InputID = "BUTTON_JOY"
)

// InputEvent is a single falling edge on a digital input.
type InputEvent struct {
	Source InputID
	Time   time.Time
}

// Quantity identifies one of the simulated sensor values.
type Quantity string

const (
	QuantityTemperature Quantity = "temperature"
	QuantityAirQuality  Quantity = "air_quality"
	QuantityEntities    Quantity = "entity_count"
)

// Action is what an accepted button press does.
type Action string

const (
	ActionLockTemperature Action = "lock_temperature"
	ActionLockAirQuality  Action = "lock_air_quality"
	ActionLockEntities    Action = "lock_entity_count"
	ActionRandomize       Action = "randomize"
)

// Axis names a joystick axis.
type Axis string

const (
	AxisNone Axis = "none"
	AxisX    Axis = "x"
	AxisY    Axis = "y"
)

// EventType represents something the host log should hear about.
type EventType string

const (
	EventAlertStart   EventType = "ALERT_START"
	EventAlertExpired EventType = "ALERT_EXPIRED"
	EventAlertCleared EventType = "ALERT_CLEARED"
	EventCriticalOn   EventType = "CRITICAL_ON"
	EventCriticalOff  EventType = "CRITICAL_OFF"
	EventLocked       EventType = "LOCKED"
	EventUnlocked     EventType = "UNLOCKED"
	EventRandomize    EventType = "RANDOMIZE"
)

// Event is emitted by the engine on state transitions.
type Event struct {
	Time     time.Time
	Type     EventType
	Quantity Quantity // set for lock and randomize events
	Value    int
}

// Input is one control-loop sample.
type Input struct {
	X     int // raw ADC value of the X axis
	Y     int // raw ADC value of the Y axis
	Edges []InputEvent
	Time  time.Time
}

// Snapshot is a point-in-time copy of all three sensor values.
type Snapshot struct {
	Temperature int
	AirQuality  int
	Entities    int
}
