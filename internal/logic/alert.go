package logic

import "time"

// Alert thresholds.
const (
	EntityThreshold     = 50 // alert while entity count is above this
	CriticalTemperature = 40 // critical needs temperature above this
	CriticalAirQuality  = 70 // critical needs air quality below this
	AlertWindow         = 5 * time.Second
)

// AlertState is the observable alert status.
// Invariant: StartedAt is non-zero iff Active.
type AlertState struct {
	Active    bool
	StartedAt time.Time
	Critical  bool
}

// AlertMachine tracks the alert lifecycle.
//
// Inactive -> Active when the entity count exceeds EntityThreshold.
// Active -> Inactive when the window elapses or the count drops back.
// An alert that timed out stays down until the count has dropped at least
// once, otherwise it would restart on the very next cycle.
type AlertMachine struct {
	window  time.Duration
	state   AlertState
	expired bool
}

// NewAlertMachine creates an inactive AlertMachine with the given window.
func NewAlertMachine(window time.Duration) *AlertMachine {
	return &AlertMachine{window: window}
}

// Evaluate advances the state machine with the current values and returns
// any transitions.
func (a *AlertMachine) Evaluate(s Snapshot, now time.Time) []Event {
	triggered := s.Entities > EntityThreshold
	if !triggered {
		a.expired = false
	}

	var events []Event

	if a.state.Active {
		switch {
		case now.Sub(a.state.StartedAt) >= a.window:
			events = append(events, a.deactivate(s, now)...)
			a.expired = true
			events = append(events, Event{Time: now, Type: EventAlertExpired, Value: s.Entities})
		case !triggered:
			events = append(events, a.deactivate(s, now)...)
			events = append(events, Event{Time: now, Type: EventAlertCleared, Value: s.Entities})
		}
	} else if triggered && !a.expired {
		a.state.Active = true
		a.state.StartedAt = now
		events = append(events, Event{Time: now, Type: EventAlertStart, Value: s.Entities})
	}

	critical := a.state.Active && isCritical(s)
	if critical != a.state.Critical {
		a.state.Critical = critical
		typ := EventCriticalOff
		if critical {
			typ = EventCriticalOn
		}
		events = append(events, Event{Time: now, Type: typ, Value: s.Entities})
	}

	return events
}

// deactivate ends the episode and returns CRITICAL_OFF if the flag was set.
func (a *AlertMachine) deactivate(s Snapshot, now time.Time) []Event {
	a.state.Active = false
	a.state.StartedAt = time.Time{}
	if !a.state.Critical {
		return nil
	}
	a.state.Critical = false
	return []Event{{Time: now, Type: EventCriticalOff, Value: s.Entities}}
}

// State returns the current alert state.
func (a *AlertMachine) State() AlertState {
	return a.state
}

func isCritical(s Snapshot) bool {
	return s.Temperature > CriticalTemperature &&
		s.AirQuality < CriticalAirQuality &&
		s.Entities > EntityThreshold
}
