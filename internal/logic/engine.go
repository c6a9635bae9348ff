package logic

import (
	"fmt"
	"time"
)

// Pulse timings.
const (
	BuzzerPulseOn  = 100 * time.Millisecond
	BuzzerPulseOff = 100 * time.Millisecond
	MatrixBlinkOn  = 500 * time.Millisecond
	MatrixBlinkOff = 500 * time.Millisecond
)

// Config holds everything the engine needs to know about its inputs.
type Config struct {
	Debounce    time.Duration
	AlertWindow time.Duration

	CenterX  int
	CenterY  int
	RawMax   int
	Deadzone int

	ScreenWidth  int
	ScreenHeight int
	CursorSize   int

	Buttons map[InputID]Action
	Axes    map[Quantity]Axis
}

// DefaultConfig returns the stock joystick board configuration.
func DefaultConfig() Config {
	return Config{
		Debounce:     DefaultDebounce,
		AlertWindow:  AlertWindow,
		CenterX:      DefaultCenterX,
		CenterY:      DefaultCenterY,
		RawMax:       DefaultRawMax,
		Deadzone:     DefaultDeadzone,
		ScreenWidth:  128,
		ScreenHeight: 64,
		CursorSize:   8,
		Buttons: map[InputID]Action{
			InputButtonA:   ActionLockTemperature,
			InputButtonJoy: ActionLockAirQuality,
			InputButtonB:   ActionRandomize,
		},
		Axes: map[Quantity]Axis{
			QuantityTemperature: AxisY,
			QuantityAirQuality:  AxisX,
			QuantityEntities:    AxisNone,
		},
	}
}

// quantities fixes the update order.
var quantities = []Quantity{QuantityTemperature, QuantityAirQuality, QuantityEntities}

// Engine owns all alert engine state. The main loop is its only caller;
// edge callbacks hand events over through Input.Edges instead of touching
// the engine directly.
type Engine struct {
	cfg       Config
	debouncer *Debouncer
	model     *Model
	alert     *AlertMachine
	cursorX   AxisMapper
	cursorY   AxisMapper
	buzzer    Pulse
	blink     Pulse
}

// NewEngine validates cfg and creates an Engine. A nil rng uses the
// process-wide generator.
func NewEngine(cfg Config, rng Randomizer) (*Engine, error) {
	cursorX, err := NewAxisMapper(cfg.CenterX, cfg.RawMax, cfg.ScreenWidth-cfg.CursorSize)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	cursorY, err := NewAxisMapper(cfg.CenterY, cfg.RawMax, cfg.ScreenHeight-cfg.CursorSize)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	if cfg.Deadzone < 0 {
		return nil, fmt.Errorf("deadzone %d: must not be negative", cfg.Deadzone)
	}

	return &Engine{
		cfg:       cfg,
		debouncer: NewDebouncer(cfg.Debounce),
		model:     NewModel(rng),
		alert:     NewAlertMachine(cfg.AlertWindow),
		cursorX:   cursorX,
		cursorY:   cursorY,
		buzzer:    Pulse{On: BuzzerPulseOn, Off: BuzzerPulseOff},
		blink:     Pulse{On: MatrixBlinkOn, Off: MatrixBlinkOff},
	}, nil
}

// Step runs one control cycle and returns the frame to render along with
// any events for the host log.
func (e *Engine) Step(in Input) (Frame, []Event) {
	var events []Event

	for _, edge := range in.Edges {
		if !e.debouncer.Accept(edge.Source, edge.Time) {
			continue
		}
		if ev, ok := e.apply(e.cfg.Buttons[edge.Source], edge.Time); ok {
			events = append(events, ev)
		}
	}

	dirX, outX := Classify(in.X, e.cfg.CenterX, e.cfg.Deadzone)
	dirY, outY := Classify(in.Y, e.cfg.CenterY, e.cfg.Deadzone)
	for _, q := range quantities {
		switch e.cfg.Axes[q] {
		case AxisX:
			e.model.Update(q, dirX, outX)
		case AxisY:
			e.model.Update(q, dirY, outY)
		}
	}

	snap := e.model.Snapshot()
	events = append(events, e.alert.Evaluate(snap, in.Time)...)

	frame := Compose(snap, e.Locks(), e.alert.State())
	frame.Cursor = Rect{
		X: e.cursorX.Map(in.X),
		// screen y grows downward
		Y: e.cfg.ScreenHeight - e.cfg.CursorSize - e.cursorY.Map(in.Y),
		W: e.cfg.CursorSize,
		H: e.cfg.CursorSize,
	}
	if !e.buzzer.Level(in.Time, frame.Buzzer > 0) {
		frame.Buzzer = 0
	}
	frame.MatrixOn = e.blink.Level(in.Time, frame.MatrixBlink)

	return frame, events
}

func (e *Engine) apply(action Action, now time.Time) (Event, bool) {
	var q Quantity
	switch action {
	case ActionRandomize:
		v := e.model.Randomize()
		return Event{Time: now, Type: EventRandomize, Quantity: QuantityEntities, Value: v}, true
	case ActionLockTemperature:
		q = QuantityTemperature
	case ActionLockAirQuality:
		q = QuantityAirQuality
	case ActionLockEntities:
		q = QuantityEntities
	default:
		return Event{}, false
	}

	typ := EventUnlocked
	if e.model.ToggleLock(q) {
		typ = EventLocked
	}
	return Event{Time: now, Type: typ, Quantity: q, Value: e.model.value(q).Value}, true
}

// Model exposes the sensor values, mainly for tests and reset scaffolding.
func (e *Engine) Model() *Model {
	return e.model
}

// Alert returns the current alert state.
func (e *Engine) Alert() AlertState {
	return e.alert.State()
}

// Locks returns the current lock flags.
func (e *Engine) Locks() Locks {
	return Locks{
		Temperature: e.model.Temperature.Locked,
		AirQuality:  e.model.AirQuality.Locked,
		Entities:    e.model.Entities.Locked,
	}
}
