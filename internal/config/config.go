// Package config loads the daemon's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/enviro-sensor/internal/gpio"
	"github.com/sweeney/enviro-sensor/internal/logic"
)

// Config is the top-level YAML configuration.
type Config struct {
	PollMs        int `yaml:"poll_ms"`
	DebounceMs    int `yaml:"debounce_ms"`
	AlertWindowMs int `yaml:"alert_window_ms"`

	GPIO     GPIOConfig     `yaml:"gpio"`
	Joystick JoystickConfig `yaml:"joystick"`
	Display  DisplayConfig  `yaml:"display"`
	MQTT     MQTTConfig     `yaml:"mqtt"`

	// Buttons maps a button ("a", "b", "joy") to an action.
	Buttons map[string]string `yaml:"buttons"`

	// Axes maps a quantity to the joystick axis that drives it.
	Axes map[string]string `yaml:"axes"`
}

// GPIOConfig holds BCM pin numbers.
type GPIOConfig struct {
	Chip      string `yaml:"chip"`
	ButtonA   int    `yaml:"button_a"`
	ButtonB   int    `yaml:"button_b"`
	ButtonJoy int    `yaml:"button_joy"`
	Red       int    `yaml:"red"`
	Green     int    `yaml:"green"`
	Blue      int    `yaml:"blue"`
	Buzzer    int    `yaml:"buzzer"`
}

type JoystickConfig struct {
	CenterX  int    `yaml:"center_x"`
	CenterY  int    `yaml:"center_y"`
	RawMax   int    `yaml:"raw_max"`
	Deadzone int    `yaml:"deadzone"`
	IIOX     string `yaml:"iio_x"`
	IIOY     string `yaml:"iio_y"`
}

type DisplayConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	CursorSize int `yaml:"cursor_size"`
}

// MQTTConfig configures the remote operator input. An empty broker disables it.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

var buttonNames = map[string]logic.InputID{
	"a":   logic.InputButtonA,
	"b":   logic.InputButtonB,
	"joy": logic.InputButtonJoy,
}

const actionNone = "none"

var actionNames = map[string]logic.Action{
	string(logic.ActionLockTemperature): logic.ActionLockTemperature,
	string(logic.ActionLockAirQuality):  logic.ActionLockAirQuality,
	string(logic.ActionLockEntities):    logic.ActionLockEntities,
	string(logic.ActionRandomize):       logic.ActionRandomize,
}

var quantityNames = map[string]logic.Quantity{
	string(logic.QuantityTemperature): logic.QuantityTemperature,
	string(logic.QuantityAirQuality):  logic.QuantityAirQuality,
	string(logic.QuantityEntities):    logic.QuantityEntities,
}

var axisNames = map[string]logic.Axis{
	string(logic.AxisNone): logic.AxisNone,
	string(logic.AxisX):    logic.AxisX,
	string(logic.AxisY):    logic.AxisY,
}

// Default returns a fully-populated Config for the stock board.
func Default() Config {
	return Config{
		PollMs:        50,
		DebounceMs:    int(logic.DefaultDebounce / time.Millisecond),
		AlertWindowMs: int(logic.AlertWindow / time.Millisecond),
		GPIO: GPIOConfig{
			Chip:      gpio.DefaultChip,
			ButtonA:   gpio.DefaultPinButtonA,
			ButtonB:   gpio.DefaultPinButtonB,
			ButtonJoy: gpio.DefaultPinButtonJoy,
			Red:       gpio.DefaultPinRed,
			Green:     gpio.DefaultPinGreen,
			Blue:      gpio.DefaultPinBlue,
			Buzzer:    gpio.DefaultPinBuzzer,
		},
		Joystick: JoystickConfig{
			CenterX:  logic.DefaultCenterX,
			CenterY:  logic.DefaultCenterY,
			RawMax:   logic.DefaultRawMax,
			Deadzone: logic.DefaultDeadzone,
			IIOX:     gpio.DefaultIIOX,
			IIOY:     gpio.DefaultIIOY,
		},
		Display: DisplayConfig{
			Width:      128,
			Height:     64,
			CursorSize: 8,
		},
		MQTT: MQTTConfig{
			Topic:    "enviro/sensor/input",
			ClientID: "enviro-sensor",
		},
		Buttons: map[string]string{
			"a":   string(logic.ActionLockTemperature),
			"joy": string(logic.ActionLockAirQuality),
			"b":   string(logic.ActionRandomize),
		},
		Axes: map[string]string{
			string(logic.QuantityTemperature): string(logic.AxisY),
			string(logic.QuantityAirQuality):  string(logic.AxisX),
			string(logic.QuantityEntities):    string(logic.AxisNone),
		},
	}
}

// LoadFile reads a YAML config file on top of Default.
// Unknown fields are rejected to catch typos. Entries under buttons and
// axes are merged into the defaults; map a button to "none" to unbind it.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML on top of Default.
func Parse(b []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Only whitespace/comments are allowed after the document.
	if err := dec.Decode(new(yaml.Node)); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// Poll returns the control loop period.
func (c Config) Poll() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// Control loop period budget. Periods outside it are allowed but logged.
const (
	PollMinMs = 50
	PollMaxMs = 100
)

// Validate checks everything the daemon needs at startup.
func (c Config) Validate() error {
	if c.PollMs <= 0 {
		return fmt.Errorf("poll_ms %d: must be > 0", c.PollMs)
	}
	if c.PollMs < PollMinMs || c.PollMs > PollMaxMs {
		log.Printf("config: poll_ms %d is outside the %d-%dms loop budget", c.PollMs, PollMinMs, PollMaxMs)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms %d: must not be negative", c.DebounceMs)
	}
	if c.AlertWindowMs <= 0 {
		return fmt.Errorf("alert_window_ms %d: must be > 0", c.AlertWindowMs)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display %dx%d: must be positive", c.Display.Width, c.Display.Height)
	}
	if c.Display.CursorSize < 0 {
		return fmt.Errorf("display.cursor_size %d: must not be negative", c.Display.CursorSize)
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return errors.New("mqtt.topic: required when mqtt.broker is set")
	}
	ec, err := c.Engine()
	if err != nil {
		return err
	}
	if _, err := logic.NewEngine(ec, nil); err != nil {
		return fmt.Errorf("joystick: %w", err)
	}
	return nil
}

// Engine converts the file form into the engine's config.
func (c Config) Engine() (logic.Config, error) {
	ec := logic.Config{
		Debounce:     time.Duration(c.DebounceMs) * time.Millisecond,
		AlertWindow:  time.Duration(c.AlertWindowMs) * time.Millisecond,
		CenterX:      c.Joystick.CenterX,
		CenterY:      c.Joystick.CenterY,
		RawMax:       c.Joystick.RawMax,
		Deadzone:     c.Joystick.Deadzone,
		ScreenWidth:  c.Display.Width,
		ScreenHeight: c.Display.Height,
		CursorSize:   c.Display.CursorSize,
		Buttons:      make(map[logic.InputID]logic.Action),
		Axes:         make(map[logic.Quantity]logic.Axis),
	}

	for name, action := range c.Buttons {
		id, ok := buttonNames[name]
		if !ok {
			return logic.Config{}, fmt.Errorf("buttons: unknown button %q", name)
		}
		if action == actionNone {
			continue
		}
		a, ok := actionNames[action]
		if !ok {
			return logic.Config{}, fmt.Errorf("buttons.%s: unknown action %q", name, action)
		}
		ec.Buttons[id] = a
	}

	for name, axis := range c.Axes {
		q, ok := quantityNames[name]
		if !ok {
			return logic.Config{}, fmt.Errorf("axes: unknown quantity %q", name)
		}
		a, ok := axisNames[axis]
		if !ok {
			return logic.Config{}, fmt.Errorf("axes.%s: unknown axis %q", name, axis)
		}
		ec.Axes[q] = a
	}

	return ec, nil
}

// ButtonPins returns the input pin for each button.
func (c Config) ButtonPins() map[logic.InputID]int {
	return map[logic.InputID]int{
		logic.InputButtonA:   c.GPIO.ButtonA,
		logic.InputButtonB:   c.GPIO.ButtonB,
		logic.InputButtonJoy: c.GPIO.ButtonJoy,
	}
}

// OutputPins returns the output pin for each actuator channel.
func (c Config) OutputPins() map[gpio.Channel]int {
	return map[gpio.Channel]int{
		gpio.ChannelRed:    c.GPIO.Red,
		gpio.ChannelGreen:  c.GPIO.Green,
		gpio.ChannelBlue:   c.GPIO.Blue,
		gpio.ChannelBuzzer: c.GPIO.Buzzer,
	}
}
