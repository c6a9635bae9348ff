package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/enviro-sensor/internal/gpio"
	"github.com/sweeney/enviro-sensor/internal/logic"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultEngineMatchesLogicDefaults(t *testing.T) {
	ec, err := Default().Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	want := logic.DefaultConfig()

	if ec.Debounce != want.Debounce {
		t.Errorf("Debounce: got %v, want %v", ec.Debounce, want.Debounce)
	}
	if ec.AlertWindow != want.AlertWindow {
		t.Errorf("AlertWindow: got %v, want %v", ec.AlertWindow, want.AlertWindow)
	}
	if ec.CenterX != want.CenterX || ec.CenterY != want.CenterY || ec.RawMax != want.RawMax || ec.Deadzone != want.Deadzone {
		t.Errorf("joystick: got %+v", ec)
	}
	for id, action := range want.Buttons {
		if ec.Buttons[id] != action {
			t.Errorf("button %s: got %q, want %q", id, ec.Buttons[id], action)
		}
	}
	for q, axis := range want.Axes {
		if ec.Axes[q] != axis {
			t.Errorf("axis for %s: got %q, want %q", q, ec.Axes[q], axis)
		}
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PollMs != 50 {
		t.Errorf("PollMs: got %d, want 50", cfg.PollMs)
	}
	if cfg.Poll() != 50*time.Millisecond {
		t.Errorf("Poll: got %v", cfg.Poll())
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
poll_ms: 100
joystick:
  center_x: 2048
  deadzone: 60
mqtt:
  broker: tcp://localhost:1883
buttons:
  b: lock_entity_count
axes:
  entity_count: x
  air_quality: none
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.PollMs != 100 {
		t.Errorf("PollMs: got %d, want 100", cfg.PollMs)
	}
	if cfg.Joystick.CenterX != 2048 {
		t.Errorf("CenterX: got %d, want 2048", cfg.Joystick.CenterX)
	}
	// Untouched fields keep their defaults
	if cfg.Joystick.CenterY != logic.DefaultCenterY {
		t.Errorf("CenterY: got %d, want default", cfg.Joystick.CenterY)
	}
	if cfg.MQTT.Topic != "enviro/sensor/input" {
		t.Errorf("MQTT.Topic: got %q", cfg.MQTT.Topic)
	}

	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if ec.Buttons[logic.InputButtonB] != logic.ActionLockEntities {
		t.Errorf("button b: got %q", ec.Buttons[logic.InputButtonB])
	}
	// Map entries merge into the defaults
	if ec.Buttons[logic.InputButtonA] != logic.ActionLockTemperature {
		t.Errorf("button a: got %q", ec.Buttons[logic.InputButtonA])
	}
	if ec.Axes[logic.QuantityEntities] != logic.AxisX {
		t.Errorf("entity axis: got %q", ec.Axes[logic.QuantityEntities])
	}
	if ec.Axes[logic.QuantityAirQuality] != logic.AxisNone {
		t.Errorf("air quality axis: got %q", ec.Axes[logic.QuantityAirQuality])
	}
}

func TestParseUnbindButton(t *testing.T) {
	cfg, err := Parse([]byte("buttons:\n  joy: none\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ec, err := cfg.Engine()
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	if _, ok := ec.Buttons[logic.InputButtonJoy]; ok {
		t.Error("joy button should be unbound")
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := Parse([]byte("pol_ms: 100\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseRejectsTrailingDocument(t *testing.T) {
	_, err := Parse([]byte("poll_ms: 100\n---\npoll_ms: 200\n"))
	if err == nil || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("expected trailing document error, got %v", err)
	}
}

func TestParseRejectsTrailingDocumentAnyKeys(t *testing.T) {
	_, err := Parse([]byte("poll_ms: 100\n---\nnot_a_field: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("expected trailing document error, got %v", err)
	}
}

func TestParseAllowsTrailingComments(t *testing.T) {
	cfg, err := Parse([]byte("poll_ms: 80\n# tuned for the bench rig\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.PollMs != 80 {
		t.Errorf("PollMs: got %d, want 80", cfg.PollMs)
	}
}

func TestValidatePollBudgetWarning(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}()

	for _, ms := range []int{PollMinMs, 75, PollMaxMs} {
		cfg := Default()
		cfg.PollMs = ms
		if err := cfg.Validate(); err != nil {
			t.Fatalf("poll_ms %d: %v", ms, err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("expected no warning inside the budget, got %q", buf.String())
	}

	for _, ms := range []int{10, 250} {
		buf.Reset()
		cfg := Default()
		cfg.PollMs = ms
		if err := cfg.Validate(); err != nil {
			t.Fatalf("poll_ms %d should only warn: %v", ms, err)
		}
		if !strings.Contains(buf.String(), "outside") {
			t.Errorf("poll_ms %d: expected warning, got %q", ms, buf.String())
		}
	}
}

func TestValidateRejectsZeroWidthAxis(t *testing.T) {
	cases := map[string]func(*Config){
		"center x zero":   func(c *Config) { c.Joystick.CenterX = 0 },
		"center y at max": func(c *Config) { c.Joystick.CenterY = c.Joystick.RawMax },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !strings.Contains(err.Error(), "joystick") {
			t.Errorf("%s: error should mention joystick: %v", name, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero poll":         func(c *Config) { c.PollMs = 0 },
		"negative debounce": func(c *Config) { c.DebounceMs = -1 },
		"zero alert window": func(c *Config) { c.AlertWindowMs = 0 },
		"zero display":      func(c *Config) { c.Display.Width = 0 },
		"negative cursor":   func(c *Config) { c.Display.CursorSize = -1 },
		"broker no topic":   func(c *Config) { c.MQTT.Broker = "tcp://x:1883"; c.MQTT.Topic = "" },
		"unknown button":    func(c *Config) { c.Buttons["c"] = "randomize" },
		"unknown action":    func(c *Config) { c.Buttons["a"] = "explode" },
		"unknown quantity":  func(c *Config) { c.Axes["humidity"] = "x" },
		"unknown axis":      func(c *Config) { c.Axes["temperature"] = "z" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enviro.yaml")
	if err := os.WriteFile(path, []byte("debounce_ms: 300\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DebounceMs != 300 {
		t.Errorf("DebounceMs: got %d, want 300", cfg.DebounceMs)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPins(t *testing.T) {
	cfg := Default()

	buttons := cfg.ButtonPins()
	if buttons[logic.InputButtonJoy] != gpio.DefaultPinButtonJoy {
		t.Errorf("joy pin: got %d", buttons[logic.InputButtonJoy])
	}
	outputs := cfg.OutputPins()
	if len(outputs) != 4 {
		t.Errorf("expected 4 outputs, got %d", len(outputs))
	}
	if outputs[gpio.ChannelBuzzer] != gpio.DefaultPinBuzzer {
		t.Errorf("buzzer pin: got %d", outputs[gpio.ChannelBuzzer])
	}
}
