package logic

import (
	"strings"
	"testing"
	"time"
)

func TestComposeTemperatureBands(t *testing.T) {
	cases := []struct {
		temp int
		want RGB
	}{
		{20, RGB{B: PWMMax}},
		{33, RGB{B: PWMMax}},
		{34, RGB{G: PWMMax, B: PWMMax}},
		{38, RGB{G: PWMMax, B: PWMMax}},
		{39, RGB{R: PWMMax, B: PWMMax}},
	}
	for _, tc := range cases {
		f := Compose(Snapshot{Temperature: tc.temp, AirQuality: 80}, Locks{}, AlertState{})
		if f.Color != tc.want {
			t.Errorf("temp %d: got %+v, want %+v", tc.temp, f.Color, tc.want)
		}
		if f.Buzzer != 0 {
			t.Errorf("temp %d: buzzer should be off with good air", tc.temp)
		}
	}
}

func TestComposePoorAirQuality(t *testing.T) {
	f := Compose(Snapshot{Temperature: 20, AirQuality: 40}, Locks{}, AlertState{})

	if f.Color != Red {
		t.Errorf("Color: got %+v, want red only", f.Color)
	}
	if f.Buzzer != BuzzerNormal {
		t.Errorf("Buzzer: got %d, want %d", f.Buzzer, BuzzerNormal)
	}
	if f.MatrixBlink {
		t.Error("matrix should not blink outside a critical alert")
	}
}

func TestComposeAirQualityBoundary(t *testing.T) {
	f := Compose(Snapshot{Temperature: 20, AirQuality: 50}, Locks{}, AlertState{})
	if f.Color != (RGB{B: PWMMax}) {
		t.Errorf("Color at 50: got %+v, want blue", f.Color)
	}
	if f.Buzzer != 0 {
		t.Error("buzzer should be off at 50")
	}
}

func TestComposeLines(t *testing.T) {
	f := Compose(Snapshot{Temperature: 25, AirQuality: 90, Entities: 7}, Locks{Temperature: true}, AlertState{})

	want := []string{"Temp: 25 C [L]", "Air: 90", "Ents: 7"}
	if len(f.Lines) != len(want) {
		t.Fatalf("Lines: got %q, want %q", f.Lines, want)
	}
	for i := range want {
		if f.Lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, f.Lines[i], want[i])
		}
	}
	if f.Border != 3 {
		t.Errorf("Border: got %d, want 3 while locked", f.Border)
	}
}

func TestComposeActiveAlertLine(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f := Compose(Snapshot{Temperature: 25, AirQuality: 90, Entities: 60}, Locks{}, AlertState{Active: true, StartedAt: now})

	if f.Lines[len(f.Lines)-1] != "ALERT" {
		t.Errorf("last line: got %q, want ALERT", f.Lines[len(f.Lines)-1])
	}
	if f.Border != 1 {
		t.Errorf("Border: got %d, want 1", f.Border)
	}
}

func TestComposeCriticalOverridesBands(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	alert := AlertState{Active: true, StartedAt: now, Critical: true}
	f := Compose(Snapshot{Temperature: 41, AirQuality: 65, Entities: 55}, Locks{}, alert)

	if f.Color != Red {
		t.Errorf("Color: got %+v, want red only", f.Color)
	}
	if f.Buzzer != BuzzerCritical {
		t.Errorf("Buzzer: got %d, want %d", f.Buzzer, BuzzerCritical)
	}
	if !f.MatrixBlink {
		t.Error("expected MatrixBlink")
	}
	if f.Lines[0] != "CRITICAL ALERT" {
		t.Errorf("first line: got %q", f.Lines[0])
	}
	text := strings.Join(f.Lines, "\n")
	for _, want := range []string{"Temp: 41 C", "Air: 65", "Ents: 55"} {
		if !strings.Contains(text, want) {
			t.Errorf("display missing %q: %q", want, f.Lines)
		}
	}
}

func TestDangerPatternIsX(t *testing.T) {
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			want := row == col || row+col == 4
			if DangerPattern[row*5+col] != want {
				t.Errorf("(%d,%d): got %v, want %v", row, col, DangerPattern[row*5+col], want)
			}
		}
	}
}
