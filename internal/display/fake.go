package display

import (
	"errors"

	"github.com/sweeney/enviro-sensor/internal/logic"
)

// FakeDisplay records drawing calls for test assertions.
type FakeDisplay struct {
	// Strings and Rects hold what was drawn since the last Fill.
	Strings []string
	Rects   []logic.Rect

	// Sent holds the Strings of every successful Send.
	Sent [][]string

	// FailSends makes the next N calls to Send fail.
	FailSends int

	Fills int
}

// Fill clears recorded drawing.
func (f *FakeDisplay) Fill(on bool) {
	f.Fills++
	f.Strings = nil
	f.Rects = nil
}

// DrawString records text.
func (f *FakeDisplay) DrawString(text string, x, y int) {
	f.Strings = append(f.Strings, text)
}

// DrawRect records the rectangle.
func (f *FakeDisplay) DrawRect(x, y, w, h int, filled, on bool) {
	f.Rects = append(f.Rects, logic.Rect{X: x, Y: y, W: w, H: h})
}

// Send records the drawn text.
func (f *FakeDisplay) Send() error {
	if f.FailSends > 0 {
		f.FailSends--
		return errors.New("i2c nack")
	}
	f.Sent = append(f.Sent, append([]string(nil), f.Strings...))
	return nil
}

// Pattern is one SetPattern call.
type Pattern struct {
	Color logic.RGB
	Mask  [logic.MatrixSize]bool
}

// FakeMatrix records patterns.
type FakeMatrix struct {
	Patterns []Pattern

	// FailSets makes the next N calls to SetPattern fail.
	FailSets int
}

// SetPattern records the pattern.
func (f *FakeMatrix) SetPattern(c logic.RGB, mask [logic.MatrixSize]bool) error {
	if f.FailSets > 0 {
		f.FailSets--
		return errors.New("matrix write failed")
	}
	f.Patterns = append(f.Patterns, Pattern{Color: c, Mask: mask})
	return nil
}

// Last returns the most recent pattern, or the zero Pattern.
func (f *FakeMatrix) Last() Pattern {
	if len(f.Patterns) == 0 {
		return Pattern{}
	}
	return f.Patterns[len(f.Patterns)-1]
}
