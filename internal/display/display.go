// Package display renders engine frames onto the character display, the
// indicator matrix, and the LED/buzzer outputs.
package display

import (
	"fmt"
	"log"

	"github.com/sweeney/enviro-sensor/internal/gpio"
	"github.com/sweeney/enviro-sensor/internal/logic"
)

// Display is a monochrome pixel display with an explicit flush.
type Display interface {
	// Fill sets every pixel; Fill(false) clears the buffer.
	Fill(on bool)

	// DrawString draws text with its top-left corner at (x, y).
	DrawString(text string, x, y int)

	// DrawRect draws a rectangle outline, or a solid one if filled.
	DrawRect(x, y, w, h int, filled, on bool)

	// Send transmits the buffer to the panel.
	Send() error
}

// Matrix is the 5x5 indicator matrix.
type Matrix interface {
	// SetPattern lights the LEDs set in mask with color c. Row-major.
	SetPattern(c logic.RGB, mask [logic.MatrixSize]bool) error
}

// Text layout in display pixels.
const (
	textLeft   = 8
	textTop    = 6
	lineHeight = 10
)

// Renderer applies frames to the collaborators.
type Renderer struct {
	disp   Display
	matrix Matrix
	act    gpio.Actuators
	width  int
	height int
}

// NewRenderer creates a Renderer for a width x height display.
func NewRenderer(disp Display, matrix Matrix, act gpio.Actuators, width, height int) *Renderer {
	return &Renderer{
		disp:   disp,
		matrix: matrix,
		act:    act,
		width:  width,
		height: height,
	}
}

// Render pushes one frame to every collaborator. Each collaborator call is
// retried once; a second failure is returned.
func (r *Renderer) Render(f logic.Frame) error {
	if err := r.renderOutputs(f); err != nil {
		return err
	}

	r.disp.Fill(false)
	for i := 0; i < f.Border; i++ {
		r.disp.DrawRect(i, i, r.width-2*i, r.height-2*i, false, true)
	}
	for i, line := range f.Lines {
		r.disp.DrawString(line, textLeft, textTop+i*lineHeight)
	}
	r.disp.DrawRect(f.Cursor.X, f.Cursor.Y, f.Cursor.W, f.Cursor.H, true, true)
	if err := retryOnce("display send", r.disp.Send); err != nil {
		return err
	}

	var mask [logic.MatrixSize]bool
	color := logic.RGB{}
	if f.MatrixBlink && f.MatrixOn {
		mask = logic.DangerPattern
		color = logic.Red
	}
	return retryOnce("matrix", func() error {
		return r.matrix.SetPattern(color, mask)
	})
}

// Blank switches every output off and clears the display and matrix.
func (r *Renderer) Blank() error {
	if err := r.renderOutputs(logic.Frame{}); err != nil {
		return err
	}
	r.disp.Fill(false)
	if err := retryOnce("display send", r.disp.Send); err != nil {
		return err
	}
	return retryOnce("matrix", func() error {
		return r.matrix.SetPattern(logic.RGB{}, [logic.MatrixSize]bool{})
	})
}

func (r *Renderer) renderOutputs(f logic.Frame) error {
	if err := retryOnce("red", func() error {
		return r.act.SetPWMLevel(gpio.ChannelRed, f.Color.R)
	}); err != nil {
		return err
	}
	if err := retryOnce("green", func() error {
		return r.act.SetDigital(gpio.ChannelGreen, f.Color.G > 0)
	}); err != nil {
		return err
	}
	if err := retryOnce("blue", func() error {
		return r.act.SetPWMLevel(gpio.ChannelBlue, f.Color.B)
	}); err != nil {
		return err
	}
	return retryOnce("buzzer", func() error {
		return r.act.SetPWMLevel(gpio.ChannelBuzzer, f.Buzzer)
	})
}

func retryOnce(op string, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	log.Printf("render: %s failed, retrying: %v", op, err)
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
