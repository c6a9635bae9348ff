package display

import (
	"log"
	"sort"
	"strings"

	"github.com/sweeney/enviro-sensor/internal/logic"
)

// TextDisplay is a Display for boards without a panel: each Send logs the
// drawn text, but only when it differs from the previous Send.
type TextDisplay struct {
	logger  *log.Logger
	pending []placedText
	last    string
}

type placedText struct {
	text string
	x, y int
}

// NewTextDisplay creates a TextDisplay that logs to logger.
func NewTextDisplay(logger *log.Logger) *TextDisplay {
	return &TextDisplay{logger: logger}
}

// Fill discards any drawn text.
func (d *TextDisplay) Fill(on bool) {
	d.pending = d.pending[:0]
}

// DrawString records text at (x, y).
func (d *TextDisplay) DrawString(text string, x, y int) {
	d.pending = append(d.pending, placedText{text: text, x: x, y: y})
}

// DrawRect is ignored; only text is shown.
func (d *TextDisplay) DrawRect(x, y, w, h int, filled, on bool) {}

// Send logs the text top to bottom if it changed.
func (d *TextDisplay) Send() error {
	sort.SliceStable(d.pending, func(i, j int) bool {
		if d.pending[i].y != d.pending[j].y {
			return d.pending[i].y < d.pending[j].y
		}
		return d.pending[i].x < d.pending[j].x
	})
	parts := make([]string, len(d.pending))
	for i, p := range d.pending {
		parts[i] = p.text
	}
	out := strings.Join(parts, " | ")
	if out == d.last {
		return nil
	}
	d.last = out
	d.logger.Printf("display: %s", out)
	return nil
}

// TextMatrix is a Matrix that logs the pattern when it changes.
type TextMatrix struct {
	logger *log.Logger
	last   string
}

// NewTextMatrix creates a TextMatrix that logs to logger.
func NewTextMatrix(logger *log.Logger) *TextMatrix {
	return &TextMatrix{logger: logger}
}

// SetPattern logs mask as five rows of '#' and '.'.
func (m *TextMatrix) SetPattern(c logic.RGB, mask [logic.MatrixSize]bool) error {
	var b strings.Builder
	for i, on := range mask {
		if i > 0 && i%5 == 0 {
			b.WriteByte('/')
		}
		if on && c != (logic.RGB{}) {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	out := b.String()
	if out == m.last {
		return nil
	}
	m.last = out
	m.logger.Printf("matrix: %s", out)
	return nil
}
