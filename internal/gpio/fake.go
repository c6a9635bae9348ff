package gpio

import "errors"

// FakeAxisReader is a test double that returns scripted axis values.
type FakeAxisReader struct {
	// Samples contains scripted (x, y) values to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample represents a single raw joystick reading.
type Sample struct {
	X int
	Y int
}

// NewFakeAxisReader creates a FakeAxisReader with the given samples.
func NewFakeAxisReader(samples []Sample) *FakeAxisReader {
	return &FakeAxisReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeAxisReader) Read() (int, int, error) {
	if f.ReadError != nil {
		return 0, 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.X, sample.Y, nil
}

// Close marks the reader as closed.
func (f *FakeAxisReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeAxisReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeActuators records the last level written to each channel.
type FakeActuators struct {
	PWM     map[Channel]uint16
	Digital map[Channel]bool

	// Writes counts every call, PWM and digital.
	Writes int

	// SetError, if set, will be returned by every setter.
	SetError error

	Closed bool
}

// NewFakeActuators creates a FakeActuators with every channel off.
func NewFakeActuators() *FakeActuators {
	return &FakeActuators{
		PWM:     make(map[Channel]uint16),
		Digital: make(map[Channel]bool),
	}
}

// SetPWMLevel records the level.
func (f *FakeActuators) SetPWMLevel(ch Channel, level uint16) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes++
	f.PWM[ch] = level
	return nil
}

// SetDigital records the state.
func (f *FakeActuators) SetDigital(ch Channel, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes++
	f.Digital[ch] = on
	return nil
}

// Close marks the actuators as closed.
func (f *FakeActuators) Close() error {
	f.Closed = true
	return nil
}
