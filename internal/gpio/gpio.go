// Package gpio provides joystick, button, and actuator I/O with hardware abstraction.
// The real implementation uses the Linux GPIO character device and IIO ADC sysfs.
// The fake implementation allows testing without hardware.
package gpio

// AxisReader samples the two joystick axes.
type AxisReader interface {
	// Read returns the raw ADC values of the X and Y axes.
	Read() (x, y int, err error)

	// Close releases ADC resources.
	Close() error
}

// Channel names an actuator output.
type Channel string

const (
	ChannelRed    Channel = "red"
	ChannelGreen  Channel = "green"
	ChannelBlue   Channel = "blue"
	ChannelBuzzer Channel = "buzzer"
)

// Actuators drives the indicator LED and buzzer.
type Actuators interface {
	// SetPWMLevel sets a PWM channel to 0..65535.
	SetPWMLevel(ch Channel, level uint16) error

	// SetDigital switches a plain on/off channel.
	SetDigital(ch Channel, on bool) error

	// Close releases output resources, leaving every channel off.
	Close() error
}

// Default pin definitions (BCM numbering)
const (
	DefaultPinButtonA   = 5
	DefaultPinButtonB   = 6
	DefaultPinButtonJoy = 22
	DefaultPinGreen     = 11
	DefaultPinBlue      = 12
	DefaultPinRed       = 13
	DefaultPinBuzzer    = 21
)

// DefaultChip is the GPIO character device used when none is configured.
const DefaultChip = "gpiochip0"
