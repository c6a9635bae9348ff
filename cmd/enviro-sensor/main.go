// Command enviro-sensor runs the environmental alert engine on a Raspberry Pi
// sensor board: joystick and buttons in, LEDs, buzzer, display and matrix out.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/sweeney/enviro-sensor/internal/config"
	"github.com/sweeney/enviro-sensor/internal/display"
	"github.com/sweeney/enviro-sensor/internal/gpio"
	"github.com/sweeney/enviro-sensor/internal/input"
	"github.com/sweeney/enviro-sensor/internal/logic"
	"github.com/sweeney/enviro-sensor/internal/mqtt"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (empty for built-in defaults)")
	poll := flag.Duration("poll", 0, "Control loop interval (overrides config)")
	debounce := flag.Duration("debounce", 0, "Button debounce interval (overrides config)")
	broker := flag.String("broker", "", `MQTT broker for remote input, e.g. "tcp://192.168.1.200:1883" (overrides config)`)
	printAxes := flag.Bool("print-axes", false, "Print raw joystick readings and exit")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyFlags(&cfg, *poll, *debounce, *broker)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: invalid config: %v", err)
	}

	if err := run(cfg, *printAxes); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

// applyFlags overrides config values with any flags that were set.
func applyFlags(cfg *config.Config, poll, debounce time.Duration, broker string) {
	if poll > 0 {
		cfg.PollMs = int(poll / time.Millisecond)
	}
	if debounce > 0 {
		cfg.DebounceMs = int(debounce / time.Millisecond)
	}
	if broker != "" {
		cfg.MQTT.Broker = broker
	}
}

func run(cfg config.Config, printAxes bool) error {
	axes, err := gpio.NewIIOAxisReader(cfg.Joystick.IIOX, cfg.Joystick.IIOY)
	if err != nil {
		return fmt.Errorf("init joystick: %w", err)
	}
	defer axes.Close()

	// Print axes mode
	if printAxes {
		x, y, err := axes.Read()
		if err != nil {
			return fmt.Errorf("read joystick: %w", err)
		}
		fmt.Printf("X: %d (center %d), Y: %d (center %d)\n", x, cfg.Joystick.CenterX, y, cfg.Joystick.CenterY)
		return nil
	}

	ec, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	engine, err := logic.NewEngine(ec, nil)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	queue := input.NewQueue(input.DefaultCapacity)

	buttons, err := gpio.NewRealButtons(cfg.GPIO.Chip, cfg.ButtonPins(), queue, time.Now)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	act, err := gpio.NewRealActuators(cfg.GPIO.Chip, cfg.OutputPins())
	if err != nil {
		return fmt.Errorf("init outputs: %w", err)
	}
	defer act.Close()

	renderer := display.NewRenderer(
		display.NewTextDisplay(log.Default()),
		display.NewTextMatrix(log.Default()),
		act,
		cfg.Display.Width,
		cfg.Display.Height,
	)

	// Remote input is optional; the board works without a broker.
	if cfg.MQTT.Broker != "" {
		sub, err := mqtt.NewRealSubscriber(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, mqtt.NewHandler(queue, time.Now))
		if err != nil {
			log.Printf("mqtt: remote input disabled: %v", err)
		} else {
			defer sub.Close()
		}
	}

	log.Printf("started: poll=%v debounce=%dms window=%dms broker=%q",
		cfg.Poll(), cfg.DebounceMs, cfg.AlertWindowMs, cfg.MQTT.Broker)

	ticker := time.NewTicker(cfg.Poll())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(axes, queue, engine, renderer, time.Now, ticker.C, sigCh)
}

func runLoop(axes gpio.AxisReader, queue *input.Queue, engine *logic.Engine, renderer *display.Renderer, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	episodes := &episodeLog{newID: uuid.NewString}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if err := renderer.Blank(); err != nil {
				log.Printf("failed to blank outputs: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			x, y, err := axes.Read()
			if err != nil {
				// Edges stay queued for the next good read.
				log.Printf("axis read error: %v", err)
				continue
			}

			frame, events := engine.Step(logic.Input{
				X:     x,
				Y:     y,
				Edges: queue.Drain(),
				Time:  t,
			})

			for _, event := range events {
				episodes.record(event)
			}

			if err := renderer.Render(frame); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}

// episodeLog writes engine events to the log, tagging every line of an
// alert episode with the same ID.
type episodeLog struct {
	newID func() string
	id    string
}

func (l *episodeLog) record(event logic.Event) {
	switch event.Type {
	case logic.EventAlertStart:
		l.id = l.newID()
		log.Printf("alert %s: started (entities=%d)", l.id, event.Value)
	case logic.EventAlertExpired, logic.EventAlertCleared:
		log.Printf("alert %s: %s (entities=%d)", l.id, event.Type, event.Value)
		l.id = ""
	case logic.EventCriticalOn, logic.EventCriticalOff:
		log.Printf("alert %s: %s", l.id, event.Type)
	case logic.EventRandomize:
		log.Printf("randomize: entities=%d", event.Value)
	default:
		log.Printf("event: %s %s=%d", event.Type, event.Quantity, event.Value)
	}
}
