// Package mqtt receives remote operator input over MQTT. A message on the
// input topic is treated exactly like a local button press.
package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sweeney/enviro-sensor/internal/input"
	"github.com/sweeney/enviro-sensor/internal/logic"
)

// DefaultTopic is the MQTT topic for remote button presses.
const DefaultTopic = "enviro/sensor/input"

// Subscriber receives remote input from a broker.
type Subscriber interface {
	// IsConnected reports whether the broker connection is up.
	IsConnected() bool

	// Close disconnects from the broker.
	Close() error
}

// InputPayload is the message body for a remote button press.
//
//	{"input": "a"}
type InputPayload struct {
	Input string `json:"input"`
}

var inputNames = map[string]logic.InputID{
	"a":   logic.InputButtonA,
	"b":   logic.InputButtonB,
	"joy": logic.InputButtonJoy,
}

// ParseInputPayload decodes a message body into the button it names.
// Both the short names ("a", "b", "joy") and the input IDs are accepted,
// case-insensitively.
func ParseInputPayload(b []byte) (logic.InputID, error) {
	var p InputPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return "", fmt.Errorf("decode input payload: %w", err)
	}

	name := strings.ToLower(strings.TrimSpace(p.Input))
	if id, ok := inputNames[name]; ok {
		return id, nil
	}
	for _, id := range inputNames {
		if strings.EqualFold(name, string(id)) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown input %q", p.Input)
}

// Handler turns input messages into input events.
type Handler struct {
	sink input.Sink
	now  func() time.Time
}

// NewHandler creates a Handler that pushes to sink, timestamped with now.
func NewHandler(sink input.Sink, now func() time.Time) *Handler {
	return &Handler{sink: sink, now: now}
}

// HandleMessage parses one message body and pushes the event.
// Malformed messages are logged and dropped.
func (h *Handler) HandleMessage(topic string, payload []byte) error {
	id, err := ParseInputPayload(payload)
	if err != nil {
		log.Printf("mqtt: ignoring message on %s: %v", topic, err)
		return err
	}
	h.sink.Push(logic.InputEvent{Source: id, Time: h.now()})
	return nil
}
