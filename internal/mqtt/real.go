package mqtt

import (
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// RealSubscriber receives input from an actual MQTT broker.
type RealSubscriber struct {
	client paho.Client
}

// NewRealSubscriber connects to broker and subscribes to topic. The
// subscription is re-established on every reconnect.
func NewRealSubscriber(broker, clientID, topic string, h *Handler) (*RealSubscriber, error) {
	onMessage := func(_ paho.Client, m paho.Message) {
		h.HandleMessage(m.Topic(), m.Payload())
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c paho.Client) {
			token := c.Subscribe(topic, 1, onMessage)
			if !token.WaitTimeout(5 * time.Second) {
				log.Printf("mqtt: subscribe %s: timeout", topic)
				return
			}
			if err := token.Error(); err != nil {
				log.Printf("mqtt: subscribe %s: %v", topic, err)
				return
			}
			log.Printf("mqtt: subscribed to %s", topic)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	client := paho.NewClient(opts)
	if err := connect(client, 10*time.Second); err != nil {
		return nil, err
	}

	return &RealSubscriber{client: client}, nil
}

// connect waits up to timeout for the first connection. On failure the
// client is disconnected so its background retries cannot subscribe later.
func connect(client paho.Client, timeout time.Duration) error {
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		client.Disconnect(0)
		return fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		client.Disconnect(0)
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// IsConnected reports whether the client is connected.
func (s *RealSubscriber) IsConnected() bool {
	return s.client.IsConnected()
}

// Close disconnects from the broker.
func (s *RealSubscriber) Close() error {
	s.client.Disconnect(1000) // 1 second timeout
	return nil
}
