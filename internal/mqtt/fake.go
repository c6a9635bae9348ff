package mqtt

// FakeSubscriber delivers messages straight to a Handler for tests.
type FakeSubscriber struct {
	handler *Handler

	// Topic is reported with delivered messages.
	Topic string

	// Connected controls the return value of IsConnected.
	Connected bool

	// Closed tracks if Close was called.
	Closed bool

	// Rejected counts messages the handler refused.
	Rejected int
}

// NewFakeSubscriber creates a connected FakeSubscriber feeding h.
func NewFakeSubscriber(h *Handler) *FakeSubscriber {
	return &FakeSubscriber{handler: h, Topic: DefaultTopic, Connected: true}
}

// Deliver simulates a message arriving from the broker.
func (f *FakeSubscriber) Deliver(payload string) {
	if f.Closed {
		return
	}
	if err := f.handler.HandleMessage(f.Topic, []byte(payload)); err != nil {
		f.Rejected++
	}
}

// IsConnected reports whether the fake subscriber is "connected".
func (f *FakeSubscriber) IsConnected() bool {
	return f.Connected
}

// Close marks the subscriber as closed.
func (f *FakeSubscriber) Close() error {
	f.Closed = true
	f.Connected = false
	return nil
}
