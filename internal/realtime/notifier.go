package realtime

import "time"

// Notifier publishes events to interested clients. Implementations must be
// fire-and-forget: a Publish call never blocks the caller and its failures
// never surface into request handling.
type Notifier interface {
	Publish(scope string, event string, payload interface{})
}

// Event is the envelope delivered to subscribed clients
type Event struct {
	Event     string      `json:"event"`
	Scope     string      `json:"scope"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NoopNotifier discards all events. Used when no realtime transport is wired.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that drops everything
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// Publish does nothing
func (n NoopNotifier) Publish(scope string, event string, payload interface{}) {}
