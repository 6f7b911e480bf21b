// Package realtime carries fire-and-forget events to connected clients,
// keyed by topic ("notifications:{userId}", "group:{groupId}").
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	EventNotification = "notification"
	EventGroupMessage = "group-message"
)

func NotificationTopic(userID string) string { return "notifications:" + userID }
func GroupTopic(groupID string) string       { return "group:" + groupID }

// Event is what subscribers receive.
type Event struct {
	Topic   string          `json:"topic"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Emitter publishes an event. Delivery is at-most-once: with no subscriber
// listening the event is simply dropped.
type Emitter interface {
	Emit(ctx context.Context, topic, event string, payload any) error
}

type Subscription interface {
	Events() <-chan Event
	Close() error
}

type Subscriber interface {
	Subscribe(ctx context.Context, topics ...string) (Subscription, error)
}

type Broker interface {
	Emitter
	Subscriber
}

func newEvent(topic, name string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("realtime: failed to encode %s payload: %w", name, err)
	}
	return Event{Topic: topic, Name: name, Payload: raw}, nil
}
