package realtime

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMemoryBroker_DeliversToTopicSubscribers(t *testing.T) {
	broker := NewMemoryBroker()
	ctx := context.Background()

	sub, err := broker.Subscribe(ctx, NotificationTopic("u1"))
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	if err := broker.Emit(ctx, NotificationTopic("u1"), EventNotification, map[string]string{"title": "Upcoming appointment"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := broker.Emit(ctx, NotificationTopic("u2"), EventNotification, map[string]string{"title": "other user"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	select {
	case ev := <-sub.Events():
		if ev.Topic != "notifications:u1" || ev.Name != EventNotification {
			t.Fatalf("unexpected event: %+v", ev)
		}
		var payload map[string]string
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["title"] != "Upcoming appointment" {
			t.Errorf("unexpected payload: %v", payload)
		}
	default:
		t.Fatalf("expected an event")
	}

	select {
	case ev := <-sub.Events():
		t.Fatalf("did not expect another event, got %+v", ev)
	default:
	}
}

func TestMemoryBroker_EmitWithoutSubscribersIsDropped(t *testing.T) {
	broker := NewMemoryBroker()
	if err := broker.Emit(context.Background(), GroupTopic("g1"), EventGroupMessage, "hi"); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

func TestMemoryBroker_CloseUnsubscribes(t *testing.T) {
	broker := NewMemoryBroker()
	ctx := context.Background()

	sub, _ := broker.Subscribe(ctx, GroupTopic("g1"))
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := broker.Emit(ctx, GroupTopic("g1"), EventGroupMessage, "hi"); err != nil {
		t.Fatalf("emit after close: %v", err)
	}
	if _, open := <-sub.Events(); open {
		t.Errorf("expected events channel to be closed")
	}
}

func TestMemoryBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	broker := NewMemoryBroker()
	ctx := context.Background()
	sub, _ := broker.Subscribe(ctx, NotificationTopic("u1"))
	defer sub.Close()

	for i := 0; i < subscriberBuffer*2; i++ {
		if err := broker.Emit(ctx, NotificationTopic("u1"), EventNotification, i); err != nil {
			t.Fatalf("emit %d: %v", i, err)
		}
	}
	if got := len(sub.Events()); got != subscriberBuffer {
		t.Errorf("expected buffer to be full at %d, got %d", subscriberBuffer, got)
	}
}
