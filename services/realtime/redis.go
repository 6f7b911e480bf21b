package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisBroker publishes events over Redis pub/sub so that every API replica
// can reach clients connected to any other replica.
type RedisBroker struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBroker(client *redis.Client, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{client: client, logger: logger}
}

func (b *RedisBroker) Emit(ctx context.Context, topic, event string, payload any) error {
	ev, err := newEvent(topic, event, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("realtime: failed to encode event: %w", err)
	}
	if err := b.client.Publish(ctx, topic, data).Err(); err != nil {
		return fmt.Errorf("realtime: failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, topics ...string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, topics...)
	// Wait for the subscription to be confirmed before handing it out.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("realtime: failed to subscribe: %w", err)
	}

	sub := &redisSubscription{ps: ps, events: make(chan Event, subscriberBuffer)}
	go sub.pump(b.logger)
	return sub, nil
}

type redisSubscription struct {
	ps        *redis.PubSub
	events    chan Event
	closeOnce sync.Once
}

func (s *redisSubscription) pump(logger *zap.Logger) {
	defer close(s.events)
	for msg := range s.ps.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			logger.Warn("dropping malformed realtime event", zap.String("channel", msg.Channel), zap.Error(err))
			continue
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}

func (s *redisSubscription) Events() <-chan Event { return s.events }

func (s *redisSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() { err = s.ps.Close() })
	return err
}
