package realtime

import (
	"context"
	"sync"
)

const subscriberBuffer = 64

// MemoryBroker fans events out to subscribers in the same process. It is
// used when no Redis address is configured.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[*memorySubscription]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySubscription]struct{})}
}

func (b *MemoryBroker) Emit(ctx context.Context, topic, event string, payload any) error {
	ev, err := newEvent(topic, event, payload)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[topic] {
		sub.deliver(ev)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, topics ...string) (Subscription, error) {
	sub := &memorySubscription{
		broker: b,
		topics: topics,
		events: make(chan Event, subscriberBuffer),
	}

	b.mu.Lock()
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[*memorySubscription]struct{})
		}
		b.subs[topic][sub] = struct{}{}
	}
	b.mu.Unlock()
	return sub, nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range sub.topics {
		delete(b.subs[topic], sub)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
	}
}

type memorySubscription struct {
	broker *MemoryBroker
	topics []string
	events chan Event

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
}

func (s *memorySubscription) Events() <-chan Event { return s.events }

// deliver drops the event when the subscriber is not keeping up.
func (s *memorySubscription) deliver(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		s.broker.remove(s)
		s.mu.Lock()
		s.closed = true
		close(s.events)
		s.mu.Unlock()
	})
	return nil
}
