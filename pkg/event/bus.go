// Package event provides the pub/sub bus that carries command lifecycle
// events, built on watermill.
package event

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog/log"
)

// anyType matches every event type.
const anyType EventType = ""

// Subscriber is a function that receives events.
type Subscriber func(event Event)

type subscription struct {
	seq   uint64
	topic EventType
	fn    Subscriber
}

func (s subscription) matches(t EventType) bool {
	return s.topic == anyType || s.topic == t
}

// Bus delivers events to direct subscribers and mirrors every event as a
// JSON watermill message on a gochannel topic named after the event type.
type Bus struct {
	pubsub *gochannel.GoChannel

	mu   sync.RWMutex
	seq  uint64
	subs []subscription

	done      chan struct{}
	closeOnce sync.Once
}

// NewBus creates a new event bus instance.
func NewBus() *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 100}, watermill.NopLogger{})
	return &Bus{pubsub: ch, done: make(chan struct{})}
}

// Subscribe registers fn for one event type and returns its unsubscribe
// function.
func (b *Bus) Subscribe(eventType EventType, fn Subscriber) func() {
	return b.add(eventType, fn)
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(fn Subscriber) func() {
	return b.add(anyType, fn)
}

func (b *Bus) add(topic EventType, fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isClosed() {
		return func() {}
	}
	b.seq++
	seq := b.seq
	b.subs = append(b.subs, subscription{seq: seq, topic: topic, fn: fn})
	return func() { b.remove(seq) }
}

func (b *Bus) remove(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.seq == seq })
}

// receivers snapshots the subscribers for t. Typed subscribers come before
// the catch-all ones.
func (b *Bus) receivers(t EventType) []Subscriber {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.isClosed() {
		return nil
	}
	var typed, all []Subscriber
	for _, s := range b.subs {
		switch {
		case s.topic == anyType:
			all = append(all, s.fn)
		case s.matches(t):
			typed = append(typed, s.fn)
		}
	}
	return append(typed, all...)
}

// Publish sends an event to all subscribers, each in its own goroutine.
func (b *Bus) Publish(event Event) {
	b.dispatch(event, func(fn Subscriber) { go fn(event) })
}

// PublishSync calls every subscriber in the current goroutine before
// returning.
func (b *Bus) PublishSync(event Event) {
	b.dispatch(event, func(fn Subscriber) { fn(event) })
}

func (b *Bus) dispatch(event Event, call func(Subscriber)) {
	if b.isClosed() {
		return
	}
	for _, fn := range b.receivers(event.Type) {
		call(fn)
	}
	if err := b.forward(event); err != nil {
		log.Debug().Err(err).Str("type", string(event.Type)).Msg("event not mirrored")
	}
}

// forward publishes the JSON form of event on the watermill channel.
func (b *Bus) forward(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.pubsub.Publish(string(event.Type), message.NewMessage(watermill.NewULID(), payload))
}

func (b *Bus) isClosed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Close drops all subscribers and closes the watermill channel. Closing
// twice is a no-op.
func (b *Bus) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.mu.Lock()
		close(b.done)
		b.subs = nil
		b.mu.Unlock()
		err = b.pubsub.Close()
	})
	return err
}

// PubSub returns the underlying watermill GoChannel. Messages on it carry
// the JSON encoding of Event.
func (b *Bus) PubSub() *gochannel.GoChannel {
	return b.pubsub
}

// Done is closed when the bus is closed.
func (b *Bus) Done() <-chan struct{} {
	return b.done
}
