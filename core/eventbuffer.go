package pipeline

import (
	"sync"

	"github.com/koscakluka/voicepipe/core/events"
)

// eventBuffer decouples event producers from the consumer iterating over a
// pipeline run. Producers append; the single consumer pulls through Events,
// blocking until more events arrive or the buffer is closed.
type eventBuffer struct {
	mu             sync.Mutex
	events         []events.Event
	eventsConsumed int
	closed         bool
	updateSignal   chan struct{}
}

func newEventBuffer() *eventBuffer {
	return &eventBuffer{
		updateSignal: make(chan struct{}, 1),
	}
}

func (b *eventBuffer) Emit(event events.Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.events = append(b.events, event)
	b.mu.Unlock()
	b.signalUpdate()
}

// Close marks the buffer complete. Events already emitted are still
// drained by the consumer; further emits are dropped.
func (b *eventBuffer) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.signalUpdate()
}

// Events is a pull iterator over the buffered events. It yields events in
// emission order and returns once the buffer is closed and drained.
func (b *eventBuffer) Events(yield func(events.Event) bool) {
	for {
		b.mu.Lock()
		if b.eventsConsumed < len(b.events) {
			event := b.events[b.eventsConsumed]
			b.eventsConsumed++
			b.mu.Unlock()
			if !yield(event) {
				return
			}
			continue
		}

		if b.closed {
			b.mu.Unlock()
			return
		}

		b.mu.Unlock()
		<-b.updateSignal
	}
}

func (b *eventBuffer) signalUpdate() {
	select {
	case b.updateSignal <- struct{}{}:
	default:
	}
}
