package testutils

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// RecordingBus is an events.EventBus that keeps every published event and
// delivers nothing
type RecordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

// NewRecordingBus creates an empty recording bus
func NewRecordingBus() *RecordingBus {
	return &RecordingBus{}
}

// Publish records e
func (b *RecordingBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
	return nil
}

// Subscribe is a no-op
func (b *RecordingBus) Subscribe(_ string, _ events.Handler) string { return "recording" }

// SubscribeFunc is a no-op
func (b *RecordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "recording"
}

// Unsubscribe is a no-op
func (b *RecordingBus) Unsubscribe(_ string) error { return nil }

// Clear is a no-op
func (b *RecordingBus) Clear(_ string) {}

// ClearAll is a no-op
func (b *RecordingBus) ClearAll() {}

// Events returns the recorded events of eventType in publication order
func (b *RecordingBus) Events(eventType string) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []events.Event
	for _, e := range b.published {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of eventType were recorded
func (b *RecordingBus) Count(eventType string) int {
	return len(b.Events(eventType))
}

// Reset forgets everything recorded so far
func (b *RecordingBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

var _ events.EventBus = (*RecordingBus)(nil)
