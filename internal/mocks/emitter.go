package mocks

import (
	"context"
	"sync"

	"github.com/ali-aktas/HocaLingo-sub002/internal/events"
)

// RecordingEmitter captures emitted events for assertions.
type RecordingEmitter struct {
	mu      sync.Mutex
	Emitted []*events.Event

	// FailWith, when set, is returned from Emit after recording.
	FailWith error
}

var _ events.Emitter = (*RecordingEmitter)(nil)

func (r *RecordingEmitter) Emit(ctx context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Emitted = append(r.Emitted, event)
	return r.FailWith
}

// Events returns a copy of the captured events.
func (r *RecordingEmitter) Events() []*events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*events.Event, len(r.Emitted))
	copy(out, r.Emitted)
	return out
}
