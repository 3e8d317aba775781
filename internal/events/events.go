package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the concept lifecycle engine. Subscribers
// (notifications, analytics, paywall prompts) react to these; the events
// themselves carry no business logic.
const (
	// EventConceptMastered fires when the scheduler promotes a concept to
	// the mastered phase.
	EventConceptMastered = "concept.mastered"

	// EventDailyGoalCompleted fires when a user's graded answers for the
	// day first cross the configured daily goal.
	EventDailyGoalCompleted = "progress.daily_goal_completed"

	// EventQuotaExceeded fires when a keep decision is rejected by the
	// daily quota, typically prompting an upgrade offer.
	EventQuotaExceeded = "triage.quota_exceeded"
)

// Event is a notification published by the engine to its collaborators.
// The payload is serialized JSON specific to the event type.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Event* constants
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// OccurredAt is the timestamp when the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}, occurredAt time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		Payload:    payloadBytes,
		OccurredAt: occurredAt,
	}, nil
}

// ConceptMasteredPayload is the payload of EventConceptMastered.
type ConceptMasteredPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	ConceptID    int64     `json:"concept_id"`
	Direction    string    `json:"direction"`
	IntervalDays float64   `json:"interval_days"`
}

// DailyGoalCompletedPayload is the payload of EventDailyGoalCompleted.
type DailyGoalCompletedPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD, local day
	TotalAnswers int       `json:"total_answers"`
}

// QuotaExceededPayload is the payload of EventQuotaExceeded.
type QuotaExceededPayload struct {
	UserID    uuid.UUID `json:"user_id"`
	PackageID string    `json:"package_id"`
	Quota     int       `json:"quota"`
	Premium   bool      `json:"premium"`
}

// Handler defines an interface for components that can handle events.
// Handlers must not carry business logic that the engine depends on; a
// failing handler never rolls back the state change that produced the event.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// Emitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type Emitter interface {
	// Emit publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	Emit(ctx context.Context, event *Event) error
}
