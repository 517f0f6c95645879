package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=events.go -destination=../../testutil/mock/shared/events.go -package=sharedmock

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationModified  EventType = "reservation.modified"
	EventSessionPackOpened    EventType = "session_pack.opened"
	EventMaterialAttached     EventType = "material.attached"
)

// Event is published after the unit of work that produced it has committed.
type Event struct {
	Type        EventType         `json:"type"`
	AggregateID uuid.UUID         `json:"aggregate_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
