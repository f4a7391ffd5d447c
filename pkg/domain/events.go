package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventDieEvaluated  EventType = "die_evaluated"
	EventRollEvaluated EventType = "roll_evaluated"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	JourneyID string    `json:"journey_id"`
}

// DieEvent is emitted after a single die has been evaluated.
type DieEvent struct {
	EventBase
	RollID string    `json:"roll_id"`
	Result DieResult `json:"result"`
}

// RollEvent is emitted after every die of a roll has been evaluated.
type RollEvent struct {
	EventBase
	Result RollResult `json:"result"`
	Next   []string   `json:"next"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnDieEvaluated  func(context.Context, *DieEvent)
	OnRollEvaluated func(context.Context, *RollEvent)
}
