package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType names what happened to a vehicle's construction state.
type EventType string

const (
	EventInserted EventType = "inserted"
	EventFlushed  EventType = "flushed"
)

// StateEvent is the JSON payload published for every state change.
type StateEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	VehicleID  string    `json:"vehicleId"`
	Owner      string    `json:"owner,omitempty"`
	Keys       []string  `json:"keys,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewStateEvent stamps a new event with a random ID and the current time.
func NewStateEvent(eventType EventType, vehicleID, owner string, keys []string) StateEvent {
	return StateEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		VehicleID:  vehicleID,
		Owner:      owner,
		Keys:       keys,
		OccurredAt: time.Now().UTC(),
	}
}
