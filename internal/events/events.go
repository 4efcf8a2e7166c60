package events

import (
	"context"
	"time"
)

const (
	TypeOrderCreated      = "order.created"
	TypeSpacesDecremented = "activity.spaces_decremented"

	SchemaVersion = "1"
)

// Event is a domain fact published after the store write it describes.
type Event struct {
	Type    string
	Key     string
	Payload any
}

type OrderCreatedPayload struct {
	OrderID   string         `json:"order_id"`
	Order     map[string]any `json:"order"`
	CreatedAt time.Time      `json:"created_at"`
}

type SpacesDecrementedPayload struct {
	ActivityID   string    `json:"activity_id"`
	BookedSpaces int       `json:"booked_spaces"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func OrderCreated(orderID string, order map[string]any) Event {
	return Event{
		Type: TypeOrderCreated,
		Key:  orderID,
		Payload: OrderCreatedPayload{
			OrderID:   orderID,
			Order:     order,
			CreatedAt: time.Now().UTC(),
		},
	}
}

func SpacesDecremented(activityID string, bookedSpaces int) Event {
	return Event{
		Type: TypeSpacesDecremented,
		Key:  activityID,
		Payload: SpacesDecrementedPayload{
			ActivityID:   activityID,
			BookedSpaces: bookedSpaces,
			UpdatedAt:    time.Now().UTC(),
		},
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
