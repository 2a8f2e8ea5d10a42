// Package events carries change notifications from the service layer to
// connected terminals and to the optional message broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pos-manage/api/internal/enum"
)

// Event is one committed change. Payload is the JSON body terminals
// receive, typically the affected order summary or dispatch item.
type Event struct {
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// New marshals payload into an Event stamped with at (converted to UTC).
func New(eventType string, payload any, at time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: body, OccurredAt: at.UTC()}, nil
}

// Publisher delivers events. Implementations must be safe for concurrent
// use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RoomsFor lists the WebSocket rooms interested in an event type. Order
// level changes go to the floor; anything that adds, removes or flips a
// line item also reaches the kitchen.
func RoomsFor(eventType string) []string {
	switch {
	case eventType == enum.EventOrderDeleted:
		return []string{enum.RoomFloor, enum.RoomKitchen}
	case strings.HasPrefix(eventType, "line_item."):
		return []string{enum.RoomFloor, enum.RoomKitchen}
	default:
		return []string{enum.RoomFloor}
	}
}
