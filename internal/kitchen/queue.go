// Package kitchen derives the kitchen fulfillment worklist from the line
// items of one business date. Rank and elapsed time are never stored: they
// are recomputed from the last fetched snapshot and the current time.
package kitchen

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultUrgentAfter is the elapsed time a pending item must exceed to
	// be flagged urgent.
	DefaultUrgentAfter = 5 * time.Minute

	// DefaultRefreshInterval is how often the authoritative item list is
	// re-fetched.
	DefaultRefreshInterval = 30 * time.Second

	// DoneLabel replaces the rank of dispatched items.
	DoneLabel = "DONE"

	noElapsed = "---"
)

// Status classifies a ticket for display.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusUrgent  Status = "URGENT"
	StatusDone    Status = "DONE"
)

// Item is one line item as the kitchen sees it: joined with the fields of
// its order and seat needed for display. All instants are UTC.
type Item struct {
	LineItemID     uuid.UUID `json:"line_item_id"`
	OrderID        uuid.UUID `json:"order_id"`
	SeatID         uuid.UUID `json:"seat_id"`
	SeatName       string    `json:"seat_name"`
	ItemName       string    `json:"item_name"`
	Quantity       int32     `json:"quantity"`
	Note           string    `json:"note"`
	OrderCreatedAt time.Time `json:"order_created_at"`
	CreatedAt      time.Time `json:"created_at"`
	Sent           bool      `json:"sent"`
}

// Ticket is an Item placed in the worklist.
type Ticket struct {
	Item

	// Rank is 1-based among pending items; 0 for dispatched items.
	Rank           int
	Label          string
	ElapsedSeconds int64
	Elapsed        string
	Urgent         bool
	Status         Status
}

// Build orders items into the worklist: pending items first by ascending
// order creation time (ties broken by line item creation time, then id),
// labeled P1..Pn, followed by dispatched items labeled DONE. The input slice
// is not modified and its order does not affect the result.
func Build(items []Item, now time.Time, urgentAfter time.Duration) []Ticket {
	if urgentAfter <= 0 {
		urgentAfter = DefaultUrgentAfter
	}

	pending := make([]Item, 0, len(items))
	var done []Item
	for _, it := range items {
		if it.Sent {
			done = append(done, it)
		} else {
			pending = append(pending, it)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool { return before(pending[i], pending[j]) })
	sort.SliceStable(done, func(i, j int) bool { return before(done[i], done[j]) })

	tickets := make([]Ticket, 0, len(items))
	threshold := int64(urgentAfter / time.Second)
	for i, it := range pending {
		secs := ElapsedSeconds(it.OrderCreatedAt, now)
		t := Ticket{
			Item:           it,
			Rank:           i + 1,
			Label:          fmt.Sprintf("P%d", i+1),
			ElapsedSeconds: secs,
			Elapsed:        FormatElapsed(secs),
			Status:         StatusPending,
		}
		if secs > threshold {
			t.Urgent = true
			t.Status = StatusUrgent
		}
		tickets = append(tickets, t)
	}
	for _, it := range done {
		tickets = append(tickets, Ticket{
			Item:    it,
			Label:   DoneLabel,
			Elapsed: noElapsed,
			Status:  StatusDone,
		})
	}
	return tickets
}

func before(a, b Item) bool {
	if !a.OrderCreatedAt.Equal(b.OrderCreatedAt) {
		return a.OrderCreatedAt.Before(b.OrderCreatedAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.LineItemID.String() < b.LineItemID.String()
}

// ElapsedSeconds returns whole seconds from since to now, floored and
// clamped to 0 when the clocks disagree.
func ElapsedSeconds(since, now time.Time) int64 {
	d := now.Sub(since)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// FormatElapsed renders seconds as "Ns" below a minute, else "m:ss".
func FormatElapsed(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Counts returns the number of pending and urgent tickets. Urgent tickets
// are included in pending.
func Counts(tickets []Ticket) (pending, urgent int) {
	for _, t := range tickets {
		if t.Status == StatusDone {
			continue
		}
		pending++
		if t.Urgent {
			urgent++
		}
	}
	return pending, urgent
}
