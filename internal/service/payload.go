package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/ledger"
)

// JSON shapes shared by HTTP responses and event payloads. Currency is
// rendered with exactly two decimals and instants in UTC.

type SummaryItemPayload struct {
	LineItemID uuid.UUID `json:"line_item_id"`
	Name       string    `json:"name"`
	Quantity   int32     `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
	Percentage int32     `json:"percentage"`
	LineTotal  string    `json:"line_total"`
	Sent       bool      `json:"sent"`
	Note       string    `json:"note"`
}

type SummaryPayload struct {
	ID            uuid.UUID            `json:"id"`
	SeatID        uuid.UUID            `json:"seat_id"`
	SeatName      string               `json:"seat_name"`
	Note          string               `json:"note"`
	State         string               `json:"state"`
	Settled       bool                 `json:"settled"`
	Discount      string               `json:"discount"`
	Subtotal      string               `json:"subtotal"`
	GrandTotal    string               `json:"grand_total"`
	LineTotalMode string               `json:"line_total_mode"`
	CreatedAt     time.Time            `json:"created_at"`
	Items         []SummaryItemPayload `json:"items"`
}

func NewSummaryPayload(s ledger.Summary, mode ledger.LineTotalMode) SummaryPayload {
	items := make([]SummaryItemPayload, len(s.Items))
	for i, it := range s.Items {
		items[i] = SummaryItemPayload{
			LineItemID: it.LineItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  ledger.FormatMoney(it.UnitPrice),
			Percentage: it.Percentage,
			LineTotal:  ledger.FormatMoney(it.LineTotal),
			Sent:       it.Sent,
			Note:       it.Note,
		}
	}
	return SummaryPayload{
		ID:            s.OrderID,
		SeatID:        s.SeatID,
		SeatName:      s.SeatName,
		Note:          s.Note,
		State:         string(s.State()),
		Settled:       s.Settled,
		Discount:      ledger.FormatMoney(s.Discount),
		Subtotal:      ledger.FormatMoney(s.Subtotal),
		GrandTotal:    ledger.FormatMoney(s.GrandTotal),
		LineTotalMode: string(mode),
		CreatedAt:     s.CreatedAt.UTC(),
		Items:         items,
	}
}

type LineItemPayload struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	ItemID     uuid.UUID  `json:"item_id"`
	ItemName   string     `json:"item_name"`
	UnitPrice  string     `json:"unit_price"`
	Quantity   int32      `json:"quantity"`
	Percentage int32      `json:"percentage"`
	Sent       bool       `json:"sent"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func NewLineItemPayload(li ledger.LineItem) LineItemPayload {
	return LineItemPayload{
		ID:         li.ID,
		OrderID:    li.OrderID,
		ItemID:     li.ItemID,
		ItemName:   li.ItemName,
		UnitPrice:  ledger.FormatMoney(li.UnitPrice),
		Quantity:   li.Quantity,
		Percentage: li.Percentage,
		Sent:       li.Sent,
		SentAt:     li.SentAt,
		CreatedAt:  li.CreatedAt.UTC(),
	}
}

// LineItemChangePayload accompanies line_item.* events: the item plus the
// re-aggregated order it belongs to.
type LineItemChangePayload struct {
	LineItem LineItemPayload `json:"line_item"`
	Order    SummaryPayload  `json:"order"`
}

// OrderDeletedPayload accompanies order.deleted.
type OrderDeletedPayload struct {
	ID     uuid.UUID `json:"id"`
	SeatID uuid.UUID `json:"seat_id"`
}

type SeatPayload struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PositionX  int32     `json:"position_x"`
	PositionY  int32     `json:"position_y"`
	OpenOrders int       `json:"open_orders"`
}

func NewSeatPayload(o ledger.SeatOccupancy) SeatPayload {
	return SeatPayload{
		ID:         o.Seat.ID,
		Name:       o.Seat.Name,
		PositionX:  o.Seat.PositionX,
		PositionY:  o.Seat.PositionY,
		OpenOrders: o.OpenOrders,
	}
}

type AuditPayload struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Count     int              `json:"count"`
	Revenue   string           `json:"revenue"`
	Orders    []SummaryPayload `json:"orders"`
}

func NewAuditPayload(r AuditResult, mode ledger.LineTotalMode) AuditPayload {
	orders := make([]SummaryPayload, len(r.Report.Orders))
	for i, s := range r.Report.Orders {
		orders[i] = NewSummaryPayload(s, mode)
	}
	return AuditPayload{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Count:     r.Report.Count,
		Revenue:   ledger.FormatMoney(r.Report.Revenue),
		Orders:    orders,
	}
}

type TicketPayload struct {
	kitchen.Item
	Rank           int    `json:"rank"`
	Label          string `json:"label"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Elapsed        string `json:"elapsed"`
	Urgent         bool   `json:"urgent"`
	Status         string `json:"status"`
}

type KitchenViewPayload struct {
	BusinessDate string          `json:"business_date"`
	FetchedAt    *time.Time      `json:"fetched_at"`
	GeneratedAt  time.Time       `json:"generated_at"`
	PendingCount int             `json:"pending_count"`
	UrgentCount  int             `json:"urgent_count"`
	Stale        bool            `json:"stale"`
	LastError    string          `json:"last_error,omitempty"`
	Tickets      []TicketPayload `json:"tickets"`
}

func NewKitchenViewPayload(v kitchen.View) KitchenViewPayload {
	tickets := make([]TicketPayload, len(v.Tickets))
	for i, t := range v.Tickets {
		tickets[i] = TicketPayload{
			Item:           t.Item,
			Rank:           t.Rank,
			Label:          t.Label,
			ElapsedSeconds: t.ElapsedSeconds,
			Elapsed:        t.Elapsed,
			Urgent:         t.Urgent,
			Status:         string(t.Status),
		}
	}
	var fetched *time.Time
	if !v.FetchedAt.IsZero() {
		f := v.FetchedAt.UTC()
		fetched = &f
	}
	return KitchenViewPayload{
		BusinessDate: v.BusinessDate,
		FetchedAt:    fetched,
		GeneratedAt:  v.GeneratedAt.UTC(),
		PendingCount: v.PendingCount,
		UrgentCount:  v.UrgentCount,
		Stale:        v.Stale,
		LastError:    v.LastError,
		Tickets:      tickets,
	}
}
