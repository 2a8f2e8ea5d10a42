package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State is the settlement state of an order. Open -> Settled is the only
// transition and Settled is terminal.
type State string

const (
	StateOpen    State = "OPEN"
	StateSettled State = "SETTLED"
)

// Seat is a table or counter position on the floor plan.
type Seat struct {
	ID        uuid.UUID
	Name      string
	PositionX int32
	PositionY int32
	CreatedAt time.Time
}

// Order is a tab opened for a seat. Discount is an order-level flat amount.
type Order struct {
	ID        uuid.UUID
	SeatID    uuid.UUID
	SeatName  string
	Note      string
	Discount  decimal.Decimal
	Settled   bool
	SettledAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State derives the settlement state from the settled flag.
func (o Order) State() State {
	if o.Settled {
		return StateSettled
	}
	return StateOpen
}

// LineItem is one sold item on an order. ItemName and UnitPrice are
// snapshots taken when the item was added and never follow menu changes.
// Percentage is the share of the price actually charged (100 = full price).
type LineItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	UnitPrice  decimal.Decimal
	Quantity   int32
	Percentage int32
	Sent       bool
	SentAt     *time.Time
	CreatedAt  time.Time
}

// Row is one element of the flat stream the aggregator folds. A row either
// introduces an order without line items (LineItemID invalid) or carries one
// line item joined with its order's fields. HasOrder is false when the order
// side of the join is missing.
type Row struct {
	OrderID   uuid.UUID
	HasOrder  bool
	SeatID    uuid.UUID
	SeatName  string
	Note      string
	Discount  decimal.Decimal
	Settled   bool
	CreatedAt time.Time

	LineItemID uuid.NullUUID
	ItemName   string
	UnitPrice  decimal.Decimal
	Quantity   int32
	Percentage int32
	Sent       bool
}

// RowsFor builds the row stream for orders whose line items were fetched
// separately. Orders without items still produce a placeholder row.
func RowsFor(orders []Order, items []LineItem) []Row {
	rows := make([]Row, 0, len(orders)+len(items))
	known := make(map[uuid.UUID]Order, len(orders))
	for _, o := range orders {
		known[o.ID] = o
		rows = append(rows, orderRow(o))
	}
	for _, li := range items {
		row := Row{OrderID: li.OrderID}
		if o, ok := known[li.OrderID]; ok {
			row = orderRow(o)
		}
		row.LineItemID = uuid.NullUUID{UUID: li.ID, Valid: true}
		row.ItemName = li.ItemName
		row.UnitPrice = li.UnitPrice
		row.Quantity = li.Quantity
		row.Percentage = li.Percentage
		row.Sent = li.Sent
		rows = append(rows, row)
	}
	return rows
}

func orderRow(o Order) Row {
	return Row{
		OrderID:   o.ID,
		HasOrder:  true,
		SeatID:    o.SeatID,
		SeatName:  o.SeatName,
		Note:      o.Note,
		Discount:  o.Discount,
		Settled:   o.Settled,
		CreatedAt: o.CreatedAt,
	}
}
