package service

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pos-manage/api/internal/database"
	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/ledger"
)

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}

func timestamptzPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func toLedgerOrder(o database.Order, seatName string) ledger.Order {
	return ledger.Order{
		ID:        o.ID,
		SeatID:    o.SeatID,
		SeatName:  seatName,
		Note:      o.Note,
		Discount:  numericToDecimal(o.Discount),
		Settled:   o.Settled,
		SettledAt: timestamptzPtr(o.SettledAt),
		CreatedAt: o.CreatedAt.UTC(),
		UpdatedAt: o.UpdatedAt.UTC(),
	}
}

func listRowToLedgerOrder(o database.ListOrdersRow) ledger.Order {
	return ledger.Order{
		ID:        o.ID,
		SeatID:    o.SeatID,
		SeatName:  o.SeatName,
		Note:      o.Note,
		Discount:  numericToDecimal(o.Discount),
		Settled:   o.Settled,
		SettledAt: timestamptzPtr(o.SettledAt),
		CreatedAt: o.CreatedAt.UTC(),
		UpdatedAt: o.UpdatedAt.UTC(),
	}
}

func toLedgerLineItem(li database.LineItem) ledger.LineItem {
	return ledger.LineItem{
		ID:         li.ID,
		OrderID:    li.OrderID,
		ItemID:     li.ItemID,
		ItemName:   li.ItemName,
		UnitPrice:  numericToDecimal(li.UnitPrice),
		Quantity:   li.Quantity,
		Percentage: li.Percentage,
		Sent:       li.Sent,
		SentAt:     timestamptzPtr(li.SentAt),
		CreatedAt:  li.CreatedAt.UTC(),
	}
}

func toLedgerSeat(s database.Seat) ledger.Seat {
	return ledger.Seat{
		ID:        s.ID,
		Name:      s.Name,
		PositionX: s.PositionX,
		PositionY: s.PositionY,
		CreatedAt: s.CreatedAt.UTC(),
	}
}

// toLedgerRows maps the LEFT JOIN result onto the aggregator's row stream.
// The order side of the join is always present.
func toLedgerRows(rows []database.ListLedgerRowsRow) []ledger.Row {
	out := make([]ledger.Row, 0, len(rows))
	for _, r := range rows {
		row := ledger.Row{
			OrderID:   r.ID,
			HasOrder:  true,
			SeatID:    r.SeatID,
			SeatName:  r.SeatName,
			Note:      r.Note,
			Discount:  numericToDecimal(r.Discount),
			Settled:   r.Settled,
			CreatedAt: r.CreatedAt.UTC(),
		}
		if r.LineItemID.Valid {
			row.LineItemID.UUID = r.LineItemID.Bytes
			row.LineItemID.Valid = true
			row.ItemName = r.ItemName.String
			row.UnitPrice = numericToDecimal(r.UnitPrice)
			row.Quantity = r.Quantity.Int32
			row.Percentage = r.Percentage.Int32
			row.Sent = r.Sent.Bool
		}
		out = append(out, row)
	}
	return out
}

func toKitchenItem(r database.ListDispatchItemsBetweenRow) kitchen.Item {
	return kitchen.Item{
		LineItemID:     r.ID,
		OrderID:        r.OrderID,
		SeatID:         r.SeatID,
		SeatName:       r.SeatName,
		ItemName:       r.ItemName,
		Quantity:       r.Quantity,
		Note:           r.Note,
		OrderCreatedAt: r.OrderCreatedAt.UTC(),
		CreatedAt:      r.CreatedAt.UTC(),
		Sent:           r.Sent,
	}
}
