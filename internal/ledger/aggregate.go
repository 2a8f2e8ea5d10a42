package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryItem is the display record of one line item inside a summary.
type SummaryItem struct {
	LineItemID uuid.UUID
	Name       string
	Quantity   int32
	UnitPrice  decimal.Decimal
	Percentage int32
	LineTotal  decimal.Decimal
	Sent       bool
	Note       string
}

// Summary is the billing state of one order reconstructed from rows.
type Summary struct {
	OrderID    uuid.UUID
	SeatID     uuid.UUID
	SeatName   string
	Note       string
	Discount   decimal.Decimal
	Settled    bool
	CreatedAt  time.Time
	Subtotal   decimal.Decimal
	GrandTotal decimal.Decimal
	Items      []SummaryItem
}

func (s Summary) State() State {
	if s.Settled {
		return StateSettled
	}
	return StateOpen
}

// SentCount returns how many of the summary's items were dispatched.
func (s Summary) SentCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Sent {
			n++
		}
	}
	return n
}

// Aggregator folds flat ledger rows into per-order summaries.
type Aggregator struct {
	mode LineTotalMode
}

// NewAggregator creates an Aggregator using the given line total mode.
// An empty mode means LineTotalNet.
func NewAggregator(mode LineTotalMode) *Aggregator {
	if mode == "" {
		mode = LineTotalNet
	}
	return &Aggregator{mode: mode}
}

func (a *Aggregator) Mode() LineTotalMode { return a.mode }

// Aggregate groups rows by order id. Order-level fields come from the first
// row that introduces each order; every row carrying a line item adds its
// line total to the subtotal. Summaries are ordered by creation time, then
// order id.
//
// A line item whose order is never introduced yields ErrOrphanLineItem.
func (a *Aggregator) Aggregate(rows []Row) ([]Summary, error) {
	index := make(map[uuid.UUID]int)
	var out []Summary

	for _, r := range rows {
		if !r.HasOrder {
			continue
		}
		if _, seen := index[r.OrderID]; seen {
			continue
		}
		index[r.OrderID] = len(out)
		out = append(out, Summary{
			OrderID:   r.OrderID,
			SeatID:    r.SeatID,
			SeatName:  r.SeatName,
			Note:      r.Note,
			Discount:  r.Discount,
			Settled:   r.Settled,
			CreatedAt: r.CreatedAt,
			Subtotal:  decimal.Zero,
			Items:     []SummaryItem{},
		})
	}

	for _, r := range rows {
		if !r.LineItemID.Valid {
			continue
		}
		i, ok := index[r.OrderID]
		if !ok {
			return nil, fmt.Errorf("%w: line item %s references unknown order %s",
				ErrOrphanLineItem, r.LineItemID.UUID, r.OrderID)
		}
		if err := ValidateQuantity(r.Quantity); err != nil {
			return nil, fmt.Errorf("line item %s: %w", r.LineItemID.UUID, err)
		}
		if err := ValidatePercentage(r.Percentage); err != nil {
			return nil, fmt.Errorf("line item %s: %w", r.LineItemID.UUID, err)
		}

		s := &out[i]
		lineTotal := LineTotal(r.UnitPrice, r.Quantity, r.Percentage, a.mode)
		s.Subtotal = s.Subtotal.Add(lineTotal)
		s.Items = append(s.Items, SummaryItem{
			LineItemID: r.LineItemID.UUID,
			Name:       r.ItemName,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			Percentage: r.Percentage,
			LineTotal:  lineTotal,
			Sent:       r.Sent,
			Note:       s.Note,
		})
	}

	for i := range out {
		out[i].GrandTotal = GrandTotal(out[i].Subtotal, out[i].Discount)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].OrderID.String() < out[j].OrderID.String()
	})
	return out, nil
}

// AggregateOne aggregates rows that belong to a single order.
func (a *Aggregator) AggregateOne(orderID uuid.UUID, rows []Row) (Summary, error) {
	summaries, err := a.Aggregate(rows)
	if err != nil {
		return Summary{}, err
	}
	for _, s := range summaries {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return Summary{}, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
}
