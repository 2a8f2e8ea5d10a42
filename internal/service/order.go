package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pos-manage/api/internal/businessday"
	"github.com/pos-manage/api/internal/database"
	"github.com/pos-manage/api/internal/enum"
	"github.com/pos-manage/api/internal/events"
	"github.com/pos-manage/api/internal/ledger"
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// LedgerStore defines the DB methods the order service needs.
// Satisfied by *database.Queries (and its WithTx variant).
type LedgerStore interface {
	GetSeat(ctx context.Context, id uuid.UUID) (database.Seat, error)
	ListSeats(ctx context.Context) ([]database.Seat, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)

	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error)
	SettleOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	TouchOrder(ctx context.Context, id uuid.UUID) error
	DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error)
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.ListOrdersRow, error)
	ListLedgerRows(ctx context.Context, arg database.ListLedgerRowsParams) ([]database.ListLedgerRowsRow, error)

	GetLineItem(ctx context.Context, id uuid.UUID) (database.LineItem, error)
	GetLineItemForUpdate(ctx context.Context, id uuid.UUID) (database.LineItem, error)
	CreateLineItem(ctx context.Context, arg database.CreateLineItemParams) (database.LineItem, error)
	UpdateLineItemPercentage(ctx context.Context, arg database.UpdateLineItemPercentageParams) (database.LineItem, error)
	DeleteLineItem(ctx context.Context, id uuid.UUID) (int64, error)
	CountSentLineItems(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// NewLedgerStore creates a LedgerStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewLedgerStore func(db database.DBTX) LedgerStore

// Options carries the collaborators shared by the services. Zero values
// take defaults: net line totals, UTC, the real clock, no publisher and the
// standard logger.
type Options struct {
	Aggregator *ledger.Aggregator
	Location   *time.Location
	Clock      clockwork.Clock
	Publisher  events.Publisher
	Logger     logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Aggregator == nil {
		o.Aggregator = ledger.NewAggregator(ledger.LineTotalNet)
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Publisher == nil {
		o.Publisher = events.Nop{}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// CreateOrderRequest is the input for opening a tab. A nil Discount means 0.
type CreateOrderRequest struct {
	SeatID   uuid.UUID
	Note     string
	Discount *decimal.Decimal
}

// EditOrderRequest changes only the fields that are set.
type EditOrderRequest struct {
	SeatID   *uuid.UUID
	Note     *string
	Discount *decimal.Decimal
}

// AddLineItemRequest adds a menu item to an order. A nil UnitPrice takes
// the menu price; a nil Percentage means 100.
type AddLineItemRequest struct {
	OrderID    uuid.UUID
	ItemID     uuid.UUID
	Quantity   int32
	UnitPrice  *decimal.Decimal
	Percentage *int32
}

// LineItemResult is a changed line item and its order after the change.
type LineItemResult struct {
	Item  ledger.LineItem
	Order ledger.Summary
}

// OrderFilter narrows ListSummaries. BusinessDate (YYYY-MM-DD) selects
// orders created during that day in the business time zone.
type OrderFilter struct {
	Settled      *bool
	SeatID       *uuid.UUID
	BusinessDate string
}

// AuditRequest selects settled orders created between two business dates,
// both inclusive. An empty EndDate means StartDate.
type AuditRequest struct {
	StartDate  string
	EndDate    string
	SortKey    string
	Descending bool
}

// AuditResult is the report with the resolved date range.
type AuditResult struct {
	StartDate string
	EndDate   string
	Report    ledger.AuditReport
}

// OrderService handles order business logic: the settlement state machine
// on top of the line-item store.
type OrderService struct {
	pool     TxBeginner
	store    LedgerStore
	newStore NewLedgerStore

	agg       *ledger.Aggregator
	loc       *time.Location
	clock     clockwork.Clock
	publisher events.Publisher
	log       logrus.FieldLogger
}

// NewOrderService creates a new OrderService. store serves the read paths;
// mutations run on newStore(tx).
func NewOrderService(pool TxBeginner, store LedgerStore, newStore NewLedgerStore, opts Options) *OrderService {
	opts = opts.withDefaults()
	return &OrderService{
		pool:      pool,
		store:     store,
		newStore:  newStore,
		agg:       opts.Aggregator,
		loc:       opts.Location,
		clock:     opts.Clock,
		publisher: opts.Publisher,
		log:       opts.Logger.WithField("component", "order_service"),
	}
}

// LineTotalMode reports how summaries compute line totals.
func (s *OrderService) LineTotalMode() ledger.LineTotalMode {
	return s.agg.Mode()
}

// CreateOrder opens a new tab for an existing seat.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (ledger.Summary, error) {
	if err := ledger.ValidateSeatRef(req.SeatID); err != nil {
		return ledger.Summary{}, err
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if err := ledger.ValidateDiscount(discount); err != nil {
		return ledger.Summary{}, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.Summary{}, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if err := requireSeat(ctx, store, req.SeatID); err != nil {
		return ledger.Summary{}, err
	}

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		SeatID:   req.SeatID,
		Note:     req.Note,
		Discount: decimalToNumeric(discount),
	})
	if err != nil {
		if isForeignKeyViolation(err, "orders_seat_id_fkey") {
			return ledger.Summary{}, fmt.Errorf("%w: seat %s does not exist", ledger.ErrValidation, req.SeatID)
		}
		return ledger.Summary{}, storeErr("create order", err)
	}

	summary, err := s.summaryTx(ctx, store, order.ID)
	if err != nil {
		return ledger.Summary{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ledger.Summary{}, storeErr("commit tx", err)
	}

	s.publish(ctx, enum.EventOrderCreated, s.summaryPayload(summary))
	return summary, nil
}

// EditOrder changes seat, note or discount of an open order. Concurrent
// edits are last-write-wins.
func (s *OrderService) EditOrder(ctx context.Context, id uuid.UUID, req EditOrderRequest) (ledger.Summary, error) {
	if req.SeatID != nil {
		if err := ledger.ValidateSeatRef(*req.SeatID); err != nil {
			return ledger.Summary{}, err
		}
	}
	if req.Discount != nil {
		if err := ledger.ValidateDiscount(*req.Discount); err != nil {
			return ledger.Summary{}, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.Summary{}, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := s.lockOrder(ctx, store, id)
	if err != nil {
		return ledger.Summary{}, err
	}
	if err := ledger.CheckEditable(current); err != nil {
		return ledger.Summary{}, err
	}

	params := database.UpdateOrderParams{
		ID:       id,
		SeatID:   current.SeatID,
		Note:     current.Note,
		Discount: decimalToNumeric(current.Discount),
	}
	if req.SeatID != nil && *req.SeatID != current.SeatID {
		if err := requireSeat(ctx, store, *req.SeatID); err != nil {
			return ledger.Summary{}, err
		}
		params.SeatID = *req.SeatID
	}
	if req.Note != nil {
		params.Note = *req.Note
	}
	if req.Discount != nil {
		params.Discount = decimalToNumeric(*req.Discount)
	}

	if _, err := store.UpdateOrder(ctx, params); err != nil {
		return ledger.Summary{}, storeErr("update order", err)
	}

	summary, err := s.summaryTx(ctx, store, id)
	if err != nil {
		return ledger.Summary{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ledger.Summary{}, storeErr("commit tx", err)
	}

	s.publish(ctx, enum.EventOrderUpdated, s.summaryPayload(summary))
	return summary, nil
}

// AddLineItem snapshots the menu item's name (and price unless given) onto a
// new line item of an open order.
func (s *OrderService) AddLineItem(ctx context.Context, req AddLineItemRequest) (*LineItemResult, error) {
	if err := ledger.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	percentage := int32(100)
	if req.Percentage != nil {
		percentage = *req.Percentage
	}
	if err := ledger.ValidatePercentage(percentage); err != nil {
		return nil, err
	}
	if req.UnitPrice != nil {
		if err := ledger.ValidateMoney("unit_price", *req.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.ItemID == uuid.Nil {
		return nil, fmt.Errorf("%w: item_id is required", ledger.ErrValidation)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := s.lockOrder(ctx, store, req.OrderID)
	if err != nil {
		return nil, err
	}
	if err := ledger.CheckEditable(order); err != nil {
		return nil, err
	}

	menuItem, err := store.GetMenuItem(ctx, req.ItemID)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: menu item %s does not exist", ledger.ErrValidation, req.ItemID)
		}
		return nil, storeErr("get menu item", err)
	}

	unitPrice := numericToDecimal(menuItem.Price)
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	li, err := store.CreateLineItem(ctx, database.CreateLineItemParams{
		OrderID:    req.OrderID,
		ItemID:     menuItem.ID,
		ItemName:   menuItem.Name,
		UnitPrice:  decimalToNumeric(unitPrice),
		Quantity:   req.Quantity,
		Percentage: percentage,
	})
	if err != nil {
		return nil, storeErr("create line item", err)
	}
	if err := store.TouchOrder(ctx, req.OrderID); err != nil {
		return nil, storeErr("touch order", err)
	}

	result, err := s.lineItemResultTx(ctx, store, li)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit tx", err)
	}

	s.publish(ctx, enum.EventLineItemAdded, s.lineItemPayload(result))
	return result, nil
}

// UpdateLineItemDiscount sets the charged percentage of an unsent line item
// on an open order. A non-nil orderID must own the item.
func (s *OrderService) UpdateLineItemDiscount(ctx context.Context, orderID, lineItemID uuid.UUID, percentage int32) (*LineItemResult, error) {
	if err := ledger.ValidatePercentage(percentage); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	if _, _, err := s.lockLineItem(ctx, store, orderID, lineItemID); err != nil {
		return nil, err
	}

	li, err := store.UpdateLineItemPercentage(ctx, database.UpdateLineItemPercentageParams{
		ID:         lineItemID,
		Percentage: percentage,
	})
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: line item %s was already sent to the kitchen", ledger.ErrConflict, lineItemID)
		}
		return nil, storeErr("update line item", err)
	}
	if err := store.TouchOrder(ctx, li.OrderID); err != nil {
		return nil, storeErr("touch order", err)
	}

	result, err := s.lineItemResultTx(ctx, store, li)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit tx", err)
	}

	s.publish(ctx, enum.EventLineItemUpdated, s.lineItemPayload(result))
	return result, nil
}

// RemoveLineItem deletes an unsent line item from an open order. A non-nil
// orderID must own the item.
func (s *OrderService) RemoveLineItem(ctx context.Context, orderID, lineItemID uuid.UUID) (*LineItemResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	_, removed, err := s.lockLineItem(ctx, store, orderID, lineItemID)
	if err != nil {
		return nil, err
	}

	n, err := store.DeleteLineItem(ctx, lineItemID)
	if err != nil {
		return nil, storeErr("delete line item", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: line item %s was already sent to the kitchen", ledger.ErrConflict, lineItemID)
	}
	if err := store.TouchOrder(ctx, removed.OrderID); err != nil {
		return nil, storeErr("touch order", err)
	}

	summary, err := s.summaryTx(ctx, store, removed.OrderID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit tx", err)
	}

	result := &LineItemResult{Item: removed, Order: summary}
	s.publish(ctx, enum.EventLineItemRemoved, s.lineItemPayload(result))
	return result, nil
}

// Settle moves an open order to settled. Settling a settled order succeeds
// without changes and publishes nothing.
func (s *OrderService) Settle(ctx context.Context, id uuid.UUID) (ledger.Summary, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return ledger.Summary{}, beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := s.lockOrder(ctx, store, id)
	if err != nil {
		return ledger.Summary{}, err
	}

	_, changed, err := ledger.Settle(current, s.clock.Now())
	if err != nil {
		return ledger.Summary{}, err
	}
	if changed {
		if _, err := store.SettleOrder(ctx, id); err != nil {
			return ledger.Summary{}, storeErr("settle order", err)
		}
	}

	summary, err := s.summaryTx(ctx, store, id)
	if err != nil {
		return ledger.Summary{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ledger.Summary{}, storeErr("commit tx", err)
	}

	if changed {
		s.publish(ctx, enum.EventOrderSettled, s.summaryPayload(summary))
	}
	return summary, nil
}

// DeleteOrder removes an open order that has no line item sent to the
// kitchen. The delete statement re-checks both guards so a concurrent
// dispatch cannot slip in between the check and the delete.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return beginErr(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	current, err := s.lockOrder(ctx, store, id)
	if err != nil {
		return err
	}
	sent, err := store.CountSentLineItems(ctx, id)
	if err != nil {
		return storeErr("count sent line items", err)
	}
	if err := ledger.CheckDeletable(current, sent); err != nil {
		return err
	}

	n, err := store.DeleteOrder(ctx, id)
	if err != nil {
		return storeErr("delete order", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: order %s gained a dispatched line item", ledger.ErrConflict, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit tx", err)
	}

	s.publish(ctx, enum.EventOrderDeleted, OrderDeletedPayload{ID: id, SeatID: current.SeatID})
	return nil
}

// GetSummary aggregates one order from its ledger rows.
func (s *OrderService) GetSummary(ctx context.Context, id uuid.UUID) (ledger.Summary, error) {
	return s.summaryTx(ctx, s.store, id)
}

// ListSummaries aggregates every order matching the filter, oldest first.
func (s *OrderService) ListSummaries(ctx context.Context, f OrderFilter) ([]ledger.Summary, error) {
	params := database.ListLedgerRowsParams{}
	if f.Settled != nil {
		params.Settled = pgtype.Bool{Bool: *f.Settled, Valid: true}
	}
	if f.SeatID != nil {
		params.SeatID = pgtype.UUID{Bytes: *f.SeatID, Valid: true}
	}
	if f.BusinessDate != "" {
		start, end, err := businessday.Range(f.BusinessDate, s.loc)
		if err != nil {
			return nil, err
		}
		params.CreatedFrom = pgtype.Timestamptz{Time: start, Valid: true}
		params.CreatedTo = pgtype.Timestamptz{Time: end, Valid: true}
	}

	rows, err := s.store.ListLedgerRows(ctx, params)
	if err != nil {
		return nil, storeErr("list ledger rows", err)
	}
	summaries, err := s.agg.Aggregate(toLedgerRows(rows))
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}
	return summaries, nil
}

// Occupancy lists every seat with its count of open orders, derived fresh
// on each call.
func (s *OrderService) Occupancy(ctx context.Context) ([]ledger.SeatOccupancy, error) {
	seats, err := s.store.ListSeats(ctx)
	if err != nil {
		return nil, storeErr("list seats", err)
	}
	open, err := s.store.ListOrders(ctx, database.ListOrdersParams{
		Settled: pgtype.Bool{Bool: false, Valid: true},
	})
	if err != nil {
		return nil, storeErr("list open orders", err)
	}

	ledgerSeats := make([]ledger.Seat, len(seats))
	for i, seat := range seats {
		ledgerSeats[i] = toLedgerSeat(seat)
	}
	orders := make([]ledger.Order, len(open))
	for i, o := range open {
		orders[i] = listRowToLedgerOrder(o)
	}
	return ledger.OccupancyBySeat(ledgerSeats, orders), nil
}

// Audit reports settled orders created within the business-date range with
// their count and revenue.
func (s *OrderService) Audit(ctx context.Context, req AuditRequest) (AuditResult, error) {
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}
	key, err := ledger.ParseAuditSortKey(req.SortKey)
	if err != nil {
		return AuditResult{}, err
	}
	start, end, err := businessday.Span(req.StartDate, req.EndDate, s.loc)
	if err != nil {
		return AuditResult{}, err
	}

	rows, err := s.store.ListLedgerRows(ctx, database.ListLedgerRowsParams{
		Settled:     pgtype.Bool{Bool: true, Valid: true},
		CreatedFrom: pgtype.Timestamptz{Time: start, Valid: true},
		CreatedTo:   pgtype.Timestamptz{Time: end, Valid: true},
	})
	if err != nil {
		return AuditResult{}, storeErr("list settled orders", err)
	}
	summaries, err := s.agg.Aggregate(toLedgerRows(rows))
	if err != nil {
		return AuditResult{}, fmt.Errorf("aggregate orders: %w", err)
	}

	return AuditResult{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Report:    ledger.BuildAudit(summaries, key, req.Descending),
	}, nil
}

// --- Helpers ---

func (s *OrderService) lockOrder(ctx context.Context, store LedgerStore, id uuid.UUID) (ledger.Order, error) {
	o, err := store.GetOrderForUpdate(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return ledger.Order{}, fmt.Errorf("order %s: %w", id, ledger.ErrNotFound)
		}
		return ledger.Order{}, storeErr("lock order", err)
	}
	return toLedgerOrder(o, ""), nil
}

// lockLineItem locks the owning order before the item so every mutation
// takes row locks in the same order, then checks both guards.
func (s *OrderService) lockLineItem(ctx context.Context, store LedgerStore, orderID, lineItemID uuid.UUID) (ledger.Order, ledger.LineItem, error) {
	peek, err := store.GetLineItem(ctx, lineItemID)
	if err != nil {
		if isNoRows(err) {
			return ledger.Order{}, ledger.LineItem{}, fmt.Errorf("line item %s: %w", lineItemID, ledger.ErrNotFound)
		}
		return ledger.Order{}, ledger.LineItem{}, storeErr("get line item", err)
	}
	if orderID != uuid.Nil && peek.OrderID != orderID {
		return ledger.Order{}, ledger.LineItem{}, fmt.Errorf("line item %s on order %s: %w", lineItemID, orderID, ledger.ErrNotFound)
	}

	order, err := s.lockOrder(ctx, store, peek.OrderID)
	if err != nil {
		return ledger.Order{}, ledger.LineItem{}, err
	}
	locked, err := store.GetLineItemForUpdate(ctx, lineItemID)
	if err != nil {
		if isNoRows(err) {
			return ledger.Order{}, ledger.LineItem{}, fmt.Errorf("line item %s: %w", lineItemID, ledger.ErrNotFound)
		}
		return ledger.Order{}, ledger.LineItem{}, storeErr("lock line item", err)
	}

	li := toLedgerLineItem(locked)
	if err := ledger.CheckLineItemMutable(order, li); err != nil {
		return ledger.Order{}, ledger.LineItem{}, err
	}
	return order, li, nil
}

func (s *OrderService) summaryTx(ctx context.Context, store LedgerStore, id uuid.UUID) (ledger.Summary, error) {
	rows, err := store.ListLedgerRows(ctx, database.ListLedgerRowsParams{
		OrderID: pgtype.UUID{Bytes: id, Valid: true},
	})
	if err != nil {
		return ledger.Summary{}, storeErr("list ledger rows", err)
	}
	summary, err := s.agg.AggregateOne(id, toLedgerRows(rows))
	if err != nil {
		return ledger.Summary{}, fmt.Errorf("order %s: %w", id, err)
	}
	return summary, nil
}

func (s *OrderService) lineItemResultTx(ctx context.Context, store LedgerStore, li database.LineItem) (*LineItemResult, error) {
	summary, err := s.summaryTx(ctx, store, li.OrderID)
	if err != nil {
		return nil, err
	}
	return &LineItemResult{Item: toLedgerLineItem(li), Order: summary}, nil
}

func (s *OrderService) summaryPayload(summary ledger.Summary) SummaryPayload {
	return NewSummaryPayload(summary, s.agg.Mode())
}

func (s *OrderService) lineItemPayload(r *LineItemResult) LineItemChangePayload {
	return LineItemChangePayload{
		LineItem: NewLineItemPayload(r.Item),
		Order:    s.summaryPayload(r.Order),
	}
}

// publish runs after commit. The change is already durable, so failures are
// only logged.
func (s *OrderService) publish(ctx context.Context, eventType string, payload any) {
	publishEvent(ctx, s.publisher, s.log, s.clock.Now(), eventType, payload)
}

func publishEvent(ctx context.Context, p events.Publisher, log logrus.FieldLogger, at time.Time, eventType string, payload any) {
	e, err := events.New(eventType, payload, at)
	if err != nil {
		log.WithError(err).WithField("event", eventType).Error("build event")
		return
	}
	if err := p.Publish(context.WithoutCancel(ctx), e); err != nil {
		log.WithError(err).WithField("event", eventType).Warn("publish event")
	}
}

func requireSeat(ctx context.Context, store LedgerStore, id uuid.UUID) error {
	if _, err := store.GetSeat(ctx, id); err != nil {
		if isNoRows(err) {
			return fmt.Errorf("%w: seat %s does not exist", ledger.ErrValidation, id)
		}
		return storeErr("get seat", err)
	}
	return nil
}
