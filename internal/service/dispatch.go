package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/pos-manage/api/internal/businessday"
	"github.com/pos-manage/api/internal/database"
	"github.com/pos-manage/api/internal/enum"
	"github.com/pos-manage/api/internal/events"
	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/ledger"
)

// DispatchStore defines the DB methods the kitchen side needs.
// Satisfied by *database.Queries.
type DispatchStore interface {
	MarkLineItemSent(ctx context.Context, id uuid.UUID) (database.LineItem, error)
	GetLineItem(ctx context.Context, id uuid.UUID) (database.LineItem, error)
	ListDispatchItemsBetween(ctx context.Context, arg database.ListDispatchItemsBetweenParams) ([]database.ListDispatchItemsBetweenRow, error)
}

// DispatchResult is the line item after a dispatch call. Changed is false
// when the item had already been sent.
type DispatchResult struct {
	Item    ledger.LineItem
	Changed bool
}

// DispatchService flips line items to sent and serves the kitchen's item
// list. It implements kitchen.Fetcher.
type DispatchService struct {
	store     DispatchStore
	loc       *time.Location
	clock     clockwork.Clock
	publisher events.Publisher
	log       logrus.FieldLogger
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(store DispatchStore, opts Options) *DispatchService {
	opts = opts.withDefaults()
	return &DispatchService{
		store:     store,
		loc:       opts.Location,
		clock:     opts.Clock,
		publisher: opts.Publisher,
		log:       opts.Logger.WithField("component", "dispatch_service"),
	}
}

// Dispatch marks a line item as sent. The flip is a single conditional
// update; a second call on the same item succeeds without changes. Items
// of settled orders may still be dispatched.
func (s *DispatchService) Dispatch(ctx context.Context, lineItemID uuid.UUID) (DispatchResult, error) {
	li, err := s.store.MarkLineItemSent(ctx, lineItemID)
	if err == nil {
		result := DispatchResult{Item: toLedgerLineItem(li), Changed: true}
		publishEvent(ctx, s.publisher, s.log, s.clock.Now(), enum.EventLineItemDispatched, NewLineItemPayload(result.Item))
		return result, nil
	}
	if !isNoRows(err) {
		return DispatchResult{}, storeErr("mark line item sent", err)
	}

	// Nothing updated: either the item is gone or it was already sent.
	current, err := s.store.GetLineItem(ctx, lineItemID)
	if err != nil {
		if isNoRows(err) {
			return DispatchResult{}, fmt.Errorf("line item %s: %w", lineItemID, ledger.ErrNotFound)
		}
		return DispatchResult{}, storeErr("get line item", err)
	}
	if !current.Sent {
		return DispatchResult{}, fmt.Errorf("%w: line item %s could not be marked sent", ledger.ErrConflict, lineItemID)
	}
	return DispatchResult{Item: toLedgerLineItem(current)}, nil
}

// ListDispatchItems returns every line item of orders created during the
// business date, sent or not. An empty date means today.
func (s *DispatchService) ListDispatchItems(ctx context.Context, businessDate string) ([]kitchen.Item, error) {
	if businessDate == "" {
		businessDate = businessday.Today(s.clock.Now(), s.loc)
	}
	start, end, err := businessday.Range(businessDate, s.loc)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListDispatchItemsBetween(ctx, database.ListDispatchItemsBetweenParams{
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, storeErr("list dispatch items", err)
	}
	items := make([]kitchen.Item, len(rows))
	for i, r := range rows {
		items[i] = toKitchenItem(r)
	}
	return items, nil
}

// FetchDispatchItems implements kitchen.Fetcher.
func (s *DispatchService) FetchDispatchItems(ctx context.Context, businessDate string) ([]kitchen.Item, error) {
	return s.ListDispatchItems(ctx, businessDate)
}
