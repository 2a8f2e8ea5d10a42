package service

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"

	"github.com/pos-manage/api/internal/enum"
	"github.com/pos-manage/api/internal/ledger"
)

func TestCreateOrder_DefaultsDiscount(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	seat := env.store.addSeat("A1")

	got, err := env.svc.CreateOrder(context.Background(), CreateOrderRequest{SeatID: seat.ID, Note: "window"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SeatName != "A1" || got.Note != "window" {
		t.Errorf("got seat %q note %q", got.SeatName, got.Note)
	}
	if !got.Discount.IsZero() || !got.GrandTotal.IsZero() {
		t.Errorf("discount = %s, grand total = %s, want 0", got.Discount, got.GrandTotal)
	}
	if got.State() != ledger.StateOpen {
		t.Errorf("state = %s, want OPEN", got.State())
	}
	if types := env.pub.types(); len(types) != 1 || types[0] != enum.EventOrderCreated {
		t.Errorf("events = %v", types)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	seat := env.store.addSeat("A1")

	cases := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"missing seat", CreateOrderRequest{}},
		{"unknown seat", CreateOrderRequest{SeatID: uuid.New()}},
		{"negative discount", CreateOrderRequest{SeatID: seat.ID, Discount: ptr(dec("-1"))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.CreateOrder(context.Background(), tc.req)
			if !errors.Is(err, ledger.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
	if len(env.pub.types()) != 0 {
		t.Errorf("no event expected, got %v", env.pub.types())
	}
}

func TestCreateOrder_BeginFailureIsStoreUnavailable(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	seat := env.store.addSeat("A1")
	env.svc.pool = &mockTxBeginner{err: errors.New("pool closed")}

	_, err := env.svc.CreateOrder(context.Background(), CreateOrderRequest{SeatID: seat.ID})
	if !errors.Is(err, ledger.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCreateOrder_CommitErrorPublishesNothing(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	seat := env.store.addSeat("A1")
	env.tx.commitErr = errors.New("serialization failure")

	if _, err := env.svc.CreateOrder(context.Background(), CreateOrderRequest{SeatID: seat.ID}); err == nil {
		t.Fatal("expected commit error")
	}
	if len(env.pub.types()) != 0 {
		t.Errorf("no event expected, got %v", env.pub.types())
	}
}

func TestAddLineItem_SnapshotsMenuItem(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	burger := env.store.addMenuItem("Burger", "20.00")

	order, err := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	res, err := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: burger.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("add line item: %v", err)
	}
	if res.Item.Percentage != 100 {
		t.Errorf("percentage = %d, want default 100", res.Item.Percentage)
	}
	if ledger.FormatMoney(res.Order.Subtotal) != "60.00" {
		t.Errorf("subtotal = %s, want 60.00", ledger.FormatMoney(res.Order.Subtotal))
	}

	// Renaming and repricing the menu item must not touch the sold line.
	env.store.mu.Lock()
	mi := env.store.menu[burger.ID]
	mi.Name, mi.Price = "Deluxe Burger", makeNumeric("99.00")
	env.store.menu[burger.ID] = mi
	env.store.mu.Unlock()

	summary, err := env.svc.GetSummary(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if summary.Items[0].Name != "Burger" || ledger.FormatMoney(summary.Items[0].UnitPrice) != "20.00" {
		t.Errorf("snapshot changed: %+v", summary.Items[0])
	}
}

func TestAddLineItem_TwoLineScenario(t *testing.T) {
	for _, tc := range []struct {
		mode     ledger.LineTotalMode
		subtotal string
		grand    string
	}{
		{ledger.LineTotalNet, "65.00", "60.00"},
		{ledger.LineTotalGross, "70.00", "65.00"},
	} {
		t.Run(string(tc.mode), func(t *testing.T) {
			env := newTestEnv(tc.mode)
			ctx := context.Background()
			seat := env.store.addSeat("A1")
			burger := env.store.addMenuItem("Burger", "20")
			fries := env.store.addMenuItem("Fries", "5")

			order, err := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID, Discount: ptr(dec("5"))})
			if err != nil {
				t.Fatalf("create order: %v", err)
			}
			if _, err := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: burger.ID, Quantity: 3}); err != nil {
				t.Fatalf("add burger: %v", err)
			}
			res, err := env.svc.AddLineItem(ctx, AddLineItemRequest{
				OrderID:    order.OrderID,
				ItemID:     fries.ID,
				Quantity:   2,
				Percentage: ptr(int32(50)),
			})
			if err != nil {
				t.Fatalf("add fries: %v", err)
			}
			if got := ledger.FormatMoney(res.Order.Subtotal); got != tc.subtotal {
				t.Errorf("subtotal = %s, want %s", got, tc.subtotal)
			}
			if got := ledger.FormatMoney(res.Order.GrandTotal); got != tc.grand {
				t.Errorf("grand total = %s, want %s", got, tc.grand)
			}
		})
	}
}

func TestAddLineItem_ExplicitUnitPrice(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	tea := env.store.addMenuItem("Tea", "4.00")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})

	res, err := env.svc.AddLineItem(ctx, AddLineItemRequest{
		OrderID:   order.OrderID,
		ItemID:    tea.ID,
		Quantity:  1,
		UnitPrice: ptr(dec("3.50")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.FormatMoney(res.Item.UnitPrice) != "3.50" {
		t.Errorf("unit price = %s, want 3.50", res.Item.UnitPrice)
	}
}

func TestAddLineItem_Validation(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	tea := env.store.addMenuItem("Tea", "4.00")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})

	cases := []struct {
		name string
		req  AddLineItemRequest
		want error
	}{
		{"zero quantity", AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 0}, ledger.ErrValidation},
		{"percentage over 100", AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1, Percentage: ptr(int32(101))}, ledger.ErrValidation},
		{"negative price", AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1, UnitPrice: ptr(dec("-1"))}, ledger.ErrValidation},
		{"sub-cent price", AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1, UnitPrice: ptr(dec("0.004"))}, ledger.ErrValidation},
		{"unknown menu item", AddLineItemRequest{OrderID: order.OrderID, ItemID: uuid.New(), Quantity: 1}, ledger.ErrValidation},
		{"unknown order", AddLineItemRequest{OrderID: uuid.New(), ItemID: tea.ID, Quantity: 1}, ledger.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.AddLineItem(ctx, tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEditOrder_PartialUpdate(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	a1 := env.store.addSeat("A1")
	b2 := env.store.addSeat("B2")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: a1.ID, Note: "keep", Discount: ptr(dec("3"))})

	got, err := env.svc.EditOrder(ctx, order.OrderID, EditOrderRequest{SeatID: &b2.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SeatName != "B2" || got.Note != "keep" || ledger.FormatMoney(got.Discount) != "3.00" {
		t.Errorf("unexpected summary: seat %s note %q discount %s", got.SeatName, got.Note, got.Discount)
	}

	if _, err := env.svc.EditOrder(ctx, order.OrderID, EditOrderRequest{SeatID: ptr(uuid.New())}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("unknown seat: expected ErrValidation, got %v", err)
	}
	if _, err := env.svc.EditOrder(ctx, uuid.New(), EditOrderRequest{Note: ptr("x")}); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("unknown order: expected ErrNotFound, got %v", err)
	}
}

func TestSettle_IsIdempotent(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID, Discount: ptr(dec("2"))})

	first, err := env.svc.Settle(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("first settle: %v", err)
	}
	second, err := env.svc.Settle(ctx, order.OrderID)
	if err != nil {
		t.Fatalf("second settle: %v", err)
	}
	if !first.Settled || !second.Settled {
		t.Fatal("order not settled")
	}
	if !first.GrandTotal.Equal(second.GrandTotal) || first.Note != second.Note {
		t.Errorf("second settle changed the order: %+v vs %+v", first, second)
	}

	settledEvents := 0
	for _, typ := range env.pub.types() {
		if typ == enum.EventOrderSettled {
			settledEvents++
		}
	}
	if settledEvents != 1 {
		t.Errorf("order.settled published %d times, want 1", settledEvents)
	}

	if _, err := env.svc.Settle(ctx, uuid.New()); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettledOrder_RejectsMutations(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	tea := env.store.addMenuItem("Tea", "4")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	added, err := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add line item: %v", err)
	}
	if _, err := env.svc.Settle(ctx, order.OrderID); err != nil {
		t.Fatalf("settle: %v", err)
	}

	if _, err := env.svc.EditOrder(ctx, order.OrderID, EditOrderRequest{Note: ptr("late")}); !errors.Is(err, ledger.ErrIllegalState) {
		t.Errorf("edit: expected ErrIllegalState, got %v", err)
	}
	if _, err := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1}); !errors.Is(err, ledger.ErrIllegalState) {
		t.Errorf("add: expected ErrIllegalState, got %v", err)
	}
	if _, err := env.svc.RemoveLineItem(ctx, order.OrderID, added.Item.ID); !errors.Is(err, ledger.ErrIllegalState) {
		t.Errorf("remove: expected ErrIllegalState, got %v", err)
	}
	if _, err := env.svc.UpdateLineItemDiscount(ctx, order.OrderID, added.Item.ID, 50); !errors.Is(err, ledger.ErrIllegalState) {
		t.Errorf("discount: expected ErrIllegalState, got %v", err)
	}
	if err := env.svc.DeleteOrder(ctx, order.OrderID); !errors.Is(err, ledger.ErrConflict) {
		t.Errorf("delete: expected ErrConflict, got %v", err)
	}
}

func TestSentLineItem_BlocksRemoveAndDelete(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	soup := env.store.addMenuItem("Soup", "8")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	added, _ := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: soup.ID, Quantity: 1})

	if _, err := env.disp.Dispatch(ctx, added.Item.ID); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if _, err := env.svc.RemoveLineItem(ctx, order.OrderID, added.Item.ID); !errors.Is(err, ledger.ErrConflict) {
		t.Errorf("remove: expected ErrConflict, got %v", err)
	}
	if _, err := env.svc.UpdateLineItemDiscount(ctx, order.OrderID, added.Item.ID, 10); !errors.Is(err, ledger.ErrConflict) {
		t.Errorf("discount: expected ErrConflict, got %v", err)
	}
	if err := env.svc.DeleteOrder(ctx, order.OrderID); !errors.Is(err, ledger.ErrConflict) {
		t.Errorf("delete: expected ErrConflict, got %v", err)
	}

	// The order itself stays editable.
	if _, err := env.svc.EditOrder(ctx, order.OrderID, EditOrderRequest{Discount: ptr(dec("1"))}); err != nil {
		t.Errorf("edit: %v", err)
	}
}

func TestUpdateLineItemDiscount(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	cake := env.store.addMenuItem("Cake", "10")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	added, _ := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: cake.ID, Quantity: 2})

	res, err := env.svc.UpdateLineItemDiscount(ctx, uuid.Nil, added.Item.ID, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Item.Percentage != 25 || ledger.FormatMoney(res.Order.Subtotal) != "5.00" {
		t.Errorf("percentage %d subtotal %s", res.Item.Percentage, res.Order.Subtotal)
	}
	if _, err := env.svc.UpdateLineItemDiscount(ctx, uuid.Nil, added.Item.ID, -1); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := env.svc.UpdateLineItemDiscount(ctx, uuid.New(), added.Item.ID, 10); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("foreign order: expected ErrNotFound, got %v", err)
	}
}

func TestRemoveLineItem(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	tea := env.store.addMenuItem("Tea", "4")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	added, _ := env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: order.OrderID, ItemID: tea.ID, Quantity: 1})

	res, err := env.svc.RemoveLineItem(ctx, order.OrderID, added.Item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order.Items) != 0 || !res.Order.Subtotal.IsZero() {
		t.Errorf("order still has items: %+v", res.Order.Items)
	}
	if _, err := env.svc.RemoveLineItem(ctx, order.OrderID, added.Item.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	order, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})

	if err := env.svc.DeleteOrder(ctx, order.OrderID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.svc.GetSummary(ctx, order.OrderID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	types := env.pub.types()
	if types[len(types)-1] != enum.EventOrderDeleted {
		t.Errorf("last event = %s, want order.deleted", types[len(types)-1])
	}
}

func TestOccupancy_TwoOpenOrdersOnA1(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	a1 := env.store.addSeat("A1")
	env.store.addSeat("B1")
	steak := env.store.addMenuItem("Steak", "100")
	salad := env.store.addMenuItem("Salad", "50")

	o1, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: a1.ID, Discount: ptr(dec("10"))})
	o2, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: a1.ID})
	settled, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: a1.ID})
	env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: o1.OrderID, ItemID: steak.ID, Quantity: 1}) //nolint:errcheck
	env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: o2.OrderID, ItemID: salad.ID, Quantity: 1}) //nolint:errcheck
	if _, err := env.svc.Settle(ctx, settled.OrderID); err != nil {
		t.Fatalf("settle: %v", err)
	}

	occ, err := env.svc.Occupancy(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occ) != 2 || occ[0].Seat.Name != "A1" || occ[0].OpenOrders != 2 || occ[1].OpenOrders != 0 {
		t.Errorf("unexpected occupancy: %+v", occ)
	}

	open := false
	summaries, err := env.svc.ListSummaries(ctx, OrderFilter{Settled: &open, SeatID: &a1.ID})
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 open summaries, got %d", len(summaries))
	}
	if ledger.FormatMoney(summaries[0].GrandTotal) != "90.00" || ledger.FormatMoney(summaries[1].GrandTotal) != "50.00" {
		t.Errorf("grand totals %s, %s", summaries[0].GrandTotal, summaries[1].GrandTotal)
	}
}

func TestListSummaries_BusinessDate(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	if _, err := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	today, err := env.svc.ListSummaries(ctx, OrderFilter{BusinessDate: "2026-07-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(today) != 1 {
		t.Errorf("expected 1 order on 2026-07-01, got %d", len(today))
	}
	yesterday, _ := env.svc.ListSummaries(ctx, OrderFilter{BusinessDate: "2026-06-30"})
	if len(yesterday) != 0 {
		t.Errorf("expected no orders on 2026-06-30, got %d", len(yesterday))
	}
	if _, err := env.svc.ListSummaries(ctx, OrderFilter{BusinessDate: "07/01/2026"}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAudit_SettledRevenue(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	ctx := context.Background()
	seat := env.store.addSeat("A1")
	steak := env.store.addMenuItem("Steak", "40")
	tea := env.store.addMenuItem("Tea", "15.50")

	big, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	small, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	open, _ := env.svc.CreateOrder(ctx, CreateOrderRequest{SeatID: seat.ID})
	env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: big.OrderID, ItemID: steak.ID, Quantity: 1})  //nolint:errcheck
	env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: small.OrderID, ItemID: tea.ID, Quantity: 1})  //nolint:errcheck
	env.svc.AddLineItem(ctx, AddLineItemRequest{OrderID: open.OrderID, ItemID: steak.ID, Quantity: 9}) //nolint:errcheck
	env.svc.Settle(ctx, big.OrderID)                                                                  //nolint:errcheck
	env.svc.Settle(ctx, small.OrderID)                                                                //nolint:errcheck

	res, err := env.svc.Audit(ctx, AuditRequest{StartDate: "2026-07-01", SortKey: "grand_total"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Report.Count != 2 || ledger.FormatMoney(res.Report.Revenue) != "55.50" {
		t.Errorf("count %d revenue %s", res.Report.Count, res.Report.Revenue)
	}
	if res.Report.Orders[0].OrderID != small.OrderID {
		t.Errorf("expected ascending grand total order")
	}
	if res.EndDate != "2026-07-01" {
		t.Errorf("end date = %q", res.EndDate)
	}

	if _, err := env.svc.Audit(ctx, AuditRequest{StartDate: "2026-07-02", EndDate: "2026-07-01"}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("reversed range: expected ErrValidation, got %v", err)
	}
	if _, err := env.svc.Audit(ctx, AuditRequest{StartDate: "2026-07-01", SortKey: "seat"}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("bad sort: expected ErrValidation, got %v", err)
	}
}

func TestStoreUnavailable_Propagates(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	env.store.err = netErr

	_, err := env.svc.GetSummary(context.Background(), uuid.New())
	if !errors.Is(err, ledger.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Errorf("driver error not reachable: %v", err)
	}

	if _, err := env.svc.Occupancy(context.Background()); !errors.Is(err, ledger.ErrStoreUnavailable) {
		t.Errorf("occupancy: expected ErrStoreUnavailable, got %v", err)
	}
}

func TestPublishFailureIsNotReturned(t *testing.T) {
	env := newTestEnv(ledger.LineTotalNet)
	seat := env.store.addSeat("A1")
	env.pub.err = errors.New("broker down")

	if _, err := env.svc.CreateOrder(context.Background(), CreateOrderRequest{SeatID: seat.ID}); err != nil {
		t.Fatalf("publish error leaked: %v", err)
	}
	if len(env.pub.types()) != 1 {
		t.Errorf("expected publish attempt")
	}
}
