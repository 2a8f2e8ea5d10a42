package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/pos-manage/api/internal/database"
	"github.com/pos-manage/api/internal/events"
	"github.com/pos-manage/api/internal/ledger"
)

// --- Mock implementations ---

// mockTx implements pgx.Tx with only the methods we need.
// The unused methods panic so we catch accidental calls.
type mockTx struct {
	commitErr   error
	rollbackErr error
	committed   bool
}

func (m *mockTx) Begin(ctx context.Context) (pgx.Tx, error) { panic("not implemented") }
func (m *mockTx) Commit(ctx context.Context) error {
	if m.commitErr == nil {
		m.committed = true
	}
	return m.commitErr
}
func (m *mockTx) Rollback(ctx context.Context) error { return m.rollbackErr }
func (m *mockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (m *mockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not implemented")
}
func (m *mockTx) LargeObjects() pgx.LargeObjects { panic("not implemented") }
func (m *mockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (m *mockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (m *mockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (m *mockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not implemented")
}
func (m *mockTx) Conn() *pgx.Conn { panic("not implemented") }

// mockTxBeginner implements TxBeginner.
type mockTxBeginner struct {
	tx  pgx.Tx
	err error
}

func (m *mockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.tx, m.err
}

// memStore is an in-memory LedgerStore and DispatchStore. Its conditional
// writes mirror the SQL guards (WHERE NOT settled, WHERE NOT sent) so the
// service's race handling can be exercised. err, when set, fails every call.
type memStore struct {
	mu    sync.Mutex
	clk   clockwork.Clock
	seq   time.Duration
	err   error
	seats map[uuid.UUID]database.Seat
	menu  map[uuid.UUID]database.MenuItem
	ords  map[uuid.UUID]database.Order
	items map[uuid.UUID]database.LineItem
}

func newMemStore(clk clockwork.Clock) *memStore {
	return &memStore{
		clk:   clk,
		seats: map[uuid.UUID]database.Seat{},
		menu:  map[uuid.UUID]database.MenuItem{},
		ords:  map[uuid.UUID]database.Order{},
		items: map[uuid.UUID]database.LineItem{},
	}
}

// stamp returns strictly increasing instants so creation order is stable.
func (m *memStore) stamp() time.Time {
	m.seq += time.Millisecond
	return m.clk.Now().UTC().Add(m.seq)
}

func (m *memStore) addSeat(name string) database.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := database.Seat{ID: uuid.New(), Name: name, CreatedAt: m.clk.Now()}
	m.seats[s.ID] = s
	return s
}

func (m *memStore) addMenuItem(name, price string) database.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	mi := database.MenuItem{ID: uuid.New(), Name: name, Price: makeNumeric(price), CreatedAt: m.clk.Now()}
	m.menu[mi.ID] = mi
	return mi
}

func (m *memStore) GetSeat(ctx context.Context, id uuid.UUID) (database.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Seat{}, m.err
	}
	s, ok := m.seats[id]
	if !ok {
		return database.Seat{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *memStore) ListSeats(ctx context.Context) ([]database.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]database.Seat, 0, len(m.seats))
	for _, s := range m.seats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.MenuItem{}, m.err
	}
	mi, ok := m.menu[id]
	if !ok {
		return database.MenuItem{}, pgx.ErrNoRows
	}
	return mi, nil
}

func (m *memStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Order{}, m.err
	}
	now := m.stamp()
	o := database.Order{
		ID:        uuid.New(),
		SeatID:    arg.SeatID,
		Note:      arg.Note,
		Discount:  arg.Discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.ords[o.ID] = o
	return o, nil
}

func (m *memStore) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Order{}, m.err
	}
	o, ok := m.ords[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *memStore) UpdateOrder(ctx context.Context, arg database.UpdateOrderParams) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Order{}, m.err
	}
	o, ok := m.ords[arg.ID]
	if !ok || o.Settled {
		return database.Order{}, pgx.ErrNoRows
	}
	o.SeatID, o.Note, o.Discount = arg.SeatID, arg.Note, arg.Discount
	o.UpdatedAt = m.stamp()
	m.ords[o.ID] = o
	return o, nil
}

func (m *memStore) SettleOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.Order{}, m.err
	}
	o, ok := m.ords[id]
	if !ok || o.Settled {
		return database.Order{}, pgx.ErrNoRows
	}
	now := m.stamp()
	o.Settled = true
	o.SettledAt = pgtype.Timestamptz{Time: now, Valid: true}
	o.UpdatedAt = now
	m.ords[id] = o
	return o, nil
}

func (m *memStore) TouchOrder(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	o := m.ords[id]
	o.UpdatedAt = m.stamp()
	m.ords[id] = o
	return nil
}

func (m *memStore) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	o, ok := m.ords[id]
	if !ok || o.Settled || m.sentCountLocked(id) > 0 {
		return 0, nil
	}
	delete(m.ords, id)
	for liID, li := range m.items {
		if li.OrderID == id {
			delete(m.items, liID)
		}
	}
	return 1, nil
}

func (m *memStore) matchOrder(o database.Order, settled pgtype.Bool, seat pgtype.UUID, from, to pgtype.Timestamptz) bool {
	if settled.Valid && o.Settled != settled.Bool {
		return false
	}
	if seat.Valid && o.SeatID != uuid.UUID(seat.Bytes) {
		return false
	}
	if from.Valid && o.CreatedAt.Before(from.Time) {
		return false
	}
	if to.Valid && !o.CreatedAt.Before(to.Time) {
		return false
	}
	return true
}

func (m *memStore) sortedOrdersLocked() []database.Order {
	out := make([]database.Order, 0, len(m.ords))
	for _, o := range m.ords {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memStore) itemsOfLocked(orderID uuid.UUID) []database.LineItem {
	var out []database.LineItem
	for _, li := range m.items {
		if li.OrderID == orderID {
			out = append(out, li)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memStore) ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.ListOrdersRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []database.ListOrdersRow{}
	for _, o := range m.sortedOrdersLocked() {
		if !m.matchOrder(o, arg.Settled, arg.SeatID, arg.CreatedFrom, arg.CreatedTo) {
			continue
		}
		out = append(out, database.ListOrdersRow{
			ID:        o.ID,
			SeatID:    o.SeatID,
			SeatName:  m.seats[o.SeatID].Name,
			Note:      o.Note,
			Discount:  o.Discount,
			Settled:   o.Settled,
			SettledAt: o.SettledAt,
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		})
	}
	return out, nil
}

func (m *memStore) ListLedgerRows(ctx context.Context, arg database.ListLedgerRowsParams) ([]database.ListLedgerRowsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []database.ListLedgerRowsRow{}
	for _, o := range m.sortedOrdersLocked() {
		if arg.OrderID.Valid && o.ID != uuid.UUID(arg.OrderID.Bytes) {
			continue
		}
		if !m.matchOrder(o, arg.Settled, arg.SeatID, arg.CreatedFrom, arg.CreatedTo) {
			continue
		}
		base := database.ListLedgerRowsRow{
			ID:        o.ID,
			SeatID:    o.SeatID,
			SeatName:  m.seats[o.SeatID].Name,
			Note:      o.Note,
			Discount:  o.Discount,
			Settled:   o.Settled,
			CreatedAt: o.CreatedAt,
		}
		items := m.itemsOfLocked(o.ID)
		if len(items) == 0 {
			out = append(out, base)
			continue
		}
		for _, li := range items {
			row := base
			row.LineItemID = pgtype.UUID{Bytes: li.ID, Valid: true}
			row.ItemName = pgtype.Text{String: li.ItemName, Valid: true}
			row.UnitPrice = li.UnitPrice
			row.Quantity = pgtype.Int4{Int32: li.Quantity, Valid: true}
			row.Percentage = pgtype.Int4{Int32: li.Percentage, Valid: true}
			row.Sent = pgtype.Bool{Bool: li.Sent, Valid: true}
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memStore) GetLineItem(ctx context.Context, id uuid.UUID) (database.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.LineItem{}, m.err
	}
	li, ok := m.items[id]
	if !ok {
		return database.LineItem{}, pgx.ErrNoRows
	}
	return li, nil
}

func (m *memStore) GetLineItemForUpdate(ctx context.Context, id uuid.UUID) (database.LineItem, error) {
	return m.GetLineItem(ctx, id)
}

func (m *memStore) CreateLineItem(ctx context.Context, arg database.CreateLineItemParams) (database.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.LineItem{}, m.err
	}
	li := database.LineItem{
		ID:         uuid.New(),
		OrderID:    arg.OrderID,
		ItemID:     arg.ItemID,
		ItemName:   arg.ItemName,
		UnitPrice:  arg.UnitPrice,
		Quantity:   arg.Quantity,
		Percentage: arg.Percentage,
		CreatedAt:  m.stamp(),
	}
	m.items[li.ID] = li
	return li, nil
}

func (m *memStore) UpdateLineItemPercentage(ctx context.Context, arg database.UpdateLineItemPercentageParams) (database.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.LineItem{}, m.err
	}
	li, ok := m.items[arg.ID]
	if !ok || li.Sent {
		return database.LineItem{}, pgx.ErrNoRows
	}
	li.Percentage = arg.Percentage
	m.items[li.ID] = li
	return li, nil
}

func (m *memStore) DeleteLineItem(ctx context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	li, ok := m.items[id]
	if !ok || li.Sent {
		return 0, nil
	}
	delete(m.items, id)
	return 1, nil
}

func (m *memStore) sentCountLocked(orderID uuid.UUID) int64 {
	var n int64
	for _, li := range m.items {
		if li.OrderID == orderID && li.Sent {
			n++
		}
	}
	return n
}

func (m *memStore) CountSentLineItems(ctx context.Context, orderID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return m.sentCountLocked(orderID), nil
}

func (m *memStore) MarkLineItemSent(ctx context.Context, id uuid.UUID) (database.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.LineItem{}, m.err
	}
	li, ok := m.items[id]
	if !ok || li.Sent {
		return database.LineItem{}, pgx.ErrNoRows
	}
	li.Sent = true
	li.SentAt = pgtype.Timestamptz{Time: m.clk.Now().UTC(), Valid: true}
	m.items[id] = li
	return li, nil
}

func (m *memStore) ListDispatchItemsBetween(ctx context.Context, arg database.ListDispatchItemsBetweenParams) ([]database.ListDispatchItemsBetweenRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []database.ListDispatchItemsBetweenRow{}
	for _, o := range m.sortedOrdersLocked() {
		if o.CreatedAt.Before(arg.Start) || !o.CreatedAt.Before(arg.End) {
			continue
		}
		for _, li := range m.itemsOfLocked(o.ID) {
			out = append(out, database.ListDispatchItemsBetweenRow{
				ID:             li.ID,
				OrderID:        o.ID,
				SeatID:         o.SeatID,
				SeatName:       m.seats[o.SeatID].Name,
				ItemName:       li.ItemName,
				Quantity:       li.Quantity,
				Note:           o.Note,
				OrderCreatedAt: o.CreatedAt,
				CreatedAt:      li.CreatedAt,
				Sent:           li.Sent,
			})
		}
	}
	return out, nil
}

// recordingPublisher keeps every published event. err is returned from
// Publish after recording.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// --- Test helpers ---

var t0 = time.Date(2026, 7, 1, 2, 0, 0, 0, time.UTC) // 10:00 in Taipei

func makeNumeric(val string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(val)
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T { return &v }

type testEnv struct {
	store *memStore
	tx    *mockTx
	pub   *recordingPublisher
	clk   *clockwork.FakeClock
	svc   *OrderService
	disp  *DispatchService
}

// newTestEnv wires both services to one memStore. mode selects the line
// total formula.
func newTestEnv(mode ledger.LineTotalMode) *testEnv {
	clk := clockwork.NewFakeClockAt(t0)
	store := newMemStore(clk)
	tx := &mockTx{}
	pub := &recordingPublisher{}
	opts := Options{
		Aggregator: ledger.NewAggregator(mode),
		Location:   time.FixedZone("UTC+8", 8*3600),
		Clock:      clk,
		Publisher:  pub,
	}
	newStore := func(db database.DBTX) LedgerStore { return store }
	return &testEnv{
		store: store,
		tx:    tx,
		pub:   pub,
		clk:   clk,
		svc:   NewOrderService(&mockTxBeginner{tx: tx}, store, newStore, opts),
		disp:  NewDispatchService(store, opts),
	}
}
