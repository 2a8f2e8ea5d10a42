package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/pos-manage/api/internal/businessday"
	"github.com/pos-manage/api/internal/enum"
	"github.com/pos-manage/api/internal/events"
)

// Fetcher loads the authoritative line items of one business date.
// Satisfied by *service.DispatchService and by the HTTP client of the
// kitchen display.
type Fetcher interface {
	FetchDispatchItems(ctx context.Context, businessDate string) ([]Item, error)
}

// BoardConfig configures a Board. Zero values take the defaults.
type BoardConfig struct {
	Interval    time.Duration
	UrgentAfter time.Duration
	Location    *time.Location
	// BusinessDate pins the board to one date. Empty follows today.
	BusinessDate string
	Logger       logrus.FieldLogger
}

// Snapshot is the last successful fetch.
type Snapshot struct {
	BusinessDate string
	Items        []Item
	FetchedAt    time.Time
}

// View is the worklist derived from the snapshot at a point in time.
type View struct {
	BusinessDate string
	FetchedAt    time.Time
	GeneratedAt  time.Time
	PendingCount int
	UrgentCount  int
	Tickets      []Ticket
	// Stale is set when the snapshot is older than two refresh intervals,
	// meaning at least one scheduled refresh failed or was skipped.
	Stale     bool
	LastError string
}

// Board owns the kitchen snapshot. Run re-fetches it on a fixed interval
// and on Trigger; CurrentView re-derives rank and elapsed time from the
// snapshot and the clock on every call without touching the store.
type Board struct {
	fetcher Fetcher
	clock   clockwork.Clock
	cfg     BoardConfig
	log     logrus.FieldLogger

	trigger chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot
	lastErr  error
}

// NewBoard creates a Board. It does not fetch until Run or Refresh is
// called.
func NewBoard(fetcher Fetcher, clk clockwork.Clock, cfg BoardConfig) *Board {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	if cfg.UrgentAfter <= 0 {
		cfg.UrgentAfter = DefaultUrgentAfter
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Board{
		fetcher: fetcher,
		clock:   clk,
		cfg:     cfg,
		log:     log.WithField("component", "kitchen_board"),
		trigger: make(chan struct{}, 1),
	}
}

// Run refreshes immediately, then on every tick and every Trigger until ctx
// is cancelled. Fetch errors are logged and kept for the view; the previous
// snapshot stays in place.
func (b *Board) Run(ctx context.Context) error {
	ticker := b.clock.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	b.refreshAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			b.refreshAndLog(ctx)
		case <-b.trigger:
			b.refreshAndLog(ctx)
		}
	}
}

// Trigger requests an out-of-band refresh from Run. Requests coalesce while
// one is already queued.
func (b *Board) Trigger() {
	select {
	case b.trigger <- struct{}{}:
	default:
	}
}

// Publish lets the Board listen on the event fan-out: every event routed to
// the kitchen room queues a refresh.
func (b *Board) Publish(_ context.Context, e events.Event) error {
	for _, room := range events.RoomsFor(e.Type) {
		if room == enum.RoomKitchen {
			b.Trigger()
			break
		}
	}
	return nil
}

func (b *Board) refreshAndLog(ctx context.Context) {
	if err := b.Refresh(ctx); err != nil && ctx.Err() == nil {
		b.log.WithError(err).Warn("kitchen refresh failed")
	}
}

// Refresh fetches the items of the board's business date and replaces the
// snapshot on success.
func (b *Board) Refresh(ctx context.Context) error {
	date := b.BusinessDate()
	items, err := b.fetcher.FetchDispatchItems(ctx, date)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.lastErr = err
		return err
	}
	b.snapshot = Snapshot{BusinessDate: date, Items: items, FetchedAt: b.clock.Now().UTC()}
	b.lastErr = nil
	return nil
}

// BusinessDate is the pinned date, or today in the board's time zone.
func (b *Board) BusinessDate() string {
	if b.cfg.BusinessDate != "" {
		return b.cfg.BusinessDate
	}
	return businessday.Today(b.clock.Now(), b.cfg.Location)
}

// CurrentView derives the worklist from the snapshot and the current time.
func (b *Board) CurrentView() View {
	b.mu.RLock()
	snap := b.snapshot
	lastErr := b.lastErr
	b.mu.RUnlock()

	now := b.clock.Now()
	v := NewView(snap, now, b.cfg.UrgentAfter)
	if snap.FetchedAt.IsZero() || now.Sub(snap.FetchedAt) > 2*b.cfg.Interval {
		v.Stale = true
	}
	if lastErr != nil {
		v.LastError = lastErr.Error()
	}
	return v
}

// NewView builds a View from a snapshot without any staleness tracking.
func NewView(snap Snapshot, now time.Time, urgentAfter time.Duration) View {
	tickets := Build(snap.Items, now, urgentAfter)
	pending, urgent := Counts(tickets)
	return View{
		BusinessDate: snap.BusinessDate,
		FetchedAt:    snap.FetchedAt,
		GeneratedAt:  now.UTC(),
		PendingCount: pending,
		UrgentCount:  urgent,
		Tickets:      tickets,
	}
}
