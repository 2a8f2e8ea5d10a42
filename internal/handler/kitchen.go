package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/pos-manage/api/internal/kitchen"
	"github.com/pos-manage/api/internal/service"
)

// DispatchServicer defines the service methods needed by kitchen handlers.
// Satisfied by *service.DispatchService.
type DispatchServicer interface {
	Dispatch(ctx context.Context, lineItemID uuid.UUID) (service.DispatchResult, error)
	ListDispatchItems(ctx context.Context, businessDate string) ([]kitchen.Item, error)
}

// KitchenBoard is the server-side snapshot owner. Satisfied by
// *kitchen.Board.
type KitchenBoard interface {
	BusinessDate() string
	CurrentView() kitchen.View
	Refresh(ctx context.Context) error
}

// KitchenHandler handles the kitchen dispatch endpoints.
type KitchenHandler struct {
	svc         DispatchServicer
	board       KitchenBoard
	clock       clockwork.Clock
	urgentAfter time.Duration
}

// NewKitchenHandler creates a new KitchenHandler.
func NewKitchenHandler(svc DispatchServicer, board KitchenBoard, clk clockwork.Clock, urgentAfter time.Duration) *KitchenHandler {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &KitchenHandler{svc: svc, board: board, clock: clk, urgentAfter: urgentAfter}
}

// RegisterRoutes registers the read endpoints. Expected to be mounted at
// /kitchen; dispatch is registered separately so it can be role gated.
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/queue", h.Queue)
	r.Get("/items", h.Items)
	r.Post("/refresh", h.Refresh)
}

// RegisterDispatchRoutes registers POST /items/{itemId}/dispatch.
func (h *KitchenHandler) RegisterDispatchRoutes(r chi.Router) {
	r.Post("/items/{itemId}/dispatch", h.Dispatch)
}

type kitchenItemsResponse struct {
	BusinessDate string         `json:"business_date"`
	Items        []kitchen.Item `json:"items"`
}

type dispatchResponse struct {
	LineItem service.LineItemPayload `json:"line_item"`
	Changed  bool                    `json:"changed"`
}

// Queue handles GET /kitchen/queue?date=. The board's own date is served
// from its snapshot; any other date is fetched for this request only.
func (h *KitchenHandler) Queue(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" || date == h.board.BusinessDate() {
		writeJSON(w, http.StatusOK, service.NewKitchenViewPayload(h.board.CurrentView()))
		return
	}

	items, err := h.svc.ListDispatchItems(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, "kitchen queue", err)
		return
	}
	now := h.clock.Now()
	view := kitchen.NewView(kitchen.Snapshot{BusinessDate: date, Items: items, FetchedAt: now.UTC()}, now, h.urgentAfter)
	writeJSON(w, http.StatusOK, service.NewKitchenViewPayload(view))
}

// Items handles GET /kitchen/items?date=: the raw snapshot a display needs
// to rank and time items on its own clock.
func (h *KitchenHandler) Items(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.board.BusinessDate()
	}

	items, err := h.svc.ListDispatchItems(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, "kitchen items", err)
		return
	}
	writeJSON(w, http.StatusOK, kitchenItemsResponse{BusinessDate: date, Items: items})
}

// Dispatch handles POST /kitchen/items/{itemId}/dispatch. Repeating the
// call returns the sent item with changed=false.
func (h *KitchenHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "itemId", "line item ID")
	if !ok {
		return
	}

	result, err := h.svc.Dispatch(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "dispatch", err)
		return
	}

	writeJSON(w, http.StatusOK, dispatchResponse{
		LineItem: service.NewLineItemPayload(result.Item),
		Changed:  result.Changed,
	})
}

// Refresh handles POST /kitchen/refresh: re-fetch now and return the view.
func (h *KitchenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Refresh(r.Context()); err != nil {
		writeServiceError(w, r, "kitchen refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, service.NewKitchenViewPayload(h.board.CurrentView()))
}
