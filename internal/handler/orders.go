package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos-manage/api/internal/ledger"
	"github.com/pos-manage/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (ledger.Summary, error)
	EditOrder(ctx context.Context, id uuid.UUID, req service.EditOrderRequest) (ledger.Summary, error)
	AddLineItem(ctx context.Context, req service.AddLineItemRequest) (*service.LineItemResult, error)
	UpdateLineItemDiscount(ctx context.Context, orderID, lineItemID uuid.UUID, percentage int32) (*service.LineItemResult, error)
	RemoveLineItem(ctx context.Context, orderID, lineItemID uuid.UUID) (*service.LineItemResult, error)
	Settle(ctx context.Context, id uuid.UUID) (ledger.Summary, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	GetSummary(ctx context.Context, id uuid.UUID) (ledger.Summary, error)
	ListSummaries(ctx context.Context, f service.OrderFilter) ([]ledger.Summary, error)
	LineTotalMode() ledger.LineTotalMode
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Edit)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/settle", h.Settle)
	r.Post("/{id}/items", h.AddItem)
	r.Patch("/{id}/items/{itemId}", h.UpdateItem)
	r.Delete("/{id}/items/{itemId}", h.RemoveItem)
}

// --- Request / Response types ---

type createOrderRequest struct {
	SeatID   string  `json:"seat_id"`
	Note     string  `json:"note"`
	Discount *string `json:"discount"`
}

type editOrderRequest struct {
	SeatID   *string `json:"seat_id"`
	Note     *string `json:"note"`
	Discount *string `json:"discount"`
}

type addItemRequest struct {
	ItemID     string  `json:"item_id"`
	Quantity   int32   `json:"quantity"`
	UnitPrice  *string `json:"unit_price"`
	Percentage *int32  `json:"percentage"`
}

type updateItemRequest struct {
	Percentage *int32 `json:"percentage"`
}

type orderListResponse struct {
	Orders []service.SummaryPayload `json:"orders"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.SeatID == "" {
		writeError(w, http.StatusBadRequest, "seat_id is required")
		return
	}
	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid seat_id")
		return
	}
	discount, ok := parseOptionalMoney(w, "discount", req.Discount)
	if !ok {
		return
	}

	summary, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		SeatID:   seatID,
		Note:     req.Note,
		Discount: discount,
	})
	if err != nil {
		writeServiceError(w, r, "create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.summary(summary))
}

// List handles GET /orders?settled=&seat_id=&date=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter service.OrderFilter

	if s := q.Get("settled"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid settled, use true or false")
			return
		}
		filter.Settled = &v
	}
	if s := q.Get("seat_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seat_id")
			return
		}
		filter.SeatID = &id
	}
	filter.BusinessDate = q.Get("date")

	summaries, err := h.svc.ListSummaries(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "list orders", err)
		return
	}

	resp := make([]service.SummaryPayload, len(summaries))
	for i, s := range summaries {
		resp[i] = h.summary(s)
	}
	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}

	summary, err := h.svc.GetSummary(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get order", err)
		return
	}

	writeJSON(w, http.StatusOK, h.summary(summary))
}

// Edit handles PATCH /orders/{id}. Absent fields are left unchanged.
func (h *OrderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}

	var req editOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var edit service.EditOrderRequest
	if req.SeatID != nil {
		seatID, err := uuid.Parse(*req.SeatID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seat_id")
			return
		}
		edit.SeatID = &seatID
	}
	edit.Note = req.Note
	if edit.Discount, ok = parseOptionalMoney(w, "discount", req.Discount); !ok {
		return
	}

	summary, err := h.svc.EditOrder(r.Context(), id, edit)
	if err != nil {
		writeServiceError(w, r, "edit order", err)
		return
	}

	writeJSON(w, http.StatusOK, h.summary(summary))
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}

	if err := h.svc.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete order", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Settle handles POST /orders/{id}/settle. Settling twice returns the same
// settled order.
func (h *OrderHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}

	summary, err := h.svc.Settle(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "settle order", err)
		return
	}

	writeJSON(w, http.StatusOK, h.summary(summary))
}

// AddItem handles POST /orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}

	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item_id")
		return
	}
	unitPrice, ok := parseOptionalMoney(w, "unit_price", req.UnitPrice)
	if !ok {
		return
	}

	result, err := h.svc.AddLineItem(r.Context(), service.AddLineItemRequest{
		OrderID:    orderID,
		ItemID:     itemID,
		Quantity:   req.Quantity,
		UnitPrice:  unitPrice,
		Percentage: req.Percentage,
	})
	if err != nil {
		writeServiceError(w, r, "add line item", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.lineItem(result))
}

// UpdateItem handles PATCH /orders/{id}/items/{itemId}: the line's
// percentage of price charged.
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemId", "line item ID")
	if !ok {
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Percentage == nil {
		writeError(w, http.StatusBadRequest, "percentage is required")
		return
	}

	result, err := h.svc.UpdateLineItemDiscount(r.Context(), orderID, itemID, *req.Percentage)
	if err != nil {
		writeServiceError(w, r, "update line item", err)
		return
	}

	writeJSON(w, http.StatusOK, h.lineItem(result))
}

// RemoveItem handles DELETE /orders/{id}/items/{itemId}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := urlUUID(w, r, "id", "order ID")
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, "itemId", "line item ID")
	if !ok {
		return
	}

	result, err := h.svc.RemoveLineItem(r.Context(), orderID, itemID)
	if err != nil {
		writeServiceError(w, r, "remove line item", err)
		return
	}

	writeJSON(w, http.StatusOK, h.summary(result.Order))
}

// --- Helpers ---

func (h *OrderHandler) summary(s ledger.Summary) service.SummaryPayload {
	return service.NewSummaryPayload(s, h.svc.LineTotalMode())
}

func (h *OrderHandler) lineItem(r *service.LineItemResult) service.LineItemChangePayload {
	return service.LineItemChangePayload{
		LineItem: service.NewLineItemPayload(r.Item),
		Order:    h.summary(r.Order),
	}
}

// parseOptionalMoney parses a non-negative decimal string. A nil input
// yields nil; the bool is false once an error response was written.
func parseOptionalMoney(w http.ResponseWriter, field string, s *string) (*decimal.Decimal, bool) {
	if s == nil {
		return nil, true
	}
	d, err := ledger.ParseMoney(field, *s)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &d, true
}
