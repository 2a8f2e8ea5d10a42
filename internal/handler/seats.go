package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pos-manage/api/internal/ledger"
	"github.com/pos-manage/api/internal/service"
)

// OccupancyServicer is satisfied by *service.OrderService.
type OccupancyServicer interface {
	Occupancy(ctx context.Context) ([]ledger.SeatOccupancy, error)
}

// SeatHandler serves the floor plan with advisory occupancy.
type SeatHandler struct {
	svc OccupancyServicer
}

func NewSeatHandler(svc OccupancyServicer) *SeatHandler {
	return &SeatHandler{svc: svc}
}

// RegisterRoutes registers seat endpoints. Expected to be mounted at /seats.
func (h *SeatHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

type seatListResponse struct {
	Seats []service.SeatPayload `json:"seats"`
}

// List handles GET /seats. open_orders never blocks opening another tab.
func (h *SeatHandler) List(w http.ResponseWriter, r *http.Request) {
	occ, err := h.svc.Occupancy(r.Context())
	if err != nil {
		writeServiceError(w, r, "list seats", err)
		return
	}

	resp := make([]service.SeatPayload, len(occ))
	for i, o := range occ {
		resp[i] = service.NewSeatPayload(o)
	}
	writeJSON(w, http.StatusOK, seatListResponse{Seats: resp})
}
