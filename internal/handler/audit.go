package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pos-manage/api/internal/ledger"
	"github.com/pos-manage/api/internal/service"
)

// AuditServicer is satisfied by *service.OrderService.
type AuditServicer interface {
	Audit(ctx context.Context, req service.AuditRequest) (service.AuditResult, error)
	LineTotalMode() ledger.LineTotalMode
}

// AuditHandler serves the settled-order audit report.
type AuditHandler struct {
	svc AuditServicer
}

func NewAuditHandler(svc AuditServicer) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// RegisterRoutes registers audit endpoints. Expected to be mounted at /audit.
func (h *AuditHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Report)
}

// Report handles GET /audit?start_date=&end_date=&sort=&dir=.
func (h *AuditHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := service.AuditRequest{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		SortKey:   q.Get("sort"),
	}
	if req.StartDate == "" {
		writeError(w, http.StatusBadRequest, "start_date is required")
		return
	}
	switch strings.ToLower(q.Get("dir")) {
	case "", "asc":
	case "desc":
		req.Descending = true
	default:
		writeError(w, http.StatusBadRequest, "invalid dir, use asc or desc")
		return
	}

	result, err := h.svc.Audit(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, "audit", err)
		return
	}

	writeJSON(w, http.StatusOK, service.NewAuditPayload(result, h.svc.LineTotalMode()))
}
