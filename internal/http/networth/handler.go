package networth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
)

type Handler struct {
	svc *networth.Service
}

func NewHandler(svc *networth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.capture)
	r.Delete("/{id}", h.delete)
}

type snapshotResponse struct {
	ID               uuid.UUID       `json:"id"`
	Date             string          `json:"date"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetWorth         decimal.Decimal `json:"net_worth"`
	Change           decimal.Decimal `json:"change"`
	ChangeRate       decimal.Decimal `json:"change_rate"`
}

// list returns snapshots oldest first with the change from the previous one.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	changes := metrics.NetWorthChanges(snaps)

	resp := make([]snapshotResponse, 0, len(changes))
	for _, c := range changes {
		resp = append(resp, snapshotResponse{
			ID:               c.Snapshot.ID,
			Date:             c.Snapshot.Date.Format(time.DateOnly),
			TotalAssets:      c.Snapshot.TotalAssets,
			TotalLiabilities: c.Snapshot.TotalLiabilities,
			NetWorth:         c.NetWorth,
			Change:           c.Change,
			ChangeRate:       c.Rate,
		})
	}

	respond.JSON(w, http.StatusOK, resp)
}

type captureRequest struct {
	Liabilities decimal.Decimal `json:"liabilities"`
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	s, err := h.svc.Capture(r.Context(), respond.UserID(r), req.Liabilities)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, snapshotResponse{
		ID:               s.ID,
		Date:             s.Date.Format(time.DateOnly),
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		NetWorth:         s.NetWorth(),
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), respond.UserID(r), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
