package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

type EntryLister interface {
	List(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Entry, error)
}

type Handler struct {
	svc     *budget.Service
	entries EntryLister
}

func NewHandler(svc *budget.Service, entries EntryLister) *Handler {
	return &Handler{svc: svc, entries: entries}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{month}", h.get)
	r.Put("/{month}", h.set)
	r.Delete("/{month}", h.delete)
}

type budgetResponse struct {
	Month     string            `json:"month"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  currency.Currency `json:"currency"`
	Spent     decimal.Decimal   `json:"spent"`
	Remaining decimal.Decimal   `json:"remaining"`
	Percent   decimal.Decimal   `json:"percent"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (h *Handler) respondWithUsage(w http.ResponseWriter, r *http.Request, status int, b *budget.Budget) {
	entries, err := h.entries.List(r.Context(), respond.UserID(r), ledger.ListFilter{Month: b.Month})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	usage := metrics.Usage(b.Amount, metrics.Month(entries, b.Month).Expense)

	respond.JSON(w, status, budgetResponse{
		Month:     b.Month,
		Amount:    b.Amount,
		Currency:  b.Currency,
		Spent:     usage.Spent,
		Remaining: usage.Remaining,
		Percent:   usage.Percent,
		UpdatedAt: b.UpdatedAt,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), respond.UserID(r), chi.URLParam(r, "month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.respondWithUsage(w, r, http.StatusOK, b)
}

type setRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency currency.Currency `json:"currency"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Set(r.Context(), respond.UserID(r), chi.URLParam(r, "month"), req.Amount, req.Currency)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.respondWithUsage(w, r, http.StatusOK, b)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), respond.UserID(r), chi.URLParam(r, "month")); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
