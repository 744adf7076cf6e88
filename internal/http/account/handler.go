package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type accountResponse struct {
	ID          uuid.UUID         `json:"id"`
	BankName    string            `json:"bank_name"`
	AccountName string            `json:"account_name"`
	Balance     decimal.Decimal   `json:"balance"`
	Currency    currency.Currency `json:"currency"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		BankName:    a.BankName,
		AccountName: a.AccountName,
		Balance:     a.Balance,
		Currency:    a.Currency,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type createRequest struct {
	BankName    string            `json:"bank_name"`
	AccountName string            `json:"account_name"`
	Balance     decimal.Decimal   `json:"balance"`
	Currency    currency.Currency `json:"currency"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	a, err := h.svc.Create(r.Context(), respond.UserID(r), account.CreateParams{
		BankName:    req.BankName,
		AccountName: req.AccountName,
		Balance:     req.Balance,
		Currency:    req.Currency,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, toResponse(a))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
}

type updateRequest struct {
	BankName    *string            `json:"bank_name,omitempty"`
	AccountName *string            `json:"account_name,omitempty"`
	Balance     *decimal.Decimal   `json:"balance,omitempty"`
	Currency    *currency.Currency `json:"currency,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	a, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.BankName != nil {
		a.BankName = *req.BankName
	}

	if req.AccountName != nil {
		a.AccountName = *req.AccountName
	}

	if req.Balance != nil {
		a.Balance = *req.Balance
	}

	if req.Currency != nil {
		a.Currency = *req.Currency
	}

	if err := h.svc.Update(r.Context(), a); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
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
