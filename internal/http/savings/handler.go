package savings

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

type Handler struct {
	svc *savings.Service
}

func NewHandler(svc *savings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type depositRequest struct {
	Kind         savings.Kind      `json:"kind"`
	BankName     string            `json:"bank_name"`
	JoinDate     string            `json:"join_date"`
	MaturityDate *string           `json:"maturity_date,omitempty"`
	InterestRate decimal.Decimal   `json:"interest_rate"`
	PeriodMonths int               `json:"period_months"`
	Amount       decimal.Decimal   `json:"amount"`
	TaxFree      bool              `json:"tax_free"`
	Currency     currency.Currency `json:"currency"`
	ExchangeRate decimal.Decimal   `json:"exchange_rate"`
}

func (req depositRequest) params() (savings.Params, error) {
	join, err := respond.ParseDate(req.JoinDate)
	if err != nil {
		return savings.Params{}, err
	}

	maturity, err := respond.OptionalDate(req.MaturityDate)
	if err != nil {
		return savings.Params{}, err
	}

	return savings.Params{
		Kind:         req.Kind,
		BankName:     req.BankName,
		JoinDate:     join,
		MaturityDate: maturity,
		InterestRate: req.InterestRate,
		PeriodMonths: req.PeriodMonths,
		Amount:       req.Amount,
		TaxFree:      req.TaxFree,
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
	}, nil
}

type depositResponse struct {
	ID                     uuid.UUID         `json:"id"`
	Kind                   savings.Kind      `json:"kind"`
	BankName               string            `json:"bank_name"`
	JoinDate               string            `json:"join_date"`
	MaturityDate           *string           `json:"maturity_date,omitempty"`
	InterestRate           decimal.Decimal   `json:"interest_rate"`
	PeriodMonths           int               `json:"period_months"`
	Amount                 decimal.Decimal   `json:"amount"`
	TaxFree                bool              `json:"tax_free"`
	Currency               currency.Currency `json:"currency"`
	ExchangeRate           decimal.Decimal   `json:"exchange_rate"`
	MaturityAmountPreTax   decimal.Decimal   `json:"maturity_amount_pre_tax"`
	MaturityAmountPostTax  decimal.Decimal   `json:"maturity_amount_post_tax"`
	MaturityAmountOriginal decimal.Decimal   `json:"maturity_amount_original"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

func toResponse(d *savings.Deposit) depositResponse {
	resp := depositResponse{
		ID:                     d.ID,
		Kind:                   d.Kind,
		BankName:               d.BankName,
		JoinDate:               d.JoinDate.Format(time.DateOnly),
		InterestRate:           d.InterestRate,
		PeriodMonths:           d.PeriodMonths,
		Amount:                 d.Amount,
		TaxFree:                d.TaxFree,
		Currency:               d.Currency,
		ExchangeRate:           d.ExchangeRate,
		MaturityAmountPreTax:   d.MaturityAmountPreTax,
		MaturityAmountPostTax:  d.MaturityAmountPostTax,
		MaturityAmountOriginal: d.MaturityAmountOriginal,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}

	if d.MaturityDate != nil {
		resp.MaturityDate = new(d.MaturityDate.Format(time.DateOnly))
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Create(r.Context(), respond.UserID(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(d))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]depositResponse, 0, len(deposits))
	for _, d := range deposits {
		resp = append(resp, toResponse(d))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req depositRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Update(r.Context(), respond.UserID(r), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(d))
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
