package insurance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
)

type Handler struct {
	svc *insurance.Service
}

func NewHandler(svc *insurance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type policyRequest struct {
	Company        string          `json:"company"`
	Description    string          `json:"description"`
	JoinDate       string          `json:"join_date"`
	EndDate        *string         `json:"end_date,omitempty"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Payout         decimal.Decimal `json:"payout"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
}

func (req policyRequest) params() (insurance.Params, error) {
	join, err := respond.ParseDate(req.JoinDate)
	if err != nil {
		return insurance.Params{}, err
	}

	end, err := respond.OptionalDate(req.EndDate)
	if err != nil {
		return insurance.Params{}, err
	}

	return insurance.Params{
		Company:        req.Company,
		Description:    req.Description,
		JoinDate:       join,
		EndDate:        end,
		MonthlyPayment: req.MonthlyPayment,
		Payout:         req.Payout,
		TotalPayment:   req.TotalPayment,
	}, nil
}

type policyResponse struct {
	ID             uuid.UUID       `json:"id"`
	Company        string          `json:"company"`
	Description    string          `json:"description"`
	JoinDate       string          `json:"join_date"`
	EndDate        *string         `json:"end_date,omitempty"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Payout         decimal.Decimal `json:"payout"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toResponse(p *insurance.Policy) policyResponse {
	resp := policyResponse{
		ID:             p.ID,
		Company:        p.Company,
		Description:    p.Description,
		JoinDate:       p.JoinDate.Format(time.DateOnly),
		MonthlyPayment: p.MonthlyPayment,
		Payout:         p.Payout,
		TotalPayment:   p.TotalPayment,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}

	if p.EndDate != nil {
		resp.EndDate = new(p.EndDate.Format(time.DateOnly))
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req policyRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), respond.UserID(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	policies, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]policyResponse, 0, len(policies))
	for _, p := range policies {
		resp = append(resp, toResponse(p))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req policyRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), respond.UserID(r), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
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
