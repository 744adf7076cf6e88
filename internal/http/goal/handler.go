package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type yearRequest struct {
	Year          int             `json:"year"`
	Age           int             `json:"age"`
	House         decimal.Decimal `json:"house"`
	Car           decimal.Decimal `json:"car"`
	Education     decimal.Decimal `json:"education"`
	FamilyExpense decimal.Decimal `json:"family_expense"`
	Etc           decimal.Decimal `json:"etc"`
}

func (req yearRequest) params() goal.Params {
	return goal.Params{
		Year:          req.Year,
		Age:           req.Age,
		House:         req.House,
		Car:           req.Car,
		Education:     req.Education,
		FamilyExpense: req.FamilyExpense,
		Etc:           req.Etc,
	}
}

type yearResponse struct {
	ID            uuid.UUID       `json:"id"`
	Year          int             `json:"year"`
	Age           int             `json:"age"`
	House         decimal.Decimal `json:"house"`
	Car           decimal.Decimal `json:"car"`
	Education     decimal.Decimal `json:"education"`
	FamilyExpense decimal.Decimal `json:"family_expense"`
	Etc           decimal.Decimal `json:"etc"`
	TotalNeeded   decimal.Decimal `json:"total_needed"`
}

func toResponse(y *goal.Year) yearResponse {
	return yearResponse{
		ID:            y.ID,
		Year:          y.Year,
		Age:           y.Age,
		House:         y.House,
		Car:           y.Car,
		Education:     y.Education,
		FamilyExpense: y.FamilyExpense,
		Etc:           y.Etc,
		TotalNeeded:   y.TotalNeeded(),
	}
}

type summaryResponse struct {
	TotalNeeded decimal.Decimal `json:"total_needed"`
	FirstYear   int             `json:"first_year,omitempty"`
	LastYear    int             `json:"last_year,omitempty"`
	PeakYear    int             `json:"peak_year,omitempty"`
}

type planResponse struct {
	Years   []yearResponse  `json:"years"`
	Summary summaryResponse `json:"summary"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sum := metrics.SummarizeGoals(years)

	resp := planResponse{
		Years: make([]yearResponse, 0, len(years)),
		Summary: summaryResponse{
			TotalNeeded: sum.TotalNeeded,
			FirstYear:   sum.FirstYear,
			LastYear:    sum.LastYear,
		},
	}

	if sum.Peak != nil {
		resp.Summary.PeakYear = sum.Peak.Year
	}

	for _, y := range years {
		resp.Years = append(resp.Years, toResponse(y))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req yearRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	y, err := h.svc.Create(r.Context(), respond.UserID(r), req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(y))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req yearRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	y, err := h.svc.Update(r.Context(), respond.UserID(r), id, req.params())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(y))
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
