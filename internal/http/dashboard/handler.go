package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type totalsResponse struct {
	Stock      decimal.Decimal `json:"stock"`
	Cash       decimal.Decimal `json:"cash"`
	Savings    decimal.Decimal `json:"savings"`
	Insurance  decimal.Decimal `json:"insurance"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

type monthResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type categoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

type budgetResponse struct {
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
}

type summaryResponse struct {
	Month        string             `json:"month"`
	ExchangeRate decimal.Decimal    `json:"exchange_rate"`
	Totals       totalsResponse     `json:"totals"`
	Allocation   totalsResponse     `json:"allocation"`
	CashFlow     monthResponse      `json:"cash_flow"`
	Categories   []categoryResponse `json:"categories"`
	Budget       *budgetResponse    `json:"budget,omitempty"`
}

func toResponse(s *dashboard.Summary) summaryResponse {
	resp := summaryResponse{
		Month:        s.Month,
		ExchangeRate: s.Rate,
		Totals: totalsResponse{
			Stock:      s.Totals.Stock,
			Cash:       s.Totals.Cash,
			Savings:    s.Totals.Savings,
			Insurance:  s.Totals.Insurance,
			GrandTotal: s.Totals.GrandTotal,
		},
		Allocation: allocation(s.Allocation),
		CashFlow: monthResponse{
			Income:  s.Stats.Income,
			Expense: s.Stats.Expense,
			Net:     s.Stats.Net,
		},
		Categories: make([]categoryResponse, 0, len(s.Categories)),
	}

	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, categoryResponse{
			Category: c.Category,
			Amount:   c.Amount,
			Percent:  c.Percent,
		})
	}

	if s.Budget != nil {
		resp.Budget = &budgetResponse{
			Budget:    s.Budget.Budget,
			Spent:     s.Budget.Spent,
			Remaining: s.Budget.Remaining,
			Percent:   s.Budget.Percent,
		}
	}

	return resp
}

func allocation(a metrics.Allocation) totalsResponse {
	return totalsResponse{
		Stock:     a.Stock,
		Cash:      a.Cash,
		Savings:   a.Savings,
		Insurance: a.Insurance,
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), respond.UserID(r), r.URL.Query().Get("month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(sum))
}
