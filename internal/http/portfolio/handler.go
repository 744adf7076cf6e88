package portfolio

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
)

type RateSource interface {
	USDKRW(ctx context.Context) decimal.Decimal
}

type Handler struct {
	svc   *portfolio.Service
	rates RateSource
}

func NewHandler(svc *portfolio.Service, rates RateSource) *Handler {
	return &Handler{svc: svc, rates: rates}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type stockRequest struct {
	PurchaseDate string              `json:"purchase_date"`
	Broker       string              `json:"broker"`
	TradeType    portfolio.TradeType `json:"trade_type"`
	Name         string              `json:"name"`
	Code         string              `json:"code"`
	Market       string              `json:"market"`
	Sector       string              `json:"sector"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Note         string              `json:"note"`
	Currency     currency.Currency   `json:"currency"`
	ExchangeRate decimal.Decimal     `json:"exchange_rate"`
	CurrentPrice decimal.Decimal     `json:"current_price"`
}

func (req stockRequest) params() (portfolio.Params, error) {
	date, err := respond.ParseDate(req.PurchaseDate)
	if err != nil {
		return portfolio.Params{}, err
	}

	return portfolio.Params{
		PurchaseDate: date,
		Broker:       req.Broker,
		TradeType:    req.TradeType,
		Name:         req.Name,
		Code:         req.Code,
		Market:       req.Market,
		Sector:       req.Sector,
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
		Note:         req.Note,
		Currency:     req.Currency,
		ExchangeRate: req.ExchangeRate,
		CurrentPrice: req.CurrentPrice,
	}, nil
}

type stockResponse struct {
	ID               uuid.UUID           `json:"id"`
	PurchaseDate     string              `json:"purchase_date"`
	Broker           string              `json:"broker"`
	TradeType        portfolio.TradeType `json:"trade_type"`
	Name             string              `json:"name"`
	Code             string              `json:"code"`
	Market           string              `json:"market"`
	Sector           string              `json:"sector"`
	UnitPrice        decimal.Decimal     `json:"unit_price"`
	Quantity         decimal.Decimal     `json:"quantity"`
	Note             string              `json:"note"`
	Currency         currency.Currency   `json:"currency"`
	ExchangeRate     decimal.Decimal     `json:"exchange_rate"`
	CurrentPrice     decimal.Decimal     `json:"current_price"`
	Amount           decimal.Decimal     `json:"amount"`
	AdjustedAvgPrice decimal.Decimal     `json:"adjusted_avg_price"`
	TotalAmountKRW   decimal.Decimal     `json:"total_amount_krw"`
	RealizedGain     decimal.Decimal     `json:"realized_gain"`
	ValuationKRW     decimal.Decimal     `json:"valuation_krw"`
	Profit           decimal.Decimal     `json:"profit"`
	ProfitRate       decimal.Decimal     `json:"profit_rate"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func toResponse(s *portfolio.Stock, usdKRW decimal.Decimal) stockResponse {
	return stockResponse{
		ID:               s.ID,
		PurchaseDate:     s.PurchaseDate.Format(time.DateOnly),
		Broker:           s.Broker,
		TradeType:        s.TradeType,
		Name:             s.Name,
		Code:             s.Code,
		Market:           s.Market,
		Sector:           s.Sector,
		UnitPrice:        s.UnitPrice,
		Quantity:         s.Quantity,
		Note:             s.Note,
		Currency:         s.Currency,
		ExchangeRate:     s.ExchangeRate,
		CurrentPrice:     s.CurrentPrice,
		Amount:           s.Amount,
		AdjustedAvgPrice: s.AdjustedAvgPrice,
		TotalAmountKRW:   s.TotalAmountKRW,
		RealizedGain:     s.RealizedGain,
		ValuationKRW:     metrics.StockValuation(s, usdKRW),
		Profit:           metrics.StockProfit(s),
		ProfitRate:       metrics.StockProfitRate(s),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Create(r.Context(), respond.UserID(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(s, h.rates.USDKRW(r.Context())))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rate := h.rates.USDKRW(r.Context())

	resp := make([]stockResponse, 0, len(stocks))
	for _, s := range stocks {
		resp = append(resp, toResponse(s, rate))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s, h.rates.USDKRW(r.Context())))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req stockRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	s, err := h.svc.Update(r.Context(), respond.UserID(r), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s, h.rates.USDKRW(r.Context())))
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
