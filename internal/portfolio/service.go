package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=portfolio
type Repository interface {
	CreateStock(ctx context.Context, s *Stock) error
	GetStock(ctx context.Context, userID string, id uuid.UUID) (*Stock, error)
	ListStocks(ctx context.Context, userID string) ([]*Stock, error)
	UpdateStock(ctx context.Context, s *Stock) error
	DeleteStock(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo         Repository
	fallbackRate decimal.Decimal
	now          func() time.Time
}

// NewService creates a portfolio service. fallbackRate is the USD/KRW rate
// stored on USD lots entered without one.
func NewService(repo Repository, fallbackRate decimal.Decimal) *Service {
	return &Service{repo: repo, fallbackRate: fallbackRate, now: time.Now}
}

type Params struct {
	PurchaseDate time.Time
	Broker       string
	TradeType    TradeType
	Name         string
	Code         string
	Market       string
	Sector       string
	UnitPrice    decimal.Decimal
	Quantity     decimal.Decimal
	Note         string
	Currency     currency.Currency
	ExchangeRate decimal.Decimal
	CurrentPrice decimal.Decimal
}

func (s *Service) Create(ctx context.Context, userID string, params Params) (*Stock, error) {
	st := &Stock{UserID: userID}
	if err := s.apply(st, params); err != nil {
		return nil, err
	}

	if err := s.repo.CreateStock(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Stock, error) {
	return s.repo.GetStock(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Stock, error) {
	return s.repo.ListStocks(ctx, userID)
}

// Update overwrites the lot and recomputes its valuation fields.
func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params Params) (*Stock, error) {
	st, err := s.repo.GetStock(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(st, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStock(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteStock(ctx, userID, id)
}

func (s *Service) apply(st *Stock, p Params) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrMissingName
	}

	if p.TradeType == "" {
		p.TradeType = TradeBuy
	}

	if p.TradeType != TradeBuy && p.TradeType != TradeSell {
		return ErrInvalidTradeType
	}

	if !p.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}

	if p.UnitPrice.IsNegative() || p.CurrentPrice.IsNegative() {
		return ErrNegativePrice
	}

	if p.Currency == "" {
		p.Currency = currency.USD
	}

	if !p.Currency.Valid() {
		return fmt.Errorf("%w: %s", currency.ErrUnsupported, p.Currency)
	}

	switch {
	case p.Currency == currency.KRW:
		p.ExchangeRate = decimal.NewFromInt(1)
	case !p.ExchangeRate.IsPositive():
		p.ExchangeRate = s.fallbackRate
	}

	if p.CurrentPrice.IsZero() {
		p.CurrentPrice = p.UnitPrice
	}

	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = s.now()
	}

	st.PurchaseDate = time.Date(p.PurchaseDate.Year(), p.PurchaseDate.Month(), p.PurchaseDate.Day(), 0, 0, 0, 0, time.UTC)
	st.Broker = strings.TrimSpace(p.Broker)
	st.TradeType = p.TradeType
	st.Name = p.Name
	st.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	st.Market = strings.TrimSpace(p.Market)
	st.Sector = strings.TrimSpace(p.Sector)
	st.UnitPrice = p.UnitPrice
	st.Quantity = p.Quantity
	st.Note = p.Note
	st.Currency = p.Currency
	st.ExchangeRate = p.ExchangeRate
	st.CurrentPrice = p.CurrentPrice
	st.Revalue()

	return nil
}
