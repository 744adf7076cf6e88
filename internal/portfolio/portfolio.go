package portfolio

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

var (
	ErrNotFound         = errors.New("stock holding not found")
	ErrMissingName      = errors.New("stock name is required")
	ErrInvalidTradeType = errors.New("trade type must be buy or sell")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Stock is one purchase lot. The valuation fields below CurrentPrice are
// computed when the lot is written and are not refreshed afterwards.
type Stock struct {
	ID           uuid.UUID
	UserID       string
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

	Amount           decimal.Decimal
	AdjustedAvgPrice decimal.Decimal
	TotalAmount      decimal.Decimal
	TotalAmountKRW   decimal.Decimal
	RealizedGain     decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Revalue recomputes the write-time valuation fields from price, quantity
// and the exchange-rate snapshot.
func (s *Stock) Revalue() {
	s.Amount = s.UnitPrice.Mul(s.Quantity)
	s.AdjustedAvgPrice = s.UnitPrice
	s.TotalAmount = s.Amount
	s.TotalAmountKRW = s.Amount.Mul(s.ExchangeRate)
	s.RealizedGain = decimal.Zero
}
