package savings

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

var (
	ErrNotFound      = errors.New("saving deposit not found")
	ErrMissingBank   = errors.New("bank name is required")
	ErrInvalidKind   = errors.New("kind must be deposit or installment")
	ErrInvalidAmount = errors.New("principal must be greater than zero")
	ErrInvalidRate   = errors.New("interest rate cannot be negative")
	ErrInvalidPeriod = errors.New("period must be at least one month")
)

// DefaultPeriodMonths applies when a deposit is entered without a term.
const DefaultPeriodMonths = 12

// WithholdingRate is the tax taken from interest on non tax-free products.
var WithholdingRate = decimal.RequireFromString("0.154")

type Kind string

const (
	KindDeposit     Kind = "deposit"
	KindInstallment Kind = "installment"
)

type Deposit struct {
	ID           uuid.UUID
	UserID       string
	Kind         Kind
	BankName     string
	JoinDate     time.Time
	MaturityDate *time.Time
	InterestRate decimal.Decimal // percent per year
	PeriodMonths int
	Amount       decimal.Decimal // principal
	TaxFree      bool
	Currency     currency.Currency
	ExchangeRate decimal.Decimal

	MaturityAmountPreTax   decimal.Decimal
	MaturityAmountPostTax  decimal.Decimal
	MaturityAmountOriginal decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interest is flat simple interest over the term: P × r/100 × months/12.
func Interest(principal, ratePct decimal.Decimal, months int) decimal.Decimal {
	return principal.Mul(ratePct).Mul(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(1200))
}

// Mature fills the maturity amounts from principal, rate and term.
func (d *Deposit) Mature() {
	interest := Interest(d.Amount, d.InterestRate, d.PeriodMonths)

	afterTax := interest
	if !d.TaxFree {
		afterTax = interest.Mul(decimal.NewFromInt(1).Sub(WithholdingRate))
	}

	d.MaturityAmountPreTax = d.Amount.Add(interest)
	d.MaturityAmountPostTax = d.Amount.Add(afterTax)
	d.MaturityAmountOriginal = d.MaturityAmountPreTax
}
