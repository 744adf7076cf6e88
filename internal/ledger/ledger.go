package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

var (
	ErrNotFound         = errors.New("ledger entry not found")
	ErrAccountNotFound  = errors.New("cash account not found")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidType      = errors.New("type must be expense, income or transfer")
	ErrMissingAccount   = errors.New("account is required")
	ErrSameAccount      = errors.New("transfer needs a destination account different from the source")
	ErrCurrencyMismatch = errors.New("transfer accounts must share a currency")
	ErrInvalidMonth     = errors.New("month must be YYYY-MM")
)

// Type is the kind of ledger entry.
type Type string

const (
	TypeExpense  Type = "expense"
	TypeIncome   Type = "income"
	TypeTransfer Type = "transfer"
)

func (t Type) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}

	return false
}

// Entry is a posted income, expense or transfer.
type Entry struct {
	ID             uuid.UUID
	UserID         string
	Type           Type
	Date           time.Time
	Amount         decimal.Decimal // always positive; the sign comes from Type
	AccountID      uuid.UUID
	AccountName    string
	ToAccountID    *uuid.UUID // transfers only
	ToAccountName  string
	Currency       currency.Currency
	Category       string
	Memo           string
	RawDescription string // statement text for imported entries
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Adjustment is a signed change to one account's balance.
type Adjustment struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// Deltas returns the balance changes posting e causes.
func Deltas(e *Entry) []Adjustment {
	switch e.Type {
	case TypeExpense:
		return []Adjustment{{AccountID: e.AccountID, Delta: e.Amount.Neg()}}
	case TypeIncome:
		return []Adjustment{{AccountID: e.AccountID, Delta: e.Amount}}
	case TypeTransfer:
		adjs := []Adjustment{{AccountID: e.AccountID, Delta: e.Amount.Neg()}}
		if e.ToAccountID != nil {
			adjs = append(adjs, Adjustment{AccountID: *e.ToAccountID, Delta: e.Amount})
		}

		return adjs
	}

	return nil
}

// Invert returns the adjustments that undo adjs.
func Invert(adjs []Adjustment) []Adjustment {
	out := make([]Adjustment, len(adjs))
	for i, a := range adjs {
		out[i] = Adjustment{AccountID: a.AccountID, Delta: a.Delta.Neg()}
	}

	return out
}
