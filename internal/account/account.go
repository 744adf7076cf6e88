package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

var (
	ErrNotFound     = errors.New("cash account not found")
	ErrMissingField = errors.New("bank name and account name are required")
)

// Account is a cash account whose balance is kept in sync with the ledger.
type Account struct {
	ID          uuid.UUID
	UserID      string
	BankName    string
	AccountName string
	Balance     decimal.Decimal
	Currency    currency.Currency
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label is the "Bank Account" name copied onto ledger entries.
func (a *Account) Label() string {
	return a.BankName + " " + a.AccountName
}
