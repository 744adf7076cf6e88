package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

var (
	ErrNotFound       = errors.New("budget not set for month")
	ErrInvalidMonth   = errors.New("month must be formatted YYYY-MM")
	ErrNegativeAmount = errors.New("budget cannot be negative")
)

// MonthLayout is the time layout of a budget month key.
const MonthLayout = "2006-01"

type Budget struct {
	UserID    string
	Month     string
	Amount    decimal.Decimal
	Currency  currency.Currency
	UpdatedAt time.Time
}

// ParseMonth validates a YYYY-MM key and returns the first day of the month.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}

	return t, nil
}
