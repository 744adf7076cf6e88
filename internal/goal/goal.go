package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("goal year not found")
	ErrDuplicateYear  = errors.New("a goal row already exists for that year")
	ErrInvalidYear    = errors.New("year is out of range")
	ErrNegativeAmount = errors.New("goal amounts cannot be negative")
)

// Year is one row of a financial-independence plan: the money a user
// expects to need in a given year, by purpose.
type Year struct {
	ID            uuid.UUID
	UserID        string
	Year          int
	Age           int
	House         decimal.Decimal
	Car           decimal.Decimal
	Education     decimal.Decimal
	FamilyExpense decimal.Decimal
	Etc           decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (y *Year) TotalNeeded() decimal.Decimal {
	return decimal.Sum(y.House, y.Car, y.Education, y.FamilyExpense, y.Etc)
}
