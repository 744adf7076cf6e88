package networth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("net worth snapshot not found")
	ErrNegativeAmount = errors.New("liabilities cannot be negative")
)

// Snapshot records total assets and liabilities on a date.
type Snapshot struct {
	ID               uuid.UUID
	UserID           string
	Date             time.Time
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	CreatedAt        time.Time
}

func (s *Snapshot) NetWorth() decimal.Decimal {
	return s.TotalAssets.Sub(s.TotalLiabilities)
}
