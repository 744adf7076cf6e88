package insurance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound       = errors.New("insurance policy not found")
	ErrMissingCompany = errors.New("insurance company is required")
	ErrNegativeAmount = errors.New("payments and payout cannot be negative")
	ErrEndBeforeJoin  = errors.New("end date is before join date")
)

// Policy is an insurance contract. TotalPayment is entered by the user and
// counts towards total assets.
type Policy struct {
	ID             uuid.UUID
	UserID         string
	Company        string
	Description    string
	JoinDate       time.Time
	EndDate        *time.Time
	MonthlyPayment decimal.Decimal
	Payout         decimal.Decimal
	TotalPayment   decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
