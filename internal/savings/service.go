package savings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=savings
type Repository interface {
	CreateDeposit(ctx context.Context, d *Deposit) error
	GetDeposit(ctx context.Context, userID string, id uuid.UUID) (*Deposit, error)
	ListDeposits(ctx context.Context, userID string) ([]*Deposit, error)
	UpdateDeposit(ctx context.Context, d *Deposit) error
	DeleteDeposit(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo         Repository
	fallbackRate decimal.Decimal
}

func NewService(repo Repository, fallbackRate decimal.Decimal) *Service {
	return &Service{repo: repo, fallbackRate: fallbackRate}
}

type Params struct {
	Kind         Kind
	BankName     string
	JoinDate     time.Time
	MaturityDate *time.Time
	InterestRate decimal.Decimal
	PeriodMonths int
	Amount       decimal.Decimal
	TaxFree      bool
	Currency     currency.Currency
	ExchangeRate decimal.Decimal
}

func (s *Service) Create(ctx context.Context, userID string, params Params) (*Deposit, error) {
	d := &Deposit{UserID: userID}
	if err := s.apply(d, params); err != nil {
		return nil, err
	}

	if err := s.repo.CreateDeposit(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Deposit, error) {
	return s.repo.GetDeposit(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Deposit, error) {
	return s.repo.ListDeposits(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params Params) (*Deposit, error) {
	d, err := s.repo.GetDeposit(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(d, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDeposit(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteDeposit(ctx, userID, id)
}

func (s *Service) apply(d *Deposit, p Params) error {
	p.BankName = strings.TrimSpace(p.BankName)
	if p.BankName == "" {
		return ErrMissingBank
	}

	if p.Kind == "" {
		p.Kind = KindDeposit
	}

	if p.Kind != KindDeposit && p.Kind != KindInstallment {
		return ErrInvalidKind
	}

	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if p.InterestRate.IsNegative() {
		return ErrInvalidRate
	}

	if p.PeriodMonths == 0 {
		p.PeriodMonths = DefaultPeriodMonths
	}

	if p.PeriodMonths < 0 {
		return ErrInvalidPeriod
	}

	if p.Currency == "" {
		p.Currency = currency.KRW
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

	if p.MaturityDate == nil && !p.JoinDate.IsZero() {
		p.MaturityDate = new(p.JoinDate.AddDate(0, p.PeriodMonths, 0))
	}

	d.Kind = p.Kind
	d.BankName = p.BankName
	d.JoinDate = p.JoinDate
	d.MaturityDate = p.MaturityDate
	d.InterestRate = p.InterestRate
	d.PeriodMonths = p.PeriodMonths
	d.Amount = p.Amount
	d.TaxFree = p.TaxFree
	d.Currency = p.Currency
	d.ExchangeRate = p.ExchangeRate
	d.Mature()

	return nil
}
