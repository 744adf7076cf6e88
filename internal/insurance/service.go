package insurance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=insurance
type Repository interface {
	CreatePolicy(ctx context.Context, p *Policy) error
	GetPolicy(ctx context.Context, userID string, id uuid.UUID) (*Policy, error)
	ListPolicies(ctx context.Context, userID string) ([]*Policy, error)
	UpdatePolicy(ctx context.Context, p *Policy) error
	DeletePolicy(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type Params struct {
	Company        string
	Description    string
	JoinDate       time.Time
	EndDate        *time.Time
	MonthlyPayment decimal.Decimal
	Payout         decimal.Decimal
	TotalPayment   decimal.Decimal
}

func (s *Service) Create(ctx context.Context, userID string, params Params) (*Policy, error) {
	p := &Policy{UserID: userID}
	if err := s.apply(p, params); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePolicy(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Policy, error) {
	return s.repo.GetPolicy(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Policy, error) {
	return s.repo.ListPolicies(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params Params) (*Policy, error) {
	p, err := s.repo.GetPolicy(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(p, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePolicy(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeletePolicy(ctx, userID, id)
}

func (s *Service) apply(p *Policy, params Params) error {
	params.Company = strings.TrimSpace(params.Company)
	if params.Company == "" {
		return ErrMissingCompany
	}

	if params.MonthlyPayment.IsNegative() || params.Payout.IsNegative() || params.TotalPayment.IsNegative() {
		return ErrNegativeAmount
	}

	if params.JoinDate.IsZero() {
		params.JoinDate = s.now()
	}

	if params.EndDate != nil && params.EndDate.Before(params.JoinDate) {
		return ErrEndBeforeJoin
	}

	p.Company = params.Company
	p.Description = strings.TrimSpace(params.Description)
	p.JoinDate = params.JoinDate
	p.EndDate = params.EndDate
	p.MonthlyPayment = params.MonthlyPayment
	p.Payout = params.Payout
	p.TotalPayment = params.TotalPayment

	return nil
}
