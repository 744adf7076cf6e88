package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateYear(ctx context.Context, y *Year) error
	GetYear(ctx context.Context, userID string, id uuid.UUID) (*Year, error)
	ListYears(ctx context.Context, userID string) ([]*Year, error)
	UpdateYear(ctx context.Context, y *Year) error
	DeleteYear(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Year          int
	Age           int
	House         decimal.Decimal
	Car           decimal.Decimal
	Education     decimal.Decimal
	FamilyExpense decimal.Decimal
	Etc           decimal.Decimal
}

func (s *Service) Create(ctx context.Context, userID string, params Params) (*Year, error) {
	y := &Year{UserID: userID}
	if err := apply(y, params); err != nil {
		return nil, err
	}

	if err := s.repo.CreateYear(ctx, y); err != nil {
		return nil, err
	}

	return y, nil
}

// List returns the plan ordered by year.
func (s *Service) List(ctx context.Context, userID string) ([]*Year, error) {
	return s.repo.ListYears(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params Params) (*Year, error) {
	y, err := s.repo.GetYear(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(y, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateYear(ctx, y); err != nil {
		return nil, err
	}

	return y, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteYear(ctx, userID, id)
}

func apply(y *Year, p Params) error {
	if p.Year < 1900 || p.Year > 2200 {
		return ErrInvalidYear
	}

	for _, d := range []decimal.Decimal{p.House, p.Car, p.Education, p.FamilyExpense, p.Etc} {
		if d.IsNegative() {
			return ErrNegativeAmount
		}
	}

	y.Year = p.Year
	y.Age = p.Age
	y.House = p.House
	y.Car = p.Car
	y.Education = p.Education
	y.FamilyExpense = p.FamilyExpense
	y.Etc = p.Etc

	return nil
}
