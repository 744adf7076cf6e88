package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	UpsertBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, userID, month string) (*Budget, error)
	DeleteBudget(ctx context.Context, userID, month string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set creates or replaces the user's budget for month.
func (s *Service) Set(ctx context.Context, userID, month string, amount decimal.Decimal, cur currency.Currency) (*Budget, error) {
	if _, err := ParseMonth(month); err != nil {
		return nil, err
	}

	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if cur == "" {
		cur = currency.KRW
	}

	if !cur.Valid() {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnsupported, cur)
	}

	b := &Budget{UserID: userID, Month: month, Amount: amount, Currency: cur}
	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Get returns ErrNotFound when no budget is set for month.
func (s *Service) Get(ctx context.Context, userID, month string) (*Budget, error) {
	if _, err := ParseMonth(month); err != nil {
		return nil, err
	}

	return s.repo.GetBudget(ctx, userID, month)
}

func (s *Service) Delete(ctx context.Context, userID, month string) error {
	if _, err := ParseMonth(month); err != nil {
		return err
	}

	return s.repo.DeleteBudget(ctx, userID, month)
}
