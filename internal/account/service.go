package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, userID string, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	BankName    string
	AccountName string
	Balance     decimal.Decimal
	Currency    currency.Currency
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Account, error) {
	a := &Account{
		UserID:      userID,
		BankName:    strings.TrimSpace(params.BankName),
		AccountName: strings.TrimSpace(params.AccountName),
		Balance:     params.Balance,
		Currency:    params.Currency,
	}
	if err := validate(a); err != nil {
		return nil, err
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

// Update overwrites the account's fields, including a direct balance edit.
func (s *Service) Update(ctx context.Context, a *Account) error {
	a.BankName = strings.TrimSpace(a.BankName)
	a.AccountName = strings.TrimSpace(a.AccountName)

	if err := validate(a); err != nil {
		return err
	}

	return s.repo.UpdateAccount(ctx, a)
}

// Delete removes the account. Ledger entries that reference it are left untouched.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, userID, id)
}

func validate(a *Account) error {
	if a.BankName == "" || a.AccountName == "" {
		return ErrMissingField
	}

	if a.Currency == "" {
		a.Currency = currency.KRW
	}

	if !a.Currency.Valid() {
		return fmt.Errorf("%w: %s", currency.ErrUnsupported, a.Currency)
	}

	return nil
}
