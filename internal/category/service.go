package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context, userID string, t *ledger.Type) ([]*Category, error)
	MaxOrder(ctx context.Context, userID string, t ledger.Type) (int, error)
	CreateCategory(ctx context.Context, c *Category) error
	RenameCategory(ctx context.Context, userID string, id uuid.UUID, name string) error
	DeleteCategory(ctx context.Context, userID string, id uuid.UUID) error
	// SeedCategories inserts cats in one transaction when the user has no
	// categories yet and reports whether it did.
	SeedCategories(ctx context.Context, userID string, cats []*Category) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureDefaults seeds the default categories for a user who has none.
func (s *Service) EnsureDefaults(ctx context.Context, userID string) (bool, error) {
	seeded, err := s.repo.SeedCategories(ctx, userID, defaultSet(userID))
	if err != nil {
		return false, fmt.Errorf("seed categories: %w", err)
	}

	return seeded, nil
}

// List returns the user's categories ordered by type and order, seeding
// the defaults on first use.
func (s *Service) List(ctx context.Context, userID string, t *ledger.Type) ([]*Category, error) {
	if _, err := s.EnsureDefaults(ctx, userID); err != nil {
		return nil, err
	}

	return s.repo.ListCategories(ctx, userID, t)
}

// Create appends a category after the last one of the same type. A user
// with no categories gets the defaults first.
func (s *Service) Create(ctx context.Context, userID, name string, t ledger.Type) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}

	if !t.Valid() {
		return nil, ledger.ErrInvalidType
	}

	if _, err := s.EnsureDefaults(ctx, userID); err != nil {
		return nil, err
	}

	last, err := s.repo.MaxOrder(ctx, userID, t)
	if err != nil {
		return nil, fmt.Errorf("max order: %w", err)
	}

	c := &Category{UserID: userID, Name: name, Type: t, Order: last + 1}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Rename(ctx context.Context, userID string, id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingName
	}

	return s.repo.RenameCategory(ctx, userID, id, name)
}

// Delete removes the category. Entries keep the category name they were posted with.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}
