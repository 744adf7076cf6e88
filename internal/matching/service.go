// Package matching learns which category a user files a bank statement
// description under and pre-fills it on later imports.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

var (
	ErrNotFound      = errors.New("mapping not found")
	ErrMissingFields = errors.New("raw pattern and category are required")
)

// Mapping files statement descriptions containing RawPattern under Category.
type Mapping struct {
	ID         uuid.UUID
	UserID     string
	RawPattern string
	Category   string
	CreatedAt  time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindCategory returns the category of the longest pattern contained in
	// rawDescription, or "" when none matches.
	FindCategory(ctx context.Context, userID, rawDescription string) (string, error)
	CreateMapping(ctx context.Context, mapping *Mapping) error
	ListMappings(ctx context.Context, userID string) ([]*Mapping, error)
	DeleteMapping(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the learned category for rawDescription, or "".
func (s *Service) Suggest(ctx context.Context, userID, rawDescription string) (string, error) {
	if strings.TrimSpace(rawDescription) == "" {
		return "", nil
	}

	return s.repo.FindCategory(ctx, userID, rawDescription)
}

// Learn remembers that descriptions containing rawPattern belong to category.
func (s *Service) Learn(ctx context.Context, userID, rawPattern, category string) (*Mapping, error) {
	m := &Mapping{
		UserID:     userID,
		RawPattern: strings.TrimSpace(rawPattern),
		Category:   strings.TrimSpace(category),
	}

	if m.RawPattern == "" || m.Category == "" {
		return nil, ErrMissingFields
	}

	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Mapping, error) {
	return s.repo.ListMappings(ctx, userID)
}

func (s *Service) Forget(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteMapping(ctx, userID, id)
}

// Categorize fills the category of uncategorised rows from learned mappings.
func (s *Service) Categorize(ctx context.Context, userID string, rows []ledger.PostParams) error {
	for i := range rows {
		if rows[i].Category != "" {
			continue
		}

		cat, err := s.Suggest(ctx, userID, rows[i].RawDescription)
		if err != nil {
			return fmt.Errorf("suggest category for %q: %w", rows[i].RawDescription, err)
		}

		rows[i].Category = cat
	}

	return nil
}
