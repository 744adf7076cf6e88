package networth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=networth
type Repository interface {
	// UpsertSnapshot replaces any snapshot the user already has for s.Date.
	UpsertSnapshot(ctx context.Context, s *Snapshot) error
	ListSnapshots(ctx context.Context, userID string) ([]*Snapshot, error)
	DeleteSnapshot(ctx context.Context, userID string, id uuid.UUID) error
}

// AssetTotaler reports a user's current total assets in KRW.
type AssetTotaler interface {
	GrandTotal(ctx context.Context, userID string) (decimal.Decimal, error)
}

type Service struct {
	repo   Repository
	assets AssetTotaler
	now    func() time.Time
}

func NewService(repo Repository, assets AssetTotaler) *Service {
	return &Service{repo: repo, assets: assets, now: time.Now}
}

// Capture stores today's snapshot from the current asset total and the
// supplied liabilities.
func (s *Service) Capture(ctx context.Context, userID string, liabilities decimal.Decimal) (*Snapshot, error) {
	if liabilities.IsNegative() {
		return nil, ErrNegativeAmount
	}

	total, err := s.assets.GrandTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("total assets: %w", err)
	}

	now := s.now()

	snap := &Snapshot{
		UserID:           userID,
		Date:             time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		TotalAssets:      total,
		TotalLiabilities: liabilities,
	}

	if err := s.repo.UpsertSnapshot(ctx, snap); err != nil {
		return nil, err
	}

	return snap, nil
}

// List returns snapshots oldest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Snapshot, error) {
	return s.repo.ListSnapshots(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteSnapshot(ctx, userID, id)
}
