package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertSnapshot(ctx context.Context, snap *networth.Snapshot) error {
	query := `
		INSERT INTO net_worth_snapshots (user_id, date, total_assets, total_liabilities)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date) DO UPDATE
		SET total_assets = EXCLUDED.total_assets, total_liabilities = EXCLUDED.total_liabilities
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		snap.UserID, snap.Date, snap.TotalAssets, snap.TotalLiabilities,
	).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting net worth snapshot: %w", err)
	}

	return nil
}

func (s *Store) ListSnapshots(ctx context.Context, userID string) ([]*networth.Snapshot, error) {
	query := `
		SELECT id, user_id, date, total_assets, total_liabilities, created_at
		FROM net_worth_snapshots
		WHERE user_id = $1
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing net worth snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*networth.Snapshot

	for rows.Next() {
		var snap networth.Snapshot
		if err := rows.Scan(
			&snap.ID, &snap.UserID, &snap.Date, &snap.TotalAssets, &snap.TotalLiabilities, &snap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning net worth snapshot: %w", err)
		}

		snaps = append(snaps, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating net worth snapshots: %w", err)
	}

	return snaps, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM net_worth_snapshots WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting net worth snapshot: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting net worth snapshot: %w", err)
	}

	if n == 0 {
		return networth.ErrNotFound
	}

	return nil
}
