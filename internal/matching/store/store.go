package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCategory(ctx context.Context, userID, rawDescription string) (string, error) {
	query := `
		SELECT category
		FROM description_mappings
		WHERE user_id = $1 AND strpos(lower($2), lower(raw_pattern)) > 0
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, userID, rawDescription).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding category: %w", err)
	}

	return category, nil
}

func (s *Store) CreateMapping(ctx context.Context, m *matching.Mapping) error {
	query := `
		INSERT INTO description_mappings (user_id, raw_pattern, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, m.UserID, m.RawPattern, m.Category).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context, userID string) ([]*matching.Mapping, error) {
	query := `
		SELECT id, user_id, raw_pattern, category, created_at
		FROM description_mappings
		WHERE user_id = $1
		ORDER BY raw_pattern ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}
	defer rows.Close()

	var mappings []*matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.ID, &m.UserID, &m.RawPattern, &m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning mapping: %w", err)
		}

		mappings = append(mappings, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mappings: %w", err)
	}

	return mappings, nil
}

func (s *Store) DeleteMapping(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM description_mappings WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting mapping: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting mapping: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
