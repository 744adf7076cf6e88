package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, month, amount, currency)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, month) DO UPDATE
		SET amount = EXCLUDED.amount, currency = EXCLUDED.currency, updated_at = NOW()
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query, b.UserID, b.Month, b.Amount, b.Currency).Scan(&b.UpdatedAt); err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, month string) (*budget.Budget, error) {
	query := `SELECT user_id, month, amount, currency, updated_at FROM budgets WHERE user_id = $1 AND month = $2`

	var (
		b   budget.Budget
		cur string
	)

	err := s.db.QueryRowContext(ctx, query, userID, month).Scan(&b.UserID, &b.Month, &b.Amount, &cur, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	b.Currency = currency.Currency(cur)

	return &b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, month string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = $1 AND month = $2`, userID, month)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
