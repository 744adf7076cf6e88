package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (s *Store) ListCategories(ctx context.Context, userID string, t *ledger.Type) ([]*category.Category, error) {
	query := `SELECT id, user_id, name, type, sort_order, created_at FROM categories WHERE user_id = $1`
	args := []any{userID}

	if t != nil {
		query += ` AND type = $2`

		args = append(args, *t)
	}

	query += ` ORDER BY type ASC, sort_order ASC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []*category.Category

	for rows.Next() {
		var (
			c       category.Category
			typeStr string
		)

		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &typeStr, &c.Order, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Type = ledger.Type(typeStr)
		cats = append(cats, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cats, nil
}

func (s *Store) MaxOrder(ctx context.Context, userID string, t ledger.Type) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM categories WHERE user_id = $1 AND type = $2`, userID, t,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("querying max category order: %w", err)
	}

	return n, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Type, c.Order).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicate
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) RenameCategory(ctx context.Context, userID string, id uuid.UUID, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE user_id = $2 AND id = $3`, name, userID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicate
		}

		return fmt.Errorf("renaming category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming category: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if n == 0 {
		return category.ErrNotFound
	}

	return nil
}

func (s *Store) SeedCategories(ctx context.Context, userID string, cats []*category.Category) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking categories: %w", err)
	}

	if exists {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning seed tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (user_id, name, type, sort_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, type, name) DO NOTHING
	`)
	if err != nil {
		return false, fmt.Errorf("preparing seed statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range cats {
		if _, err := stmt.ExecContext(ctx, userID, c.Name, c.Type, c.Order); err != nil {
			return false, fmt.Errorf("seeding category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed tx: %w", err)
	}

	return true, nil
}
