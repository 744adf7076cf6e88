package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, user_id, year, age, house, car, education, family_expense, etc, created_at, updated_at`

func scanYear(s scanner) (*goal.Year, error) {
	var y goal.Year

	if err := s.Scan(
		&y.ID, &y.UserID, &y.Year, &y.Age, &y.House, &y.Car, &y.Education, &y.FamilyExpense, &y.Etc,
		&y.CreatedAt, &y.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &y, nil
}

func duplicateYear(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateYear(ctx context.Context, y *goal.Year) error {
	query := `
		INSERT INTO goal_years (user_id, year, age, house, car, education, family_expense, etc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		y.UserID, y.Year, y.Age, y.House, y.Car, y.Education, y.FamilyExpense, y.Etc,
	).Scan(&y.ID, &y.CreatedAt, &y.UpdatedAt)
	if err != nil {
		if duplicateYear(err) {
			return goal.ErrDuplicateYear
		}

		return fmt.Errorf("creating goal year: %w", err)
	}

	return nil
}

func (s *Store) GetYear(ctx context.Context, userID string, id uuid.UUID) (*goal.Year, error) {
	query := `SELECT ` + selectColumns + ` FROM goal_years WHERE user_id = $1 AND id = $2`

	y, err := scanYear(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal year: %w", err)
	}

	return y, nil
}

func (s *Store) ListYears(ctx context.Context, userID string) ([]*goal.Year, error) {
	query := `SELECT ` + selectColumns + ` FROM goal_years WHERE user_id = $1 ORDER BY year ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goal years: %w", err)
	}
	defer rows.Close()

	var years []*goal.Year

	for rows.Next() {
		y, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal year: %w", err)
		}

		years = append(years, y)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal years: %w", err)
	}

	return years, nil
}

func (s *Store) UpdateYear(ctx context.Context, y *goal.Year) error {
	query := `
		UPDATE goal_years
		SET year = $1, age = $2, house = $3, car = $4, education = $5, family_expense = $6, etc = $7,
			updated_at = NOW()
		WHERE user_id = $8 AND id = $9
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		y.Year, y.Age, y.House, y.Car, y.Education, y.FamilyExpense, y.Etc, y.UserID, y.ID,
	).Scan(&y.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return goal.ErrNotFound
		}

		if duplicateYear(err) {
			return goal.ErrDuplicateYear
		}

		return fmt.Errorf("updating goal year: %w", err)
	}

	return nil
}

func (s *Store) DeleteYear(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goal_years WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting goal year: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal year: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
