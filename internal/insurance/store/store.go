package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
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

const selectColumns = `
	id, user_id, company, description, join_date, end_date,
	monthly_payment, payout, total_payment, created_at, updated_at
`

func scanPolicy(s scanner) (*insurance.Policy, error) {
	var (
		p   insurance.Policy
		end sql.NullTime
	)

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Company, &p.Description, &p.JoinDate, &end,
		&p.MonthlyPayment, &p.Payout, &p.TotalPayment, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if end.Valid {
		p.EndDate = &end.Time
	}

	return &p, nil
}

func (s *Store) CreatePolicy(ctx context.Context, p *insurance.Policy) error {
	query := `
		INSERT INTO insurances (user_id, company, description, join_date, end_date, monthly_payment, payout, total_payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.UserID, p.Company, p.Description, p.JoinDate, p.EndDate, p.MonthlyPayment, p.Payout, p.TotalPayment,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating insurance policy: %w", err)
	}

	return nil
}

func (s *Store) GetPolicy(ctx context.Context, userID string, id uuid.UUID) (*insurance.Policy, error) {
	query := `SELECT ` + selectColumns + ` FROM insurances WHERE user_id = $1 AND id = $2`

	p, err := scanPolicy(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, insurance.ErrNotFound
		}

		return nil, fmt.Errorf("getting insurance policy: %w", err)
	}

	return p, nil
}

func (s *Store) ListPolicies(ctx context.Context, userID string) ([]*insurance.Policy, error) {
	query := `SELECT ` + selectColumns + ` FROM insurances WHERE user_id = $1 ORDER BY join_date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing insurance policies: %w", err)
	}
	defer rows.Close()

	var policies []*insurance.Policy

	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning insurance policy: %w", err)
		}

		policies = append(policies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insurance policies: %w", err)
	}

	return policies, nil
}

func (s *Store) UpdatePolicy(ctx context.Context, p *insurance.Policy) error {
	query := `
		UPDATE insurances
		SET company = $1, description = $2, join_date = $3, end_date = $4,
			monthly_payment = $5, payout = $6, total_payment = $7, updated_at = NOW()
		WHERE user_id = $8 AND id = $9
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Company, p.Description, p.JoinDate, p.EndDate,
		p.MonthlyPayment, p.Payout, p.TotalPayment, p.UserID, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return insurance.ErrNotFound
		}

		return fmt.Errorf("updating insurance policy: %w", err)
	}

	return nil
}

func (s *Store) DeletePolicy(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM insurances WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting insurance policy: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting insurance policy: %w", err)
	}

	if n == 0 {
		return insurance.ErrNotFound
	}

	return nil
}
