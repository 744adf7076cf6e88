package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
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
	id, user_id, kind, bank_name, join_date, maturity_date, interest_rate, period_months,
	amount, tax_free, currency, exchange_rate,
	maturity_amount_pre_tax, maturity_amount_post_tax, maturity_amount_original,
	created_at, updated_at
`

func scanDeposit(s scanner) (*savings.Deposit, error) {
	var d savings.Deposit

	var (
		kind, cur string
		maturity  sql.NullTime
	)

	if err := s.Scan(
		&d.ID, &d.UserID, &kind, &d.BankName, &d.JoinDate, &maturity, &d.InterestRate, &d.PeriodMonths,
		&d.Amount, &d.TaxFree, &cur, &d.ExchangeRate,
		&d.MaturityAmountPreTax, &d.MaturityAmountPostTax, &d.MaturityAmountOriginal,
		&d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Kind = savings.Kind(kind)
	d.Currency = currency.Currency(cur)

	if maturity.Valid {
		d.MaturityDate = &maturity.Time
	}

	return &d, nil
}

func (s *Store) CreateDeposit(ctx context.Context, d *savings.Deposit) error {
	query := `
		INSERT INTO savings (
			user_id, kind, bank_name, join_date, maturity_date, interest_rate, period_months,
			amount, tax_free, currency, exchange_rate,
			maturity_amount_pre_tax, maturity_amount_post_tax, maturity_amount_original
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.UserID, d.Kind, d.BankName, d.JoinDate, d.MaturityDate, d.InterestRate, d.PeriodMonths,
		d.Amount, d.TaxFree, d.Currency, d.ExchangeRate,
		d.MaturityAmountPreTax, d.MaturityAmountPostTax, d.MaturityAmountOriginal,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating saving deposit: %w", err)
	}

	return nil
}

func (s *Store) GetDeposit(ctx context.Context, userID string, id uuid.UUID) (*savings.Deposit, error) {
	query := `SELECT ` + selectColumns + ` FROM savings WHERE user_id = $1 AND id = $2`

	d, err := scanDeposit(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, savings.ErrNotFound
		}

		return nil, fmt.Errorf("getting saving deposit: %w", err)
	}

	return d, nil
}

func (s *Store) ListDeposits(ctx context.Context, userID string) ([]*savings.Deposit, error) {
	query := `SELECT ` + selectColumns + ` FROM savings WHERE user_id = $1 ORDER BY join_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing saving deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*savings.Deposit

	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning saving deposit: %w", err)
		}

		deposits = append(deposits, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saving deposits: %w", err)
	}

	return deposits, nil
}

func (s *Store) UpdateDeposit(ctx context.Context, d *savings.Deposit) error {
	query := `
		UPDATE savings
		SET kind = $1, bank_name = $2, join_date = $3, maturity_date = $4, interest_rate = $5,
			period_months = $6, amount = $7, tax_free = $8, currency = $9, exchange_rate = $10,
			maturity_amount_pre_tax = $11, maturity_amount_post_tax = $12, maturity_amount_original = $13,
			updated_at = NOW()
		WHERE user_id = $14 AND id = $15
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		d.Kind, d.BankName, d.JoinDate, d.MaturityDate, d.InterestRate,
		d.PeriodMonths, d.Amount, d.TaxFree, d.Currency, d.ExchangeRate,
		d.MaturityAmountPreTax, d.MaturityAmountPostTax, d.MaturityAmountOriginal,
		d.UserID, d.ID,
	).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return savings.ErrNotFound
		}

		return fmt.Errorf("updating saving deposit: %w", err)
	}

	return nil
}

func (s *Store) DeleteDeposit(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM savings WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting saving deposit: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saving deposit: %w", err)
	}

	if n == 0 {
		return savings.ErrNotFound
	}

	return nil
}
