package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
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

const selectColumns = `id, user_id, bank_name, account_name, balance, currency, created_at, updated_at`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var cur string

	if err := s.Scan(
		&a.ID, &a.UserID, &a.BankName, &a.AccountName, &a.Balance, &cur, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Currency = currency.Currency(cur)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO cash_accounts (user_id, bank_name, account_name, balance, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.UserID, a.BankName, a.AccountName, a.Balance, a.Currency,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating cash account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM cash_accounts WHERE user_id = $1 AND id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting cash account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]*account.Account, error) {
	query := `SELECT ` + selectColumns + ` FROM cash_accounts WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing cash accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cash account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cash accounts: %w", err)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE cash_accounts
		SET bank_name = $1, account_name = $2, balance = $3, currency = $4, updated_at = NOW()
		WHERE user_id = $5 AND id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.BankName, a.AccountName, a.Balance, a.Currency, a.UserID, a.ID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrNotFound
		}

		return fmt.Errorf("updating cash account: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cash_accounts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting cash account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting cash account: %w", err)
	}

	if n == 0 {
		return account.ErrNotFound
	}

	return nil
}
