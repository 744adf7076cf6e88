package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectEntryColumns = `
	id, user_id, type, date, amount, account_id, account_name, to_account_id, to_account_name,
	currency, category, memo, raw_description, created_at, updated_at
`

// scanEntry expects the column order of selectEntryColumns.
func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	var typeStr, curStr string

	if err := s.Scan(
		&e.ID, &e.UserID, &typeStr, &e.Date, &e.Amount, &e.AccountID, &e.AccountName,
		&e.ToAccountID, &e.ToAccountName, &curStr, &e.Category, &e.Memo, &e.RawDescription,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Type = ledger.Type(typeStr)
	e.Currency = currency.Currency(curStr)

	return &e, nil
}

func getEntry(ctx context.Context, q queryer, userID string, id uuid.UUID, forUpdate bool) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM ledger_entries WHERE user_id = $1 AND id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	e, err := scanEntry(q.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting ledger entry: %w", err)
	}

	return e, nil
}

func collect(rows *sql.Rows) ([]*ledger.Entry, error) {
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) GetEntry(ctx context.Context, userID string, id uuid.UUID) (*ledger.Entry, error) {
	return getEntry(ctx, s.db, userID, id, false)
}

func (s *Store) ListEntries(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM ledger_entries WHERE user_id = $1`

	args := []any{userID}
	argIdx := 2

	if filter.Month != "" {
		start, err := time.Parse(ledger.MonthLayout, filter.Month)
		if err != nil {
			return nil, fmt.Errorf("month %q: %w", filter.Month, ledger.ErrInvalidMonth)
		}

		query += fmt.Sprintf(" AND date >= $%d AND date < $%d", argIdx, argIdx+1)

		args = append(args, start, start.AddDate(0, 1, 0))
		argIdx += 2
	}

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND (account_id = $%d OR to_account_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (memo ILIKE $%d OR category ILIKE $%d OR type ILIKE $%d)", argIdx, argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY date DESC, created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}

	return collect(rows)
}

func (s *Store) BeginPosting(ctx context.Context) (ledger.PostingTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning posting tx: %w", err)
	}

	return &postingTx{tx: dbTx}, nil
}

func importLockKey(userID string, accountID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write(accountID[:])

	return int64(h.Sum64())
}

// BeginImport serialises concurrent imports into the same account so the
// duplicate check and the inserts see a consistent ledger.
func (s *Store) BeginImport(ctx context.Context, userID string, accountID uuid.UUID) (ledger.PostingTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(userID, accountID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &postingTx{tx: dbTx}, nil
}

type postingTx struct {
	tx *sql.Tx
}

func (p *postingTx) Commit() error   { return p.tx.Commit() }
func (p *postingTx) Rollback() error { return p.tx.Rollback() }

func (p *postingTx) LockAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, user_id, bank_name, account_name, balance, currency, created_at, updated_at
		FROM cash_accounts
		WHERE user_id = $1 AND id = $2
		FOR UPDATE
	`

	var a account.Account

	var cur string

	err := p.tx.QueryRowContext(ctx, query, userID, id).Scan(
		&a.ID, &a.UserID, &a.BankName, &a.AccountName, &a.Balance, &cur, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
		}

		return nil, fmt.Errorf("locking cash account: %w", err)
	}

	a.Currency = currency.Currency(cur)

	return &a, nil
}

func (p *postingTx) AdjustBalance(ctx context.Context, userID string, accountID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE cash_accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`

	res, err := p.tx.ExecContext(ctx, query, delta, userID, accountID)
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, accountID)
	}

	return nil
}

func (p *postingTx) LockEntry(ctx context.Context, userID string, id uuid.UUID) (*ledger.Entry, error) {
	return getEntry(ctx, p.tx, userID, id, true)
}

func (p *postingTx) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (
			user_id, type, date, amount, account_id, account_name, to_account_id, to_account_name,
			currency, category, memo, raw_description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := p.tx.QueryRowContext(ctx, query,
		e.UserID, e.Type, e.Date, e.Amount, e.AccountID, e.AccountName, e.ToAccountID, e.ToAccountName,
		e.Currency, e.Category, e.Memo, e.RawDescription,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (p *postingTx) UpdateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE ledger_entries
		SET type = $1, date = $2, amount = $3, account_id = $4, account_name = $5, to_account_id = $6,
			to_account_name = $7, currency = $8, category = $9, memo = $10, raw_description = $11,
			updated_at = NOW()
		WHERE user_id = $12 AND id = $13
		RETURNING updated_at
	`

	err := p.tx.QueryRowContext(ctx, query,
		e.Type, e.Date, e.Amount, e.AccountID, e.AccountName, e.ToAccountID,
		e.ToAccountName, e.Currency, e.Category, e.Memo, e.RawDescription,
		e.UserID, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.ErrNotFound
		}

		return fmt.Errorf("updating ledger entry: %w", err)
	}

	return nil
}

func (p *postingTx) DeleteEntry(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := p.tx.ExecContext(ctx, `DELETE FROM ledger_entries WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting ledger entry: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (p *postingTx) FindDuplicates(
	ctx context.Context, userID string, accountID uuid.UUID, minDate, maxDate time.Time,
) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM ledger_entries
		WHERE user_id = $1 AND account_id = $2 AND date >= $3 AND date <= $4 AND raw_description <> ''
		ORDER BY date ASC`

	rows, err := p.tx.QueryContext(ctx, query, userID, accountID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	return collect(rows)
}
