package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
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
	id, user_id, purchase_date, broker, trade_type, name, code, market, sector,
	unit_price, quantity, note, currency, exchange_rate, current_price,
	amount, adjusted_avg_price, total_amount, total_amount_krw, realized_gain,
	created_at, updated_at
`

func scanStock(s scanner) (*portfolio.Stock, error) {
	var st portfolio.Stock

	var tradeType, cur string

	if err := s.Scan(
		&st.ID, &st.UserID, &st.PurchaseDate, &st.Broker, &tradeType, &st.Name, &st.Code, &st.Market, &st.Sector,
		&st.UnitPrice, &st.Quantity, &st.Note, &cur, &st.ExchangeRate, &st.CurrentPrice,
		&st.Amount, &st.AdjustedAvgPrice, &st.TotalAmount, &st.TotalAmountKRW, &st.RealizedGain,
		&st.CreatedAt, &st.UpdatedAt,
	); err != nil {
		return nil, err
	}

	st.TradeType = portfolio.TradeType(tradeType)
	st.Currency = currency.Currency(cur)

	return &st, nil
}

func (s *Store) CreateStock(ctx context.Context, st *portfolio.Stock) error {
	query := `
		INSERT INTO stocks (
			user_id, purchase_date, broker, trade_type, name, code, market, sector,
			unit_price, quantity, note, currency, exchange_rate, current_price,
			amount, adjusted_avg_price, total_amount, total_amount_krw, realized_gain
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		st.UserID, st.PurchaseDate, st.Broker, st.TradeType, st.Name, st.Code, st.Market, st.Sector,
		st.UnitPrice, st.Quantity, st.Note, st.Currency, st.ExchangeRate, st.CurrentPrice,
		st.Amount, st.AdjustedAvgPrice, st.TotalAmount, st.TotalAmountKRW, st.RealizedGain,
	).Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating stock: %w", err)
	}

	return nil
}

func (s *Store) GetStock(ctx context.Context, userID string, id uuid.UUID) (*portfolio.Stock, error) {
	query := `SELECT ` + selectColumns + ` FROM stocks WHERE user_id = $1 AND id = $2`

	st, err := scanStock(s.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, portfolio.ErrNotFound
		}

		return nil, fmt.Errorf("getting stock: %w", err)
	}

	return st, nil
}

func (s *Store) ListStocks(ctx context.Context, userID string) ([]*portfolio.Stock, error) {
	query := `SELECT ` + selectColumns + ` FROM stocks WHERE user_id = $1 ORDER BY purchase_date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*portfolio.Stock

	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stock: %w", err)
		}

		stocks = append(stocks, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stocks: %w", err)
	}

	return stocks, nil
}

func (s *Store) UpdateStock(ctx context.Context, st *portfolio.Stock) error {
	query := `
		UPDATE stocks
		SET purchase_date = $1, broker = $2, trade_type = $3, name = $4, code = $5, market = $6, sector = $7,
			unit_price = $8, quantity = $9, note = $10, currency = $11, exchange_rate = $12, current_price = $13,
			amount = $14, adjusted_avg_price = $15, total_amount = $16, total_amount_krw = $17, realized_gain = $18,
			updated_at = NOW()
		WHERE user_id = $19 AND id = $20
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		st.PurchaseDate, st.Broker, st.TradeType, st.Name, st.Code, st.Market, st.Sector,
		st.UnitPrice, st.Quantity, st.Note, st.Currency, st.ExchangeRate, st.CurrentPrice,
		st.Amount, st.AdjustedAvgPrice, st.TotalAmount, st.TotalAmountKRW, st.RealizedGain,
		st.UserID, st.ID,
	).Scan(&st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return portfolio.ErrNotFound
		}

		return fmt.Errorf("updating stock: %w", err)
	}

	return nil
}

func (s *Store) DeleteStock(ctx context.Context, userID string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stocks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting stock: %w", err)
	}

	if n == 0 {
		return portfolio.ErrNotFound
	}

	return nil
}
