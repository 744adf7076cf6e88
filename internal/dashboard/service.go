// Package dashboard assembles the overview screen: asset totals and
// allocation at the shared exchange rate, plus the month's cash flow and
// budget usage.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

type AccountLister interface {
	List(ctx context.Context, userID string) ([]*account.Account, error)
}

type StockLister interface {
	List(ctx context.Context, userID string) ([]*portfolio.Stock, error)
}

type DepositLister interface {
	List(ctx context.Context, userID string) ([]*savings.Deposit, error)
}

type PolicyLister interface {
	List(ctx context.Context, userID string) ([]*insurance.Policy, error)
}

type EntryLister interface {
	List(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Entry, error)
}

type BudgetGetter interface {
	Get(ctx context.Context, userID, month string) (*budget.Budget, error)
}

type RateSource interface {
	USDKRW(ctx context.Context) decimal.Decimal
}

type Deps struct {
	Accounts AccountLister
	Stocks   StockLister
	Deposits DepositLister
	Policies PolicyLister
	Entries  EntryLister
	Budgets  BudgetGetter
	Rates    RateSource
}

type Service struct {
	deps Deps
	now  func() time.Time
}

func NewService(deps Deps) *Service {
	return &Service{deps: deps, now: time.Now}
}

type Summary struct {
	Month      string
	Rate       decimal.Decimal
	Totals     metrics.Totals
	Allocation metrics.Allocation
	Stats      metrics.MonthStats
	Categories []metrics.CategoryAmount
	Budget     *metrics.BudgetUsage // nil when no budget is set for Month
}

type holdings struct {
	accounts []*account.Account
	stocks   []*portfolio.Stock
	deposits []*savings.Deposit
	policies []*insurance.Policy
}

func (s *Service) load(ctx context.Context, userID string) (*holdings, error) {
	var h holdings

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		h.accounts, err = s.deps.Accounts.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		h.stocks, err = s.deps.Stocks.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		h.deposits, err = s.deps.Deposits.List(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		h.policies, err = s.deps.Policies.List(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading holdings: %w", err)
	}

	return &h, nil
}

// GrandTotal is the user's total assets in KRW at the current rate.
func (s *Service) GrandTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	h, err := s.load(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	rate := s.deps.Rates.USDKRW(ctx)

	return metrics.TotalAssets(h.stocks, h.accounts, h.deposits, h.policies, rate).GrandTotal, nil
}

// Summary builds the dashboard for month (YYYY-MM); an empty month means
// the current one.
func (s *Service) Summary(ctx context.Context, userID, month string) (*Summary, error) {
	if month == "" {
		month = metrics.CurrentMonth(s.now())
	}

	if _, err := budget.ParseMonth(month); err != nil {
		return nil, err
	}

	h, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.deps.Entries.List(ctx, userID, ledger.ListFilter{Month: month})
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	rate := s.deps.Rates.USDKRW(ctx)
	totals := metrics.TotalAssets(h.stocks, h.accounts, h.deposits, h.policies, rate)

	sum := &Summary{
		Month:      month,
		Rate:       rate,
		Totals:     totals,
		Allocation: metrics.Allocate(totals),
		Stats:      metrics.Month(entries, month),
		Categories: metrics.ExpenseByCategory(entries, month),
	}

	b, err := s.deps.Budgets.Get(ctx, userID, month)
	switch {
	case err == nil:
		usage := metrics.Usage(b.Amount, sum.Stats.Expense)
		sum.Budget = &usage
	case !errors.Is(err, budget.ErrNotFound):
		return nil, fmt.Errorf("loading budget: %w", err)
	}

	return sum, nil
}
