package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

type lister[T any] struct {
	items []T
	err   error
}

func (l lister[T]) List(context.Context, string) ([]T, error) { return l.items, l.err }

type entries struct {
	items []*ledger.Entry
	got   ledger.ListFilter
}

func (e *entries) List(_ context.Context, _ string, f ledger.ListFilter) ([]*ledger.Entry, error) {
	e.got = f
	return e.items, nil
}

type budgets map[string]*budget.Budget

func (b budgets) Get(_ context.Context, _, month string) (*budget.Budget, error) {
	if v, ok := b[month]; ok {
		return v, nil
	}

	return nil, budget.ErrNotFound
}

type fixedRate decimal.Decimal

func (r fixedRate) USDKRW(context.Context) decimal.Decimal { return decimal.Decimal(r) }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func deps(ents *entries, b budgets) dashboard.Deps {
	return dashboard.Deps{
		Accounts: lister[*account.Account]{items: []*account.Account{
			{Balance: dec("1000000"), Currency: currency.KRW},
		}},
		Stocks: lister[*portfolio.Stock]{items: []*portfolio.Stock{
			{Quantity: dec("1"), CurrentPrice: dec("1000"), Currency: currency.USD},
		}},
		Deposits: lister[*savings.Deposit]{items: []*savings.Deposit{
			{Amount: dec("500000"), Currency: currency.KRW},
		}},
		Policies: lister[*insurance.Policy]{items: []*insurance.Policy{
			{TotalPayment: dec("100000")},
		}},
		Entries: ents,
		Budgets: b,
		Rates:   fixedRate(dec("1400")),
	}
}

func TestService_Summary(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	ents := &entries{items: []*ledger.Entry{
		{Type: ledger.TypeIncome, Date: day(1), Amount: dec("3000000")},
		{Type: ledger.TypeExpense, Date: day(2), Amount: dec("400000"), Category: "Food"},
		{Type: ledger.TypeExpense, Date: day(3), Amount: dec("100000"), Category: "Transport"},
	}}

	svc := dashboard.NewService(deps(ents, budgets{"2025-03": {Amount: dec("1000000")}}))

	got, err := svc.Summary(context.Background(), "user-1", "2025-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03", ents.got.Month)
	assert.True(t, dec("3000000").Equal(got.Totals.GrandTotal), "grand total %s", got.Totals.GrandTotal)
	assert.True(t, dec("46.67").Equal(got.Allocation.Stock), "stock %s", got.Allocation.Stock)
	assert.True(t, dec("500000").Equal(got.Stats.Expense))
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Food", got.Categories[0].Category)

	require.NotNil(t, got.Budget)
	assert.True(t, dec("50").Equal(got.Budget.Percent))
	assert.True(t, dec("500000").Equal(got.Budget.Remaining))
}

func TestService_Summary_NoBudget(t *testing.T) {
	svc := dashboard.NewService(deps(&entries{}, budgets{}))

	got, err := svc.Summary(context.Background(), "user-1", "2025-03")
	require.NoError(t, err)
	assert.Nil(t, got.Budget)
}

func TestService_Summary_BadMonth(t *testing.T) {
	svc := dashboard.NewService(deps(&entries{}, budgets{}))

	_, err := svc.Summary(context.Background(), "user-1", "March")
	assert.ErrorIs(t, err, budget.ErrInvalidMonth)
}

func TestService_GrandTotal(t *testing.T) {
	d := deps(&entries{}, budgets{})

	svc := dashboard.NewService(d)
	got, err := svc.GrandTotal(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, dec("3000000").Equal(got))

	d.Stocks = lister[*portfolio.Stock]{err: errors.New("db error")}
	svc = dashboard.NewService(d)

	_, err = svc.GrandTotal(context.Background(), "user-1")
	assert.Error(t, err)
}
