package metrics_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

var rate = decimal.NewFromInt(1400)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func TestStockProfitRate(t *testing.T) {
	tests := []struct {
		name  string
		stock portfolio.Stock
		want  string
	}{
		{
			name:  "Gain",
			stock: portfolio.Stock{UnitPrice: dec("100"), CurrentPrice: dec("125"), Quantity: dec("4")},
			want:  "25",
		},
		{
			name:  "Loss",
			stock: portfolio.Stock{UnitPrice: dec("200"), CurrentPrice: dec("150"), Quantity: dec("1")},
			want:  "-25",
		},
		{
			name:  "ZeroUnitPrice",
			stock: portfolio.Stock{UnitPrice: decimal.Zero, CurrentPrice: dec("10"), Quantity: dec("1")},
			want:  "0",
		},
		{
			name:  "Repeating",
			stock: portfolio.Stock{UnitPrice: dec("3"), CurrentPrice: dec("4"), Quantity: dec("1")},
			want:  "33.33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDec(t, tt.want, metrics.StockProfitRate(&tt.stock))
		})
	}
}

func TestStockProfitAndValuation(t *testing.T) {
	usd := &portfolio.Stock{UnitPrice: dec("100"), CurrentPrice: dec("110"), Quantity: dec("3"), Currency: currency.USD}
	krw := &portfolio.Stock{UnitPrice: dec("50000"), CurrentPrice: dec("45000"), Quantity: dec("2"), Currency: currency.KRW}

	assertDec(t, "30", metrics.StockProfit(usd))
	assertDec(t, "-10000", metrics.StockProfit(krw))
	assertDec(t, "462000", metrics.StockValuation(usd, rate))
	assertDec(t, "90000", metrics.StockValuation(krw, rate))
}

func TestTotalAssets(t *testing.T) {
	stocks := []*portfolio.Stock{
		{Quantity: dec("10"), CurrentPrice: dec("150"), Currency: currency.USD},
		{Quantity: dec("5"), CurrentPrice: dec("70000"), Currency: currency.KRW},
	}
	accounts := []*account.Account{
		{Balance: dec("1000000"), Currency: currency.KRW},
		{Balance: dec("100"), Currency: currency.USD},
	}
	deposits := []*savings.Deposit{{Amount: dec("5000000"), Currency: currency.KRW}}
	policies := []*insurance.Policy{{TotalPayment: dec("2400000")}}

	got := metrics.TotalAssets(stocks, accounts, deposits, policies, rate)

	assertDec(t, "2450000", got.Stock)
	assertDec(t, "1140000", got.Cash)
	assertDec(t, "5000000", got.Savings)
	assertDec(t, "2400000", got.Insurance)
	assertDec(t, "10990000", got.GrandTotal)
}

func TestTotalAssets_Empty(t *testing.T) {
	got := metrics.TotalAssets(nil, nil, nil, nil, rate)

	assert.True(t, got.GrandTotal.IsZero())

	alloc := metrics.Allocate(got)
	assert.True(t, alloc.Stock.IsZero())
	assert.True(t, alloc.Cash.IsZero())
	assert.True(t, alloc.Savings.IsZero())
	assert.True(t, alloc.Insurance.IsZero())
}

func TestTotalAssets_GrandTotalIsSumOfSubtotals(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	amount := func() decimal.Decimal { return decimal.NewFromInt(rng.Int64N(1_000_000)).Shift(-2) }

	for range 50 {
		var (
			stocks   []*portfolio.Stock
			accounts []*account.Account
			deposits []*savings.Deposit
			policies []*insurance.Policy
		)

		for range rng.IntN(4) {
			stocks = append(stocks, &portfolio.Stock{Quantity: amount(), CurrentPrice: amount(), Currency: currency.USD})
		}

		for range rng.IntN(4) {
			accounts = append(accounts, &account.Account{Balance: amount(), Currency: currency.KRW})
		}

		for range rng.IntN(4) {
			deposits = append(deposits, &savings.Deposit{Amount: amount(), Currency: currency.KRW})
		}

		for range rng.IntN(4) {
			policies = append(policies, &insurance.Policy{TotalPayment: amount()})
		}

		got := metrics.TotalAssets(stocks, accounts, deposits, policies, rate)
		sum := got.Stock.Add(got.Cash).Add(got.Savings).Add(got.Insurance)

		require.True(t, sum.Equal(got.GrandTotal))
	}
}

func TestAllocate(t *testing.T) {
	got := metrics.Allocate(metrics.Totals{
		Stock:      dec("500"),
		Cash:       dec("250"),
		Savings:    dec("250"),
		Insurance:  decimal.Zero,
		GrandTotal: dec("1000"),
	})

	assertDec(t, "50", got.Stock)
	assertDec(t, "25", got.Cash)
	assertDec(t, "25", got.Savings)
	assertDec(t, "0", got.Insurance)
}

func entry(typ ledger.Type, date, amount, category string) *ledger.Entry {
	d, _ := time.Parse(time.DateOnly, date)
	return &ledger.Entry{Type: typ, Date: d, Amount: dec(amount), Category: category}
}

func TestMonthAndExpenseByCategory(t *testing.T) {
	entries := []*ledger.Entry{
		entry(ledger.TypeIncome, "2025-03-25", "3000000", "Salary"),
		entry(ledger.TypeExpense, "2025-03-01", "12000", "Food"),
		entry(ledger.TypeExpense, "2025-03-02", "8000", "Food"),
		entry(ledger.TypeExpense, "2025-03-05", "55000", "Shopping"),
		entry(ledger.TypeExpense, "2025-03-06", "5000", ""),
		entry(ledger.TypeTransfer, "2025-03-07", "100000", "Savings"),
		entry(ledger.TypeExpense, "2025-02-28", "99999", "Food"),
	}

	st := metrics.Month(entries, "2025-03")
	assertDec(t, "3000000", st.Income)
	assertDec(t, "80000", st.Expense)
	assertDec(t, "2920000", st.Net)

	cats := metrics.ExpenseByCategory(entries, "2025-03")
	require.Len(t, cats, 3)

	assert.Equal(t, "Shopping", cats[0].Category)
	assertDec(t, "55000", cats[0].Amount)
	assertDec(t, "68.75", cats[0].Percent)

	assert.Equal(t, "Food", cats[1].Category)
	assertDec(t, "20000", cats[1].Amount)

	assert.Equal(t, metrics.Uncategorized, cats[2].Category)

	assert.Empty(t, metrics.ExpenseByCategory(entries, "2024-12"))
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name          string
		budget, spent string
		wantRemaining string
		wantPercent   string
	}{
		{name: "Under", budget: "1000000", spent: "250000", wantRemaining: "750000", wantPercent: "25"},
		{name: "Over", budget: "1000", spent: "1500", wantRemaining: "-500", wantPercent: "100"},
		{name: "NoBudget", budget: "0", spent: "1500", wantRemaining: "-1500", wantPercent: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.Usage(dec(tt.budget), dec(tt.spent))
			assertDec(t, tt.wantRemaining, got.Remaining)
			assertDec(t, tt.wantPercent, got.Percent)
		})
	}
}

func TestNetWorthChanges(t *testing.T) {
	snaps := []*networth.Snapshot{
		{TotalAssets: dec("100"), TotalLiabilities: dec("20")},
		{TotalAssets: dec("120"), TotalLiabilities: dec("20")},
		{TotalAssets: dec("90"), TotalLiabilities: dec("20")},
	}

	got := metrics.NetWorthChanges(snaps)
	require.Len(t, got, 3)

	assertDec(t, "80", got[0].NetWorth)
	assert.True(t, got[0].Change.IsZero())
	assert.True(t, got[0].Rate.IsZero())

	assertDec(t, "20", got[1].Change)
	assertDec(t, "25", got[1].Rate)

	assertDec(t, "-30", got[2].Change)
	assertDec(t, "-30", got[2].Rate)

	assert.Empty(t, metrics.NetWorthChanges(nil))
}

func TestSummarizeGoals(t *testing.T) {
	years := []*goal.Year{
		{Year: 2031, House: dec("100")},
		{Year: 2030, House: dec("300"), Car: dec("50")},
		{Year: 2032, Education: dec("350")},
	}

	got := metrics.SummarizeGoals(years)

	assertDec(t, "800", got.TotalNeeded)
	assert.Equal(t, 2030, got.FirstYear)
	assert.Equal(t, 2032, got.LastYear)
	require.NotNil(t, got.Peak)
	assert.Equal(t, 2030, got.Peak.Year)

	empty := metrics.SummarizeGoals(nil)
	assert.Nil(t, empty.Peak)
	assert.True(t, empty.TotalNeeded.IsZero())
}

func TestShiftMonth(t *testing.T) {
	got, err := metrics.ShiftMonth("2025-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-12", got)

	got, err = metrics.ShiftMonth("2025-12", 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-01", got)

	_, err = metrics.ShiftMonth("January", 1)
	assert.Error(t, err)
}
