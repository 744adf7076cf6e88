// Package metrics derives the dashboard figures from stored records. Every
// function is pure and guards its divisions against zero.
package metrics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

const monthLayout = "2006-01"

// Uncategorized labels expenses posted without a category.
const Uncategorized = "Uncategorized"

var hundred = decimal.NewFromInt(100)

// percent returns part/whole×100 rounded to two places, or 0 when whole is 0.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return part.Div(whole).Mul(hundred).Round(2)
}

// StockValuation is the lot's market value in KRW at the given USD rate.
func StockValuation(s *portfolio.Stock, usdKRW decimal.Decimal) decimal.Decimal {
	return currency.ToKRW(s.Quantity.Mul(s.CurrentPrice), s.Currency, usdKRW)
}

// StockProfit is the unrealised gain in the lot's own currency.
func StockProfit(s *portfolio.Stock) decimal.Decimal {
	return s.CurrentPrice.Sub(s.UnitPrice).Mul(s.Quantity)
}

func StockProfitRate(s *portfolio.Stock) decimal.Decimal {
	return percent(s.CurrentPrice.Sub(s.UnitPrice), s.UnitPrice)
}

// Totals are KRW subtotals per asset class.
type Totals struct {
	Stock      decimal.Decimal
	Cash       decimal.Decimal
	Savings    decimal.Decimal
	Insurance  decimal.Decimal
	GrandTotal decimal.Decimal
}

// TotalAssets sums every asset class in KRW. Cash counts balances, savings
// count principal and insurance counts total payments made.
func TotalAssets(
	stocks []*portfolio.Stock,
	accounts []*account.Account,
	deposits []*savings.Deposit,
	policies []*insurance.Policy,
	usdKRW decimal.Decimal,
) Totals {
	var t Totals

	for _, s := range stocks {
		t.Stock = t.Stock.Add(StockValuation(s, usdKRW))
	}

	for _, a := range accounts {
		t.Cash = t.Cash.Add(currency.ToKRW(a.Balance, a.Currency, usdKRW))
	}

	for _, d := range deposits {
		t.Savings = t.Savings.Add(currency.ToKRW(d.Amount, d.Currency, usdKRW))
	}

	for _, p := range policies {
		t.Insurance = t.Insurance.Add(p.TotalPayment)
	}

	t.GrandTotal = decimal.Sum(t.Stock, t.Cash, t.Savings, t.Insurance)

	return t
}

// Allocation is each asset class's share of the grand total, in percent.
type Allocation struct {
	Stock     decimal.Decimal
	Cash      decimal.Decimal
	Savings   decimal.Decimal
	Insurance decimal.Decimal
}

func Allocate(t Totals) Allocation {
	return Allocation{
		Stock:     percent(t.Stock, t.GrandTotal),
		Cash:      percent(t.Cash, t.GrandTotal),
		Savings:   percent(t.Savings, t.GrandTotal),
		Insurance: percent(t.Insurance, t.GrandTotal),
	}
}

func inMonth(e *ledger.Entry, month string) bool {
	return e.Date.Format(monthLayout) == month
}

type MonthStats struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// Month totals income and expense entries dated in month (YYYY-MM).
// Transfers move money between the user's own accounts and are ignored.
func Month(entries []*ledger.Entry, month string) MonthStats {
	var st MonthStats

	for _, e := range entries {
		if !inMonth(e, month) {
			continue
		}

		switch e.Type {
		case ledger.TypeIncome:
			st.Income = st.Income.Add(e.Amount)
		case ledger.TypeExpense:
			st.Expense = st.Expense.Add(e.Amount)
		}
	}

	st.Net = st.Income.Sub(st.Expense)

	return st
}

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// ExpenseByCategory sums the month's expenses per category, largest first.
func ExpenseByCategory(entries []*ledger.Entry, month string) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)

	var total decimal.Decimal

	for _, e := range entries {
		if e.Type != ledger.TypeExpense || !inMonth(e, month) {
			continue
		}

		name := e.Category
		if name == "" {
			name = Uncategorized
		}

		sums[name] = sums[name].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	out := make([]CategoryAmount, 0, len(sums))
	for name, amt := range sums {
		out = append(out, CategoryAmount{Category: name, Amount: amt, Percent: percent(amt, total)})
	}

	slices.SortFunc(out, func(a, b CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

type BudgetUsage struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal // negative when over budget
	Percent   decimal.Decimal // capped at 100
}

func Usage(budget, spent decimal.Decimal) BudgetUsage {
	pct := percent(spent, budget)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}

	return BudgetUsage{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Sub(spent),
		Percent:   pct,
	}
}

type NetWorthChange struct {
	Snapshot *networth.Snapshot
	NetWorth decimal.Decimal
	Change   decimal.Decimal
	Rate     decimal.Decimal
}

// NetWorthChanges pairs each snapshot with its change from the previous one.
// snaps must be ordered by date; the first snapshot has no change.
func NetWorthChanges(snaps []*networth.Snapshot) []NetWorthChange {
	out := make([]NetWorthChange, len(snaps))

	for i, s := range snaps {
		out[i] = NetWorthChange{Snapshot: s, NetWorth: s.NetWorth()}
		if i == 0 {
			continue
		}

		prev := out[i-1].NetWorth
		out[i].Change = out[i].NetWorth.Sub(prev)
		out[i].Rate = percent(out[i].Change, prev.Abs())
	}

	return out
}

type GoalSummary struct {
	TotalNeeded decimal.Decimal
	FirstYear   int
	LastYear    int
	Peak        *goal.Year
}

// SummarizeGoals totals the plan and finds the year needing the most money.
// The earliest year wins a tie for the peak.
func SummarizeGoals(years []*goal.Year) GoalSummary {
	var s GoalSummary

	var peak decimal.Decimal

	for _, y := range years {
		need := y.TotalNeeded()
		s.TotalNeeded = s.TotalNeeded.Add(need)

		if s.FirstYear == 0 || y.Year < s.FirstYear {
			s.FirstYear = y.Year
		}

		if y.Year > s.LastYear {
			s.LastYear = y.Year
		}

		if s.Peak == nil || need.GreaterThan(peak) || (need.Equal(peak) && y.Year < s.Peak.Year) {
			s.Peak = y
			peak = need
		}
	}

	return s
}

// ShiftMonth moves a YYYY-MM key by delta months.
func ShiftMonth(month string, delta int) (string, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", fmt.Errorf("invalid month %q: %w", month, err)
	}

	return t.AddDate(0, delta, 0).Format(monthLayout), nil
}

// CurrentMonth is the YYYY-MM key for t.
func CurrentMonth(t time.Time) string {
	return t.Format(monthLayout)
}
