package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// FormatAmount renders an amount in its currency, e.g. ₩12,000 or $3.50.
func FormatAmount(amount decimal.Decimal, c currency.Currency) string {
	return currency.Format(amount, c)
}

// FormatSigned prefixes the entry amount with + for income and - for expense.
// Transfers carry no sign.
func FormatSigned(e *ledger.Entry) string {
	s := FormatAmount(e.Amount, e.Currency)

	switch e.Type {
	case ledger.TypeIncome:
		return "+" + s
	case ledger.TypeExpense:
		return "-" + s
	}

	return s
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
