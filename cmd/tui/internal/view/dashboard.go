package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/dashboard"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

var panelStyle = lipgloss.NewStyle().
	Padding(0, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Width(38)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

type DashboardModel struct {
	CommonModel
	dashboardService *dashboard.Service

	month   string
	summary *dashboard.Summary
	loading bool
	err     error
}

func NewDashboardModel(userID string, svc *dashboard.Service) DashboardModel {
	return DashboardModel{
		CommonModel:      CommonModel{UserID: userID},
		dashboardService: svc,
		loading:          true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | [/]: prev/next month | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.summary = msg.summary
			m.month = msg.summary.Month
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "[", "]":
			if m.month == "" {
				return m, nil
			}

			delta := -1
			if msg.String() == "]" {
				delta = 1
			}

			month, err := metrics.ShiftMonth(m.month, delta)
			if err != nil {
				m.err = err
				return m, nil
			}

			m.month = month
			m.loading = true

			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.loading {
		return style.Render("Loading dashboard...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	s := m.summary

	assets := panelStyle.Render(strings.Join([]string{
		headingStyle.Render("Total Assets"),
		krw(s.Totals.GrandTotal),
		"",
		line("Stocks", s.Totals.Stock, s.Allocation.Stock),
		line("Cash", s.Totals.Cash, s.Allocation.Cash),
		line("Savings", s.Totals.Savings, s.Allocation.Savings),
		line("Insurance", s.Totals.Insurance, s.Allocation.Insurance),
		"",
		lipgloss.NewStyle().Faint(true).Render("USD/KRW " + s.Rate.StringFixed(2)),
	}, "\n"))

	flow := []string{
		headingStyle.Render("Cash Flow " + s.Month),
		"Income   " + incomeStyle.Render(krw(s.Stats.Income)),
		"Expense  " + expenseStyle.Render(krw(s.Stats.Expense)),
		"Net      " + krw(s.Stats.Net),
	}

	if s.Budget != nil {
		flow = append(flow, "",
			headingStyle.Render("Budget"),
			fmt.Sprintf("%s of %s (%s%%)", krw(s.Budget.Spent), krw(s.Budget.Budget), s.Budget.Percent.StringFixed(0)),
			"Remaining " + krw(s.Budget.Remaining),
		)
	}

	if len(s.Categories) > 0 {
		flow = append(flow, "", headingStyle.Render("Spending by Category"))
		for _, c := range s.Categories {
			flow = append(flow, fmt.Sprintf("%-12s %s (%s%%)", c.Category, krw(c.Amount), c.Percent.StringFixed(1)))
		}
	}

	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, assets, " ", panelStyle.Render(strings.Join(flow, "\n"))))
}

func krw(d decimal.Decimal) string {
	return FormatAmount(d, currency.KRW)
}

func line(label string, amount, share decimal.Decimal) string {
	return fmt.Sprintf("%-10s %s (%s%%)", label, krw(amount), share.StringFixed(1))
}

type dashboardMsg struct {
	summary *dashboard.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, err := m.dashboardService.Summary(ctx, m.UserID, month)

		return dashboardMsg{summary: sum, err: err}
	}
}
