package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

type listState int

const (
	listStateMonth listState = iota
	listStateBrowse
	listStateEdit
	listStateDelete
)

type ListModel struct {
	CommonModel
	ledgerService *ledger.Service

	state   listState
	picker  MonthPicker
	month   string
	table   table.Model
	entries []*ledger.Entry
	form    *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formCategory string
	formMemo     string
	confirmed    bool
}

func NewListModel(userID string, ledgerSvc *ledger.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Account", Width: 22},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 16},
		{Title: "Memo", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		CommonModel:   CommonModel{UserID: userID},
		ledgerService: ledgerSvc,
		picker:        NewMonthPicker(),
		table:         t,
	}
}

func (m ListModel) Title() string { return "Ledger" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit, listStateDelete:
		return "Navigate form | Esc: cancel"
	case listStateBrowse:
		return "Esc: back | e: edit | x: delete | [/]: prev/next month | r: refresh"
	}

	return "Esc: back | Enter: select"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.month = msg.Month
		m.state = listStateBrowse
		m.loading = true

		return m, m.loadEntriesCmd()

	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadEntriesCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-10, 5))

		return m, nil
	}

	switch m.state {
	case listStateMonth:
		return m.updateMonth(msg)
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit, listStateDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ListModel) updateMonth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = listStateMonth
			m.picker.Reset()
			m.status = ""

			return m, nil
		case "r":
			m.loading = true
			return m, m.loadEntriesCmd()
		case "[", "]":
			delta := -1
			if keyMsg.String() == "]" {
				delta = 1
			}

			month, err := metrics.ShiftMonth(m.month, delta)
			if err != nil {
				m.err = err
				return m, nil
			}

			m.month = month
			m.loading = true

			return m, m.loadEntriesCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m.enterDeleteMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selectedEntry() *ledger.Entry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	return m.entries[idx]
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	e := m.selectedEntry()
	if e == nil {
		return m, nil
	}

	m.formCategory = e.Category
	m.formMemo = e.Memo

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("memo").
				Title("Memo").
				Value(&m.formMemo),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	e := m.selectedEntry()
	if e == nil {
		return m, nil
	}

	m.confirmed = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s %s?", FormatDate(e.Date), FormatSigned(e))).
				Description("The account balance is restored.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.confirmed),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == listStateDelete {
		return m, m.deleteCmd()
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.state == listStateMonth {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Month: %s | %d entries", activeStyle(m.month), len(m.entries))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == listStateEdit || m.state == listStateDelete) && m.form != nil {
		raw := ""
		if e := m.selectedEntry(); e != nil {
			raw = e.RawDescription
		}

		title := "Edit Entry"
		if m.state == listStateDelete {
			title = "Delete Entry"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\nStatement: %s\n\n%s", title, raw, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))

	for _, e := range m.entries {
		acct := e.AccountName
		if e.ToAccountName != "" {
			acct += " → " + e.ToAccountName
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Type),
			acct,
			e.Category,
			FormatSigned(e),
			e.Memo,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// paramsOf rebuilds the posting parameters of an existing entry.
func paramsOf(e *ledger.Entry) ledger.PostParams {
	return ledger.PostParams{
		Type:           e.Type,
		Date:           e.Date,
		Amount:         e.Amount,
		AccountID:      e.AccountID,
		ToAccountID:    e.ToAccountID,
		Category:       e.Category,
		Memo:           e.Memo,
		RawDescription: e.RawDescription,
	}
}

// Messages

type loadListMsg struct {
	entries []*ledger.Entry
	err     error
}

func (m ListModel) loadEntriesCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.ledgerService.List(ctx, m.UserID, ledger.ListFilter{Month: month})

		return loadListMsg{entries: entries, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	e := m.selectedEntry()
	if e == nil {
		return nil
	}

	params := paramsOf(e)
	params.Category = m.form.GetString("category")
	params.Memo = m.form.GetString("memo")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.ledgerService.Update(ctx, m.UserID, e.ID, params); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Entry updated."}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	e := m.selectedEntry()
	if e == nil || !m.form.GetBool("confirm") {
		return func() tea.Msg { return listSaveMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.ledgerService.Delete(ctx, m.UserID, e.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Entry deleted."}
	}
}
