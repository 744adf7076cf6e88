package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

type entryState int

const (
	entryStateLoading entryState = iota
	entryStateForm
	entryStateSaving
	entryStateResult
)

// EntryModel records a single expense, income or transfer.
type EntryModel struct {
	CommonModel
	ledgerService   *ledger.Service
	accountService  *account.Service
	categoryService *category.Service

	state      entryState
	accounts   []*account.Account
	categories []*category.Category
	form       *huh.Form

	// Form bindings
	entryType string

	status string
	err    error
}

func NewEntryModel(userID string, ledgerSvc *ledger.Service, accountSvc *account.Service, categorySvc *category.Service) EntryModel {
	return EntryModel{
		CommonModel:     CommonModel{UserID: userID},
		ledgerService:   ledgerSvc,
		accountService:  accountSvc,
		categoryService: categorySvc,
		entryType:       string(ledger.TypeExpense),
	}
}

func (m EntryModel) Title() string { return "New Entry" }

func (m EntryModel) ShortHelp() string {
	if m.state == entryStateResult {
		return "Esc: back | n: another"
	}

	return "Esc: back"
}

func (m EntryModel) Init() tea.Cmd {
	return m.loadOptionsCmd()
}

func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entryOptionsMsg:
		if msg.err != nil {
			m.state = entryStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		if len(msg.accounts) == 0 {
			m.state = entryStateResult
			m.err = errors.New("no cash accounts")
			m.status = "Create a cash account before recording entries."

			return m, nil
		}

		m.accounts = msg.accounts
		m.categories = msg.categories
		m.form = m.buildForm()
		m.state = entryStateForm

		return m, m.form.Init()

	case entrySavedMsg:
		m.state = entryStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recorded %s %s on %s.",
			msg.entry.Type, FormatAmount(msg.entry.Amount, msg.entry.Currency), FormatDate(msg.entry.Date))

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == entryStateResult && msg.String() == "n" && m.accounts != nil {
			m.err = nil
			m.status = ""
			m.form = m.buildForm()
			m.state = entryStateForm

			return m, m.form.Init()
		}
	}

	if m.state != entryStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	params, err := m.params()
	if err != nil {
		m.state = entryStateResult
		m.err = err
		m.status = fmt.Sprintf("Error: %v", err)

		return m, nil
	}

	m.state = entryStateSaving

	return m, m.saveCmd(params)
}

func (m EntryModel) buildForm() *huh.Form {
	accountOpts := make([]huh.Option[string], 0, len(m.accounts))
	for _, a := range m.accounts {
		accountOpts = append(accountOpts, huh.NewOption(a.Label(), a.ID.String()))
	}

	toOpts := append([]huh.Option[string]{huh.NewOption("(none)", "")}, accountOpts...)

	typ := m.entryType
	categories := m.categories

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(ledger.TypeExpense)),
					huh.NewOption("Income", string(ledger.TypeIncome)),
					huh.NewOption("Transfer", string(ledger.TypeTransfer)),
				).
				Value(&typ),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Account").
				Options(accountOpts...),

			huh.NewSelect[string]().
				Key("to_account").
				Title("To account").
				Description("Transfers only").
				Options(toOpts...),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
					if err != nil || !d.IsPositive() {
						return ledger.ErrInvalidAmount
					}

					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(time.Now().Format(time.DateOnly)).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}

					_, err := time.Parse(time.DateOnly, s)

					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(categories, ledger.Type(typ))
				}, &typ),

			huh.NewInput().
				Key("memo").
				Title("Memo"),
		),
	).WithWidth(50).WithShowHelp(false)
}

func categoryOptions(categories []*category.Category, t ledger.Type) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}

	for _, c := range categories {
		if c.Type == t {
			opts = append(opts, huh.NewOption(c.Name, c.Name))
		}
	}

	return opts
}

func (m EntryModel) params() (ledger.PostParams, error) {
	accountID, err := uuid.Parse(m.form.GetString("account"))
	if err != nil {
		return ledger.PostParams{}, ledger.ErrMissingAccount
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m.form.GetString("amount"), ",", ""))
	if err != nil {
		return ledger.PostParams{}, ledger.ErrInvalidAmount
	}

	p := ledger.PostParams{
		Type:      ledger.Type(m.form.GetString("type")),
		Amount:    amount,
		AccountID: accountID,
		Category:  m.form.GetString("category"),
		Memo:      m.form.GetString("memo"),
	}

	if s := m.form.GetString("date"); s != "" {
		if p.Date, err = time.Parse(time.DateOnly, s); err != nil {
			return ledger.PostParams{}, err
		}
	}

	if s := m.form.GetString("to_account"); s != "" {
		to, err := uuid.Parse(s)
		if err != nil {
			return ledger.PostParams{}, ledger.ErrSameAccount
		}

		p.ToAccountID = &to
	}

	return p, nil
}

func (m EntryModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case entryStateLoading:
		return style.Render("Loading accounts...")
	case entryStateForm:
		return style.Render("New Entry\n\n" + m.form.View())
	case entryStateSaving:
		return style.Render("Saving...")
	case entryStateResult:
		if m.err != nil {
			return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
		}

		return style.Render(successStyle.Render(m.status) + "\n\n(n for another, Esc to go back)")
	}

	return ""
}

// Messages

type entryOptionsMsg struct {
	accounts   []*account.Account
	categories []*category.Category
	err        error
}

type entrySavedMsg struct {
	entry *ledger.Entry
	err   error
}

func (m EntryModel) loadOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx, m.UserID)
		if err != nil {
			return entryOptionsMsg{err: err}
		}

		categories, err := m.categoryService.List(ctx, m.UserID, nil)
		if err != nil {
			return entryOptionsMsg{err: err}
		}

		return entryOptionsMsg{accounts: accounts, categories: categories}
	}
}

func (m EntryModel) saveCmd(params ledger.PostParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.ledgerService.Post(ctx, m.UserID, params)

		return entrySavedMsg{entry: e, err: err}
	}
}
