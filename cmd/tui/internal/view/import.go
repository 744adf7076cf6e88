package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const importTimeout = 2 * time.Minute

var bankOptions = []importer.Bank{
	importer.BankAuto,
	importer.BankKB,
	importer.BankShinhan,
	importer.BankCard,
	importer.BankGeneric,
}

type importState int

const (
	importStateLoading importState = iota
	importStateSource
	importStateFilePick
	importStateImporting
	importStateConflicts
	importStateResult
)

type ImportModel struct {
	CommonModel
	ledgerService  *ledger.Service
	accountService *account.Service
	importService  *importer.Service

	state        importState
	accounts     []*account.Account
	sourceForm   *huh.Form
	filePicker   filepicker.Model
	selectedBank importer.Bank
	accountID    uuid.UUID

	newParams    []ledger.PostParams
	conflicts    []ledger.Conflict
	conflictList list.Model
	selected     map[int]bool

	status string
	err    error
}

func NewImportModel(userID string, ledgerSvc *ledger.Service, accountSvc *account.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt", ".tsv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		CommonModel:    CommonModel{UserID: userID},
		ledgerService:  ledgerSvc,
		accountService: accountSvc,
		importService:  impSvc,
		filePicker:     fp,
		selected:       make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateConflicts {
		return "Space: toggle | a: all | n: none | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.loadAccountsCmd()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateConflicts {
			return m.updateConflicts(msg)
		}

	case importAccountsMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		if len(msg.accounts) == 0 {
			return m.fail(account.ErrNotFound)
		}

		m.accounts = msg.accounts
		m.sourceForm = m.buildSourceForm()
		m.state = importStateSource

		return m, m.sourceForm.Init()

	case importResultMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		if len(msg.result.Conflicts) == 0 {
			m.state = importStateResult
			m.status = fmt.Sprintf("Imported %d entries.", len(msg.result.Imported))

			return m, nil
		}

		m.newParams = msg.result.New
		m.conflicts = msg.result.Conflicts
		m.selected = make(map[int]bool)
		m.state = importStateConflicts

		items := make([]list.Item, len(m.conflicts))
		for i, c := range m.conflicts {
			items[i] = conflictItem{conflict: c, index: i}
		}

		delegate := conflictDelegate{selected: m.selected}
		m.conflictList = list.New(items, delegate, 80, 20)
		m.conflictList.Title = "Possible duplicates (selected rows are imported anyway)"
		m.conflictList.SetShowStatusBar(false)
		m.conflictList.SetFilteringEnabled(false)
		m.conflictList.SetShowHelp(false)

		return m, nil

	case confirmResultMsg:
		if msg.err != nil {
			return m.fail(msg.err)
		}

		m.state = importStateResult
		m.status = fmt.Sprintf("Imported %d entries.", msg.count)

		return m, nil
	}

	switch m.state {
	case importStateSource:
		return m.updateSource(msg)
	case importStateFilePick:
		return m.updateFilePick(msg)
	}

	return m, nil
}

func (m ImportModel) fail(err error) (tea.Model, tea.Cmd) {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Error: %v", err)

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult, importStateConflicts:
		if m.accounts == nil {
			return m, Back
		}

		m.state = importStateSource
		m.err = nil
		m.status = ""
		m.conflicts = nil
		m.newParams = nil
		m.selected = make(map[int]bool)
		m.sourceForm = m.buildSourceForm()

		return m, m.sourceForm.Init()
	}

	return m, Back
}

func (m ImportModel) buildSourceForm() *huh.Form {
	accountOpts := make([]huh.Option[string], 0, len(m.accounts))
	for _, a := range m.accounts {
		accountOpts = append(accountOpts, huh.NewOption(a.Label(), a.ID.String()))
	}

	bankOpts := make([]huh.Option[string], 0, len(bankOptions))
	for _, b := range bankOptions {
		bankOpts = append(bankOpts, huh.NewOption(string(b), string(b)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("account").
				Title("Import into").
				Options(accountOpts...),

			huh.NewSelect[string]().
				Key("bank").
				Title("Statement format").
				Options(bankOpts...),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) updateSource(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.sourceForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.sourceForm = f
	}

	if m.sourceForm.State != huh.StateCompleted {
		return m, cmd
	}

	id, err := uuid.Parse(m.sourceForm.GetString("account"))
	if err != nil {
		return m.fail(err)
	}

	m.accountID = id
	m.selectedBank = importer.Bank(m.sourceForm.GetString("bank"))
	m.state = importStateFilePick

	return m, m.filePicker.Init()
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateConflicts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.conflictList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.conflicts {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.conflicts {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.confirmCmd()
	}

	var cmd tea.Cmd
	m.conflictList, cmd = m.conflictList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	case importStateSource:
		return lipgloss.NewStyle().Padding(1).Render(m.sourceForm.View())
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select statement to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateConflicts:
		return lipgloss.NewStyle().Padding(1).Render(m.conflictList.View())
	case importStateResult:
		style := errorStyle
		if m.err == nil {
			style = successStyle
		}

		return lipgloss.NewStyle().Padding(2).Render(style.Render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}

// Messages

type importAccountsMsg struct {
	accounts []*account.Account
	err      error
}

type importResultMsg struct {
	result *ledger.ImportResult
	err    error
}

type confirmResultMsg struct {
	count int
	err   error
}

func (m ImportModel) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx, m.UserID)

		return importAccountsMsg{accounts: accounts, err: err}
	}
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	bank := m.selectedBank
	accountID := m.accountID

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.importService.Import(ctx, m.UserID, accountID, bank, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

func (m ImportModel) confirmCmd() tea.Cmd {
	accountID := m.accountID
	params := append([]ledger.PostParams(nil), m.newParams...)

	for i, c := range m.conflicts {
		if m.selected[i] {
			params = append(params, c.Incoming)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		entries, err := m.ledgerService.CreateBatch(ctx, m.UserID, accountID, params)
		if err != nil {
			return confirmResultMsg{err: err}
		}

		return confirmResultMsg{count: len(entries)}
	}
}

// Conflict list item

type conflictItem struct {
	conflict ledger.Conflict
	index    int
}

func (i conflictItem) Title() string       { return i.conflict.Incoming.RawDescription }
func (i conflictItem) Description() string { return "" }
func (i conflictItem) FilterValue() string { return i.conflict.Incoming.RawDescription }

// Conflict list delegate

type conflictDelegate struct {
	selected map[int]bool
}

func (d conflictDelegate) Height() int                             { return 3 }
func (d conflictDelegate) Spacing() int                            { return 0 }
func (d conflictDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d conflictDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(conflictItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if d.selected[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	incoming := item.conflict.Incoming
	existing := item.conflict.Existing

	line1 := fmt.Sprintf("%s%s %s  %s %s  %s",
		cursor, checkbox,
		FormatDate(incoming.Date),
		incoming.Type,
		incoming.Amount.String(),
		incoming.RawDescription,
	)

	line2 := fmt.Sprintf("      Existing: %s  %s  %s [%s]",
		FormatDate(existing.Date),
		FormatSigned(existing),
		existing.RawDescription,
		existing.Category,
	)

	fmt.Fprintf(w, "%s\n%s\n", line1, line2)
}
