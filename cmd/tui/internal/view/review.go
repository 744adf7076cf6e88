package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
)

// ReviewModel walks through the uncategorized entries of a month, prefilling
// each with the learned category for its statement text.
type ReviewModel struct {
	CommonModel
	ledgerService   *ledger.Service
	matchingService *matching.Service

	state  reviewState
	picker MonthPicker
	month  string

	queue       []*ledger.Entry
	suggestions map[string]string
	current     *ledger.Entry

	categoryInput textinput.Model

	status     string
	loading    bool
	totalCount int
}

type reviewState int

const (
	reviewStateMonth reviewState = iota
	reviewStateReviewing
)

func NewReviewModel(userID string, ledgerSvc *ledger.Service, matchSvc *matching.Service) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Category"
	ti.Width = 30

	return ReviewModel{
		CommonModel:     CommonModel{UserID: userID},
		ledgerService:   ledgerSvc,
		matchingService: matchSvc,
		picker:          NewMonthPicker(),
		categoryInput:   ti,
	}
}

func (m ReviewModel) Title() string { return "Categorize Entries" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateReviewing {
		return "Enter: save & next | Tab: skip | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ReviewModel) Init() tea.Cmd {
	return nil
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthSelectedMsg:
		m.month = msg.Month
		m.state = reviewStateReviewing
		m.loading = true

		return m, m.loadQueueCmd()

	case loadQueueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading entries: %v", msg.err)
			return m, nil
		}

		m.queue = msg.entries
		m.suggestions = msg.suggestions
		m.totalCount = len(m.queue)

		if len(m.queue) == 0 {
			m.status = fmt.Sprintf("Every entry in %s has a category.", m.month)
			return m, nil
		}

		m.next()

		return m, textinput.Blink

	case saveResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.next()

		return m, textinput.Blink

	case tea.KeyMsg:
		if m.state == reviewStateMonth {
			if msg.Type == tea.KeyEsc && m.picker.IsSelecting() {
				return m, Back
			}

			break
		}

		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			m.state = reviewStateMonth
			m.picker.Reset()
			m.current = nil
			m.status = ""

			return m, nil
		case tea.KeyTab:
			if m.current != nil {
				m.next()
			}

			return m, nil
		case tea.KeyEnter:
			if m.current == nil {
				return m, nil
			}

			category := strings.TrimSpace(m.categoryInput.Value())
			if category == "" {
				m.status = "Category cannot be empty (Tab to skip)"
				return m, nil
			}

			return m, m.saveAndNextCmd(m.current, category)
		}
	}

	var cmd tea.Cmd

	switch m.state {
	case reviewStateMonth:
		m.picker, cmd = m.picker.Update(msg)
	case reviewStateReviewing:
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	}

	return m, cmd
}

func (m ReviewModel) View() string {
	if m.state == reviewStateMonth {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	var content string

	switch {
	case m.loading:
		content = "Loading entries..."
	case m.current != nil:
		info := fmt.Sprintf(
			"Date:      %s\nAccount:   %s\nAmount:    %s\nStatement: %s\nMemo:      %s\n",
			FormatDate(m.current.Date),
			m.current.AccountName,
			FormatSigned(m.current),
			m.current.RawDescription,
			m.current.Memo,
		)
		content = fmt.Sprintf("%s\n\n%s\nCategory:\n%s\n\n(Enter to save & next, Tab to skip, Esc to back)",
			m.status, info, m.categoryInput.View())
	default:
		content = m.status + "\n\n(Esc to back)"
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

func (m *ReviewModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = "All done!"
		m.categoryInput.Blur()
		m.categoryInput.SetValue("")

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]

	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
	m.categoryInput.SetValue(m.suggestions[m.current.RawDescription])
	m.categoryInput.Focus()
}

// Messages

type loadQueueMsg struct {
	entries     []*ledger.Entry
	suggestions map[string]string
	err         error
}

type saveResultMsg struct {
	err error
}

func (m ReviewModel) loadQueueCmd() tea.Cmd {
	month := m.month

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.ledgerService.List(ctx, m.UserID, ledger.ListFilter{Month: month})
		if err != nil {
			return loadQueueMsg{err: err}
		}

		var queue []*ledger.Entry

		suggestions := make(map[string]string)

		for _, e := range entries {
			if e.Category != "" || e.Type == ledger.TypeTransfer {
				continue
			}

			queue = append(queue, e)

			if _, seen := suggestions[e.RawDescription]; seen || e.RawDescription == "" {
				continue
			}

			cat, err := m.matchingService.Suggest(ctx, m.UserID, e.RawDescription)
			if err != nil {
				return loadQueueMsg{err: err}
			}

			suggestions[e.RawDescription] = cat
		}

		return loadQueueMsg{entries: queue, suggestions: suggestions}
	}
}

func (m ReviewModel) saveAndNextCmd(e *ledger.Entry, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		params := paramsOf(e)
		params.Category = category

		if _, err := m.ledgerService.Update(ctx, m.UserID, e.ID, params); err != nil {
			return saveResultMsg{err: err}
		}

		if e.RawDescription != "" {
			if _, err := m.matchingService.Learn(ctx, m.UserID, e.RawDescription, category); err != nil {
				return saveResultMsg{err: err}
			}
		}

		return saveResultMsg{}
	}
}
