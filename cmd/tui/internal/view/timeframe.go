package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

// Timeframe is a predefined or custom month selection.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = iota
	TimeframeLastMonth
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeCustom:
		return "Other Month"
	}

	return "Unknown"
}

// timeframeToMonth resolves a predefined timeframe to a YYYY-MM key.
func timeframeToMonth(tf Timeframe, now time.Time) string {
	current := metrics.CurrentMonth(now)
	if tf != TimeframeLastMonth {
		return current
	}

	last, err := metrics.ShiftMonth(current, -1)
	if err != nil {
		return current
	}

	return last
}

// MonthSelectedMsg is emitted when the user has picked a month.
type MonthSelectedMsg struct {
	Month string
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

// MonthPicker is a reusable component for selecting a ledger month.
type MonthPicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	monthInput textinput.Model

	err error
}

func NewMonthPicker() MonthPicker {
	mi := textinput.New()
	mi.Placeholder = "YYYY-MM"
	mi.CharLimit = 7
	mi.Width = 9
	mi.Prompt = "Month: "

	return MonthPicker{
		state:      timeframeStateSelect,
		selected:   TimeframeThisMonth,
		now:        time.Now,
		monthInput: mi,
	}
}

func (m MonthPicker) Init() tea.Cmd {
	return nil
}

func (m MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case timeframeStateSelect:
			return m.updateSelect(keyMsg)
		case timeframeStateCustom:
			return m.updateCustom(keyMsg)
		}
	}

	if m.state == timeframeStateCustom {
		var cmd tea.Cmd
		m.monthInput, cmd = m.monthInput.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m MonthPicker) updateSelect(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.monthInput.SetValue(metrics.CurrentMonth(m.now()))
			m.monthInput.Focus()

			return m, textinput.Blink
		}

		month := timeframeToMonth(m.selected, m.now())

		return m, func() tea.Msg {
			return MonthSelectedMsg{Month: month}
		}
	}

	return m, nil
}

func (m MonthPicker) updateCustom(msg tea.KeyMsg) (MonthPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		month := m.monthInput.Value()
		if _, err := metrics.ShiftMonth(month, 0); err != nil {
			m.err = fmt.Errorf("invalid month (YYYY-MM)")
			return m, nil
		}

		m.err = nil

		return m, func() tea.Msg {
			return MonthSelectedMsg{Month: month}
		}
	case tea.KeyEsc:
		m.state = timeframeStateSelect
		m.err = nil
		m.monthInput.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.monthInput, cmd = m.monthInput.Update(msg)

	return m, cmd
}

func (m MonthPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = errorStyle.Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Month:\n\n%s\n\n(Enter to confirm, Esc to back)%s",
			m.monthInput.View(),
			errStr,
		)
	}

	s := "Select Month:\n\n"
	for i := TimeframeThisMonth; i <= TimeframeCustom; i++ {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, i.String())
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting reports whether the picker is on the preset list rather than
// the custom month input.
func (m MonthPicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *MonthPicker) Reset() {
	m.state = timeframeStateSelect
	m.selected = TimeframeThisMonth
	m.err = nil
	m.monthInput.SetValue("")
	m.monthInput.Blur()
}
