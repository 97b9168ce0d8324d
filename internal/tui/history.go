package tui

import (
	"fmt"

	"healthscore/internal/service"
	"healthscore/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel lists a user's assessments, newest first
type HistoryModel struct {
	svc      *service.AssessmentService
	userID   string
	records  []store.Assessment
	cursor   int
	offset   int
	pageSize int
	loading  bool
	err      error
}

// NewHistoryModel creates a new history model
func NewHistoryModel(svc *service.AssessmentService, userID string) HistoryModel {
	return HistoryModel{
		svc:      svc,
		userID:   userID,
		pageSize: 15,
		loading:  true,
	}
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

type historyLoadedMsg struct {
	records []store.Assessment
	err     error
}

func (m HistoryModel) loadHistory() tea.Msg {
	records, err := m.svc.GetHistory(m.userID)
	if err != nil {
		return historyLoadedMsg{err: err}
	}
	// Newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return historyLoadedMsg{records: records}
}

// OpenAssessmentDetailMsg asks the app to show one assessment
type OpenAssessmentDetailMsg struct {
	ID string
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}
		m.clampOffset()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor = max(m.cursor-m.pageSize, 0)
		case "pgdown":
			m.cursor = min(m.cursor+m.pageSize, max(len(m.records)-1, 0))
		case "r":
			m.loading = true
			return m, m.loadHistory
		case "enter":
			if m.cursor < len(m.records) {
				id := m.records[m.cursor].ID
				return m, func() tea.Msg {
					return OpenAssessmentDetailMsg{ID: id}
				}
			}
		}
		m.clampOffset()
	}
	return m, nil
}

// clampOffset keeps the cursor inside the visible page
func (m *HistoryModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.pageSize {
		m.offset = m.cursor - m.pageSize + 1
	}
}

// View renders the history list
func (m HistoryModel) View() string {
	if m.loading {
		return "\n  Loading history..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if len(m.records) == 0 {
		return "\n  No assessments yet."
	}

	var sections []string

	end := min(m.offset+m.pageSize, len(m.records))
	title := cardTitleStyle.Render(fmt.Sprintf("Assessments (%d-%d of %d)", m.offset+1, end, len(m.records)))
	sections = append(sections, title)

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-16s  %7s  %8s  %9s  %9s  %6s  %6s  %8s",
		"Date", "Overall", "Exercise", "Nutrition", "Wellbeing", "Sleep", "Body", "Coaching"))
	sections = append(sections, header)

	for i := m.offset; i < end; i++ {
		a := m.records[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		coaching := "-"
		if a.Coaching != nil {
			coaching = "yes"
		}

		row := fmt.Sprintf("%s%-16s  %7d  %8d  %9d  %9d  %6d  %6d  %8s",
			cursor,
			a.CreatedAt.Local().Format("Jan 02 15:04"),
			a.OverallScore,
			a.Scores.Exercise,
			a.Scores.Nutrition,
			a.Scores.Wellbeing,
			a.Scores.Sleep,
			a.Scores.BodyComposition,
			coaching,
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	sections = append(sections, statusStyle.Render("\n  enter: view details  j/k: navigate  pgup/pgdn: page  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
