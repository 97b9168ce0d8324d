package tui

import (
	"fmt"

	"healthscore/internal/analysis"
	"healthscore/internal/service"
	"healthscore/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Comparison baselines
const (
	baselinePrevious = "previous"
	baselineFirst    = "first"
)

// ComparisonsModel compares the latest assessment against a baseline
type ComparisonsModel struct {
	svc      *service.AssessmentService
	userID   string
	baseline string
	current  *store.Assessment
	base     *store.Assessment
	loading  bool
	err      error
}

// NewComparisonsModel creates a new comparisons model
func NewComparisonsModel(svc *service.AssessmentService, userID string) ComparisonsModel {
	return ComparisonsModel{
		svc:      svc,
		userID:   userID,
		baseline: baselinePrevious,
		loading:  true,
	}
}

// Init initializes the comparisons screen
func (m ComparisonsModel) Init() tea.Cmd {
	return m.loadComparison
}

type comparisonLoadedMsg struct {
	current *store.Assessment
	base    *store.Assessment
	err     error
}

func (m ComparisonsModel) loadComparison() tea.Msg {
	records, err := m.svc.GetHistory(m.userID)
	if err != nil || len(records) < 2 {
		return comparisonLoadedMsg{err: err}
	}

	current := records[len(records)-1]
	base := records[len(records)-2]
	if m.baseline == baselineFirst {
		base = records[0]
	}
	return comparisonLoadedMsg{current: &current, base: &base}
}

// Update handles messages
func (m ComparisonsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case comparisonLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.current = msg.current
		m.base = msg.base

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			if m.baseline != baselinePrevious {
				m.baseline = baselinePrevious
				m.loading = true
				return m, m.loadComparison
			}
		case "f":
			if m.baseline != baselineFirst {
				m.baseline = baselineFirst
				m.loading = true
				return m, m.loadComparison
			}
		case "r":
			m.loading = true
			return m, m.loadComparison
		}
	}
	return m, nil
}

// View renders the comparisons screen
func (m ComparisonsModel) View() string {
	if m.loading {
		return "\n  Loading comparison..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	modeIndicator := "[P]revious | First"
	if m.baseline == baselineFirst {
		modeIndicator = "Previous | [F]irst"
	}
	sections := []string{cardTitleStyle.Render("Progress") + "  " + statusStyle.Render(modeIndicator)}

	if m.current == nil || m.base == nil {
		sections = append(sections, "\n  At least two assessments are needed for a comparison.")
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderScores(), m.renderBody())

	summary := analysis.CompareMetrics(m.current, m.base)
	sections = append(sections, "", mutedStyle.Render(fmt.Sprintf("  %d improved, %d unchanged, %d declined",
		summary.Improved, summary.Unchanged, summary.Declined)))

	sections = append(sections, statusStyle.Render("\n  p/f: previous/first baseline  r: refresh"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ComparisonsModel) renderScores() string {
	header := tableHeaderStyle.Render(fmt.Sprintf("  %-20s  %-14s  %-14s  %s",
		"Score",
		m.current.CreatedAt.Local().Format("Jan 02 2006"),
		m.base.CreatedAt.Local().Format("Jan 02 2006"),
		"Delta"))

	rows := []string{
		m.renderRow("Overall", float64(m.current.OverallScore), float64(m.base.OverallScore), "%.0f", false),
	}
	for _, p := range analysis.Pillars {
		cur, prev := p.Score(m.current.Scores), p.Score(m.base.Scores)
		rows = append(rows, m.renderRow(p.Label(), float64(cur), float64(prev), "%.0f", false))
	}

	return lipgloss.JoinVertical(lipgloss.Left, "", header, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m ComparisonsModel) renderBody() string {
	cur, prev := m.current.Calculations, m.base.Calculations

	var rows []string
	if cur.BMI != nil && prev.BMI != nil {
		rows = append(rows, m.renderRow("BMI", *cur.BMI, *prev.BMI, "%.1f", true))
	}
	if cur.BodyFat != nil && prev.BodyFat != nil {
		rows = append(rows, m.renderRow("Body fat %", *cur.BodyFat, *prev.BodyFat, "%.1f", true))
	}
	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, "", lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m ComparisonsModel) renderRow(label string, current, previous float64, format string, lowerIsBetter bool) string {
	d := current - previous

	trend := 0 // -1 = worse, 0 = flat, 1 = better
	deltaStr := "0"
	switch {
	case d > 0.05:
		deltaStr = fmt.Sprintf("+"+format, d)
		trend = 1
	case d < -0.05:
		deltaStr = fmt.Sprintf(format, d)
		trend = -1
	}

	arrow := map[int]string{1: " ↑", -1: " ↓", 0: " →"}[trend]
	if lowerIsBetter {
		trend = -trend
	}

	var styledDelta string
	switch trend {
	case 1:
		styledDelta = trendUpStyle.Render(deltaStr + arrow)
	case -1:
		styledDelta = trendDownStyle.Render(deltaStr + arrow)
	default:
		styledDelta = trendFlatStyle.Render(deltaStr + arrow)
	}

	row := fmt.Sprintf("  %-20s  %-14s  %-14s  %s",
		label,
		fmt.Sprintf(format, current),
		fmt.Sprintf(format, previous),
		styledDelta)
	return tableRowStyle.Render(row)
}
