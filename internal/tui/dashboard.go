package tui

import (
	"fmt"
	"time"

	"healthscore/internal/analysis"
	"healthscore/internal/questionnaire"
	"healthscore/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

// DashboardModel is the dashboard screen model
type DashboardModel struct {
	svc     *service.AssessmentService
	userID  string
	units   Units
	data    *service.DashboardData
	loading bool
	err     error
	width   int
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(svc *service.AssessmentService, userID string, units Units, width int) DashboardModel {
	return DashboardModel{
		svc:     svc,
		userID:  userID,
		units:   units,
		loading: true,
		width:   width,
	}
}

// Init initializes the dashboard
func (m DashboardModel) Init() tea.Cmd {
	return m.loadData
}

func (m DashboardModel) loadData() tea.Msg {
	data, err := m.svc.GetDashboardData(m.userID)
	return dashboardDataMsg{data: data, err: err}
}

type dashboardDataMsg struct {
	data *service.DashboardData
	err  error
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadData
		}
	}
	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.loading {
		return "\n  Loading dashboard..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.data == nil || m.data.Latest == nil {
		return fmt.Sprintf("\n  No assessments for %q yet. Run 'healthscore assess <answers.yaml>' to add one.", m.userID)
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderScoreCard(), "  ", m.renderEngagementCard())
	sections = append(sections, topRow)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.renderPillarCard(), "  ", m.renderBodyCard()))

	if len(m.data.ScoreHistory) > 2 {
		sections = append(sections, m.renderChart())
	}

	sections = append(sections, statusStyle.Render("Press 'r' to refresh, '2' for history, '3' for comparisons"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DashboardModel) renderScoreCard() string {
	title := cardTitleStyle.Render("Overall Health")
	latest := m.data.Latest

	trend := ""
	if prev := m.data.Previous; prev != nil {
		trend = formatDelta(latest.OverallScore - prev.OverallScore)
	}

	lines := []string{
		RenderMetric("Score", scoreStyle(latest.OverallScore).Render(fmt.Sprintf("%d / 100", latest.OverallScore)), trend),
		RenderMetric("Rating", m.data.Description, ""),
		RenderMetric("Focus area", m.data.WeakestPillar, ""),
		"",
		mutedStyle.Render(m.data.DataQuality),
	}
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderEngagementCard() string {
	title := cardTitleStyle.Render("Engagement")
	c := m.data.Comparison

	lines := []string{
		RenderMetric("Day streak", fmt.Sprintf("%d", m.data.Streak), ""),
		RenderMetric("Completion rate", fmt.Sprintf("%d%%", m.data.CompletionRate), ""),
		RenderMetric("Assessments", humanize.Comma(int64(m.data.TotalCount)), ""),
		RenderMetric("Last assessed", humanize.RelTime(m.data.Latest.CreatedAt, time.Now(), "ago", "from now"), ""),
	}
	if m.data.Previous != nil {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%d improved, %d unchanged, %d declined", c.Improved, c.Unchanged, c.Declined)))
	}
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderPillarCard() string {
	title := cardTitleStyle.Render("Pillars")

	var rows []string
	for _, p := range analysis.Pillars {
		score := p.Score(m.data.Latest.Scores)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
			metricLabelStyle.Render(p.Label()),
			RenderScoreBar(score, 16),
			scoreStyle(score).Render(fmt.Sprintf(" %3d", score)),
		))
	}
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (m DashboardModel) renderBodyCard() string {
	title := cardTitleStyle.Render("Body Metrics")
	latest := m.data.Latest
	c := latest.Calculations

	weight := "-"
	if kg, ok := latest.Answers.Number(questionnaire.Weight); ok {
		weight = m.units.FormatWeight(kg)
	}

	bmi := formatFloat(c.BMI, "%.1f")
	if c.BMICategory != "" {
		bmi += " (" + c.BMICategory + ")"
	}
	bodyFat := formatFloat(c.BodyFat, "%.1f%%")
	if c.BodyFat != nil && c.IsBodyFatEstimated {
		bodyFat += " est."
	}

	lines := []string{
		RenderMetric("Weight", weight, ""),
		RenderMetric("BMI", bmi, ""),
		RenderMetric("Body fat", bodyFat, ""),
		RenderMetric("Ideal weight", m.units.FormatWeightRange(c.IdealWeightLow, c.IdealWeightHigh), ""),
		RenderMetric("Daily calories", formatFloat(c.RecommendedCalories, "%.0f kcal"), ""),
	}
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func (m DashboardModel) renderChart() string {
	title := cardTitleStyle.Render("Overall Score - Recent Trend")

	data := make([]float64, len(m.data.ScoreHistory))
	for i, s := range m.data.ScoreHistory {
		data[i] = float64(s)
	}

	width := 60
	if m.width > 20 && m.width-20 < width {
		width = m.width - 20
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
	)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}
