package tui

import (
	"context"
	"fmt"
	"sort"

	"healthscore/internal/analysis"
	"healthscore/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// AnalyticsModel shows aggregates across every user in the database
type AnalyticsModel struct {
	svc     *service.AssessmentService
	stats   *service.AdminAnalytics
	loading bool
	err     error
}

// NewAnalyticsModel creates a new analytics model
func NewAnalyticsModel(svc *service.AssessmentService) AnalyticsModel {
	return AnalyticsModel{svc: svc, loading: true}
}

// Init initializes the analytics screen
func (m AnalyticsModel) Init() tea.Cmd {
	return m.loadStats
}

type analyticsLoadedMsg struct {
	stats *service.AdminAnalytics
	err   error
}

func (m AnalyticsModel) loadStats() tea.Msg {
	stats, err := m.svc.GetAdminAnalytics(context.Background())
	return analyticsLoadedMsg{stats: stats, err: err}
}

// Update handles messages
func (m AnalyticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.loadStats
		}
	}
	return m, nil
}

// View renders the analytics screen
func (m AnalyticsModel) View() string {
	if m.loading {
		return "\n  Loading analytics..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if m.stats == nil || m.stats.UserCount == 0 {
		return "\n  No assessments stored yet."
	}

	s := m.stats
	summary := []string{
		cardTitleStyle.Render("All Users"),
		RenderMetric("Users", humanize.Comma(int64(s.UserCount)), ""),
		RenderMetric("Assessments", humanize.Comma(int64(s.AssessmentCount)), ""),
		RenderMetric("Avg overall score", fmt.Sprintf("%.1f", s.AvgOverall), ""),
		RenderMetric("Avg streak", fmt.Sprintf("%.1f days", s.AvgStreak), ""),
		RenderMetric("Avg completion", fmt.Sprintf("%.1f%%", s.AvgCompletion), ""),
	}

	pillars := []string{cardTitleStyle.Render("Average Pillar Scores")}
	for _, p := range analysis.Pillars {
		avg := s.AvgPillars[string(p)]
		pillars = append(pillars, lipgloss.JoinHorizontal(lipgloss.Left,
			metricLabelStyle.Render(p.Label()),
			RenderScoreBar(int(avg), 16),
			fmt.Sprintf(" %5.1f", avg),
		))
	}

	categories := make([]string, 0, len(s.BMICategories))
	for c := range s.BMICategories {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	bmi := []string{cardTitleStyle.Render("BMI Categories (latest)")}
	for _, c := range categories {
		n := s.BMICategories[c]
		pct := float64(n) / float64(s.UserCount) * 100
		bmi = append(bmi, RenderMetric(c, fmt.Sprintf("%d", n), fmt.Sprintf("(%.0f%%)", pct)))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, summary...)),
		"  ",
		cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, pillars...)),
	)
	bottom := cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, bmi...))

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, statusStyle.Render("  r: refresh"))
}
