package tui

import (
	"fmt"
	"strings"

	"healthscore/internal/analysis"
	"healthscore/internal/questionnaire"
	"healthscore/internal/service"
	"healthscore/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailModel shows one assessment with its metrics, feedback and coaching
type DetailModel struct {
	svc        *service.AssessmentService
	units      Units
	id         string
	assessment *store.Assessment
	result     analysis.Result
	viewport   viewport.Model
	confirming bool
	loading    bool
	err        error
	ready      bool
}

// NewDetailModel creates a new detail model
func NewDetailModel(svc *service.AssessmentService, units Units, id string, width, height int) DetailModel {
	m := DetailModel{
		svc:     svc,
		units:   units,
		id:      id,
		loading: true,
	}
	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-6) // Reserve space for header/footer
		m.ready = true
	}
	return m
}

// Init initializes the detail screen
func (m DetailModel) Init() tea.Cmd {
	return m.loadDetail
}

type detailLoadedMsg struct {
	assessment *store.Assessment
	err        error
}

// AssessmentDeletedMsg is sent after the shown assessment was removed
type AssessmentDeletedMsg struct {
	ID  string
	Err error
}

func (m DetailModel) loadDetail() tea.Msg {
	a, err := m.svc.GetAssessment(m.id)
	return detailLoadedMsg{assessment: a, err: err}
}

func (m DetailModel) deleteAssessment() tea.Msg {
	return AssessmentDeletedMsg{ID: m.id, Err: m.svc.DeleteAssessment(m.id)}
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.assessment = msg.assessment
		if msg.assessment != nil {
			m.result = m.svc.Result(msg.assessment)
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		if m.assessment != nil {
			m.viewport.SetContent(m.renderContent())
		}

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				return m, m.deleteAssessment
			}
			return m, nil
		}
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadDetail
		case "d":
			if m.assessment != nil {
				m.confirming = true
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail screen
func (m DetailModel) View() string {
	if m.loading {
		return "\n  Loading assessment..."
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	footer := statusStyle.Render("  esc: back to history  j/k or arrows: scroll  d: delete  r: refresh")
	if m.confirming {
		footer = errorStyle.Render("  Delete this assessment? (y/n)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m DetailModel) renderContent() string {
	if m.assessment == nil {
		return "No data"
	}

	sections := []string{
		m.renderHeader(),
		m.renderMetrics(),
		m.renderFeedback(),
	}
	if m.assessment.Coaching != nil {
		sections = append(sections, m.renderCoaching())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DetailModel) renderHeader() string {
	a := m.assessment
	id := a.ID
	if len(id) > 8 {
		id = id[:8]
	}
	title := cardTitleStyle.Render("Assessment " + id)
	date := mutedStyle.Render(a.CreatedAt.Local().Format("Monday, January 2, 2006 at 3:04 PM"))

	score := scoreStyle(a.OverallScore).Render(fmt.Sprintf("%d / 100", a.OverallScore))
	stats := fmt.Sprintf("%s  •  %s  •  %d of %d questions answered",
		score, m.result.Description, a.Answers.Len(), len(questionnaire.Questions()))

	return lipgloss.JoinVertical(lipgloss.Left, "", title, date, stats, "")
}

func (m DetailModel) renderMetrics() string {
	a := m.assessment
	c := a.Calculations

	lines := []string{sectionTitleStyle.Render("Body Metrics")}

	if h, ok := a.Answers.Number(questionnaire.Height); ok {
		lines = append(lines, fmt.Sprintf("  Height:                 %s", m.units.FormatHeight(h)))
	}
	if w, ok := a.Answers.Number(questionnaire.Weight); ok {
		lines = append(lines, fmt.Sprintf("  Weight:                 %s", m.units.FormatWeight(w)))
	}

	bmi := formatFloat(c.BMI, "%.1f")
	if c.BMICategory != "" {
		bmi += " (" + c.BMICategory + ")"
	}
	lines = append(lines, fmt.Sprintf("  BMI:                    %s", bmi))

	bodyFat := formatFloat(c.BodyFat, "%.1f%%")
	if c.BodyFat != nil && c.IsBodyFatEstimated {
		bodyFat += " (estimated)"
	}
	lines = append(lines,
		fmt.Sprintf("  Body fat:               %s", bodyFat),
		fmt.Sprintf("  Ideal weight:           %s", m.units.FormatWeightRange(c.IdealWeightLow, c.IdealWeightHigh)),
		fmt.Sprintf("  BMR:                    %s", formatFloat(c.BMR, "%.0f kcal")),
		fmt.Sprintf("  TDEE:                   %s", formatFloat(c.TDEE, "%.0f kcal")),
		fmt.Sprintf("  Recommended calories:   %s", formatFloat(c.RecommendedCalories, "%.0f kcal")),
	)
	if c.ProteinGrams != nil && c.CarbGrams != nil && c.FatGrams != nil {
		lines = append(lines, fmt.Sprintf("  Macros:                 %.0fg protein, %.0fg carbs, %.0fg fat",
			*c.ProteinGrams, *c.CarbGrams, *c.FatGrams))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderFeedback() string {
	lines := []string{sectionTitleStyle.Render("Pillars")}

	for _, f := range m.result.Feedback {
		lines = append(lines, fmt.Sprintf("  %-20s %s %s",
			f.Pillar.Label(),
			RenderScoreBar(f.Score, 20),
			scoreStyle(f.Score).Render(fmt.Sprintf("%3d", f.Score)),
		))
		lines = append(lines, "    "+mutedStyle.Render(f.Feedback))
		for _, r := range f.Recommendations {
			lines = append(lines, "    • "+r)
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderCoaching() string {
	body := lipgloss.NewStyle().Width(max(m.viewport.Width-6, 20)).Render(*m.assessment.Coaching)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, cardTitleStyle.Render("Coaching"), body))
}
