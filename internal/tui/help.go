package tui

import (
	"fmt"
	"strings"

	"healthscore/internal/analysis"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{
		cardTitleStyle.Render("Keyboard Shortcuts"),
		m.renderSection("Navigation", []keyHelp{
			{"1", "Dashboard"},
			{"2", "Assessment history"},
			{"3", "Progress comparison"},
			{"4", "All-user analytics"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		m.renderSection("History", []keyHelp{
			{"j / down", "Move cursor down"},
			{"k / up", "Move cursor up"},
			{"pgdn / pgup", "Jump a page"},
			{"enter", "Open assessment"},
		}),
		m.renderSection("Assessment Detail", []keyHelp{
			{"j / k", "Scroll"},
			{"d", "Delete (asks to confirm)"},
		}),
		m.renderSection("Comparison", []keyHelp{
			{"p", "Compare with previous assessment"},
			{"f", "Compare with first assessment"},
		}),
		m.renderSection("Everywhere", []keyHelp{
			{"r", "Refresh data"},
		}),
		m.renderScoringHelp(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

var pillarHelp = map[analysis.Pillar]string{
	analysis.PillarExercise:        "How often, how hard and how long you train, plus strength work and rest days.",
	analysis.PillarNutrition:       "Vegetables, fruit, water, processed food, sugary drinks and meal regularity.",
	analysis.PillarWellbeing:       "Stress, mood, social connection, mindfulness, smoking and alcohol.",
	analysis.PillarSleep:           "Hours slept, sleep quality, screens before bed and waking refreshed.",
	analysis.PillarBodyComposition: "BMI and body fat relative to healthy ranges.",
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionTitleStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func (m HelpModel) renderScoringHelp() string {
	lines := []string{"", sectionTitleStyle.Render("How Scores Work"), ""}

	for _, p := range analysis.Pillars {
		lines = append(lines, "  "+helpKeyStyle.Render(fmt.Sprintf("%s (%.0f%%)", p.Label(), analysis.PillarWeights[p]*100)))
		lines = append(lines, "  "+mutedStyle.Render(pillarHelp[p]))
		lines = append(lines, "")
	}
	lines = append(lines, "  "+mutedStyle.Render("Unanswered questions count as a neutral 50."))

	return strings.Join(lines, "\n")
}
