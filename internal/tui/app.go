package tui

import (
	"fmt"

	"healthscore/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenHistory
	ScreenDetail
	ScreenComparisons
	ScreenAnalytics
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	dashboard   DashboardModel
	history     HistoryModel
	detail      DetailModel
	comparisons ComparisonsModel
	analytics   AnalyticsModel
	help        HelpModel

	svc    *service.AssessmentService
	userID string
	units  Units

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App for one user
func NewApp(svc *service.AssessmentService, userID string, units Units) *App {
	return &App{
		screen:      ScreenDashboard,
		svc:         svc,
		userID:      userID,
		units:       units,
		dashboard:   NewDashboardModel(svc, userID, units, 0),
		history:     NewHistoryModel(svc, userID),
		comparisons: NewComparisonsModel(svc, userID),
		analytics:   NewAnalyticsModel(svc),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The detail screen owns keys while a delete confirmation is open
		if a.screen == ScreenDetail && a.detail.confirming {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "1":
			a.screen = ScreenDashboard
			a.dashboard = NewDashboardModel(a.svc, a.userID, a.units, a.width)
			return a, a.dashboard.Init()
		case "2":
			a.screen = ScreenHistory
			return a, a.history.Init()
		case "3":
			a.screen = ScreenComparisons
			return a, a.comparisons.Init()
		case "4":
			a.screen = ScreenAnalytics
			return a, a.analytics.Init()
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			switch a.screen {
			case ScreenHelp:
				a.screen = a.prevScreen
				return a, nil
			case ScreenDetail:
				a.screen = ScreenHistory
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case OpenAssessmentDetailMsg:
		a.screen = ScreenDetail
		a.status = ""
		a.detail = NewDetailModel(a.svc, a.units, msg.ID, a.width, a.height)
		return a, a.detail.Init()

	case AssessmentDeletedMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("Delete failed: %v", msg.Err)
			return a, nil
		}
		a.status = "Assessment deleted"
		a.screen = ScreenHistory
		return a, a.history.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	var m tea.Model
	switch a.screen {
	case ScreenDashboard:
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenHistory:
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenDetail:
		m, cmd = a.detail.Update(msg)
		a.detail = m.(DetailModel)
	case ScreenComparisons:
		m, cmd = a.comparisons.Update(msg)
		a.comparisons = m.(ComparisonsModel)
	case ScreenAnalytics:
		m, cmd = a.analytics.Update(msg)
		a.analytics = m.(AnalyticsModel)
	case ScreenHelp:
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenDetail:
		content = a.detail.View()
	case ScreenComparisons:
		content = a.comparisons.View()
	case ScreenAnalytics:
		content = a.analytics.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), a.renderNav(), content, a.renderFooter())
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Health Score  ·  " + a.userID)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "History", ScreenHistory},
		{"3", "Progress", ScreenComparisons},
		{"4", "Analytics", ScreenAnalytics},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		active := a.screen == item.screen || (item.screen == ScreenHistory && a.screen == ScreenDetail)
		if active {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")
	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	if a.status != "" {
		return statusStyle.Render(a.status)
	}
	return ""
}
