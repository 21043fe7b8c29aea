// Package tui is the terminal client for the retro tracker. It follows the
// Elm architecture bubbletea imposes: one App model, messages produced by
// async commands, and a View rendered from state. Every remote call happens
// in a tea.Cmd so the render loop never blocks on the network.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/retroterm/retroterm/internal/api"
	"github.com/retroterm/retroterm/internal/config"
	"github.com/retroterm/retroterm/internal/logbook"
	"github.com/retroterm/retroterm/internal/query"
	"github.com/retroterm/retroterm/internal/session"
)

// screen identifies which page is active.
type screen int

const (
	screenStartup screen = iota // validating a persisted token
	screenLogin
	screenRegister
	screenTeams
	screenRetros
	screenBoard
	screenActions
	screenMembers
	screenProfile
	screenSettings
)

// App is the root bubbletea model holding all client state.
type App struct {
	config  *config.Config
	client  *api.Client
	cache   *query.Cache
	session *session.Store
	logbook *logbook.Logbook
	logger  *zap.Logger

	screen    screen
	width     int
	height    int
	statusMsg string

	login    *loginView
	teams    *teamsView
	retros   *retrosView
	board    *boardView
	actions  *actionsView
	members  *membersView
	profile  *profileView
	settings *settingsView

	// currentTeam and currentRetro scope the child screens. They are set on
	// navigation and cleared when backing out.
	currentTeam  api.Team
	currentRetro api.Retrospective
}

// NewApp wires the client, cache, and session store from configuration.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := api.NewClient(api.ClientConfig{
		BaseURL:             cfg.Server.BaseURL,
		DialTimeout:         cfg.Server.DialTimeout,
		ResponseTimeout:     cfg.Server.ResponseTimeout,
		MaxIdleConns:        cfg.Server.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Server.MaxIdleConnsPerHost,
	}, logger)
	lb, err := logbook.New(cfg.Dir)
	if err != nil {
		return nil, err
	}
	app := &App{
		config:  cfg,
		client:  client,
		cache:   query.New(),
		session: session.NewStore(cfg.Dir, client),
		logbook: lb,
		logger:  logger,
		screen:  screenStartup,
	}
	app.login = newLoginView(app)
	return app, nil
}

// Init kicks off the startup token check.
func (a *App) Init() tea.Cmd {
	return a.resumeSession()
}

// Update routes messages: global keys first, then session transitions, then
// the active screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The active view re-sizes its own widgets.
		return a, a.routeToScreen(msg)

	case sessionResumedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, session.ErrNoSession) {
				a.logger.Info("persisted session rejected", zap.Error(msg.err))
			}
			a.screen = screenLogin
			return a, nil
		}
		a.logbook.Info("Signed in as %s", msg.user.Name)
		return a, a.gotoTeams()

	case authResultMsg:
		return a, a.handleAuthResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	return a, a.routeToScreen(msg)
}

// handleAuthResult finishes a login or registration.
func (a *App) handleAuthResult(msg authResultMsg) tea.Cmd {
	if msg.err != nil {
		if a.login != nil {
			a.login.finish(msg.err)
		}
		a.setError("Login failed", msg.err)
		return nil
	}
	if err := a.session.Login(msg.resp.Token, msg.resp.User); err != nil {
		// The session is live in memory; only persistence failed. Keep going
		// but surface it.
		a.logger.Warn("token persistence failed", zap.Error(err))
	}
	if msg.registered {
		a.logbook.Info("Account created for %s", msg.resp.User.Name)
	} else {
		a.logbook.Info("Signed in as %s", msg.resp.User.Name)
	}
	a.statusMsg = successStyle.Render(fmt.Sprintf("Welcome, %s", msg.resp.User.Name))
	return a.gotoTeams()
}

// routeToScreen hands a message to the active screen's view.
func (a *App) routeToScreen(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case screenLogin, screenRegister:
		if a.login != nil {
			return a.login.Update(msg)
		}
	case screenTeams:
		if a.teams != nil {
			return a.teams.Update(msg)
		}
	case screenRetros:
		if a.retros != nil {
			return a.retros.Update(msg)
		}
	case screenBoard:
		if a.board != nil {
			return a.board.Update(msg)
		}
	case screenActions:
		if a.actions != nil {
			return a.actions.Update(msg)
		}
	case screenMembers:
		if a.members != nil {
			return a.members.Update(msg)
		}
	case screenProfile:
		if a.profile != nil {
			return a.profile.Update(msg)
		}
	case screenSettings:
		if a.settings != nil {
			return a.settings.Update(msg)
		}
	}
	return nil
}

// Navigation. Each transition builds a fresh view and returns its initial
// load command. In-flight commands from the previous screen are not
// cancelled; their responses settle into the cache and are simply not
// rendered.

func (a *App) gotoTeams() tea.Cmd {
	a.screen = screenTeams
	a.teams = newTeamsView(a)
	return a.loadTeams(false)
}

func (a *App) gotoRetros(team api.Team) tea.Cmd {
	a.currentTeam = team
	a.screen = screenRetros
	a.retros = newRetrosView(a)
	return a.loadRetros(team.ID, api.RetroFilters{}, false)
}

func (a *App) gotoBoard(retro api.Retrospective) tea.Cmd {
	a.currentRetro = retro
	a.screen = screenBoard
	a.board = newBoardView(a)
	return tea.Batch(
		a.loadRetro(retro.ID, false),
		a.loadCards(retro.ID, false),
	)
}

func (a *App) gotoActions() tea.Cmd {
	a.screen = screenActions
	a.actions = newActionsView(a)
	// Members and retros feed the dialog's assignee and retro pickers.
	return tea.Batch(
		a.loadActionItems(a.currentTeam.ID, api.ActionItemFilters{}, false),
		a.loadMembers(a.currentTeam.ID, false),
		a.loadRetros(a.currentTeam.ID, api.RetroFilters{}, false),
	)
}

func (a *App) gotoMembers() tea.Cmd {
	a.screen = screenMembers
	a.members = newMembersView(a)
	return a.loadMembers(a.currentTeam.ID, false)
}

func (a *App) gotoProfile() tea.Cmd {
	a.screen = screenProfile
	a.profile = newProfileView(a)
	return nil
}

func (a *App) gotoSettings() tea.Cmd {
	a.screen = screenSettings
	a.settings = newSettingsView(a)
	return nil
}

// logout clears the session, the cache, and every scoped view, and lands on
// the login screen. Terminal until a new login succeeds.
func (a *App) logout() tea.Cmd {
	name := ""
	if user := a.session.User(); user != nil {
		name = user.Name
	}
	a.session.Logout()
	a.cache.Clear()
	a.currentTeam = api.Team{}
	a.currentRetro = api.Retrospective{}
	a.teams, a.retros, a.board = nil, nil, nil
	a.actions, a.members, a.profile, a.settings = nil, nil, nil, nil
	a.login = newLoginView(a)
	a.screen = screenLogin
	if name != "" {
		a.logbook.Info("Signed out %s", name)
	}
	a.statusMsg = dimStyle.Render("Signed out")
	return nil
}

// setError surfaces a failed operation in the status line, preferring the
// server-provided message. No retry happens; the user acts again or not. A
// 401 mid-session means the token died since startup, so the hint points at
// signing back in.
func (a *App) setError(prefix string, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg := fmt.Sprintf("%s: %s", prefix, apiErr.Message)
		if api.IsUnauthorized(err) && a.session.Authenticated() {
			msg += " (press L on the teams screen to sign in again)"
		}
		a.statusMsg = errorStyle.Render(msg)
		return
	}
	a.statusMsg = errorStyle.Render(fmt.Sprintf("%s: %v", prefix, err))
}

func (a *App) setStatus(msg string) {
	a.statusMsg = successStyle.Render(msg)
}

// View renders the frame: header, the active screen, the activity panel, and
// the status footer.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	header := headerStyle.Render("⬡ RETROTERM " + a.breadcrumb())

	var content string
	switch a.screen {
	case screenStartup:
		content = dimStyle.Render("Checking session...")
	case screenLogin, screenRegister:
		content = a.login.View()
	case screenTeams:
		content = a.teams.View()
	case screenRetros:
		content = a.retros.View()
	case screenBoard:
		content = a.board.View()
	case screenActions:
		content = a.actions.View()
	case screenMembers:
		content = a.members.View()
	case screenProfile:
		content = a.profile.View()
	case screenSettings:
		content = a.settings.View()
	}

	body := panelStyle.Width(max(40, width-2)).Render(content)
	sections := []string{header, body}
	if a.config.UI.ShowActivity {
		if panel := a.renderActivityPanel(); panel != "" {
			sections = append(sections, panel)
		}
	}
	if a.statusMsg != "" {
		sections = append(sections, a.statusMsg)
	}
	return strings.Join(sections, "\n")
}

func (a *App) breadcrumb() string {
	var parts []string
	if user := a.session.User(); user != nil {
		parts = append(parts, user.Name)
	}
	if a.currentTeam.ID != "" && a.screen != screenTeams {
		parts = append(parts, a.currentTeam.Name)
	}
	if a.currentRetro.ID != "" && a.screen == screenBoard {
		parts = append(parts, a.currentRetro.Name)
	}
	if len(parts) == 0 {
		return ""
	}
	return dimStyle.Render("· " + strings.Join(parts, " › "))
}

func (a *App) renderActivityPanel() string {
	lines := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := titleStyle.Render("ACTIVITY")
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
