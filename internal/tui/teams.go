package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// teamItem adapts a team to the bubbles list.
type teamItem struct {
	team api.Team
}

func (i teamItem) Title() string { return i.team.Name }
func (i teamItem) Description() string {
	desc := i.team.Description
	if desc == "" {
		desc = fmt.Sprintf("%d member(s)", len(i.team.Members))
	}
	return desc
}
func (i teamItem) FilterValue() string { return i.team.Name }

// teamsView is the dashboard: the user's teams plus the create-team form.
type teamsView struct {
	app     *App
	menu    list.Model
	teams   []api.Team
	loading bool
	pending bool
	create  *form
}

func newTeamsView(app *App) *teamsView {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Your Teams"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	v := &teamsView{app: app, menu: menu, loading: true}
	v.resize()
	return v
}

func (v *teamsView) resize() {
	v.menu.SetSize(max(20, v.app.width-8), max(10, v.app.height-14))
}

func (v *teamsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return nil

	case teamsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.app.setError("Could not load teams", msg.err)
			return nil
		}
		v.teams = msg.teams
		items := make([]list.Item, len(msg.teams))
		for i, team := range msg.teams {
			items[i] = teamItem{team: team}
		}
		v.menu.SetItems(items)
		return nil

	case teamSavedMsg:
		v.pending = false
		v.app.logMutation("Team created", msg.err)
		if msg.err != nil {
			v.app.setError("Could not create team", msg.err)
			return nil
		}
		v.create = nil
		v.app.setStatus("Team created")
		return v.app.loadTeams(true)

	case tea.KeyMsg:
		if v.create != nil {
			return v.updateCreate(msg)
		}
		switch msg.String() {
		case "q":
			return tea.Quit
		case "r":
			v.loading = true
			return v.app.loadTeams(true)
		case "n":
			v.create = newForm(
				formField{label: "Team name", placeholder: "Platform Crew", required: true},
				formField{label: "Description", placeholder: "optional"},
			)
			return nil
		case "p":
			return v.app.gotoProfile()
		case "s":
			return v.app.gotoSettings()
		case "L":
			return v.app.logout()
		case "enter":
			if item, ok := v.menu.SelectedItem().(teamItem); ok {
				return v.app.gotoRetros(item.team)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func (v *teamsView) updateCreate(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.create = nil
		return nil
	case "enter":
		if !v.create.validate() {
			return nil
		}
		v.pending = true
		return v.app.createTeamCmd(api.CreateTeamData{
			Name:        v.create.value(0),
			Description: v.create.value(1),
		})
	}
	return v.create.Update(msg)
}

func (v *teamsView) View() string {
	if v.create != nil {
		hint := "Enter → create team    Esc → cancel"
		if v.pending {
			hint = "Creating..."
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Team"),
			"",
			v.create.View(),
			hintStyle.Render(hint),
		)
	}
	if v.loading {
		return dimStyle.Render("Loading teams...")
	}
	if len(v.teams) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			dimStyle.Render("No teams yet. Press n to create one."),
			v.hints(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, v.menu.View(), v.hints())
}

func (v *teamsView) hints() string {
	return hintStyle.Render("Enter → open    n → new team    p → profile    s → settings    L → sign out    q → quit")
}
