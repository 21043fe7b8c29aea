package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// retroItem adapts a retrospective to the bubbles list.
type retroItem struct {
	retro api.Retrospective
}

func (i retroItem) Title() string {
	title := i.retro.Name
	if i.retro.SprintNumber > 0 {
		title += fmt.Sprintf(" · Sprint %d", i.retro.SprintNumber)
	}
	return title
}

func (i retroItem) Description() string {
	parts := []string{string(i.retro.Status)}
	if counts := i.retro.CardCount; counts != nil {
		parts = append(parts, fmt.Sprintf("%d/%d/%d cards",
			counts.WentWell, counts.NeedsImprovement, counts.Kudos))
	}
	if i.retro.CreatedBy.Name != "" {
		parts = append(parts, "by "+i.retro.CreatedBy.Name)
	}
	return strings.Join(parts, " · ")
}

func (i retroItem) FilterValue() string { return i.retro.Name }

// retrosView lists one team's retrospectives with search, creation, and
// deletion.
type retrosView struct {
	app      *App
	menu     list.Model
	retros   []api.Retrospective
	info     api.PageInfo
	filters  api.RetroFilters
	search   textinput.Model
	inSearch bool
	loading  bool
	pending  bool
	create   *form
}

func newRetrosView(app *App) *retrosView {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Retrospectives"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "search retros"
	search.CharLimit = 128
	search.Width = 32

	v := &retrosView{app: app, menu: menu, search: search, loading: true}
	v.resize()
	return v
}

func (v *retrosView) resize() {
	v.menu.SetSize(max(20, v.app.width-8), max(10, v.app.height-16))
}

func (v *retrosView) reload(force bool) tea.Cmd {
	v.loading = true
	return v.app.loadRetros(v.app.currentTeam.ID, v.filters, force)
}

func (v *retrosView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return nil

	case retrosLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.app.setError("Could not load retros", msg.err)
			return nil
		}
		v.retros = msg.retros
		v.info = msg.info
		items := make([]list.Item, len(msg.retros))
		for i, retro := range msg.retros {
			items[i] = retroItem{retro: retro}
		}
		v.menu.SetItems(items)
		return nil

	case retroSavedMsg:
		v.pending = false
		if msg.action == "create" {
			v.app.logMutation("Retro created", msg.err)
			if msg.err != nil {
				v.app.setError("Could not create retro", msg.err)
				return nil
			}
			v.create = nil
			v.app.setStatus("Retro created")
		} else {
			v.app.logMutation("Retro deleted", msg.err)
			if msg.err != nil {
				v.app.setError("Could not delete retro", msg.err)
				return nil
			}
			v.app.setStatus("Retro deleted")
		}
		return v.reload(true)

	case tea.KeyMsg:
		if v.create != nil {
			return v.updateCreate(msg)
		}
		if v.inSearch {
			return v.updateSearch(msg)
		}
		switch msg.String() {
		case "esc":
			return v.app.gotoTeams()
		case "r":
			return v.reload(true)
		case "/":
			v.inSearch = true
			v.search.SetValue(v.filters.Search)
			v.search.Focus()
			return textinput.Blink
		case "n":
			v.create = newForm(
				formField{label: "Name", placeholder: "Sprint 12 Retro", required: true},
				formField{label: "Sprint number", placeholder: "12"},
				formField{label: "Start date", placeholder: "2026-08-01"},
				formField{label: "End date", placeholder: "2026-08-14"},
			)
			return nil
		case "a":
			return v.app.gotoActions()
		case "m":
			return v.app.gotoMembers()
		case "x":
			if item, ok := v.menu.SelectedItem().(retroItem); ok {
				v.pending = true
				return v.app.deleteRetroCmd(v.app.currentTeam.ID, item.retro.ID)
			}
			return nil
		case "enter":
			if item, ok := v.menu.SelectedItem().(retroItem); ok {
				return v.app.gotoBoard(item.retro)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func (v *retrosView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.inSearch = false
		v.search.Blur()
		return nil
	case "enter":
		v.inSearch = false
		v.search.Blur()
		v.filters.Search = strings.TrimSpace(v.search.Value())
		return v.reload(false)
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return cmd
}

func (v *retrosView) updateCreate(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.create = nil
		return nil
	case "enter":
		if !v.create.validate() {
			return nil
		}
		data := api.CreateRetroData{
			Name:      v.create.value(0),
			StartDate: v.create.value(2),
			EndDate:   v.create.value(3),
		}
		if raw := v.create.value(1); raw != "" {
			sprint, err := strconv.Atoi(raw)
			if err != nil {
				v.create.errMsg = "Sprint number must be a number"
				return nil
			}
			data.SprintNumber = sprint
		}
		v.pending = true
		return v.app.createRetroCmd(v.app.currentTeam.ID, data)
	}
	return v.create.Update(msg)
}

func (v *retrosView) View() string {
	if v.create != nil {
		hint := "Enter → create retro    Esc → cancel"
		if v.pending {
			hint = "Creating..."
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Retrospective"),
			"",
			v.create.View(),
			hintStyle.Render(hint),
		)
	}

	var sections []string
	if v.inSearch {
		sections = append(sections, "Search: "+v.search.View())
	} else if v.filters.Search != "" {
		sections = append(sections, dimStyle.Render(fmt.Sprintf("Filter: %q (press / to change)", v.filters.Search)))
	}

	switch {
	case v.loading:
		sections = append(sections, dimStyle.Render("Loading retros..."))
	case len(v.retros) == 0:
		sections = append(sections, dimStyle.Render("No retrospectives. Press n to start one."))
	default:
		sections = append(sections, v.menu.View())
		if v.info.Total > len(v.retros) {
			sections = append(sections, dimStyle.Render(
				fmt.Sprintf("Showing %d of %d (page %d)", len(v.retros), v.info.Total, v.info.Page)))
		}
	}
	sections = append(sections, hintStyle.Render(
		"Enter → board    n → new    x → delete    / → search    a → action items    m → members    Esc → teams"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
