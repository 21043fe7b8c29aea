package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// statusCycle is the order the f key walks the status filter through. The
// empty value means "no filter".
var statusCycle = []api.ActionItemStatus{
	"",
	api.StatusOpen,
	api.StatusInProgress,
	api.StatusCompleted,
	api.StatusCancelled,
}

// actionItemEntry adapts an action item to the bubbles list.
type actionItemEntry struct {
	item api.ActionItem
}

func (e actionItemEntry) Title() string {
	return fmt.Sprintf("[%s] %s", e.item.Priority, e.item.Title)
}

func (e actionItemEntry) Description() string {
	parts := []string{string(e.item.Status)}
	if e.item.AssignedToName != "" {
		parts = append(parts, "→ "+e.item.AssignedToName)
	}
	if e.item.DueDate != "" {
		parts = append(parts, "due "+e.item.DueDate)
	}
	return strings.Join(parts, " · ")
}

func (e actionItemEntry) FilterValue() string { return e.item.Title }

// actionsView lists a team's action items with status/search filtering and
// create/edit/delete.
type actionsView struct {
	app      *App
	menu     list.Model
	items    []api.ActionItem
	filters  api.ActionItemFilters
	search   textinput.Model
	inSearch bool
	loading  bool
	pending  bool

	// members and retros feed the assignee and retro pickers in the dialog.
	members []api.TeamMember
	retros  []api.Retrospective

	dialog  *form
	editing *api.ActionItem // nil while creating
}

func newActionsView(app *App) *actionsView {
	menu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Action Items"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	search := textinput.New()
	search.Placeholder = "search action items"
	search.CharLimit = 128
	search.Width = 32

	v := &actionsView{app: app, menu: menu, search: search, loading: true}
	v.resize()
	return v
}

func (v *actionsView) resize() {
	v.menu.SetSize(max(20, v.app.width-8), max(10, v.app.height-16))
}

func (v *actionsView) reload(force bool) tea.Cmd {
	v.loading = true
	return v.app.loadActionItems(v.app.currentTeam.ID, v.filters, force)
}

func (v *actionsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return nil

	case actionItemsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.app.setError("Could not load action items", msg.err)
			return nil
		}
		v.items = msg.items
		entries := make([]list.Item, len(msg.items))
		for i, item := range msg.items {
			entries[i] = actionItemEntry{item: item}
		}
		v.menu.SetItems(entries)
		return nil

	case membersLoadedMsg:
		if msg.err == nil {
			v.members = msg.members
		}
		return nil

	case retrosLoadedMsg:
		if msg.err == nil {
			v.retros = msg.retros
		}
		return nil

	case actionItemSavedMsg:
		v.pending = false
		switch msg.action {
		case "create", "convert":
			v.app.logMutation("Action item created", msg.err)
		case "update":
			v.app.logMutation("Action item updated", msg.err)
		case "delete":
			v.app.logMutation("Action item deleted", msg.err)
		}
		if msg.err != nil {
			v.app.setError("Action item change failed", msg.err)
			return nil
		}
		v.dialog = nil
		v.editing = nil
		return v.reload(true)

	case tea.KeyMsg:
		if v.dialog != nil {
			return v.updateDialog(msg)
		}
		if v.inSearch {
			return v.updateSearch(msg)
		}
		switch msg.String() {
		case "esc":
			return v.app.gotoRetros(v.app.currentTeam)
		case "r":
			return v.reload(true)
		case "f":
			v.filters.Status = nextStatus(v.filters.Status)
			return v.reload(false)
		case "/":
			v.inSearch = true
			v.search.SetValue(v.filters.Search)
			v.search.Focus()
			return textinput.Blink
		case "n":
			v.editing = nil
			v.dialog = newActionItemForm(nil, v.members, v.retros)
			return nil
		case "e":
			if entry, ok := v.menu.SelectedItem().(actionItemEntry); ok {
				item := entry.item
				v.editing = &item
				v.dialog = newActionItemForm(&item, v.members, v.retros)
			}
			return nil
		case "x":
			if entry, ok := v.menu.SelectedItem().(actionItemEntry); ok {
				v.pending = true
				return v.app.deleteActionItemCmd(v.app.currentTeam.ID, entry.item.ID)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.menu, cmd = v.menu.Update(msg)
	return cmd
}

func nextStatus(current api.ActionItemStatus) api.ActionItemStatus {
	for i, status := range statusCycle {
		if status == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return ""
}

func priorityOptions() []formOption {
	return []formOption{
		{id: string(api.PriorityLow), label: "low"},
		{id: string(api.PriorityMedium), label: "medium"},
		{id: string(api.PriorityHigh), label: "high"},
	}
}

func statusOptions() []formOption {
	return []formOption{
		{id: string(api.StatusOpen), label: "open"},
		{id: string(api.StatusInProgress), label: "in progress"},
		{id: string(api.StatusCompleted), label: "completed"},
		{id: string(api.StatusCancelled), label: "cancelled"},
	}
}

func memberOptions(members []api.TeamMember) []formOption {
	opts := []formOption{{id: "", label: "unassigned"}}
	for _, member := range members {
		opts = append(opts, formOption{id: member.UserID, label: member.Name})
	}
	return opts
}

func retroOptions(retros []api.Retrospective) []formOption {
	opts := make([]formOption, 0, len(retros))
	for _, retro := range retros {
		label := retro.Name
		if retro.SprintNumber > 0 {
			label = fmt.Sprintf("%s (sprint %d)", retro.Name, retro.SprintNumber)
		}
		opts = append(opts, formOption{id: retro.ID, label: label})
	}
	return opts
}

// newActionItemForm builds the create/edit form. A nil item means create.
// Retro and assignee are pickers fed from the team's own retros and members;
// the retro field falls back to free text when no retros have loaded yet.
func newActionItemForm(item *api.ActionItem, members []api.TeamMember, retros []api.Retrospective) *form {
	if item == nil {
		retroField := formField{label: "Retro", required: true, options: retroOptions(retros)}
		if len(retros) == 0 {
			retroField = formField{label: "Retro id", required: true}
		}
		return newForm(
			formField{label: "Title", required: true},
			formField{label: "Description"},
			formField{label: "Priority", value: string(api.PriorityMedium), options: priorityOptions()},
			retroField,
			formField{label: "Assignee", options: memberOptions(members)},
			formField{label: "Due date", placeholder: "2026-09-15"},
		)
	}
	assignees := memberOptions(members)
	if item.AssignedTo != "" {
		found := false
		for _, opt := range assignees {
			if opt.id == item.AssignedTo {
				found = true
				break
			}
		}
		// Keep an assignee who has since left the member list (or whose list
		// has not loaded) instead of silently unassigning on save.
		if !found {
			label := item.AssignedToName
			if label == "" {
				label = item.AssignedTo
			}
			assignees = append(assignees, formOption{id: item.AssignedTo, label: label})
		}
	}
	return newForm(
		formField{label: "Title", value: item.Title, required: true},
		formField{label: "Description", value: item.Description},
		formField{label: "Priority", value: string(item.Priority), options: priorityOptions()},
		formField{label: "Status", value: string(item.Status), options: statusOptions()},
		formField{label: "Assignee", value: item.AssignedTo, options: assignees},
		formField{label: "Due date", value: item.DueDate},
	)
}

func parsePriority(raw string) (api.ActionItemPriority, bool) {
	priority := api.ActionItemPriority(strings.ToLower(strings.TrimSpace(raw)))
	switch priority {
	case "":
		return api.PriorityMedium, true
	case api.PriorityLow, api.PriorityMedium, api.PriorityHigh:
		return priority, true
	}
	return "", false
}

func parseStatus(raw string) (api.ActionItemStatus, bool) {
	status := api.ActionItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case api.StatusOpen, api.StatusInProgress, api.StatusCompleted, api.StatusCancelled:
		return status, true
	}
	return "", false
}

func (v *actionsView) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.dialog = nil
		v.editing = nil
		return nil
	case "enter":
		return v.submitDialog()
	}
	return v.dialog.Update(msg)
}

func (v *actionsView) submitDialog() tea.Cmd {
	if !v.dialog.validate() {
		return nil
	}
	priority, ok := parsePriority(v.dialog.value(2))
	if !ok {
		v.dialog.errMsg = "Priority must be low, medium, or high"
		return nil
	}

	if v.editing == nil {
		data := api.CreateActionItemData{
			Title:       v.dialog.value(0),
			Description: v.dialog.value(1),
			Priority:    priority,
			RetroID:     v.dialog.value(3),
			AssignedTo:  v.dialog.value(4),
			DueDate:     v.dialog.value(5),
		}
		v.pending = true
		return v.app.createActionItemCmd(v.app.currentTeam.ID, data, "create")
	}

	status, ok := parseStatus(v.dialog.value(3))
	if !ok {
		v.dialog.errMsg = "Status must be open, in_progress, completed, or cancelled"
		return nil
	}
	data := api.UpdateActionItemData{
		Title:       v.dialog.value(0),
		Description: v.dialog.value(1),
		Priority:    priority,
		Status:      status,
		AssignedTo:  v.dialog.value(4),
		DueDate:     v.dialog.value(5),
	}
	v.pending = true
	return v.app.updateActionItemCmd(v.app.currentTeam.ID, v.editing.ID, data)
}

func (v *actionsView) View() string {
	if v.dialog != nil {
		title := "New Action Item"
		if v.editing != nil {
			title = "Edit Action Item"
		}
		hint := "Enter → save    ◂/▸ change choice    Esc → cancel"
		if v.pending {
			hint = "Saving..."
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(title),
			"",
			v.dialog.View(),
			hintStyle.Render(hint),
		)
	}

	var sections []string
	var filterParts []string
	if v.filters.Status != "" {
		filterParts = append(filterParts, "status="+string(v.filters.Status))
	}
	if v.filters.Search != "" {
		filterParts = append(filterParts, fmt.Sprintf("search=%q", v.filters.Search))
	}
	if v.inSearch {
		sections = append(sections, "Search: "+v.search.View())
	} else if len(filterParts) > 0 {
		sections = append(sections, dimStyle.Render("Filters: "+strings.Join(filterParts, ", ")))
	}

	switch {
	case v.loading:
		sections = append(sections, dimStyle.Render("Loading action items..."))
	case len(v.items) == 0:
		sections = append(sections, dimStyle.Render("No action items match. Press n to create one."))
	default:
		sections = append(sections, v.menu.View())
	}
	sections = append(sections, hintStyle.Render(
		"n → new    e → edit    x → delete    f → cycle status    / → search    Esc → retros"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *actionsView) updateSearch(msg tea.KeyMsg) tea.Cmd {
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
