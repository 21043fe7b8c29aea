package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
	"github.com/retroterm/retroterm/internal/board"
)

// boardMode tracks which dialog, if any, sits over the board.
type boardMode int

const (
	boardBrowse boardMode = iota
	boardCreate
	boardEdit
	boardConvert
)

// boardView is the retro board: three columns derived from the flat card
// list, vote toggling, card create/edit/soft-delete, the show-deleted filter,
// and conversion of improvement cards into action items.
type boardView struct {
	app         *App
	cards       []api.Card
	columns     []board.Column
	partitions  map[api.CardType][]api.Card
	focusCol    int
	selection   [3]int
	showDeleted bool
	loading     bool
	pending     bool

	mode       boardMode
	dialog     *form
	targetCard api.Card
	confirmDel string // card id armed for deletion
}

func newBoardView(app *App) *boardView {
	return &boardView{
		app:     app,
		columns: board.Columns(),
		loading: true,
	}
}

// repartition rebuilds the three column slices from the flat card list and
// clamps each column's selection.
func (v *boardView) repartition() {
	v.partitions = board.Partition(v.cards, v.showDeleted)
	for i, col := range v.columns {
		n := len(v.partitions[col.Type])
		if n == 0 {
			v.selection[i] = 0
		} else if v.selection[i] >= n {
			v.selection[i] = n - 1
		}
	}
}

// selectedCard returns the card under the cursor, if any.
func (v *boardView) selectedCard() (api.Card, bool) {
	col := v.columns[v.focusCol]
	cards := v.partitions[col.Type]
	if len(cards) == 0 {
		return api.Card{}, false
	}
	idx := v.selection[v.focusCol]
	if idx < 0 || idx >= len(cards) {
		return api.Card{}, false
	}
	return cards[idx], true
}

func (v *boardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.app.setError("Could not load cards", msg.err)
			return nil
		}
		v.cards = msg.cards
		v.repartition()
		return nil

	case retroLoadedMsg:
		if msg.err == nil {
			v.app.currentRetro = msg.retro
		}
		return nil

	case cardSavedMsg:
		v.pending = false
		switch msg.action {
		case "create":
			v.app.logMutation("Card added", msg.err)
		case "edit":
			v.app.logMutation("Card updated", msg.err)
		case "vote":
			v.app.logMutation("Vote recorded", msg.err)
		case "delete":
			v.app.logMutation("Card deleted", msg.err)
		}
		if msg.err != nil {
			// The cache was not touched, so the board re-renders from the
			// last good card list.
			v.app.setError("Card update failed", msg.err)
			return nil
		}
		if v.mode == boardCreate || v.mode == boardEdit {
			v.closeDialog()
		}
		return v.app.loadCards(v.app.currentRetro.ID, true)

	case actionItemSavedMsg:
		v.pending = false
		v.app.logMutation("Card converted to action item", msg.err)
		if msg.err != nil {
			v.app.setError("Conversion failed", msg.err)
			return nil
		}
		v.closeDialog()
		v.app.setStatus("Action item created")
		return nil

	case tea.KeyMsg:
		if v.mode != boardBrowse {
			return v.updateDialog(msg)
		}
		return v.handleBrowseKey(msg)
	}
	return nil
}

func (v *boardView) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "x" {
		v.confirmDel = ""
	}
	switch key {
	case "esc":
		return v.app.gotoRetros(v.app.currentTeam)
	case "left", "h":
		if v.focusCol > 0 {
			v.focusCol--
		}
	case "right", "l":
		if v.focusCol < len(v.columns)-1 {
			v.focusCol++
		}
	case "up", "k":
		if v.selection[v.focusCol] > 0 {
			v.selection[v.focusCol]--
		}
	case "down", "j":
		col := v.columns[v.focusCol]
		if v.selection[v.focusCol] < len(v.partitions[col.Type])-1 {
			v.selection[v.focusCol]++
		}
	case "v", " ":
		return v.toggleVote()
	case "s":
		v.showDeleted = !v.showDeleted
		v.repartition()
	case "r":
		v.loading = true
		return tea.Batch(
			v.app.loadRetro(v.app.currentRetro.ID, true),
			v.app.loadCards(v.app.currentRetro.ID, true),
		)
	case "a":
		v.mode = boardCreate
		v.dialog = newForm(
			formField{label: "Card text", placeholder: "What happened?", required: true},
		)
	case "e":
		card, ok := v.selectedCard()
		if !ok || card.Author != v.app.session.UserID() {
			return nil
		}
		v.mode = boardEdit
		v.targetCard = card
		v.dialog = newForm(
			formField{label: "Card text", value: card.Content, required: true},
		)
	case "c":
		card, ok := v.selectedCard()
		if !ok || card.Type != api.CardNeedsImprovement {
			return nil
		}
		v.mode = boardConvert
		v.targetCard = card
		v.dialog = newForm(
			formField{label: "Title", value: card.Content, required: true},
			formField{label: "Priority (low/medium/high)", value: "medium"},
		)
	case "x":
		card, ok := v.selectedCard()
		if !ok || card.Author != v.app.session.UserID() {
			return nil
		}
		if v.confirmDel != card.ID {
			v.confirmDel = card.ID
			v.app.statusMsg = dimStyle.Render("Press x again to delete the card")
			return nil
		}
		v.confirmDel = ""
		v.pending = true
		return v.app.deleteCardCmd(v.app.currentRetro.ID, card.ID)
	}
	return nil
}

// toggleVote recomputes the card's voter set and commits it whole. With no
// authenticated user this is a no-op: no state change, no request. Rapid
// toggles on the same card race at the server; last write wins.
func (v *boardView) toggleVote() tea.Cmd {
	userID := v.app.session.UserID()
	if userID == "" {
		return nil
	}
	card, ok := v.selectedCard()
	if !ok {
		return nil
	}
	votes := board.ToggleVote(card.Votes, userID)
	return v.app.updateCardCmd(v.app.currentRetro.ID, card.ID, api.UpdateCardData{Votes: &votes}, "vote")
}

func (v *boardView) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.closeDialog()
		return nil
	case "enter":
		return v.submitDialog()
	}
	return v.dialog.Update(msg)
}

func (v *boardView) closeDialog() {
	v.mode = boardBrowse
	v.dialog = nil
	v.targetCard = api.Card{}
}

func (v *boardView) submitDialog() tea.Cmd {
	if !v.dialog.validate() {
		return nil
	}
	switch v.mode {
	case boardCreate:
		col := v.columns[v.focusCol]
		v.pending = true
		return v.app.createCardCmd(v.app.currentRetro.ID, api.CreateCardData{
			Type:    col.Type,
			Content: v.dialog.value(0),
		})
	case boardEdit:
		v.pending = true
		return v.app.updateCardCmd(v.app.currentRetro.ID, v.targetCard.ID, api.UpdateCardData{
			Content: v.dialog.value(0),
		}, "edit")
	case boardConvert:
		priority := api.ActionItemPriority(strings.ToLower(v.dialog.value(1)))
		switch priority {
		case api.PriorityLow, api.PriorityMedium, api.PriorityHigh:
		case "":
			priority = api.PriorityMedium
		default:
			v.dialog.errMsg = "Priority must be low, medium, or high"
			return nil
		}
		data := board.ConvertToActionItem(v.targetCard, v.dialog.value(0), priority)
		v.pending = true
		return v.app.createActionItemCmd(v.app.currentTeam.ID, data, "convert")
	}
	return nil
}

func (v *boardView) View() string {
	if v.mode != boardBrowse {
		return v.renderDialog()
	}
	if v.loading {
		return dimStyle.Render("Loading board...")
	}

	width := v.app.width
	if width <= 0 {
		width = 120
	}
	colWidth := max(28, (width-12)/3)

	rendered := make([]string, 0, len(v.columns))
	for i, col := range v.columns {
		rendered = append(rendered, v.renderColumn(i, col, colWidth))
	}
	boardRow := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	header := v.renderHeader()
	hints := hintStyle.Render(
		"←/→ columns    ↑/↓ cards    v → vote    a → add    e → edit    x → delete    c → convert    s → show deleted    Esc → back")
	return lipgloss.JoinVertical(lipgloss.Left, header, boardRow, hints)
}

func (v *boardView) renderHeader() string {
	retro := v.app.currentRetro
	parts := []string{titleStyle.Render(retro.Name)}
	if retro.SprintNumber > 0 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("Sprint %d", retro.SprintNumber)))
	}
	if v.showDeleted {
		parts = append(parts, deletedBadgeStyle.Render("showing deleted"))
	}
	return strings.Join(parts, "  ")
}

func (v *boardView) renderColumn(idx int, col board.Column, width int) string {
	cards := v.partitions[col.Type]
	head := columnHeaderStyle(string(col.Type)).Render(
		fmt.Sprintf("%s (%d)", col.Title, len(cards)))

	var rows []string
	rows = append(rows, head)
	if len(cards) == 0 {
		rows = append(rows, dimStyle.Render("No cards yet"))
	}
	for i, card := range cards {
		selected := idx == v.focusCol && i == v.selection[idx]
		rows = append(rows, v.renderCard(card, selected, width-4))
	}

	style := panelStyle
	if idx == v.focusCol {
		style = focusedPanelStyle
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (v *boardView) renderCard(card api.Card, selected bool, width int) string {
	author := fmt.Sprintf("%s %s · %s", initials(card.AuthorName), card.AuthorName, relativeTime(card.CreatedAt))
	content := truncate(card.Content, width*3)

	votes := fmt.Sprintf("▲ %d", len(card.Votes))
	if board.HasVoted(card, v.app.session.UserID()) {
		votes = votedStyle.Render(votes + " voted")
	} else {
		votes = dimStyle.Render(votes)
	}
	footer := votes
	if card.Type == api.CardNeedsImprovement && !card.IsDeleted {
		footer += dimStyle.Render("  c → action item")
	}
	if card.IsDeleted {
		footer += "  " + deletedBadgeStyle.Render("deleted")
	}

	body := strings.Join([]string{dimStyle.Render(author), content, footer}, "\n")
	if selected {
		return selectedCardStyle.Width(max(20, width)).Render(body)
	}
	return cardStyle.Width(max(20, width)).Render(body)
}

func (v *boardView) renderDialog() string {
	var title, hint string
	switch v.mode {
	case boardCreate:
		title = "Add card · " + v.columns[v.focusCol].Title
		hint = "Enter → add    Esc → cancel"
	case boardEdit:
		title = "Edit card"
		hint = "Enter → save    Esc → cancel"
	case boardConvert:
		title = "Convert to action item"
		hint = "Enter → create    Esc → cancel"
	}
	if v.pending {
		hint = "Working..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		v.dialog.View(),
		hintStyle.Render(hint),
	)
}
