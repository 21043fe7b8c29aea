package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/retroterm/retroterm/internal/api"
	"github.com/retroterm/retroterm/internal/config"
	"github.com/retroterm/retroterm/internal/session"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	app, err := NewApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func signIn(t *testing.T, app *App, user api.User) {
	t.Helper()
	if err := app.session.Login("test-token", user); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func keyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func boardWithCards(t *testing.T, app *App, cards []api.Card) *boardView {
	t.Helper()
	app.currentTeam = api.Team{ID: "team-1", Name: "Platform"}
	app.currentRetro = api.Retrospective{ID: "retro-1", Name: "Sprint 12"}
	app.screen = screenBoard
	app.board = newBoardView(app)
	if cmd := app.board.Update(cardsLoadedMsg{cards: cards}); cmd != nil {
		t.Fatalf("loading cards should not produce a command")
	}
	return app.board
}

func TestMissingSessionLandsOnLogin(t *testing.T) {
	app := newTestApp(t)
	model, cmd := app.Update(sessionResumedMsg{err: session.ErrNoSession})
	app = model.(*App)
	if app.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", app.screen)
	}
	if cmd != nil {
		t.Fatalf("missing session should not trigger a command")
	}
}

func TestRejectedSessionLandsOnLogin(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(sessionResumedMsg{err: errors.New("session: token rejected")})
	app = model.(*App)
	if app.screen != screenLogin {
		t.Fatalf("rejected token must look like no session, got screen %d", app.screen)
	}
	if app.session.Authenticated() {
		t.Fatal("rejected token must not leave an authenticated session")
	}
}

func TestAuthSuccessNavigatesToTeams(t *testing.T) {
	app := newTestApp(t)
	app.screen = screenLogin
	resp := api.AuthResponse{
		Token: "fresh-token",
		User:  api.User{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"},
	}
	model, cmd := app.Update(authResultMsg{resp: resp})
	app = model.(*App)
	if app.screen != screenTeams {
		t.Fatalf("expected teams screen after login, got %d", app.screen)
	}
	if cmd == nil {
		t.Fatal("expected initial teams load command")
	}
	if !app.session.Authenticated() {
		t.Fatal("session should be authenticated after login")
	}
	if got := app.session.UserID(); got != "u1" {
		t.Fatalf("unexpected user id %q", got)
	}
}

func TestAuthFailureStaysOnLogin(t *testing.T) {
	app := newTestApp(t)
	app.screen = screenLogin
	model, cmd := app.Update(authResultMsg{err: &api.Error{Status: 401, Message: "Invalid email or password"}})
	app = model.(*App)
	if app.screen != screenLogin {
		t.Fatalf("failed login must stay on login screen, got %d", app.screen)
	}
	if cmd != nil {
		t.Fatal("failed login must not navigate")
	}
	if !strings.Contains(app.statusMsg, "Invalid email or password") {
		t.Fatalf("status should carry the server message, got %q", app.statusMsg)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	app.cache.Set("teams", []api.Team{{ID: "t1"}})
	app.currentTeam = api.Team{ID: "t1", Name: "Platform"}
	app.currentRetro = api.Retrospective{ID: "r1"}
	app.screen = screenBoard
	app.board = newBoardView(app)

	if cmd := app.logout(); cmd != nil {
		t.Fatal("logout should not produce a command")
	}
	if app.screen != screenLogin {
		t.Fatalf("expected login screen after logout, got %d", app.screen)
	}
	if app.session.Authenticated() {
		t.Fatal("session must be cleared")
	}
	if app.cache.Len() != 0 {
		t.Fatalf("cache must be cleared, still holds %d entries", app.cache.Len())
	}
	if app.currentTeam.ID != "" || app.currentRetro.ID != "" {
		t.Fatal("navigation scope must be reset")
	}
	if app.board != nil || app.teams != nil {
		t.Fatal("scoped views must be dropped")
	}
}

func TestVoteWithoutIdentityIsNoOp(t *testing.T) {
	app := newTestApp(t)
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Shipped on time", Author: "u2", Votes: []string{"u2"}},
	}
	view := boardWithCards(t, app, cards)

	cmd := view.Update(keyPress("v"))
	if cmd != nil {
		t.Fatal("voting without a signed-in user must issue no request")
	}
	if got := len(view.partitions[api.CardWentWell][0].Votes); got != 1 {
		t.Fatalf("voter set must be untouched, got %d votes", got)
	}
}

func TestVoteTogglesWholeVoterSet(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Shipped on time", Author: "u2", Votes: []string{"u2"}},
	}
	view := boardWithCards(t, app, cards)

	if cmd := view.Update(keyPress("v")); cmd == nil {
		t.Fatal("expected an update command for the vote")
	}
}

func TestEditRestrictedToAuthor(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Not mine", Author: "u2"},
	}
	view := boardWithCards(t, app, cards)

	if cmd := view.Update(keyPress("e")); cmd != nil {
		t.Fatal("editing another author's card must do nothing")
	}
	if view.mode != boardBrowse {
		t.Fatalf("expected browse mode, got %d", view.mode)
	}
}

func TestEditOwnCardOpensDialog(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Mine", Author: "u1"},
	}
	view := boardWithCards(t, app, cards)

	view.Update(keyPress("e"))
	if view.mode != boardEdit {
		t.Fatalf("expected edit dialog, got mode %d", view.mode)
	}
	if view.dialog == nil || view.dialog.value(0) != "Mine" {
		t.Fatal("edit dialog should be prefilled with the card content")
	}
}

func TestDeleteRequiresSecondPress(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardKudos, Content: "Nice review", Author: "u1"},
	}
	view := boardWithCards(t, app, cards)
	view.focusCol = 2

	if cmd := view.Update(keyPress("x")); cmd != nil {
		t.Fatal("first press must only arm the confirmation")
	}
	if view.confirmDel != "c1" {
		t.Fatalf("expected c1 armed for deletion, got %q", view.confirmDel)
	}
	if cmd := view.Update(keyPress("x")); cmd == nil {
		t.Fatal("second press must dispatch the delete")
	}
}

func TestDeleteConfirmDisarmedByOtherKeys(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardKudos, Content: "Nice review", Author: "u1"},
	}
	view := boardWithCards(t, app, cards)
	view.focusCol = 2

	view.Update(keyPress("x"))
	view.Update(keyPress("j"))
	if view.confirmDel != "" {
		t.Fatal("moving the cursor must disarm the pending delete")
	}
}

func TestConvertOnlyForImprovementCards(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Great demo", Author: "u1"},
		{ID: "c2", Type: api.CardNeedsImprovement, Content: "Flaky deploys", Author: "u2"},
	}
	view := boardWithCards(t, app, cards)

	view.Update(keyPress("c"))
	if view.mode != boardBrowse {
		t.Fatal("a went_well card must not open the convert dialog")
	}

	view.focusCol = 1
	view.Update(keyPress("c"))
	if view.mode != boardConvert {
		t.Fatalf("expected convert dialog, got mode %d", view.mode)
	}
	if view.dialog.value(0) != "Flaky deploys" {
		t.Fatal("convert dialog title should default to the card content")
	}
}

func TestConvertRejectsUnknownPriority(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	cards := []api.Card{
		{ID: "c2", Type: api.CardNeedsImprovement, Content: "Flaky deploys", Author: "u2"},
	}
	view := boardWithCards(t, app, cards)
	view.focusCol = 1
	view.Update(keyPress("c"))
	view.dialog.inputs[1].SetValue("urgent")

	if cmd := view.submitDialog(); cmd != nil {
		t.Fatal("invalid priority must not dispatch")
	}
	if view.dialog.errMsg == "" {
		t.Fatal("expected a validation message on the dialog")
	}
}

func TestShowDeletedTogglesPartition(t *testing.T) {
	app := newTestApp(t)
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "Live", Author: "u1"},
		{ID: "c2", Type: api.CardWentWell, Content: "Gone", Author: "u1", IsDeleted: true},
	}
	view := boardWithCards(t, app, cards)

	if got := len(view.partitions[api.CardWentWell]); got != 1 {
		t.Fatalf("deleted cards hidden by default, got %d", got)
	}
	view.Update(keyPress("s"))
	if got := len(view.partitions[api.CardWentWell]); got != 2 {
		t.Fatalf("expected deleted card visible, got %d", got)
	}
}

func TestRepartitionClampsSelection(t *testing.T) {
	app := newTestApp(t)
	cards := []api.Card{
		{ID: "c1", Type: api.CardWentWell, Content: "one", Author: "u1"},
		{ID: "c2", Type: api.CardWentWell, Content: "two", Author: "u1"},
		{ID: "c3", Type: api.CardWentWell, Content: "three", Author: "u1"},
	}
	view := boardWithCards(t, app, cards)
	view.selection[0] = 2

	view.Update(cardsLoadedMsg{cards: cards[:1]})
	if view.selection[0] != 0 {
		t.Fatalf("selection must clamp to the shrunken column, got %d", view.selection[0])
	}
	if _, ok := view.selectedCard(); !ok {
		t.Fatal("a card should still be selected after the clamp")
	}
}

func TestFailedCardSaveKeepsDialogOpen(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	view := boardWithCards(t, app, nil)
	view.Update(keyPress("a"))
	if view.mode != boardCreate {
		t.Fatalf("expected create dialog, got %d", view.mode)
	}

	cmd := view.Update(cardSavedMsg{action: "create", err: &api.Error{Status: 400, Message: "Content is required"}})
	if cmd != nil {
		t.Fatal("a failed save must not trigger a reload")
	}
	if view.mode != boardCreate {
		t.Fatal("dialog should stay open so the user can fix the input")
	}
	if !strings.Contains(app.statusMsg, "Content is required") {
		t.Fatalf("status should surface the server message, got %q", app.statusMsg)
	}
}

func TestSuccessfulCardSaveReloadsAndCloses(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	view := boardWithCards(t, app, nil)
	view.Update(keyPress("a"))

	cmd := view.Update(cardSavedMsg{action: "create"})
	if cmd == nil {
		t.Fatal("a successful save must reload the card list")
	}
	if view.mode != boardBrowse {
		t.Fatal("dialog should close after a successful save")
	}
}

func actionsWithTeamData(t *testing.T, app *App) *actionsView {
	t.Helper()
	app.currentTeam = api.Team{ID: "t1", Name: "Platform"}
	app.screen = screenActions
	app.actions = newActionsView(app)
	app.actions.Update(membersLoadedMsg{members: []api.TeamMember{
		{UserID: "u2", Name: "Maya", Role: api.RoleMember},
	}})
	app.actions.Update(retrosLoadedMsg{retros: []api.Retrospective{
		{ID: "r1", Name: "Sprint 12", SprintNumber: 12},
		{ID: "r2", Name: "Sprint 13", SprintNumber: 13},
	}})
	return app.actions
}

func TestWindowResizeReachesActiveView(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	view := actionsWithTeamData(t, app)
	before := view.menu.Width()

	model, _ := app.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	app = model.(*App)
	if app.width != 200 || app.height != 60 {
		t.Fatalf("dimensions not recorded, got %dx%d", app.width, app.height)
	}
	if got := view.menu.Width(); got == before {
		t.Fatalf("resize never reached the active view, menu width stayed %d", got)
	}
}

func TestActionItemFormOffersTeamPickers(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	view := actionsWithTeamData(t, app)

	view.Update(keyPress("n"))
	dialog := view.dialog
	if dialog == nil {
		t.Fatal("expected the create dialog to open")
	}
	if got := dialog.value(3); got != "r1" {
		t.Fatalf("retro picker should preselect the first retro, got %q", got)
	}
	if got := dialog.value(4); got != "" {
		t.Fatalf("assignee should default to unassigned, got %q", got)
	}

	dialog.setFocus(4)
	dialog.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := dialog.value(4); got != "u2" {
		t.Fatalf("cycling the assignee picker should land on the member, got %q", got)
	}
	dialog.setFocus(3)
	dialog.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := dialog.value(3); got != "r2" {
		t.Fatalf("cycling the retro picker should land on the next retro, got %q", got)
	}
}

func TestEditFormKeepsAssigneeMissingFromMemberList(t *testing.T) {
	app := newTestApp(t)
	signIn(t, app, api.User{ID: "u1", Name: "Ada"})
	view := actionsWithTeamData(t, app)

	item := api.ActionItem{
		ID:             "a1",
		Title:          "Speed up CI",
		Status:         api.StatusOpen,
		Priority:       api.PriorityHigh,
		AssignedTo:     "u9",
		AssignedToName: "Departed Dev",
	}
	dialog := newActionItemForm(&item, view.members, view.retros)
	if got := dialog.value(4); got != "u9" {
		t.Fatalf("editing must not silently unassign, got %q", got)
	}
	if got := dialog.value(2); got != string(api.PriorityHigh) {
		t.Fatalf("priority picker should start on the item's priority, got %q", got)
	}
	if got := dialog.value(3); got != string(api.StatusOpen) {
		t.Fatalf("status picker should start on the item's status, got %q", got)
	}
}

func TestErrorStatusPrefersServerMessage(t *testing.T) {
	app := newTestApp(t)
	app.setError("Card update failed", &api.Error{Status: 403, Message: "Only the author can edit this card"})
	if !strings.Contains(app.statusMsg, "Only the author can edit this card") {
		t.Fatalf("expected the server message in %q", app.statusMsg)
	}

	app.setError("Could not load cards", errors.New("dial tcp: connection refused"))
	if !strings.Contains(app.statusMsg, "connection refused") {
		t.Fatalf("expected the transport error in %q", app.statusMsg)
	}
}
