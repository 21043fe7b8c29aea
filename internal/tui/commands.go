package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/retroterm/retroterm/internal/api"
	"github.com/retroterm/retroterm/internal/query"
)

// Messages produced by async commands. Every remote call is a tea.Cmd run in
// its own goroutine; in-flight commands are independent and whichever
// response lands last wins in the cache. Navigating away does not cancel
// anything; late responses still settle into the cache.

type sessionResumedMsg struct {
	user api.User
	err  error
}

type authResultMsg struct {
	resp       api.AuthResponse
	registered bool
	err        error
}

type profileSavedMsg struct {
	user api.User
	err  error
}

type teamsLoadedMsg struct {
	teams []api.Team
	err   error
}

type teamSavedMsg struct {
	team api.Team
	err  error
}

type membersLoadedMsg struct {
	members []api.TeamMember
	err     error
}

type memberSavedMsg struct {
	action string
	err    error
}

type retrosLoadedMsg struct {
	retros []api.Retrospective
	info   api.PageInfo
	err    error
}

type retroLoadedMsg struct {
	retro api.Retrospective
	err   error
}

type retroSavedMsg struct {
	action string
	err    error
}

type cardsLoadedMsg struct {
	cards []api.Card
	err   error
}

type cardSavedMsg struct {
	action string
	err    error
}

type actionItemsLoadedMsg struct {
	items []api.ActionItem
	err   error
}

type actionItemSavedMsg struct {
	action string
	err    error
}

type prefsSavedMsg struct {
	err error
}

// resumeSession validates a persisted token at startup. A rejected token is
// reported like a missing one; the login screen handles both.
func (a *App) resumeSession() tea.Cmd {
	return func() tea.Msg {
		user, err := a.session.Resume(context.Background())
		return sessionResumedMsg{user: user, err: err}
	}
}

func (a *App) loginCmd(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Login(context.Background(), creds)
		return authResultMsg{resp: resp, err: err}
	}
}

func (a *App) registerCmd(data api.RegisterData) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.Register(context.Background(), data)
		return authResultMsg{resp: resp, registered: true, err: err}
	}
}

func (a *App) updateProfileCmd(data api.UpdateProfileData) tea.Cmd {
	return func() tea.Msg {
		user, err := a.client.UpdateProfile(context.Background(), data)
		return profileSavedMsg{user: user, err: err}
	}
}

// loadTeams serves the cached team list when fresh; force skips the cache.
func (a *App) loadTeams(force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyTeams()
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if teams, ok := cached.([]api.Team); ok {
					return teamsLoadedMsg{teams: teams}
				}
			}
		}
		teams, err := a.client.Teams(context.Background())
		if err != nil {
			return teamsLoadedMsg{err: err}
		}
		a.cache.Set(key, teams)
		return teamsLoadedMsg{teams: teams}
	}
}

func (a *App) createTeamCmd(data api.CreateTeamData) tea.Cmd {
	return func() tea.Msg {
		team, err := a.client.CreateTeam(context.Background(), data)
		if err != nil {
			return teamSavedMsg{err: err}
		}
		a.cache.Invalidate(query.KeyTeams())
		return teamSavedMsg{team: team}
	}
}

func (a *App) loadMembers(teamID string, force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyTeamMembers(teamID)
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if members, ok := cached.([]api.TeamMember); ok {
					return membersLoadedMsg{members: members}
				}
			}
		}
		members, err := a.client.TeamMembers(context.Background(), teamID)
		if err != nil {
			return membersLoadedMsg{err: err}
		}
		a.cache.Set(key, members)
		return membersLoadedMsg{members: members}
	}
}

func (a *App) inviteMemberCmd(teamID string, data api.InviteMemberData) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.InviteMember(context.Background(), teamID, data)
		if err != nil {
			return memberSavedMsg{action: "invite", err: err}
		}
		a.cache.Invalidate(query.KeyTeamMembers(teamID))
		return memberSavedMsg{action: "invite"}
	}
}

func (a *App) removeMemberCmd(teamID, memberID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.RemoveMember(context.Background(), teamID, memberID); err != nil {
			return memberSavedMsg{action: "remove", err: err}
		}
		a.cache.Invalidate(query.KeyTeamMembers(teamID))
		return memberSavedMsg{action: "remove"}
	}
}

func (a *App) loadRetros(teamID string, filters api.RetroFilters, force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyRetros(teamID, filters)
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if page, ok := cached.(retroPage); ok {
					return retrosLoadedMsg{retros: page.retros, info: page.info}
				}
			}
		}
		retros, info, err := a.client.Retros(context.Background(), teamID, filters)
		if err != nil {
			return retrosLoadedMsg{err: err}
		}
		a.cache.Set(key, retroPage{retros: retros, info: info})
		return retrosLoadedMsg{retros: retros, info: info}
	}
}

// retroPage is the cached shape of one retro listing.
type retroPage struct {
	retros []api.Retrospective
	info   api.PageInfo
}

func (a *App) loadRetro(retroID string, force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyRetro(retroID)
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if retro, ok := cached.(api.Retrospective); ok {
					return retroLoadedMsg{retro: retro}
				}
			}
		}
		retro, err := a.client.Retro(context.Background(), retroID)
		if err != nil {
			return retroLoadedMsg{err: err}
		}
		a.cache.Set(key, retro)
		return retroLoadedMsg{retro: retro}
	}
}

func (a *App) createRetroCmd(teamID string, data api.CreateRetroData) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateRetro(context.Background(), teamID, data)
		if err != nil {
			return retroSavedMsg{action: "create", err: err}
		}
		a.cache.Invalidate(query.KeyRetrosPrefix(teamID))
		return retroSavedMsg{action: "create"}
	}
}

func (a *App) deleteRetroCmd(teamID, retroID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteRetro(context.Background(), retroID); err != nil {
			return retroSavedMsg{action: "delete", err: err}
		}
		a.cache.Invalidate(query.KeyRetrosPrefix(teamID))
		a.cache.Invalidate(query.KeyRetro(retroID))
		return retroSavedMsg{action: "delete"}
	}
}

func (a *App) loadCards(retroID string, force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyCards(retroID)
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if cards, ok := cached.([]api.Card); ok {
					return cardsLoadedMsg{cards: cards}
				}
			}
		}
		cards, err := a.client.Cards(context.Background(), retroID)
		if err != nil {
			return cardsLoadedMsg{err: err}
		}
		a.cache.Set(key, cards)
		return cardsLoadedMsg{cards: cards}
	}
}

func (a *App) createCardCmd(retroID string, data api.CreateCardData) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateCard(context.Background(), retroID, data)
		if err != nil {
			return cardSavedMsg{action: "create", err: err}
		}
		a.cache.Invalidate(query.KeyCards(retroID))
		return cardSavedMsg{action: "create"}
	}
}

func (a *App) updateCardCmd(retroID, cardID string, data api.UpdateCardData, action string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.UpdateCard(context.Background(), cardID, data)
		if err != nil {
			return cardSavedMsg{action: action, err: err}
		}
		a.cache.Invalidate(query.KeyCards(retroID))
		return cardSavedMsg{action: action}
	}
}

func (a *App) deleteCardCmd(retroID, cardID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteCard(context.Background(), cardID); err != nil {
			return cardSavedMsg{action: "delete", err: err}
		}
		a.cache.Invalidate(query.KeyCards(retroID))
		return cardSavedMsg{action: "delete"}
	}
}

func (a *App) loadActionItems(teamID string, filters api.ActionItemFilters, force bool) tea.Cmd {
	return func() tea.Msg {
		key := query.KeyActionItems(teamID, filters)
		if !force {
			if cached, ok := a.cache.Get(key); ok {
				if items, ok := cached.([]api.ActionItem); ok {
					return actionItemsLoadedMsg{items: items}
				}
			}
		}
		items, err := a.client.ActionItems(context.Background(), teamID, filters)
		if err != nil {
			return actionItemsLoadedMsg{err: err}
		}
		a.cache.Set(key, items)
		return actionItemsLoadedMsg{items: items}
	}
}

func (a *App) createActionItemCmd(teamID string, data api.CreateActionItemData, action string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateActionItem(context.Background(), teamID, data)
		if err != nil {
			return actionItemSavedMsg{action: action, err: err}
		}
		a.cache.Invalidate(query.KeyActionItemsPrefix(teamID))
		return actionItemSavedMsg{action: action}
	}
}

func (a *App) updateActionItemCmd(teamID, itemID string, data api.UpdateActionItemData) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.UpdateActionItem(context.Background(), itemID, data)
		if err != nil {
			return actionItemSavedMsg{action: "update", err: err}
		}
		a.cache.Invalidate(query.KeyActionItemsPrefix(teamID))
		return actionItemSavedMsg{action: "update"}
	}
}

func (a *App) deleteActionItemCmd(teamID, itemID string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteActionItem(context.Background(), itemID); err != nil {
			return actionItemSavedMsg{action: "delete", err: err}
		}
		a.cache.Invalidate(query.KeyActionItemsPrefix(teamID))
		return actionItemSavedMsg{action: "delete"}
	}
}

func (a *App) savePrefsCmd() tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: a.config.Save()}
	}
}

// logMutation records the outcome of a mutation for the activity panel and
// the log file.
func (a *App) logMutation(what string, err error) {
	if err != nil {
		a.logbook.Error("%s failed: %v", what, err)
		a.logger.Warn("mutation failed", zap.String("op", what), zap.Error(err))
		return
	}
	a.logbook.Info("%s", what)
	a.logger.Info("mutation succeeded", zap.String("op", what))
}
