package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// membersView lists a team's membership and handles invite/remove. Whether
// those actions are offered follows the membership list itself: only admins
// see the invite/remove hints. The backend re-checks regardless.
type membersView struct {
	app     *App
	members []api.TeamMember
	cursor  int
	loading bool
	pending bool
	invite  *form
}

func newMembersView(app *App) *membersView {
	return &membersView{app: app, loading: true}
}

// isAdmin reports whether the current user is an admin of the current team.
func (v *membersView) isAdmin() bool {
	userID := v.app.session.UserID()
	for _, member := range v.members {
		if member.UserID == userID {
			return member.Role == api.RoleAdmin
		}
	}
	return false
}

func (v *membersView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.app.setError("Could not load members", msg.err)
			return nil
		}
		v.members = msg.members
		if v.cursor >= len(v.members) {
			v.cursor = max(0, len(v.members)-1)
		}
		return nil

	case memberSavedMsg:
		v.pending = false
		if msg.action == "invite" {
			v.app.logMutation("Member invited", msg.err)
			if msg.err != nil {
				v.app.setError("Invite failed", msg.err)
				return nil
			}
			v.invite = nil
			v.app.setStatus("Member invited")
		} else {
			v.app.logMutation("Member removed", msg.err)
			if msg.err != nil {
				v.app.setError("Remove failed", msg.err)
				return nil
			}
			v.app.setStatus("Member removed")
		}
		v.loading = true
		return v.app.loadMembers(v.app.currentTeam.ID, true)

	case tea.KeyMsg:
		if v.invite != nil {
			return v.updateInvite(msg)
		}
		switch msg.String() {
		case "esc":
			return v.app.gotoRetros(v.app.currentTeam)
		case "r":
			v.loading = true
			return v.app.loadMembers(v.app.currentTeam.ID, true)
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.members)-1 {
				v.cursor++
			}
		case "i":
			if !v.isAdmin() {
				return nil
			}
			v.invite = newForm(
				formField{label: "Email", placeholder: "teammate@example.com", required: true},
				formField{label: "Role (admin/member)", value: "member"},
			)
		case "x":
			if !v.isAdmin() || len(v.members) == 0 {
				return nil
			}
			target := v.members[v.cursor]
			if target.UserID == v.app.session.UserID() {
				v.app.statusMsg = dimStyle.Render("You cannot remove yourself")
				return nil
			}
			v.pending = true
			return v.app.removeMemberCmd(v.app.currentTeam.ID, target.UserID)
		}
	}
	return nil
}

func (v *membersView) updateInvite(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.invite = nil
		return nil
	case "enter":
		if !v.invite.validate() {
			return nil
		}
		role := api.TeamRole(strings.ToLower(v.invite.value(1)))
		switch role {
		case "":
			role = api.RoleMember
		case api.RoleAdmin, api.RoleMember:
		default:
			v.invite.errMsg = "Role must be admin or member"
			return nil
		}
		v.pending = true
		return v.app.inviteMemberCmd(v.app.currentTeam.ID, api.InviteMemberData{
			Email: v.invite.value(0),
			Role:  role,
		})
	}
	return v.invite.Update(msg)
}

func (v *membersView) View() string {
	if v.invite != nil {
		hint := "Enter → invite    Esc → cancel"
		if v.pending {
			hint = "Inviting..."
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Invite Member"),
			"",
			v.invite.View(),
			hintStyle.Render(hint),
		)
	}
	if v.loading {
		return dimStyle.Render("Loading members...")
	}

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Members (%d)", len(v.members))))
	for i, member := range v.members {
		line := fmt.Sprintf("%s %s · %s · %s · joined %s",
			initials(member.Name), member.Name, member.Email, member.Role,
			member.JoinedAt.Format("2006-01-02"))
		if i == v.cursor {
			line = titleStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	hints := "↑/↓ move    Esc → retros"
	if v.isAdmin() {
		hints = "↑/↓ move    i → invite    x → remove    Esc → retros"
	}
	rows = append(rows, hintStyle.Render(hints))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
