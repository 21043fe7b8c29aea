package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// profileView edits the current user's name, email, and password. A saved
// profile writes straight back into the session store so every screen sees
// the new identity without refetching.
type profileView struct {
	app     *App
	form    *form
	pending bool
}

func newProfileView(app *App) *profileView {
	var name, email string
	if user := app.session.User(); user != nil {
		name = user.Name
		email = user.Email
	}
	return &profileView{
		app: app,
		form: newForm(
			formField{label: "Name", value: name, required: true},
			formField{label: "Email", value: email, required: true},
			formField{label: "New password (blank keeps current)", secret: true},
		),
	}
}

func (v *profileView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileSavedMsg:
		v.pending = false
		v.app.logMutation("Profile updated", msg.err)
		if msg.err != nil {
			v.app.setError("Profile update failed", msg.err)
			return nil
		}
		v.app.session.UpdateUser(msg.user)
		v.app.setStatus("Profile updated")
		return v.app.gotoTeams()

	case tea.KeyMsg:
		if v.pending {
			return nil
		}
		switch msg.String() {
		case "esc":
			return v.app.gotoTeams()
		case "enter":
			if !v.form.validate() {
				return nil
			}
			v.pending = true
			return v.app.updateProfileCmd(api.UpdateProfileData{
				Name:     v.form.value(0),
				Email:    v.form.value(1),
				Password: v.form.value(2),
			})
		}
		return v.form.Update(msg)
	}
	return nil
}

func (v *profileView) View() string {
	hint := "Enter → save    Esc → back"
	if v.pending {
		hint = "Saving..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Profile"),
		"",
		v.form.View(),
		hintStyle.Render(hint),
	)
}

// settingsView toggles the persisted UI preferences. These are cosmetic
// flags stored in config.yaml; nothing else reads them at runtime except the
// activity panel and theme selection.
type settingsView struct {
	app    *App
	cursor int
}

func newSettingsView(app *App) *settingsView {
	return &settingsView{app: app}
}

const settingsCount = 3

func (v *settingsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case prefsSavedMsg:
		if msg.err != nil {
			v.app.setError("Could not save settings", msg.err)
			return nil
		}
		v.app.setStatus("Settings saved")
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v.app.gotoTeams()
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < settingsCount-1 {
				v.cursor++
			}
		case "enter", " ":
			ui := &v.app.config.UI
			switch v.cursor {
			case 0:
				if ui.Theme == "dark" {
					ui.Theme = "light"
				} else {
					ui.Theme = "dark"
				}
			case 1:
				ui.Notifications = !ui.Notifications
			case 2:
				ui.ShowActivity = !ui.ShowActivity
			}
			return v.app.savePrefsCmd()
		}
	}
	return nil
}

func (v *settingsView) View() string {
	ui := v.app.config.UI
	rows := []string{
		"Theme: " + ui.Theme,
		"Notifications: " + onOff(ui.Notifications),
		"Activity panel: " + onOff(ui.ShowActivity),
	}
	for i, row := range rows {
		if i == v.cursor {
			rows[i] = titleStyle.Render("▸ " + row)
		} else {
			rows[i] = "  " + row
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Settings"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		hintStyle.Render("Enter → toggle    Esc → back"),
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
