package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retroterm/retroterm/internal/api"
)

// loginView covers both the login and register screens; ctrl+r flips between
// them. A submit goes pending until the auth result lands; the result itself
// is handled by the App since it changes screens.
type loginView struct {
	app      *App
	form     *form
	register bool
	pending  bool
}

func newLoginView(app *App) *loginView {
	v := &loginView{app: app}
	v.buildForm()
	return v
}

func (v *loginView) buildForm() {
	if v.register {
		v.form = newForm(
			formField{label: "Name", placeholder: "Ada Lovelace", required: true},
			formField{label: "Email", placeholder: "you@example.com", required: true},
			formField{label: "Password", secret: true, required: true},
		)
		return
	}
	v.form = newForm(
		formField{label: "Email", placeholder: "you@example.com", required: true},
		formField{label: "Password", secret: true, required: true},
	)
}

// finish re-enables the form after a failed attempt.
func (v *loginView) finish(err error) {
	v.pending = false
	if err != nil && v.form != nil {
		v.form.errMsg = ""
	}
}

func (v *loginView) Update(msg tea.Msg) tea.Cmd {
	if v.pending {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+r":
			v.register = !v.register
			if v.register {
				v.app.screen = screenRegister
			} else {
				v.app.screen = screenLogin
			}
			v.buildForm()
			return nil
		case "enter":
			return v.submit()
		}
	}
	return v.form.Update(msg)
}

func (v *loginView) submit() tea.Cmd {
	if !v.form.validate() {
		return nil
	}
	v.pending = true
	if v.register {
		return v.app.registerCmd(api.RegisterData{
			Name:     v.form.value(0),
			Email:    v.form.value(1),
			Password: v.form.value(2),
		})
	}
	return v.app.loginCmd(api.Credentials{
		Email:    v.form.value(0),
		Password: v.form.value(1),
	})
}

func (v *loginView) View() string {
	title := "Sign in"
	hint := "Enter → sign in    Ctrl+R → create an account    Ctrl+C → quit"
	if v.register {
		title = "Create account"
		hint = "Enter → register    Ctrl+R → back to sign in    Ctrl+C → quit"
	}
	if v.pending {
		hint = "Working..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		v.form.View(),
		hintStyle.Render(hint),
	)
}
