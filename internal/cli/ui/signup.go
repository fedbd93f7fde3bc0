package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"PassVault/internal/cli/router"
)

// signupModel — страница регистрации. Созданная учётная запись сразу
// аутентифицирована, отдельного входа не требуется.
type signupModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int

	busy    bool
	errText string

	submitting bool

	styles Styles
}

func newSignupModel(styles Styles) signupModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return signupModel{email: email, password: password, styles: styles}
}

func (m signupModel) resetForm() signupModel {
	m.email.SetValue("")
	m.password.SetValue("")
	m.busy = false
	m.errText = ""
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
	return m
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, nil

		case "enter":
			m.busy = true
			m.errText = ""
			m.submitting = true
			return m, nil

		case "ctrl+l":
			return m, func() tea.Msg { return gotoMsg{route: router.RouteLogin} }
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m signupModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("PassVault — Sign up"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Email") + "\n" + m.email.View() + "\n")
	b.WriteString(m.styles.Label.Render("Password") + "\n" + m.password.View() + "\n")
	if m.errText != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.errText) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + m.styles.Subtitle.Render("Creating account...") + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("enter create account • ctrl+l sign in • ctrl+c quit"))
	return m.styles.Box.Render(b.String())
}
