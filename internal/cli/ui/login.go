package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"PassVault/internal/cli/router"
)

// loginModel — страница входа: email, пароль, восстановление пароля.
type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int

	busy    bool
	errText string
	info    string

	// флаги для корневой модели: запрошена отправка формы / письма
	submitting bool
	resetting  bool

	styles Styles
}

func newLoginModel(styles Styles) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{email: email, password: password, styles: styles}
}

func (m loginModel) resetForm() loginModel {
	m.email.SetValue("")
	m.password.SetValue("")
	m.busy = false
	m.errText = ""
	m.info = ""
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			// сообщение сервера показывается дословно
			m.errText = msg.err.Error()
		}
		return m, nil

	case resetDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.info = "Check your inbox for the reset link"
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			// пока запрос в полёте, форма заблокирована
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
			m.info = ""
			m.submitting = true
			return m, nil

		case "ctrl+r":
			// восстановление пароля: пустой email отклоняется локально,
			// без похода на сервер
			if strings.TrimSpace(m.email.Value()) == "" {
				m.errText = "Enter your email to reset the password"
				return m, nil
			}
			m.busy = true
			m.errText = ""
			m.info = ""
			m.resetting = true
			return m, nil

		case "ctrl+s":
			return m, func() tea.Msg { return gotoMsg{route: router.RouteSignup} }
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

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("PassVault — Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Email") + "\n" + m.email.View() + "\n")
	b.WriteString(m.styles.Label.Render("Password") + "\n" + m.password.View() + "\n")
	if m.errText != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.errText) + "\n")
	}
	if m.info != "" {
		b.WriteString("\n" + m.styles.Info.Render(m.info) + "\n")
	}
	if m.busy {
		b.WriteString("\n" + m.styles.Subtitle.Render("Signing in...") + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("enter sign in • ctrl+r reset password • ctrl+s sign up • ctrl+c quit"))
	return m.styles.Box.Render(b.String())
}
