package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"PassVault/internal/cli/api"
	"PassVault/internal/cli/vault"
)

// addRequest — заполненная форма добавления записи.
type addRequest struct {
	name     string
	username string
	secret   string
}

// vaultModel — страница хранилища: живой список записей и форма добавления.
type vaultModel struct {
	view   *vault.View
	cursor int

	adding bool
	name   textinput.Model
	user   textinput.Model
	secret textinput.Model
	focus  int

	busy bool
	// pendingID — локальная строка-плейсхолдер до прихода снапшота с сервера
	pendingID  string
	pendingSeq int

	// флаги для корневой модели
	wantAdd     *addRequest
	wantDelete  string
	wantSignOut bool

	styles Styles
}

func newVaultModel(styles Styles) vaultModel {
	name := textinput.New()
	name.Placeholder = "name (e.g. GitHub)"
	name.CharLimit = 128

	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 128

	secret := textinput.New()
	secret.Placeholder = "secret"
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'

	return vaultModel{
		view:   vault.NewView(),
		name:   name,
		user:   user,
		secret: secret,
		styles: styles,
	}
}

// reset сбрасывает страницу при выходе: список другого пользователя
// не должен пережить его сессию.
func (m vaultModel) reset() vaultModel {
	return newVaultModel(m.styles)
}

func (m vaultModel) applySnapshot(recs []api.Record) vaultModel {
	m.view.ApplySnapshot(recs)
	m.pendingID = ""
	if n := len(m.view.Records()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if len(m.view.Records()) == 0 {
		m.cursor = 0
	}
	return m
}

func (m vaultModel) Update(msg tea.Msg) (vaultModel, tea.Cmd) {
	switch msg := msg.(type) {
	case addDoneMsg:
		// отказ молчаливый: снимаем busy, поля не трогаем
		m.busy = false
		if msg.err == nil {
			m.adding = false
			m.name.SetValue("")
			m.user.SetValue("")
			m.secret.SetValue("")
			m.focus = 0
			return m, nil
		}
		// убираем плейсхолдер несостоявшейся записи
		if m.pendingID != "" {
			recs := make([]api.Record, 0, len(m.view.Records()))
			for _, r := range m.view.Records() {
				if r.ID != m.pendingID {
					recs = append(recs, r)
				}
			}
			m.view.ApplySnapshot(recs)
			m.pendingID = ""
		}
		return m, nil

	case deleteDoneMsg:
		// удаление подтверждает снапшот; отказ тоже молчаливый
		m.busy = false
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m vaultModel) updateList(msg tea.KeyMsg) (vaultModel, tea.Cmd) {
	recs := m.view.Records()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(recs)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(recs) {
			m.view.ToggleReveal(recs[m.cursor].ID)
		}
	case "a":
		m.adding = true
		m.focus = 0
		m.name.Focus()
		m.user.Blur()
		m.secret.Blur()
	case "d":
		// удаление без подтверждения, необратимо
		if m.busy || m.cursor >= len(recs) {
			break
		}
		if recs[m.cursor].ID == m.pendingID {
			break // плейсхолдер ещё не существует на сервере
		}
		m.busy = true
		m.wantDelete = recs[m.cursor].ID
	case "s":
		m.wantSignOut = true
	}
	return m, nil
}

func (m vaultModel) updateForm(msg tea.KeyMsg) (vaultModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.adding = false
		m.name.SetValue("")
		m.user.SetValue("")
		m.secret.SetValue("")
		m.focus = 0
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 3
		m.setFormFocus()
		return m, nil

	case "ctrl+t":
		// показать/скрыть вводимый секрет
		if m.secret.EchoMode == textinput.EchoPassword {
			m.secret.EchoMode = textinput.EchoNormal
		} else {
			m.secret.EchoMode = textinput.EchoPassword
		}
		return m, nil

	case "enter":
		if m.focus < 2 {
			m.focus++
			m.setFormFocus()
			return m, nil
		}
		m.busy = true
		m.wantAdd = &addRequest{
			name:     m.name.Value(),
			username: m.user.Value(),
			secret:   m.secret.Value(),
		}
		// оптимистичная строка: без метки времени сортируется в конец
		m.pendingSeq++
		m.pendingID = fmt.Sprintf("pending-%d", m.pendingSeq)
		m.view.ApplySnapshot(append(m.view.Records(), api.Record{
			ID:       m.pendingID,
			Name:     m.name.Value(),
			Username: m.user.Value(),
			Secret:   m.secret.Value(),
		}))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.name, cmd = m.name.Update(msg)
	case 1:
		m.user, cmd = m.user.Update(msg)
	default:
		m.secret, cmd = m.secret.Update(msg)
	}
	return m, cmd
}

func (m *vaultModel) setFormFocus() {
	m.name.Blur()
	m.user.Blur()
	m.secret.Blur()
	switch m.focus {
	case 0:
		m.name.Focus()
	case 1:
		m.user.Focus()
	default:
		m.secret.Focus()
	}
}

func (m vaultModel) View(identity *api.Identity) string {
	var b strings.Builder
	title := "PassVault"
	if identity != nil {
		title += " — " + identity.Email
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.styles.Label.Render("Name") + "\n" + m.name.View() + "\n")
		b.WriteString(m.styles.Label.Render("Username") + "\n" + m.user.View() + "\n")
		b.WriteString(m.styles.Label.Render("Secret") + "\n" + m.secret.View() + "\n")
		if m.busy {
			b.WriteString("\n" + m.styles.Subtitle.Render("Saving...") + "\n")
		}
		b.WriteString("\n" + m.styles.Help.Render("enter next/save • ctrl+t show secret • esc cancel"))
		return m.styles.Box.Render(b.String())
	}

	recs := m.view.Records()
	if len(recs) == 0 {
		b.WriteString(m.styles.Subtitle.Render("No records yet. Press 'a' to add one."))
	}
	for i, r := range recs {
		line := fmt.Sprintf("%-20s %-20s %s", r.Name, r.Username, m.view.DisplaySecret(r))
		style := m.styles.ListItem
		if r.CreatedAt.IsZero() {
			style = m.styles.Pending
		}
		if i == m.cursor {
			style = m.styles.ListSelected
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line) + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("a add • enter reveal/hide • d delete • s sign out • ctrl+c quit"))
	return m.styles.Box.Render(b.String())
}
