package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"PassVault/internal/cli/api"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestLogin_ResetWithEmptyEmailFailsLocally(t *testing.T) {
	m := newLoginModel(DefaultStyles())

	m, _ = m.Update(key("ctrl+r"))

	// локальная валидация, без похода на сервер
	assert.False(t, m.resetting)
	assert.False(t, m.busy)
	assert.Equal(t, "Enter your email to reset the password", m.errText)
}

func TestLogin_ResetRequestedWithEmail(t *testing.T) {
	m := newLoginModel(DefaultStyles())
	m.email.SetValue("a@b.c")

	m, _ = m.Update(key("ctrl+r"))
	assert.True(t, m.resetting)
	assert.True(t, m.busy)

	m, _ = m.Update(resetDoneMsg{})
	assert.False(t, m.busy)
	assert.Equal(t, "Check your inbox for the reset link", m.info)
}

func TestLogin_ServerErrorShownVerbatim(t *testing.T) {
	m := newLoginModel(DefaultStyles())
	m.email.SetValue("a@b.c")
	m.password.SetValue("nope")

	m, _ = m.Update(key("enter"))
	assert.True(t, m.submitting)
	assert.True(t, m.busy)

	m, _ = m.Update(authDoneMsg{err: &api.Error{Status: 401, Message: "invalid email or password"}})
	assert.False(t, m.busy)
	assert.Equal(t, "invalid email or password", m.errText)
}

func TestLogin_BusyBlocksInput(t *testing.T) {
	m := newLoginModel(DefaultStyles())
	m.email.SetValue("a@b.c")

	m, _ = m.Update(key("enter"))
	m.submitting = false

	// повторный enter во время запроса игнорируется
	m, _ = m.Update(key("enter"))
	assert.False(t, m.submitting)
}

func TestVault_AddSuccessClearsForm(t *testing.T) {
	m := newVaultModel(DefaultStyles())

	m, _ = m.Update(key("a"))
	assert.True(t, m.adding)

	m.name.SetValue("GitHub")
	m.user.SetValue("octo")
	m.secret.SetValue("hunter2")
	m.focus = 2

	m, _ = m.Update(key("enter"))
	if assert.NotNil(t, m.wantAdd) {
		assert.Equal(t, "GitHub", m.wantAdd.name)
	}
	assert.True(t, m.busy)
	// оптимистичная строка без метки времени — в конце списка
	if assert.Len(t, m.view.Records(), 1) {
		assert.True(t, m.view.Records()[0].CreatedAt.IsZero())
	}

	m, _ = m.Update(addDoneMsg{})
	assert.False(t, m.busy)
	assert.False(t, m.adding)
	assert.Empty(t, m.name.Value())
	assert.Empty(t, m.secret.Value())
}

func TestVault_AddFailureIsSilentAndKeepsFields(t *testing.T) {
	m := newVaultModel(DefaultStyles())
	m, _ = m.Update(key("a"))
	m.name.SetValue("GitHub")
	m.secret.SetValue("hunter2")
	m.focus = 2
	m, _ = m.Update(key("enter"))

	m, _ = m.Update(addDoneMsg{err: errors.New("boom")})

	// busy снят, поля на месте, плейсхолдер убран — и никакого текста ошибки
	assert.False(t, m.busy)
	assert.True(t, m.adding)
	assert.Equal(t, "GitHub", m.name.Value())
	assert.Empty(t, m.view.Records())
}

func TestVault_DeleteRequestedForSelected(t *testing.T) {
	m := newVaultModel(DefaultStyles())
	m = m.applySnapshot([]api.Record{
		{ID: "r2", Name: "b", CreatedAt: time.Unix(2, 0)},
		{ID: "r1", Name: "a", CreatedAt: time.Unix(1, 0)},
	})

	m, _ = m.Update(key("d"))
	assert.Equal(t, "r2", m.wantDelete)
	assert.True(t, m.busy)

	m, _ = m.Update(deleteDoneMsg{err: errors.New("boom")})
	// отказ молчаливый: busy снят, список правит только снапшот
	assert.False(t, m.busy)
	assert.Len(t, m.view.Records(), 2)
}

func TestVault_RevealToggleViaKeys(t *testing.T) {
	m := newVaultModel(DefaultStyles())
	m = m.applySnapshot([]api.Record{{ID: "r1", Secret: "s3cret", CreatedAt: time.Unix(1, 0)}})

	m, _ = m.Update(key("enter"))
	assert.True(t, m.view.Revealed("r1"))
	m, _ = m.Update(key("enter"))
	assert.False(t, m.view.Revealed("r1"))
}

func TestVault_SignOutResetsState(t *testing.T) {
	m := newVaultModel(DefaultStyles())
	m = m.applySnapshot([]api.Record{{ID: "r1", CreatedAt: time.Unix(1, 0)}})
	m.view.ToggleReveal("r1")

	m, _ = m.Update(key("s"))
	assert.True(t, m.wantSignOut)

	m = m.reset()
	assert.Empty(t, m.view.Records())
	assert.False(t, m.view.Revealed("r1"))
}
