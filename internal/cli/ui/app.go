// Package ui — терминальный интерфейс PassVault на Bubble Tea.
// Корневая модель владеет сессией и маршрутом; страницы (вход,
// регистрация, хранилище) — вложенные модели.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"PassVault/internal/cli/api"
	"PassVault/internal/cli/router"
	"PassVault/internal/cli/session"
)

// Сообщения уровня приложения.
type (
	// identityMsg — результат первой проверки идентичности при старте.
	identityMsg struct{ identity *api.Identity }

	// authDoneMsg — исход входа или регистрации.
	authDoneMsg struct {
		identity *api.Identity
		err      error
	}

	// resetDoneMsg — исход запроса письма восстановления.
	resetDoneMsg struct{ err error }

	// signedOutMsg — сессия завершена.
	signedOutMsg struct{}

	// gotoMsg — запрошен переход на другой маршрут.
	gotoMsg struct{ route router.Route }

	// subStartedMsg — подписка на партицию установлена.
	subStartedMsg struct{ ch <-chan []api.Record }

	// snapshotMsg — очередной полный снапшот записей.
	snapshotMsg struct {
		recs []api.Record
		ch   <-chan []api.Record
	}

	// subClosedMsg — поток подписки оборвался.
	subClosedMsg struct{}

	// retrySubMsg — пора переустановить подписку.
	retrySubMsg struct{}

	addDoneMsg    struct{ err error }
	deleteDoneMsg struct{ err error }
)

// Model — корневая модель приложения.
type Model struct {
	client *api.Client
	gate   *session.Gate
	logger *zap.SugaredLogger

	route router.Route

	login  loginModel
	signup signupModel
	vault  vaultModel

	styles Styles
	width  int
	height int

	// жизненный цикл подписки привязан к идентичности
	subCtx    context.Context
	subCancel context.CancelFunc
}

// NewModel собирает приложение. startPath — запрошенный при запуске путь
// (deep link); пока идёт первая проверка идентичности он не разрешается.
func NewModel(client *api.Client, logger *zap.SugaredLogger, startPath string) Model {
	styles := DefaultStyles()
	return Model{
		client: client,
		gate:   session.NewGate(),
		logger: logger,
		route:  router.ParseRoute(startPath),
		login:  newLoginModel(styles),
		signup: newSignupModel(styles),
		vault:  newVaultModel(styles),
		styles: styles,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrapCmd(), tea.EnterAltScreen)
}

// bootstrapCmd выполняет первую проверку идентичности по сохранённому
// токену. Сетевая ошибка трактуется как аноним.
func (m Model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		// одиночные запросы без таймаутов и повторов
		id, err := m.client.Whoami(context.Background())
		if err != nil {
			m.logger.Infow("identity check failed, treating as anonymous", "error", err)
			return identityMsg{}
		}
		return identityMsg{identity: id}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.subCancel != nil {
				m.subCancel()
			}
			return m, tea.Quit
		}

	case identityMsg:
		return m.applyIdentity(msg.identity)

	case authDoneMsg:
		if msg.err != nil {
			// отказ показывает форма, дословно
			var cmd tea.Cmd
			switch m.route {
			case router.RouteSignup:
				m.signup, cmd = m.signup.Update(msg)
			default:
				m.login, cmd = m.login.Update(msg)
			}
			return m, cmd
		}
		m.login = m.login.resetForm()
		m.signup = m.signup.resetForm()
		return m.applyIdentity(msg.identity)

	case resetDoneMsg:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd

	case signedOutMsg:
		return m.applyIdentity(nil)

	case gotoMsg:
		m.route = msg.route
		m.resolveRoute()
		return m, nil

	case subStartedMsg:
		return m, waitForSnapshot(msg.ch)

	case snapshotMsg:
		m.vault = m.vault.applySnapshot(msg.recs)
		return m, waitForSnapshot(msg.ch)

	case subClosedMsg:
		// обрыв потока: если всё ещё аутентифицированы — переустановим
		if m.subCtx != nil && m.subCtx.Err() == nil {
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return retrySubMsg{} })
		}
		return m, nil

	case retrySubMsg:
		if m.subCtx != nil && m.subCtx.Err() == nil {
			return m, m.subscribeCmd(m.subCtx)
		}
		return m, nil
	}

	// остальное — активной странице
	return m.updatePage(msg)
}

// applyIdentity фиксирует новую идентичность, заново разрешает маршрут
// и перестраивает подписку.
func (m Model) applyIdentity(identity *api.Identity) (tea.Model, tea.Cmd) {
	m.gate.Set(identity)
	m.resolveRoute()

	if identity != nil && m.subCancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		m.subCtx, m.subCancel = ctx, cancel
		return m, m.subscribeCmd(ctx)
	}
	if identity == nil && m.subCancel != nil {
		m.subCancel()
		m.subCtx, m.subCancel = nil, nil
		m.vault = m.vault.reset()
	}
	return m, nil
}

// resolveRoute прогоняет запрошенный маршрут через таблицу маршрутизации.
func (m *Model) resolveRoute() {
	st := m.gate.Current()
	d := router.Resolve(st.Loading, st.Authenticated(), m.route)
	if d.Action == router.ActionRedirect || d.Action == router.ActionShow {
		m.route = d.Target
	}
}

func (m Model) subscribeCmd(ctx context.Context) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		ch, err := client.Subscribe(ctx)
		if err != nil {
			logger.Infow("subscribe failed", "error", err)
			return subClosedMsg{}
		}
		return subStartedMsg{ch: ch}
	}
}

// waitForSnapshot ждёт очередной снапшот из канала подписки.
func waitForSnapshot(ch <-chan []api.Record) tea.Cmd {
	return func() tea.Msg {
		recs, ok := <-ch
		if !ok {
			return subClosedMsg{}
		}
		return snapshotMsg{recs: recs, ch: ch}
	}
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case router.RouteLogin:
		m.login, cmd = m.login.Update(msg)
		if m.login.submitting {
			m.login.submitting = false
			cmd = tea.Batch(cmd, m.loginCmd(m.login.email.Value(), m.login.password.Value()))
		}
		if m.login.resetting {
			m.login.resetting = false
			cmd = tea.Batch(cmd, m.resetCmd(m.login.email.Value()))
		}
	case router.RouteSignup:
		m.signup, cmd = m.signup.Update(msg)
		if m.signup.submitting {
			m.signup.submitting = false
			cmd = tea.Batch(cmd, m.registerCmd(m.signup.email.Value(), m.signup.password.Value()))
		}
	case router.RouteVault:
		m.vault, cmd = m.vault.Update(msg)
		if m.vault.wantAdd != nil {
			req := *m.vault.wantAdd
			m.vault.wantAdd = nil
			// без идентичности добавление — no-op
			if m.gate.Current().Authenticated() {
				cmd = tea.Batch(cmd, m.addCmd(req))
			}
		}
		if m.vault.wantDelete != "" {
			id := m.vault.wantDelete
			m.vault.wantDelete = ""
			cmd = tea.Batch(cmd, m.deleteCmd(id))
		}
		if m.vault.wantSignOut {
			m.vault.wantSignOut = false
			cmd = tea.Batch(cmd, m.signOutCmd())
		}
	}
	return m, cmd
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		id, err := client.Login(context.Background(), email, password)
		return authDoneMsg{identity: id, err: err}
	}
}

func (m Model) registerCmd(email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		id, err := client.Register(context.Background(), email, password)
		return authDoneMsg{identity: id, err: err}
	}
}

func (m Model) resetCmd(email string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return resetDoneMsg{err: client.RequestReset(context.Background(), email)}
	}
}

func (m Model) addCmd(req addRequest) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		_, err := client.AddRecord(context.Background(), req.name, req.username, req.secret)
		if err != nil {
			logger.Infow("add record failed", "error", err)
		}
		return addDoneMsg{err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		err := client.DeleteRecord(context.Background(), id)
		if err != nil {
			logger.Infow("delete record failed", "id", id, "error", err)
		}
		return deleteDoneMsg{err: err}
	}
}

// signOutCmd завершает сессию. Ошибка сервера не мешает локальному выходу.
func (m Model) signOutCmd() tea.Cmd {
	client, logger := m.client, m.logger
	return func() tea.Msg {
		if err := client.SignOut(context.Background()); err != nil {
			logger.Infow("sign-out failed", "error", err)
		}
		return signedOutMsg{}
	}
}

func (m Model) View() string {
	st := m.gate.Current()
	if st.Loading {
		// заглушка до первой проверки идентичности
		return m.styles.Subtitle.Render("Loading...")
	}
	switch m.route {
	case router.RouteSignup:
		return m.signup.View()
	case router.RouteVault:
		return m.vault.View(st.Identity)
	default:
		return m.login.View()
	}
}
