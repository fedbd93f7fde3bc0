// Package session — состояние сессии приложения: одна разделяемая
// наблюдаемая ячейка с явной регистрацией слушателей, а не синглтон
// со скрытой мутацией.
package session

import (
	"sync"

	"PassVault/internal/cli/api"
)

// State — текущее состояние сессии. Loading истинно только до первой
// проверки идентичности; до её завершения решения о маршрутах не принимаются.
type State struct {
	Identity *api.Identity // nil — аноним
	Loading  bool
}

// Authenticated сообщает, установлена ли идентичность.
func (s State) Authenticated() bool { return s.Identity != nil }

// Listener получает каждое изменение состояния сессии.
type Listener func(State)

// Gate — наблюдаемая ячейка идентичности.
type Gate struct {
	mu        sync.Mutex
	state     State
	nextID    int
	listeners map[int]Listener
}

// NewGate создаёт ячейку в состоянии «загрузка».
func NewGate() *Gate {
	return &Gate{
		state:     State{Loading: true},
		listeners: make(map[int]Listener),
	}
}

// Current возвращает текущее состояние.
func (g *Gate) Current() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Subscribe регистрирует слушателя и сразу вызывает его с текущим
// состоянием. Возвращает функцию отписки; она идемпотентна.
func (g *Gate) Subscribe(fn Listener) func() {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	cur := g.state
	g.mu.Unlock()

	fn(cur)

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

// Set устанавливает идентичность (nil — аноним), снимает Loading
// и уведомляет слушателей в порядке регистрации.
func (g *Gate) Set(identity *api.Identity) {
	g.mu.Lock()
	g.state = State{Identity: identity, Loading: false}
	cur := g.state
	fns := make([]Listener, 0, len(g.listeners))
	ids := make([]int, 0, len(g.listeners))
	for id := range g.listeners {
		ids = append(ids, id)
	}
	// map не упорядочен; порядок регистрации — по возрастанию id
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	for _, id := range ids {
		fns = append(fns, g.listeners[id])
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(cur)
	}
}

// Clear сбрасывает идентичность (выход или потеря сессии).
func (g *Gate) Clear() {
	g.Set(nil)
}
