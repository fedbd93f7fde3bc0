// Package watch — внутрипроцессные уведомления об изменениях партиций хранилища.
// Подписчик получает сигнал «партиция изменилась» и сам перечитывает выборку:
// контракт подписки — полные снапшоты, а не диффы.
package watch

import "sync"

// Hub раздаёт сигналы изменений по идентификатору владельца.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int64]map[int]chan struct{}
}

// NewHub создаёт пустой хаб.
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[int]chan struct{})}
}

// Subscribe регистрирует подписчика на изменения партиции владельца.
// Возвращает канал сигналов и функцию отписки. Канал с буфером 1:
// несколько изменений подряд схлопываются в один сигнал.
func (h *Hub) Subscribe(ownerID int64) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := h.next
	h.next++

	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[int]chan struct{})
	}
	h.subs[ownerID][id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if m, ok := h.subs[ownerID]; ok {
			delete(m, id)
			if len(m) == 0 {
				delete(h.subs, ownerID)
			}
		}
	}
	return ch, unsubscribe
}

// Notify сигнализирует всем подписчикам владельца об изменении партиции.
// Не блокируется: если подписчик ещё не разобрал прошлый сигнал, новый не нужен.
func (h *Hub) Notify(ownerID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[ownerID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
