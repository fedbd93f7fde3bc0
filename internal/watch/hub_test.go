package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func recvWithin(t *testing.T, ch <-chan struct{}, d time.Duration) bool {
	t.Helper()
	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}

func TestHub_NotifyReachesOwnerSubscribers(t *testing.T) {
	h := NewHub()

	ch1, unsub1 := h.Subscribe(10)
	defer unsub1()
	ch2, unsub2 := h.Subscribe(10)
	defer unsub2()
	other, unsubOther := h.Subscribe(99)
	defer unsubOther()

	h.Notify(10)

	assert.True(t, recvWithin(t, ch1, time.Second))
	assert.True(t, recvWithin(t, ch2, time.Second))
	// чужая партиция сигнала не получает
	assert.False(t, recvWithin(t, other, 50*time.Millisecond))
}

func TestHub_SignalsCoalesce(t *testing.T) {
	h := NewHub()
	ch, unsub := h.Subscribe(1)
	defer unsub()

	// несколько изменений до чтения — один сигнал
	h.Notify(1)
	h.Notify(1)
	h.Notify(1)

	assert.True(t, recvWithin(t, ch, time.Second))
	assert.False(t, recvWithin(t, ch, 50*time.Millisecond))
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	ch, unsub := h.Subscribe(1)

	unsub()
	h.Notify(1)

	assert.False(t, recvWithin(t, ch, 50*time.Millisecond))

	// повторная отписка безопасна
	unsub()
}
