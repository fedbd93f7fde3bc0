package session

import (
	"testing"

	"PassVault/internal/cli/api"

	"github.com/stretchr/testify/assert"
)

func TestGate_StartsLoading(t *testing.T) {
	g := NewGate()
	st := g.Current()
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated())
}

func TestGate_SubscribeDeliversCurrentAndChanges(t *testing.T) {
	g := NewGate()

	var got []State
	unsub := g.Subscribe(func(s State) { got = append(got, s) })
	defer unsub()

	// сразу при подписке — текущее состояние (loading)
	if assert.Len(t, got, 1) {
		assert.True(t, got[0].Loading)
	}

	g.Set(&api.Identity{UserID: 1, Email: "a@b.c"})
	if assert.Len(t, got, 2) {
		assert.False(t, got[1].Loading)
		assert.True(t, got[1].Authenticated())
		assert.Equal(t, int64(1), got[1].Identity.UserID)
	}

	g.Clear()
	if assert.Len(t, got, 3) {
		assert.False(t, got[2].Loading)
		assert.False(t, got[2].Authenticated())
	}
}

func TestGate_UnsubscribeStopsDelivery(t *testing.T) {
	g := NewGate()

	calls := 0
	unsub := g.Subscribe(func(State) { calls++ })
	assert.Equal(t, 1, calls)

	unsub()
	g.Set(&api.Identity{UserID: 2})
	assert.Equal(t, 1, calls)

	// повторная отписка безопасна
	unsub()
}

func TestGate_ListenersNotifiedInRegistrationOrder(t *testing.T) {
	g := NewGate()

	var order []string
	u1 := g.Subscribe(func(s State) {
		if !s.Loading {
			order = append(order, "first")
		}
	})
	defer u1()
	u2 := g.Subscribe(func(s State) {
		if !s.Loading {
			order = append(order, "second")
		}
	})
	defer u2()

	g.Set(nil)
	assert.Equal(t, []string{"first", "second"}, order)
}
