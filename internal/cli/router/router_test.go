package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Полная таблица маршрутизации: {loading, authed} x {root, login, signup, vault, unknown}
func TestResolve_FullTable(t *testing.T) {
	routes := []Route{RouteRoot, RouteLogin, RouteSignup, RouteVault, RouteUnknown}

	t.Run("loading", func(t *testing.T) {
		// пока идёт первая проверка идентичности — только заглушка
		for _, r := range routes {
			for _, authed := range []bool{false, true} {
				d := Resolve(true, authed, r)
				assert.Equal(t, ActionPlaceholder, d.Action, "route=%s authed=%v", r, authed)
			}
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		cases := []struct {
			route Route
			want  Decision
		}{
			{RouteRoot, Decision{ActionShow, RouteLogin}}, // корень отображается входом
			{RouteLogin, Decision{ActionShow, RouteLogin}},
			{RouteSignup, Decision{ActionShow, RouteSignup}},
			{RouteVault, Decision{ActionRedirect, RouteLogin}},
			{RouteUnknown, Decision{ActionRedirect, RouteLogin}}, // через корень
		}
		for _, c := range cases {
			assert.Equal(t, c.want, Resolve(false, false, c.route), "route=%s", c.route)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		cases := []struct {
			route Route
			want  Decision
		}{
			{RouteRoot, Decision{ActionRedirect, RouteVault}},
			{RouteLogin, Decision{ActionRedirect, RouteVault}},
			{RouteSignup, Decision{ActionRedirect, RouteVault}},
			{RouteVault, Decision{ActionShow, RouteVault}},
			{RouteUnknown, Decision{ActionRedirect, RouteVault}},
		}
		for _, c := range cases {
			assert.Equal(t, c.want, Resolve(false, true, c.route), "route=%s", c.route)
		}
	})
}

func TestParseRoute(t *testing.T) {
	assert.Equal(t, RouteRoot, ParseRoute("/"))
	assert.Equal(t, RouteRoot, ParseRoute(""))
	assert.Equal(t, RouteLogin, ParseRoute("/login"))
	assert.Equal(t, RouteSignup, ParseRoute("/signup"))
	assert.Equal(t, RouteVault, ParseRoute("/vault"))
	assert.Equal(t, RouteVault, ParseRoute("/dashboard"))
	assert.Equal(t, RouteUnknown, ParseRoute("/nope"))
}
