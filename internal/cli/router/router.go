// Package router — таблица маршрутизации приложения.
// Решение — чистая функция от {loading, идентичность, запрошенный маршрут},
// без побочных эффектов: исполняет его UI-слой.
package router

// Route — один из маршрутов приложения.
type Route string

const (
	RouteRoot    Route = "/"
	RouteLogin   Route = "/login"
	RouteSignup  Route = "/signup"
	RouteVault   Route = "/vault"
	RouteUnknown Route = "*"
)

// ParseRoute приводит путь к известному маршруту.
func ParseRoute(path string) Route {
	switch path {
	case "/", "":
		return RouteRoot
	case "/login":
		return RouteLogin
	case "/signup":
		return RouteSignup
	case "/vault", "/dashboard":
		return RouteVault
	default:
		return RouteUnknown
	}
}

// Action — что делать с запрошенным маршрутом.
type Action int

const (
	// ActionPlaceholder — идёт первая проверка идентичности, показываем заглушку.
	ActionPlaceholder Action = iota
	// ActionShow — показать страницу Target.
	ActionShow
	// ActionRedirect — перейти на Target и показать его.
	ActionRedirect
)

// Decision — результат маршрутизации.
type Decision struct {
	Action Action
	Target Route
}

// Resolve возвращает решение для запрошенного маршрута.
// Пока Loading — только заглушка, никаких переходов.
// Неизвестный путь ведёт на корень и разрешается заново.
func Resolve(loading bool, authenticated bool, route Route) Decision {
	if loading {
		return Decision{Action: ActionPlaceholder}
	}

	if route == RouteUnknown {
		d := Resolve(loading, authenticated, RouteRoot)
		// переход с неизвестного пути — всегда redirect, даже если корень показался бы сам
		return Decision{Action: ActionRedirect, Target: d.Target}
	}

	if authenticated {
		switch route {
		case RouteVault:
			return Decision{Action: ActionShow, Target: RouteVault}
		default: // root, login, signup
			return Decision{Action: ActionRedirect, Target: RouteVault}
		}
	}

	switch route {
	case RouteVault:
		return Decision{Action: ActionRedirect, Target: RouteLogin}
	case RouteRoot:
		// корень отображается страницей входа
		return Decision{Action: ActionShow, Target: RouteLogin}
	default: // login, signup
		return Decision{Action: ActionShow, Target: route}
	}
}
