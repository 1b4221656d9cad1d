package ports

import "net/url"

// Rutas del portal.
const (
	RouteLogin     = "/login"
	RouteDashboard = "/"
	RouteCustomers = "/customers"
)

// Navigator puerto de navegación del lado cliente.
// El portal web lo implementa con redirects HTTP; la CLI con un aviso en stderr.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapta una función a Navigator.
type NavigatorFunc func(route string)

// Navigate llama a f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// LoginRoute ruta de login que lleva el destino original para volver tras autenticarse.
// La landing no se anota: es el destino por defecto.
func LoginRoute(destination string) string {
	if destination == "" || destination == RouteLogin || destination == RouteDashboard {
		return RouteLogin
	}
	return RouteLogin + "?redirect=" + url.QueryEscape(destination)
}

// SafeRedirect valida el destino post-login: solo rutas locales absolutas.
// Cualquier otra cosa (URL externa, //host, la propia /login) vuelve a def.
func SafeRedirect(target, def string) string {
	if target == "" || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		return def
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" || u.Path == RouteLogin {
		return def
	}
	return target
}
