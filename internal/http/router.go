package httpserver

import (
	"net/http"

	"ecocharge/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Login      http.HandlerFunc
	Logout     http.HandlerFunc
	Book       http.HandlerFunc
	Stats      http.HandlerFunc
	SessionsMe http.HandlerFunc
	VehiclesMe http.HandlerFunc
	Health     http.HandlerFunc
	Stations   *handlers.StationsHandlers
	Users      *handlers.UsersHandlers
}

// Gates are the authorization middlewares applied to protected routes.
type Gates struct {
	Any   func(http.Handler) http.Handler
	User  func(http.Handler) http.Handler
	Admin func(http.Handler) http.Handler
}

// NewRouter wires all HTTP routes. base wraps the whole mux (request id,
// access logging).
func NewRouter(deps RouterDeps, gates Gates, base func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", deps.Health)

	mux.Handle("POST /api/login", deps.Login)
	mux.Handle("POST /api/logout", deps.Logout)

	mux.Handle("GET /api/stations", http.HandlerFunc(deps.Stations.List))
	mux.Handle("GET /api/stations/{id}", http.HandlerFunc(deps.Stations.Get))
	mux.Handle("POST /api/stations", gates.Admin(http.HandlerFunc(deps.Stations.Create)))
	mux.Handle("PUT /api/stations/{id}", gates.Admin(http.HandlerFunc(deps.Stations.Update)))
	mux.Handle("DELETE /api/stations/{id}", gates.Admin(http.HandlerFunc(deps.Stations.Delete)))

	mux.Handle("GET /api/users", gates.Admin(http.HandlerFunc(deps.Users.List)))
	mux.Handle("POST /api/users", gates.Admin(http.HandlerFunc(deps.Users.Create)))
	mux.Handle("PUT /api/users/{id}", gates.Admin(http.HandlerFunc(deps.Users.Update)))
	mux.Handle("DELETE /api/users/{id}", gates.Admin(http.HandlerFunc(deps.Users.Delete)))

	mux.Handle("POST /api/book", gates.User(deps.Book))
	mux.Handle("GET /api/stats", gates.Admin(deps.Stats))
	mux.Handle("GET /api/sessions/me", gates.Any(deps.SessionsMe))
	mux.Handle("GET /api/vehicles/me", gates.Any(deps.VehiclesMe))

	if base != nil {
		return base(mux)
	}
	return mux
}
