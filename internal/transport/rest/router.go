// Package rest
package rest

import (
	"net/http"

	"uptimebar/internal/config"
	"uptimebar/internal/domain"
	"uptimebar/internal/transport/rest/middleware"
	"uptimebar/internal/transport/websocket"
)

type RouterDeps struct {
	WS       *websocket.Handler
	Uptime   *UptimeHandler
	Settings *SettingsHandler
	Auth     *AuthHandler

	Verifier middleware.TokenVerifier
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	readStack := middleware.New()
	readStack.Use(middleware.Auth(deps.Verifier))

	operatorStack := middleware.New()
	operatorStack.Use(middleware.Auth(deps.Verifier))
	operatorStack.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleViewer))

	adminStack := middleware.New()
	adminStack.Use(middleware.Auth(deps.Verifier))
	adminStack.Use(middleware.RequireRole(domain.RoleAdmin))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	mux.HandleFunc("GET /ws", deps.WS.Serve)

	// AUTH
	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)
	mux.Handle("POST /api/auth/logout", readStack.Then(http.HandlerFunc(deps.Auth.Logout)))

	// UPTIME
	mux.Handle("GET /api/uptime", readStack.Then(http.HandlerFunc(deps.Uptime.Read)))

	// SETTINGS
	mux.Handle("GET /api/settings", operatorStack.Then(http.HandlerFunc(deps.Settings.Show)))
	mux.Handle("PUT /api/settings", adminStack.Then(http.HandlerFunc(deps.Settings.Update)))

	return globalMw.Apply(mux)
}
