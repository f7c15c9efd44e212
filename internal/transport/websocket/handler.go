package websocket

import (
	"net/http"
	"slices"
	"strings"

	"uptimebar/internal/config"
	"uptimebar/internal/domain"
	"uptimebar/internal/logger"

	"github.com/gorilla/websocket"
)

// TokenVerifier resolves a bearer credential into a principal.
type TokenVerifier interface {
	PrincipalFromToken(token string) (domain.Principal, error)
}

type Handler struct {
	hub      *Hub
	verifier TokenVerifier
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewHandler(hub *Hub, verifier TokenVerifier, cfg *config.Config, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")

			allowed := slices.Contains(cfg.AllowedOrigins, origin)
			if !allowed {
				log.Warn("ws: origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		verifier: verifier,
		upgrader: upgrader,
		log:      log,
	}
}

// Serve upgrades an authenticated connection. The push channels carry both
// uptime series, so subscriptions are limited to roles that may read both.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := requestToken(r)
	if token == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	principal, err := h.verifier.PrincipalFromToken(token)
	if err != nil {
		h.log.Warn("ws: token verification failed", "error", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if principal.Role != domain.RoleAdmin && principal.Role != domain.RoleWidget {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.log.Info("ws: client connected", "id", client.ID, "principal", principal.Name, "remote_addr", conn.RemoteAddr())
}

// requestToken pulls the credential from the Authorization header, the token
// query parameter (browsers cannot set headers on websocket dials), or the
// session cookie.
func requestToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
