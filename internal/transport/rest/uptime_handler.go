package rest

import (
	"net/http"

	"uptimebar/internal/domain"
	"uptimebar/internal/status"
	"uptimebar/internal/transport/rest/middleware"
)

type UptimeHandler struct {
	svc *status.Service
}

func NewUptimeHandler(svc *status.Service) *UptimeHandler {
	return &UptimeHandler{svc: svc}
}

// Read serves the widget poll. It always answers 200: acquisition problems
// are reported inside the payload, which keeps the widget's refresh loop
// free of status-code handling. The caller's role narrows which series are
// populated, never the status code.
func (h *UptimeHandler) Read(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	resp := h.svc.Read(r.Context(), domain.AccessFor(principal.Role))
	writeJSON(w, http.StatusOK, resp)
}
