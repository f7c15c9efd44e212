package rest

import (
	"encoding/json"
	"net/http"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
	"uptimebar/internal/settings"
)

// Broadcaster pushes an event to subscribed dashboards.
type Broadcaster interface {
	Broadcast(channel, event string, payload any)
}

type SettingsHandler struct {
	store     *settings.Store
	broadcast Broadcaster
	log       logger.Logger
}

func NewSettingsHandler(store *settings.Store, broadcast Broadcaster, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		store:     store,
		broadcast: broadcast,
		log:       log,
	}
}

func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, http.StatusOK, APIResponse{Data: h.store.Get()})
}

// Update applies a partial settings patch. Out-of-range integers and unknown
// enum values are coerced rather than rejected, so a stale client can never
// wedge the widget configuration.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.store.Save(r.Context(), patch)
	if err != nil {
		h.log.Error("settings: save failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if h.broadcast != nil {
		h.broadcast.Broadcast(domain.WsChannelSettings, domain.WsEventSettingsUpdated, saved)
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    saved,
	})
}
