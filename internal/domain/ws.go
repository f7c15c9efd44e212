package domain

import "encoding/json"

const (
	WsChannelUptime   = "uptime"
	WsChannelSettings = "settings"
)

const (
	WsEventUptimeUpdated   = "uptime.updated"
	WsEventSettingsUpdated = "settings.updated"
)

const (
	WsSubscribe   = "subscribe"
	WsUnsubscribe = "unsubscribe"
)

type WsClientMessage struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WsServerEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
