package domain

import (
	"context"
	"encoding/json"
)

type DisplayFormat string

const (
	FormatFull  DisplayFormat = "full"
	FormatDHM   DisplayFormat = "dhm"
	FormatDH    DisplayFormat = "dh"
	FormatDays  DisplayFormat = "d"
	FormatShort DisplayFormat = "short"
)

func ParseDisplayFormat(raw string) (DisplayFormat, bool) {
	switch DisplayFormat(raw) {
	case FormatFull, FormatDHM, FormatDH, FormatDays, FormatShort:
		return DisplayFormat(raw), true
	}
	return FormatFull, false
}

const (
	MinPollIntervalSeconds     = 1
	MaxPollIntervalSeconds     = 120
	DefaultPollIntervalSeconds = 5

	MinDebugThrottleSeconds     = 1
	MaxDebugThrottleSeconds     = 120
	DefaultDebugThrottleSeconds = 60

	MinCompactIntervalSeconds     = 5
	MaxCompactIntervalSeconds     = 60
	DefaultCompactIntervalSeconds = 5
)

// DisplaySettings controls what the widget shows and how often it polls.
// There is exactly one instance, owned by the settings store.
type DisplaySettings struct {
	ShowSystem             bool          `json:"show_system"`
	ShowProcess            bool          `json:"show_process"`
	Compact                bool          `json:"compact"`
	CompactIntervalSeconds int           `json:"compact_interval_seconds"`
	DisplayFormat          DisplayFormat `json:"display_format"`
	PollIntervalSeconds    int           `json:"poll_interval_seconds"`
	Debug                  bool          `json:"debug"`
	DebugThrottleSeconds   int           `json:"debug_throttle_seconds"`
}

func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		ShowSystem:             true,
		ShowProcess:            true,
		Compact:                false,
		CompactIntervalSeconds: DefaultCompactIntervalSeconds,
		DisplayFormat:          FormatFull,
		PollIntervalSeconds:    DefaultPollIntervalSeconds,
		Debug:                  false,
		DebugThrottleSeconds:   DefaultDebugThrottleSeconds,
	}
}

// SettingsPatch is a partial settings update. Absent keys keep their current
// values; the raw integer fields are kept undecoded so malformed values can
// fall back to defaults instead of failing the request.
type SettingsPatch struct {
	ShowSystem             *bool           `json:"show_system"`
	ShowProcess            *bool           `json:"show_process"`
	Compact                *bool           `json:"compact"`
	Debug                  *bool           `json:"debug"`
	DisplayFormat          *string         `json:"display_format"`
	CompactIntervalSeconds json.RawMessage `json:"compact_interval_seconds"`
	PollIntervalSeconds    json.RawMessage `json:"poll_interval_seconds"`
	DebugThrottleSeconds   json.RawMessage `json:"debug_throttle_seconds"`
}

type SettingsRepository interface {
	Load(ctx context.Context) (DisplaySettings, bool, error)
	Save(ctx context.Context, s DisplaySettings) error
}
