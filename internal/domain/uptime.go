// Package domain
package domain

// UptimeReading is the outcome of one acquisition attempt. A reading is
// either available with a non-negative second count, or unavailable with a
// note explaining what to check.
type UptimeReading struct {
	Seconds   int64
	Available bool
	Note      string
}

func NewUptimeReading(seconds int64) UptimeReading {
	if seconds < 0 {
		seconds = 0
	}
	return UptimeReading{Seconds: seconds, Available: true}
}

func UnavailableReading(note string) UptimeReading {
	return UptimeReading{Note: note}
}

// Access is a caller's permission view over the two uptime series.
type Access struct {
	System  bool
	Process bool
}

// StatusResponse is the payload of the read endpoint. The process series
// keeps its historical octoprint_* key names so existing navbar clients
// keep working against this server.
type StatusResponse struct {
	Seconds     *int64 `json:"seconds"`
	Uptime      string `json:"uptime"`
	UptimeDHM   string `json:"uptime_dhm"`
	UptimeDH    string `json:"uptime_dh"`
	UptimeD     string `json:"uptime_d"`
	UptimeShort string `json:"uptime_short"`

	ProcessSeconds     *int64 `json:"octoprint_seconds"`
	ProcessUptime      string `json:"octoprint_uptime"`
	ProcessUptimeDHM   string `json:"octoprint_uptime_dhm"`
	ProcessUptimeDH    string `json:"octoprint_uptime_dh"`
	ProcessUptimeD     string `json:"octoprint_uptime_d"`
	ProcessUptimeShort string `json:"octoprint_uptime_short"`

	DisplayFormat          DisplayFormat `json:"display_format"`
	PollIntervalSeconds    int           `json:"poll_interval_seconds"`
	ShowSystem             bool          `json:"show_system"`
	ShowProcess            bool          `json:"show_process"`
	Compact                bool          `json:"compact"`
	CompactIntervalSeconds int           `json:"compact_interval_seconds"`

	UptimeAvailable bool    `json:"uptime_available"`
	UptimeNote      *string `json:"uptime_note"`
	Error           string  `json:"error,omitempty"`
}
