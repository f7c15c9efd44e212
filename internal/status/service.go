// Package status assembles the uptime payload served to widgets.
package status

import (
	"context"
	"sync/atomic"
	"time"

	"uptimebar/internal/domain"
	"uptimebar/internal/format"
	"uptimebar/internal/logger"
	"uptimebar/internal/settings"
)

// unavailableText replaces every formatted string of a series whose
// acquisition failed. Clients never see a stale value.
const unavailableText = "unavailable"

type UptimeSource interface {
	System(ctx context.Context) domain.UptimeReading
	Process(ctx context.Context) domain.UptimeReading
}

type Service struct {
	source   UptimeSource
	settings settings.Provider
	log      logger.Logger
	now      func() time.Time

	// Unix timestamp of the last emitted debug line. The only state shared
	// between requests.
	lastDebugLog atomic.Int64
}

func NewService(source UptimeSource, provider settings.Provider, log logger.Logger) *Service {
	return &Service{
		source:   source,
		settings: provider,
		log:      log,
		now:      time.Now,
	}
}

// Read builds the payload for one request. It never fails: a series that
// cannot be read is reported inside the payload as unavailable. Settings are
// snapshotted once at the top so a concurrent save cannot produce a payload
// that mixes old and new configuration.
func (s *Service) Read(ctx context.Context, access domain.Access) *domain.StatusResponse {
	st := s.settings.Get()

	resp := &domain.StatusResponse{
		DisplayFormat:          st.DisplayFormat,
		PollIntervalSeconds:    st.PollIntervalSeconds,
		ShowSystem:             st.ShowSystem,
		ShowProcess:            st.ShowProcess,
		Compact:                st.Compact,
		CompactIntervalSeconds: st.CompactIntervalSeconds,
	}

	attempted, failed := 0, 0

	if st.ShowSystem && access.System {
		attempted++
		reading := s.source.System(ctx)

		if reading.Available {
			secs := reading.Seconds
			v := format.AllVariants(secs)
			resp.Seconds = &secs
			resp.Uptime = v.Full
			resp.UptimeDHM = v.DHM
			resp.UptimeDH = v.DH
			resp.UptimeD = v.Days
			resp.UptimeShort = v.Short
			resp.UptimeAvailable = true
		} else {
			failed++
			resp.Uptime = unavailableText
			resp.UptimeDHM = unavailableText
			resp.UptimeDH = unavailableText
			resp.UptimeD = unavailableText
			resp.UptimeShort = unavailableText
			note := reading.Note
			resp.UptimeNote = &note
		}
	}

	if st.ShowProcess && access.Process {
		attempted++
		reading := s.source.Process(ctx)

		if reading.Available {
			secs := reading.Seconds
			v := format.AllVariants(secs)
			resp.ProcessSeconds = &secs
			resp.ProcessUptime = v.Full
			resp.ProcessUptimeDHM = v.DHM
			resp.ProcessUptimeDH = v.DH
			resp.ProcessUptimeD = v.Days
			resp.ProcessUptimeShort = v.Short
		} else {
			failed++
			resp.ProcessUptime = unavailableText
			resp.ProcessUptimeDHM = unavailableText
			resp.ProcessUptimeDH = unavailableText
			resp.ProcessUptimeD = unavailableText
			resp.ProcessUptimeShort = unavailableText
		}
	}

	if attempted > 0 && failed == attempted {
		resp.Error = "uptime unavailable"
	}

	if st.Debug {
		s.debugLog(st, resp)
	}

	return resp
}

// debugLog emits at most one diagnostic line per throttle window. The
// compare-and-swap picks a single winner when concurrent requests race on
// the same window.
func (s *Service) debugLog(st domain.DisplaySettings, resp *domain.StatusResponse) {
	now := s.now().Unix()
	last := s.lastDebugLog.Load()

	if last != 0 && now-last < int64(st.DebugThrottleSeconds) {
		return
	}

	if !s.lastDebugLog.CompareAndSwap(last, now) {
		return
	}

	s.log.Debug("status: read",
		"system_seconds", secondsValue(resp.Seconds),
		"process_seconds", secondsValue(resp.ProcessSeconds),
		"uptime_available", resp.UptimeAvailable,
		"display_format", resp.DisplayFormat,
	)
}

func secondsValue(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}
