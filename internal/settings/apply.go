package settings

import "uptimebar/internal/domain"

// Apply merges a patch into cur. Absent fields keep their current values;
// malformed values fall back to defaults before clamping, so applying a
// well-formed request never fails.
func Apply(cur domain.DisplaySettings, patch domain.SettingsPatch) domain.DisplaySettings {
	next := cur

	if patch.ShowSystem != nil {
		next.ShowSystem = *patch.ShowSystem
	}
	if patch.ShowProcess != nil {
		next.ShowProcess = *patch.ShowProcess
	}
	if patch.Compact != nil {
		next.Compact = *patch.Compact
	}
	if patch.Debug != nil {
		next.Debug = *patch.Debug
	}

	if patch.DisplayFormat != nil {
		parsed, ok := domain.ParseDisplayFormat(*patch.DisplayFormat)
		if !ok {
			parsed = domain.FormatFull
		}
		next.DisplayFormat = parsed
	}

	if len(patch.CompactIntervalSeconds) > 0 {
		next.CompactIntervalSeconds = ClampJSON(patch.CompactIntervalSeconds,
			domain.MinCompactIntervalSeconds, domain.MaxCompactIntervalSeconds, domain.DefaultCompactIntervalSeconds)
	}
	if len(patch.PollIntervalSeconds) > 0 {
		next.PollIntervalSeconds = ClampJSON(patch.PollIntervalSeconds,
			domain.MinPollIntervalSeconds, domain.MaxPollIntervalSeconds, domain.DefaultPollIntervalSeconds)
	}
	if len(patch.DebugThrottleSeconds) > 0 {
		next.DebugThrottleSeconds = ClampJSON(patch.DebugThrottleSeconds,
			domain.MinDebugThrottleSeconds, domain.MaxDebugThrottleSeconds, domain.DefaultDebugThrottleSeconds)
	}

	return next
}

// Normalize snaps persisted settings back into their valid ranges. Rows
// written by older builds may carry values the current ranges reject.
func Normalize(s domain.DisplaySettings) domain.DisplaySettings {
	s.CompactIntervalSeconds = ClampValue(s.CompactIntervalSeconds,
		domain.MinCompactIntervalSeconds, domain.MaxCompactIntervalSeconds, domain.DefaultCompactIntervalSeconds)
	s.PollIntervalSeconds = ClampValue(s.PollIntervalSeconds,
		domain.MinPollIntervalSeconds, domain.MaxPollIntervalSeconds, domain.DefaultPollIntervalSeconds)
	s.DebugThrottleSeconds = ClampValue(s.DebugThrottleSeconds,
		domain.MinDebugThrottleSeconds, domain.MaxDebugThrottleSeconds, domain.DefaultDebugThrottleSeconds)

	if _, ok := domain.ParseDisplayFormat(string(s.DisplayFormat)); !ok {
		s.DisplayFormat = domain.FormatFull
	}

	return s
}
