package settings

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"uptimebar/internal/domain"
)

func boolPtr(b bool) *bool          { return &b }
func strPtr(s string) *string       { return &s }
func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestApplyAbsentFieldsKeepCurrent(t *testing.T) {
	cur := domain.DefaultDisplaySettings()
	cur.PollIntervalSeconds = 30
	cur.DisplayFormat = domain.FormatDHM

	got := Apply(cur, domain.SettingsPatch{})

	if diff := cmp.Diff(cur, got); diff != "" {
		t.Fatalf("empty patch changed settings (-want +got):\n%s", diff)
	}
}

func TestApplyMergesFields(t *testing.T) {
	cur := domain.DefaultDisplaySettings()

	got := Apply(cur, domain.SettingsPatch{
		ShowSystem:             boolPtr(false),
		Compact:                boolPtr(true),
		DisplayFormat:          strPtr("short"),
		PollIntervalSeconds:    raw(`42`),
		CompactIntervalSeconds: raw(`10`),
	})

	want := cur
	want.ShowSystem = false
	want.Compact = true
	want.DisplayFormat = domain.FormatShort
	want.PollIntervalSeconds = 42
	want.CompactIntervalSeconds = 10

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("patch applied wrong (-want +got):\n%s", diff)
	}
}

func TestApplyClampsAndDefaults(t *testing.T) {
	cur := domain.DefaultDisplaySettings()
	cur.PollIntervalSeconds = 30
	cur.DebugThrottleSeconds = 90

	got := Apply(cur, domain.SettingsPatch{
		PollIntervalSeconds:  raw(`999`),
		DebugThrottleSeconds: raw(`"abc"`),
	})

	if got.PollIntervalSeconds != domain.MaxPollIntervalSeconds {
		t.Fatalf("PollIntervalSeconds = %d, want %d", got.PollIntervalSeconds, domain.MaxPollIntervalSeconds)
	}
	if got.DebugThrottleSeconds != domain.DefaultDebugThrottleSeconds {
		t.Fatalf("DebugThrottleSeconds = %d, want %d", got.DebugThrottleSeconds, domain.DefaultDebugThrottleSeconds)
	}
}

func TestApplyUnknownFormatFallsBack(t *testing.T) {
	cur := domain.DefaultDisplaySettings()
	cur.DisplayFormat = domain.FormatDH

	got := Apply(cur, domain.SettingsPatch{DisplayFormat: strPtr("fancy")})

	if got.DisplayFormat != domain.FormatFull {
		t.Fatalf("DisplayFormat = %q, want %q", got.DisplayFormat, domain.FormatFull)
	}
}

func TestApplyNullIntegerFallsBack(t *testing.T) {
	cur := domain.DefaultDisplaySettings()
	cur.PollIntervalSeconds = 30

	got := Apply(cur, domain.SettingsPatch{PollIntervalSeconds: raw(`null`)})

	if got.PollIntervalSeconds != domain.DefaultPollIntervalSeconds {
		t.Fatalf("PollIntervalSeconds = %d, want %d", got.PollIntervalSeconds, domain.DefaultPollIntervalSeconds)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(domain.DisplaySettings{
		CompactIntervalSeconds: 0,
		DisplayFormat:          "bogus",
		PollIntervalSeconds:    500,
		DebugThrottleSeconds:   -3,
	})

	want := domain.DisplaySettings{
		CompactIntervalSeconds: domain.MinCompactIntervalSeconds,
		DisplayFormat:          domain.FormatFull,
		PollIntervalSeconds:    domain.MaxPollIntervalSeconds,
		DebugThrottleSeconds:   domain.MinDebugThrottleSeconds,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize wrong (-want +got):\n%s", diff)
	}
}
