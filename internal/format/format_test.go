package format

import (
	"testing"

	"uptimebar/internal/domain"
)

func TestUptimeModes(t *testing.T) {
	cases := []struct {
		name    string
		seconds int64
		mode    domain.DisplayFormat
		want    string
	}{
		{"dhm keeps zero units", 3661, domain.FormatDHM, "0d 1h 1m"},
		{"dhm multi day", 2*86400 + 3*3600 + 15*60, domain.FormatDHM, "2d 3h 15m"},
		{"dhm under a minute", 30, domain.FormatDHM, "0d 0h 0m"},
		{"dh", 2*86400 + 3*3600 + 59*60, domain.FormatDH, "2d 3h"},
		{"d", 2*86400 + 23*3600, domain.FormatDays, "2d"},
		{"short zero", 0, domain.FormatShort, "0s"},
		{"short seconds only", 45, domain.FormatShort, "45s"},
		{"short keeps trailing zeros", 3600, domain.FormatShort, "1h 0m 0s"},
		{"short hour minute second", 3661, domain.FormatShort, "1h 1m 1s"},
		{"short with days", 86400 + 5, domain.FormatShort, "1d 0h 0m 5s"},
		{"full zero", 0, domain.FormatFull, "0 seconds"},
		{"full skips zero units", 2*86400 + 15*60, domain.FormatFull, "2 days 15 minutes"},
		{"full singulars", 86400 + 3600 + 60 + 1, domain.FormatFull, "1 day 1 hour 1 minute 1 second"},
		{"unknown mode falls back to full", 61, domain.DisplayFormat("bogus"), "1 minute 1 second"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Uptime(tc.seconds, tc.mode)
			if got != tc.want {
				t.Fatalf("Uptime(%d, %q) = %q, want %q", tc.seconds, tc.mode, got, tc.want)
			}
		})
	}
}

func TestNegativeSecondsCountAsZero(t *testing.T) {
	if got := DHM(-50); got != "0d 0h 0m" {
		t.Fatalf("DHM(-50) = %q, want %q", got, "0d 0h 0m")
	}
	if got := Short(-50); got != "0s" {
		t.Fatalf("Short(-50) = %q, want %q", got, "0s")
	}
	if got := Full(-50); got != "0 seconds" {
		t.Fatalf("Full(-50) = %q, want %q", got, "0 seconds")
	}
}

func TestAllVariantsAgree(t *testing.T) {
	const seconds = 90061 // 1d 1h 1m 1s

	v := AllVariants(seconds)

	if v.Full != Full(seconds) || v.DHM != DHM(seconds) || v.DH != DH(seconds) ||
		v.Days != Days(seconds) || v.Short != Short(seconds) {
		t.Fatalf("AllVariants(%d) disagrees with individual renderings: %+v", seconds, v)
	}
}
