// Package format renders uptime durations for the navbar widget.
package format

import (
	"fmt"
	"strings"

	"uptimebar/internal/domain"
)

// Uptime renders seconds in the requested display format. Unknown formats
// fall back to the full rendering; negative inputs count as zero.
func Uptime(seconds int64, mode domain.DisplayFormat) string {
	switch mode {
	case domain.FormatDHM:
		return DHM(seconds)
	case domain.FormatDH:
		return DH(seconds)
	case domain.FormatDays:
		return Days(seconds)
	case domain.FormatShort:
		return Short(seconds)
	default:
		return Full(seconds)
	}
}

// Variants holds every rendering of one reading, so a response can carry
// them all and clients can switch formats without refetching.
type Variants struct {
	Full  string
	DHM   string
	DH    string
	Days  string
	Short string
}

func AllVariants(seconds int64) Variants {
	return Variants{
		Full:  Full(seconds),
		DHM:   DHM(seconds),
		DH:    DH(seconds),
		Days:  Days(seconds),
		Short: Short(seconds),
	}
}

// Full spells out every non-zero unit in words, pluralized
// ("2 days 3 hours 15 minutes"). Zero renders as "0 seconds".
func Full(seconds int64) string {
	d, h, m, s := split(seconds)

	parts := make([]string, 0, 4)
	if d > 0 {
		parts = append(parts, plural(d, "day"))
	}
	if h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m > 0 {
		parts = append(parts, plural(m, "minute"))
	}
	if s > 0 {
		parts = append(parts, plural(s, "second"))
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}

// DHM always shows all three units, zeros included ("0d 1h 1m").
func DHM(seconds int64) string {
	d, h, m, _ := split(seconds)
	return fmt.Sprintf("%dd %dh %dm", d, h, m)
}

func DH(seconds int64) string {
	d, h, _, _ := split(seconds)
	return fmt.Sprintf("%dd %dh", d, h)
}

func Days(seconds int64) string {
	d, _, _, _ := split(seconds)
	return fmt.Sprintf("%dd", d)
}

// Short omits leading zero units but keeps trailing ones
// ("1h 0m 5s", "45s"). Zero renders as "0s".
func Short(seconds int64) string {
	d, h, m, s := split(seconds)

	switch {
	case d > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", d, h, m, s)
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func split(seconds int64) (d, h, m, s int64) {
	if seconds < 0 {
		seconds = 0
	}
	d = seconds / 86400
	seconds %= 86400
	h = seconds / 3600
	seconds %= 3600
	m = seconds / 60
	s = seconds % 60
	return d, h, m, s
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
