// Package uptime acquires host and process uptime readings.
package uptime

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"

	"github.com/shirou/gopsutil/v3/host"
)

const (
	// probeTimeout bounds every acquisition strategy. A hung platform call
	// degrades the reading instead of stalling the request.
	probeTimeout = 2 * time.Second

	// Boot times implying more than this are treated as a lying clock.
	maxPlausibleUptime = 10 * 365 * 24 * time.Hour
)

const unavailableNote = "uptime unavailable: ensure /proc is mounted or check the server log for details"

// Source reads the two uptime series. System uptime tries the procfs counter
// first and falls back to the platform boot time; process uptime derives
// from the start timestamp captured when the server booted.
type Source struct {
	procPath     string
	processStart time.Time
	now          func() time.Time
	bootTime     func(context.Context) (uint64, error)
	log          logger.Logger
}

func NewSource(processStart time.Time, log logger.Logger) *Source {
	return &Source{
		procPath:     "/proc/uptime",
		processStart: processStart,
		now:          time.Now,
		bootTime:     host.BootTimeWithContext,
		log:          log,
	}
}

// System reads host uptime. Exhausting every strategy is not an error: the
// reading reports unavailability and carries a remediation note instead.
func (s *Source) System(ctx context.Context) domain.UptimeReading {
	secs, procErr := s.readProc(ctx)
	if procErr == nil {
		return domain.NewUptimeReading(secs)
	}
	s.log.Debug("uptime: procfs read failed, trying boot time", "error", procErr)

	secs, bootErr := s.readBootTime(ctx)
	if bootErr == nil {
		return domain.NewUptimeReading(secs)
	}
	s.log.Warn("uptime: all acquisition strategies failed",
		"proc_error", procErr,
		"boot_error", bootErr,
	)

	return domain.UnavailableReading(unavailableNote)
}

// Process derives uptime from the recorded process start.
func (s *Source) Process(ctx context.Context) domain.UptimeReading {
	if s.processStart.IsZero() {
		return domain.UnavailableReading("process start time was not recorded")
	}
	return domain.NewUptimeReading(int64(s.now().Sub(s.processStart).Seconds()))
}

func (s *Source) readProc(ctx context.Context) (int64, error) {
	return s.probe(ctx, func(context.Context) (int64, error) {
		data, err := os.ReadFile(s.procPath)
		if err != nil {
			return 0, err
		}

		fields := strings.Fields(string(data))
		if len(fields) == 0 {
			return 0, fmt.Errorf("%s is empty", s.procPath)
		}

		secs, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse uptime %q: %w", fields[0], err)
		}

		return int64(secs), nil
	})
}

func (s *Source) readBootTime(ctx context.Context) (int64, error) {
	return s.probe(ctx, func(ctx context.Context) (int64, error) {
		boot, err := s.bootTime(ctx)
		if err != nil {
			return 0, err
		}

		up := s.now().Sub(time.Unix(int64(boot), 0))
		if up < 0 || up > maxPlausibleUptime {
			return 0, fmt.Errorf("implausible boot time %d", boot)
		}

		return int64(up.Seconds()), nil
	})
}

func (s *Source) probe(ctx context.Context, read func(context.Context) (int64, error)) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	type result struct {
		secs int64
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		secs, err := read(ctx)
		ch <- result{secs: secs, err: err}
	}()

	select {
	case res := <-ch:
		return res.secs, res.err
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
