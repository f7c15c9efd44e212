// Package core drives the server-side sampling loop feeding the push
// surface.
package core

import (
	"context"
	"time"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
)

// Scheduler periodically samples a status payload and hands it to a sink.
// The interval is re-read every cycle, so a settings change takes effect on
// the next tick without a restart.
type Scheduler struct {
	interval func() time.Duration
	log      logger.Logger
	sample   func(context.Context) *domain.StatusResponse
	sink     func(*domain.StatusResponse)
}

func NewScheduler(
	interval func() time.Duration,
	log logger.Logger,
	sample func(context.Context) *domain.StatusResponse,
	sink func(*domain.StatusResponse),
) *Scheduler {
	return &Scheduler{interval: interval, log: log, sample: sample, sink: sink}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.tick(ctx)

	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.tick(ctx)
			timer.Reset(s.nextInterval())
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}
	s.sink(s.sample(ctx))
}

func (s *Scheduler) nextInterval() time.Duration {
	d := s.interval()
	if d <= 0 {
		d = domain.DefaultPollIntervalSeconds * time.Second
		s.log.Warn("scheduler: non-positive interval, using default", "interval", d)
	}
	return d
}
