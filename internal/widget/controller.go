package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
)

// State names where the controller is in its poll cycle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateDisplaying
	StateFailed
	StateScheduled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateDisplaying:
		return "displaying"
	case StateFailed:
		return "failed"
	case StateScheduled:
		return "scheduled"
	}
	return "unknown"
}

// Series is which uptime value compact mode currently shows.
type Series int

const (
	SeriesSystem Series = iota
	SeriesProcess
)

const errorText = "Error"

// fallbackInterval is used after a failed cycle and whenever no usable
// interval is known. Never the server-echoed one: after a failure that value
// may be stale.
const fallbackInterval = domain.DefaultPollIntervalSeconds * time.Second

// Controller runs the widget's poll loop: fetch, render, re-arm. A cycle that
// fails still re-arms; the loop only ends with the context.
//
// One timer drives the loop and is always stopped before a new one is armed,
// so cycles never overlap. Compact mode runs on a second, shorter timer that
// only flips which already-fetched series is shown.
type Controller struct {
	fetch   Fetcher
	display Display
	log     logger.Logger

	localInterval time.Duration
	retryInterval time.Duration

	mu           sync.Mutex
	state        State
	series       Series
	last         *domain.StatusResponse
	lastFetchOK  bool
	pollTimer    *time.Timer
	compactTimer *time.Timer
	compactEvery time.Duration
	compactGen   uint64
	ctx          context.Context
	started      bool
}

func NewController(fetch Fetcher, display Display, localInterval time.Duration, log logger.Logger) *Controller {
	return &Controller{
		fetch:         fetch,
		display:       display,
		log:           log,
		localInterval: localInterval,
		retryInterval: fallbackInterval,
	}
}

// Run starts the loop and blocks until ctx is cancelled. The configuration
// the fetcher was built from must be fully loaded before Run is called: the
// first cycle fires immediately.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.New("widget: controller already running")
	}
	c.started = true
	c.ctx = ctx
	c.mu.Unlock()

	c.runCycle()

	<-ctx.Done()
	c.Stop()
	return ctx.Err()
}

// Stop cancels any pending timers. Run calls it on context cancellation;
// calling it again is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	if c.pollTimer != nil {
		c.pollTimer.Stop()
		c.pollTimer = nil
	}
	c.stopCompactLocked()
}

// State reports the current cycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// runCycle is one full pass: fetch, render or mark failed, re-arm. It runs
// on the caller's goroutine at startup and on the timer goroutine afterwards.
func (c *Controller) runCycle() {
	c.mu.Lock()
	if c.ctx == nil || c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.state = StateFetching
	ctx := c.ctx
	c.mu.Unlock()

	resp, err := c.fetch.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx.Err() != nil {
		return
	}

	if err != nil {
		c.state = StateFailed
		c.lastFetchOK = false
		c.log.Warn("widget: fetch failed", "error", err)
		c.display.Render(true, errorText, "")
		c.stopCompactLocked()
		c.scheduleLocked(c.retryInterval)
		return
	}

	c.state = StateDisplaying
	c.lastFetchOK = true
	c.last = resp
	c.adjustSeriesLocked()
	c.renderLocked()
	c.syncCompactLocked()
	c.scheduleLocked(c.nextIntervalLocked())
}

// scheduleLocked arms the next cycle. The pending timer, if any, is stopped
// first so at most one timer exists per controller.
func (c *Controller) scheduleLocked(d time.Duration) {
	if c.pollTimer != nil {
		c.pollTimer.Stop()
	}
	c.state = StateScheduled
	c.pollTimer = time.AfterFunc(d, c.runCycle)
}

// nextIntervalLocked prefers the interval the server echoed back, then the
// local configuration, then the fallback.
func (c *Controller) nextIntervalLocked() time.Duration {
	if c.last != nil && c.last.PollIntervalSeconds >= domain.MinPollIntervalSeconds {
		return time.Duration(c.last.PollIntervalSeconds) * time.Second
	}
	if c.localInterval > 0 {
		return c.localInterval
	}
	return fallbackInterval
}

// adjustSeriesLocked moves the displayed series off one that the settings
// just disabled.
func (c *Controller) adjustSeriesLocked() {
	resp := c.last
	if resp == nil {
		return
	}
	if c.series == SeriesSystem && !resp.ShowSystem && resp.ShowProcess {
		c.series = SeriesProcess
	}
	if c.series == SeriesProcess && !resp.ShowProcess && resp.ShowSystem {
		c.series = SeriesSystem
	}
}

func (c *Controller) renderLocked() {
	resp := c.last
	if resp == nil {
		return
	}

	if !resp.ShowSystem && !resp.ShowProcess {
		c.display.Render(false, "", "")
		return
	}

	c.display.Render(true, c.textLocked(), tooltip(resp))
}

// textLocked builds the visible string. With both series enabled, compact
// mode shows one at a time and normal mode shows both; with one series
// enabled, its value is shown bare.
func (c *Controller) textLocked() string {
	resp := c.last

	switch {
	case resp.ShowSystem && resp.ShowProcess && resp.Compact:
		return seriesText(resp, c.series)
	case resp.ShowSystem && resp.ShowProcess:
		return "host " + seriesText(resp, SeriesSystem) + " · server " + seriesText(resp, SeriesProcess)
	case resp.ShowSystem:
		return seriesText(resp, SeriesSystem)
	default:
		return seriesText(resp, SeriesProcess)
	}
}

func tooltip(resp *domain.StatusResponse) string {
	parts := make([]string, 0, 3)
	if resp.ShowSystem {
		parts = append(parts, "host up "+resp.Uptime)
	}
	if resp.ShowProcess {
		parts = append(parts, "server up "+resp.ProcessUptime)
	}
	if resp.UptimeNote != nil && *resp.UptimeNote != "" {
		parts = append(parts, *resp.UptimeNote)
	}

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "; "
		}
		out += p
	}
	return out
}

// seriesText picks the pre-rendered variant matching the configured format.
func seriesText(resp *domain.StatusResponse, s Series) string {
	if s == SeriesProcess {
		return pickFormat(resp.DisplayFormat,
			resp.ProcessUptime, resp.ProcessUptimeDHM, resp.ProcessUptimeDH, resp.ProcessUptimeD, resp.ProcessUptimeShort)
	}
	return pickFormat(resp.DisplayFormat,
		resp.Uptime, resp.UptimeDHM, resp.UptimeDH, resp.UptimeD, resp.UptimeShort)
}

func pickFormat(mode domain.DisplayFormat, full, dhm, dh, days, short string) string {
	switch mode {
	case domain.FormatDHM:
		return dhm
	case domain.FormatDH:
		return dh
	case domain.FormatDays:
		return days
	case domain.FormatShort:
		return short
	}
	return full
}

// syncCompactLocked starts, retunes, or stops the alternation timer to match
// the last response. Alternation only runs with both series enabled and
// compact on; it never issues reads of its own.
func (c *Controller) syncCompactLocked() {
	resp := c.last

	want := resp != nil && resp.Compact && resp.ShowSystem && resp.ShowProcess
	if !want {
		c.stopCompactLocked()
		return
	}

	every := time.Duration(resp.CompactIntervalSeconds) * time.Second
	if every <= 0 {
		every = domain.DefaultCompactIntervalSeconds * time.Second
	}

	if c.compactTimer != nil && every == c.compactEvery {
		return
	}
	c.armCompactLocked(every)
}

func (c *Controller) armCompactLocked(every time.Duration) {
	c.stopCompactLocked()
	c.compactEvery = every
	gen := c.compactGen
	c.compactTimer = time.AfterFunc(every, func() { c.compactTick(gen) })
}

// stopCompactLocked cancels the alternation timer. Bumping the generation
// invalidates a tick that already fired but has not taken the lock yet.
func (c *Controller) stopCompactLocked() {
	c.compactGen++
	if c.compactTimer != nil {
		c.compactTimer.Stop()
		c.compactTimer = nil
	}
	c.compactEvery = 0
}

// compactTick flips the displayed series and re-arms itself.
func (c *Controller) compactTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.compactGen || c.ctx == nil || c.ctx.Err() != nil {
		return
	}

	if c.series == SeriesSystem {
		c.series = SeriesProcess
	} else {
		c.series = SeriesSystem
	}
	c.renderLocked()

	c.compactTimer = time.AfterFunc(c.compactEvery, func() { c.compactTick(gen) })
}
