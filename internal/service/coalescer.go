package service

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultRefreshDelay = 2 * time.Second

// Coalescer collapses bursts of "this business's schedule changed"
// notifications into a single downstream refresh per quiet period. Each call
// re-arms the business's timer, so only the last call in a burst fires.
type Coalescer struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	delay   time.Duration
	refresh func(businessID string)
	logger  *zap.Logger
	stopped bool
}

func NewCoalescer(delay time.Duration, refresh func(businessID string), logger *zap.Logger) *Coalescer {
	if delay <= 0 {
		delay = DefaultRefreshDelay
	}
	return &Coalescer{
		timers:  make(map[string]*time.Timer),
		delay:   delay,
		refresh: refresh,
		logger:  logger,
	}
}

// ScheduleRefresh arms or re-arms the per-business timer.
func (c *Coalescer) ScheduleRefresh(businessID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if t, ok := c.timers[businessID]; ok {
		t.Stop()
	}
	c.timers[businessID] = time.AfterFunc(c.delay, func() {
		c.fire(businessID)
	})
}

func (c *Coalescer) fire(businessID string) {
	c.mu.Lock()
	delete(c.timers, businessID)
	stopped := c.stopped
	c.mu.Unlock()

	if stopped {
		return
	}
	c.logger.Debug("coalesced refresh firing", zap.String("business_id", businessID))
	c.refresh(businessID)
}

// Stop cancels all pending timers; refreshes armed but not yet fired are dropped.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}
