package cbr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the key rate
type Fetcher interface {
	GetKeyRate(ctx context.Context) (KeyRate, error)
}

// RateCache keeps the last fetched key rate and refreshes it on a cron schedule
type RateCache struct {
	fetcher Fetcher
	log     *logrus.Logger
	timeout time.Duration

	mu     sync.RWMutex
	latest KeyRate
	loaded bool

	cron    *cron.Cron
	initial sync.WaitGroup
}

// NewRateCache creates an empty cache; call Start to begin refreshing
func NewRateCache(fetcher Fetcher, log *logrus.Logger) *RateCache {
	return &RateCache{
		fetcher: fetcher,
		log:     log,
		timeout: 15 * time.Second,
	}
}

// Refresh fetches the key rate once. A failed fetch keeps the previous value.
func (c *RateCache) Refresh(ctx context.Context) error {
	kr, err := c.fetcher.GetKeyRate(ctx)
	if err != nil {
		c.log.Warnf("Failed to refresh key rate: %v", err)
		return err
	}
	c.mu.Lock()
	c.latest = kr
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Latest returns the cached key rate and whether one has been fetched
func (c *RateCache) Latest() (KeyRate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.loaded
}

// Start schedules refreshes on the cron expression and triggers an immediate first fetch
func (c *RateCache) Start(schedule string) error {
	c.cron = cron.New()
	if _, err := c.cron.AddFunc(schedule, c.refreshWithTimeout); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.cron.Start()
	c.initial.Add(1)
	go func() {
		defer c.initial.Done()
		c.refreshWithTimeout()
	}()
	c.log.Infof("Key rate refresh scheduled: %s", schedule)
	return nil
}

// Stop halts the schedule and waits for running refreshes, the initial one included
func (c *RateCache) Stop() {
	if c.cron != nil {
		<-c.cron.Stop().Done()
	}
	c.initial.Wait()
}

func (c *RateCache) refreshWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	_ = c.Refresh(ctx)
}
