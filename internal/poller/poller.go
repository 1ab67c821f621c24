// Package poller drives the event store from the provider API on a schedule.
package poller

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/PratikDhanave/event-feed-service/internal/events"
	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// Fetcher returns the events matching a filter.
type Fetcher interface {
	FetchEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
}

// Store applies batches and exposes the current state.
type Store interface {
	AddEvents(ctx context.Context, batch []models.Event) (events.State, error)
	Snapshot(ctx context.Context) (events.State, error)
}

// Archive keeps a durable copy of fetched events.
type Archive interface {
	ArchiveEvents(ctx context.Context, batch []models.Event) (int, error)
}

// Poller fetches new and in-progress events and applies them in order.
type Poller struct {
	fetcher  Fetcher
	store    Store
	archive  Archive
	interval time.Duration
	timeout  time.Duration
	log      logrus.FieldLogger

	polls    atomic.Int64
	failures atomic.Int64
}

// New returns a Poller. archive may be nil.
func New(fetcher Fetcher, store Store, archive Archive, interval time.Duration, log logrus.FieldLogger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		archive:  archive,
		interval: interval,
		timeout:  interval,
		log:      log,
	}
}

// Poll runs one fetch-and-apply cycle. A failed fetch leaves the store as it was.
func (p *Poller) Poll(ctx context.Context) error {
	state, err := p.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	filter := events.BuildFilter(state.MostRecentEventTime, events.InProgressIDs(state.InProgressEvents))

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	batch, err := p.fetcher.FetchEvents(fetchCtx, filter)
	cancel()
	if err != nil {
		p.failures.Add(1)
		return fmt.Errorf("fetch events: %w", err)
	}

	next, err := p.store.AddEvents(ctx, batch)
	if err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	p.polls.Add(1)

	p.log.WithFields(logrus.Fields{
		"fetched":     len(batch),
		"unseen":      next.CountUnseenEvents,
		"in_progress": len(next.InProgressEvents),
		"watermark":   time.UnixMilli(next.MostRecentEventTime).UTC().Format(models.WireTimeFormat),
	}).Debug("[poller] poll complete")

	if p.archive != nil && len(batch) > 0 {
		if n, err := p.archive.ArchiveEvents(ctx, batch); err != nil {
			p.log.WithError(err).Warn("[poller] archive failed")
		} else if n > 0 {
			p.log.WithField("new", n).Debug("[poller] archived events")
		}
	}
	return nil
}

// Successful reports how many polls have been applied.
func (p *Poller) Successful() int64 {
	return p.polls.Load()
}

// Failed reports how many fetches have failed.
func (p *Poller) Failed() int64 {
	return p.failures.Load()
}

// Run polls once immediately, then every interval until ctx is cancelled.
// A poll is skipped while the previous one is still running, so batches
// reach the store in the order they were fetched.
func (p *Poller) Run(ctx context.Context) error {
	logger := cron.PrintfLogger(p.log)
	c := cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.interval), func() { p.runOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule poller: %w", err)
	}

	p.log.WithField("interval", p.interval).Info("[poller] starting")
	p.runOnce(ctx)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	p.log.Info("[poller] stopped")
	return ctx.Err()
}

func (p *Poller) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
		p.log.WithError(err).Warn("[poller] poll failed, will retry next interval")
	}
}
