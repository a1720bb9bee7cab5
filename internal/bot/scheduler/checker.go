// Package scheduler drives the periodic scrape-save-broadcast cycle.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/broadcast"
	"ph-jobfinder-bot/internal/config"
	"ph-jobfinder-bot/internal/models"
	"ph-jobfinder-bot/internal/scraper"
	"ph-jobfinder-bot/internal/storage/postgres"
	"ph-jobfinder-bot/internal/storage/redis"
)

// JobChecker runs the scrape cycle on a cron schedule. The running flag
// keeps a slow cycle from overlapping the next tick.
type JobChecker struct {
	scraper     *scraper.Scraper
	store       *postgres.Store
	cache       *redis.Cache
	broadcaster *broadcast.Broadcaster
	config      *config.Config
	logger      *zap.Logger
	cron        *cron.Cron
	running     atomic.Bool
}

func New(
	sc *scraper.Scraper,
	store *postgres.Store,
	cache *redis.Cache,
	broadcaster *broadcast.Broadcaster,
	cfg *config.Config,
	logger *zap.Logger,
) *JobChecker {
	return &JobChecker{
		scraper:     sc,
		store:       store,
		cache:       cache,
		broadcaster: broadcaster,
		config:      cfg,
		logger:      logger,
		cron:        cron.New(),
	}
}

// Start schedules the cycle and fires one immediately after a short grace
// period, so a fresh deployment does not sit idle for a full interval.
func (jc *JobChecker) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %dm", int(jc.config.CheckInterval.Minutes()))

	_, err := jc.cron.AddFunc(spec, func() {
		jc.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule job check: %w", err)
	}

	jc.cron.Start()
	jc.logger.Info("job checker started",
		zap.Duration("interval", jc.config.CheckInterval),
	)

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
			jc.runCycle(ctx)
		}
	}()

	<-ctx.Done()
	jc.Stop()
	return nil
}

func (jc *JobChecker) Stop() {
	stopCtx := jc.cron.Stop()
	<-stopCtx.Done()
	jc.logger.Info("job checker stopped")
}

// RunNow fires an immediate cycle unless one is already in flight.
func (jc *JobChecker) RunNow() bool {
	if jc.running.Load() {
		return false
	}
	go jc.runCycle(context.Background())
	return true
}

func (jc *JobChecker) runCycle(ctx context.Context) {
	if !jc.running.CompareAndSwap(false, true) {
		jc.logger.Warn("scrape cycle still running, skipping tick")
		return
	}
	defer jc.running.Store(false)

	start := time.Now()
	cycleCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	jobs := jc.scraper.ScrapeAll(cycleCtx)

	newJobs := jc.saveNew(cycleCtx, jobs)

	if len(newJobs) > 0 {
		if err := jc.cache.InvalidateLatestJobs(cycleCtx); err != nil {
			jc.logger.Warn("failed to invalidate job cache", zap.Error(err))
		}
		jc.broadcaster.Broadcast(cycleCtx, newJobs)
	}

	jc.logger.Info("scrape cycle finished",
		zap.Int("scraped", len(jobs)),
		zap.Int("new", len(newJobs)),
		zap.Duration("took", time.Since(start)),
	)
}

// saveNew persists every posting and returns the ones actually inserted.
// Postings already in the database are silently skipped, which is what
// makes re-scraping the same listings safe.
func (jc *JobChecker) saveNew(ctx context.Context, jobs []models.JobPosting) []models.JobPosting {
	var newJobs []models.JobPosting
	for i := range jobs {
		inserted, err := jc.store.SaveJob(ctx, &jobs[i])
		if err != nil {
			jc.logger.Warn("failed to save job",
				zap.String("link", jobs[i].Link),
				zap.Error(err),
			)
			continue
		}
		if inserted {
			newJobs = append(newJobs, jobs[i])
		}
	}
	return newJobs
}
