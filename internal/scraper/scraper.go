// Package scraper implements the multi-source job aggregation pipeline:
// one adapter per external source, a concurrent fan-out over all of them,
// and link-keyed dedup plus relevance filtering over the merged results.
package scraper

import (
	"context"
	"strings"
	"sync"
	"time"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/config"
	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
)

// Adapter is one integration against a single external job source. Fetch
// contains all per-request error handling; it returns an error only when the
// whole source failed, and may return partial results alongside nil.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]models.JobPosting, error)
}

// Scraper fans out to every registered adapter concurrently and merges
// the results into one deduplicated, relevant, classified list.
type Scraper struct {
	adapters []Adapter
	logger   *zap.Logger
}

// New builds the full adapter registry. Registry order is the fallback
// ordering for everything except result merging, which is completion-order.
func New(cfg *config.Config, logger *zap.Logger) *Scraper {
	client := NewClient(cfg.RequestTimeout, logger)

	adapters := []Adapter{
		// Tier 1: RSS feeds and JSON APIs, the stable sources.
		NewIndeed(client, logger),
		NewRemoteOK(client, logger),
		NewJooble(client, cfg.JoobleAPIKey, logger),
		NewPhilJobNet(client, logger),
		// Tier 2: HTML scraping, reliability varies.
		NewLinkedIn(client, logger),
		NewJobStreet(client, logger),
		NewOnlineJobs(client, logger),
		NewKalibrr(client, logger),
		NewBossJob(client, logger),
		NewTrabaho(client, logger),
		// Tier 3: additional boards and feeds.
		NewGlassdoor(client, logger),
		NewMonster(client, logger),
		NewUpwork(client, logger),
		NewFreelancer(client, logger),
		NewJobsDB(client, logger),
		NewBestJobs(client, logger),
		NewOLX(client, logger),
		NewGoogleJobs(client, cfg.SerpAPIKey, logger),
		NewTelegramChannels(client, logger),
	}

	return &Scraper{adapters: adapters, logger: logger}
}

// NewWithAdapters wires an explicit adapter set (used by tests).
func NewWithAdapters(adapters []Adapter, logger *zap.Logger) *Scraper {
	return &Scraper{adapters: adapters, logger: logger}
}

type adapterResult struct {
	name string
	jobs []models.JobPosting
	err  error
}

// ScrapeAll runs every adapter concurrently, joins them all, and returns the
// deduplicated relevant postings. A failing adapter contributes nothing and
// never prevents the others from being collected.
func (s *Scraper) ScrapeAll(ctx context.Context) []models.JobPosting {
	start := time.Now()
	results := make(chan adapterResult, len(s.adapters))

	var wg sync.WaitGroup
	for _, a := range s.adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("adapter panicked",
						zap.String("source", a.Name()),
						zap.Any("panic", r),
					)
					results <- adapterResult{name: a.Name()}
				}
			}()

			jobs, err := a.Fetch(ctx)
			results <- adapterResult{name: a.Name(), jobs: jobs, err: err}
		}(a)
	}

	wg.Wait()
	close(results)

	var all []models.JobPosting
	for res := range results {
		if res.err != nil {
			s.logger.Warn("source failed this cycle",
				zap.String("source", res.name),
				zap.Int("partial", len(res.jobs)),
				zap.Error(res.err),
			)
		} else {
			s.logger.Info("source scraped",
				zap.String("source", res.name),
				zap.Int("jobs", len(res.jobs)),
			)
		}
		all = append(all, res.jobs...)
	}

	unique := dedupByLink(all)

	relevant := unique[:0]
	for _, job := range unique {
		if classifier.IsRelevant(job.Title, "") {
			relevant = append(relevant, job)
		}
	}

	s.logger.Info("scrape cycle collected",
		zap.Int("raw", len(all)),
		zap.Int("unique", len(unique)),
		zap.Int("relevant", len(relevant)),
		zap.Duration("took", time.Since(start)),
	)

	return relevant
}

// dedupByLink keeps the first occurrence of every link and drops postings
// without one. Which duplicate survives is whichever adapter finished first;
// duplicates are content-identical by link, so the pick does not matter.
func dedupByLink(jobs []models.JobPosting) []models.JobPosting {
	seen := make(map[string]bool, len(jobs))
	out := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if job.Link == "" || seen[job.Link] {
			continue
		}
		seen[job.Link] = true
		out = append(out, job)
	}
	return out
}

// newJob normalizes raw extracted fields into a JobPosting: whitespace
// cleanup, company/location defaults, and classifier-assigned category.
// Source-reported categories are never trusted; running every posting
// through the same keyword table keeps categories consistent across sources.
func newJob(title, company, link, source, location, salary, description string) models.JobPosting {
	job := models.JobPosting{
		Title:    clean(title),
		Company:  clean(company),
		Link:     strings.TrimSpace(link),
		Category: classifier.Classify(title, description),
		Location: clean(location),
		Source:   source,
	}
	if job.Company == "" {
		job.Company = models.CompanyNotSpecified
	}
	if job.Location == "" {
		job.Location = models.DefaultLocation
	}
	if s := clean(salary); s != "" {
		job.Salary = &s
	}
	return job
}
