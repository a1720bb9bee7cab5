package redis

import (
	"context"
	"fmt"
	"time"

	"ph-jobfinder-bot/internal/models"
)

const (
	LatestJobsCacheTTL = 5 * time.Minute
	StatsCacheTTL      = 2 * time.Minute
	RateLimitWindowTTL = 1 * time.Minute
)

func LatestJobsKey(filter string) string {
	return fmt.Sprintf("jobs:latest:%s", filter)
}

func StatsKey() string {
	return "stats:global"
}

func RateLimitKey(userID int64) string {
	return fmt.Sprintf("ratelimit:user:%d", userID)
}

// GetLatestJobs returns the cached job list for a filter, or an error on a
// cache miss. Filters map one-to-one to keys: "All" and every category.
func (c *Cache) GetLatestJobs(ctx context.Context, filter string) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.Get(ctx, LatestJobsKey(filter), &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Cache) SetLatestJobs(ctx context.Context, filter string, jobs []models.JobPosting) error {
	return c.Set(ctx, LatestJobsKey(filter), jobs, LatestJobsCacheTTL)
}

// InvalidateLatestJobs drops every cached job list. Called after a scrape
// cycle lands new rows.
func (c *Cache) InvalidateLatestJobs(ctx context.Context) error {
	if err := c.Delete(ctx, LatestJobsKey(models.FilterAll)); err != nil {
		return err
	}
	for _, category := range models.Categories() {
		if err := c.Delete(ctx, LatestJobsKey(string(category))); err != nil {
			return err
		}
	}
	return nil
}

type Stats struct {
	TotalJobs  int `json:"total_jobs"`
	JobsToday  int `json:"jobs_today"`
	Users      int `json:"users"`
	Subscribed int `json:"subscribed"`
}

func (c *Cache) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.Get(ctx, StatsKey(), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Cache) SetStats(ctx context.Context, stats *Stats) error {
	return c.Set(ctx, StatsKey(), stats, StatsCacheTTL)
}

func (c *Cache) IncrementUserRateLimit(ctx context.Context, userID int64) (int64, error) {
	return c.IncrementWithExpiry(ctx, RateLimitKey(userID), RateLimitWindowTTL)
}
