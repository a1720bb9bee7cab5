package scraper

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// Upwork publishes per-search RSS feeds for its freelance marketplace.
// Budgets live inside the description text, not in a feed field.
type Upwork struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var upworkTerms = []string{
	"virtual assistant", "customer service", "data entry",
	"bookkeeper", "social media manager", "appointment setter",
	"transcription", "chat support",
}

var reUpworkBudget = regexp.MustCompile(`Budget[^$]*(\$[\d,]+(?:\.\d+)?)`)

func NewUpwork(client *Client, logger *zap.Logger) *Upwork {
	return &Upwork{client: client, logger: logger, baseURL: "https://www.upwork.com"}
}

func (a *Upwork) Name() string { return "Upwork" }

func (a *Upwork) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range upworkTerms {
		feedURL := fmt.Sprintf("%s/ab/feed/jobs/rss?q=%s&sort=recency",
			a.baseURL, strings.ReplaceAll(term, " ", "+"))

		feed, err := a.client.fetchFeed(ctx, feedURL, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("upwork feed failed", zap.String("term", term), zap.Error(err))
			continue
		}

		for _, item := range feed.Items {
			title := clean(strings.TrimSuffix(item.Title, " - Upwork"))
			link := strings.TrimSpace(item.Link)
			if title == "" || link == "" {
				continue
			}

			desc := itemDescription(item)
			salary := ""
			if m := reUpworkBudget.FindStringSubmatch(desc); m != nil {
				salary = m[1]
			}

			jobs = append(jobs, newJob(title, "Upwork Client", link, a.Name(), "Remote", salary, desc))
		}

		pause(ctx, 300*time.Millisecond)
	}

	return jobs, nil
}
