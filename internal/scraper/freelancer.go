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

// Freelancer exposes search RSS feeds similar to Upwork's, with project
// budgets in the description.
type Freelancer struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var freelancerTerms = []string{
	"virtual assistant", "data entry", "customer support",
	"transcription", "admin assistant",
}

var reFreelancerBudget = regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$[\d,]+)?`)

func NewFreelancer(client *Client, logger *zap.Logger) *Freelancer {
	return &Freelancer{client: client, logger: logger, baseURL: "https://www.freelancer.com"}
}

func (a *Freelancer) Name() string { return "Freelancer" }

func (a *Freelancer) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range freelancerTerms {
		feedURL := fmt.Sprintf("%s/rss.xml?keyword=%s", a.baseURL, strings.ReplaceAll(term, " ", "+"))

		feed, err := a.client.fetchFeed(ctx, feedURL, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("freelancer feed failed", zap.String("term", term), zap.Error(err))
			continue
		}

		for _, item := range feed.Items {
			title := clean(item.Title)
			link := strings.TrimSpace(item.Link)
			if title == "" || link == "" {
				continue
			}

			desc := itemDescription(item)
			salary := reFreelancerBudget.FindString(desc)

			jobs = append(jobs, newJob(title, "Freelancer Client", link, a.Name(), "Remote", salary, desc))
		}

		pause(ctx, 300*time.Millisecond)
	}

	return jobs, nil
}
