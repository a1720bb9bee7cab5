package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
)

// Indeed scrapes the Indeed PH RSS feed, one request per search term.
// The feed carries company, city/state and salary in a namespaced
// extension ("source"), not in the standard RSS elements.
type Indeed struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var indeedSearches = []string{
	"call+center", "BPO+customer+service", "virtual+assistant",
	"work+from+home+Philippines", "POGO+gaming",
	"accounting+Philippines", "IT+support+Philippines",
	"sales+representative+Philippines", "nurse+Philippines",
	"data+entry+Philippines",
}

func NewIndeed(client *Client, logger *zap.Logger) *Indeed {
	return &Indeed{client: client, logger: logger, baseURL: "https://ph.indeed.com"}
}

func (a *Indeed) Name() string { return "Indeed PH" }

func (a *Indeed) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range indeedSearches {
		feedURL := fmt.Sprintf("%s/rss?q=%s&l=Philippines&sort=date&limit=25", a.baseURL, term)

		feed, err := a.client.fetchFeed(ctx, feedURL, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("indeed search failed",
				zap.String("term", term),
				zap.Error(err),
			)
			continue
		}

		for _, item := range feed.Items {
			title := strings.TrimSpace(item.Title)
			link := strings.TrimSpace(item.Link)
			if title == "" || link == "" {
				continue
			}

			company := itemExtension(item, "source", "company")
			city := itemExtension(item, "source", "city")
			state := itemExtension(item, "source", "state")
			location := joinNonEmpty(", ", city, state)
			salary := itemExtension(item, "source", "salary")

			jobs = append(jobs, newJob(title, company, link, a.Name(), location, salary, itemDescription(item)))
		}

		pause(ctx, 300*time.Millisecond)
	}

	return jobs, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
