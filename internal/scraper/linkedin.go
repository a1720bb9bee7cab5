package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// LinkedIn scrapes the public guest search pages. These are aggressively
// rate limited, so the adapter sends browser-like client hint headers,
// waits two seconds between searches and treats a block on one search as
// the end of the run.
type LinkedIn struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var linkedInSearches = []string{
	"call center", "virtual assistant", "BPO", "work from home",
}

func NewLinkedIn(client *Client, logger *zap.Logger) *LinkedIn {
	return &LinkedIn{client: client, logger: logger, baseURL: "https://www.linkedin.com"}
}

func (a *LinkedIn) Name() string { return "LinkedIn" }

func (a *LinkedIn) headers() map[string]string {
	return map[string]string{
		"Referer":          a.baseURL + "/jobs",
		"Sec-Ch-Ua":        `"Chromium";v="122", "Not(A:Brand";v="24"`,
		"Sec-Ch-Ua-Mobile": "?0",
	}
}

func (a *LinkedIn) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range linkedInSearches {
		searchURL := fmt.Sprintf("%s/jobs/search?keywords=%s&location=Philippines&sortBy=DD",
			a.baseURL, strings.ReplaceAll(term, " ", "%20"))

		doc, err := a.client.document(ctx, searchURL, a.headers())
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("linkedin search failed", zap.String("term", term), zap.Error(err))
			continue
		}

		batch := a.fromJSONLD(doc)
		if len(batch) == 0 {
			batch = a.fromCards(doc)
		}
		jobs = append(jobs, batch...)

		pause(ctx, 2*time.Second)
	}

	return jobs, nil
}

func (a *LinkedIn) fromJSONLD(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		jobs = append(jobs, newJob(j.Title, j.Company, j.Link, a.Name(), j.Location, j.Salary, ""))
	}
	return jobs
}

func (a *LinkedIn) fromCards(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	doc.Find("div.base-card").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 25 {
			return false
		}

		title := clean(card.Find("h3.base-search-card__title").Text())
		href, _ := card.Find("a.base-card__full-link").Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" {
			return true
		}

		company := clean(card.Find("h4.base-search-card__subtitle").Text())
		location := clean(card.Find("span.job-search-card__location").Text())

		jobs = append(jobs, newJob(title, company, link, a.Name(), location, "", ""))
		return true
	})
	return jobs
}
