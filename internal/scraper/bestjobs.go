package scraper

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// BestJobs is a small PH board. Structured data when present, card
// scraping as fallback.
type BestJobs struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

func NewBestJobs(client *Client, logger *zap.Logger) *BestJobs {
	return &BestJobs{client: client, logger: logger, baseURL: "https://www.bestjobs.ph"}
}

func (a *BestJobs) Name() string { return "BestJobs" }

func (a *BestJobs) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	doc, err := a.client.document(ctx, a.baseURL+"/en/jobs", nil)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			return nil, nil
		}
		return nil, err
	}

	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
	}
	if len(jobs) > 0 {
		return jobs, nil
	}

	doc.Find("div.job-item, article").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 25 {
			return false
		}

		anchor := card.Find("a[href]").First()
		title := clean(card.Find("h2, h3").First().Text())
		if title == "" {
			title = clean(anchor.Text())
		}
		href, _ := anchor.Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" {
			return true
		}

		company := findByClassPattern(card, reCompanyClass)
		jobs = append(jobs, newJob(title, company, link, a.Name(), "", "", ""))
		return true
	})

	return jobs, nil
}
