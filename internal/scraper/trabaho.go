package scraper

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// Trabaho is a small local board with inconsistent markup. Structured data
// first, generic card selectors second.
type Trabaho struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

func NewTrabaho(client *Client, logger *zap.Logger) *Trabaho {
	return &Trabaho{client: client, logger: logger, baseURL: "https://trabaho.ph"}
}

func (a *Trabaho) Name() string { return "Trabaho.ph" }

func (a *Trabaho) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	doc, err := a.client.document(ctx, a.baseURL+"/jobs", nil)
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

	doc.Find("div.job-listing, article.job").EachWithBreak(func(i int, card *goquery.Selection) bool {
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
