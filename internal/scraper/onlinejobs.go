package scraper

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// OnlineJobs lists remote work aimed specifically at Filipino workers.
// Employers there post under handles rather than company names, so the
// company field defaults to a generic label.
type OnlineJobs struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

func NewOnlineJobs(client *Client, logger *zap.Logger) *OnlineJobs {
	return &OnlineJobs{client: client, logger: logger, baseURL: "https://www.onlinejobs.ph"}
}

func (a *OnlineJobs) Name() string { return "OnlineJobs.ph" }

func (a *OnlineJobs) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	doc, err := a.client.document(ctx, a.baseURL+"/jobseekers/jobsearch", nil)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			return nil, nil
		}
		return nil, err
	}

	jobs := a.fromJSONLD(doc)
	if len(jobs) == 0 {
		jobs = a.fromCards(doc)
	}
	return jobs, nil
}

func (a *OnlineJobs) fromJSONLD(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		company := j.Company
		if company == "" {
			company = "Remote Employer"
		}
		jobs = append(jobs, newJob(j.Title, company, absURL(a.baseURL, j.Link), a.Name(), "Philippines (Remote)", j.Salary, ""))
	}
	return jobs
}

func (a *OnlineJobs) fromCards(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	doc.Find("div.jobpost-cat-box").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 30 {
			return false
		}

		anchor := card.Find("a[href*='/jobseekers/job/']").First()
		title := clean(anchor.Text())
		if title == "" {
			title = clean(card.Find("h4").First().Text())
		}
		href, _ := anchor.Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" {
			return true
		}

		salary := clean(card.Find("dl dd").First().Text())
		jobs = append(jobs, newJob(title, "Remote Employer", link, a.Name(), "Philippines (Remote)", salary, ""))
		return true
	})
	return jobs
}
