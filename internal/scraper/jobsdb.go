package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// JobsDB runs on the same SEEK platform as JobStreet, with the same
// structured-data-plus-Next.js layout.
type JobsDB struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var jobsDBPages = []string{
	"/jobs-in-call-centre",
	"/jobs-in-information-communication-technology",
	"/jobs-in-accounting",
}

func NewJobsDB(client *Client, logger *zap.Logger) *JobsDB {
	return &JobsDB{client: client, logger: logger, baseURL: "https://ph.jobsdb.com"}
}

func (a *JobsDB) Name() string { return "JobsDB" }

func (a *JobsDB) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, page := range jobsDBPages {
		doc, err := a.client.document(ctx, a.baseURL+page, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("jobsdb page failed", zap.String("page", page), zap.Error(err))
			continue
		}

		batch := a.fromJSONLD(doc)
		if len(batch) == 0 {
			batch = a.fromNextData(doc)
		}
		jobs = append(jobs, batch...)

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}

func (a *JobsDB) fromJSONLD(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
	}
	return jobs
}

func (a *JobsDB) fromNextData(doc *goquery.Document) []models.JobPosting {
	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if raw == "" {
		return nil
	}

	var data jobStreetNextData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	var jobs []models.JobPosting
	for _, j := range data.Props.PageProps.JobSearchResult.Jobs {
		link := absURL(a.baseURL, j.JobURL)
		if j.Title == "" || link == "" {
			continue
		}
		jobs = append(jobs, newJob(j.Title, j.Advertiser.Description, link, a.Name(), j.Location, j.Salary, ""))
	}
	return jobs
}
