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

// JobStreet walks the category landing pages. The site ships schema.org
// JobPosting blocks on most pages; when those are missing the listing data
// still sits in the Next.js __NEXT_DATA__ payload.
type JobStreet struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var jobStreetPages = []string{
	"/call-centre-jobs",
	"/customer-service-jobs",
	"/virtual-assistant-jobs",
	"/work-from-home-jobs",
	"/accounting-jobs",
	"/information-technology-jobs",
	"/sales-jobs",
	"/healthcare-jobs",
}

func NewJobStreet(client *Client, logger *zap.Logger) *JobStreet {
	return &JobStreet{client: client, logger: logger, baseURL: "https://www.jobstreet.com.ph"}
}

func (a *JobStreet) Name() string { return "JobStreet" }

func (a *JobStreet) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, page := range jobStreetPages {
		doc, err := a.client.document(ctx, a.baseURL+page, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("jobstreet page failed", zap.String("page", page), zap.Error(err))
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

func (a *JobStreet) fromJSONLD(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
	}
	return jobs
}

type jobStreetNextData struct {
	Props struct {
		PageProps struct {
			JobSearchResult struct {
				Jobs []struct {
					Title     string `json:"title"`
					JobURL    string `json:"jobUrl"`
					Advertiser struct {
						Description string `json:"description"`
					} `json:"advertiser"`
					Location string `json:"location"`
					Salary   string `json:"salary"`
				} `json:"jobs"`
			} `json:"jobSearchResult"`
		} `json:"pageProps"`
	} `json:"props"`
}

func (a *JobStreet) fromNextData(doc *goquery.Document) []models.JobPosting {
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
