package scraper

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// Glassdoor blocks most automated traffic outright. The adapter sends a
// Referer to look like in-site navigation and gives up for the cycle as
// soon as a block shows up.
type Glassdoor struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var glassdoorPages = []string{
	"/Job/philippines-call-center-jobs-SRCH_IL.0,11_IN204_KO12,23.htm",
	"/Job/philippines-virtual-assistant-jobs-SRCH_IL.0,11_IN204_KO12,29.htm",
	"/Job/philippines-bpo-jobs-SRCH_IL.0,11_IN204_KO12,15.htm",
}

func NewGlassdoor(client *Client, logger *zap.Logger) *Glassdoor {
	return &Glassdoor{client: client, logger: logger, baseURL: "https://www.glassdoor.com"}
}

func (a *Glassdoor) Name() string { return "Glassdoor" }

func (a *Glassdoor) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	headers := map[string]string{"Referer": a.baseURL + "/Job/index.htm"}

	var jobs []models.JobPosting
	for _, page := range glassdoorPages {
		doc, err := a.client.document(ctx, a.baseURL+page, headers)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("glassdoor page failed", zap.String("page", page), zap.Error(err))
			continue
		}

		for _, j := range extractJSONLD(doc) {
			jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
		}

		pause(ctx, time.Second)
	}

	return jobs, nil
}
