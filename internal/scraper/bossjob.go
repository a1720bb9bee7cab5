package scraper

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// BossJob is one of the few boards here that fills in baseSalary on its
// structured data, so its postings usually arrive with a salary string.
type BossJob struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var bossJobPages = []string{
	"/jobs-hiring/customer-service-jobs",
	"/jobs-hiring/bpo-jobs",
	"/jobs-hiring/work-from-home-jobs",
}

func NewBossJob(client *Client, logger *zap.Logger) *BossJob {
	return &BossJob{client: client, logger: logger, baseURL: "https://bossjob.ph"}
}

func (a *BossJob) Name() string { return "BossJob" }

func (a *BossJob) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, page := range bossJobPages {
		doc, err := a.client.document(ctx, a.baseURL+page, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("bossjob page failed", zap.String("page", page), zap.Error(err))
			continue
		}

		for _, j := range extractJSONLD(doc) {
			jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
		}

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}
