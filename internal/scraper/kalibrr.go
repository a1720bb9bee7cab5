package scraper

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// Kalibrr renders listings client-side, but its category pages embed full
// schema.org JobPosting data for crawlers. That structured block is the
// only thing worth reading here.
type Kalibrr struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var kalibrrPages = []string{
	"/home/te/customer-service",
	"/home/te/it-and-software",
	"/home/te/sales-and-marketing",
	"/home/te/accounting-and-finance",
}

func NewKalibrr(client *Client, logger *zap.Logger) *Kalibrr {
	return &Kalibrr{client: client, logger: logger, baseURL: "https://www.kalibrr.com"}
}

func (a *Kalibrr) Name() string { return "Kalibrr" }

func (a *Kalibrr) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, page := range kalibrrPages {
		doc, err := a.client.document(ctx, a.baseURL+page, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("kalibrr page failed", zap.String("page", page), zap.Error(err))
			continue
		}

		for _, j := range extractJSONLD(doc) {
			jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
		}

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}
