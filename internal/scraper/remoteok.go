package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
)

// RemoteOK queries the public RemoteOK JSON API. No bot protection, one
// request per cycle. The first array element is a legal notice, not a job.
type RemoteOK struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

type remoteOKJob struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
}

func NewRemoteOK(client *Client, logger *zap.Logger) *RemoteOK {
	return &RemoteOK{client: client, logger: logger, baseURL: "https://remoteok.com"}
}

func (a *RemoteOK) Name() string { return "RemoteOK" }

func (a *RemoteOK) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	data, err := a.client.get(ctx, a.baseURL+"/api", map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("remoteok api: %w", err)
	}

	var items []remoteOKJob
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("remoteok api: %w", err)
	}

	var jobs []models.JobPosting
	for i, item := range items {
		if i == 0 {
			continue
		}
		if item.Position == "" || item.URL == "" {
			continue
		}

		desc := item.Description
		if len(desc) > 300 {
			desc = desc[:300]
		}
		tags := strings.Join(item.Tags, " ")

		// Most RemoteOK listings are not aimed at PH job seekers; keep only
		// the ones whose text matches the keyword table.
		if !classifier.IsRelevant(item.Position, tags+" "+desc) {
			continue
		}

		salary := ""
		switch {
		case item.SalaryMin > 0 && item.SalaryMax > 0:
			salary = fmt.Sprintf("$%d–$%d/yr", int64(item.SalaryMin), int64(item.SalaryMax))
		case item.SalaryMin > 0:
			salary = fmt.Sprintf("$%d+/yr", int64(item.SalaryMin))
		}

		jobs = append(jobs, newJob(item.Position, item.Company, item.URL, a.Name(), "Remote (Worldwide)", salary, desc))
	}

	return jobs, nil
}
