package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// GoogleJobs queries the Google Jobs vertical through SerpAPI. Without a
// key the adapter is a no-op rather than an error, so the rest of the
// pipeline keeps its source count stable.
type GoogleJobs struct {
	client  *Client
	logger  *zap.Logger
	apiKey  string
	baseURL string
}

var googleJobsTerms = []string{
	"call center Philippines", "virtual assistant Philippines",
	"work from home Philippines",
}

func NewGoogleJobs(client *Client, apiKey string, logger *zap.Logger) *GoogleJobs {
	return &GoogleJobs{client: client, logger: logger, apiKey: apiKey, baseURL: "https://serpapi.com"}
}

func (a *GoogleJobs) Name() string { return "Google Jobs" }

type serpAPIResponse struct {
	JobsResults []struct {
		Title       string `json:"title"`
		CompanyName string `json:"company_name"`
		Location    string `json:"location"`
		Description string `json:"description"`
		ShareLink   string `json:"share_link"`
		ApplyOptions []struct {
			Link string `json:"link"`
		} `json:"apply_options"`
		DetectedExtensions struct {
			Salary string `json:"salary"`
		} `json:"detected_extensions"`
	} `json:"jobs_results"`
}

func (a *GoogleJobs) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	if a.apiKey == "" {
		a.logger.Debug("google jobs skipped, no serpapi key")
		return nil, nil
	}

	var jobs []models.JobPosting
	for _, term := range googleJobsTerms {
		q := url.Values{}
		q.Set("engine", "google_jobs")
		q.Set("q", term)
		q.Set("location", "Philippines")
		q.Set("api_key", a.apiKey)

		data, err := a.client.get(ctx, a.baseURL+"/search?"+q.Encode(), nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("serpapi search failed", zap.String("term", term), zap.Error(err))
			continue
		}

		var resp serpAPIResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			a.logger.Debug("serpapi decode failed", zap.String("term", term), zap.Error(err))
			continue
		}

		for _, r := range resp.JobsResults {
			link := r.ShareLink
			if link == "" && len(r.ApplyOptions) > 0 {
				link = r.ApplyOptions[0].Link
			}
			if r.Title == "" || link == "" {
				continue
			}

			desc := r.Description
			if len(desc) > 300 {
				desc = desc[:300]
			}

			jobs = append(jobs, newJob(r.Title, r.CompanyName, link, a.Name(), r.Location, r.DetectedExtensions.Salary, desc))
		}

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}
