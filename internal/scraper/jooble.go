package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

// Jooble prefers the official JSON API when an API key is configured and
// falls back to scraping the PH search pages otherwise.
type Jooble struct {
	client  *Client
	logger  *zap.Logger
	apiKey  string
	apiURL  string
	siteURL string
}

var joobleTerms = []string{
	"call center", "virtual assistant", "BPO",
	"work from home", "POGO gaming", "customer service",
}

var reCompanyClass = regexp.MustCompile(`(?i)company|employer`)

func NewJooble(client *Client, apiKey string, logger *zap.Logger) *Jooble {
	return &Jooble{
		client:  client,
		logger:  logger,
		apiKey:  apiKey,
		apiURL:  "https://jooble.org/api",
		siteURL: "https://ph.jooble.org",
	}
}

func (a *Jooble) Name() string { return "Jooble" }

func (a *Jooble) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range joobleTerms {
		var (
			batch []models.JobPosting
			err   error
		)
		if a.apiKey != "" {
			batch, err = a.fetchAPI(ctx, term)
		} else {
			batch, err = a.fetchScrape(ctx, term)
		}

		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("jooble search failed", zap.String("term", term), zap.Error(err))
			continue
		}

		jobs = append(jobs, batch...)
		pause(ctx, 300*time.Millisecond)
	}

	return jobs, nil
}

type joobleAPIResponse struct {
	Jobs []struct {
		Title    string `json:"title"`
		Company  string `json:"company"`
		Link     string `json:"link"`
		Location string `json:"location"`
		Salary   string `json:"salary"`
		Snippet  string `json:"snippet"`
	} `json:"jobs"`
}

func (a *Jooble) fetchAPI(ctx context.Context, term string) ([]models.JobPosting, error) {
	payload, err := json.Marshal(map[string]any{
		"keywords": term,
		"location": "Philippines",
		"page":     1,
	})
	if err != nil {
		return nil, err
	}

	data, err := a.client.post(ctx, a.apiURL+"/"+a.apiKey, "application/json", bytes.NewReader(payload), nil)
	if err != nil {
		return nil, err
	}

	var resp joobleAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode jooble response: %w", err)
	}

	var jobs []models.JobPosting
	for _, j := range resp.Jobs {
		if j.Title == "" || j.Link == "" {
			continue
		}
		jobs = append(jobs, newJob(j.Title, j.Company, j.Link, a.Name(), j.Location, j.Salary, j.Snippet))
	}
	return jobs, nil
}

func (a *Jooble) fetchScrape(ctx context.Context, term string) ([]models.JobPosting, error) {
	searchURL := fmt.Sprintf("%s/SearchResult?ukw=%s", a.siteURL, strings.ReplaceAll(term, " ", "+"))

	doc, err := a.client.document(ctx, searchURL, nil)
	if err != nil {
		return nil, err
	}

	var jobs []models.JobPosting
	doc.Find("article").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 15 {
			return false
		}

		title := clean(card.Find("h2, h3").First().Text())
		if title == "" {
			return true
		}

		href, _ := card.Find("a[href]").First().Attr("href")
		link := absURL(a.siteURL, href)
		if link == "" {
			return true
		}

		company := findByClassPattern(card, reCompanyClass)
		jobs = append(jobs, newJob(title, company, link, a.Name(), "", "", ""))
		return true
	})

	return jobs, nil
}

// findByClassPattern returns the text of the first descendant whose class
// attribute matches the pattern. Last-resort extraction for boards with no
// structured markup.
func findByClassPattern(sel *goquery.Selection, pattern *regexp.Regexp) string {
	var out string
	sel.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if pattern.MatchString(class) {
			out = clean(s.Text())
			return false
		}
		return true
	})
	return out
}
