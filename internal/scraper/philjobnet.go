package scraper

import (
	"context"
	"errors"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/models"
)

// PhilJobNet reads the DOLE job board feeds. The feed descriptions are
// semi-structured text, so company and location come from labeled lines.
type PhilJobNet struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var (
	rePJNCompany  = regexp.MustCompile(`(?:Company|Employer):\s*(.+?)(?:\n|<|$)`)
	rePJNLocation = regexp.MustCompile(`(?:Location|Address|City):\s*(.+?)(?:\n|<|$)`)
)

func NewPhilJobNet(client *Client, logger *zap.Logger) *PhilJobNet {
	return &PhilJobNet{client: client, logger: logger, baseURL: "https://www.philjobnet.gov.ph"}
}

func (a *PhilJobNet) Name() string { return "PhilJobNet" }

func (a *PhilJobNet) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	feeds := []string{
		a.baseURL + "/rss/jobs",
		a.baseURL + "/rss/latest",
	}

	var jobs []models.JobPosting
	for _, feedURL := range feeds {
		feed, err := a.client.fetchFeed(ctx, feedURL, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("philjobnet feed failed", zap.String("url", feedURL), zap.Error(err))
			continue
		}

		items := feed.Items
		if len(items) > 40 {
			items = items[:40]
		}

		for _, item := range items {
			title := clean(item.Title)
			link := absURL(a.baseURL, item.Link)
			if title == "" || link == "" {
				continue
			}

			desc := itemDescription(item)
			if !classifier.IsRelevant(title, desc) {
				continue
			}

			company := ""
			location := ""
			if m := rePJNCompany.FindStringSubmatch(desc); m != nil {
				company = m[1]
			}
			if m := rePJNLocation.FindStringSubmatch(desc); m != nil {
				location = m[1]
			}

			jobs = append(jobs, newJob(title, company, link, a.Name(), location, "", desc))
		}
	}

	// feeds go quiet from time to time while the listing tables stay up
	if len(jobs) == 0 {
		return a.fetchTable(ctx)
	}

	return jobs, nil
}

func (a *PhilJobNet) fetchTable(ctx context.Context) ([]models.JobPosting, error) {
	doc, err := a.client.document(ctx, a.baseURL+"/job-vacancies", nil)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			return nil, nil
		}
		return nil, err
	}

	var jobs []models.JobPosting
	doc.Find("table tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= 40 {
			return false
		}

		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}

		anchor := row.Find("a[href]").First()
		title := clean(anchor.Text())
		if title == "" {
			title = clean(cells.Eq(0).Text())
		}
		href, _ := anchor.Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" || !classifier.IsRelevant(title, "") {
			return true
		}

		company := clean(cells.Eq(1).Text())
		location := ""
		if cells.Length() > 2 {
			location = clean(cells.Eq(2).Text())
		}

		jobs = append(jobs, newJob(title, company, link, a.Name(), location, "", ""))
		return true
	})

	return jobs, nil
}
