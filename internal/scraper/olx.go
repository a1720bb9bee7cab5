package scraper

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/models"
)

// OLX carries a jobs section among its general classifieds. Its structured
// data sometimes tags listings as Product rather than JobPosting, so that
// type is accepted too and pushed through the keyword filter.
type OLX struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

func NewOLX(client *Client, logger *zap.Logger) *OLX {
	return &OLX{client: client, logger: logger, baseURL: "https://www.olx.ph"}
}

func (a *OLX) Name() string { return "OLX PH" }

func (a *OLX) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	doc, err := a.client.document(ctx, a.baseURL+"/jobs", nil)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			return nil, nil
		}
		return nil, err
	}

	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
	}
	jobs = append(jobs, a.fromProducts(doc)...)
	if len(jobs) > 0 {
		return jobs, nil
	}

	doc.Find("li[data-aut-id='itemBox']").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 25 {
			return false
		}

		anchor := card.Find("a[href]").First()
		title := clean(card.Find("span[data-aut-id='itemTitle']").Text())
		if title == "" {
			title = clean(anchor.Text())
		}
		href, _ := anchor.Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" || !classifier.IsRelevant(title, "") {
			return true
		}

		jobs = append(jobs, newJob(title, "", link, a.Name(), "", "", ""))
		return true
	})

	return jobs, nil
}

// fromProducts picks up listings published with @type Product instead of
// JobPosting. Only titles matching the keyword table survive.
func (a *OLX) fromProducts(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &obj); err != nil {
			return
		}
		if jsonStr(obj, "@type") != "Product" {
			return
		}

		title := jsonStr(obj, "name")
		link := jsonStr(obj, "url")
		if title == "" || link == "" || !classifier.IsRelevant(title, "") {
			return
		}
		jobs = append(jobs, newJob(title, "", absURL(a.baseURL, link), a.Name(), "", "", ""))
	})
	return jobs
}
