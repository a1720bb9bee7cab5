package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/models"
)

// Monster search results mix PH listings with regional ones, so titles go
// through the keyword filter before anything is kept.
type Monster struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var monsterTerms = []string{"call center", "customer service", "virtual assistant"}

func NewMonster(client *Client, logger *zap.Logger) *Monster {
	return &Monster{client: client, logger: logger, baseURL: "https://www.monster.com.ph"}
}

func (a *Monster) Name() string { return "Monster PH" }

func (a *Monster) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, term := range monsterTerms {
		searchURL := fmt.Sprintf("%s/srp/results?query=%s", a.baseURL, strings.ReplaceAll(term, " ", "+"))

		doc, err := a.client.document(ctx, searchURL, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("monster search failed", zap.String("term", term), zap.Error(err))
			continue
		}

		batch := a.fromJSONLD(doc)
		if len(batch) == 0 {
			batch = a.fromCards(doc)
		}
		jobs = append(jobs, batch...)

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}

func (a *Monster) fromJSONLD(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	for _, j := range extractJSONLD(doc) {
		if !classifier.IsRelevant(j.Title, "") {
			continue
		}
		jobs = append(jobs, newJob(j.Title, j.Company, absURL(a.baseURL, j.Link), a.Name(), j.Location, j.Salary, ""))
	}
	return jobs
}

func (a *Monster) fromCards(doc *goquery.Document) []models.JobPosting {
	var jobs []models.JobPosting
	doc.Find("div.card-apply-content, article.job-cardstyle").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= 20 {
			return false
		}

		anchor := card.Find("a[href]").First()
		title := clean(card.Find("h3").First().Text())
		if title == "" {
			title = clean(anchor.Text())
		}
		href, _ := anchor.Attr("href")
		link := absURL(a.baseURL, href)
		if title == "" || link == "" || !classifier.IsRelevant(title, "") {
			return true
		}

		company := findByClassPattern(card, reCompanyClass)
		jobs = append(jobs, newJob(title, company, link, a.Name(), "", "", ""))
		return true
	})
	return jobs
}
