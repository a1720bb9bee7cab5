package scraper

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/classifier"
	"ph-jobfinder-bot/internal/models"
)

// TelegramChannels reads the public t.me/s/ web previews of PH job
// channels. Posts are free text, so the first line that looks like a
// heading becomes the title and the post permalink becomes the job link.
type TelegramChannels struct {
	client  *Client
	logger  *zap.Logger
	baseURL string
}

var telegramChannels = []string{
	"PHJobHunters", "PHJobVacancy", "jobshiringph",
	"PHJobsOnline", "bpojobsph", "virtualassistantph", "pogoworkph",
}

// labeled lines inside post text, e.g. "Company: Acme" or "Salary: PHP 25k"
var (
	reTGCompany = regexp.MustCompile(`(?i)(?:company|employer|client):\s*(.+?)(?:\n|$)`)
	reTGSalary  = regexp.MustCompile(`(?i)(?:salary|pay|rate|compensation):\s*(.+?)(?:\n|$)`)
)

func NewTelegramChannels(client *Client, logger *zap.Logger) *TelegramChannels {
	return &TelegramChannels{client: client, logger: logger, baseURL: "https://t.me"}
}

func (a *TelegramChannels) Name() string { return "Telegram Channels" }

func (a *TelegramChannels) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting

	for _, channel := range telegramChannels {
		doc, err := a.client.document(ctx, a.baseURL+"/s/"+channel, nil)
		if err != nil {
			if errors.Is(err, ErrBlocked) {
				return jobs, nil
			}
			a.logger.Debug("telegram channel failed", zap.String("channel", channel), zap.Error(err))
			continue
		}

		doc.Find("div.tgme_widget_message").EachWithBreak(func(i int, msg *goquery.Selection) bool {
			if i >= 20 {
				return false
			}

			text := msg.Find("div.tgme_widget_message_text").First().Text()
			title := postTitle(text)
			if title == "" || !classifier.IsRelevant(title, text) {
				return true
			}

			post, _ := msg.Attr("data-post")
			if post == "" {
				return true
			}
			link := a.baseURL + "/" + post

			company := "@" + channel
			if m := reTGCompany.FindStringSubmatch(text); m != nil {
				if v := capRunes(clean(m[1]), 80); v != "" {
					company = v
				}
			}
			salary := ""
			if m := reTGSalary.FindStringSubmatch(text); m != nil {
				salary = capRunes(clean(m[1]), 60)
			}

			jobs = append(jobs, newJob(title, company, link, a.Name(), "", salary, text))
			return true
		})

		pause(ctx, 500*time.Millisecond)
	}

	return jobs, nil
}

// postTitle picks a heading out of free-form post text: the first
// non-empty line, trimmed of leading emoji and decoration, capped so a
// wall-of-text post does not become a wall-of-text title.
func postTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimFunc(line, func(r rune) bool {
			return r > 0x2000 || r == '*' || r == '#' || r == '-' || r == ' '
		})
		line = clean(line)
		if len(line) < 10 {
			continue
		}
		return capRunes(line, 100)
	}
	return ""
}

// capRunes truncates on a rune boundary so a multibyte character at the
// cap never turns into invalid UTF-8.
func capRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
