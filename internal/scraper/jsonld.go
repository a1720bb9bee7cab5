package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDJob is a schema.org JobPosting pulled out of an embedded
// application/ld+json block. Sites disagree wildly about which optional
// fields they fill in, so everything except the type tag is best-effort.
type jsonLDJob struct {
	Title    string
	Company  string
	Link     string
	Location string
	Salary   string
}

// document fetches a page and parses it with goquery.
func (c *Client) document(ctx context.Context, pageURL string, extra map[string]string) (*goquery.Document, error) {
	data, err := c.get(ctx, pageURL, extra)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", pageURL, err)
	}
	return doc, nil
}

// extractJSONLD walks every ld+json script in the document and returns all
// embedded JobPosting objects. Malformed blocks are skipped; structured data
// on job boards is frequently half-broken and one bad block must not cost
// the rest of the page.
func extractJSONLD(doc *goquery.Document) []jsonLDJob {
	var jobs []jsonLDJob

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return
		}

		items, ok := raw.([]any)
		if !ok {
			items = []any{raw}
		}

		for _, it := range items {
			obj, ok := it.(map[string]any)
			if !ok || jsonStr(obj, "@type") != "JobPosting" {
				continue
			}

			job := jsonLDJob{
				Title:    jsonStr(obj, "title"),
				Company:  jsonStr(jsonObj(obj, "hiringOrganization"), "name"),
				Link:     jsonStr(obj, "url"),
				Location: jsonLDLocation(obj),
				Salary:   jsonLDSalary(obj),
			}
			if job.Link == "" {
				job.Link = jsonStr(obj, "sameAs")
			}
			if job.Title != "" && job.Link != "" {
				jobs = append(jobs, job)
			}
		}
	})

	return jobs
}

func jsonLDLocation(obj map[string]any) string {
	loc := jsonObj(obj, "jobLocation")
	if loc == nil {
		return ""
	}
	return jsonStr(jsonObj(loc, "address"), "addressLocality")
}

// jsonLDSalary formats a baseSalary range as free text; no numeric
// normalization is attempted anywhere in the pipeline.
func jsonLDSalary(obj map[string]any) string {
	sal := jsonObj(obj, "baseSalary")
	if sal == nil {
		return ""
	}
	val := jsonObj(sal, "value")
	if val == nil {
		return ""
	}

	currency := jsonStr(sal, "currency")
	if currency == "" {
		currency = "PHP"
	}

	min, hasMin := jsonNum(val, "minValue")
	max, hasMax := jsonNum(val, "maxValue")
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s %d–%d", currency, int64(min), int64(max))
	case hasMin:
		return fmt.Sprintf("%s %d+", currency, int64(min))
	default:
		return ""
	}
}

func jsonObj(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	obj, _ := m[key].(map[string]any)
	return obj
}

func jsonStr(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func jsonNum(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	n, ok := m[key].(float64)
	return n, ok
}
