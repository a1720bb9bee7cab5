package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(5*time.Second, zap.NewNop())
}

const indeedRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:source="https://ph.indeed.com/rss">
  <channel>
    <title>Indeed</title>
    <item>
      <title>Call Center Agent</title>
      <link>https://ph.indeed.com/viewjob?jk=abc123</link>
      <description>Answer inbound calls for a US telco account.</description>
      <source:company>Acme BPO</source:company>
      <source:city>Makati</source:city>
      <source:state>NCR</source:state>
      <source:salary>PHP 25,000 a month</source:salary>
    </item>
    <item>
      <title></title>
      <link>https://ph.indeed.com/viewjob?jk=empty</link>
    </item>
  </channel>
</rss>`

func TestIndeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rss" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(indeedRSS))
	}))
	defer srv.Close()

	a := NewIndeed(testClient(t), zap.NewNop())
	a.baseURL = srv.URL
	// one term keeps the test quick; the loop body is identical per term
	old := indeedSearches
	indeedSearches = []string{"call+center"}
	defer func() { indeedSearches = old }()

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (untitled item dropped)", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Call Center Agent" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Company != "Acme BPO" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Location != "Makati, NCR" {
		t.Errorf("location = %q", j.Location)
	}
	if j.Salary == nil || *j.Salary != "PHP 25,000 a month" {
		t.Errorf("salary = %v", j.Salary)
	}
	if j.Source != "Indeed PH" {
		t.Errorf("source = %q", j.Source)
	}
}

func TestIndeedBlockedReturnsPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewIndeed(testClient(t), zap.NewNop())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("blocked source must not error, got %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("got %d jobs, want 0", len(jobs))
	}
}

const remoteOKJSON = `[
  {"legal": "API terms of service"},
  {
    "position": "Customer Support Specialist",
    "company": "Remote Co",
    "url": "https://remoteok.com/jobs/1",
    "tags": ["customer support", "non-tech"],
    "description": "Help customers over chat and email.",
    "salary_min": 24000,
    "salary_max": 40000
  },
  {
    "position": "Blockchain Protocol Researcher",
    "company": "Chain Labs",
    "url": "https://remoteok.com/jobs/2",
    "tags": ["crypto"],
    "description": "Deep protocol research."
  }
]`

func TestRemoteOKFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing json accept header")
		}
		w.Write([]byte(remoteOKJSON))
	}))
	defer srv.Close()

	a := NewRemoteOK(testClient(t), zap.NewNop())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (legal notice and irrelevant job dropped)", len(jobs))
	}

	j := jobs[0]
	if j.Title != "Customer Support Specialist" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Salary == nil || *j.Salary != "$24000–$40000/yr" {
		t.Errorf("salary = %v", j.Salary)
	}
	if j.Location != "Remote (Worldwide)" {
		t.Errorf("location = %q", j.Location)
	}
}

const jobStreetHTML = `<!DOCTYPE html>
<html><head>
<script type="application/ld+json">
{
  "@type": "ItemList"
}
</script>
<script type="application/ld+json">
[
  {
    "@type": "JobPosting",
    "title": "Customer Service Representative",
    "url": "/job/12345",
    "hiringOrganization": {"@type": "Organization", "name": "Telco PH"},
    "jobLocation": {"address": {"addressLocality": "Quezon City"}},
    "baseSalary": {"currency": "PHP", "value": {"minValue": 18000, "maxValue": 25000}}
  },
  {
    "@type": "JobPosting",
    "title": "No Link Job"
  }
]
</script>
</head><body></body></html>`

func TestJobStreetFetchJSONLD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobStreetHTML))
	}))
	defer srv.Close()

	a := NewJobStreet(testClient(t), zap.NewNop())
	a.baseURL = srv.URL
	old := jobStreetPages
	jobStreetPages = []string{"/call-centre-jobs"}
	defer func() { jobStreetPages = old }()

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (linkless posting dropped)", len(jobs))
	}

	j := jobs[0]
	if j.Company != "Telco PH" {
		t.Errorf("company = %q", j.Company)
	}
	if j.Location != "Quezon City" {
		t.Errorf("location = %q", j.Location)
	}
	if j.Salary == nil || *j.Salary != "PHP 18000–25000" {
		t.Errorf("salary = %v", j.Salary)
	}
	if j.Link != srv.URL+"/job/12345" {
		t.Errorf("link = %q, not resolved against base", j.Link)
	}
}

const nextDataHTML = `<!DOCTYPE html>
<html><head>
<script id="__NEXT_DATA__" type="application/json">
{
  "props": {
    "pageProps": {
      "jobSearchResult": {
        "jobs": [
          {
            "title": "BPO Quality Analyst",
            "jobUrl": "/job/998",
            "advertiser": {"description": "Outsourcing Inc"},
            "location": "Cebu City",
            "salary": "PHP 30,000"
          }
        ]
      }
    }
  }
}
</script>
</head><body></body></html>`

func TestJobStreetFetchNextDataFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(nextDataHTML))
	}))
	defer srv.Close()

	a := NewJobStreet(testClient(t), zap.NewNop())
	a.baseURL = srv.URL
	old := jobStreetPages
	jobStreetPages = []string{"/call-centre-jobs"}
	defer func() { jobStreetPages = old }()

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 from __NEXT_DATA__", len(jobs))
	}
	if jobs[0].Company != "Outsourcing Inc" {
		t.Errorf("company = %q", jobs[0].Company)
	}
}

const telegramHTML = `<!DOCTYPE html>
<html><body>
<div class="tgme_widget_message" data-post="PHJobHunters/101">
  <div class="tgme_widget_message_text">🔥 HIRING: Call Center Agents - Makati site
Salary up to 28k, HS grads welcome. DM to apply.</div>
</div>
<div class="tgme_widget_message" data-post="PHJobHunters/102">
  <div class="tgme_widget_message_text">Good morning everyone! Have a great week.</div>
</div>
</body></html>`

func TestTelegramChannelsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(telegramHTML))
	}))
	defer srv.Close()

	a := NewTelegramChannels(testClient(t), zap.NewNop())
	a.baseURL = srv.URL
	old := telegramChannels
	telegramChannels = []string{"PHJobHunters"}
	defer func() { telegramChannels = old }()

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1 (chatter post dropped)", len(jobs))
	}

	j := jobs[0]
	if j.Link != srv.URL+"/PHJobHunters/101" {
		t.Errorf("link = %q", j.Link)
	}
	if j.Company != "@PHJobHunters" {
		t.Errorf("company = %q", j.Company)
	}
}

const telegramLabeledHTML = `<!DOCTYPE html>
<html><body>
<div class="tgme_widget_message" data-post="PHJobHunters/201">
  <div class="tgme_widget_message_text">HIRING: Virtual Assistant for US client
Company: Acme Outsourcing Inc.
Salary: PHP 30,000 per month
Send your CV via DM.</div>
</div>
</body></html>`

func TestTelegramChannelsLabeledLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(telegramLabeledHTML))
	}))
	defer srv.Close()

	a := NewTelegramChannels(testClient(t), zap.NewNop())
	a.baseURL = srv.URL
	old := telegramChannels
	telegramChannels = []string{"PHJobHunters"}
	defer func() { telegramChannels = old }()

	jobs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("got %d jobs, want 1", len(jobs))
	}

	j := jobs[0]
	if j.Company != "Acme Outsourcing Inc." {
		t.Errorf("company = %q, want the labeled value", j.Company)
	}
	if j.Salary == nil || *j.Salary != "PHP 30,000 per month" {
		t.Errorf("salary = %v, want the labeled value", j.Salary)
	}
}

func TestPostTitleTruncatesOnRuneBoundary(t *testing.T) {
	// pad so the hundredth character lands inside a two-byte rune
	line := "Hiring call center staff " + strings.Repeat("ñ", 120)

	title := postTitle(line)
	if !utf8.ValidString(title) {
		t.Fatalf("title is not valid UTF-8: %q", title)
	}
	if n := utf8.RuneCountInString(title); n != 100 {
		t.Errorf("title has %d runes, want 100", n)
	}
	if !strings.HasSuffix(title, "ñ") {
		t.Errorf("title ends mid-rune: %q", title[len(title)-4:])
	}
}

func TestClientBlockedStatuses(t *testing.T) {
	for _, status := range []int{403, 429, 999} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := testClient(t).get(context.Background(), srv.URL, nil)
		if err != ErrBlocked {
			t.Errorf("status %d: err = %v, want ErrBlocked", status, err)
		}
		srv.Close()
	}
}

func TestClientRotatesUserAgents(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	c := testClient(t)
	for i := 0; i < len(userAgents); i++ {
		if _, err := c.get(context.Background(), srv.URL, nil); err != nil {
			t.Fatalf("get: %v", err)
		}
	}

	distinct := make(map[string]bool)
	for _, ua := range agents {
		if ua == "" {
			t.Fatal("request without a user agent")
		}
		distinct[ua] = true
	}
	if len(distinct) < 2 {
		t.Errorf("user agent never rotated: %v", agents)
	}
}
