package scraper

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ph-jobfinder-bot/internal/models"
)

type fakeAdapter struct {
	name  string
	jobs  []models.JobPosting
	err   error
	panic bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]models.JobPosting, error) {
	if f.panic {
		panic("adapter exploded")
	}
	return f.jobs, f.err
}

func job(title, link string) models.JobPosting {
	return newJob(title, "Acme BPO", link, "Test", "Manila", "", "")
}

func TestScrapeAllMergesAllAdapters(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "a", jobs: []models.JobPosting{job("Call Center Agent", "https://a.test/1")}},
		&fakeAdapter{name: "b", jobs: []models.JobPosting{job("Virtual Assistant", "https://b.test/1")}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2", len(got))
	}
}

func TestScrapeAllDeduplicatesByLink(t *testing.T) {
	dup := job("Call Center Agent", "https://jobs.test/same")
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "a", jobs: []models.JobPosting{dup}},
		&fakeAdapter{name: "b", jobs: []models.JobPosting{dup, job("BPO Team Lead", "https://jobs.test/other")}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2 after dedup", len(got))
	}

	seen := make(map[string]int)
	for _, j := range got {
		seen[j.Link]++
	}
	if seen["https://jobs.test/same"] != 1 {
		t.Errorf("duplicate link appeared %d times", seen["https://jobs.test/same"])
	}
}

func TestScrapeAllIsolatesFailures(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "broken", err: errors.New("connection refused")},
		&fakeAdapter{name: "panicky", panic: true},
		&fakeAdapter{name: "ok", jobs: []models.JobPosting{job("Customer Service Rep", "https://ok.test/1")}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d jobs, want 1 from the healthy adapter", len(got))
	}
	if got[0].Link != "https://ok.test/1" {
		t.Errorf("unexpected job survived: %+v", got[0])
	}
}

func TestScrapeAllKeepsPartialsFromFailedAdapter(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{
			name: "half",
			jobs: []models.JobPosting{job("Call Center Agent", "https://half.test/1")},
			err:  errors.New("second page timed out"),
		},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d jobs, want the partial result kept", len(got))
	}
}

func TestScrapeAllDropsIrrelevantTitles(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "mixed", jobs: []models.JobPosting{
			job("Call Center Agent", "https://m.test/1"),
			job("Forklift Operator", "https://m.test/2"),
		}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d jobs, want 1 relevant", len(got))
	}
	if got[0].Title != "Call Center Agent" {
		t.Errorf("kept the wrong job: %q", got[0].Title)
	}
}

func TestScrapeAllDropsEmptyLinks(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "a", jobs: []models.JobPosting{
			newJob("Call Center Agent", "Acme", "", "Test", "", "", ""),
			job("BPO Trainer", "https://a.test/1"),
		}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 1 {
		t.Fatalf("got %d jobs, want 1", len(got))
	}
}

func TestScrapeAllEndToEndScenario(t *testing.T) {
	s := NewWithAdapters([]Adapter{
		&fakeAdapter{name: "one", jobs: []models.JobPosting{job("Call Center Agent", "https://jobs.test/a")}},
		&fakeAdapter{name: "two", jobs: []models.JobPosting{job("Call Center Agent (dup)", "https://jobs.test/a")}},
		&fakeAdapter{name: "three", jobs: []models.JobPosting{job("Virtual Assistant Needed", "https://jobs.test/b")}},
	}, zap.NewNop())

	got := s.ScrapeAll(context.Background())
	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2 unique", len(got))
	}

	byLink := make(map[string]models.JobPosting, len(got))
	for _, j := range got {
		byLink[j.Link] = j
	}
	if byLink["https://jobs.test/a"].Category != models.CategoryCallCenterBPO {
		t.Errorf("job a category = %q", byLink["https://jobs.test/a"].Category)
	}
	if byLink["https://jobs.test/b"].Category != models.CategoryVirtualAssistant {
		t.Errorf("job b category = %q", byLink["https://jobs.test/b"].Category)
	}
}

func TestNewJobDefaults(t *testing.T) {
	j := newJob("  Call Center   Agent ", "", "https://x.test/1 ", "Test", "", "  ", "")

	if j.Title != "Call Center Agent" {
		t.Errorf("title = %q", j.Title)
	}
	if j.Company != models.CompanyNotSpecified {
		t.Errorf("company = %q, want default", j.Company)
	}
	if j.Location != models.DefaultLocation {
		t.Errorf("location = %q, want default", j.Location)
	}
	if j.Link != "https://x.test/1" {
		t.Errorf("link = %q, not trimmed", j.Link)
	}
	if j.Salary != nil {
		t.Errorf("salary = %v, want nil for blank input", *j.Salary)
	}
	if j.Category != models.CategoryCallCenterBPO {
		t.Errorf("category = %q", j.Category)
	}
}

func TestNewJobKeepsSalary(t *testing.T) {
	j := newJob("Virtual Assistant", "Acme", "https://x.test/2", "Test", "Cebu", " PHP 25000 ", "")

	if j.Salary == nil || *j.Salary != "PHP 25000" {
		t.Fatalf("salary = %v, want cleaned PHP 25000", j.Salary)
	}
}

func TestAbsURL(t *testing.T) {
	cases := []struct {
		base, href, want string
	}{
		{"https://ph.example.com", "/job/123", "https://ph.example.com/job/123"},
		{"https://ph.example.com", "https://other.com/x", "https://other.com/x"},
		{"https://ph.example.com", "", ""},
		{"https://ph.example.com/search", "job/5", "https://ph.example.com/job/5"},
	}

	for _, tc := range cases {
		if got := absURL(tc.base, tc.href); got != tc.want {
			t.Errorf("absURL(%q, %q) = %q, want %q", tc.base, tc.href, got, tc.want)
		}
	}
}
