package classifier

import (
	"testing"

	"ph-jobfinder-bot/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		title, desc string
		want        models.Category
	}{
		{"Call Center Agent", "", models.CategoryCallCenterBPO},
		{"Virtual Assistant Needed", "", models.CategoryVirtualAssistant},
		{"Casino Dealer for Manila site", "", models.CategoryPOGOGaming},
		{"Flexible work arrangement", "telecommute ok", models.CategoryRemoteWFH},
		{"Junior Auditor", "", models.CategoryAccountingFinance},
		{"Backend Engineer", "", models.CategoryITTech},
		{"Copywriter (part time)", "", models.CategorySalesMarketing},
		{"Registered Nurse", "", models.CategoryHealthcare},
		{"Warehouse Staff", "forklift operator", models.CategoryGeneral},
		{"", "", models.CategoryGeneral},
	}

	for _, tc := range cases {
		if got := Classify(tc.title, tc.desc); got != tc.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tc.title, tc.desc, got, tc.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("Customer Support Specialist", "remote work possible")
	for i := 0; i < 50; i++ {
		if got := Classify("Customer Support Specialist", "remote work possible"); got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}

func TestClassify_TableOrderWins(t *testing.T) {
	// "customer service" (Call Center / BPO) and "work from home"
	// (Remote / WFH) both match; the earlier-declared category must win.
	got := Classify("Customer Service Rep", "work from home setup")
	if got != models.CategoryCallCenterBPO {
		t.Errorf("got %q, want %q", got, models.CategoryCallCenterBPO)
	}

	// "bookkeeper" appears under both Virtual Assistant and
	// Accounting / Finance; Virtual Assistant is declared first.
	got = Classify("Bookkeeper", "")
	if got != models.CategoryVirtualAssistant {
		t.Errorf("got %q, want %q", got, models.CategoryVirtualAssistant)
	}
}

func TestIsRelevant(t *testing.T) {
	if !IsRelevant("BPO hiring now", "") {
		t.Error("expected BPO title to be relevant")
	}
	if IsRelevant("Delivery rider wanted", "") {
		t.Error("expected unrelated title to be irrelevant")
	}
}

func TestIsRelevant_Monotonic(t *testing.T) {
	// Adding a description can only add matches, never remove them.
	titles := []string{"Call Center Agent", "nurse", "devops lead"}
	descs := []string{"", "some unrelated text", "lorem ipsum dolor"}
	for _, title := range titles {
		if !IsRelevant(title, "") {
			t.Fatalf("IsRelevant(%q, \"\") = false", title)
		}
		for _, desc := range descs {
			if !IsRelevant(title, desc) {
				t.Errorf("IsRelevant(%q, %q) = false, want true", title, desc)
			}
		}
	}
}
