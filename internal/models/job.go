package models

import "time"

// Category is the fixed set of job classifications. A posting's category is
// always assigned by the keyword classifier, never taken from the source.
type Category string

const (
	CategoryCallCenterBPO     Category = "Call Center / BPO"
	CategoryVirtualAssistant  Category = "Virtual Assistant"
	CategoryPOGOGaming        Category = "POGO / Online Gaming"
	CategoryRemoteWFH         Category = "Remote / WFH"
	CategoryAccountingFinance Category = "Accounting / Finance"
	CategoryITTech            Category = "IT / Tech"
	CategorySalesMarketing    Category = "Sales / Marketing"
	CategoryHealthcare        Category = "Healthcare"
	CategoryGeneral           Category = "General"
)

// Categories lists every category except General, in the order the
// classifier checks them. The order is load-bearing: when a posting matches
// keywords from several categories, the earliest declared one wins.
func Categories() []Category {
	return []Category{
		CategoryCallCenterBPO,
		CategoryVirtualAssistant,
		CategoryPOGOGaming,
		CategoryRemoteWFH,
		CategoryAccountingFinance,
		CategoryITTech,
		CategorySalesMarketing,
		CategoryHealthcare,
	}
}

// CompanyNotSpecified is the sentinel for sources that omit the employer.
const CompanyNotSpecified = "Not specified"

// DefaultLocation is assumed when a source reports no location.
const DefaultLocation = "Philippines"

// JobPosting is a normalized job listing from any source. Link is the
// canonical identity: the store enforces global uniqueness on it.
type JobPosting struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Company   string    `db:"company"`
	Link      string    `db:"link"`
	Category  Category  `db:"category"`
	Location  string    `db:"location"`
	Salary    *string   `db:"salary"`
	Source    string    `db:"source"`
	DateFound time.Time `db:"date_found"`
}

var categoryIcons = map[Category]string{
	CategoryCallCenterBPO:     "📞",
	CategoryVirtualAssistant:  "💻",
	CategoryPOGOGaming:        "🎰",
	CategoryRemoteWFH:         "🏠",
	CategoryAccountingFinance: "💰",
	CategoryITTech:            "🖥️",
	CategorySalesMarketing:    "📈",
	CategoryHealthcare:        "🏥",
	CategoryGeneral:           "💼",
}

// Icon returns the display emoji for the category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "💼"
}
