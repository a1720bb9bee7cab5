// Package classifier assigns a category to job postings by keyword matching.
//
// The keyword table is ordered: classification returns the first category
// whose keyword list matches, so the declaration order below is a tie-break
// that must stay stable for reproducible results across sources.
package classifier

import (
	"strings"

	"ph-jobfinder-bot/internal/models"
)

type categoryKeywords struct {
	category models.Category
	keywords []string
}

var keywordTable = []categoryKeywords{
	{models.CategoryCallCenterBPO, []string{
		"call center", "callcenter", "customer service", "customer support",
		"BPO", "CSR", "contact center", "helpdesk", "help desk",
		"inbound", "outbound", "collections agent", "telemarketer",
		"technical support", "tier 1", "tier 2", "voice agent",
		"non-voice", "chat support", "email support",
	}},
	{models.CategoryVirtualAssistant, []string{
		"virtual assistant", "VA", "admin assistant", "administrative assistant",
		"data entry", "online assistant", "remote assistant", "executive assistant",
		"social media manager", "content moderator", "online tutor",
		"bookkeeper", "transcriptionist", "research assistant",
		"project coordinator", "operations assistant",
	}},
	{models.CategoryPOGOGaming, []string{
		"POGO", "online gaming", "gaming operator", "casino dealer",
		"live dealer", "casino staff", "igaming", "i-gaming",
		"online casino", "gaming company", "esports", "game master",
		"casino host", "poker dealer",
	}},
	{models.CategoryRemoteWFH, []string{
		"work from home", "WFH", "remote work", "remote job", "telecommute",
		"home based", "homebased", "online job", "freelance", "flexible work",
		"hybrid work", "remote first",
	}},
	{models.CategoryAccountingFinance, []string{
		"accountant", "accounting", "bookkeeper", "bookkeeping", "auditor",
		"finance officer", "payroll", "CPA", "accounts payable",
		"accounts receivable", "financial analyst", "treasury",
	}},
	{models.CategoryITTech, []string{
		"software developer", "web developer", "programmer", "IT support",
		"network engineer", "system administrator", "devops", "QA engineer",
		"data analyst", "data scientist", "UI UX", "frontend", "backend",
		"full stack", "mobile developer", "cybersecurity",
	}},
	{models.CategorySalesMarketing, []string{
		"sales representative", "sales agent", "marketing officer",
		"digital marketing", "SEO specialist", "content writer",
		"copywriter", "graphic designer", "social media", "brand ambassador",
		"account manager", "business development",
	}},
	{models.CategoryHealthcare, []string{
		"nurse", "nursing", "caregiver", "medical", "healthcare",
		"pharmacist", "physical therapist", "radiologist", "midwife",
		"dental", "optometrist", "medical coder", "medical transcriptionist",
	}},
}

// Classify maps (title, description) to a category. The first category in
// declaration order with a substring match wins; General when nothing matches.
func Classify(title, description string) models.Category {
	text := strings.ToLower(title + " " + description)
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return entry.category
			}
		}
	}
	return models.CategoryGeneral
}

// IsRelevant reports whether any keyword from any category matches the
// posting text. Postings failing this check are discarded by the aggregator
// no matter which source produced them.
func IsRelevant(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, entry := range keywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}
