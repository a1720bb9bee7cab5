package utils

import (
	"fmt"
	"strings"

	"ph-jobfinder-bot/internal/models"
	"ph-jobfinder-bot/internal/storage/postgres"
	"ph-jobfinder-bot/internal/storage/redis"
)

// FormatJob renders one posting as a Telegram message card.
func FormatJob(job *models.JobPosting) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s *%s*\n\n", job.Category.Icon(), EscapeMarkdown(job.Title)))
	sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(job.Company)))
	sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(job.Location)))

	if job.Salary != nil {
		sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", EscapeMarkdown(*job.Salary)))
	}

	sb.WriteString(fmt.Sprintf("🗂 *Category:* %s\n", EscapeMarkdown(string(job.Category))))
	sb.WriteString(fmt.Sprintf("🌐 *Source:* %s\n", EscapeMarkdown(job.Source)))
	sb.WriteString(fmt.Sprintf("\n🔗 [Apply here](%s)", escapeLinkURL(job.Link)))

	return sb.String()
}

// FormatDigest renders a batch of postings as one compact message; shown
// count may be smaller than total when the batch was capped.
func FormatDigest(jobs []models.JobPosting, total int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("💼 *%d new job(s) found\\!*\n\n", total))

	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("%d\\. %s *%s*\n", i+1, job.Category.Icon(), EscapeMarkdown(job.Title)))
		sb.WriteString(fmt.Sprintf("   🏢 %s · %s\n", EscapeMarkdown(job.Company), EscapeMarkdown(job.Location)))
		if job.Salary != nil {
			sb.WriteString(fmt.Sprintf("   💰 %s\n", EscapeMarkdown(*job.Salary)))
		}
		sb.WriteString(fmt.Sprintf("   🔗 [Apply](%s)\n\n", escapeLinkURL(job.Link)))
	}

	if len(jobs) < total {
		sb.WriteString(fmt.Sprintf("_\\.\\.\\.and %d more\\. Use /jobs to see the latest\\._", total-len(jobs)))
	}

	return sb.String()
}

func FormatJobsList(jobs []models.JobPosting, filter string) string {
	if len(jobs) == 0 {
		if filter == models.FilterAll {
			return "😔 *No jobs found yet*\n\nCheck back soon, new listings arrive every hour\\."
		}
		return fmt.Sprintf("😔 *No %s jobs found yet*\n\nTry /filter to pick another category\\.", EscapeMarkdown(filter))
	}

	var sb strings.Builder
	if filter == models.FilterAll {
		sb.WriteString(fmt.Sprintf("📋 *Latest %d jobs:*\n\n", len(jobs)))
	} else {
		sb.WriteString(fmt.Sprintf("📋 *Latest %s jobs:*\n\n", EscapeMarkdown(filter)))
	}

	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("*%d\\. %s %s*\n", i+1, job.Category.Icon(), EscapeMarkdown(job.Title)))
		sb.WriteString(fmt.Sprintf("   🏢 %s\n", EscapeMarkdown(job.Company)))
		sb.WriteString(fmt.Sprintf("   📍 %s\n", EscapeMarkdown(job.Location)))
		if job.Salary != nil {
			sb.WriteString(fmt.Sprintf("   💰 %s\n", EscapeMarkdown(*job.Salary)))
		}
		sb.WriteString(fmt.Sprintf("   🔗 [Apply](%s)\n\n", escapeLinkURL(job.Link)))
	}

	return sb.String()
}

// GroupSafetyFooter is appended to group announcements. Job-hunting groups
// here attract recruitment scams, so every digest carries the reminder.
func GroupSafetyFooter() string {
	return `⚠️ _Never pay any "processing fee" to apply\. Legit employers do not ask for money\._`
}

func FormatWelcome(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi *%s*\!

I collect job openings across the Philippines from 19 job boards and channels and send you the new ones\.

*What I can do:*
• Find call center, BPO, VA, POGO, remote and other jobs
• Notify you when new jobs are posted
• Filter notifications by category

*Commands:*
/jobs \- latest job listings
/subscribe \- turn on notifications
/filter \- pick a job category
/help \- full command list

You are subscribed to *all categories* by default\. Use /filter to narrow it down\.`, EscapeMarkdown(name))
}

func FormatHelp() string {
	return `*📖 Help*

*Commands:*

/start \- register and show the menu
/jobs \- latest job listings
/subscribe \- turn on job notifications
/unsubscribe \- turn off job notifications
/filter \- choose a category to follow
/status \- your subscription status
/stats \- bot statistics
/privacy \- what data is stored
/deletedata \- erase your data
/help \- this message

*Categories:*
📞 Call Center / BPO
💻 Virtual Assistant
🎰 POGO / Online Gaming
🏠 Remote / WFH
📊 Accounting / Finance
🖥 IT / Tech
📈 Sales / Marketing
⚕️ Healthcare

New listings are checked every hour\.`
}

func FormatPrivacy() string {
	return `*🔒 Privacy*

The bot stores only:
• Your Telegram user ID
• Your first name as shown by Telegram
• Your subscription status and category filter

No messages, phone numbers or contacts are stored\. Job listings are public data from the source sites\.

Use /deletedata to erase everything the bot knows about you\.`
}

func FormatStatus(sub *models.Subscriber) string {
	var sb strings.Builder

	sb.WriteString("*⚙️ Your status*\n\n")

	status := "🔕 Not subscribed"
	if sub.Subscribed {
		status = "🔔 Subscribed"
	}
	sb.WriteString(fmt.Sprintf("*Notifications:* %s\n", status))
	sb.WriteString(fmt.Sprintf("*Category filter:* %s\n", EscapeMarkdown(sub.Filters)))
	sb.WriteString(fmt.Sprintf("*Member since:* %s\n", sub.JoinedAt.Format("02 Jan 2006")))

	return sb.String()
}

func FormatStats(stats *redis.Stats, sources []postgres.SourceCount) string {
	var sb strings.Builder

	sb.WriteString("*📊 Bot statistics*\n\n")
	sb.WriteString(fmt.Sprintf("*Total jobs:* %d\n", stats.TotalJobs))
	sb.WriteString(fmt.Sprintf("*Found today:* %d\n", stats.JobsToday))
	sb.WriteString(fmt.Sprintf("*Users:* %d\n", stats.Users))
	sb.WriteString(fmt.Sprintf("*Subscribed:* %d\n", stats.Subscribed))

	if len(sources) > 0 {
		sb.WriteString("\n*Jobs per source:*\n")
		for _, sc := range sources {
			sb.WriteString(fmt.Sprintf("• %s: %d\n", EscapeMarkdown(sc.Source), sc.Count))
		}
	}

	return sb.String()
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// escapeLinkURL escapes the characters MarkdownV2 treats specially inside
// the URL part of an inline link. Everything else passes through raw.
func escapeLinkURL(url string) string {
	return strings.NewReplacer(`\`, `\\`, `)`, `\)`).Replace(url)
}

// TruncateString cuts s to maxLen runes with an ellipsis suffix.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
