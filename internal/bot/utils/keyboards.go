package utils

import (
	"ph-jobfinder-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnJobs := menu.Text("📋 Latest Jobs")
	btnFilter := menu.Text("🗂 Filter")
	btnSubscribe := menu.Text("🔔 Subscribe")
	btnUnsubscribe := menu.Text("🔕 Unsubscribe")
	btnStatus := menu.Text("⚙️ Status")
	btnHelp := menu.Text("❓ Help")

	menu.Reply(
		menu.Row(btnJobs, btnFilter),
		menu.Row(btnSubscribe, btnUnsubscribe),
		menu.Row(btnStatus, btnHelp),
	)

	return menu
}

// CategoryKeyboard is the inline category picker used by /filter. Every
// button carries the category name as callback data; the first row is the
// all-categories reset.
func CategoryKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var rows []tele.Row

	btnAll := menu.Data("🌐 All Categories", "filter", models.FilterAll)
	rows = append(rows, menu.Row(btnAll))

	categories := models.Categories()
	for i := 0; i < len(categories); i += 2 {
		first := categories[i]
		btn := menu.Data(first.Icon()+" "+string(first), "filter", string(first))
		if i+1 < len(categories) {
			second := categories[i+1]
			rows = append(rows, menu.Row(btn, menu.Data(second.Icon()+" "+string(second), "filter", string(second))))
		} else {
			rows = append(rows, menu.Row(btn))
		}
	}

	menu.Inline(rows...)
	return menu
}

func ConfirmDeleteKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnYes := menu.Data("✅ Yes, delete everything", "deletedata", "confirm")
	btnNo := menu.Data("❌ Cancel", "deletedata", "cancel")

	menu.Inline(
		menu.Row(btnYes),
		menu.Row(btnNo),
	)

	return menu
}

func InlineJobKeyboard(jobURL string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnOpen := menu.URL("🔗 Apply here", jobURL)

	menu.Inline(
		menu.Row(btnOpen),
	)

	return menu
}

func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}
