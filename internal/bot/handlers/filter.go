package handlers

import (
	"ph-jobfinder-bot/internal/bot/utils"

	tele "gopkg.in/telebot.v3"
)

// /filter command shows the inline category picker; the choice comes back
// through the callback handler.
func HandleFilter(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(
			"🗂 *Pick a category to follow:*\n\nYou will only be notified about jobs in that category\\.",
			utils.CategoryKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
