package handlers

import (
	"ph-jobfinder-bot/internal/bot/utils"

	tele "gopkg.in/telebot.v3"
)

// /deletedata command asks for confirmation first; the actual delete
// happens in the callback handler.
func HandleDeleteData(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(
			"⚠️ *Delete your data?*\n\nThis removes your registration, subscription and filter\\. It cannot be undone\\.",
			utils.ConfirmDeleteKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
