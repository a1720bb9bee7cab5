package handlers

import (
	"ph-jobfinder-bot/internal/bot/utils"

	tele "gopkg.in/telebot.v3"
)

// /help command
func HandleHelp(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(utils.FormatHelp(), tele.ModeMarkdownV2)
	}
}

// /privacy command
func HandlePrivacy(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send(utils.FormatPrivacy(), tele.ModeMarkdownV2)
	}
}
