package handlers

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /scrapenow command, admin only. Kicks off an immediate scrape cycle in
// the background; results arrive through the normal broadcast path.
func HandleScrapeNow(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		if !ctx.IsAdmin(userID) {
			ctx.Logger.Warn("scrapenow denied", zap.Int64("user_id", userID))
			return c.Send("⛔ This command is admin only.")
		}

		if ctx.Checker == nil {
			return c.Send("⚠️ The job checker is not running.")
		}

		if !ctx.Checker.RunNow() {
			return c.Send("⏳ A scrape cycle is already running, hang on.")
		}

		return c.Send("🔍 Scrape cycle started. New jobs will be broadcast as usual.")
	}
}
