package handlers

import (
	tele "gopkg.in/telebot.v3"
)

// HandleText routes the bottom reply keyboard buttons to their commands.
// Anything else gets a gentle nudge towards /help.
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		switch c.Text() {
		case "📋 Latest Jobs":
			return HandleJobs(ctx)(c)
		case "🗂 Filter":
			return HandleFilter(ctx)(c)
		case "🔔 Subscribe":
			return HandleSubscribe(ctx)(c)
		case "🔕 Unsubscribe":
			return HandleUnsubscribe(ctx)(c)
		case "⚙️ Status":
			return HandleStatus(ctx)(c)
		case "❓ Help":
			return HandleHelp(ctx)(c)
		}

		// group chats see plenty of unrelated text; only nudge in private
		if c.Chat() != nil && c.Chat().Type != tele.ChatPrivate {
			return nil
		}

		return c.Send("🤔 I did not get that. Use the menu below or /help for the command list.")
	}
}
