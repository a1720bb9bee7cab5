package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /subscribe command
func HandleSubscribe(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// /subscribe must work even before /start
		if _, err := ctx.Store.UpsertUser(dbCtx, userID, c.Sender().FirstName); err != nil {
			ctx.Logger.Error("failed to register user", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if err := ctx.Store.SetSubscribed(dbCtx, userID, true); err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		return c.Send("🔔 You are subscribed\\! New jobs will arrive as soon as they are found\\.\n\nUse /filter to follow a single category\\.", tele.ModeMarkdownV2)
	}
}

// /unsubscribe command
func HandleUnsubscribe(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := ctx.Store.SetSubscribed(dbCtx, userID, false); err != nil {
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		return c.Send("🔕 Notifications are off\\. Use /subscribe to turn them back on\\.", tele.ModeMarkdownV2)
	}
}
