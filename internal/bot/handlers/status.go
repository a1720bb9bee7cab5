package handlers

import (
	"context"
	"time"

	"ph-jobfinder-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /status command
func HandleStatus(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := ctx.Store.GetUser(dbCtx, userID)
		if err != nil {
			ctx.Logger.Error("failed to load user status", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if user == nil {
			return c.Send("ℹ️ You are not registered yet\\. Send /start first\\.", tele.ModeMarkdownV2)
		}

		return c.Send(utils.FormatStatus(user), tele.ModeMarkdownV2)
	}
}
