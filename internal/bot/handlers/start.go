package handlers

import (
	"context"
	"time"

	"ph-jobfinder-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		firstName := c.Sender().FirstName

		ctx.Logger.Info("user started bot",
			zap.Int64("user_id", userID),
			zap.String("username", c.Sender().Username),
		)

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// re-running /start never resets an existing row
		created, err := ctx.Store.UpsertUser(dbCtx, userID, firstName)
		if err != nil {
			ctx.Logger.Error("failed to register user", zap.Int64("user_id", userID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}
		if created {
			ctx.Logger.Info("new user registered", zap.Int64("user_id", userID))
		}

		return c.Send(
			utils.FormatWelcome(firstName),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
