package handlers

import (
	"context"
	"strings"
	"time"

	"ph-jobfinder-bot/internal/bot/utils"
	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		data := cb.Data
		// telebot prefixes data with \f followed by the button unique
		if len(data) > 0 && data[0] == '\f' {
			data = data[1:]
		}

		parts := strings.SplitN(data, "|", 2)
		action := parts[0]
		value := ""
		if len(parts) > 1 {
			value = parts[1]
		}

		ctx.Logger.Debug("routing callback",
			zap.String("action", action),
			zap.String("value", value),
			zap.Int64("user_id", c.Sender().ID),
		)

		switch action {
		case "filter":
			return handleFilterChoice(ctx, c, value)
		case "deletedata":
			return handleDeleteDataChoice(ctx, c, value)
		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}

func handleFilterChoice(ctx *Context, c tele.Context, value string) error {
	userID := c.Sender().ID

	if value != models.FilterAll && !validCategory(value) {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Unknown category"})
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := ctx.Store.UpsertUser(dbCtx, userID, c.Sender().FirstName); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}
	if err := ctx.Store.SetFilter(dbCtx, userID, value); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "✅ Filter saved"}); err != nil {
		ctx.Logger.Warn("callback respond failed", zap.Error(err))
	}

	if value == models.FilterAll {
		return c.Edit("🌐 You now follow *all categories*\\.", tele.ModeMarkdownV2)
	}
	return c.Edit("✅ You now follow *"+utils.EscapeMarkdown(value)+"* only\\.", tele.ModeMarkdownV2)
}

func handleDeleteDataChoice(ctx *Context, c tele.Context, value string) error {
	userID := c.Sender().ID

	if value != "confirm" {
		if err := c.Respond(&tele.CallbackResponse{Text: "Cancelled"}); err != nil {
			ctx.Logger.Warn("callback respond failed", zap.Error(err))
		}
		return c.Edit("👍 Nothing was deleted\\.", tele.ModeMarkdownV2)
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := ctx.Store.DeleteUser(dbCtx, userID); err != nil {
		ctx.Logger.Error("failed to delete user data", zap.Int64("user_id", userID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "😔 Something went wrong"})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "🗑 Deleted"}); err != nil {
		ctx.Logger.Warn("callback respond failed", zap.Error(err))
	}

	return c.Edit("🗑 All your data is gone\\. Send /start if you ever want to come back\\.", tele.ModeMarkdownV2)
}

func validCategory(value string) bool {
	for _, category := range models.Categories() {
		if string(category) == value {
			return true
		}
	}
	return value == string(models.CategoryGeneral)
}
