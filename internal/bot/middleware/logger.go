package middleware

import (
	"time"

	"ph-jobfinder-bot/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// loggedTextLimit keeps pasted walls of text out of the request log.
const loggedTextLimit = 64

// Logger logs every handled update with its sender, payload and timing.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			kind, text := "message", ""
			if m := c.Message(); m != nil {
				text = m.Text
			}
			if cb := c.Callback(); cb != nil {
				kind, text = "callback", cb.Data
			}

			var userID int64
			var username string
			if user := c.Sender(); user != nil {
				userID = user.ID
				username = user.Username
			}

			fields := []zap.Field{
				zap.Int64("user_id", userID),
				zap.String("username", username),
				zap.String("type", kind),
				zap.String("text", utils.TruncateString(text, loggedTextLimit)),
				zap.Duration("duration", time.Since(start)),
			}

			if err != nil {
				logger.Error("handler error", append(fields, zap.Error(err))...)
				return err
			}

			logger.Info("request handled", fields...)
			return nil
		}
	}
}
