// Package broadcast delivers newly found jobs to the group chat and to
// individual subscribers, paced to stay under Telegram's sending limits.
package broadcast

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"ph-jobfinder-bot/internal/bot/utils"
	"ph-jobfinder-bot/internal/models"
)

const (
	// GroupDigestCap bounds the group announcement; the overflow note points
	// at /jobs instead of flooding the chat.
	GroupDigestCap = 10

	// UserDigestCap bounds each personal notification.
	UserDigestCap = 5

	defaultPace = 400 * time.Millisecond
)

// Sender is the slice of the Telegram bot API the broadcaster needs.
// *tele.Bot satisfies it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// SubscriberStore lists delivery targets and records auto-unsubscribes.
type SubscriberStore interface {
	GetSubscribers(ctx context.Context) ([]models.Subscriber, error)
	SetSubscribed(ctx context.Context, userID int64, subscribed bool) error
}

type Broadcaster struct {
	sender      Sender
	store       SubscriberStore
	logger      *zap.Logger
	groupChatID int64
	pace        time.Duration
}

func New(sender Sender, store SubscriberStore, groupChatID int64, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		sender:      sender,
		store:       store,
		logger:      logger,
		groupChatID: groupChatID,
		pace:        defaultPace,
	}
}

// Summary reports what one broadcast run delivered.
type Summary struct {
	GroupSent     bool
	UsersNotified int
	Unsubscribed  int
}

// Broadcast announces new jobs to the group chat, then notifies each
// subscriber with the slice of jobs matching their filter. A user whose
// chat is permanently gone (blocked the bot, deactivated account) is
// unsubscribed so the next run skips them. With no jobs it is a no-op.
func (b *Broadcaster) Broadcast(ctx context.Context, jobs []models.JobPosting) Summary {
	var summary Summary
	if len(jobs) == 0 {
		b.logger.Debug("no new jobs, skipping broadcast")
		return summary
	}

	if b.groupChatID != 0 {
		summary.GroupSent = b.sendGroupDigest(jobs)
	}

	subscribers, err := b.store.GetSubscribers(ctx)
	if err != nil {
		b.logger.Error("failed to load subscribers for broadcast", zap.Error(err))
		return summary
	}

	for _, sub := range subscribers {
		if ctx.Err() != nil {
			b.logger.Warn("broadcast interrupted",
				zap.Int("notified", summary.UsersNotified),
				zap.Int("remaining", len(subscribers)-summary.UsersNotified),
			)
			return summary
		}

		matched := matchFilter(jobs, &sub)
		if len(matched) == 0 {
			continue
		}

		total := len(matched)
		if len(matched) > UserDigestCap {
			matched = matched[:UserDigestCap]
		}

		_, err := b.sender.Send(
			tele.ChatID(sub.UserID),
			utils.FormatDigest(matched, total),
			tele.ModeMarkdownV2,
			tele.NoPreview,
		)
		if err != nil {
			if permanentFailure(err) {
				b.logger.Info("subscriber unreachable, unsubscribing",
					zap.Int64("user_id", sub.UserID),
					zap.Error(err),
				)
				if uerr := b.store.SetSubscribed(ctx, sub.UserID, false); uerr != nil {
					b.logger.Error("failed to auto-unsubscribe",
						zap.Int64("user_id", sub.UserID),
						zap.Error(uerr),
					)
				}
				summary.Unsubscribed++
			} else {
				b.logger.Warn("failed to notify subscriber",
					zap.Int64("user_id", sub.UserID),
					zap.Error(err),
				)
			}
			continue
		}

		summary.UsersNotified++
		b.sleep(ctx)
	}

	b.logger.Info("broadcast finished",
		zap.Int("jobs", len(jobs)),
		zap.Bool("group_sent", summary.GroupSent),
		zap.Int("users_notified", summary.UsersNotified),
		zap.Int("auto_unsubscribed", summary.Unsubscribed),
	)

	return summary
}

func (b *Broadcaster) sendGroupDigest(jobs []models.JobPosting) bool {
	total := len(jobs)
	capped := jobs
	if len(capped) > GroupDigestCap {
		capped = capped[:GroupDigestCap]
	}

	_, err := b.sender.Send(
		tele.ChatID(b.groupChatID),
		utils.FormatDigest(capped, total)+"\n\n"+utils.GroupSafetyFooter(),
		tele.ModeMarkdownV2,
		tele.NoPreview,
	)
	if err != nil {
		b.logger.Error("failed to send group digest",
			zap.Int64("chat_id", b.groupChatID),
			zap.Error(err),
		)
		return false
	}
	return true
}

func matchFilter(jobs []models.JobPosting, sub *models.Subscriber) []models.JobPosting {
	var matched []models.JobPosting
	for _, job := range jobs {
		if sub.WantsCategory(job.Category) {
			matched = append(matched, job)
		}
	}
	return matched
}

// permanentFailure reports whether a send error means the chat is gone for
// good rather than a transient delivery problem.
func permanentFailure(err error) bool {
	if errors.Is(err, tele.ErrBlockedByUser) || errors.Is(err, tele.ErrUserIsDeactivated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked") || strings.Contains(msg, "deactivated")
}

func (b *Broadcaster) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(b.pace):
	}
}
