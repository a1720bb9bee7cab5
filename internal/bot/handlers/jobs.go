package handlers

import (
	"context"
	"time"

	"ph-jobfinder-bot/internal/bot/utils"
	"ph-jobfinder-bot/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const latestJobsLimit = 10

// /jobs command. Serves from the Redis cache when possible; the listing
// only changes when a scrape cycle lands, so a short TTL is safe.
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := models.FilterAll
		if user, err := ctx.Store.GetUser(dbCtx, userID); err == nil && user != nil {
			filter = user.Filters
		}

		if cached, err := ctx.Cache.GetLatestJobs(dbCtx, filter); err == nil && len(cached) > 0 {
			return sendJobs(c, cached, filter)
		}

		var (
			jobs []models.JobPosting
			err  error
		)
		if filter == models.FilterAll {
			jobs, err = ctx.Store.GetLatestJobs(dbCtx, latestJobsLimit)
		} else {
			jobs, err = ctx.Store.GetLatestJobsByCategory(dbCtx, models.Category(filter), latestJobsLimit)
		}
		if err != nil {
			ctx.Logger.Error("failed to load latest jobs",
				zap.Int64("user_id", userID),
				zap.String("filter", filter),
				zap.Error(err),
			)
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if len(jobs) > 0 {
			if err := ctx.Cache.SetLatestJobs(dbCtx, filter, jobs); err != nil {
				ctx.Logger.Warn("failed to cache latest jobs", zap.Error(err))
			}
		}

		return sendJobs(c, jobs, filter)
	}
}

// sendJobs picks the presentation: a single match gets the full card with
// an inline apply button, anything else the compact list.
func sendJobs(c tele.Context, jobs []models.JobPosting, filter string) error {
	if len(jobs) == 1 {
		return c.Send(
			utils.FormatJob(&jobs[0]),
			utils.InlineJobKeyboard(jobs[0].Link),
			tele.ModeMarkdownV2,
			tele.NoPreview,
		)
	}
	return c.Send(utils.FormatJobsList(jobs, filter), tele.ModeMarkdownV2, tele.NoPreview)
}
