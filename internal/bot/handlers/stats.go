package handlers

import (
	"context"
	"time"

	"ph-jobfinder-bot/internal/bot/utils"
	"ph-jobfinder-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /stats command. Counts are cached briefly so a popular group cannot turn
// the command into a COUNT(*) storm.
func HandleStats(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		stats, err := ctx.Cache.GetStats(dbCtx)
		if err != nil {
			stats, err = loadStats(dbCtx, ctx)
			if err != nil {
				ctx.Logger.Error("failed to load stats", zap.Error(err))
				return c.Send("😔 Something went wrong. Please try again later.")
			}
			if cerr := ctx.Cache.SetStats(dbCtx, stats); cerr != nil {
				ctx.Logger.Warn("failed to cache stats", zap.Error(cerr))
			}
		}

		sources, err := ctx.Store.CountBySource(dbCtx)
		if err != nil {
			ctx.Logger.Warn("failed to count by source", zap.Error(err))
		}

		return c.Send(utils.FormatStats(stats, sources), tele.ModeMarkdownV2)
	}
}

func loadStats(dbCtx context.Context, ctx *Context) (*redis.Stats, error) {
	total, err := ctx.Store.CountJobs(dbCtx)
	if err != nil {
		return nil, err
	}
	today, err := ctx.Store.CountJobsToday(dbCtx)
	if err != nil {
		return nil, err
	}
	users, err := ctx.Store.CountUsers(dbCtx)
	if err != nil {
		return nil, err
	}
	subscribed, err := ctx.Store.CountSubscribed(dbCtx)
	if err != nil {
		return nil, err
	}

	return &redis.Stats{
		TotalJobs:  total,
		JobsToday:  today,
		Users:      users,
		Subscribed: subscribed,
	}, nil
}
