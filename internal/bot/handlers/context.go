package handlers

import (
	"ph-jobfinder-bot/internal/config"
	"ph-jobfinder-bot/internal/storage/postgres"
	"ph-jobfinder-bot/internal/storage/redis"

	"go.uber.org/zap"
)

// Checker triggers a scrape cycle outside the schedule (the admin
// /scrapenow command). RunNow returns false when a cycle is already running.
type Checker interface {
	RunNow() bool
}

// Context contains deps for all handlers
type Context struct {
	Store   *postgres.Store
	Cache   *redis.Cache
	Config  *config.Config
	Checker Checker
	Logger  *zap.Logger
}

// IsAdmin reports whether the user may run admin-only commands.
func (ctx *Context) IsAdmin(userID int64) bool {
	return ctx.Config.AdminID != 0 && userID == ctx.Config.AdminID
}
