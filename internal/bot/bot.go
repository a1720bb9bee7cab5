package bot

import (
	"context"
	"fmt"
	"time"

	"ph-jobfinder-bot/internal/bot/handlers"
	"ph-jobfinder-bot/internal/bot/middleware"
	"ph-jobfinder-bot/internal/config"
	"ph-jobfinder-bot/internal/storage/postgres"
	"ph-jobfinder-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Bot represents Telegram bot
type Bot struct {
	bot    *tele.Bot
	store  *postgres.Store
	cache  *redis.Cache
	config *config.Config
	logger *zap.Logger
}

func New(
	cfg *config.Config,
	store *postgres.Store,
	cache *redis.Cache,
	logger *zap.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		store:  store,
		cache:  cache,
		config: cfg,
		logger: logger,
	}

	bot.setupMiddleware()

	logger.Info("bot initialized successfully")

	return bot, nil
}

func (b *Bot) setupMiddleware() {
	b.bot.Use(middleware.Recovery(b.logger))

	b.bot.Use(middleware.Logger(b.logger))

	b.bot.Use(middleware.RateLimit(b.cache, b.logger))
}

// RegisterHandlers wires commands to handlers. The checker arrives here
// rather than in New because it needs the bot's sender to exist first.
func (b *Bot) RegisterHandlers(checker handlers.Checker) {
	ctx := &handlers.Context{
		Store:   b.store,
		Cache:   b.cache,
		Config:  b.config,
		Checker: checker,
		Logger:  b.logger,
	}

	b.bot.Handle("/start", handlers.HandleStart(ctx))
	b.bot.Handle("/help", handlers.HandleHelp(ctx))
	b.bot.Handle("/privacy", handlers.HandlePrivacy(ctx))
	b.bot.Handle("/jobs", handlers.HandleJobs(ctx))
	b.bot.Handle("/subscribe", handlers.HandleSubscribe(ctx))
	b.bot.Handle("/unsubscribe", handlers.HandleUnsubscribe(ctx))
	b.bot.Handle("/filter", handlers.HandleFilter(ctx))
	b.bot.Handle("/status", handlers.HandleStatus(ctx))
	b.bot.Handle("/stats", handlers.HandleStats(ctx))
	b.bot.Handle("/deletedata", handlers.HandleDeleteData(ctx))
	b.bot.Handle("/scrapenow", handlers.HandleScrapeNow(ctx))

	b.bot.Handle(tele.OnText, handlers.HandleText(ctx))

	b.bot.Handle(tele.OnCallback, handlers.HandleCallback(ctx))

	b.logger.Info("handlers registered")
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting bot...")

	go b.bot.Start()

	<-ctx.Done()

	b.logger.Info("stopping bot...")
	b.bot.Stop()

	return nil
}

func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
