package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ph-jobfinder-bot/internal/bot"
	"ph-jobfinder-bot/internal/bot/scheduler"
	"ph-jobfinder-bot/internal/broadcast"
	"ph-jobfinder-bot/internal/config"
	"ph-jobfinder-bot/internal/logger"
	"ph-jobfinder-bot/internal/scraper"
	"ph-jobfinder-bot/internal/storage/postgres"
	"ph-jobfinder-bot/internal/storage/redis"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting PH job finder bot",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("check_interval", cfg.CheckInterval),
	)

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Migrate(migrateCtx); err != nil {
		migrateCancel()
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	migrateCancel()

	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	tgBot, err := bot.New(cfg, store, cache, log)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	sc := scraper.New(cfg, log)
	broadcaster := broadcast.New(tgBot.GetBot(), store, cfg.GroupChatID, log)

	checker := scheduler.New(sc, store, cache, broadcaster, cfg, log)
	tgBot.RegisterHandlers(checker)

	go func() {
		if err := checker.Start(ctx); err != nil {
			log.Error("job checker failed", zap.Error(err))
		}
	}()

	log.Info("bot is running...")

	if err := tgBot.Start(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
	}

	log.Info("bot stopped")
}
