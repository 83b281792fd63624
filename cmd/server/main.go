package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/apexlabs/apex-protocol/config"
	"github.com/apexlabs/apex-protocol/internal/database"
	"github.com/apexlabs/apex-protocol/internal/gemini"
	"github.com/apexlabs/apex-protocol/internal/generators"
	"github.com/apexlabs/apex-protocol/internal/logger"
	"github.com/apexlabs/apex-protocol/internal/notify"
	"github.com/apexlabs/apex-protocol/internal/server"
	"github.com/apexlabs/apex-protocol/internal/session"
)

// defaultSessionID names the single session this deployment serves.
const defaultSessionID = "default"

func main() {
	cfg := config.LoadConfig()

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.GeminiKey == "" {
		log.Warn("GEMINI_API_KEY not set, running in offline mode")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.CreateTables(ctx); err != nil {
		log.Fatal("failed to create tables", zap.Error(err))
	}

	store := session.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := store.Ping(ctx); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer store.Close()

	llm := gemini.NewClient(cfg.GeminiKey, cfg.GeminiTimeout)

	ideaGen := generators.NewIdeaGenerator(llm, log)
	pitchGen := generators.NewPitchGenerator(llm, log)
	warRoomGen := generators.NewWarRoomGenerator(llm, log)
	chatGen := generators.NewChatGenerator(llm, log)

	state := session.New(defaultSessionID, store, log)
	if state.Restore(ctx) {
		log.Info("session restored", zap.Int("ideas", len(state.Ideas())))
	} else {
		// First boot, or storage is empty. Seed the canned set so the
		// session is never blank.
		state.ReplaceIdeas(ctx, generators.FallbackIdeas())
		log.Info("session seeded with fallback ideas")
	}

	archive := database.NewBatchRepository(db)
	notifier := notify.New(cfg.SlackToken, cfg.SlackChannel, log)

	srv := server.New(ideaGen, pitchGen, warRoomGen, chatGen, state, archive, notifier, log)

	log.Info("starting apex protocol server", zap.String("port", cfg.Port))
	if err := srv.Start(ctx, cfg.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server shut down cleanly")
}
