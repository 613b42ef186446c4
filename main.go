package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"golang.org/x/sync/errgroup"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/cache"
	"github.com/honducraft/hcbot/hcbot/commands"
	"github.com/honducraft/hcbot/hcbot/economy"
	"github.com/honducraft/hcbot/hcbot/handlers"
	"github.com/honducraft/hcbot/hcbot/leveling"
	"github.com/honducraft/hcbot/hcbot/logger"
	"github.com/honducraft/hcbot/hcbot/store"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting HonduPro Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := hcbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	st := store.New(cfg.Data.Path, cfg.Data.BackupDir, cfg.Data.BackupKeep)
	if err = st.Open(); err != nil {
		slog.Error("Failed to open data store",
			slog.String("type", "store"),
			slog.String("path", cfg.Data.Path),
			slog.Any("error", err))
		os.Exit(-1)
	}

	profileCache, err := cache.New(utils.ProfileCacheSize)
	if err != nil {
		slog.Error("Failed to create cache", slog.Any("error", err))
		os.Exit(-1)
	}

	b := hcbot.New(*cfg, version, commit)
	b.Store = st
	b.Cache = profileCache
	b.Leveling = leveling.NewService(st)
	b.Economy = economy.NewService(st)

	h := handler.New()

	// Economy commands
	h.Command("/daily", handlers.WrapWithLogging(st, "daily", commands.DailyHandler(b)))
	h.Command("/work", handlers.WrapWithLogging(st, "work", commands.WorkHandler(b)))
	h.Command("/balance", handlers.WrapWithLogging(st, "balance", commands.BalanceHandler(b)))

	// Leveling commands
	h.Command("/level", handlers.WrapWithLogging(st, "level", commands.LevelHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging(st, "leaderboard", commands.LeaderboardHandler(b)))

	// System commands
	h.Command("/botinfo", handlers.WrapWithLogging(st, "botinfo", commands.BotInfoHandler(b)))
	h.Command("/settings", handlers.WrapWithLogging(st, "settings", commands.SettingsHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.MessageHandler(b), handlers.MemberJoinHandler(b)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	g, gCtx := errgroup.WithContext(bgCtx)
	g.Go(func() error {
		st.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		profileCache.StartSweeper(gCtx, cache.DefaultSweepInterval)
		return nil
	})
	g.Go(func() error {
		b.StartPresenceRotation(gCtx)
		return nil
	})

	if err = b.StartHealthListener(gCtx); err != nil {
		slog.Warn("Health listener unavailable", slog.Any("error", err))
	}

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err))
		bgCancel()
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")

	// Stop background workers; the store does its final flush on the
	// way out of Run.
	bgCancel()
	if err = g.Wait(); err != nil {
		slog.Error("Background worker error", slog.Any("error", err))
	}
}
