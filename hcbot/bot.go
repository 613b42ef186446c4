package hcbot

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	discache "github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/honducraft/hcbot/hcbot/cache"
	"github.com/honducraft/hcbot/hcbot/economy"
	"github.com/honducraft/hcbot/hcbot/leveling"
	"github.com/honducraft/hcbot/hcbot/store"
)

const presenceRotationInterval = 5 * time.Minute

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	Store     *store.Store
	Cache     *cache.TTLCache
	Leveling  *leveling.Service
	Economy   *economy.Service
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMembers, gateway.IntentGuildMessages, gateway.IntentMessageContent)),
		bot.WithCacheConfigOpts(discache.WithCaches(discache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	guilds, users := b.Store.Counts()
	slog.Info("HonduPro Bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit),
		slog.Int("guilds", guilds),
		slog.Int("users", users))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("Honducraft Network"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// StartPresenceRotation cycles the bot's activity until ctx is
// cancelled. Intended to run on its own goroutine.
func (b *Bot) StartPresenceRotation(ctx context.Context) {
	presences := []gateway.PresenceOpt{
		gateway.WithPlayingActivity("Honducraft Network"),
		gateway.WithWatchingActivity("la comunidad"),
		gateway.WithListeningActivity("/daily"),
		gateway.WithPlayingActivity("con los niveles"),
	}

	ticker := time.NewTicker(presenceRotationInterval)
	defer ticker.Stop()

	next := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next = (next + 1) % len(presences)
			presenceCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := b.Client.SetPresence(presenceCtx,
				presences[next],
				gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
				slog.Error("Failed to rotate presence", slog.Any("error", err))
			}
			cancel()
		}
	}
}

// StartHealthListener answers TCP liveness probes on the configured
// port by accepting and immediately closing each connection. A port of
// zero disables the listener.
func (b *Bot) StartHealthListener(ctx context.Context) error {
	if b.Cfg.Bot.HealthPort == 0 {
		return nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", b.Cfg.Bot.HealthPort))
	if err != nil {
		return fmt.Errorf("failed to start health listener: %w", err)
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	slog.Info("Health listener started",
		slog.Int("port", b.Cfg.Bot.HealthPort))

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Health listener accept failed", slog.Any("error", err))
				continue
			}
			conn.Close()
		}
	}()
	return nil
}
