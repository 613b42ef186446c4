package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"

	"github.com/honducraft/hcbot/hcbot"
)

// MessageHandler feeds guild messages into the leveling service and
// announces level-ups where the guild has them enabled.
func MessageHandler(b *hcbot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.MessageCreate) {
		if e.Message.Author.Bot || e.GuildID == nil {
			return
		}

		b.Store.IncrementStat("messages_processed", 1)

		var roleIDs []snowflake.ID
		if member := e.Message.Member; member != nil {
			roleIDs = member.RoleIDs
		}

		result := b.Leveling.GrantMessageXP(*e.GuildID, e.Message.Author.ID, e.ChannelID, roleIDs, time.Now())
		if !result.LeveledUp {
			return
		}

		b.Cache.Delete(fmt.Sprintf("profile:%s_%s", *e.GuildID, e.Message.Author.ID))

		slog.Info("User leveled up",
			slog.String("user_id", e.Message.Author.ID.String()),
			slog.String("guild_id", e.GuildID.String()),
			slog.Int("level", result.NewLevel))

		cfg := b.Store.GuildConfig(*e.GuildID)
		if !cfg.Leveling.AnnounceLevelUp {
			return
		}

		if _, err := e.Client().Rest().CreateMessage(e.ChannelID, discord.MessageCreate{
			Content: fmt.Sprintf("🎉 ¡Felicidades <@%s>! Has subido al nivel **%d**.",
				e.Message.Author.ID, result.NewLevel),
		}); err != nil {
			slog.Error("Failed to announce level up",
				slog.String("channel_id", e.ChannelID.String()),
				slog.Any("error", err))
		}
	})
}
