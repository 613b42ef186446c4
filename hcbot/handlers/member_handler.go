package handlers

import (
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"

	"github.com/honducraft/hcbot/hcbot"
)

// MemberJoinHandler counts new members into the global statistics.
func MemberJoinHandler(b *hcbot.Bot) bot.EventListener {
	return bot.NewListenerFunc(func(e *events.GuildMemberJoin) {
		b.Store.IncrementStat("users_joined", 1)

		slog.Debug("Member joined",
			slog.String("guild_id", e.GuildID.String()),
			slog.String("user_id", e.Member.User.ID.String()))
	})
}
