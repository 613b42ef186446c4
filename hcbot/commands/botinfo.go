package commands

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var BotInfo = discord.SlashCommandCreate{
	Name:        "botinfo",
	Description: "🤖 Información y estadísticas del bot",
}

func BotInfoHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		stats := b.Store.Stats()
		guilds, users := b.Store.Counts()

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🤖 HonduPro Bot",
				Color: utils.InfoColor,
				Fields: []discord.EmbedField{
					{Name: "Versión", Value: fmt.Sprintf("`%s` (%s)", b.Version, b.Commit), Inline: utils.Ptr(true)},
					{Name: "Servidores", Value: utils.FormatNumber(int64(guilds)), Inline: utils.Ptr(true)},
					{Name: "Usuarios", Value: utils.FormatNumber(int64(users)), Inline: utils.Ptr(true)},
					{Name: "Comandos usados", Value: utils.FormatNumber(stats["commands_used"]), Inline: utils.Ptr(true)},
					{Name: "Mensajes procesados", Value: utils.FormatNumber(stats["messages_processed"]), Inline: utils.Ptr(true)},
					{Name: "Subidas de nivel", Value: utils.FormatNumber(stats["level_ups"]), Inline: utils.Ptr(true)},
					{Name: "Transacciones", Value: utils.FormatNumber(stats["economy_transactions"]), Inline: utils.Ptr(true)},
				},
				Timestamp: &now,
			}},
		})
	}
}
