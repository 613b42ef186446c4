package commands

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/economy"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "🎁 Reclama tu recompensa diaria",
}

func DailyHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}

		result := b.Economy.ClaimDaily(*guildID, e.User().ID, time.Now())
		switch result.Status {
		case economy.DailyDisabled:
			return utils.EH.CreateErrorEmbed(e, "La economía está desactivada en este servidor.")
		case economy.DailyAlreadyClaimed:
			return utils.EH.CreateCooldownEmbed(e, "Ya reclamaste tu recompensa de hoy. ¡Vuelve mañana!")
		}

		b.Cache.Delete(profileCacheKey(*guildID, e.User().ID))

		cfg := b.Store.GuildConfig(*guildID)
		description := fmt.Sprintf("Has recibido **%s %s** %s",
			utils.FormatNumber(result.Amount), cfg.Economy.CurrencyName, cfg.Economy.CurrencySymbol)
		if result.Bonus > 0 {
			description += fmt.Sprintf("\nBono de racha: **+%s** (día %d)",
				utils.FormatNumber(result.Bonus), result.Streak)
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎁 Recompensa Diaria",
				Description: description,
				Color:       utils.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Racha actual: %d días", result.Streak),
				},
				Timestamp: &now,
			}},
		})
	}
}
