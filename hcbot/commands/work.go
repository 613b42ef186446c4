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

var Work = discord.SlashCommandCreate{
	Name:        "work",
	Description: "💼 Trabaja para ganar monedas",
}

func WorkHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}

		result := b.Economy.ClaimWork(*guildID, e.User().ID, time.Now())
		switch result.Status {
		case economy.WorkDisabled:
			return utils.EH.CreateErrorEmbed(e, "La economía está desactivada en este servidor.")
		case economy.WorkOnCooldown:
			return utils.EH.CreateCooldownEmbed(e,
				fmt.Sprintf("Necesitas descansar. Podrás trabajar de nuevo en **%s**.",
					utils.FormatDuration(result.Remaining)))
		}

		b.Cache.Delete(profileCacheKey(*guildID, e.User().ID))

		cfg := b.Store.GuildConfig(*guildID)
		description := fmt.Sprintf("Has ganado **%s %s** %s",
			utils.FormatNumber(result.Amount), cfg.Economy.CurrencyName, cfg.Economy.CurrencySymbol)
		if result.Job != "" {
			description += fmt.Sprintf("\nTrabajo: **%s**", result.Job)
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "💼 Turno Completado",
				Description: description,
				Color:       utils.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: "Vuelve en 6 horas para otro turno",
				},
				Timestamp: &now,
			}},
		})
	}
}
