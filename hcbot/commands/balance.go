package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 Consulta tu saldo",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "usuario",
			Description: "Usuario a consultar (por defecto tú)",
			Required:    false,
		},
	},
}

func BalanceHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}

		target := e.User()
		if user, ok := e.SlashCommandInteractionData().OptUser("usuario"); ok {
			target = user
		}

		rec := b.Store.UserRecord(*guildID, target.ID)
		cfg := b.Store.GuildConfig(*guildID)

		var description strings.Builder
		description.WriteString("```ansi\n")
		description.WriteString(fmt.Sprintf("\x1b[1;36mCartera:\x1b[0m %s %s\n",
			utils.FormatNumber(rec.Economy.Wallet), cfg.Economy.CurrencyName))
		description.WriteString(fmt.Sprintf("\x1b[1;35mBanco:\x1b[0m   %s %s\n",
			utils.FormatNumber(rec.Economy.Bank), cfg.Economy.CurrencyName))
		description.WriteString(fmt.Sprintf("\n\x1b[1;33mRacha diaria:\x1b[0m %d días\n", rec.Economy.DailyStreak))
		if rec.Economy.Job != "" {
			description.WriteString(fmt.Sprintf("\x1b[1;32mTrabajo:\x1b[0m %s\n", rec.Economy.Job))
		}
		description.WriteString("```")

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("%s Saldo de %s", cfg.Economy.CurrencySymbol, target.EffectiveName()),
				Description: description.String(),
				Color:       utils.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Solicitado por %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
