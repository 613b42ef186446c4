package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/leveling"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var Level = discord.SlashCommandCreate{
	Name:        "level",
	Description: "📊 Consulta tu nivel y experiencia",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "usuario",
			Description: "Usuario a consultar (por defecto tú)",
			Required:    false,
		},
	},
}

func LevelHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}

		target := e.User()
		if user, ok := e.SlashCommandInteractionData().OptUser("usuario"); ok {
			target = user
		}

		key := profileCacheKey(*guildID, target.ID)
		description, ok := b.Cache.Get(key)
		if !ok {
			description = buildLevelProfile(b, *guildID, target.ID)
			b.Cache.Set(key, description, utils.ProfileCacheTTL)
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("📊 Nivel de %s", target.EffectiveName()),
				Description: description.(string),
				Color:       utils.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Solicitado por %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}

func buildLevelProfile(b *hcbot.Bot, guildID, userID snowflake.ID) string {
	rec := b.Store.UserRecord(guildID, userID)

	earned, span := leveling.ProgressToNext(rec.Leveling.TotalXP)
	bar := leveling.ProgressBar(earned, span, utils.ProgressBarWidth)

	var description strings.Builder
	description.WriteString("```ansi\n")
	description.WriteString(fmt.Sprintf("\x1b[1;36mNivel:\x1b[0m %d\n", rec.Leveling.Level))
	description.WriteString(fmt.Sprintf("\x1b[1;33mXP total:\x1b[0m %s\n", utils.FormatNumber(rec.Leveling.TotalXP)))
	description.WriteString(fmt.Sprintf("\x1b[1;35mMensajes:\x1b[0m %s\n", utils.FormatNumber(rec.Leveling.Messages)))
	description.WriteString("```\n")
	description.WriteString(fmt.Sprintf("%s\n`%s / %s` para el nivel %d",
		bar, utils.FormatNumber(earned), utils.FormatNumber(span), rec.Leveling.Level+1))
	return description.String()
}
