package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/utils"
)

const leaderboardLimit = 100

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 Los miembros con más experiencia del servidor",
}

func LeaderboardHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}

		ranked := b.Store.TopByTotalXP(*guildID, leaderboardLimit)
		if len(ranked) == 0 {
			return utils.EH.CreateInfoEmbed(e, "Todavía nadie ha ganado experiencia en este servidor.")
		}

		totalPages := int(math.Ceil(float64(len(ranked)) / float64(utils.LeaderboardPageSize)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * utils.LeaderboardPageSize
				endIdx := min(startIdx+utils.LeaderboardPageSize, len(ranked))

				var description strings.Builder
				for i, entry := range ranked[startIdx:endIdx] {
					rank := startIdx + i + 1
					description.WriteString(fmt.Sprintf("%s <@%s> · Nivel %d · %s XP\n",
						rankBadge(rank),
						entry.UserID,
						entry.Record.Leveling.Level,
						utils.FormatNumber(entry.Record.Leveling.TotalXP)))
				}

				embed.
					SetTitle("🏆 Tabla de Niveles").
					SetDescription(description.String()).
					SetColor(utils.InfoColor).
					SetFooter(fmt.Sprintf("Página %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func rankBadge(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("`#%d`", rank)
	}
}
