package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/honducraft/hcbot/hcbot"
	"github.com/honducraft/hcbot/hcbot/utils"
)

var Settings = discord.SlashCommandCreate{
	Name:        "settings",
	Description: "⚙️ Configura los módulos del servidor",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "module",
			Description: "Activa o desactiva un módulo",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "nombre",
					Description: "Módulo a configurar",
					Required:    true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "Niveles", Value: "levels"},
						{Name: "Economía", Value: "economy"},
						{Name: "Moderación", Value: "moderation"},
						{Name: "Bienvenida", Value: "welcome"},
						{Name: "Diversión", Value: "fun"},
						{Name: "Utilidad", Value: "utility"},
					},
				},
				discord.ApplicationCommandOptionBool{
					Name:        "activado",
					Description: "Estado del módulo",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "leveling",
			Description: "Ajusta el sistema de niveles",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "xp_por_mensaje",
					Description: "XP base por mensaje",
					Required:    false,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "cooldown",
					Description: "Segundos entre mensajes que dan XP",
					Required:    false,
				},
				discord.ApplicationCommandOptionBool{
					Name:        "anunciar",
					Description: "Anunciar subidas de nivel",
					Required:    false,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "economy",
			Description: "Ajusta el sistema de economía",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "diaria",
					Description: "Monto de la recompensa diaria",
					Required:    false,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "trabajo_min",
					Description: "Pago mínimo por trabajar",
					Required:    false,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "trabajo_max",
					Description: "Pago máximo por trabajar",
					Required:    false,
				},
			},
		},
	},
}

func SettingsHandler(b *hcbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guildID := e.GuildID()
		if guildID == nil {
			return utils.EH.CreateErrorEmbed(e, "Este comando solo funciona dentro de un servidor.")
		}
		if member := e.Member(); member == nil || !member.Permissions.Has(discord.PermissionManageGuild) {
			return utils.EH.CreateErrorEmbed(e, "Necesitas el permiso **Gestionar Servidor** para usar este comando.")
		}

		data := e.SlashCommandInteractionData()
		switch *data.SubCommandName {
		case "module":
			name := data.String("nombre")
			enabled := data.Bool("activado")
			b.Store.UpdateGuildConfig(*guildID, map[string]any{
				"modules": map[string]any{name: enabled},
			})
			state := "desactivado"
			if enabled {
				state = "activado"
			}
			return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Módulo `%s` %s.", name, state))

		case "leveling":
			partial := map[string]any{}
			if xp, ok := data.OptInt("xp_por_mensaje"); ok {
				partial["xp_per_message"] = xp
			}
			if cooldown, ok := data.OptInt("cooldown"); ok {
				partial["xp_cooldown"] = cooldown
			}
			if announce, ok := data.OptBool("anunciar"); ok {
				partial["announce_level_up"] = announce
			}
			if len(partial) == 0 {
				return utils.EH.CreateInfoEmbed(e, "No indicaste ningún ajuste que cambiar.")
			}
			b.Store.UpdateGuildConfig(*guildID, map[string]any{"leveling": partial})
			return utils.EH.CreateSuccessEmbed(e, "Ajustes de niveles actualizados.")

		case "economy":
			partial := map[string]any{}
			if daily, ok := data.OptInt("diaria"); ok {
				partial["daily_amount"] = daily
			}
			if workMin, ok := data.OptInt("trabajo_min"); ok {
				partial["work_amount_min"] = workMin
			}
			if workMax, ok := data.OptInt("trabajo_max"); ok {
				partial["work_amount_max"] = workMax
			}
			if len(partial) == 0 {
				return utils.EH.CreateInfoEmbed(e, "No indicaste ningún ajuste que cambiar.")
			}
			b.Store.UpdateGuildConfig(*guildID, map[string]any{"economy": partial})
			return utils.EH.CreateSuccessEmbed(e, "Ajustes de economía actualizados.")
		}

		return utils.EH.CreateErrorEmbed(e, "Subcomando desconocido.")
	}
}
