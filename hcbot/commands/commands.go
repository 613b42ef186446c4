package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

var Commands = []discord.ApplicationCommandCreate{
	Daily,
	Work,
	Balance,
	Level,
	Leaderboard,
	BotInfo,
	Settings,
}

// profileCacheKey is shared by the commands that read and invalidate
// the cached profile view.
func profileCacheKey(guildID, userID snowflake.ID) string {
	return fmt.Sprintf("profile:%s_%s", guildID, userID)
}
