package leveling

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/honducraft/hcbot/hcbot/store"
)

// Service grants message XP against the store. A per-user mutex makes
// each grant's read-compute-write atomic, so two messages racing for
// the same user never double-apply or lose XP.
type Service struct {
	store *store.Store
	locks sync.Map
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// GrantResult reports what a message grant did. A zero result means the
// message earned nothing, whether from a disabled module or the XP
// cooldown.
type GrantResult struct {
	Granted   bool
	XP        int64
	OldLevel  int
	NewLevel  int
	LeveledUp bool
}

func (s *Service) userLock(key string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GrantMessageXP awards XP for one message. Messages inside the guild's
// XP cooldown window are a complete no-op: no XP, no message count, no
// timestamp refresh, so the window is anchored to the last message that
// actually earned XP.
func (s *Service) GrantMessageXP(guildID, userID, channelID snowflake.ID, roleIDs []snowflake.ID, now time.Time) GrantResult {
	cfg := s.store.GuildConfig(guildID)
	if !cfg.Modules["levels"] || !cfg.Leveling.Enabled {
		return GrantResult{}
	}

	lock := s.userLock(store.UserKey(guildID, userID))
	lock.Lock()
	defer lock.Unlock()

	rec := s.store.UserRecord(guildID, userID)

	cooldown := time.Duration(cfg.Leveling.XPCooldown) * time.Second
	if last := rec.Leveling.LastMessage; last != nil && now.Sub(*last) < cooldown {
		return GrantResult{}
	}

	multiplier := cfg.Leveling.MessageMultiplier
	for _, roleID := range roleIDs {
		if m, ok := cfg.Leveling.RoleMultipliers[roleID.String()]; ok {
			multiplier *= m
		}
	}
	if m, ok := cfg.Leveling.ChannelMultipliers[channelID.String()]; ok {
		multiplier *= m
	}

	xp := int64(float64(cfg.Leveling.XPPerMessage) * multiplier)
	if xp < 0 {
		xp = 0
	}

	totalXP := rec.Leveling.TotalXP + xp
	oldLevel := rec.Leveling.Level
	newLevel := LevelFromXP(totalXP)

	s.store.UpdateUserRecord(guildID, userID, map[string]any{
		"leveling": map[string]any{
			"level":        newLevel,
			"xp":           rec.Leveling.XP + xp,
			"total_xp":     totalXP,
			"messages":     rec.Leveling.Messages + 1,
			"last_message": now.UTC().Format(time.RFC3339),
		},
	})

	result := GrantResult{
		Granted:   true,
		XP:        xp,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}
	if result.LeveledUp {
		s.store.IncrementStat("level_ups", 1)
	}
	return result
}
