package economy

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/honducraft/hcbot/hcbot/store"
)

const (
	// workCooldown is the gap required between work shifts.
	workCooldown = 6 * time.Hour

	// streakBonusStep and streakBonusCap shape the daily streak bonus:
	// 10 coins per consecutive day, capped at 100.
	streakBonusStep = 10
	streakBonusCap  = 100
)

// jobMultipliers scales work pay for users who hold a known job. Any
// other job string pays the base amount.
var jobMultipliers = map[string]float64{
	"programmer": 1.2,
	"designer":   1.1,
	"moderator":  1.15,
}

// Service applies the daily and work rewards against the store, with
// the same per-user locking discipline as the leveling service.
type Service struct {
	store *store.Store
	locks sync.Map
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) userLock(key string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

type DailyStatus int

const (
	DailyClaimed DailyStatus = iota
	DailyAlreadyClaimed
	DailyDisabled
)

type DailyResult struct {
	Status DailyStatus
	Amount int64
	Streak int
	Bonus  int64
}

// ClaimDaily pays out the guild's daily amount plus the streak bonus.
// The gate is the UTC calendar day, not a 24h window: claiming at 23:59
// and again at 00:01 is two days. The bonus rewards the streak built up
// before today, so a first claim pays the base amount; the streak then
// counts today's claim and only ever grows.
func (s *Service) ClaimDaily(guildID, userID snowflake.ID, now time.Time) DailyResult {
	cfg := s.store.GuildConfig(guildID)
	if !cfg.Modules["economy"] || !cfg.Economy.Enabled {
		return DailyResult{Status: DailyDisabled}
	}

	lock := s.userLock(store.UserKey(guildID, userID))
	lock.Lock()
	defer lock.Unlock()

	rec := s.store.UserRecord(guildID, userID)

	if last := rec.Economy.LastDaily; last != nil && sameUTCDay(*last, now) {
		return DailyResult{Status: DailyAlreadyClaimed, Streak: rec.Economy.DailyStreak}
	}

	bonus := int64(rec.Economy.DailyStreak * streakBonusStep)
	if bonus > streakBonusCap {
		bonus = streakBonusCap
	}
	amount := cfg.Economy.DailyAmount + bonus
	streak := rec.Economy.DailyStreak + 1

	s.store.UpdateUserRecord(guildID, userID, map[string]any{
		"economy": map[string]any{
			"wallet":       rec.Economy.Wallet + amount,
			"daily_streak": streak,
			"last_daily":   now.UTC().Format(time.RFC3339),
		},
	})
	s.store.IncrementStat("economy_transactions", 1)

	return DailyResult{Status: DailyClaimed, Amount: amount, Streak: streak, Bonus: bonus}
}

type WorkStatus int

const (
	WorkDone WorkStatus = iota
	WorkOnCooldown
	WorkDisabled
)

type WorkResult struct {
	Status    WorkStatus
	Amount    int64
	Job       string
	Remaining time.Duration
}

// ClaimWork pays a random amount within the guild's configured range,
// scaled by the user's job multiplier, at most once per cooldown. The
// cooldown compares full elapsed time, so a shift is never unlocked
// early no matter how long ago the last one was.
func (s *Service) ClaimWork(guildID, userID snowflake.ID, now time.Time) WorkResult {
	cfg := s.store.GuildConfig(guildID)
	if !cfg.Modules["economy"] || !cfg.Economy.Enabled {
		return WorkResult{Status: WorkDisabled}
	}

	lock := s.userLock(store.UserKey(guildID, userID))
	lock.Lock()
	defer lock.Unlock()

	rec := s.store.UserRecord(guildID, userID)

	if last := rec.Economy.LastWork; last != nil {
		if elapsed := now.Sub(*last); elapsed < workCooldown {
			return WorkResult{Status: WorkOnCooldown, Remaining: workCooldown - elapsed}
		}
	}

	amount := rollAmount(cfg.Economy.WorkAmountMin, cfg.Economy.WorkAmountMax)
	if multiplier, ok := jobMultipliers[rec.Economy.Job]; ok {
		amount = int64(float64(amount) * multiplier)
	}

	s.store.UpdateUserRecord(guildID, userID, map[string]any{
		"economy": map[string]any{
			"wallet":    rec.Economy.Wallet + amount,
			"last_work": now.UTC().Format(time.RFC3339),
		},
	})
	s.store.IncrementStat("economy_transactions", 1)

	return WorkResult{Status: WorkDone, Amount: amount, Job: rec.Economy.Job}
}

// rollAmount picks uniformly from [min, max]. A misconfigured range
// where max is below min degrades to min.
func rollAmount(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rand.Int64N(max-min+1)
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
