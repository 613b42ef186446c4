package store

import (
	"time"

	json "github.com/goccy/go-json"
)

// SchemaVersion is written into the metadata block of every record set.
// Older files are reconciled against the current defaults on load, so
// bumping this never requires a migration step.
const SchemaVersion = "4.1.0"

// RecordSet is the full persisted document: one file, four top-level
// blocks. Guild and user records stay as raw JSON documents so partial
// updates deep-merge without losing keys written by newer versions.
type RecordSet struct {
	Metadata   map[string]any            `json:"metadata"`
	Servers    map[string]map[string]any `json:"servers"`
	Users      map[string]map[string]any `json:"users"`
	Statistics map[string]int64          `json:"statistics"`
}

func DefaultRecordSet(now time.Time) RecordSet {
	return RecordSet{
		Metadata: map[string]any{
			"version":       SchemaVersion,
			"created_at":    now.UTC().Format(time.RFC3339),
			"last_updated":  nil,
			"last_backup":   nil,
			"total_servers": 0,
			"total_users":   0,
		},
		Servers: make(map[string]map[string]any),
		Users:   make(map[string]map[string]any),
		Statistics: map[string]int64{
			"commands_used":        0,
			"messages_processed":   0,
			"level_ups":            0,
			"economy_transactions": 0,
			"users_joined":         0,
		},
	}
}

// DefaultGuildConfig is the schema for a freshly seen guild. Every key
// present here is guaranteed to exist on any guild document after load,
// even when the on-disk file predates the key.
func DefaultGuildConfig() map[string]any {
	return map[string]any{
		"prefix":   "!",
		"language": "es",
		"modules": map[string]any{
			"moderation": true,
			"welcome":    true,
			"levels":     true,
			"economy":    true,
			"fun":        true,
			"utility":    true,
		},
		"leveling": map[string]any{
			"enabled":             true,
			"announce_level_up":   true,
			"xp_per_message":      15,
			"xp_cooldown":         60,
			"message_multiplier":  1.0,
			"role_multipliers":    map[string]any{},
			"channel_multipliers": map[string]any{},
		},
		"economy": map[string]any{
			"enabled":          true,
			"currency_name":    "coins",
			"currency_symbol":  "🪙",
			"daily_amount":     100,
			"work_amount_min":  50,
			"work_amount_max":  150,
			"starting_balance": 100,
		},
	}
}

func DefaultUserRecord() map[string]any {
	return map[string]any{
		"leveling": map[string]any{
			"level":        1,
			"xp":           0,
			"total_xp":     0,
			"messages":     0,
			"last_message": nil,
		},
		"economy": map[string]any{
			"wallet":       100,
			"bank":         0,
			"daily_streak": 0,
			"last_daily":   nil,
			"last_work":    nil,
			"job":          nil,
		},
	}
}

// GuildConfig is the typed read view of a guild document.
type GuildConfig struct {
	Prefix   string          `json:"prefix"`
	Language string          `json:"language"`
	Modules  map[string]bool `json:"modules"`
	Leveling LevelingConfig  `json:"leveling"`
	Economy  EconomyConfig   `json:"economy"`
}

type LevelingConfig struct {
	Enabled            bool               `json:"enabled"`
	AnnounceLevelUp    bool               `json:"announce_level_up"`
	XPPerMessage       int                `json:"xp_per_message"`
	XPCooldown         int                `json:"xp_cooldown"`
	MessageMultiplier  float64            `json:"message_multiplier"`
	RoleMultipliers    map[string]float64 `json:"role_multipliers"`
	ChannelMultipliers map[string]float64 `json:"channel_multipliers"`
}

type EconomyConfig struct {
	Enabled         bool   `json:"enabled"`
	CurrencyName    string `json:"currency_name"`
	CurrencySymbol  string `json:"currency_symbol"`
	DailyAmount     int64  `json:"daily_amount"`
	WorkAmountMin   int64  `json:"work_amount_min"`
	WorkAmountMax   int64  `json:"work_amount_max"`
	StartingBalance int64  `json:"starting_balance"`
}

// UserRecord is the typed read view of a user document.
type UserRecord struct {
	Leveling LevelingRecord `json:"leveling"`
	Economy  EconomyRecord  `json:"economy"`
}

type LevelingRecord struct {
	Level       int        `json:"level"`
	XP          int64      `json:"xp"`
	TotalXP     int64      `json:"total_xp"`
	Messages    int64      `json:"messages"`
	LastMessage *time.Time `json:"last_message"`
}

type EconomyRecord struct {
	Wallet      int64      `json:"wallet"`
	Bank        int64      `json:"bank"`
	DailyStreak int        `json:"daily_streak"`
	LastDaily   *time.Time `json:"last_daily"`
	LastWork    *time.Time `json:"last_work"`
	Job         string     `json:"job"`
}

// decodeGuildConfig and decodeUserRecord round-trip a document through
// JSON into its typed view. Unknown keys are preserved in the document
// itself; the views only expose the schema the engines consume.
func decodeGuildConfig(doc map[string]any) GuildConfig {
	var cfg GuildConfig
	if raw, err := json.Marshal(doc); err == nil {
		_ = json.Unmarshal(raw, &cfg)
	}
	return cfg
}

func decodeUserRecord(doc map[string]any) UserRecord {
	var rec UserRecord
	if raw, err := json.Marshal(doc); err == nil {
		_ = json.Unmarshal(raw, &rec)
	}
	return rec
}
