package hcbot

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	// The token in the file is a fallback for local development; the
	// environment always wins so deployments never ship a token on disk.
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("no bot token configured, set DISCORD_TOKEN or bot.token")
	}

	cfg.Data.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Bot  BotConfig  `toml:"bot"`
	Data DataConfig `toml:"data"`
}

type BotConfig struct {
	DevGuilds  []snowflake.ID `toml:"dev_guilds"`
	Token      string         `toml:"token"`
	HealthPort int            `toml:"health_port"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DataConfig struct {
	Path       string `toml:"path"`
	BackupDir  string `toml:"backup_dir"`
	BackupKeep int    `toml:"backup_keep"`
}

func (c *DataConfig) applyDefaults() {
	if c.Path == "" {
		c.Path = "hcbot_data.json"
	}
	if c.BackupDir == "" {
		c.BackupDir = "backups"
	}
	if c.BackupKeep <= 0 {
		c.BackupKeep = 10
	}
}
