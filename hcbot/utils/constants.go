package utils

import "time"

// UI constants
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	LeaderboardPageSize = 10
	ProgressBarWidth    = 12
)

// Cache settings
const (
	ProfileCacheSize = 1024
	ProfileCacheTTL  = 5 * time.Minute
)
