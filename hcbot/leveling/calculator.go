package leveling

import (
	"math"
	"strings"
)

// LevelFromXP derives a level from accumulated XP. The curve is the
// inverse of XPRequiredForLevel with the fractional part truncated, and
// it never reports below level 1, so brand-new users start at 1 with
// zero XP.
func LevelFromXP(totalXP int64) int {
	if totalXP < 0 {
		totalXP = 0
	}
	level := int(math.Sqrt(float64(totalXP) / 100))
	if level < 1 {
		level = 1
	}
	return level
}

// XPRequiredForLevel returns the total XP at which a level is reached.
func XPRequiredForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return 100 * int64(level) * int64(level)
}

// ProgressToNext reports how far totalXP has advanced through the
// current level: XP earned past the current threshold and the span of
// the level.
func ProgressToNext(totalXP int64) (earned, span int64) {
	level := LevelFromXP(totalXP)
	floor := XPRequiredForLevel(level)
	ceil := XPRequiredForLevel(level + 1)

	earned = totalXP - floor
	if earned < 0 {
		earned = 0
	}
	return earned, ceil - floor
}

// ProgressBar renders earned/span as a fixed-width bar.
func ProgressBar(earned, span int64, width int) string {
	filled := 0
	if span > 0 {
		filled = int(float64(earned) / float64(span) * float64(width))
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
