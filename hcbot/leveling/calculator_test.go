package leveling

import "testing"

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		name    string
		totalXP int64
		want    int
	}{
		{name: "zero xp is level 1", totalXP: 0, want: 1},
		{name: "negative xp is level 1", totalXP: -50, want: 1},
		{name: "just below level 2", totalXP: 399, want: 1},
		{name: "level 2 threshold", totalXP: 400, want: 2},
		{name: "just below level 3", totalXP: 899, want: 2},
		{name: "level 3 threshold", totalXP: 900, want: 3},
		{name: "level 10", totalXP: 10000, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromXP(tt.totalXP); got != tt.want {
				t.Errorf("LevelFromXP(%d) = %d, want %d", tt.totalXP, got, tt.want)
			}
		})
	}
}

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{level: 1, want: 100},
		{level: 2, want: 400},
		{level: 3, want: 900},
		{level: 10, want: 10000},
		{level: 0, want: 100},
	}

	for _, tt := range tests {
		if got := XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

// The curve and its inverse must agree at every threshold.
func TestLevelCurveRoundTrip(t *testing.T) {
	for level := 1; level <= 50; level++ {
		if got := LevelFromXP(XPRequiredForLevel(level)); got != level {
			t.Errorf("LevelFromXP(XPRequiredForLevel(%d)) = %d", level, got)
		}
	}
}

func TestProgressToNext(t *testing.T) {
	earned, span := ProgressToNext(500)
	if earned != 100 {
		t.Errorf("earned = %d, want 100", earned)
	}
	if span != 500 {
		t.Errorf("span = %d, want 500", span)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name   string
		earned int64
		span   int64
		want   string
	}{
		{name: "empty", earned: 0, span: 100, want: "░░░░░░░░░░"},
		{name: "half", earned: 50, span: 100, want: "█████░░░░░"},
		{name: "full", earned: 100, span: 100, want: "██████████"},
		{name: "overfull clamps", earned: 250, span: 100, want: "██████████"},
		{name: "zero span", earned: 10, span: 0, want: "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.earned, tt.span, 10); got != tt.want {
				t.Errorf("ProgressBar() = %q, want %q", got, tt.want)
			}
		})
	}
}
