package economy

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"

	"github.com/honducraft/hcbot/hcbot/store"
)

var (
	testGuild = snowflake.ID(1)
	testUser  = snowflake.ID(2)
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "data.json"), filepath.Join(dir, "backups"), 3)
	require.NoError(t, s.Open())
	return NewService(s), s
}

func TestService_ClaimDaily(t *testing.T) {
	svc, s := newTestService(t)
	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// A brand-new user has no streak yet, so the first claim pays the
	// base amount with no bonus.
	result := svc.ClaimDaily(testGuild, testUser, day1)
	require.Equal(t, DailyClaimed, result.Status)
	require.Equal(t, 1, result.Streak)
	require.Equal(t, int64(0), result.Bonus)
	require.Equal(t, int64(100), result.Amount)

	rec := s.UserRecord(testGuild, testUser)
	require.Equal(t, int64(200), rec.Economy.Wallet) // 100 starting + 100
	require.Equal(t, int64(1), s.Stats()["economy_transactions"])
}

func TestService_ClaimDailySameDay(t *testing.T) {
	svc, s := newTestService(t)
	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.Equal(t, DailyClaimed, svc.ClaimDaily(testGuild, testUser, day1).Status)

	// Later the same UTC day is rejected without touching the record.
	result := svc.ClaimDaily(testGuild, testUser, day1.Add(8*time.Hour))
	require.Equal(t, DailyAlreadyClaimed, result.Status)
	require.Equal(t, 1, result.Streak)

	rec := s.UserRecord(testGuild, testUser)
	require.Equal(t, int64(200), rec.Economy.Wallet)
	require.Equal(t, 1, rec.Economy.DailyStreak)
}

func TestService_ClaimDailyMidnightBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	lateNight := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)

	require.Equal(t, DailyClaimed, svc.ClaimDaily(testGuild, testUser, lateNight).Status)

	// Two minutes later is a new calendar day, so it pays again, with
	// the bonus earned by yesterday's claim.
	result := svc.ClaimDaily(testGuild, testUser, lateNight.Add(2*time.Minute))
	require.Equal(t, DailyClaimed, result.Status)
	require.Equal(t, 2, result.Streak)
	require.Equal(t, int64(10), result.Bonus)
}

func TestService_DailyStreakBonusCap(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		wantBonus  int64
		wantAmount int64
	}{
		{name: "below the cap", streak: 9, wantBonus: 90, wantAmount: 190},
		{name: "at the cap", streak: 10, wantBonus: 100, wantAmount: 200},
		{name: "past the cap", streak: 15, wantBonus: 100, wantAmount: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s := newTestService(t)
			now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

			s.UpdateUserRecord(testGuild, testUser, map[string]any{
				"economy": map[string]any{
					"daily_streak": tt.streak,
					"last_daily":   now.Add(-24 * time.Hour).Format(time.RFC3339),
				},
			})

			result := svc.ClaimDaily(testGuild, testUser, now)
			require.Equal(t, DailyClaimed, result.Status)
			require.Equal(t, tt.streak+1, result.Streak)
			require.Equal(t, tt.wantBonus, result.Bonus)
			require.Equal(t, tt.wantAmount, result.Amount)
		})
	}
}

func TestService_ClaimDailyDisabled(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.UpdateGuildConfig(testGuild, map[string]any{
		"modules": map[string]any{"economy": false},
	})

	require.Equal(t, DailyDisabled, svc.ClaimDaily(testGuild, testUser, now).Status)
}

func TestService_ClaimWork(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	result := svc.ClaimWork(testGuild, testUser, now)
	require.Equal(t, WorkDone, result.Status)
	require.GreaterOrEqual(t, result.Amount, int64(50))
	require.LessOrEqual(t, result.Amount, int64(150))

	rec := s.UserRecord(testGuild, testUser)
	require.Equal(t, int64(100)+result.Amount, rec.Economy.Wallet)
	require.NotNil(t, rec.Economy.LastWork)
}

func TestService_ClaimWorkCooldown(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := svc.ClaimWork(testGuild, testUser, now)
	require.Equal(t, WorkDone, first.Status)

	// An hour in, the shift is still locked and nothing changes.
	result := svc.ClaimWork(testGuild, testUser, now.Add(time.Hour))
	require.Equal(t, WorkOnCooldown, result.Status)
	require.Equal(t, 5*time.Hour, result.Remaining)

	rec := s.UserRecord(testGuild, testUser)
	require.Equal(t, int64(100)+first.Amount, rec.Economy.Wallet)

	// At the full six hours the next shift is available.
	require.Equal(t, WorkDone, svc.ClaimWork(testGuild, testUser, now.Add(6*time.Hour)).Status)
}

func TestService_ClaimWorkJobMultiplier(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// A fixed range makes the payout deterministic.
	s.UpdateGuildConfig(testGuild, map[string]any{
		"economy": map[string]any{"work_amount_min": 100, "work_amount_max": 100},
	})
	s.UpdateUserRecord(testGuild, testUser, map[string]any{
		"economy": map[string]any{"job": "programmer"},
	})

	result := svc.ClaimWork(testGuild, testUser, now)
	require.Equal(t, WorkDone, result.Status)
	require.Equal(t, "programmer", result.Job)
	require.Equal(t, int64(120), result.Amount)
}

func TestService_ClaimWorkUnknownJob(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.UpdateGuildConfig(testGuild, map[string]any{
		"economy": map[string]any{"work_amount_min": 100, "work_amount_max": 100},
	})
	s.UpdateUserRecord(testGuild, testUser, map[string]any{
		"economy": map[string]any{"job": "plomero"},
	})

	result := svc.ClaimWork(testGuild, testUser, now)
	require.Equal(t, int64(100), result.Amount)
}

func TestService_ClaimWorkDisabled(t *testing.T) {
	svc, s := newTestService(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.UpdateGuildConfig(testGuild, map[string]any{
		"economy": map[string]any{"enabled": false},
	})

	require.Equal(t, WorkDisabled, svc.ClaimWork(testGuild, testUser, now).Status)
}

func Test_rollAmount(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := rollAmount(50, 150)
		if got < 50 || got > 150 {
			t.Fatalf("rollAmount(50, 150) = %d, out of range", got)
		}
	}
	if got := rollAmount(100, 100); got != 100 {
		t.Errorf("rollAmount(100, 100) = %d, want 100", got)
	}
	if got := rollAmount(100, 50); got != 100 {
		t.Errorf("rollAmount(100, 50) = %d, want 100", got)
	}
}

func Test_sameUTCDay(t *testing.T) {
	base := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{name: "same moment", a: base, b: base, want: true},
		{name: "same day different hour", a: base, b: base.Add(-12 * time.Hour), want: true},
		{name: "across midnight", a: base, b: base.Add(time.Hour), want: false},
		{name: "offset zone same utc day", a: base.Add(-20 * time.Hour), b: base.Add(-20 * time.Hour).In(time.FixedZone("UTC-6", -6*3600)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sameUTCDay(tt.a, tt.b); got != tt.want {
				t.Errorf("sameUTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
