package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("CHANNEL_ID", "-1001234567890")
	t.Setenv("CHANNEL_LINK", "https://t.me/testchannel")
	t.Setenv("ADMIN_JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.Rewards.ClaimAmount)
	assert.Equal(t, time.Hour, cfg.Rewards.ClaimCooldown)
	assert.Equal(t, int64(20000), cfg.Rewards.ReferralBonus)
	assert.Equal(t, int64(20000), cfg.Withdrawal.MinAmount)
	assert.Equal(t, int64(1000000), cfg.Withdrawal.MaxAmount)
	assert.Equal(t, 5, cfg.Withdrawal.MinReferrals)
	assert.Equal(t, time.Minute, cfg.Withdrawal.NotifyDelay)
	assert.Equal(t, "Africa/Lagos", cfg.Withdrawal.Timezone.String())
	assert.Equal(t, "user_data.json", cfg.Store.SnapshotPath)

	require.Len(t, cfg.Withdrawal.Windows, 2)
	assert.Equal(t, WithdrawalWindow{Weekday: time.Saturday, StartHour: 0, EndHour: 24}, cfg.Withdrawal.Windows[0])
	assert.Equal(t, WithdrawalWindow{Weekday: time.Sunday, StartHour: 0, EndHour: 22}, cfg.Withdrawal.Windows[1])
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CLAIM_AMOUNT", "250")
	t.Setenv("CLAIM_COOLDOWN_SECONDS", "120")
	t.Setenv("WITHDRAWAL_WINDOWS", "Friday 9-17")
	t.Setenv("WITHDRAWAL_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(250), cfg.Rewards.ClaimAmount)
	assert.Equal(t, 2*time.Minute, cfg.Rewards.ClaimCooldown)
	require.Len(t, cfg.Withdrawal.Windows, 1)
	assert.Equal(t, WithdrawalWindow{Weekday: time.Friday, StartHour: 9, EndHour: 17}, cfg.Withdrawal.Windows[0])
	assert.Equal(t, time.UTC, cfg.Withdrawal.Timezone)
}

func TestLoadMissingBotToken(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadMissingJWTSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadBadWindows(t *testing.T) {
	setRequired(t)

	for _, raw := range []string{"Noday 0-24", "Saturday", "Saturday 22-10", "Saturday 0-25"} {
		t.Setenv("WITHDRAWAL_WINDOWS", raw)
		_, err := Load()
		assert.Error(t, err, "windows=%q", raw)
	}
}

func TestParseWindows(t *testing.T) {
	windows, err := parseWindows("saturday 0-24, SUNDAY 0-22")
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, time.Saturday, windows[0].Weekday)
	assert.Equal(t, time.Sunday, windows[1].Weekday)
	assert.Equal(t, 22, windows[1].EndHour)
}
