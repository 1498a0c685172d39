package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Telegram   TelegramConfig
	Rewards    RewardsConfig
	Withdrawal WithdrawalConfig
	Server     ServerConfig
	Store      StoreConfig
}

// TelegramConfig holds bot credentials and the verification channel
type TelegramConfig struct {
	BotToken    string
	ChannelID   int64
	ChannelLink string
}

// RewardsConfig holds claim and referral crediting settings
type RewardsConfig struct {
	ClaimAmount   int64
	ClaimCooldown time.Duration
	ReferralBonus int64
}

// WithdrawalWindow is a weekday/hour range during which withdrawals are open.
// EndHour is exclusive; 24 means the whole day.
type WithdrawalWindow struct {
	Weekday   time.Weekday
	StartHour int
	EndHour   int
}

// WithdrawalConfig holds withdrawal gating settings
type WithdrawalConfig struct {
	MinAmount    int64
	MaxAmount    int64
	MinReferrals int
	Windows      []WithdrawalWindow
	Timezone     *time.Location
	NotifyDelay  time.Duration
}

// ServerConfig holds admin API server settings
type ServerConfig struct {
	Port      string
	JWTSecret string
}

// StoreConfig holds persistence settings
type StoreConfig struct {
	SnapshotPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tz, err := time.LoadLocation(getEnv("WITHDRAWAL_TIMEZONE", "Africa/Lagos"))
	if err != nil {
		return nil, fmt.Errorf("invalid WITHDRAWAL_TIMEZONE: %w", err)
	}

	windows, err := parseWindows(getEnv("WITHDRAWAL_WINDOWS", "Saturday 0-24,Sunday 0-22"))
	if err != nil {
		return nil, fmt.Errorf("invalid WITHDRAWAL_WINDOWS: %w", err)
	}

	config := &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("BOT_TOKEN", ""),
			ChannelID:   getEnvInt64("CHANNEL_ID", 0),
			ChannelLink: getEnv("CHANNEL_LINK", ""),
		},
		Rewards: RewardsConfig{
			ClaimAmount:   getEnvInt64("CLAIM_AMOUNT", 5000),
			ClaimCooldown: time.Duration(getEnvInt64("CLAIM_COOLDOWN_SECONDS", 3600)) * time.Second,
			ReferralBonus: getEnvInt64("REFERRAL_BONUS", 20000),
		},
		Withdrawal: WithdrawalConfig{
			MinAmount:    getEnvInt64("MIN_WITHDRAWAL", 20000),
			MaxAmount:    getEnvInt64("MAX_WITHDRAWAL", 1000000),
			MinReferrals: int(getEnvInt64("MIN_REFERRALS", 5)),
			Windows:      windows,
			Timezone:     tz,
			NotifyDelay:  time.Duration(getEnvInt64("WITHDRAWAL_NOTIFY_DELAY_SECONDS", 60)) * time.Second,
		},
		Server: ServerConfig{
			Port:      getEnv("SERVER_PORT", "8080"),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Store: StoreConfig{
			SnapshotPath: getEnv("SNAPSHOT_PATH", "user_data.json"),
		},
	}

	// Validate required fields
	if config.Telegram.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	if config.Telegram.ChannelID == 0 || config.Telegram.ChannelLink == "" {
		return nil, fmt.Errorf("CHANNEL_ID and CHANNEL_LINK are required")
	}

	if config.Server.JWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}

	return config, nil
}

// parseWindows parses a comma-separated list of "Weekday start-end" ranges,
// e.g. "Saturday 0-24,Sunday 0-22".
func parseWindows(raw string) ([]WithdrawalWindow, error) {
	var windows []WithdrawalWindow
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		fields := strings.Fields(part)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed window %q", part)
		}

		weekday, err := parseWeekday(fields[0])
		if err != nil {
			return nil, err
		}

		hours := strings.SplitN(fields[1], "-", 2)
		if len(hours) != 2 {
			return nil, fmt.Errorf("malformed hour range %q", fields[1])
		}
		start, err := strconv.Atoi(hours[0])
		if err != nil {
			return nil, fmt.Errorf("malformed hour range %q", fields[1])
		}
		end, err := strconv.Atoi(hours[1])
		if err != nil {
			return nil, fmt.Errorf("malformed hour range %q", fields[1])
		}
		if start < 0 || end > 24 || start >= end {
			return nil, fmt.Errorf("hour range %q out of bounds", fields[1])
		}

		windows = append(windows, WithdrawalWindow{Weekday: weekday, StartHour: start, EndHour: end})
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("no windows configured")
	}
	return windows, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt64 gets an integer environment variable with a fallback default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
