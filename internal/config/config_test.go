package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/packdex/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		PackCost:         150,
		PackSize:         10,
		StartingCoins:    500,
		CoinsPerPoint:    5,
		LeaderboardLimit: 20,
		SyncWorkerCount:  2,
		SyncQueueSize:    64,
		AnswerLockout:    3 * time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_BadEconomy(t *testing.T) {
	cfg := validConfig()
	cfg.PackCost = 0
	cfg.PackSize = -1
	cfg.StartingCoins = -5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PACK_COST must be positive")
	assert.Contains(t, err.Error(), "PACK_SIZE must be positive")
	assert.Contains(t, err.Error(), "STARTING_COINS cannot be negative")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "LOUD"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
	assert.Contains(t, err.Error(), "SYNC_WORKER_COUNT")
	assert.Contains(t, err.Error(), "LEADERBOARD_LIMIT")
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, int64(150), cfg.PackCost)
	assert.Equal(t, 10, cfg.PackSize)
	assert.Equal(t, int64(500), cfg.StartingCoins)
	assert.Equal(t, 5, cfg.CoinsPerPoint)
	assert.Equal(t, 20, cfg.LeaderboardLimit)
	assert.False(t, cfg.SellerCredit)
	assert.Equal(t, 3*time.Second, cfg.AnswerLockout)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.StaticDir)
	assert.Empty(t, cfg.IdentitySecret, "identity login is opt-in")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PACK_COST", "200")
	t.Setenv("SELLER_CREDIT", "true")
	t.Setenv("WRONG_ANSWER_LOCKOUT_SECONDS", "5")
	t.Setenv("PACK_SIZE", "not-a-number")
	t.Setenv("IDENTITY_JWT_SECRET", "s3cret")

	cfg := config.Load()

	assert.Equal(t, int64(200), cfg.PackCost)
	assert.Equal(t, "s3cret", cfg.IdentitySecret)
	assert.True(t, cfg.SellerCredit)
	assert.Equal(t, 5*time.Second, cfg.AnswerLockout)
	assert.Equal(t, 10, cfg.PackSize, "invalid values fall back to the default")
}
