package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	DataDir          string
	DataBaseURL      string
	StaticDir        string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LogLevel         string
	IdentitySecret   string
	PackCost         int64
	PackSize         int
	StartingCoins    int64
	CoinsPerPoint    int
	LeaderboardLimit int
	SellerCredit     bool
	SyncWorkerCount  int
	SyncQueueSize    int
	AnswerLockout    time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
// An empty REDIS_ADDR means no remote store is attached and the server runs local-only.
// An empty IDENTITY_JWT_SECRET disables identity login, and an empty STATIC_DIR
// disables static file serving.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:packdex.db"),
		DataDir:          envOr("DATA_DIR", "data"),
		DataBaseURL:      envOr("DATA_BASE_URL", ""),
		StaticDir:        envOr("STATIC_DIR", ""),
		RedisAddr:        envOr("REDIS_ADDR", ""),
		RedisPassword:    envOr("REDIS_PASSWORD", ""),
		RedisDB:          envIntOr("REDIS_DB", 0),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		IdentitySecret:   envOr("IDENTITY_JWT_SECRET", ""),
		PackCost:         int64(envIntOr("PACK_COST", 150)),
		PackSize:         envIntOr("PACK_SIZE", 10),
		StartingCoins:    int64(envIntOr("STARTING_COINS", 500)),
		CoinsPerPoint:    envIntOr("COINS_PER_POINT", 5),
		LeaderboardLimit: envIntOr("LEADERBOARD_LIMIT", 20),
		SellerCredit:     envBoolOr("SELLER_CREDIT", false),
		SyncWorkerCount:  envIntOr("SYNC_WORKER_COUNT", 2),
		SyncQueueSize:    envIntOr("SYNC_QUEUE_SIZE", 64),
		AnswerLockout:    time.Duration(envIntOr("WRONG_ANSWER_LOCKOUT_SECONDS", 3)) * time.Second,
	}
}

// Validate checks the configuration for values the server cannot run with.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.PackCost <= 0 {
		problems = append(problems, fmt.Sprintf("PACK_COST must be positive, got %d", c.PackCost))
	}
	if c.PackSize <= 0 {
		problems = append(problems, fmt.Sprintf("PACK_SIZE must be positive, got %d", c.PackSize))
	}
	if c.StartingCoins < 0 {
		problems = append(problems, fmt.Sprintf("STARTING_COINS cannot be negative, got %d", c.StartingCoins))
	}
	if c.CoinsPerPoint < 0 {
		problems = append(problems, fmt.Sprintf("COINS_PER_POINT cannot be negative, got %d", c.CoinsPerPoint))
	}
	if c.LeaderboardLimit <= 0 {
		problems = append(problems, fmt.Sprintf("LEADERBOARD_LIMIT must be positive, got %d", c.LeaderboardLimit))
	}
	if c.SyncWorkerCount <= 0 {
		problems = append(problems, fmt.Sprintf("SYNC_WORKER_COUNT must be positive, got %d", c.SyncWorkerCount))
	}
	if c.SyncQueueSize <= 0 {
		problems = append(problems, fmt.Sprintf("SYNC_QUEUE_SIZE must be positive, got %d", c.SyncQueueSize))
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG/INFO/WARN/ERROR, got %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
