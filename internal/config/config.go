package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gametrack/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey            string
	RiotBaseURL           string
	DBPath                string
	ServerPort            string
	LogLevel              string
	RedisURL              string
	BackendURL            string
	MatchFetchConcurrency int
	SessionTTL            time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := fromEnv()

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.MatchFetchConcurrency < 1 {
		return nil, fmt.Errorf("MATCH_FETCH_CONCURRENCY must be at least 1, got %d", cfg.MatchFetchConcurrency)
	}

	logger.Info().
		Str("riot_base_url", cfg.RiotBaseURL).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("redis_budget", cfg.RedisURL != "").
		Int("match_fetch_concurrency", cfg.MatchFetchConcurrency).
		Dur("session_ttl", cfg.SessionTTL).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadClient reads the subset used by the command line client; no API key is needed.
func LoadClient() *Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() *Config {
	port := getEnv("SERVER_PORT", "8080")
	return &Config{
		RiotAPIKey:            getEnv("RIOT_API_KEY", ""),
		RiotBaseURL:           getEnv("RIOT_API_BASE_URL", "https://americas.api.riotgames.com"),
		DBPath:                getEnv("DB_PATH", "gametrack.db"),
		ServerPort:            port,
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisURL:              getEnv("REDIS_URL", ""),
		BackendURL:            getEnv("BACKEND_URL", "http://localhost:"+port),
		MatchFetchConcurrency: getEnvInt("MATCH_FETCH_CONCURRENCY", constants.MatchFetchConcurrency),
		SessionTTL:            getEnvDuration("SESSION_TTL", constants.SessionTTL),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

var Module = fx.Provide(Load)
