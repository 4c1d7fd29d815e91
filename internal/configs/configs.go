package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	CacheTTLSeconds        int
	OpenAIAPIKey           string
	OpenAIBaseURL          string
	OpenAIModel            string
	AITimeoutSeconds       int
	RateLimit              int
	BatchAnalysisLimit     int
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	// Redis is optional; an empty host disables the todo cache.
	redisAddr := ""
	if redisHost := getEnv("REDIS_HOST", ""); redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, getEnv("REDIS_PORT", "6379"))
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "todos.db"),
		RedisAddr:              redisAddr,
		CacheTTLSeconds:        getEnvAsInt("CACHE_TTL_SECONDS", 300),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeoutSeconds:       getEnvAsInt("AI_TIMEOUT_SECONDS", 30),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		BatchAnalysisLimit:     getEnvAsInt("BATCH_ANALYSIS_LIMIT", 100),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.CacheTTLSeconds <= 0 {
		log.Fatal("CACHE_TTL_SECONDS must be greater than 0")
	}
	if cfg.AITimeoutSeconds <= 0 {
		log.Fatal("AI_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.BatchAnalysisLimit <= 0 {
		log.Fatal("BATCH_ANALYSIS_LIMIT must be greater than 0")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY is not set; enrichment calls will fail until configured")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
