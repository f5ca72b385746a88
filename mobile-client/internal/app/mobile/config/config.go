package config

import (
	"os"
	"strconv"
)

type Config struct {
	API          APIConfig
	PageSize     int    // Размер страницы пагинации
	LogLevel     string // Уровень логирования (debug/info/warn/error)
	PollSchedule string // Cron-расписание опроса фида падений цены
}

type APIConfig struct {
	BaseURL    string // URL Review API
	TimeoutSec int    // Таймаут HTTP клиента в секундах
}

func Load() (*Config, error) {
	return &Config{
		API: APIConfig{
			BaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
			TimeoutSec: getEnvInt("API_TIMEOUT_SEC", 15),
		},
		PageSize:     getEnvInt("PAGE_SIZE", 20),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		PollSchedule: getEnv("PRICE_DROP_POLL_SCHEDULE", "@every 5m"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
