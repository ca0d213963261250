package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries every setting the service needs. It is loaded once at
// process start and injected into components; no package reads the
// environment on its own.
type Config struct {
	Port        string
	Environment string

	// Ranking limits
	MaxShortlist      int
	MaxFinalSelection int

	// Shortlist notification defaults
	DriveLink    string
	DeadlineDays int

	// Redis (status cache); empty URL disables caching
	RedisURL string

	// Kafka notification events; empty broker list switches the
	// publisher to an in-process mock
	KafkaBrokers      []string
	NotificationTopic string

	// Transcript scoring oracle (OpenAI-compatible endpoint)
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		MaxShortlist:      getEnvInt("MAX_SHORTLIST", 10),
		MaxFinalSelection: getEnvInt("MAX_FINAL_SELECTION", 5),
		DriveLink:         getEnv("DRIVE_LINK", ""),
		DeadlineDays:      getEnvInt("DEADLINE_DAYS", 7),
		RedisURL:          getEnv("REDIS_URL", ""),
		KafkaBrokers:      getEnvList("KAFKA_BROKERS", nil),
		NotificationTopic: getEnv("NOTIFICATION_TOPIC", "selection.notifications"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
