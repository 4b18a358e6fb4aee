package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	SQSQueueURL string
	SQSRegion   string
	SQSEndpoint string
	SQSWaitTime time.Duration

	MetaAccessToken   string
	MetaBaseURL       string
	TikTokAccessToken string
	TikTokBaseURL     string
	GoogleAccessToken string
	GoogleBaseURL     string

	GatewayTimeout    time.Duration
	DeployMaxAttempts int
	DeployMaxElapsed  time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "trafficdesk"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		SQSQueueURL: os.Getenv("SQS_QUEUE_URL"),
		SQSRegion:   envDefault("SQS_REGION", "us-east-1"),
		SQSEndpoint: os.Getenv("SQS_ENDPOINT"),
		SQSWaitTime: envDuration("SQS_WAIT_TIME", 10*time.Second),

		MetaAccessToken:   os.Getenv("META_ACCESS_TOKEN"),
		MetaBaseURL:       os.Getenv("META_BASE_URL"),
		TikTokAccessToken: os.Getenv("TIKTOK_ACCESS_TOKEN"),
		TikTokBaseURL:     os.Getenv("TIKTOK_BASE_URL"),
		GoogleAccessToken: os.Getenv("GOOGLE_ACCESS_TOKEN"),
		GoogleBaseURL:     os.Getenv("GOOGLE_BASE_URL"),

		GatewayTimeout:    envDuration("GATEWAY_TIMEOUT", 30*time.Second),
		DeployMaxAttempts: envInt("DEPLOY_MAX_ATTEMPTS", 5),
		DeployMaxElapsed:  envDuration("DEPLOY_MAX_ELAPSED", 30*time.Minute),
	}, nil
}

func envDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
