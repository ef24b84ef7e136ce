package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Environment    string
	ListenAddr     string
	DatabaseDSN    string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	TelegramToken  string
	TelegramChatID int64
	LocalesPath    string
	AllowedOrigins []string
}

// Load reads the .env file (if present) and assembles the Config from
// environment variables. Missing required values are an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment variables")
	}

	cfg := &Config{
		Environment:   getEnv("ENV", "development"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LocalesPath:   getEnv("LOCALES_PATH", ""),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if chatID := os.Getenv("TELEGRAM_OPS_CHAT_ID"); chatID != "" {
		var id int64
		if _, err := fmt.Sscan(chatID, &id); err != nil {
			return nil, fmt.Errorf("TELEGRAM_OPS_CHAT_ID must be numeric: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
