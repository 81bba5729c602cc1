package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string
	BaseURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisURL string
	AMQPURL  string

	JWTSecret   string
	TokenSecret string

	SessionTTLSeconds int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "shrimati"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		AMQPURL:  os.Getenv("AMQP_URL"),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenSecret: getEnv("TOKEN_SECRET", ""),

		SessionTTLSeconds: getEnvAsInt("SESSION_TTL", 86400),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
