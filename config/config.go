package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration

	PaystackSecretKey  string
	PaystackWebhookKey string
	PaystackBaseURL    string
	GatewayTimeout     time.Duration

	Currency         string
	TaxRateBps       int // tax rate in basis points; 0 disables tax
	InternalAPIToken string
	JWTSecret        string

	AbandonThreshold time.Duration

	PaymentSNSTopicARN string // SNS topic ARN for payment events
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8087"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "Africa/Nairobi"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CartTTL:       getDuration("CART_TTL", 72*time.Hour),

		PaystackSecretKey:  os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackWebhookKey: os.Getenv("PAYSTACK_WEBHOOK_SECRET"),
		PaystackBaseURL:    getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		GatewayTimeout:     getDuration("GATEWAY_TIMEOUT", 15*time.Second),

		Currency:         getEnv("CURRENCY", "KES"),
		TaxRateBps:       getInt("TAX_RATE_BPS", 0),
		InternalAPIToken: os.Getenv("INTERNAL_API_TOKEN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),

		AbandonThreshold: getDuration("CART_ABANDON_THRESHOLD", 24*time.Hour),

		PaymentSNSTopicARN: getEnv("PAYMENT_SNS_TOPIC_ARN", "arn:aws:sns:eu-west-2:000000000000:payment-events"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" ||
		cfg.PaystackSecretKey == "" || cfg.PaystackWebhookKey == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}
	if cfg.InternalAPIToken == "" {
		return nil, fmt.Errorf("INTERNAL_API_TOKEN not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
