package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr          = ":8080"
	defaultDSN           = "boatwork.db"
	defaultJWTTTL        = "24h"
	defaultPlatformFee   = "10"
	defaultWebhookSecret = ""
)

type Config struct {
	Addr          string
	DatabaseDSN   string
	JWTSecret     string
	JWTTTL        time.Duration
	WebhookSecret string
	// PlatformFeePercent of the gross amount retained by the platform;
	// providers are paid out the remainder.
	PlatformFeePercent int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", defaultAddr),
		DatabaseDSN:   getEnv("DATABASE_URL", defaultDSN),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		WebhookSecret: strings.TrimSpace(getEnv("PAYMENT_WEBHOOK_SECRET", defaultWebhookSecret)),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttlRaw := getEnv("JWT_TTL", defaultJWTTTL)
	ttl, err := time.ParseDuration(ttlRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL value %q: %w", ttlRaw, err)
	}
	cfg.JWTTTL = ttl

	feeRaw := getEnv("PLATFORM_FEE_PERCENT", defaultPlatformFee)
	fee, err := strconv.ParseInt(feeRaw, 10, 64)
	if err != nil || fee < 0 || fee > 100 {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_PERCENT value %q", feeRaw)
	}
	cfg.PlatformFeePercent = fee

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
