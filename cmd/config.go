package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CourierAPIBaseURL string
	CourierAPIKey     string
	RiskAPIBaseURL    string
	RiskAPIKey        string
	PaymentAPIBaseURL string
	PaymentAPIKey     string

	// RedisAddr is optional; empty disables the risk assessment cache.
	RedisAddr     string
	RiskCacheTTL  time.Duration
	ClientTimeout time.Duration

	DraftRetention         time.Duration
	CourierStatusCronSpec  string
	DraftRetentionCronSpec string
}
