package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	JWTSecret string
	GoEnv     string // dev/prod

	// cart line quantity ceiling
	MaxQtyPerLine int64

	// how far ahead a delivery may be requested
	DeliveryWindow time.Duration

	// added to every order total, cents (0 disables)
	ServiceFee int64

	// ceiling for a payment call before the checkout rolls back
	PaymentTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     getenv("GO_ENV", "dev"),
	}

	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	maxQty, err := atoiDefault("CART_MAX_QTY_PER_LINE", 20)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxQtyPerLine = int64(maxQty)

	windowHours, err := atoiDefault("DELIVERY_WINDOW_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	cfg.DeliveryWindow = time.Duration(windowHours) * time.Hour

	fee, err := atoiDefault("SERVICE_FEE_CENTS", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.ServiceFee = int64(fee)

	payTimeoutSec, err := atoiDefault("PAYMENT_TIMEOUT_SECONDS", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.PaymentTimeout = time.Duration(payTimeoutSec) * time.Second

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
