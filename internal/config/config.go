// Package config loads the service configuration from defaults and
// environment variables (a .env file is autoloaded by main).
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const (
	ProviderPaystack    = "paystack"
	ProviderMercadoPago = "mercadopago"
	ProviderSimulated   = "simulated"
)

// Config is the resolved service configuration.
type Config struct {
	HTTPPort    int
	LogLevel    string
	ChannelName string

	PaymentProvider   string
	PaymentMock       bool
	ProviderTimeout   time.Duration
	PaystackSecretKey string
	PaystackBaseURL   string
	MercadoPagoToken  string

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TransactionAudit  bool
	TransactionsTable string
	AWSRegion         string
	AWSAccessKeyID    string
	AWSSecretKey      string
	DynamoDBEndpoint  string
}

var defaults = map[string]interface{}{
	"http_port":             "8080",
	"log_level":             "info",
	"channel_name":          "flutter_paystack",
	"payment_provider":      ProviderPaystack,
	"payment_gateway_mock":  "false",
	"provider_timeout":      "30s",
	"paystack_base_url":     "https://api.paystack.co",
	"breaker_max_failures":  "5",
	"breaker_open_timeout":  "30s",
	"redis_db":              "0",
	"transaction_audit":     "true",
	"transactions_table":    "transactions",
	"aws_region":            "us-east-1",
	"aws_access_key_id":     "local",
	"aws_secret_access_key": "local",
}

// Load reads defaults and then the process environment. Empty variables do
// not override defaults.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("error loading config defaults: %w", err)
	}

	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(key), strings.TrimSpace(value)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from env: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	var c Config
	var err error

	if c.HTTPPort, err = strconv.Atoi(k.String("http_port")); err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_PORT: %w", err)
	}
	c.LogLevel = k.String("log_level")
	c.ChannelName = k.String("channel_name")

	c.PaymentProvider = strings.ToLower(k.String("payment_provider"))
	c.PaymentMock = isTruthy(k.String("payment_gateway_mock")) || isTruthy(k.String("mercadopago_mock"))
	if c.ProviderTimeout, err = time.ParseDuration(k.String("provider_timeout")); err != nil {
		return Config{}, fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}
	c.PaystackSecretKey = k.String("paystack_secret_key")
	c.PaystackBaseURL = strings.TrimRight(k.String("paystack_base_url"), "/")
	c.MercadoPagoToken = k.String("mercadopago_access_token")

	maxFailures, err := strconv.ParseUint(k.String("breaker_max_failures"), 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("invalid BREAKER_MAX_FAILURES: %w", err)
	}
	c.BreakerMaxFailures = uint32(maxFailures)
	if c.BreakerOpenTimeout, err = time.ParseDuration(k.String("breaker_open_timeout")); err != nil {
		return Config{}, fmt.Errorf("invalid BREAKER_OPEN_TIMEOUT: %w", err)
	}

	c.RedisAddr = k.String("redis_addr")
	c.RedisPassword = k.String("redis_password")
	if c.RedisDB, err = strconv.Atoi(k.String("redis_db")); err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	c.TransactionAudit = isTruthy(k.String("transaction_audit"))
	c.TransactionsTable = k.String("transactions_table")
	c.AWSRegion = k.String("aws_region")
	c.AWSAccessKeyID = k.String("aws_access_key_id")
	c.AWSSecretKey = k.String("aws_secret_access_key")
	c.DynamoDBEndpoint = k.String("dynamodb_endpoint")

	switch c.PaymentProvider {
	case ProviderPaystack, ProviderMercadoPago, ProviderSimulated:
	default:
		return Config{}, fmt.Errorf("unknown payment provider: %s", c.PaymentProvider)
	}

	return c, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
