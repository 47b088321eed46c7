package payments

import (
	"errors"
	"testing"
	"time"

	"paystack_bridge/internal/config"
)

func TestNewProvider(t *testing.T) {
	base := config.Config{BreakerMaxFailures: 5, BreakerOpenTimeout: time.Second, ProviderTimeout: time.Second}

	t.Run("mock mode forces simulated", func(t *testing.T) {
		cfg := base
		cfg.PaymentProvider = config.ProviderPaystack
		cfg.PaymentMock = true
		p, err := NewProvider(cfg, nil)
		if err != nil || p.Name() != "simulated" {
			t.Fatalf("unexpected provider: %v %v", p, err)
		}
		if _, ok := p.(*BreakerGateway); !ok {
			t.Fatalf("provider must be wrapped in a breaker")
		}
	})

	t.Run("paystack", func(t *testing.T) {
		cfg := base
		cfg.PaymentProvider = config.ProviderPaystack
		cfg.PaystackSecretKey = "sk_test"
		p, err := NewProvider(cfg, nil)
		if err != nil || p.Name() != "paystack" {
			t.Fatalf("unexpected provider: %v %v", p, err)
		}
	})

	t.Run("paystack without key", func(t *testing.T) {
		cfg := base
		cfg.PaymentProvider = config.ProviderPaystack
		if _, err := NewProvider(cfg, nil); !errors.Is(err, ErrMissingPaystackSecretKey) {
			t.Fatalf("expected ErrMissingPaystackSecretKey, got %v", err)
		}
	})

	t.Run("mercadopago without token", func(t *testing.T) {
		cfg := base
		cfg.PaymentProvider = config.ProviderMercadoPago
		if _, err := NewProvider(cfg, nil); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := base
		cfg.PaymentProvider = "stripe"
		if _, err := NewProvider(cfg, nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}
